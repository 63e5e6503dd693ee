package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stockwise/inventory-system/internal/core/ports"
)

// EmailSender abstracts the outbound mail channel (SMTP in production).
type EmailSender interface {
	Send(to, subject, body string) error
}

// NotificationService executes fire-and-forget notifications dequeued by the
// dispatcher. Delivery is best-effort: a nil mailer degrades every channel to
// structured logging, and errors returned here are logged by the dispatcher,
// never surfaced to the request that triggered the notification.
type NotificationService struct {
	products  ports.ProductRepository
	mailer    EmailSender
	recipient string
	logger    zerolog.Logger
}

func NewNotificationService(products ports.ProductRepository, mailer EmailSender, recipient string, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		products:  products,
		mailer:    mailer,
		recipient: recipient,
		logger:    logger,
	}
}

// Process handles a single notification.
func (s *NotificationService) Process(ctx context.Context, n ports.Notification) error {
	switch n.Kind {
	case ports.NotificationLowStock:
		return s.sendLowStockAlert(n)
	case ports.NotificationInventoryReport:
		return s.sendInventoryReport(ctx)
	case ports.NotificationProductUpdate:
		s.logger.Info().
			Str("product_id", n.ProductID).
			Str("sku", n.SKU).
			Str("action", n.Action).
			Msg("product update processed")
		return nil
	default:
		return fmt.Errorf("unknown notification kind %q", n.Kind)
	}
}

func (s *NotificationService) sendLowStockAlert(n ports.Notification) error {
	s.logger.Info().
		Str("product", n.ProductName).
		Str("sku", n.SKU).
		Int("quantity", n.Quantity).
		Int("reorder_level", n.ReorderLevel).
		Msg("sending low stock alert")

	if s.mailer == nil {
		return nil
	}

	subject := fmt.Sprintf("Low stock alert: %s (%s)", n.ProductName, n.SKU)
	body := fmt.Sprintf(
		"Product %s (SKU %s) is low on stock.\nCurrent quantity: %d\nReorder level: %d\n",
		n.ProductName, n.SKU, n.Quantity, n.ReorderLevel,
	)
	if err := s.mailer.Send(s.recipient, subject, body); err != nil {
		return fmt.Errorf("low stock alert for %s: %w", n.SKU, err)
	}

	s.logger.Info().Str("sku", n.SKU).Msg("low stock alert sent")
	return nil
}

// sendInventoryReport emails a summary of every product currently at or below
// its reorder level.
func (s *NotificationService) sendInventoryReport(ctx context.Context) error {
	products, err := s.products.FindLowStock(ctx)
	if err != nil {
		return fmt.Errorf("inventory report: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Inventory report: %d product(s) at or below reorder level\n\n", len(products))
	for _, p := range products {
		fmt.Fprintf(&b, "%s\t%s\tquantity=%d\treorder_level=%d\tstatus=%s\n",
			p.SKU, p.Name, p.Quantity, p.ReorderLevel, p.Status)
	}

	if s.mailer == nil {
		s.logger.Info().Int("low_stock_count", len(products)).Msg("inventory report generated")
		return nil
	}

	if err := s.mailer.Send(s.recipient, "Inventory report", b.String()); err != nil {
		return fmt.Errorf("inventory report: %w", err)
	}

	s.logger.Info().Int("low_stock_count", len(products)).Msg("inventory report sent")
	return nil
}
