package ports

import "context"

// NotificationKind discriminates the side-effect a notification triggers.
type NotificationKind string

const (
	NotificationLowStock        NotificationKind = "low_stock_alert"
	NotificationInventoryReport NotificationKind = "inventory_report"
	NotificationProductUpdate   NotificationKind = "product_update"
)

// Notification is a fire-and-forget task handed to the dispatcher. Delivery
// is at-most-once and best-effort: processing failures are logged and counted
// but never reach the request that enqueued the task.
type Notification struct {
	Kind         NotificationKind
	ProductID    string
	SKU          string
	ProductName  string
	Quantity     int
	ReorderLevel int
	// Action annotates product_update notifications (e.g. "CREATED", "DELETED").
	Action string
}

// NotificationDispatcher enqueues notifications for asynchronous processing.
type NotificationDispatcher interface {
	Enqueue(n Notification)
}

// NotificationProcessor executes a single notification. Implementations own
// the delivery channel (email, log) and must treat every call as best-effort.
type NotificationProcessor interface {
	Process(ctx context.Context, n Notification) error
}
