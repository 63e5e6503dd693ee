// Package metrics defines and registers all custom Prometheus metrics for the
// inventory API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at init time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventory"

// ── Product metrics ───────────────────────────────────────────────────────────

// ProductsCreatedTotal counts newly created products.
// Label:
//   - category: name of the owning category
var ProductsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of products created, by category.",
	},
	[]string{"category"},
)

// StockUpdatesTotal counts stock-update operations.
// Label:
//   - status: the derived product status after the update (ACTIVE, LOW_STOCK, OUT_OF_STOCK)
var StockUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_updates_total",
		Help:      "Total number of stock updates, by resulting product status.",
	},
	[]string{"status"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsProcessedTotal counts notifications that completed processing.
// Label:
//   - kind: notification kind (low_stock_alert, inventory_report, product_update)
var NotificationsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_processed_total",
		Help:      "Total number of notifications successfully processed.",
	},
	[]string{"kind"},
)

// NotificationsErrorsTotal counts notifications that failed processing. These
// failures never reach the triggering request; the counter and the log line
// are the only signals.
// Label:
//   - kind: notification kind
var NotificationsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_errors_total",
		Help:      "Total number of notifications that failed processing.",
	},
	[]string{"kind"},
)

// NotificationQueueDepth tracks the number of notifications waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "failure", "disabled", or "locked"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
