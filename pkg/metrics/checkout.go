package metrics

import (
	"github.com/angelmondragon/novastore/pkg/enums"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// CheckoutMetrics records order commits and checkout failures.
type CheckoutMetrics struct {
	committed *prometheus.CounterVec
	failures  *prometheus.CounterVec
	subOrders prometheus.Counter
	amount    prometheus.Histogram
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
// A nil registerer yields a collector whose methods are no-ops.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	committed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "novastore_orders_committed_total",
		Help: "Orders committed by checkout.",
	}, []string{"payment_method"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "novastore_checkout_failures_total",
		Help: "Checkouts rejected or failed, by error code.",
	}, []string{"code"})
	subOrders := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "novastore_seller_suborders_total",
		Help: "Seller sub-orders produced by checkout fan-out.",
	})
	amount := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "novastore_order_total_amount",
		Help:    "Order totals including shipping.",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})
	reg.MustRegister(committed, failures, subOrders, amount)
	return &CheckoutMetrics{
		committed: committed,
		failures:  failures,
		subOrders: subOrders,
		amount:    amount,
	}
}

// ObserveCommitted records a committed order with its total and seller fan-out width.
// Payment methods outside the known set share the "other" label.
func (c *CheckoutMetrics) ObserveCommitted(method enums.PaymentMethod, total decimal.Decimal, sellers int) {
	if c == nil || c.committed == nil {
		return
	}
	c.committed.WithLabelValues(paymentLabel(method)).Inc()
	c.subOrders.Add(float64(sellers))
	f, _ := total.Float64()
	c.amount.Observe(f)
}

// IncFailure increments the failure counter for the given error code.
func (c *CheckoutMetrics) IncFailure(code string) {
	if c == nil || c.failures == nil {
		return
	}
	c.failures.WithLabelValues(normalizeLabel(code)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

func paymentLabel(method enums.PaymentMethod) string {
	if !method.IsValid() {
		return "other"
	}
	return method.String()
}
