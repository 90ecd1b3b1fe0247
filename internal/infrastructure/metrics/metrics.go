package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PaymentMetrics groups every collector the payment flow records into.
type PaymentMetrics struct {
	// Intent issuance
	IntentsIssuedTotal       prometheus.CounterVec
	IntentsIssuedAmountTotal prometheus.CounterVec
	IntentsReplayedTotal     prometheus.CounterVec
	DanglingIntentsTotal     prometheus.CounterVec

	// Callback verification
	VerificationsTotal    prometheus.CounterVec
	OrdersPaidTotal       prometheus.CounterVec
	OrdersPaidAmountTotal prometheus.CounterVec
	OrdersFailedTotal     prometheus.CounterVec

	// Time from intent creation to terminal status
	OrderSettlementDuration prometheus.HistogramVec

	GatewayRequestDuration prometheus.HistogramVec

	PaymentErrorsTotal prometheus.CounterVec
}

// NewPaymentMetrics registers the collectors with reg. Passing a fresh
// registry keeps tests independent of the global one.
func NewPaymentMetrics(reg prometheus.Registerer) *PaymentMetrics {
	factory := promauto.With(reg)

	return &PaymentMetrics{
		IntentsIssuedTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_intents_issued_total",
				Help: "Payment intents opened at the gateway with a stored pending order",
			},
			[]string{"currency"},
		),

		IntentsIssuedAmountTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_intents_issued_amount_total",
				Help: "Sum of issued intent amounts in minor units",
			},
			[]string{"currency"},
		),

		IntentsReplayedTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_intents_replayed_total",
				Help: "Checkout retries answered from an existing pending order",
			},
			[]string{"currency"},
		),

		DanglingIntentsTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_dangling_intents_total",
				Help: "Gateway intents created without a local order",
			},
			[]string{"currency"},
		),

		VerificationsTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_verifications_total",
				Help: "Callback verifications by outcome and reason",
			},
			[]string{"outcome", "reason"},
		),

		OrdersPaidTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_orders_paid_total",
				Help: "Orders transitioned to paid",
			},
			[]string{"currency"},
		),

		OrdersPaidAmountTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_orders_paid_amount_total",
				Help: "Sum of paid order amounts in minor units",
			},
			[]string{"currency"},
		),

		OrdersFailedTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_orders_failed_total",
				Help: "Orders transitioned to failed",
			},
			[]string{"currency", "reason"},
		),

		OrderSettlementDuration: *factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payment_order_settlement_duration_seconds",
				Help:    "Time between order creation and its terminal status",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1s .. ~34m
			},
			[]string{"status"},
		),

		GatewayRequestDuration: *factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payment_gateway_request_duration_seconds",
				Help:    "Latency of gateway intent creation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		),

		PaymentErrorsTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_errors_total",
				Help: "Errors returned by the payment flow by operation and code",
			},
			[]string{"operation", "code"},
		),
	}
}

func (m *PaymentMetrics) RecordIntentIssued(currency string, amount int64) {
	m.IntentsIssuedTotal.WithLabelValues(currency).Inc()
	m.IntentsIssuedAmountTotal.WithLabelValues(currency).Add(float64(amount))
}

func (m *PaymentMetrics) RecordIntentReplayed(currency string) {
	m.IntentsReplayedTotal.WithLabelValues(currency).Inc()
}

func (m *PaymentMetrics) RecordDanglingIntent(currency string) {
	m.DanglingIntentsTotal.WithLabelValues(currency).Inc()
}

func (m *PaymentMetrics) RecordVerification(outcome, reason string) {
	m.VerificationsTotal.WithLabelValues(outcome, reason).Inc()
}

func (m *PaymentMetrics) RecordOrderPaid(currency string, amount int64, settledSeconds float64) {
	m.OrdersPaidTotal.WithLabelValues(currency).Inc()
	m.OrdersPaidAmountTotal.WithLabelValues(currency).Add(float64(amount))
	m.OrderSettlementDuration.WithLabelValues("paid").Observe(settledSeconds)
}

func (m *PaymentMetrics) RecordOrderFailed(currency, reason string, settledSeconds float64) {
	m.OrdersFailedTotal.WithLabelValues(currency, reason).Inc()
	m.OrderSettlementDuration.WithLabelValues("failed").Observe(settledSeconds)
}

func (m *PaymentMetrics) RecordGatewayRequest(result string, durationSeconds float64) {
	m.GatewayRequestDuration.WithLabelValues(result).Observe(durationSeconds)
}

func (m *PaymentMetrics) RecordError(operation, code string) {
	m.PaymentErrorsTotal.WithLabelValues(operation, code).Inc()
}
