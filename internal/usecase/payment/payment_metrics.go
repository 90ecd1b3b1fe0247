package usecase

import (
	"time"

	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/domain"
)

func (uc *DefaultPaymentUsecase) recordIntentIssuedMetrics(order *domain.Order) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordIntentIssued(order.AmountInfo.Currency, order.AmountInfo.TotalAmount)
}

func (uc *DefaultPaymentUsecase) recordReplayMetrics(currency string) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordIntentReplayed(currency)
}

func (uc *DefaultPaymentUsecase) recordDanglingMetrics(currency string) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordDanglingIntent(currency)
}

func (uc *DefaultPaymentUsecase) recordGatewayMetrics(result string, seconds float64) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordGatewayRequest(result, seconds)
}

func (uc *DefaultPaymentUsecase) recordOrderPaidMetrics(order *domain.Order, at time.Time) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordOrderPaid(order.AmountInfo.Currency, order.AmountInfo.TotalAmount, settledSeconds(order, at))
}

func (uc *DefaultPaymentUsecase) recordOrderFailedMetrics(order *domain.Order, reason string, at time.Time) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordOrderFailed(order.AmountInfo.Currency, reason, settledSeconds(order, at))
}

func (uc *DefaultPaymentUsecase) recordErrorMetrics(operation string, err error) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordError(operation, domain.Code(err))
}

func settledSeconds(order *domain.Order, at time.Time) float64 {
	if order.CreatedAt.IsZero() || at.Before(order.CreatedAt) {
		return 0
	}
	return at.Sub(order.CreatedAt).Seconds()
}
