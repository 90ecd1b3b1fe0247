package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/domain"
	publisher "github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/infrastructure/kafka"
	paymentdto "github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/usecase/dto/payment"
)

// VerifyCallback authenticates a gateway callback and settles the order.
// Exactly one pending -> terminal transition can win per order; every other
// caller sees the stored terminal status.
func (uc *DefaultPaymentUsecase) VerifyCallback(ctx context.Context, input *paymentdto.VerifyCallbackInput) (*paymentdto.VerificationResult, error) {
	result, err := uc.verifyCallback(ctx, input)
	if uc.Metrics != nil {
		uc.Metrics.RecordVerification(string(result.Outcome), result.Reason)
	}
	if err != nil {
		uc.recordErrorMetrics("verify_callback", err)
	}
	return result, err
}

func (uc *DefaultPaymentUsecase) verifyCallback(ctx context.Context, input *paymentdto.VerifyCallbackInput) (*paymentdto.VerificationResult, error) {
	if err := validateCallback(input); err != nil {
		return rejected("", paymentdto.ReasonMalformed), err
	}

	lctx, cancel := uc.ledgerContext(ctx)
	order, err := uc.OrderRepo.GetOrderByID(lctx, input.OrderID)
	cancel()
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			slog.Warn("callback for unknown order",
				"order_id", input.OrderID,
				"gateway_intent_id", input.GatewayIntentID,
				"gateway_payment_id", input.GatewayPaymentID,
				"suspicious", true,
			)
			return rejected(input.OrderID, paymentdto.ReasonOrderNotFound),
				fmt.Errorf("%w: %s", domain.ErrOrderNotFound, input.OrderID)
		}
		return rejected(input.OrderID, paymentdto.ReasonLedgerError),
			fmt.Errorf("%w: load order %s: %v", domain.ErrPersistence, input.OrderID, err)
	}

	reason := uc.authenticate(order, input)

	if order.Status.IsTerminal() {
		return uc.finalized(order, input, reason)
	}
	if reason != paymentdto.ReasonOK {
		return uc.markFailed(ctx, order, input, reason)
	}
	return uc.markPaid(ctx, order, input)
}

// authenticate checks the signature and that it was issued for the intent
// this order is bound to, so a valid signature for another order is useless.
func (uc *DefaultPaymentUsecase) authenticate(order *domain.Order, input *paymentdto.VerifyCallbackInput) string {
	validSignature := uc.Signer.Verify(input.GatewayIntentID, input.GatewayPaymentID, input.Signature)
	switch {
	case input.GatewayIntentID != order.GatewayIntentID:
		return paymentdto.ReasonIntentMismatch
	case !validSignature:
		return paymentdto.ReasonBadSignature
	default:
		return paymentdto.ReasonOK
	}
}

func (uc *DefaultPaymentUsecase) markPaid(ctx context.Context, order *domain.Order, input *paymentdto.VerifyCallbackInput) (*paymentdto.VerificationResult, error) {
	now := uc.clock()

	lctx, cancel := uc.ledgerContext(ctx)
	applied, err := uc.OrderRepo.TransitionStatus(lctx, domain.StatusTransition{
		OrderID:          order.ID,
		From:             domain.StatusPending,
		To:               domain.StatusPaid,
		GatewayPaymentID: input.GatewayPaymentID,
		At:               now,
	})
	cancel()
	if err != nil {
		slog.Error("failed to mark order paid",
			"order_id", order.ID,
			"gateway_payment_id", input.GatewayPaymentID,
			"error", err.Error(),
		)
		return rejected(order.ID, paymentdto.ReasonLedgerError),
			fmt.Errorf("%w: mark order %s paid: %v", domain.ErrPersistence, order.ID, err)
	}
	if !applied {
		return uc.lostRace(ctx, order, input, paymentdto.ReasonOK)
	}

	slog.Info("order paid",
		"order_id", order.ID,
		"gateway_intent_id", order.GatewayIntentID,
		"gateway_payment_id", input.GatewayPaymentID,
		"amount", order.AmountInfo.TotalAmount,
	)

	uc.publishEvent(publisher.PaymentEvent{
		Type:             publisher.EventOrderPaid,
		OrderID:          order.ID,
		GatewayIntentID:  order.GatewayIntentID,
		GatewayPaymentID: input.GatewayPaymentID,
		ProductID:        order.ProductID,
		Amount:           order.AmountInfo.TotalAmount,
		Currency:         order.AmountInfo.Currency,
		Status:           string(domain.StatusPaid),
		OccurredAt:       now,
	})
	uc.recordOrderPaidMetrics(order, now)

	return &paymentdto.VerificationResult{
		OrderID: order.ID,
		Status:  domain.StatusPaid,
		Outcome: paymentdto.OutcomePaid,
		Reason:  paymentdto.ReasonOK,
	}, nil
}

// markFailed closes the order so the same intent can never be paid through
// a later forged or replayed callback.
func (uc *DefaultPaymentUsecase) markFailed(ctx context.Context, order *domain.Order, input *paymentdto.VerifyCallbackInput, reason string) (*paymentdto.VerificationResult, error) {
	now := uc.clock()

	slog.Error("payment callback rejected",
		"order_id", order.ID,
		"gateway_intent_id", input.GatewayIntentID,
		"expected_intent_id", order.GatewayIntentID,
		"gateway_payment_id", input.GatewayPaymentID,
		"reason", reason,
		"security", true,
	)

	lctx, cancel := uc.ledgerContext(ctx)
	applied, err := uc.OrderRepo.TransitionStatus(lctx, domain.StatusTransition{
		OrderID:       order.ID,
		From:          domain.StatusPending,
		To:            domain.StatusFailed,
		FailureReason: reason,
		At:            now,
	})
	cancel()
	if err != nil {
		slog.Error("failed to mark order failed",
			"order_id", order.ID,
			"error", err.Error(),
		)
		return rejected(order.ID, reason),
			fmt.Errorf("%w: mark order %s failed: %v", domain.ErrPersistence, order.ID, err)
	}
	if !applied {
		return uc.lostRace(ctx, order, input, reason)
	}

	uc.publishEvent(publisher.PaymentEvent{
		Type:             publisher.EventOrderFailed,
		OrderID:          order.ID,
		GatewayIntentID:  order.GatewayIntentID,
		GatewayPaymentID: input.GatewayPaymentID,
		ProductID:        order.ProductID,
		Amount:           order.AmountInfo.TotalAmount,
		Currency:         order.AmountInfo.Currency,
		Status:           string(domain.StatusFailed),
		Reason:           reason,
		OccurredAt:       now,
	})
	uc.recordOrderFailedMetrics(order, reason, now)

	return &paymentdto.VerificationResult{
		OrderID: order.ID,
		Status:  domain.StatusFailed,
		Outcome: paymentdto.OutcomeFailed,
		Reason:  reason,
	}, fmt.Errorf("%w: order %s: %s", domain.ErrSignatureInvalid, order.ID, reason)
}

// lostRace reloads the order after a conditional write matched no row.
func (uc *DefaultPaymentUsecase) lostRace(ctx context.Context, order *domain.Order, input *paymentdto.VerifyCallbackInput, reason string) (*paymentdto.VerificationResult, error) {
	lctx, cancel := uc.ledgerContext(ctx)
	current, err := uc.OrderRepo.GetOrderByID(lctx, order.ID)
	cancel()
	if err != nil {
		return rejected(order.ID, paymentdto.ReasonLedgerError),
			fmt.Errorf("%w: reload order %s: %v", domain.ErrPersistence, order.ID, err)
	}
	if !current.Status.IsTerminal() {
		return rejected(order.ID, paymentdto.ReasonLedgerError),
			fmt.Errorf("%w: order %s still pending after conditional update", domain.ErrPersistence, order.ID)
	}
	return uc.finalized(current, input, reason)
}

// finalized never mutates the order. A bad signature against a settled order
// is still reported as a signature failure.
func (uc *DefaultPaymentUsecase) finalized(order *domain.Order, input *paymentdto.VerifyCallbackInput, reason string) (*paymentdto.VerificationResult, error) {
	result := &paymentdto.VerificationResult{
		OrderID: order.ID,
		Status:  order.Status,
		Outcome: paymentdto.OutcomeAlreadyFinalized,
		Reason:  paymentdto.ReasonAlreadyFinalized,
	}

	if reason != paymentdto.ReasonOK {
		slog.Warn("rejected callback for finalized order",
			"order_id", order.ID,
			"status", order.Status,
			"gateway_intent_id", input.GatewayIntentID,
			"reason", reason,
			"security", true,
		)
		result.Reason = reason
		return result, fmt.Errorf("%w: order %s: %s", domain.ErrSignatureInvalid, order.ID, reason)
	}

	slog.Info("callback for finalized order",
		"order_id", order.ID,
		"status", order.Status,
		"gateway_payment_id", input.GatewayPaymentID,
	)
	return result, nil
}

func rejected(orderID, reason string) *paymentdto.VerificationResult {
	return &paymentdto.VerificationResult{
		OrderID: orderID,
		Outcome: paymentdto.OutcomeRejected,
		Reason:  reason,
	}
}
