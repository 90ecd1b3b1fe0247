package usecase

import (
	"context"
	"log/slog"

	publisher "github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/infrastructure/kafka"
)

// publishEvent is fire-and-forget. The ledger is the source of truth and a
// broker outage must not fail a payment.
func (uc *DefaultPaymentUsecase) publishEvent(event publisher.PaymentEvent) {
	if uc.Publisher == nil {
		return
	}

	go func(event publisher.PaymentEvent) {
		msg, err := event.Encode()
		if err != nil {
			slog.Error("failed to encode payment event", "type", event.Type, "error", err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), uc.Options.EventTimeout)
		defer cancel()

		if err := uc.Publisher.Publish(ctx, msg); err != nil {
			slog.Error("failed to publish payment event",
				"type", event.Type,
				"order_id", event.OrderID,
				"gateway_intent_id", event.GatewayIntentID,
				"error", err.Error(),
			)
		}
	}(event)
}
