package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/domain"
	publisher "github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/infrastructure/kafka"
	paymentdto "github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/usecase/dto/payment"
	"github.com/google/uuid"
)

// IssueIntent prices the draft from the catalog, opens a gateway intent and
// stores a pending order bound to it. A gateway failure leaves no order
// behind. A ledger failure after the intent exists is journaled as a
// dangling intent and never reported as success.
func (uc *DefaultPaymentUsecase) IssueIntent(ctx context.Context, input *paymentdto.IssueIntentInput) (*paymentdto.IntentOutput, error) {
	output, err := uc.issueIntent(ctx, input)
	if err != nil {
		uc.recordErrorMetrics("issue_intent", err)
	}
	return output, err
}

func (uc *DefaultPaymentUsecase) issueIntent(ctx context.Context, input *paymentdto.IssueIntentInput) (*paymentdto.IntentOutput, error) {
	if err := uc.validateDraft(input); err != nil {
		return nil, err
	}

	quote, err := uc.quote(ctx, input)
	if err != nil {
		return nil, err
	}
	total, err := TotalAmount(quote.UnitPrice, input.Product.Quantity)
	if err != nil {
		return nil, err
	}

	if input.ClientAmount != 0 && input.ClientAmount != total {
		if !uc.Options.AcceptAmountMismatch {
			slog.Warn("client amount does not match catalog price",
				"product_id", quote.ProductID,
				"client_amount", input.ClientAmount,
				"catalog_amount", total,
			)
			return nil, fmt.Errorf("%w: client sent %d, catalog price is %d", domain.ErrAmountMismatch, input.ClientAmount, total)
		}
		slog.Warn("client amount replaced with catalog price",
			"product_id", quote.ProductID,
			"client_amount", input.ClientAmount,
			"catalog_amount", total,
		)
	}

	now := uc.clock()
	key := IdempotencyKey(input, quote.Weight, now, uc.Options.IdempotencyWindow)

	existing, err := uc.findPendingByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return uc.replay(existing), nil
	}

	order := &domain.Order{
		ID:             uuid.NewString(),
		IdempotencyKey: key,
		Receipt:        "rcpt_" + uc.shortID(),
		ProductID:      quote.ProductID,
		ProductName:    quote.ProductName,
		Quantity:       input.Product.Quantity,
		Weight:         quote.Weight,
		AmountInfo: domain.AmountInfo{
			UnitPrice:   quote.UnitPrice,
			TotalAmount: total,
			Currency:    uc.Options.Currency,
		},
		Customer: domain.CustomerInfo{
			Name:            strings.TrimSpace(input.Customer.Name),
			Email:           strings.TrimSpace(input.Customer.Email),
			Phone:           strings.TrimSpace(input.Customer.Phone),
			DeliveryAddress: strings.TrimSpace(input.Customer.DeliveryAddress),
			City:            strings.TrimSpace(input.Customer.City),
			Pincode:         strings.TrimSpace(input.Customer.Pincode),
		},
		Notes:     strings.TrimSpace(input.Notes),
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	intent, err := uc.createGatewayIntent(ctx, order)
	if err != nil {
		return nil, err
	}
	order.GatewayIntentID = intent.ID

	lctx, cancel := uc.ledgerContext(ctx)
	err = uc.OrderRepo.CreateOrder(lctx, order)
	cancel()
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateOrder) {
			if winner := uc.concurrentWinner(ctx, key, intent.ID); winner != nil {
				return uc.replay(winner), nil
			}
		}
		return nil, uc.handleDanglingIntent(order, intent, err)
	}

	slog.Info("payment intent issued",
		"order_id", order.ID,
		"gateway_intent_id", intent.ID,
		"product_id", order.ProductID,
		"amount", total,
		"currency", order.AmountInfo.Currency,
	)

	uc.publishEvent(publisher.PaymentEvent{
		Type:            publisher.EventIntentIssued,
		OrderID:         order.ID,
		GatewayIntentID: intent.ID,
		ProductID:       order.ProductID,
		Amount:          total,
		Currency:        order.AmountInfo.Currency,
		Status:          string(order.Status),
		OccurredAt:      now,
	})
	uc.recordIntentIssuedMetrics(order)

	return &paymentdto.IntentOutput{
		IntentID:  intent.ID,
		OrderID:   order.ID,
		Amount:    total,
		Currency:  order.AmountInfo.Currency,
		PublicKey: uc.Gateway.PublicKey(),
	}, nil
}

func (uc *DefaultPaymentUsecase) quote(ctx context.Context, input *paymentdto.IssueIntentInput) (*domain.PriceQuote, error) {
	lctx, cancel := uc.ledgerContext(ctx)
	defer cancel()

	productID := strings.TrimSpace(input.Product.ProductID)
	product, err := uc.Catalog.GetProduct(lctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, fmt.Errorf("%w: product %s does not exist", domain.ErrValidation, productID)
		}
		return nil, fmt.Errorf("%w: load product %s: %v", domain.ErrPersistence, productID, err)
	}

	if product.Currency != "" && product.Currency != uc.Options.Currency {
		return nil, fmt.Errorf("%w: product %s is priced in %s", domain.ErrValidation, productID, product.Currency)
	}
	return QuotePrice(product, strings.TrimSpace(input.Product.Weight), uc.Options.WeightFactor)
}

// findPendingByKey fails closed: if the ledger cannot be read no gateway
// intent is opened.
func (uc *DefaultPaymentUsecase) findPendingByKey(ctx context.Context, key string) (*domain.Order, error) {
	lctx, cancel := uc.ledgerContext(ctx)
	defer cancel()

	order, err := uc.OrderRepo.GetPendingOrderByIdempotencyKey(lctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: idempotency lookup: %v", domain.ErrPersistence, err)
	}
	return order, nil
}

// concurrentWinner resolves a unique-key conflict on insert. The conflicting
// row only counts as ours when it is bound to the same gateway intent, which
// happens when the gateway honoured the idempotency header.
func (uc *DefaultPaymentUsecase) concurrentWinner(ctx context.Context, key, intentID string) *domain.Order {
	existing, err := uc.findPendingByKey(ctx, key)
	if err != nil || existing == nil {
		return nil
	}
	if existing.GatewayIntentID != intentID {
		return nil
	}
	return existing
}

func (uc *DefaultPaymentUsecase) createGatewayIntent(ctx context.Context, order *domain.Order) (*domain.PaymentIntent, error) {
	start := time.Now()
	intent, err := uc.Gateway.CreateIntent(ctx, domain.CreateIntentRequest{
		Amount:         order.AmountInfo.TotalAmount,
		Currency:       order.AmountInfo.Currency,
		Receipt:        order.Receipt,
		IdempotencyKey: order.IdempotencyKey,
		Notes: map[string]string{
			"order_id":       order.ID,
			"product_name":   order.ProductName,
			"customer_name":  order.Customer.Name,
			"customer_email": order.Customer.Email,
		},
	})
	elapsed := time.Since(start).Seconds()

	if err != nil {
		uc.recordGatewayMetrics("error", elapsed)
		slog.Error("failed to create gateway intent",
			"order_id", order.ID,
			"product_id", order.ProductID,
			"amount", order.AmountInfo.TotalAmount,
			"error", err.Error(),
		)
		if !errors.Is(err, domain.ErrGateway) {
			err = fmt.Errorf("%w: %v", domain.ErrGateway, err)
		}
		return nil, err
	}
	uc.recordGatewayMetrics("ok", elapsed)
	return intent, nil
}

// handleDanglingIntent runs after the request may already be cancelled, so
// the journal write gets its own bounded context.
func (uc *DefaultPaymentUsecase) handleDanglingIntent(order *domain.Order, intent *domain.PaymentIntent, cause error) error {
	slog.Error("gateway intent created without local order",
		"gateway_intent_id", intent.ID,
		"order_id", order.ID,
		"idempotency_key", order.IdempotencyKey,
		"amount", order.AmountInfo.TotalAmount,
		"currency", order.AmountInfo.Currency,
		"error", cause.Error(),
	)

	record := &domain.DanglingIntent{
		ID:              uuid.NewString(),
		GatewayIntentID: intent.ID,
		IdempotencyKey:  order.IdempotencyKey,
		ProductID:       order.ProductID,
		CustomerEmail:   order.Customer.Email,
		Amount:          order.AmountInfo.TotalAmount,
		Currency:        order.AmountInfo.Currency,
		ErrorMessage:    cause.Error(),
		CreatedAt:       uc.clock(),
	}

	if uc.DanglingRepo != nil {
		rctx, cancel := context.WithTimeout(context.Background(), uc.Options.LedgerTimeout)
		if err := uc.DanglingRepo.RecordDanglingIntent(rctx, record); err != nil {
			slog.Error("failed to journal dangling intent",
				"gateway_intent_id", intent.ID,
				"error", err.Error(),
			)
		}
		cancel()
	}

	uc.publishEvent(publisher.PaymentEvent{
		Type:            publisher.EventIntentDangling,
		GatewayIntentID: intent.ID,
		ProductID:       order.ProductID,
		Amount:          order.AmountInfo.TotalAmount,
		Currency:        order.AmountInfo.Currency,
		Reason:          cause.Error(),
		OccurredAt:      record.CreatedAt,
	})
	uc.recordDanglingMetrics(order.AmountInfo.Currency)

	return fmt.Errorf("%w: intent %s: %v", domain.ErrDanglingIntent, intent.ID, cause)
}

func (uc *DefaultPaymentUsecase) replay(order *domain.Order) *paymentdto.IntentOutput {
	slog.Info("checkout retry answered from pending order",
		"order_id", order.ID,
		"gateway_intent_id", order.GatewayIntentID,
	)
	uc.recordReplayMetrics(order.AmountInfo.Currency)

	return &paymentdto.IntentOutput{
		IntentID:  order.GatewayIntentID,
		OrderID:   order.ID,
		Amount:    order.AmountInfo.TotalAmount,
		Currency:  order.AmountInfo.Currency,
		PublicKey: uc.Gateway.PublicKey(),
		Replayed:  true,
	}
}
