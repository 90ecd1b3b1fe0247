package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/domain"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/infrastructure/metrics"
	paymentdto "github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/usecase/dto/payment"
	"github.com/jaevor/go-nanoid"
	"github.com/shopspring/decimal"
)

type PaymentUsecase interface {
	IssueIntent(ctx context.Context, input *paymentdto.IssueIntentInput) (*paymentdto.IntentOutput, error)
	VerifyCallback(ctx context.Context, input *paymentdto.VerifyCallbackInput) (*paymentdto.VerificationResult, error)
	GetOrderStatus(ctx context.Context, orderID string) (*paymentdto.OrderStatusOutput, error)
}

type Options struct {
	Currency             string
	WeightFactor         decimal.Decimal
	AcceptAmountMismatch bool
	MaxQuantity          int64
	IdempotencyWindow    time.Duration
	// LedgerTimeout bounds every single ledger call, including the
	// dangling-intent journal write made after the request context is gone.
	LedgerTimeout time.Duration
	EventTimeout  time.Duration
}

type DefaultPaymentUsecase struct {
	OrderRepo    domain.OrderRepository
	Catalog      domain.Catalog
	DanglingRepo domain.DanglingIntentRepository
	Gateway      domain.PaymentGateway
	Publisher    domain.PublisherPort
	Metrics      *metrics.PaymentMetrics
	Signer       *Signer
	Options      Options

	now     func() time.Time
	shortID func() string
}

func NewDefaultPaymentUsecase(
	orderRepo domain.OrderRepository,
	catalog domain.Catalog,
	danglingRepo domain.DanglingIntentRepository,
	gateway domain.PaymentGateway,
	eventPublisher domain.PublisherPort,
	paymentMetrics *metrics.PaymentMetrics,
	signingSecret string,
	opts Options) (*DefaultPaymentUsecase, error) {

	signer, err := NewSigner(signingSecret)
	if err != nil {
		return nil, err
	}
	if opts.Currency == "" {
		return nil, errors.New("payment usecase: currency is required")
	}
	if !opts.WeightFactor.IsPositive() {
		return nil, errors.New("payment usecase: weight factor must be positive")
	}
	if opts.MaxQuantity <= 0 {
		return nil, errors.New("payment usecase: max quantity must be positive")
	}
	if opts.IdempotencyWindow <= 0 {
		return nil, errors.New("payment usecase: idempotency window must be positive")
	}
	if opts.LedgerTimeout <= 0 {
		opts.LedgerTimeout = 5 * time.Second
	}
	if opts.EventTimeout <= 0 {
		opts.EventTimeout = 5 * time.Second
	}

	shortID, err := nanoid.Standard(21)
	if err != nil {
		return nil, fmt.Errorf("payment usecase: id generator: %w", err)
	}

	return &DefaultPaymentUsecase{
		OrderRepo:    orderRepo,
		Catalog:      catalog,
		DanglingRepo: danglingRepo,
		Gateway:      gateway,
		Publisher:    eventPublisher,
		Metrics:      paymentMetrics,
		Signer:       signer,
		Options:      opts,
		now:          time.Now,
		shortID:      shortID,
	}, nil
}

// ledgerContext derives a context that cannot outlive one ledger call.
func (uc *DefaultPaymentUsecase) ledgerContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, uc.Options.LedgerTimeout)
}

func (uc *DefaultPaymentUsecase) clock() time.Time {
	return uc.now().UTC()
}
