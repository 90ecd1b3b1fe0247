package setup

import (
	"fmt"

	paymentuc "github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/usecase/payment"
	"github.com/shopspring/decimal"
)

type UseCases struct {
	PaymentUsecase paymentuc.PaymentUsecase
}

func InitializeUseCases(deps *Dependencies) (*UseCases, error) {
	cfg := deps.Config

	// Already validated by config.Validate.
	weightFactor, err := decimal.NewFromString(cfg.Pricing.WeightFactor)
	if err != nil {
		return nil, fmt.Errorf("pricing weight factor: %w", err)
	}

	paymentUsecase, err := paymentuc.NewDefaultPaymentUsecase(
		deps.Repositories.OrderRepo,
		deps.Repositories.Catalog,
		deps.Repositories.DanglingRepo,
		deps.Gateway,
		deps.Publisher,
		deps.Metrics,
		cfg.Gateway.KeySecret,
		paymentuc.Options{
			Currency:             cfg.Gateway.Currency,
			WeightFactor:         weightFactor,
			AcceptAmountMismatch: cfg.Pricing.AcceptAmountMismatch,
			MaxQuantity:          cfg.Pricing.MaxQuantity,
			IdempotencyWindow:    cfg.Pricing.IdempotencyWindow,
			LedgerTimeout:        cfg.OrderDB.QueryTimeout,
			EventTimeout:         cfg.Gateway.Timeout,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("payment usecase: %w", err)
	}

	return &UseCases{PaymentUsecase: paymentUsecase}, nil
}
