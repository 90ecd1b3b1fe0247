package paymentdto

import (
	"time"

	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/domain"
)

type IntentOutput struct {
	IntentID  string
	OrderID   string
	Amount    int64
	Currency  string
	PublicKey string
	// Replayed is set when an earlier pending order for the same checkout
	// was returned instead of opening a new intent.
	Replayed bool
}

type Outcome string

const (
	OutcomePaid             Outcome = "paid"
	OutcomeFailed           Outcome = "failed"
	OutcomeAlreadyFinalized Outcome = "already_finalized"
	OutcomeRejected         Outcome = "rejected"
)

const (
	ReasonOK               = "ok"
	ReasonBadSignature     = "bad_signature"
	ReasonIntentMismatch   = "intent_mismatch"
	ReasonOrderNotFound    = "order_not_found"
	ReasonAlreadyFinalized = "already_finalized"
	ReasonMalformed        = "malformed_callback"
	ReasonLedgerError      = "ledger_error"
)

type VerificationResult struct {
	OrderID string
	Status  domain.OrderStatus
	Outcome Outcome
	Reason  string
}

type OrderStatusOutput struct {
	OrderID     string
	Status      domain.OrderStatus
	ProductName string
	Quantity    int64
	Weight      string
	Amount      int64
	Currency    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
