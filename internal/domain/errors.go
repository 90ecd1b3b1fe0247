package domain

import "errors"

var (
	ErrValidation       = errors.New("validation failed")
	ErrGateway          = errors.New("payment gateway error")
	ErrPersistence      = errors.New("order ledger error")
	ErrSignatureInvalid = errors.New("invalid payment signature")
	ErrOrderNotFound    = errors.New("order not found")
	ErrAlreadyFinalized = errors.New("order already finalized")

	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateOrder  = errors.New("order already exists")
)

// ErrAmountMismatch, ErrDanglingIntent and ErrOrderFailed keep their parent
// category reachable through errors.Is.
var (
	ErrAmountMismatch = &categorized{msg: "amount does not match catalog price", parent: ErrValidation}
	ErrDanglingIntent = &categorized{msg: "gateway intent created without local order", parent: ErrPersistence}
	ErrOrderFailed    = &categorized{msg: "order already failed", parent: ErrAlreadyFinalized}
)

type categorized struct {
	msg    string
	parent error
}

func (e *categorized) Error() string { return e.msg }

func (e *categorized) Unwrap() error { return e.parent }

type ErrorBucket string

const (
	BucketSucceeded      ErrorBucket = "succeeded"
	BucketContactSupport ErrorBucket = "failed_contact_support"
	BucketRetry          ErrorBucket = "temporary_retry"
)

// Bucket maps an error onto what the storefront can show the customer.
func Bucket(err error) ErrorBucket {
	switch {
	case err == nil:
		return BucketSucceeded
	case errors.Is(err, ErrOrderFailed):
		return BucketContactSupport
	case errors.Is(err, ErrAlreadyFinalized):
		return BucketSucceeded
	case errors.Is(err, ErrDanglingIntent):
		return BucketContactSupport
	case errors.Is(err, ErrGateway), errors.Is(err, ErrPersistence):
		return BucketRetry
	default:
		return BucketContactSupport
	}
}

// Code returns the taxonomy name reported to clients.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAmountMismatch):
		return "amount_mismatch"
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrSignatureInvalid):
		return "signature_invalid"
	case errors.Is(err, ErrOrderNotFound):
		return "order_not_found"
	case errors.Is(err, ErrAlreadyFinalized):
		return "already_finalized"
	case errors.Is(err, ErrGateway):
		return "gateway_error"
	case errors.Is(err, ErrDanglingIntent):
		return "dangling_intent"
	case errors.Is(err, ErrPersistence):
		return "persistence_error"
	default:
		return "internal_error"
	}
}
