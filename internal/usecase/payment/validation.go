package usecase

import (
	"fmt"
	"strings"

	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/domain"
	paymentdto "github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/usecase/dto/payment"
)

const (
	maxFieldLength = 256
	maxNotesLength = 1024
	maxIDLength    = 128
)

func (uc *DefaultPaymentUsecase) validateDraft(input *paymentdto.IssueIntentInput) error {
	if input == nil {
		return fmt.Errorf("%w: empty request", domain.ErrValidation)
	}

	var problems []string
	required := []struct {
		name  string
		value string
	}{
		{"customerName", input.Customer.Name},
		{"customerEmail", input.Customer.Email},
		{"customerPhone", input.Customer.Phone},
		{"deliveryAddress", input.Customer.DeliveryAddress},
		{"city", input.Customer.City},
		{"pincode", input.Customer.Pincode},
		{"productId", input.Product.ProductID},
		{"weight", input.Product.Weight},
	}
	for _, field := range required {
		value := strings.TrimSpace(field.value)
		switch {
		case value == "":
			problems = append(problems, field.name+" is required")
		case len(value) > maxFieldLength:
			problems = append(problems, field.name+" is too long")
		}
	}

	if len(input.Notes) > maxNotesLength {
		problems = append(problems, "notes is too long")
	}
	if len(input.RequestID) > maxIDLength {
		problems = append(problems, "requestId is too long")
	}
	if input.Product.Quantity <= 0 {
		problems = append(problems, "quantity must be positive")
	} else if input.Product.Quantity > uc.Options.MaxQuantity {
		problems = append(problems, fmt.Sprintf("quantity must not exceed %d", uc.Options.MaxQuantity))
	}
	if input.ClientAmount < 0 {
		problems = append(problems, "amount must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}

func validateCallback(input *paymentdto.VerifyCallbackInput) error {
	if input == nil {
		return fmt.Errorf("%w: empty callback", domain.ErrValidation)
	}

	var problems []string
	ids := []struct {
		name  string
		value string
	}{
		{"gatewayPaymentId", input.GatewayPaymentID},
		{"gatewayIntentId", input.GatewayIntentID},
		{"orderId", input.OrderID},
	}
	for _, field := range ids {
		switch {
		case field.value == "":
			problems = append(problems, field.name+" is required")
		case len(field.value) > maxIDLength:
			problems = append(problems, field.name+" is too long")
		}
	}

	// Malformed signatures are left to the signer so they fail the order.
	switch {
	case input.Signature == "":
		problems = append(problems, "signature is required")
	case len(input.Signature) > maxIDLength:
		problems = append(problems, "signature is too long")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}
