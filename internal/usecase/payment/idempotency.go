package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	paymentdto "github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/usecase/dto/payment"
)

// IdempotencyKey identifies one checkout attempt. A client request id scopes
// the key explicitly; without one, identical drafts submitted inside the same
// window collapse onto one key. The draft fingerprint is always part of the
// key so a reused request id with a different cart opens a new intent.
func IdempotencyKey(input *paymentdto.IssueIntentInput, weight string, now time.Time, window time.Duration) string {
	parts := []string{
		strings.TrimSpace(input.Customer.Name),
		strings.ToLower(strings.TrimSpace(input.Customer.Email)),
		strings.TrimSpace(input.Customer.Phone),
		strings.TrimSpace(input.Customer.DeliveryAddress),
		strings.TrimSpace(input.Customer.City),
		strings.TrimSpace(input.Customer.Pincode),
		strings.TrimSpace(input.Product.ProductID),
		weight,
		strconv.FormatInt(input.Product.Quantity, 10),
		strings.TrimSpace(input.Notes),
	}

	if requestID := strings.TrimSpace(input.RequestID); requestID != "" {
		parts = append([]string{"req", requestID}, parts...)
	} else {
		bucket := now.Truncate(window).Unix()
		parts = append([]string{"win", strconv.FormatInt(bucket, 10)}, parts...)
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(sum[:])
}
