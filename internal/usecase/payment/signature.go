package usecase

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
)

// SignatureLength is the hex length of an HMAC-SHA256 digest.
const SignatureLength = sha256.Size * 2

// Signer computes and checks gateway callback signatures:
// hex(HMAC-SHA256(secret, intentID + "|" + paymentID)).
type Signer struct {
	secret []byte
}

func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("signing secret is required")
	}
	return &Signer{secret: []byte(secret)}, nil
}

func (s *Signer) Sign(intentID, paymentID string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(intentID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares in constant time. The expected form is lowercase hex, so
// any other casing of a valid digest is rejected.
func (s *Signer) Verify(intentID, paymentID, signature string) bool {
	expected := s.Sign(intentID, paymentID)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
