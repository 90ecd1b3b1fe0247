package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	paymentResponse "github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/delivery/http/dto/payment/response"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/domain"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// StatusFor maps the error taxonomy onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrSignatureInvalid):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyFinalized):
		return http.StatusConflict
	case errors.Is(err, domain.ErrGateway):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrDanglingIntent):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrPersistence):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage hides gateway and ledger details. Validation and
// authentication messages only echo what the client sent.
func clientMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrAlreadyFinalized):
		return err.Error()
	case errors.Is(err, domain.ErrSignatureInvalid):
		return "payment verification failed"
	case errors.Is(err, domain.ErrGateway):
		return "payment provider is unavailable, please try again"
	case errors.Is(err, domain.ErrDanglingIntent):
		return "payment could not be recorded, please contact support"
	case errors.Is(err, domain.ErrPersistence):
		return "temporary failure, please try again"
	default:
		return "internal error"
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"status", status,
			"error", err.Error(),
		)
	}

	render.Status(r, status)
	render.JSON(w, r, paymentResponse.ErrorResponse{
		Success:   false,
		Error:     clientMessage(err),
		Code:      domain.Code(err),
		Retryable: domain.Bucket(err) == domain.BucketRetry,
	})
}
