package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	paymentRequest "github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/delivery/http/dto/payment/request"
	paymentResponse "github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/delivery/http/dto/payment/response"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/domain"
	paymentdto "github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/usecase/dto/payment"
	paymentuc "github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/usecase/payment"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const maxBodyBytes = 64 << 10

type PaymentHandler struct {
	uc paymentuc.PaymentUsecase
}

func NewPaymentHandler(uc paymentuc.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

func (h *PaymentHandler) IssueIntent(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest.IssueIntentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	out, err := h.uc.IssueIntent(r.Context(), &paymentdto.IssueIntentInput{
		Customer: paymentdto.CustomerParams{
			Name:            req.CustomerName,
			Email:           req.CustomerEmail,
			Phone:           req.CustomerPhone,
			DeliveryAddress: req.DeliveryAddress,
			City:            req.City,
			Pincode:         req.Pincode,
		},
		Product: paymentdto.ProductParams{
			ProductID:   req.ProductID,
			ProductName: req.ProductName,
			Quantity:    req.Quantity,
			Weight:      req.Weight,
		},
		Notes:        req.Notes,
		ClientAmount: req.Amount,
		RequestID:    req.RequestID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, paymentResponse.IssueIntentResponse{
		Success:   true,
		IntentID:  out.IntentID,
		OrderID:   out.OrderID,
		Amount:    out.Amount,
		Currency:  out.Currency,
		PublicKey: out.PublicKey,
		Replayed:  out.Replayed,
	})
}

func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest.VerifyPaymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.uc.VerifyCallback(r.Context(), &paymentdto.VerifyCallbackInput{
		GatewayPaymentID: req.GatewayPaymentID,
		GatewayIntentID:  req.GatewayIntentID,
		Signature:        req.Signature,
		OrderID:          req.OrderID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	if result.Outcome == paymentdto.OutcomeAlreadyFinalized && result.Status != domain.StatusPaid {
		writeError(w, r, fmt.Errorf("%w: order %s is %s", domain.ErrOrderFailed, result.OrderID, result.Status))
		return
	}

	message := "payment verified"
	if result.Outcome == paymentdto.OutcomeAlreadyFinalized {
		message = "order already paid"
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, paymentResponse.VerifyPaymentResponse{
		Success: true,
		OrderID: result.OrderID,
		Status:  string(result.Status),
		Message: message,
	})
}

func (h *PaymentHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	out, err := h.uc.GetOrderStatus(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, paymentResponse.OrderStatusResponse{
		Success: true,
		Order: paymentResponse.OrderStatus{
			OrderID:     out.OrderID,
			Status:      string(out.Status),
			ProductName: out.ProductName,
			Quantity:    out.Quantity,
			Weight:      out.Weight,
			Amount:      out.Amount,
			Currency:    out.Currency,
			CreatedAt:   out.CreatedAt,
			UpdatedAt:   out.UpdatedAt,
		},
	})
}

// decodeJSON rejects unknown fields, trailing data and oversized bodies.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: request body too large", domain.ErrValidation)
		}
		slog.Debug("failed to decode request body", "path", r.URL.Path, "error", err.Error())
		return fmt.Errorf("%w: invalid request body", domain.ErrValidation)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: request body must contain a single JSON object", domain.ErrValidation)
	}
	return nil
}
