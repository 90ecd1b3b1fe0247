package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/domain"
	paymentdto "github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/usecase/dto/payment"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPaymentUsecase struct {
	issueOut  *paymentdto.IntentOutput
	issueErr  error
	issueIn   *paymentdto.IssueIntentInput
	verifyOut *paymentdto.VerificationResult
	verifyErr error
	verifyIn  *paymentdto.VerifyCallbackInput
	statusOut *paymentdto.OrderStatusOutput
	statusErr error
}

func (s *stubPaymentUsecase) IssueIntent(ctx context.Context, input *paymentdto.IssueIntentInput) (*paymentdto.IntentOutput, error) {
	s.issueIn = input
	return s.issueOut, s.issueErr
}

func (s *stubPaymentUsecase) VerifyCallback(ctx context.Context, input *paymentdto.VerifyCallbackInput) (*paymentdto.VerificationResult, error) {
	s.verifyIn = input
	return s.verifyOut, s.verifyErr
}

func (s *stubPaymentUsecase) GetOrderStatus(ctx context.Context, orderID string) (*paymentdto.OrderStatusOutput, error) {
	return s.statusOut, s.statusErr
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(ctx context.Context) error { return p.err }

func setupRouterTest(uc *stubPaymentUsecase, ping error) http.Handler {
	return NewRouter(
		RouterConfig{AllowedOrigins: []string{"*"}, RequestTimeout: 5 * time.Second},
		NewPaymentHandler(uc),
		stubPinger{err: ping},
		prometheus.NewRegistry(),
	)
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var payload map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), rec.Body.String())
	}
	return rec, payload
}

const issueBody = `{
	"customerName": "Asha Verma",
	"customerEmail": "asha@example.com",
	"customerPhone": "+919800000000",
	"deliveryAddress": "12 Temple Road",
	"city": "Varanasi",
	"pincode": "221001",
	"productId": "p1",
	"productName": "Prasad",
	"quantity": 2,
	"weight": "1",
	"amount": 40000
}`

func TestIssueIntent_Success(t *testing.T) {
	uc := &stubPaymentUsecase{issueOut: &paymentdto.IntentOutput{
		IntentID: "order_1", OrderID: "o1", Amount: 50000, Currency: "INR", PublicKey: "rzp_key",
	}}
	rec, body := doJSON(t, setupRouterTest(uc, nil), http.MethodPost, "/api/v1/payments/intents", issueBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "order_1", body["intentId"])
	assert.Equal(t, float64(50000), body["amount"])
	assert.Equal(t, "rzp_key", body["publicKey"])

	require.NotNil(t, uc.issueIn)
	assert.Equal(t, int64(40000), uc.issueIn.ClientAmount)
	assert.Equal(t, int64(2), uc.issueIn.Product.Quantity)
	assert.Equal(t, "asha@example.com", uc.issueIn.Customer.Email)
}

func TestIssueIntent_RejectsUnknownFields(t *testing.T) {
	uc := &stubPaymentUsecase{}
	rec, body := doJSON(t, setupRouterTest(uc, nil), http.MethodPost, "/api/v1/payments/intents", `{"customerName":"x","isAdmin":true}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "validation_error", body["code"])
	assert.Nil(t, uc.issueIn)
}

func TestIssueIntent_RejectsTrailingData(t *testing.T) {
	uc := &stubPaymentUsecase{}
	rec, _ := doJSON(t, setupRouterTest(uc, nil), http.MethodPost, "/api/v1/payments/intents", `{"city":"x"}{"city":"y"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.issueIn)
}

func TestIssueIntent_RejectsOversizedBody(t *testing.T) {
	uc := &stubPaymentUsecase{}
	big := `{"notes":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	rec, body := doJSON(t, setupRouterTest(uc, nil), http.MethodPost, "/api/v1/payments/intents", big)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "too large")
}

func TestIssueIntent_ErrorMapping(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		code      string
		retryable bool
	}{
		{"validation", fmt.Errorf("%w: quantity must be positive", domain.ErrValidation), http.StatusBadRequest, "validation_error", false},
		{"amount mismatch", fmt.Errorf("%w: client sent 1", domain.ErrAmountMismatch), http.StatusBadRequest, "amount_mismatch", false},
		{"gateway", fmt.Errorf("%w: razorpay returned 500: BAD_GATEWAY secret detail", domain.ErrGateway), http.StatusBadGateway, "gateway_error", true},
		{"persistence", fmt.Errorf("%w: dial tcp 10.0.0.1", domain.ErrPersistence), http.StatusServiceUnavailable, "persistence_error", true},
		{"dangling", fmt.Errorf("%w: intent order_secret: boom", domain.ErrDanglingIntent), http.StatusInternalServerError, "dangling_intent", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubPaymentUsecase{issueErr: tt.err}
			rec, body := doJSON(t, setupRouterTest(uc, nil), http.MethodPost, "/api/v1/payments/intents", issueBody)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.code, body["code"])
			assert.Equal(t, tt.retryable, body["retryable"])
			assert.NotContains(t, rec.Body.String(), "secret")
			assert.NotContains(t, rec.Body.String(), "10.0.0.1")
			assert.NotContains(t, rec.Body.String(), "intentId")
		})
	}
}

const verifyBody = `{"gatewayPaymentId":"pay_1","gatewayIntentId":"order_1","signature":"abc","orderId":"o1"}`

func TestVerifyPayment_Paid(t *testing.T) {
	uc := &stubPaymentUsecase{verifyOut: &paymentdto.VerificationResult{
		OrderID: "o1", Status: domain.StatusPaid, Outcome: paymentdto.OutcomePaid, Reason: paymentdto.ReasonOK,
	}}
	rec, body := doJSON(t, setupRouterTest(uc, nil), http.MethodPost, "/api/v1/payments/verify", verifyBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "paid", body["status"])
	require.NotNil(t, uc.verifyIn)
	assert.Equal(t, "pay_1", uc.verifyIn.GatewayPaymentID)
	assert.Equal(t, "order_1", uc.verifyIn.GatewayIntentID)
}

func TestVerifyPayment_AlreadyPaid(t *testing.T) {
	uc := &stubPaymentUsecase{verifyOut: &paymentdto.VerificationResult{
		OrderID: "o1", Status: domain.StatusPaid, Outcome: paymentdto.OutcomeAlreadyFinalized,
	}}
	rec, body := doJSON(t, setupRouterTest(uc, nil), http.MethodPost, "/api/v1/payments/verify", verifyBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "order already paid", body["message"])
}

func TestVerifyPayment_AlreadyFailed(t *testing.T) {
	uc := &stubPaymentUsecase{verifyOut: &paymentdto.VerificationResult{
		OrderID: "o1", Status: domain.StatusFailed, Outcome: paymentdto.OutcomeAlreadyFinalized,
	}}
	rec, body := doJSON(t, setupRouterTest(uc, nil), http.MethodPost, "/api/v1/payments/verify", verifyBody)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "already_finalized", body["code"])
	assert.Equal(t, false, body["success"])
	assert.Equal(t, false, body["retryable"])
}

func TestVerifyPayment_SignatureInvalid(t *testing.T) {
	uc := &stubPaymentUsecase{
		verifyOut: &paymentdto.VerificationResult{OrderID: "o1", Outcome: paymentdto.OutcomeFailed},
		verifyErr: fmt.Errorf("%w: order o1: bad_signature", domain.ErrSignatureInvalid),
	}
	rec, body := doJSON(t, setupRouterTest(uc, nil), http.MethodPost, "/api/v1/payments/verify", verifyBody)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "signature_invalid", body["code"])
	assert.Equal(t, "payment verification failed", body["error"])
}

func TestGetOrder(t *testing.T) {
	uc := &stubPaymentUsecase{statusOut: &paymentdto.OrderStatusOutput{
		OrderID: "o1", Status: domain.StatusPending, Amount: 50000, Currency: "INR",
	}}
	rec, body := doJSON(t, setupRouterTest(uc, nil), http.MethodGet, "/api/v1/orders/o1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	order, ok := body["order"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "pending", order["status"])

	uc.statusErr = fmt.Errorf("%w: o2", domain.ErrOrderNotFound)
	rec, body = doJSON(t, setupRouterTest(uc, nil), http.MethodGet, "/api/v1/orders/o2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "order_not_found", body["code"])
}

func TestCORS_Preflight(t *testing.T) {
	h := setupRouterTest(&stubPaymentUsecase{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/payments/intents", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "content-type")
}

func TestCORS_AllowList(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
	h := CORS([]string{"https://shop.example"})(next)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Origin", "https://shop.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "https://shop.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealth(t *testing.T) {
	rec, body := doJSON(t, setupRouterTest(&stubPaymentUsecase{}, nil), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])

	rec, body = doJSON(t, setupRouterTest(&stubPaymentUsecase{}, errors.New("down")), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "scrape_check_total", Help: "scrape check"})
	reg.MustRegister(counter)
	counter.Inc()

	h := NewRouter(RouterConfig{AllowedOrigins: []string{"*"}}, NewPaymentHandler(&stubPaymentUsecase{}), stubPinger{}, reg)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "scrape_check_total 1")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusConflict, StatusFor(domain.ErrAlreadyFinalized))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("unexpected")))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(domain.ErrDanglingIntent))
	assert.Equal(t, http.StatusServiceUnavailable, StatusFor(domain.ErrPersistence))
}
