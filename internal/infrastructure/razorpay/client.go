package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/domain"
)

const (
	ordersPath        = "/v1/orders"
	idempotencyHeader = "X-Idempotency-Key"
	maxResponseBytes  = 1 << 20
)

type Config struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Timeout   time.Duration
}

// Client opens Razorpay orders, which play the role of payment intents.
type Client struct {
	baseURL   string
	keyID     string
	keySecret string
	http      *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *Client) PublicKey() string {
	return c.keyID
}

func (c *Client) CreateIntent(ctx context.Context, req domain.CreateIntentRequest) (*domain.PaymentIntent, error) {
	requestBodyBytes, err := json.Marshal(createOrderRequest{
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode order request: %v", domain.ErrGateway, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ordersPath, bytes.NewReader(requestBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: build order request: %v", domain.ErrGateway, err)
	}
	httpReq.SetBasicAuth(c.keyID, c.keySecret)
	httpReq.Header.Set("Content-Type", "application/json")
	if req.IdempotencyKey != "" {
		httpReq.Header.Set(idempotencyHeader, req.IdempotencyKey)
	}

	response, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: create order: %v", domain.ErrGateway, err)
	}
	defer response.Body.Close()

	responseBodyBytes, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read order response: %v", domain.ErrGateway, err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		var errorResponse errorResponse
		if err := json.Unmarshal(responseBodyBytes, &errorResponse); err != nil || errorResponse.Error.Description == "" {
			return nil, fmt.Errorf("%w: create order: status %d", domain.ErrGateway, response.StatusCode)
		}
		return nil, fmt.Errorf("%w: create order: status %d %s: %s",
			domain.ErrGateway, response.StatusCode, errorResponse.Error.Code, errorResponse.Error.Description)
	}

	var order orderResponse
	if err := json.Unmarshal(responseBodyBytes, &order); err != nil {
		return nil, fmt.Errorf("%w: decode order response: %v", domain.ErrGateway, err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("%w: order response without id", domain.ErrGateway)
	}
	if order.Amount != req.Amount || !strings.EqualFold(order.Currency, req.Currency) {
		return nil, fmt.Errorf("%w: order %s opened for %d %s, requested %d %s",
			domain.ErrGateway, order.ID, order.Amount, order.Currency, req.Amount, req.Currency)
	}

	return &domain.PaymentIntent{
		ID:       order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  order.Receipt,
		Status:   order.Status,
	}, nil
}
