package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/domain"
)

type memOrderRepo struct {
	mu        sync.Mutex
	orders    map[string]*domain.Order
	createErr error
	lookupErr error
	creates   int
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *memOrderRepo) CreateOrder(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.orders {
		pendingKey := existing.Status == domain.StatusPending && existing.IdempotencyKey == order.IdempotencyKey
		if pendingKey || existing.GatewayIntentID == order.GatewayIntentID {
			return domain.ErrDuplicateOrder
		}
	}
	stored := *order
	r.orders[order.ID] = &stored
	return nil
}

func (r *memOrderRepo) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *memOrderRepo) GetPendingOrderByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	for _, order := range r.orders {
		if order.IdempotencyKey == key && order.Status == domain.StatusPending {
			copied := *order
			return &copied, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *memOrderRepo) TransitionStatus(ctx context.Context, tr domain.StatusTransition) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[tr.OrderID]
	if !ok || order.Status != tr.From {
		return false, nil
	}
	order.Status = tr.To
	order.UpdatedAt = tr.At
	if tr.GatewayPaymentID != "" {
		order.GatewayPaymentID = tr.GatewayPaymentID
	}
	if tr.FailureReason != "" {
		order.FailureReason = tr.FailureReason
	}
	return true, nil
}

func (r *memOrderRepo) put(order *domain.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *order
	r.orders[order.ID] = &stored
}

func (r *memOrderRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

type memCatalog struct {
	products map[string]*domain.Product
	err      error
}

func (c *memCatalog) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	product, ok := c.products[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

type fakeGateway struct {
	mu       sync.Mutex
	err      error
	requests []domain.CreateIntentRequest
	seq      int
}

func (g *fakeGateway) CreateIntent(ctx context.Context, req domain.CreateIntentRequest) (*domain.PaymentIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	g.seq++
	return &domain.PaymentIntent{
		ID:       fmt.Sprintf("order_test%04d", g.seq),
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}, nil
}

func (g *fakeGateway) PublicKey() string { return "rzp_test_key" }

func (g *fakeGateway) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.requests)
}

type memDanglingRepo struct {
	mu      sync.Mutex
	records []*domain.DanglingIntent
	err     error
}

func (r *memDanglingRepo) RecordDanglingIntent(ctx context.Context, intent *domain.DanglingIntent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, intent)
	return nil
}

func (r *memDanglingRepo) ListDanglingIntents(ctx context.Context, since time.Time, limit int) ([]*domain.DanglingIntent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.DanglingIntent(nil), r.records...), nil
}

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []domain.Message
	err  error
}

func (p *recordingPublisher) Publish(ctx context.Context, msgs ...domain.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, msgs...)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.msgs)
}

var errLedgerDown = errors.New("connection refused")
