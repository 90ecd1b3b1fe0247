package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/domain"
	paymentdto "github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/usecase/dto/payment"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issuePending(t *testing.T, env *paymentTestEnv) *paymentdto.IntentOutput {
	t.Helper()
	out, err := env.uc.IssueIntent(context.Background(), validDraft())
	require.NoError(t, err)
	return out
}

func signedCallback(env *paymentTestEnv, out *paymentdto.IntentOutput, paymentID string) *paymentdto.VerifyCallbackInput {
	return &paymentdto.VerifyCallbackInput{
		GatewayPaymentID: paymentID,
		GatewayIntentID:  out.IntentID,
		Signature:        env.uc.Signer.Sign(out.IntentID, paymentID),
		OrderID:          out.OrderID,
	}
}

func TestVerifyCallback_ValidSignatureMarksPaid(t *testing.T) {
	env := setupPaymentTest(t)
	out := issuePending(t, env)

	env.now = env.now.Add(2 * time.Minute)
	result, err := env.uc.VerifyCallback(context.Background(), signedCallback(env, out, "pay_001"))
	require.NoError(t, err)
	assert.Equal(t, paymentdto.OutcomePaid, result.Outcome)
	assert.Equal(t, domain.StatusPaid, result.Status)

	stored, err := env.orders.GetOrderByID(context.Background(), out.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, stored.Status)
	assert.Equal(t, "pay_001", stored.GatewayPaymentID)
	assert.Equal(t, env.now, stored.UpdatedAt)

	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.OrdersPaidTotal.WithLabelValues("INR")))
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.VerificationsTotal.WithLabelValues("paid", "ok")))
}

func TestVerifyCallback_RepeatOnPaidOrderChangesNothing(t *testing.T) {
	env := setupPaymentTest(t)
	out := issuePending(t, env)
	callback := signedCallback(env, out, "pay_001")

	_, err := env.uc.VerifyCallback(context.Background(), callback)
	require.NoError(t, err)
	before, err := env.orders.GetOrderByID(context.Background(), out.OrderID)
	require.NoError(t, err)

	env.now = env.now.Add(time.Hour)
	result, err := env.uc.VerifyCallback(context.Background(), callback)
	require.NoError(t, err)
	assert.Equal(t, paymentdto.OutcomeAlreadyFinalized, result.Outcome)
	assert.Equal(t, domain.StatusPaid, result.Status)

	after, err := env.orders.GetOrderByID(context.Background(), out.OrderID)
	require.NoError(t, err)
	assert.Equal(t, before.Status, after.Status)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestVerifyCallback_BadSignatureMarksFailed(t *testing.T) {
	env := setupPaymentTest(t)
	out := issuePending(t, env)

	callback := signedCallback(env, out, "pay_001")
	callback.Signature = strings.Repeat("0", SignatureLength)

	result, err := env.uc.VerifyCallback(context.Background(), callback)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSignatureInvalid)
	assert.Equal(t, paymentdto.OutcomeFailed, result.Outcome)
	assert.Equal(t, paymentdto.ReasonBadSignature, result.Reason)

	stored, err := env.orders.GetOrderByID(context.Background(), out.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, stored.Status)
	assert.Equal(t, paymentdto.ReasonBadSignature, stored.FailureReason)

	// A later genuine callback cannot revive the failed order.
	result, err = env.uc.VerifyCallback(context.Background(), signedCallback(env, out, "pay_001"))
	require.NoError(t, err)
	assert.Equal(t, paymentdto.OutcomeAlreadyFinalized, result.Outcome)
	assert.Equal(t, domain.StatusFailed, result.Status)
}

func TestVerifyCallback_SingleCharacterMutationsRejected(t *testing.T) {
	env := setupPaymentTest(t)
	out := issuePending(t, env)
	valid := env.uc.Signer.Sign(out.IntentID, "pay_001")

	mutated := []byte(valid)
	if mutated[0] == 'a' {
		mutated[0] = 'b'
	} else {
		mutated[0] = 'a'
	}

	callback := signedCallback(env, out, "pay_001")
	callback.Signature = string(mutated)
	_, err := env.uc.VerifyCallback(context.Background(), callback)
	require.ErrorIs(t, err, domain.ErrSignatureInvalid)

	stored, err := env.orders.GetOrderByID(context.Background(), out.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, stored.Status)
}

func TestVerifyCallback_BadSignatureOnPaidOrderDoesNotMutate(t *testing.T) {
	env := setupPaymentTest(t)
	out := issuePending(t, env)

	_, err := env.uc.VerifyCallback(context.Background(), signedCallback(env, out, "pay_001"))
	require.NoError(t, err)

	forged := signedCallback(env, out, "pay_001")
	forged.Signature = strings.Repeat("f", SignatureLength)
	result, err := env.uc.VerifyCallback(context.Background(), forged)
	require.ErrorIs(t, err, domain.ErrSignatureInvalid)
	assert.Equal(t, paymentdto.OutcomeAlreadyFinalized, result.Outcome)

	stored, err := env.orders.GetOrderByID(context.Background(), out.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, stored.Status)
}

func TestVerifyCallback_SignatureForAnotherOrderRejected(t *testing.T) {
	env := setupPaymentTest(t)
	victim := issuePending(t, env)

	other := validDraft()
	other.RequestID = "second-checkout"
	attacker, err := env.uc.IssueIntent(context.Background(), other)
	require.NoError(t, err)

	// A genuine signature for the attacker's intent presented against the
	// victim's order.
	callback := signedCallback(env, attacker, "pay_attacker")
	callback.OrderID = victim.OrderID

	result, err := env.uc.VerifyCallback(context.Background(), callback)
	require.ErrorIs(t, err, domain.ErrSignatureInvalid)
	assert.Equal(t, paymentdto.ReasonIntentMismatch, result.Reason)

	stored, err := env.orders.GetOrderByID(context.Background(), victim.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, stored.Status)
}

func TestVerifyCallback_UnknownOrder(t *testing.T) {
	env := setupPaymentTest(t)
	out := issuePending(t, env)

	callback := signedCallback(env, out, "pay_001")
	callback.OrderID = "4a0c1c1e-0000-4000-8000-000000000000"

	result, err := env.uc.VerifyCallback(context.Background(), callback)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
	assert.Equal(t, paymentdto.ReasonOrderNotFound, result.Reason)

	stored, err := env.orders.GetOrderByID(context.Background(), out.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestVerifyCallback_MalformedInputTouchesNothing(t *testing.T) {
	env := setupPaymentTest(t)
	out := issuePending(t, env)

	cases := map[string]func(c *paymentdto.VerifyCallbackInput){
		"missing payment id": func(c *paymentdto.VerifyCallbackInput) { c.GatewayPaymentID = "" },
		"missing intent id":  func(c *paymentdto.VerifyCallbackInput) { c.GatewayIntentID = "" },
		"missing order id":   func(c *paymentdto.VerifyCallbackInput) { c.OrderID = "" },
		"missing signature":  func(c *paymentdto.VerifyCallbackInput) { c.Signature = "" },
		"oversized signature": func(c *paymentdto.VerifyCallbackInput) {
			c.Signature = strings.Repeat("a", maxIDLength+1)
		},
	}

	for name, apply := range cases {
		t.Run(name, func(t *testing.T) {
			callback := signedCallback(env, out, "pay_001")
			apply(callback)

			_, err := env.uc.VerifyCallback(context.Background(), callback)
			require.ErrorIs(t, err, domain.ErrValidation)

			stored, err := env.orders.GetOrderByID(context.Background(), out.OrderID)
			require.NoError(t, err)
			assert.Equal(t, domain.StatusPending, stored.Status)
		})
	}
}

func TestVerifyCallback_MalformedSignatureMarksFailed(t *testing.T) {
	cases := map[string]func(valid string) string{
		"truncated":     func(valid string) string { return valid[:SignatureLength-1] },
		"too short":     func(string) string { return "abc123" },
		"extra char":    func(valid string) string { return valid + "0" },
		"non hex":       func(string) string { return strings.Repeat("z", SignatureLength) },
		"uppercase hex": strings.ToUpper,
		"bit flip out of hex range": func(valid string) string {
			// 0x40 moves digits to 'p'..'y' and a..f to '!'..'&'.
			b := []byte(valid)
			b[len(b)-1] ^= 0x40
			return string(b)
		},
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			env := setupPaymentTest(t)
			out := issuePending(t, env)

			callback := signedCallback(env, out, "pay_001")
			callback.Signature = mutate(callback.Signature)

			result, err := env.uc.VerifyCallback(context.Background(), callback)
			require.ErrorIs(t, err, domain.ErrSignatureInvalid)
			assert.NotErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, paymentdto.OutcomeFailed, result.Outcome)
			assert.Equal(t, paymentdto.ReasonBadSignature, result.Reason)

			stored, err := env.orders.GetOrderByID(context.Background(), out.OrderID)
			require.NoError(t, err)
			assert.Equal(t, domain.StatusFailed, stored.Status)

			// The genuine callback arriving later cannot pay the order.
			result, err = env.uc.VerifyCallback(context.Background(), signedCallback(env, out, "pay_001"))
			require.NoError(t, err)
			assert.Equal(t, paymentdto.OutcomeAlreadyFinalized, result.Outcome)
			assert.Equal(t, domain.StatusFailed, result.Status)
		})
	}
}

func TestVerifyCallback_ConcurrentCallbacksSettleOnce(t *testing.T) {
	env := setupPaymentTest(t)
	out := issuePending(t, env)
	callback := signedCallback(env, out, "pay_001")

	const callers = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		outcomes = make(map[paymentdto.Outcome]int)
		errs     []error
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			input := *callback
			result, err := env.uc.VerifyCallback(context.Background(), &input)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			outcomes[result.Outcome]++
		}()
	}
	wg.Wait()

	assert.Empty(t, errs)
	assert.Equal(t, 1, outcomes[paymentdto.OutcomePaid])
	assert.Equal(t, callers-1, outcomes[paymentdto.OutcomeAlreadyFinalized])
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.OrdersPaidTotal.WithLabelValues("INR")))
}

func TestVerifyCallback_TransitionFailureKeepsOrderPending(t *testing.T) {
	env := setupPaymentTest(t)
	out := issuePending(t, env)
	env.uc.OrderRepo = &failingTransitionRepo{memOrderRepo: env.orders}

	_, err := env.uc.VerifyCallback(context.Background(), signedCallback(env, out, "pay_001"))
	require.ErrorIs(t, err, domain.ErrPersistence)

	stored, err := env.orders.GetOrderByID(context.Background(), out.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

type failingTransitionRepo struct {
	*memOrderRepo
}

func (r *failingTransitionRepo) TransitionStatus(ctx context.Context, tr domain.StatusTransition) (bool, error) {
	return false, errLedgerDown
}

func TestGetOrderStatus(t *testing.T) {
	env := setupPaymentTest(t)
	out := issuePending(t, env)

	status, err := env.uc.GetOrderStatus(context.Background(), out.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, status.Status)
	assert.Equal(t, int64(50000), status.Amount)
	assert.Equal(t, "1", status.Weight)

	_, err = env.uc.GetOrderStatus(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	_, err = env.uc.GetOrderStatus(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
