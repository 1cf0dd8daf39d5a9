package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t-ecosystem/market_api/internal/catalog"
	"github.com/t-ecosystem/market_api/internal/config"
	"github.com/t-ecosystem/market_api/internal/models"
	"github.com/t-ecosystem/market_api/internal/utils"
	"github.com/t-ecosystem/market_api/pkg/stripe"
)

// fakePaymentClient records created sessions and serves configured
// provider-side states.
type fakePaymentClient struct {
	created []stripe.CreateSessionRequest
	states  map[string]*stripe.CheckoutSession
	nextID  int
}

func (f *fakePaymentClient) CreateCheckoutSession(_ context.Context, req stripe.CreateSessionRequest) (*stripe.CheckoutSession, error) {
	f.created = append(f.created, req)
	f.nextID++
	id := fmt.Sprintf("cs_test_%d", f.nextID)
	session := &stripe.CheckoutSession{
		ID:            id,
		URL:           "https://checkout.example.com/" + id,
		Status:        "open",
		PaymentStatus: "unpaid",
	}
	if f.states == nil {
		f.states = make(map[string]*stripe.CheckoutSession)
	}
	f.states[id] = session
	return session, nil
}

func (f *fakePaymentClient) GetCheckoutSession(_ context.Context, sessionID string) (*stripe.CheckoutSession, error) {
	if s, ok := f.states[sessionID]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("no such session %s", sessionID)
}

// fakeSessionStore is an in-memory sessionStore.
type fakeSessionStore struct {
	sessions map[string]*models.CheckoutSession
	nextID   int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*models.CheckoutSession)}
}

func (f *fakeSessionStore) Create(_ context.Context, s *models.CheckoutSession) error {
	f.nextID++
	s.ID = f.nextID
	s.CreatedAt = time.Now()
	cp := *s
	f.sessions[s.SessionID] = &cp
	return nil
}

func (f *fakeSessionStore) GetBySessionID(_ context.Context, sessionID string) (*models.CheckoutSession, error) {
	s, ok := f.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("no such session")
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionStore) ListStalePending(_ context.Context, cutoff time.Time) ([]models.CheckoutSession, error) {
	var out []models.CheckoutSession
	for _, s := range f.sessions {
		if s.Status == models.SessionStatusPending && s.CreatedAt.Before(cutoff) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessionStore) UpdateStatus(_ context.Context, sessionID string, status models.CheckoutSessionStatus) error {
	s, ok := f.sessions[sessionID]
	if !ok {
		return fmt.Errorf("no such session")
	}
	s.Status = status
	return nil
}

const testWebhookSecret = "whsec_test"

func newTestCheckout(t *testing.T) (*CheckoutService, *EntitlementService, *fakePaymentClient, *fakeSessionStore) {
	t.Helper()
	cat, err := catalog.New(catalog.SeedModules())
	require.NoError(t, err)

	entitlements := NewEntitlementService(cat, &fakePurchaseStore{}, nil, nil, nil)
	payments := &fakePaymentClient{}
	sessions := newFakeSessionStore()
	svc := NewCheckoutService(cat, payments, sessions, entitlements, nil, config.StripeConfig{
		WebhookSecret: testWebhookSecret,
		SuccessURL:    "http://localhost:3000/success",
		CancelURL:     "http://localhost:3000/cancel",
	})
	return svc, entitlements, payments, sessions
}

func TestCreateSessionEmptyCart(t *testing.T) {
	svc, _, _, _ := newTestCheckout(t)
	_, err := svc.CreateSession(context.Background(), "u1", nil)
	assert.ErrorIs(t, err, utils.ErrEmptyCart)
}

func TestCreateSessionUnknownModule(t *testing.T) {
	svc, _, _, _ := newTestCheckout(t)
	_, err := svc.CreateSession(context.Background(), "u1", []string{"nope"})
	assert.ErrorIs(t, err, utils.ErrModuleNotFound)
}

func TestCreateSessionDependencyMustBeInstalledOrInCart(t *testing.T) {
	svc, entitlements, _, _ := newTestCheckout(t)
	ctx := context.Background()

	_, err := svc.CreateSession(ctx, "u1", []string{"envi-evm"})
	assert.ErrorIs(t, err, utils.ErrDependencyNotMet)

	// Parent in the same cart satisfies the chain.
	session, err := svc.CreateSession(ctx, "u1", []string{"envi-evm", "envi-core"})
	require.NoError(t, err)
	ids, err := session.Modules()
	require.NoError(t, err)
	assert.Equal(t, []string{"envi-core", "envi-evm"}, ids, "parents must come first")

	// Or an existing entitlement.
	require.NoError(t, entitlements.Install(ctx, "u2", "envi-core", "sess_x", 199))
	_, err = svc.CreateSession(ctx, "u2", []string{"envi-evm"})
	assert.NoError(t, err)
}

func TestCreateSessionRejectsInstalledModule(t *testing.T) {
	svc, entitlements, _, _ := newTestCheckout(t)
	ctx := context.Background()

	require.NoError(t, entitlements.Install(ctx, "u1", "uph-core", "", 0))
	_, err := svc.CreateSession(ctx, "u1", []string{"uph-core"})
	assert.ErrorIs(t, err, utils.ErrAlreadyInstalled)
}

func TestCreateSessionChargesInCents(t *testing.T) {
	svc, _, payments, _ := newTestCheckout(t)

	_, err := svc.CreateSession(context.Background(), "u1", []string{"envi-core"})
	require.NoError(t, err)

	require.Len(t, payments.created, 1)
	require.Len(t, payments.created[0].LineItems, 1)
	assert.Equal(t, int64(19900), payments.created[0].LineItems[0].UnitAmount)
}

func TestFreeCartFulfillsWithoutProvider(t *testing.T) {
	svc, entitlements, payments, _ := newTestCheckout(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, "u1", []string{"uph-core", "flux-core"})
	require.NoError(t, err)

	assert.Equal(t, models.SessionStatusFulfilled, session.Status)
	assert.Empty(t, payments.created)

	for _, id := range []string{"uph-core", "flux-core"} {
		installed, err := entitlements.IsInstalled(ctx, "u1", id)
		require.NoError(t, err)
		assert.True(t, installed, id)
	}
}

func TestFulfillSessionIsIdempotent(t *testing.T) {
	svc, entitlements, _, _ := newTestCheckout(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, "u1", []string{"envi-core"})
	require.NoError(t, err)

	require.NoError(t, svc.FulfillSession(ctx, session.SessionID))
	require.NoError(t, svc.FulfillSession(ctx, session.SessionID))

	mods, err := entitlements.ListInstalled(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, mods, 1)
}

func signWebhookPayload(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", at.Unix())
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestHandleWebhookFulfills(t *testing.T) {
	svc, entitlements, _, _ := newTestCheckout(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, "u1", []string{"weave-core"})
	require.NoError(t, err)

	payload := []byte(fmt.Sprintf(
		`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"%s","payment_status":"paid"}}}`,
		session.SessionID))
	sig := signWebhookPayload(payload, testWebhookSecret, time.Now())

	require.NoError(t, svc.HandleWebhook(ctx, payload, sig))

	installed, err := entitlements.IsInstalled(ctx, "u1", "weave-core")
	require.NoError(t, err)
	assert.True(t, installed)
}

func TestHandleWebhookRejectsBadSignature(t *testing.T) {
	svc, _, _, _ := newTestCheckout(t)

	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_x"}}}`)
	sig := signWebhookPayload(payload, "whsec_wrong", time.Now())

	err := svc.HandleWebhook(context.Background(), payload, sig)
	assert.ErrorIs(t, err, utils.ErrInvalidSignature)
}

func TestHandleWebhookIgnoresUnknownEvents(t *testing.T) {
	svc, _, _, _ := newTestCheckout(t)

	payload := []byte(`{"id":"evt_1","type":"invoice.paid","data":{"object":{}}}`)
	sig := signWebhookPayload(payload, testWebhookSecret, time.Now())

	assert.NoError(t, svc.HandleWebhook(context.Background(), payload, sig))
}

func TestReconcileSettlesStaleSessions(t *testing.T) {
	svc, entitlements, payments, sessions := newTestCheckout(t)
	ctx := context.Background()

	paid, err := svc.CreateSession(ctx, "u1", []string{"tsa-core"})
	require.NoError(t, err)
	abandoned, err := svc.CreateSession(ctx, "u2", []string{"tsa-core"})
	require.NoError(t, err)

	// Age both sessions past the stale window.
	for _, s := range sessions.sessions {
		s.CreatedAt = time.Now().Add(-time.Hour)
	}
	payments.states[paid.SessionID].PaymentStatus = "paid"
	payments.states[abandoned.SessionID].Status = "expired"

	require.NoError(t, svc.Reconcile(ctx, 5*time.Minute, 24*time.Hour))

	installed, err := entitlements.IsInstalled(ctx, "u1", "tsa-core")
	require.NoError(t, err)
	assert.True(t, installed)

	got, err := sessions.GetBySessionID(ctx, paid.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusFulfilled, got.Status)

	got, err = sessions.GetBySessionID(ctx, abandoned.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusExpired, got.Status)

	installed, err = entitlements.IsInstalled(ctx, "u2", "tsa-core")
	require.NoError(t, err)
	assert.False(t, installed)
}

func TestGetSessionHidesOtherUsers(t *testing.T) {
	svc, _, _, _ := newTestCheckout(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, "u1", []string{"weave-core"})
	require.NoError(t, err)

	_, err = svc.GetSession(ctx, "u1", session.SessionID)
	assert.NoError(t, err)

	_, err = svc.GetSession(ctx, "u2", session.SessionID)
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
}
