package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/t-ecosystem/market_api/internal/catalog"
	"github.com/t-ecosystem/market_api/internal/config"
	"github.com/t-ecosystem/market_api/internal/models"
	"github.com/t-ecosystem/market_api/internal/utils"
	"github.com/t-ecosystem/market_api/pkg/stripe"
)

// paymentClient is the slice of the payment provider client the checkout
// service uses.
type paymentClient interface {
	CreateCheckoutSession(ctx context.Context, req stripe.CreateSessionRequest) (*stripe.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error)
}

// sessionStore persists checkout sessions.
type sessionStore interface {
	Create(ctx context.Context, s *models.CheckoutSession) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.CheckoutSession, error)
	ListStalePending(ctx context.Context, cutoff time.Time) ([]models.CheckoutSession, error)
	UpdateStatus(ctx context.Context, sessionID string, status models.CheckoutSessionStatus) error
}

// entitlementInstaller is the slice of the entitlement service checkout
// fulfillment needs.
type entitlementInstaller interface {
	IsInstalled(ctx context.Context, userID, moduleID string) (bool, error)
	Install(ctx context.Context, userID, moduleID, checkoutSessionID string, amount int) error
}

// purchaseNotifier pushes purchase lifecycle events to connected clients.
type purchaseNotifier interface {
	NotifyPurchaseCompleted(userID, sessionID string, moduleIDs []string)
}

// CheckoutService drives the paid install flow: cart validation, hosted
// checkout session creation, webhook fulfillment and reconciliation of
// sessions whose webhook never arrived.
type CheckoutService struct {
	catalog      *catalog.Catalog
	payments     paymentClient
	sessions     sessionStore
	entitlements entitlementInstaller
	notifier     purchaseNotifier
	cfg          config.StripeConfig
}

// NewCheckoutService creates a new CheckoutService. notifier may be nil.
func NewCheckoutService(
	cat *catalog.Catalog,
	payments paymentClient,
	sessions sessionStore,
	entitlements entitlementInstaller,
	notifier purchaseNotifier,
	cfg config.StripeConfig,
) *CheckoutService {
	return &CheckoutService{
		catalog:      cat,
		payments:     payments,
		sessions:     sessions,
		entitlements: entitlements,
		notifier:     notifier,
		cfg:          cfg,
	}
}

// CreateSession validates the cart and opens a hosted checkout session.
// Every module's dependency chain must already be installed or present in
// the same cart. A cart whose total is zero is fulfilled immediately
// without touching the payment provider.
func (s *CheckoutService) CreateSession(ctx context.Context, userID string, moduleIDs []string) (*models.CheckoutSession, error) {
	ordered, total, err := s.validateCart(ctx, userID, moduleIDs)
	if err != nil {
		return nil, err
	}

	if total == 0 {
		return s.fulfillFreeCart(ctx, userID, ordered)
	}

	items := make([]stripe.LineItem, 0, len(ordered))
	for _, mod := range ordered {
		items = append(items, stripe.LineItem{
			Name:        mod.Name,
			Description: mod.Description,
			UnitAmount:  int64(mod.Price) * 100, // provider wants cents
			Currency:    mod.Currency,
			Quantity:    1,
		})
	}

	providerSession, err := s.payments.CreateCheckoutSession(ctx, stripe.CreateSessionRequest{
		Mode:              "payment",
		SuccessURL:        s.cfg.SuccessURL,
		CancelURL:         s.cfg.CancelURL,
		LineItems:         items,
		ClientReferenceID: userID,
		Metadata:          map[string]string{"user_id": userID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	session := &models.CheckoutSession{
		SessionID:   providerSession.ID,
		UserID:      userID,
		AmountTotal: total,
		Currency:    ordered[0].Currency,
		Status:      models.SessionStatusPending,
		RedirectURL: providerSession.URL,
	}
	if err := session.SetModules(moduleIDsOf(ordered)); err != nil {
		return nil, err
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrStoreUnavailable, err)
	}

	log.Info().
		Str("user_id", userID).
		Str("session_id", session.SessionID).
		Int("modules", len(ordered)).
		Int("amount_total", total).
		Msg("Checkout session created")
	return session, nil
}

// GetSession returns the user's checkout session by provider session id.
func (s *CheckoutService) GetSession(ctx context.Context, userID, sessionID string) (*models.CheckoutSession, error) {
	session, err := s.sessions.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, utils.ErrSessionNotFound
	}
	// Sessions are private to their owner.
	if session.UserID != userID {
		return nil, utils.ErrSessionNotFound
	}
	return session, nil
}

// HandleWebhook verifies and processes a payment provider notification.
func (s *CheckoutService) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := stripe.ConstructEvent(payload, sigHeader, s.cfg.WebhookSecret)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrInvalidSignature, err)
	}

	switch event.Type {
	case "checkout.session.completed":
		var obj stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Object, &obj); err != nil {
			return fmt.Errorf("failed to parse session object: %w", err)
		}
		return s.FulfillSession(ctx, obj.ID)
	case "checkout.session.expired":
		var obj stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Object, &obj); err != nil {
			return fmt.Errorf("failed to parse session object: %w", err)
		}
		return s.expireSession(ctx, obj.ID)
	default:
		log.Debug().Str("event_type", event.Type).Msg("Ignoring webhook event")
		return nil
	}
}

// FulfillSession grants the entitlements a paid session covers. It is
// idempotent: the webhook and the reconcile worker can both call it for
// the same session.
func (s *CheckoutService) FulfillSession(ctx context.Context, sessionID string) error {
	session, err := s.sessions.GetBySessionID(ctx, sessionID)
	if err != nil {
		return utils.ErrSessionNotFound
	}
	if session.Status == models.SessionStatusFulfilled {
		return nil
	}

	moduleIDs, err := session.Modules()
	if err != nil {
		return err
	}

	// The ids were stored dependency-first, so installing in order never
	// trips the dependency check.
	for _, moduleID := range moduleIDs {
		mod, err := s.catalog.GetModuleByID(moduleID)
		if err != nil {
			return err
		}
		if err := s.entitlements.Install(ctx, session.UserID, moduleID, sessionID, mod.Price); err != nil {
			return err
		}
	}

	if err := s.sessions.UpdateStatus(ctx, sessionID, models.SessionStatusFulfilled); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStoreUnavailable, err)
	}

	if s.notifier != nil {
		s.notifier.NotifyPurchaseCompleted(session.UserID, sessionID, moduleIDs)
	}

	log.Info().
		Str("user_id", session.UserID).
		Str("session_id", sessionID).
		Msg("Checkout session fulfilled")
	return nil
}

// Reconcile sweeps pending sessions the webhook never settled. Sessions
// the provider reports paid are fulfilled; sessions past maxAge or
// expired at the provider are closed out.
func (s *CheckoutService) Reconcile(ctx context.Context, staleAfter, maxAge time.Duration) error {
	stale, err := s.sessions.ListStalePending(ctx, time.Now().Add(-staleAfter))
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStoreUnavailable, err)
	}

	for _, session := range stale {
		providerSession, err := s.payments.GetCheckoutSession(ctx, session.SessionID)
		if err != nil {
			log.Warn().Err(err).Str("session_id", session.SessionID).Msg("Reconcile lookup failed")
			continue
		}

		switch {
		case providerSession.PaymentStatus == "paid":
			if err := s.FulfillSession(ctx, session.SessionID); err != nil {
				log.Error().Err(err).Str("session_id", session.SessionID).Msg("Reconcile fulfillment failed")
			}
		case providerSession.Status == "expired" || time.Since(session.CreatedAt) > maxAge:
			if err := s.expireSession(ctx, session.SessionID); err != nil {
				log.Error().Err(err).Str("session_id", session.SessionID).Msg("Reconcile expiry failed")
			}
		}
	}
	return nil
}

func (s *CheckoutService) expireSession(ctx context.Context, sessionID string) error {
	session, err := s.sessions.GetBySessionID(ctx, sessionID)
	if err != nil {
		return utils.ErrSessionNotFound
	}
	if session.Status != models.SessionStatusPending {
		return nil
	}
	if err := s.sessions.UpdateStatus(ctx, sessionID, models.SessionStatusExpired); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStoreUnavailable, err)
	}
	log.Info().Str("session_id", sessionID).Msg("Checkout session expired")
	return nil
}

// validateCart checks the cart and returns its modules dependency-first
// together with the total price in whole currency units.
func (s *CheckoutService) validateCart(ctx context.Context, userID string, moduleIDs []string) ([]*models.Module, int, error) {
	if len(moduleIDs) == 0 {
		return nil, 0, utils.ErrEmptyCart
	}

	inCart := make(map[string]bool, len(moduleIDs))
	mods := make([]*models.Module, 0, len(moduleIDs))
	for _, id := range moduleIDs {
		if inCart[id] {
			continue
		}
		mod, err := s.catalog.GetModuleByID(id)
		if err != nil {
			return nil, 0, err
		}
		inCart[id] = true
		mods = append(mods, mod)
	}

	total := 0
	for _, mod := range mods {
		installed, err := s.entitlements.IsInstalled(ctx, userID, mod.ID)
		if err != nil {
			return nil, 0, err
		}
		if installed {
			return nil, 0, fmt.Errorf("%w: %s", utils.ErrAlreadyInstalled, mod.ID)
		}

		chain, err := s.catalog.ParentChain(mod.ID)
		if err != nil {
			return nil, 0, err
		}
		for _, parent := range chain {
			if inCart[parent.ID] {
				continue
			}
			parentInstalled, err := s.entitlements.IsInstalled(ctx, userID, parent.ID)
			if err != nil {
				return nil, 0, err
			}
			if !parentInstalled {
				return nil, 0, fmt.Errorf("%w: %s requires %s", utils.ErrDependencyNotMet, mod.ID, parent.ID)
			}
		}

		total += mod.Price
	}

	// Dependency depth orders parents before their add-ons; ties keep cart
	// order.
	depth := func(m *models.Module) int {
		chain, _ := s.catalog.ParentChain(m.ID)
		return len(chain)
	}
	sort.SliceStable(mods, func(i, j int) bool {
		return depth(mods[i]) < depth(mods[j])
	})

	return mods, total, nil
}

// fulfillFreeCart installs a zero-total cart directly, recording a
// fulfilled session with no provider round-trip.
func (s *CheckoutService) fulfillFreeCart(ctx context.Context, userID string, mods []*models.Module) (*models.CheckoutSession, error) {
	session := &models.CheckoutSession{
		SessionID:   "free_" + uuid.New().String(),
		UserID:      userID,
		AmountTotal: 0,
		Currency:    mods[0].Currency,
		Status:      models.SessionStatusPending,
	}
	if err := session.SetModules(moduleIDsOf(mods)); err != nil {
		return nil, err
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrStoreUnavailable, err)
	}

	if err := s.FulfillSession(ctx, session.SessionID); err != nil {
		return nil, err
	}
	session.Status = models.SessionStatusFulfilled
	return session, nil
}

func moduleIDsOf(mods []*models.Module) []string {
	ids := make([]string, 0, len(mods))
	for _, m := range mods {
		ids = append(ids, m.ID)
	}
	return ids
}
