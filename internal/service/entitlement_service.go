package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/t-ecosystem/market_api/internal/catalog"
	"github.com/t-ecosystem/market_api/internal/models"
	"github.com/t-ecosystem/market_api/internal/utils"
)

// PurchaseStore is the slice of purchase persistence the entitlement
// service needs.
type PurchaseStore interface {
	Create(ctx context.Context, p *models.Purchase) error
	ListByUserAndModule(ctx context.Context, userID, moduleID string) ([]models.Purchase, error)
	ListActiveByUser(ctx context.Context, userID string) ([]models.Purchase, error)
	Reactivate(ctx context.Context, purchaseID string, at time.Time) error
	DeactivateActive(ctx context.Context, userID, moduleID string) (int64, error)
}

// ProjectionCache caches the per-user installed-module projection.
type ProjectionCache interface {
	Get(ctx context.Context, userID string) ([]models.InstalledModule, bool, error)
	Put(ctx context.Context, userID string, mods []models.InstalledModule) error
	Invalidate(ctx context.Context, userID string) error
}

// InstallLocker serializes concurrent install attempts for the same
// user and module.
type InstallLocker interface {
	Acquire(ctx context.Context, userID, moduleID string) (release func(), acquired bool, err error)
}

// uninstallNotifier pushes uninstall events to the user's open streams.
type uninstallNotifier interface {
	NotifyModuleUninstalled(userID string, moduleIDs []string)
}

// EntitlementService owns the install/uninstall lifecycle and the
// installed-module projection derived from purchase records.
type EntitlementService struct {
	catalog   *catalog.Catalog
	purchases PurchaseStore
	cache     ProjectionCache
	locks     InstallLocker
	notifier  uninstallNotifier
}

// NewEntitlementService creates a new EntitlementService. cache, locks and
// notifier may be nil, in which case the matching concern is skipped.
func NewEntitlementService(cat *catalog.Catalog, purchases PurchaseStore, cache ProjectionCache, locks InstallLocker, notifier uninstallNotifier) *EntitlementService {
	return &EntitlementService{
		catalog:   cat,
		purchases: purchases,
		cache:     cache,
		locks:     locks,
		notifier:  notifier,
	}
}

// ListInstalled returns the user's installed modules, newest install last.
// The projection is served from cache when possible and rebuilt from the
// purchase records otherwise.
func (s *EntitlementService) ListInstalled(ctx context.Context, userID string) ([]models.InstalledModule, error) {
	if s.cache != nil {
		if mods, found, err := s.cache.Get(ctx, userID); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Entitlement cache read failed, falling back to store")
		} else if found {
			return mods, nil
		}
	}

	mods, err := s.projectFromStore(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, userID, mods); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Entitlement cache write failed")
		}
	}
	return mods, nil
}

// IsInstalled reports whether the user has an active entitlement for the
// module.
func (s *EntitlementService) IsInstalled(ctx context.Context, userID, moduleID string) (bool, error) {
	mods, err := s.ListInstalled(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, m := range mods {
		if m.ModuleID == moduleID && m.Status == models.InstalledStatusActive {
			return true, nil
		}
	}
	return false, nil
}

// InstallDirect installs a module without going through checkout. Only
// free modules and repurchases (a prior purchase record exists for this
// user and module) are eligible; first-time installs of paid modules must
// go through checkout and return ErrCheckoutRequired.
func (s *EntitlementService) InstallDirect(ctx context.Context, userID, moduleID string) error {
	mod, err := s.catalog.GetModuleByID(moduleID)
	if err != nil {
		return err
	}

	if !mod.IsFree() {
		prior, err := s.purchases.ListByUserAndModule(ctx, userID, moduleID)
		if err != nil {
			return fmt.Errorf("%w: %v", utils.ErrStoreUnavailable, err)
		}
		if len(prior) == 0 {
			return utils.ErrCheckoutRequired
		}
	}

	return s.Install(ctx, userID, moduleID, "", mod.Price)
}

// Install grants the user an active entitlement for the module. Dependency
// modules must already be installed. Any existing purchase record for the
// pair, whatever its status, is reactivated instead of duplicated: install
// is idempotent and a user never holds more than one purchase per module.
func (s *EntitlementService) Install(ctx context.Context, userID, moduleID, checkoutSessionID string, amount int) error {
	mod, err := s.catalog.GetModuleByID(moduleID)
	if err != nil {
		return err
	}

	if s.locks != nil {
		release, acquired, err := s.locks.Acquire(ctx, userID, moduleID)
		if err != nil {
			log.Warn().Err(err).Str("module_id", moduleID).Msg("Install lock unavailable, proceeding without it")
		} else if !acquired {
			return utils.ErrInstallInFlight
		} else {
			defer release()
		}
	}

	// Every ancestor in the dependency chain must be active first.
	chain, err := s.catalog.ParentChain(moduleID)
	if err != nil {
		return err
	}
	for _, parent := range chain {
		installed, err := s.IsInstalled(ctx, userID, parent.ID)
		if err != nil {
			return err
		}
		if !installed {
			return fmt.Errorf("%w: %s requires %s", utils.ErrDependencyNotMet, moduleID, parent.ID)
		}
	}

	existing, err := s.purchases.ListByUserAndModule(ctx, userID, moduleID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStoreUnavailable, err)
	}

	now := time.Now()
	if len(existing) > 0 {
		latest := existing[0]
		if err := s.purchases.Reactivate(ctx, latest.PurchaseID, now); err != nil {
			return fmt.Errorf("%w: %v", utils.ErrStoreUnavailable, err)
		}
	} else {
		p := &models.Purchase{
			PurchaseID:   fmt.Sprintf("pur_%d_%s", now.UnixMilli(), moduleID),
			UserID:       userID,
			ModuleID:     moduleID,
			ModuleName:   mod.Name,
			Type:         purchaseTypeFor(mod),
			Status:       models.PurchaseStatusActive,
			Amount:       amount,
			Currency:     mod.Currency,
			PurchaseDate: now,
		}
		if checkoutSessionID != "" {
			p.CheckoutSessionID = &checkoutSessionID
		}
		if err := s.purchases.Create(ctx, p); err != nil {
			return fmt.Errorf("%w: %v", utils.ErrStoreUnavailable, err)
		}
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Entitlement cache invalidation failed")
		}
	}

	log.Info().
		Str("user_id", userID).
		Str("module_id", moduleID).
		Msg("Module installed")
	return nil
}

// Uninstall deactivates the user's entitlement for the module and cascades
// to every installed add-on that depends on it. Uninstalling a module that
// is not installed is a no-op.
func (s *EntitlementService) Uninstall(ctx context.Context, userID, moduleID string) error {
	if _, err := s.catalog.GetModuleByID(moduleID); err != nil {
		return err
	}

	mods, err := s.ListInstalled(ctx, userID)
	if err != nil {
		return err
	}

	// Dependents first so the store never holds an active add-on whose
	// parent is inactive.
	var toRemove []string
	for _, m := range mods {
		if m.ModuleID != moduleID && s.catalog.DependsOn(m.ModuleID, moduleID) {
			toRemove = append(toRemove, m.ModuleID)
		}
	}
	toRemove = append(toRemove, moduleID)

	var deactivated int64
	for _, id := range toRemove {
		n, err := s.purchases.DeactivateActive(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("%w: %v", utils.ErrStoreUnavailable, err)
		}
		deactivated += n
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Entitlement cache invalidation failed")
		}
	}

	// No-op uninstalls produce no event.
	if s.notifier != nil && deactivated > 0 {
		s.notifier.NotifyModuleUninstalled(userID, toRemove)
	}

	log.Info().
		Str("user_id", userID).
		Str("module_id", moduleID).
		Int("cascaded", len(toRemove)-1).
		Msg("Module uninstalled")
	return nil
}

// projectFromStore rebuilds the installed-module projection from active
// purchase records, ordered by install time then module id so repeated
// projections of the same store state are identical.
func (s *EntitlementService) projectFromStore(ctx context.Context, userID string) ([]models.InstalledModule, error) {
	purchases, err := s.purchases.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrStoreUnavailable, err)
	}

	seen := make(map[string]bool, len(purchases))
	mods := make([]models.InstalledModule, 0, len(purchases))
	for _, p := range purchases {
		if seen[p.ModuleID] {
			continue
		}
		seen[p.ModuleID] = true

		status := models.InstalledStatusActive
		if p.ExpiryDate != nil && p.ExpiryDate.Before(time.Now()) {
			status = models.InstalledStatusExpired
		}
		mods = append(mods, models.InstalledModule{
			ModuleID:    p.ModuleID,
			InstalledAt: p.PurchaseDate,
			Status:      status,
			AutoRenew:   p.Type == models.PurchaseTypeSubscription,
		})
	}

	sort.SliceStable(mods, func(i, j int) bool {
		if !mods[i].InstalledAt.Equal(mods[j].InstalledAt) {
			return mods[i].InstalledAt.Before(mods[j].InstalledAt)
		}
		return mods[i].ModuleID < mods[j].ModuleID
	})
	return mods, nil
}

// purchaseTypeFor maps module types to purchase billing types: apps are
// subscriptions, add-ons and integrations are one-time purchases.
func purchaseTypeFor(mod *models.Module) models.PurchaseType {
	if mod.Type == models.ModuleTypeApp {
		return models.PurchaseTypeSubscription
	}
	return models.PurchaseTypeOneTime
}
