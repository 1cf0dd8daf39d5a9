package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t-ecosystem/market_api/internal/catalog"
	"github.com/t-ecosystem/market_api/internal/models"
	"github.com/t-ecosystem/market_api/internal/utils"
)

// fakePurchaseStore is an in-memory PurchaseStore.
type fakePurchaseStore struct {
	purchases []models.Purchase
	failAll   bool
}

var errStoreDown = errors.New("store down")

func (f *fakePurchaseStore) Create(_ context.Context, p *models.Purchase) error {
	if f.failAll {
		return errStoreDown
	}
	p.ID = len(f.purchases) + 1
	f.purchases = append(f.purchases, *p)
	return nil
}

func (f *fakePurchaseStore) ListByUserAndModule(_ context.Context, userID, moduleID string) ([]models.Purchase, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	var out []models.Purchase
	for _, p := range f.purchases {
		if p.UserID == userID && p.ModuleID == moduleID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PurchaseDate.After(out[j].PurchaseDate)
	})
	return out, nil
}

func (f *fakePurchaseStore) ListActiveByUser(_ context.Context, userID string) ([]models.Purchase, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	var out []models.Purchase
	for _, p := range f.purchases {
		if p.UserID == userID && p.Status == models.PurchaseStatusActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePurchaseStore) Reactivate(_ context.Context, purchaseID string, at time.Time) error {
	if f.failAll {
		return errStoreDown
	}
	for i := range f.purchases {
		if f.purchases[i].PurchaseID == purchaseID {
			f.purchases[i].Status = models.PurchaseStatusActive
			f.purchases[i].PurchaseDate = at
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakePurchaseStore) DeactivateActive(_ context.Context, userID, moduleID string) (int64, error) {
	if f.failAll {
		return 0, errStoreDown
	}
	var n int64
	for i := range f.purchases {
		if f.purchases[i].UserID == userID &&
			f.purchases[i].ModuleID == moduleID &&
			f.purchases[i].Status == models.PurchaseStatusActive {
			f.purchases[i].Status = models.PurchaseStatusInactive
			n++
		}
	}
	return n, nil
}

func newTestEntitlements(t *testing.T) (*EntitlementService, *fakePurchaseStore) {
	t.Helper()
	cat, err := catalog.New(catalog.SeedModules())
	require.NoError(t, err)
	store := &fakePurchaseStore{}
	return NewEntitlementService(cat, store, nil, nil, nil), store
}

func TestInstallRequiresParentChain(t *testing.T) {
	svc, _ := newTestEntitlements(t)
	ctx := context.Background()

	err := svc.Install(ctx, "u1", "flux-analytics", "", 49)
	assert.ErrorIs(t, err, utils.ErrDependencyNotMet)

	// A failed install leaves no state behind.
	installed, err := svc.IsInstalled(ctx, "u1", "flux-analytics")
	require.NoError(t, err)
	assert.False(t, installed)

	// uph-core alone is not enough, flux-core sits between them.
	require.NoError(t, svc.Install(ctx, "u1", "uph-core", "", 0))
	err = svc.Install(ctx, "u1", "flux-analytics", "", 49)
	assert.ErrorIs(t, err, utils.ErrDependencyNotMet)

	require.NoError(t, svc.Install(ctx, "u1", "flux-core", "", 0))
	require.NoError(t, svc.Install(ctx, "u1", "flux-analytics", "", 49))

	installed, err = svc.IsInstalled(ctx, "u1", "flux-analytics")
	require.NoError(t, err)
	assert.True(t, installed)
}

func TestInstallUnknownModule(t *testing.T) {
	svc, _ := newTestEntitlements(t)
	err := svc.Install(context.Background(), "u1", "nope", "", 0)
	assert.ErrorIs(t, err, utils.ErrModuleNotFound)
}

func TestInstallDirectPaidModuleNeedsCheckout(t *testing.T) {
	svc, _ := newTestEntitlements(t)
	ctx := context.Background()

	err := svc.InstallDirect(ctx, "u1", "envi-core")
	assert.ErrorIs(t, err, utils.ErrCheckoutRequired)

	// Free modules install directly.
	require.NoError(t, svc.InstallDirect(ctx, "u1", "uph-core"))
}

func TestReinstallReactivatesInsteadOfDuplicating(t *testing.T) {
	svc, store := newTestEntitlements(t)
	ctx := context.Background()

	require.NoError(t, svc.Install(ctx, "u1", "envi-core", "sess_1", 199))
	require.NoError(t, svc.Uninstall(ctx, "u1", "envi-core"))

	// A prior purchase exists, so the direct path is allowed and free.
	require.NoError(t, svc.InstallDirect(ctx, "u1", "envi-core"))

	count := 0
	for _, p := range store.purchases {
		if p.UserID == "u1" && p.ModuleID == "envi-core" {
			count++
			assert.Equal(t, models.PurchaseStatusActive, p.Status)
		}
	}
	assert.Equal(t, 1, count, "reinstall must reuse the purchase record")
}

func TestInstallIsIdempotentWhileActive(t *testing.T) {
	svc, store := newTestEntitlements(t)
	ctx := context.Background()

	require.NoError(t, svc.Install(ctx, "u1", "uph-core", "", 0))
	require.NoError(t, svc.Install(ctx, "u1", "uph-core", "", 0))

	count := 0
	for _, p := range store.purchases {
		if p.UserID == "u1" && p.ModuleID == "uph-core" {
			count++
			assert.Equal(t, models.PurchaseStatusActive, p.Status)
		}
	}
	assert.Equal(t, 1, count, "repeat install must not duplicate the record")

	installed, err := svc.IsInstalled(ctx, "u1", "uph-core")
	require.NoError(t, err)
	assert.True(t, installed)
}

func TestUninstallCascadesToDependents(t *testing.T) {
	svc, _ := newTestEntitlements(t)
	ctx := context.Background()

	require.NoError(t, svc.Install(ctx, "u1", "uph-core", "", 0))
	require.NoError(t, svc.Install(ctx, "u1", "flux-core", "", 0))
	require.NoError(t, svc.Install(ctx, "u1", "flux-analytics", "", 49))
	require.NoError(t, svc.Install(ctx, "u1", "forge-core", "", 0))

	require.NoError(t, svc.Uninstall(ctx, "u1", "flux-core"))

	for id, want := range map[string]bool{
		"uph-core":       true,
		"flux-core":      false,
		"flux-analytics": false,
		"forge-core":     true,
	} {
		got, err := svc.IsInstalled(ctx, "u1", id)
		require.NoError(t, err)
		assert.Equal(t, want, got, id)
	}
}

func TestUninstallRootRemovesEverythingBelow(t *testing.T) {
	svc, _ := newTestEntitlements(t)
	ctx := context.Background()

	require.NoError(t, svc.Install(ctx, "u1", "uph-core", "", 0))
	require.NoError(t, svc.Install(ctx, "u1", "forge-core", "", 0))
	require.NoError(t, svc.Install(ctx, "u1", "forge-3d", "", 79))

	require.NoError(t, svc.Uninstall(ctx, "u1", "uph-core"))

	mods, err := svc.ListInstalled(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, mods)
}

// fakeUninstallNotifier records uninstall events per call.
type fakeUninstallNotifier struct {
	calls [][]string
	users []string
}

func (f *fakeUninstallNotifier) NotifyModuleUninstalled(userID string, moduleIDs []string) {
	f.users = append(f.users, userID)
	f.calls = append(f.calls, moduleIDs)
}

func TestUninstallPublishesRemovedModules(t *testing.T) {
	cat, err := catalog.New(catalog.SeedModules())
	require.NoError(t, err)
	store := &fakePurchaseStore{}
	notifier := &fakeUninstallNotifier{}
	svc := NewEntitlementService(cat, store, nil, nil, notifier)
	ctx := context.Background()

	require.NoError(t, svc.Install(ctx, "u1", "uph-core", "", 0))
	require.NoError(t, svc.Install(ctx, "u1", "flux-core", "", 0))
	require.NoError(t, svc.Install(ctx, "u1", "flux-analytics", "", 49))

	require.NoError(t, svc.Uninstall(ctx, "u1", "flux-core"))

	require.Len(t, notifier.calls, 1, "one event per uninstall")
	assert.Equal(t, "u1", notifier.users[0])
	assert.Equal(t, []string{"flux-analytics", "flux-core"}, notifier.calls[0],
		"dependents come first in the removal set")

	// Uninstalling something that is not installed stays silent.
	require.NoError(t, svc.Uninstall(ctx, "u1", "weave-core"))
	assert.Len(t, notifier.calls, 1)
}

func TestUninstallNotInstalledIsNoOp(t *testing.T) {
	svc, _ := newTestEntitlements(t)
	assert.NoError(t, svc.Uninstall(context.Background(), "u1", "uph-core"))
}

func TestListInstalledOrderIsStable(t *testing.T) {
	svc, _ := newTestEntitlements(t)
	ctx := context.Background()

	require.NoError(t, svc.Install(ctx, "u1", "uph-core", "", 0))
	require.NoError(t, svc.Install(ctx, "u1", "weave-core", "", 29))
	require.NoError(t, svc.Install(ctx, "u1", "tsa-core", "", 19))

	first, err := svc.ListInstalled(ctx, "u1")
	require.NoError(t, err)
	second, err := svc.ListInstalled(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestStoreFailureSurfacesAsUnavailable(t *testing.T) {
	svc, store := newTestEntitlements(t)
	store.failAll = true

	_, err := svc.ListInstalled(context.Background(), "u1")
	assert.ErrorIs(t, err, utils.ErrStoreUnavailable)

	err = svc.Install(context.Background(), "u1", "uph-core", "", 0)
	assert.ErrorIs(t, err, utils.ErrStoreUnavailable)
}

func TestEntitlementsAreIsolatedPerUser(t *testing.T) {
	svc, _ := newTestEntitlements(t)
	ctx := context.Background()

	require.NoError(t, svc.Install(ctx, "u1", "uph-core", "", 0))

	installed, err := svc.IsInstalled(ctx, "u2", "uph-core")
	require.NoError(t, err)
	assert.False(t, installed)
}
