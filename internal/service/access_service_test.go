package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t-ecosystem/market_api/internal/catalog"
)

func newTestAccess(t *testing.T) (*AccessService, *EntitlementService) {
	t.Helper()
	entitlements, _ := newTestEntitlements(t)
	return NewAccessService(catalog.SeedFeatureMap(), entitlements), entitlements
}

func TestHasFeatureGated(t *testing.T) {
	access, entitlements := newTestAccess(t)
	ctx := context.Background()

	decision, err := access.HasFeature(ctx, "u1", "envi_access")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, "envi-core", decision.ModuleID)

	require.NoError(t, entitlements.Install(ctx, "u1", "envi-core", "sess_1", 199))

	decision, err = access.HasFeature(ctx, "u1", "envi_access")
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestHasFeatureUnmappedKeyIsOpen(t *testing.T) {
	access, _ := newTestAccess(t)

	decision, err := access.HasFeature(context.Background(), "u1", "dark_mode")
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Empty(t, decision.ModuleID)
}

func TestHasFeatureAddonGatedIndependently(t *testing.T) {
	access, entitlements := newTestAccess(t)
	ctx := context.Background()

	require.NoError(t, entitlements.Install(ctx, "u1", "uph-core", "", 0))
	require.NoError(t, entitlements.Install(ctx, "u1", "flux-core", "", 0))

	// Base feature open, add-on feature still closed.
	decision, err := access.HasFeature(ctx, "u1", "flux_core")
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	decision, err = access.HasFeature(ctx, "u1", "flux_charts")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
}
