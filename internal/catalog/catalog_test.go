package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t-ecosystem/market_api/internal/models"
	"github.com/t-ecosystem/market_api/internal/utils"
)

func TestSeedCatalogIsValid(t *testing.T) {
	cat, err := New(SeedModules())
	require.NoError(t, err)
	assert.Equal(t, len(SeedModules()), cat.Len())
}

func TestSeedFeatureMapTargetsExistingModules(t *testing.T) {
	cat, err := New(SeedModules())
	require.NoError(t, err)

	for featureKey, moduleID := range SeedFeatureMap() {
		_, err := cat.GetModuleByID(moduleID)
		assert.NoError(t, err, "feature %s points at missing module %s", featureKey, moduleID)
	}
}

func TestGetModuleByIDUnknown(t *testing.T) {
	cat, err := New(SeedModules())
	require.NoError(t, err)

	_, err = cat.GetModuleByID("nope")
	assert.ErrorIs(t, err, utils.ErrModuleNotFound)
}

func TestParentChain(t *testing.T) {
	cat, err := New(SeedModules())
	require.NoError(t, err)

	chain, err := cat.ParentChain("flux-analytics")
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, "flux-core", chain[0].ID)
	assert.Equal(t, "uph-core", chain[1].ID)

	chain, err = cat.ParentChain("uph-core")
	require.NoError(t, err)
	assert.Empty(t, chain)
}

func TestDependsOn(t *testing.T) {
	cat, err := New(SeedModules())
	require.NoError(t, err)

	assert.True(t, cat.DependsOn("flux-analytics", "flux-core"))
	assert.True(t, cat.DependsOn("flux-analytics", "uph-core"))
	assert.True(t, cat.DependsOn("forge-3d", "uph-core"))
	assert.False(t, cat.DependsOn("flux-core", "flux-analytics"))
	assert.False(t, cat.DependsOn("envi-core", "uph-core"))
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	_, err := New([]models.Module{
		{ID: "a", Type: models.ModuleTypeApp},
		{ID: "a", Type: models.ModuleTypeApp},
	})
	assert.Error(t, err)
}

func TestNewRejectsOrphanAddon(t *testing.T) {
	_, err := New([]models.Module{
		{ID: "a", Type: models.ModuleTypeAddon},
	})
	assert.Error(t, err)

	_, err = New([]models.Module{
		{ID: "a", Type: models.ModuleTypeAddon, ParentID: "missing"},
	})
	assert.Error(t, err)
}

func TestParentChainDetectsCycle(t *testing.T) {
	cat, err := New([]models.Module{
		{ID: "a", Type: models.ModuleTypeAddon, ParentID: "b"},
		{ID: "b", Type: models.ModuleTypeAddon, ParentID: "a"},
	})
	require.NoError(t, err)

	_, err = cat.ParentChain("a")
	assert.Error(t, err)
}

func TestListAddons(t *testing.T) {
	cat, err := New(SeedModules())
	require.NoError(t, err)

	addons := cat.ListAddons("uph-core")
	ids := make([]string, 0, len(addons))
	for _, a := range addons {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"flux-core", "forge-core"}, ids)
}

func TestFilter(t *testing.T) {
	cat, err := New(SeedModules())
	require.NoError(t, err)

	apps := cat.Filter("", string(models.ModuleTypeApp), "")
	for _, m := range apps {
		assert.Equal(t, models.ModuleTypeApp, m.Type)
	}
	assert.NotEmpty(t, apps)

	byName := cat.Filter("", "", "inventory")
	require.NotEmpty(t, byName)
	found := false
	for _, m := range byName {
		if m.ID == "envi-core" {
			found = true
		}
	}
	assert.True(t, found)

	none := cat.Filter(string(models.CategoryFinance), string(models.ModuleTypeApp), "")
	assert.Empty(t, none)
}
