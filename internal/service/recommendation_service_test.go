package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t-ecosystem/market_api/internal/catalog"
	"github.com/t-ecosystem/market_api/internal/models"
	"github.com/t-ecosystem/market_api/internal/utils"
)

func TestRecommendationsDeterministic(t *testing.T) {
	svc := NewRecommendationService(catalog.SeedRecommendations())
	profile := &models.OnboardingProfile{
		Industry:   models.IndustryElectronics,
		TeamSize:   models.TeamSizeMedium,
		PainPoints: []models.PainPoint{models.PainBOMManagement, models.PainInventory},
	}

	first, err := svc.GetRecommendations(profile)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := svc.GetRecommendations(profile)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRecommendationsManufacturingInventory(t *testing.T) {
	svc := NewRecommendationService(catalog.SeedRecommendations())
	result, err := svc.GetRecommendations(&models.OnboardingProfile{
		Industry:   models.IndustryManufacturing,
		PainPoints: []models.PainPoint{models.PainInventory},
	})
	require.NoError(t, err)

	// env-i: +25 pain, +15 industry rank 0. uph: +12 industry rank 1.
	require.NotEmpty(t, result.IndividualApps)
	assert.Equal(t, "env-i", result.IndividualApps[0].ID)

	ids := make([]string, 0, len(result.IndividualApps))
	for _, a := range result.IndividualApps {
		ids = append(ids, a.ID)
	}
	assert.Contains(t, ids, "uph")

	// Both shortlisted apps are in every bundle from Team up, so the top
	// bundle is a full match.
	assert.Equal(t, 100, result.MatchScore)

	var recommended *models.PackageBundle
	for i := range result.Packages {
		if result.Packages[i].Recommended {
			require.Nil(t, recommended, "only one bundle may be recommended")
			recommended = &result.Packages[i]
		}
	}
	require.NotNil(t, recommended)
	assert.False(t, recommended.IsContactTier())
}

func TestRecommendationsEmptyProfile(t *testing.T) {
	svc := NewRecommendationService(catalog.SeedRecommendations())
	result, err := svc.GetRecommendations(&models.OnboardingProfile{})
	require.NoError(t, err)

	assert.Empty(t, result.IndividualApps)
	assert.Equal(t, 50, result.MatchScore)

	// Only the contact tier survives the match floor, and it is never
	// flagged as the recommendation.
	require.Len(t, result.Packages, 1)
	assert.True(t, result.Packages[0].IsContactTier())
	assert.False(t, result.Packages[0].Recommended)
	assert.NotEmpty(t, result.Reasoning)
}

func TestRecommendationsEnterpriseTeamAnchors(t *testing.T) {
	svc := NewRecommendationService(catalog.SeedRecommendations())

	// The anchor bonus alone does not clear the shortlist floor.
	result, err := svc.GetRecommendations(&models.OnboardingProfile{
		TeamSize: models.TeamSizeEnterprise,
	})
	require.NoError(t, err)
	assert.Empty(t, result.IndividualApps)

	// Combined with an industry signal it pushes the anchors to the top.
	result, err = svc.GetRecommendations(&models.OnboardingProfile{
		TeamSize: models.TeamSizeEnterprise,
		Industry: models.IndustryEnergy,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.IndividualApps)
	assert.Equal(t, "uph", result.IndividualApps[0].ID)
}

func TestRecommendationsContactTierAlwaysListed(t *testing.T) {
	svc := NewRecommendationService(catalog.SeedRecommendations())
	result, err := svc.GetRecommendations(&models.OnboardingProfile{
		Industry:   models.IndustryDefense,
		PainPoints: []models.PainPoint{models.PainCompliance, models.PainAnalytics},
	})
	require.NoError(t, err)

	hasContact := false
	for _, p := range result.Packages {
		if p.IsContactTier() {
			hasContact = true
			assert.False(t, p.Recommended)
		}
	}
	assert.True(t, hasContact)
}

func TestRecommendationsInvalidProfile(t *testing.T) {
	svc := NewRecommendationService(catalog.SeedRecommendations())

	_, err := svc.GetRecommendations(&models.OnboardingProfile{Industry: "aerospace"})
	assert.ErrorIs(t, err, utils.ErrInvalidProfile)

	_, err = svc.GetRecommendations(&models.OnboardingProfile{TeamSize: "9000"})
	assert.ErrorIs(t, err, utils.ErrInvalidProfile)

	_, err = svc.GetRecommendations(&models.OnboardingProfile{
		PainPoints: []models.PainPoint{"boredom"},
	})
	assert.ErrorIs(t, err, utils.ErrInvalidProfile)

	_, err = svc.GetRecommendations(nil)
	assert.ErrorIs(t, err, utils.ErrInvalidProfile)
}

func TestRecommendationsNegativeCountsRejected(t *testing.T) {
	svc := NewRecommendationService(catalog.SeedRecommendations())

	_, err := svc.GetRecommendations(&models.OnboardingProfile{MonthlyProjects: -1})
	assert.ErrorIs(t, err, utils.ErrInvalidProfile)

	_, err = svc.GetRecommendations(&models.OnboardingProfile{ActiveUsers: -5})
	assert.ErrorIs(t, err, utils.ErrInvalidProfile)

	// Zero means the onboarding step was skipped.
	_, err = svc.GetRecommendations(&models.OnboardingProfile{MonthlyProjects: 0, ActiveUsers: 0})
	assert.NoError(t, err)
}

func TestRecommendationsPainPointsOnlyRaiseScores(t *testing.T) {
	registry := catalog.SeedRecommendations()
	svc := NewRecommendationService(registry)
	base := &models.OnboardingProfile{
		Industry: models.IndustryManufacturing,
		TeamSize: models.TeamSizeMedium,
	}
	baseline := svc.scoreApps(base)

	for pain, mapped := range registry.PainPointApps {
		widened := &models.OnboardingProfile{
			Industry:   base.Industry,
			TeamSize:   base.TeamSize,
			PainPoints: []models.PainPoint{pain},
		}
		scores := svc.scoreApps(widened)

		for _, app := range registry.Apps {
			assert.GreaterOrEqual(t, scores[app.ID], baseline[app.ID],
				"pain point %s must not lower %s", pain, app.ID)
		}
		for _, appID := range mapped {
			assert.Greater(t, scores[appID], baseline[appID],
				"pain point %s must raise %s", pain, appID)
		}
	}
}

func TestRecommendationsIndustryDecayClampsAtZero(t *testing.T) {
	registry := catalog.RecommendationRegistry{
		Apps: []models.AppInfo{
			{ID: "a1"}, {ID: "a2"}, {ID: "a3"}, {ID: "a4"},
			{ID: "a5"}, {ID: "a6"}, {ID: "a7"},
		},
		Bundles: []models.PackageBundle{
			{ID: "all", Apps: []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7"}},
		},
		IndustryApps: map[models.Industry][]string{
			models.IndustrySoftware: {"a1", "a2", "a3", "a4", "a5", "a6", "a7"},
		},
	}
	svc := NewRecommendationService(registry)

	result, err := svc.GetRecommendations(&models.OnboardingProfile{
		Industry: models.IndustrySoftware,
	})
	require.NoError(t, err)

	// Ranks decay 15, 12, 9, 6, 3, 0, 0: only the first two clear the
	// floor and nothing goes negative.
	ids := make([]string, 0, len(result.IndividualApps))
	for _, a := range result.IndividualApps {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"a1", "a2"}, ids)
}
