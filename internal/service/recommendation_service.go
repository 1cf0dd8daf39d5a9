package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/t-ecosystem/market_api/internal/catalog"
	"github.com/t-ecosystem/market_api/internal/models"
	"github.com/t-ecosystem/market_api/internal/utils"
)

const (
	painPointWeight = 25
	industryTopRank = 15
	industryDecay   = 3
	anchorBonus     = 10

	appScoreFloor     = 10 // apps must score above this to be suggested
	maxIndividualApps = 4
	bundleMatchFloor  = 30 // bundles must match above this percentage
	defaultMatchScore = 50
)

// RecommendationService turns an onboarding profile into a scored set of
// bundle and app suggestions. The engine is a pure function over the
// registry: the same profile always yields the same result, in the same
// order.
type RecommendationService struct {
	registry catalog.RecommendationRegistry
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(registry catalog.RecommendationRegistry) *RecommendationService {
	return &RecommendationService{registry: registry}
}

// GetRecommendations scores every app against the profile, keeps the
// strongest matches and maps them onto the bundle offering.
func (s *RecommendationService) GetRecommendations(profile *models.OnboardingProfile) (*models.RecommendationResult, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	appScores := s.scoreApps(profile)

	// Shortlist apps above the floor, strongest first. Ties keep registry
	// order so output never depends on map iteration.
	type scoredApp struct {
		app   models.AppInfo
		score int
	}
	var shortlist []scoredApp
	for _, app := range s.registry.Apps {
		if appScores[app.ID] > appScoreFloor {
			shortlist = append(shortlist, scoredApp{app: app, score: appScores[app.ID]})
		}
	}
	sort.SliceStable(shortlist, func(i, j int) bool {
		return shortlist[i].score > shortlist[j].score
	})
	if len(shortlist) > maxIndividualApps {
		shortlist = shortlist[:maxIndividualApps]
	}

	shortlisted := make(map[string]bool, len(shortlist))
	apps := make([]models.AppInfo, 0, len(shortlist))
	for _, sa := range shortlist {
		shortlisted[sa.app.ID] = true
		apps = append(apps, sa.app)
	}

	// Bundle relevance is the share of its apps that made the shortlist.
	type scoredBundle struct {
		bundle models.PackageBundle
		score  int
	}
	var ranked []scoredBundle
	for _, b := range s.registry.Bundles {
		matched := 0
		for _, appID := range b.Apps {
			if shortlisted[appID] {
				matched++
			}
		}
		score := 0
		if len(b.Apps) > 0 {
			score = matched * 100 / len(b.Apps)
		}
		ranked = append(ranked, scoredBundle{bundle: b, score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	matchScore := defaultMatchScore
	if len(ranked) > 0 && ranked[0].score > 0 {
		matchScore = ranked[0].score
	}

	// Keep bundles above the floor. The contact tier is always offered but
	// never flagged as the recommendation.
	packages := make([]models.PackageBundle, 0, len(ranked))
	flagged := false
	for _, rb := range ranked {
		if rb.score <= bundleMatchFloor && !rb.bundle.IsContactTier() {
			continue
		}
		b := rb.bundle
		if !flagged && !b.IsContactTier() {
			b.Recommended = true
			flagged = true
		}
		packages = append(packages, b)
	}

	return &models.RecommendationResult{
		Packages:       packages,
		IndividualApps: apps,
		MatchScore:     matchScore,
		Reasoning:      buildReasoning(profile, apps),
	}, nil
}

// scoreApps computes the per-app relevance score for the profile.
func (s *RecommendationService) scoreApps(profile *models.OnboardingProfile) map[string]int {
	scores := make(map[string]int, len(s.registry.Apps))

	for _, pain := range profile.PainPoints {
		for _, appID := range s.registry.PainPointApps[pain] {
			scores[appID] += painPointWeight
		}
	}

	if profile.Industry != "" {
		for idx, appID := range s.registry.IndustryApps[profile.Industry] {
			bonus := industryTopRank - industryDecay*idx
			if bonus < 0 {
				bonus = 0
			}
			scores[appID] += bonus
		}
	}

	if profile.TeamSize == models.TeamSizeEnterprise {
		for _, appID := range s.registry.AnchorApps {
			scores[appID] += anchorBonus
		}
	}

	return scores
}

// buildReasoning produces the one-line explanation shown next to the
// suggestions.
func buildReasoning(profile *models.OnboardingProfile, apps []models.AppInfo) string {
	var parts []string
	if profile.Industry != "" {
		parts = append(parts, fmt.Sprintf("teams in the %s industry", profile.Industry))
	}
	if profile.TeamSize != "" {
		parts = append(parts, fmt.Sprintf("companies of %s people", profile.TeamSize))
	}
	if len(profile.PainPoints) > 0 {
		parts = append(parts, fmt.Sprintf("%d of the challenges you selected", len(profile.PainPoints)))
	}

	if len(parts) == 0 || len(apps) == 0 {
		return "A balanced starting point based on your profile."
	}

	names := make([]string, 0, len(apps))
	for _, a := range apps {
		names = append(names, a.Name)
	}
	return fmt.Sprintf("Based on %s, we suggest %s.",
		strings.Join(parts, ", "), strings.Join(names, ", "))
}

// validateProfile rejects enum values outside the questionnaire's domain.
// Empty fields are fine: a partial profile is valid scoring input.
func validateProfile(profile *models.OnboardingProfile) error {
	if profile == nil {
		return utils.ErrInvalidProfile
	}

	// Zero means the step was skipped, so only negatives are rejected.
	if profile.MonthlyProjects < 0 {
		return fmt.Errorf("%w: monthlyProjects must not be negative", utils.ErrInvalidProfile)
	}
	if profile.ActiveUsers < 0 {
		return fmt.Errorf("%w: activeUsers must not be negative", utils.ErrInvalidProfile)
	}

	switch profile.Industry {
	case "", models.IndustryDefense, models.IndustryMedical, models.IndustryElectronics,
		models.IndustryEnergy, models.IndustryAutomotive, models.IndustryManufacturing,
		models.IndustrySoftware, models.IndustryOther:
	default:
		return fmt.Errorf("%w: unknown industry %q", utils.ErrInvalidProfile, profile.Industry)
	}

	switch profile.TeamSize {
	case "", models.TeamSizeSmall, models.TeamSizeMedium, models.TeamSizeLarge, models.TeamSizeEnterprise:
	default:
		return fmt.Errorf("%w: unknown team size %q", utils.ErrInvalidProfile, profile.TeamSize)
	}

	valid := map[models.PainPoint]bool{
		models.PainProjectTracking:  true,
		models.PainInventory:        true,
		models.PainBOMManagement:    true,
		models.PainDesignVersioning: true,
		models.PainCompliance:       true,
		models.PainFieldOperations:  true,
		models.PainAnalytics:        true,
		models.PainCollaboration:    true,
	}
	for _, p := range profile.PainPoints {
		if !valid[p] {
			return fmt.Errorf("%w: unknown pain point %q", utils.ErrInvalidProfile, p)
		}
	}
	return nil
}
