package catalog

import "github.com/t-ecosystem/market_api/internal/models"

// RecommendationRegistry bundles the static tables the recommendation engine
// scores against. It is passed into the engine explicitly so tests can swap
// in their own registries.
type RecommendationRegistry struct {
	// Apps is the per-seat app catalog, in ranking tie-break order.
	Apps []models.AppInfo
	// Bundles is the package offering, in ranking tie-break order.
	Bundles []models.PackageBundle
	// PainPointApps maps each pain point to the apps that address it.
	PainPointApps map[models.PainPoint][]string
	// IndustryApps maps each industry to its relevance-ranked app list.
	IndustryApps map[models.Industry][]string
	// AnchorApps receive a flat bonus for the largest team-size bucket:
	// big organizations need central coordination and inventory control
	// regardless of the rest of the profile.
	AnchorApps []string
}

// SeedRecommendations returns the production recommendation registry.
func SeedRecommendations() RecommendationRegistry {
	return RecommendationRegistry{
		Apps: []models.AppInfo{
			{
				ID:           "uph",
				Name:         "UPH (Unified Project Hub)",
				Description:  "Project, task and financial management hub",
				Icon:         "📊",
				MonthlyPrice: 29,
				Features:     []string{"Project tracking", "Kanban/Gantt", "ECR/ECO", "RAID log", "Focus mode"},
				Category:     "project",
			},
			{
				ID:           "env-i",
				Name:         "ENV-I",
				Description:  "Smart inventory and warehouse management",
				Icon:         "📦",
				MonthlyPrice: 19,
				Features:     []string{"Stock tracking", "Barcode/QR", "Warehouse management", "Automatic alerts"},
				Category:     "inventory",
			},
			{
				ID:           "weave",
				Name:         "Weave",
				Description:  "Electronics design and BOM management",
				Icon:         "🔧",
				MonthlyPrice: 39,
				Features:     []string{"Schematic editor", "BOM export", "JLCPCB integration", "Version control"},
				Category:     "design",
			},
			{
				ID:           "t-sa",
				Name:         "T-SA (Spec Analyzer)",
				Description:  "Technical document and specification analysis",
				Icon:         "📋",
				MonthlyPrice: 15,
				Features:     []string{"PDF analysis", "Parameter extraction", "Comparison", "AI assisted"},
				Category:     "analytics",
			},
			{
				ID:           "renderci",
				Name:         "Renderci",
				Description:  "3D visualization and render service",
				Icon:         "🎨",
				MonthlyPrice: 25,
				Features:     []string{"3D render", "Animation", "Cloud render", "Export formats"},
				Category:     "design",
			},
		},

		Bundles: []models.PackageBundle{
			{
				ID:                  "starter",
				Name:                "Starter",
				Description:         "The essentials for small teams",
				Apps:                []string{"uph"},
				MonthlyPricePerUser: 0,
				TrialDays:           15,
				Highlight:           "15-day free trial",
			},
			{
				ID:                  "team",
				Name:                "Team",
				Description:         "For mid-sized teams",
				Apps:                []string{"uph", "env-i"},
				MonthlyPricePerUser: 39,
				TrialDays:           15,
				Highlight:           "Most popular",
			},
			{
				ID:                  "engineer-pro",
				Name:                "Engineer Pro",
				Description:         "The full package for engineering teams",
				Apps:                []string{"uph", "weave", "env-i", "t-sa"},
				MonthlyPricePerUser: 79,
				TrialDays:           15,
				Highlight:           "BOM + ECR/ECO",
			},
			{
				ID:                  "enterprise",
				Name:                "Enterprise",
				Description:         "Enterprise solutions, custom pricing",
				Apps:                []string{"uph", "weave", "env-i", "t-sa", "renderci"},
				MonthlyPricePerUser: models.ContactPricing,
				TrialDays:           30,
				Highlight:           "Contact sales",
			},
		},

		PainPointApps: map[models.PainPoint][]string{
			models.PainProjectTracking:  {"uph"},
			models.PainInventory:        {"env-i"},
			models.PainBOMManagement:    {"weave", "uph"},
			models.PainDesignVersioning: {"weave"},
			models.PainCompliance:       {"uph", "t-sa"},
			models.PainFieldOperations:  {"env-i"},
			models.PainAnalytics:        {"t-sa", "uph"},
			models.PainCollaboration:    {"uph"},
		},

		IndustryApps: map[models.Industry][]string{
			models.IndustryDefense:       {"uph", "t-sa", "weave"},
			models.IndustryMedical:       {"uph", "t-sa", "env-i"},
			models.IndustryElectronics:   {"weave", "uph", "renderci"},
			models.IndustryEnergy:        {"uph", "env-i"},
			models.IndustryAutomotive:    {"weave", "uph", "env-i"},
			models.IndustryManufacturing: {"env-i", "uph"},
			models.IndustrySoftware:      {"uph"},
			models.IndustryOther:         {"uph"},
		},

		AnchorApps: []string{"uph", "env-i"},
	}
}
