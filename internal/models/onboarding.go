package models

// Industry enumerates the sectors offered by the onboarding wizard.
type Industry string

const (
	IndustryDefense       Industry = "defense"
	IndustryMedical       Industry = "medical"
	IndustryElectronics   Industry = "electronics"
	IndustryEnergy        Industry = "energy"
	IndustryAutomotive    Industry = "automotive"
	IndustryManufacturing Industry = "manufacturing"
	IndustrySoftware      Industry = "software"
	IndustryOther         Industry = "other"
)

// TeamSize enumerates the company size buckets.
type TeamSize string

const (
	TeamSizeSmall      TeamSize = "1-5"
	TeamSizeMedium     TeamSize = "6-20"
	TeamSizeLarge      TeamSize = "21-100"
	TeamSizeEnterprise TeamSize = "100+"
)

// UserRole enumerates the respondent's role in the company.
type UserRole string

const (
	RoleOwner    UserRole = "owner"
	RoleManager  UserRole = "manager"
	RoleEngineer UserRole = "engineer"
	RoleIT       UserRole = "it"
	RoleOther    UserRole = "other"
)

// PainPoint enumerates the problems a respondent can flag.
type PainPoint string

const (
	PainProjectTracking  PainPoint = "project-tracking"
	PainInventory        PainPoint = "inventory"
	PainBOMManagement    PainPoint = "bom-management"
	PainDesignVersioning PainPoint = "design-versioning"
	PainCompliance       PainPoint = "compliance"
	PainFieldOperations  PainPoint = "field-operations"
	PainAnalytics        PainPoint = "analytics"
	PainCollaboration    PainPoint = "collaboration"
)

// CurrentTool enumerates tools the team uses today.
type CurrentTool string

const (
	ToolExcel CurrentTool = "excel"
	ToolJira  CurrentTool = "jira"
	ToolERP   CurrentTool = "erp"
	ToolNone  CurrentTool = "none"
	ToolOther CurrentTool = "other"
)

// BudgetTier enumerates self-reported budget appetite.
type BudgetTier string

const (
	BudgetFree       BudgetTier = "free"
	BudgetStarter    BudgetTier = "starter"
	BudgetPro        BudgetTier = "pro"
	BudgetEnterprise BudgetTier = "enterprise"
)

// Priority enumerates what the respondent optimizes for.
type Priority string

const (
	PrioritySpeed      Priority = "speed"
	PriorityControl    Priority = "control"
	PriorityCompliance Priority = "compliance"
)

// OnboardingProfile carries the questionnaire answers feeding the
// recommendation engine. All fields are optional: the wizard fills them in
// incrementally and a partial profile is valid scoring input — absent fields
// simply contribute zero score.
type OnboardingProfile struct {
	CompanyName     string        `json:"companyName,omitempty"`
	Industry        Industry      `json:"industry,omitempty"`
	TeamSize        TeamSize      `json:"teamSize,omitempty"`
	UserRole        UserRole      `json:"userRole,omitempty"`
	PainPoints      []PainPoint   `json:"painPoints,omitempty"`
	CurrentTools    []CurrentTool `json:"currentTools,omitempty"`
	Priority        Priority      `json:"priority,omitempty"`
	MonthlyProjects int           `json:"monthlyProjects,omitempty"`
	ActiveUsers     int           `json:"activeUsers,omitempty"`
	BudgetTier      BudgetTier    `json:"budgetTier,omitempty"`
}

// AppInfo describes one app in the recommendation catalog. This registry is
// separate from the store module catalog: it models the per-seat bundle
// offering, not the purchasable store entries.
type AppInfo struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Icon         string   `json:"icon"`
	MonthlyPrice int      `json:"monthlyPrice"`
	Features     []string `json:"features"`
	Category     string   `json:"category"`
}

// ContactPricing is the sentinel per-user price for bundles that require a
// sales conversation instead of self-serve checkout.
const ContactPricing = -1

// PackageBundle is a pre-set combination of apps at a single per-user price.
type PackageBundle struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	Apps                []string `json:"apps"` // app ids
	MonthlyPricePerUser int      `json:"monthlyPricePerUser"`
	TrialDays           int      `json:"trialDays"`
	Highlight           string   `json:"highlight,omitempty"`
	Recommended         bool     `json:"recommended"`
}

// IsContactTier reports whether the bundle uses contact-sales pricing. The
// contact tier is the unconditional top offering: always listed, never
// auto-recommended.
func (b *PackageBundle) IsContactTier() bool {
	return b.MonthlyPricePerUser == ContactPricing
}

// RecommendationResult is the engine output: bundles above the match
// threshold (plus the contact tier), the individual apps behind them, an
// overall match score and a human-readable explanation.
type RecommendationResult struct {
	Packages       []PackageBundle `json:"packages"`
	IndividualApps []AppInfo       `json:"individualApps"`
	MatchScore     int             `json:"matchScore"`
	Reasoning      string          `json:"reasoning"`
}
