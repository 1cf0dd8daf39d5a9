package models

// ModuleCategory enumerates the storefront categories a module can belong to.
type ModuleCategory string

const (
	CategoryOperations   ModuleCategory = "Operations"
	CategoryEngineering  ModuleCategory = "Engineering"
	CategoryFinance      ModuleCategory = "Finance"
	CategoryHR           ModuleCategory = "HR"
	CategoryProductivity ModuleCategory = "Productivity"
	CategoryIntegration  ModuleCategory = "Integration"
)

// ModuleType enumerates the supported module types.
type ModuleType string

const (
	ModuleTypeApp         ModuleType = "app"
	ModuleTypeAddon       ModuleType = "addon"
	ModuleTypeIntegration ModuleType = "integration"
)

// Module represents a purchasable unit in the catalog: a standalone app, an
// add-on that requires a parent module, or a cross-app integration.
// The catalog is loaded once at startup and never mutated at runtime.
type Module struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	LongDescription string         `json:"longDescription,omitempty"`
	Benefits        []string       `json:"benefits,omitempty"`
	Icon            string         `json:"icon"`
	Category        ModuleCategory `json:"category"`
	Type            ModuleType     `json:"type"`
	ParentID        string         `json:"parentId,omitempty"` // set iff Type == addon
	Price           int            `json:"price"`              // whole currency units, 0 = free
	Currency        string         `json:"currency"`
	IsPopular       bool           `json:"isPopular,omitempty"`
	IsNew           bool           `json:"isNew,omitempty"`
	Features        []string       `json:"features"` // feature keys this module unlocks
	Version         string         `json:"version"`
	URL             string         `json:"url,omitempty"`
}

// IsFree reports whether the module can be installed without payment.
func (m *Module) IsFree() bool {
	return m.Price == 0
}
