package catalog

import (
	"fmt"
	"strings"

	"github.com/t-ecosystem/market_api/internal/models"
	"github.com/t-ecosystem/market_api/internal/utils"
)

// Catalog is an immutable, ordered registry of purchasable modules. It is
// built once (from the seed or a fetched snapshot) and only read afterwards,
// so lookups need no locking.
type Catalog struct {
	modules []models.Module
	byID    map[string]*models.Module
}

// New builds a Catalog from the given modules, preserving insertion order.
// It fails if module ids collide or an add-on references a missing parent.
func New(modules []models.Module) (*Catalog, error) {
	c := &Catalog{
		modules: make([]models.Module, len(modules)),
		byID:    make(map[string]*models.Module, len(modules)),
	}
	copy(c.modules, modules)

	for i := range c.modules {
		m := &c.modules[i]
		if _, exists := c.byID[m.ID]; exists {
			return nil, fmt.Errorf("catalog: duplicate module id %q", m.ID)
		}
		c.byID[m.ID] = m
	}

	// Validate dependency links after all ids are indexed.
	for i := range c.modules {
		m := &c.modules[i]
		if m.Type == models.ModuleTypeAddon && m.ParentID == "" {
			return nil, fmt.Errorf("catalog: addon %q has no parent", m.ID)
		}
		if m.ParentID != "" {
			if _, ok := c.byID[m.ParentID]; !ok {
				return nil, fmt.Errorf("catalog: module %q references unknown parent %q", m.ID, m.ParentID)
			}
		}
	}
	return c, nil
}

// GetModuleByID returns the module with the given id.
func (c *Catalog) GetModuleByID(id string) (*models.Module, error) {
	m, ok := c.byID[id]
	if !ok {
		return nil, utils.ErrModuleNotFound
	}
	return m, nil
}

// ListModules returns all modules in insertion order.
func (c *Catalog) ListModules() []models.Module {
	out := make([]models.Module, len(c.modules))
	copy(out, c.modules)
	return out
}

// ListAddons returns the modules whose ParentID equals parentID, in
// insertion order.
func (c *Catalog) ListAddons(parentID string) []models.Module {
	var out []models.Module
	for _, m := range c.modules {
		if m.ParentID == parentID {
			out = append(out, m)
		}
	}
	return out
}

// ParentChain returns the ancestors of the given module from its immediate
// parent up to the root app. Modules without a parent return an empty chain.
// Add-ons may themselves parent further add-ons, so the chain can be longer
// than one hop.
func (c *Catalog) ParentChain(id string) ([]*models.Module, error) {
	m, err := c.GetModuleByID(id)
	if err != nil {
		return nil, err
	}

	var chain []*models.Module
	seen := map[string]bool{m.ID: true}
	for m.ParentID != "" {
		parent, ok := c.byID[m.ParentID]
		if !ok {
			return nil, fmt.Errorf("catalog: module %q references unknown parent %q", m.ID, m.ParentID)
		}
		if seen[parent.ID] {
			return nil, fmt.Errorf("catalog: dependency cycle through %q", parent.ID)
		}
		seen[parent.ID] = true
		chain = append(chain, parent)
		m = parent
	}
	return chain, nil
}

// DependsOn reports whether module id has ancestorID anywhere in its parent
// chain.
func (c *Catalog) DependsOn(id, ancestorID string) bool {
	chain, err := c.ParentChain(id)
	if err != nil {
		return false
	}
	for _, p := range chain {
		if p.ID == ancestorID {
			return true
		}
	}
	return false
}

// Filter returns modules matching the given category, type and search term.
// Empty filters are ignored; search matches name or description,
// case-insensitive.
func (c *Catalog) Filter(category, moduleType, search string) []models.Module {
	search = strings.ToLower(search)
	var out []models.Module
	for _, m := range c.modules {
		if category != "" && string(m.Category) != category {
			continue
		}
		if moduleType != "" && string(m.Type) != moduleType {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(m.Name), search) &&
			!strings.Contains(strings.ToLower(m.Description), search) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Len returns the number of modules in the catalog.
func (c *Catalog) Len() int {
	return len(c.modules)
}
