// Package catalog defines the static loot tables: token templates, the
// builder categories a user configures, the finite supplies backing random
// categories, and named presets.
//
// A Catalog is immutable once constructed and safe for concurrent reads.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	apperrors "github.com/louisbranch/lootbag/internal/platform/errors"
)

// Kind says how a category turns a requested count into tokens.
type Kind string

const (
	// KindDirect replicates the template named by the category ID.
	KindDirect Kind = "direct"
	// KindRandom samples from the category's finite supply.
	KindRandom Kind = "random"
)

// Template is a physical token face.
type Template struct {
	ID      string         `json:"id"`
	Label   string         `json:"label"`
	Image   string         `json:"image,omitempty"`
	Payload map[string]int `json:"payload,omitempty"`
}

// Category is a builder group the composition counts against.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Kind  Kind   `json:"kind"`
	// Max is the supply size for random categories and zero for direct ones.
	Max int `json:"max,omitempty"`
}

// Supply is the physical deck behind a random category.
type Supply struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Cards []string `json:"cards"`
}

// Preset is a named composition.
type Preset struct {
	Name   string         `json:"name"`
	Counts map[string]int `json:"counts"`
}

// Catalog indexes templates, categories, supplies, and presets.
type Catalog struct {
	templates     map[string]Template
	templateOrder []string
	categories    []Category
	byCategory    map[string]int
	supplies      map[string]Supply
	supplyOrder   []string
	presets       []Preset
	byPreset      map[string]int
	// owners maps a template ID to the category that accounts for it.
	owners map[string]string
}

// New validates the tables and builds a Catalog.
func New(templates []Template, categories []Category, supplies []Supply, presets []Preset) (*Catalog, error) {
	c := &Catalog{
		templates:  make(map[string]Template, len(templates)),
		byCategory: make(map[string]int, len(categories)),
		supplies:   make(map[string]Supply, len(supplies)),
		byPreset:   make(map[string]int, len(presets)),
		owners:     make(map[string]string),
	}

	for _, t := range templates {
		id := strings.TrimSpace(t.ID)
		if id == "" {
			return nil, invalid("template id is required")
		}
		if _, ok := c.templates[id]; ok {
			return nil, invalid(fmt.Sprintf("duplicate template %q", id))
		}
		t.ID = id
		t.Payload = cloneCounts(t.Payload)
		if t.Label == "" {
			t.Label = id
		}
		c.templates[id] = t
		c.templateOrder = append(c.templateOrder, id)
	}

	for _, s := range supplies {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			return nil, invalid("supply id is required")
		}
		if _, ok := c.supplies[id]; ok {
			return nil, invalid(fmt.Sprintf("duplicate supply %q", id))
		}
		if len(s.Cards) == 0 {
			return nil, invalid(fmt.Sprintf("supply %q has no cards", id))
		}
		for _, card := range s.Cards {
			if _, ok := c.templates[card]; !ok {
				return nil, invalid(fmt.Sprintf("supply %q references unknown template %q", id, card))
			}
		}
		s.ID = id
		s.Cards = slices.Clone(s.Cards)
		c.supplies[id] = s
		c.supplyOrder = append(c.supplyOrder, id)
	}

	c.categories = make([]Category, 0, len(categories))
	for _, cat := range categories {
		id := strings.TrimSpace(cat.ID)
		if id == "" {
			return nil, invalid("category id is required")
		}
		if _, ok := c.byCategory[id]; ok {
			return nil, invalid(fmt.Sprintf("duplicate category %q", id))
		}
		cat.ID = id
		if cat.Label == "" {
			cat.Label = id
		}
		switch cat.Kind {
		case KindDirect:
			if _, ok := c.templates[id]; !ok {
				return nil, invalid(fmt.Sprintf("direct category %q has no matching template", id))
			}
			if cat.Max != 0 {
				return nil, invalid(fmt.Sprintf("direct category %q cannot set max", id))
			}
		case KindRandom:
			supply, ok := c.supplies[id]
			if !ok {
				return nil, invalid(fmt.Sprintf("random category %q has no matching supply", id))
			}
			if cat.Max == 0 {
				cat.Max = len(supply.Cards)
			}
			if cat.Max != len(supply.Cards) {
				return nil, invalid(fmt.Sprintf("random category %q max %d does not match supply size %d", id, cat.Max, len(supply.Cards)))
			}
		default:
			return nil, invalid(fmt.Sprintf("category %q has unknown kind %q", id, cat.Kind))
		}
		c.byCategory[id] = len(c.categories)
		c.categories = append(c.categories, cat)
	}

	// Direct identity wins over supply membership.
	for _, cat := range c.categories {
		if cat.Kind == KindDirect {
			c.owners[cat.ID] = cat.ID
		}
	}
	for _, cat := range c.categories {
		if cat.Kind != KindRandom {
			continue
		}
		for _, card := range c.supplies[cat.ID].Cards {
			if _, ok := c.owners[card]; !ok {
				c.owners[card] = cat.ID
			}
		}
	}

	for _, p := range presets {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, invalid("preset name is required")
		}
		if _, ok := c.byPreset[name]; ok {
			return nil, invalid(fmt.Sprintf("duplicate preset %q", name))
		}
		for key, n := range p.Counts {
			if n < 0 {
				return nil, invalid(fmt.Sprintf("preset %q has negative count for %q", name, key))
			}
		}
		c.byPreset[name] = len(c.presets)
		c.presets = append(c.presets, Preset{Name: name, Counts: cloneCounts(p.Counts)})
	}

	return c, nil
}

// Template returns the template with the given ID.
func (c *Catalog) Template(id string) (Template, bool) {
	t, ok := c.templates[id]
	if !ok {
		return Template{}, false
	}
	t.Payload = cloneCounts(t.Payload)
	return t, true
}

// TemplateIDs returns template IDs in definition order.
func (c *Catalog) TemplateIDs() []string {
	return slices.Clone(c.templateOrder)
}

// Category returns the category with the given ID.
func (c *Catalog) Category(id string) (Category, bool) {
	i, ok := c.byCategory[id]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

// Categories returns every category in definition order.
func (c *Catalog) Categories() []Category {
	return slices.Clone(c.categories)
}

// Supply returns the supply with the given ID.
func (c *Catalog) Supply(id string) (Supply, bool) {
	s, ok := c.supplies[id]
	if !ok {
		return Supply{}, false
	}
	s.Cards = slices.Clone(s.Cards)
	return s, true
}

// Preset returns the preset with the given name.
func (c *Catalog) Preset(name string) (Preset, bool) {
	i, ok := c.byPreset[name]
	if !ok {
		return Preset{}, false
	}
	p := c.presets[i]
	p.Counts = cloneCounts(p.Counts)
	return p, true
}

// Presets returns preset names in definition order.
func (c *Catalog) Presets() []string {
	names := make([]string, 0, len(c.presets))
	for _, p := range c.presets {
		names = append(names, p.Name)
	}
	return names
}

// OwnerOf resolves a template ID to the category that accounts for it:
// a direct category with the same ID, otherwise the first random category
// whose supply lists it.
func (c *Catalog) OwnerOf(templateID string) (Category, bool) {
	id, ok := c.owners[templateID]
	if !ok {
		return Category{}, false
	}
	return c.Category(id)
}

func invalid(reason string) error {
	return apperrors.WithMetadata(apperrors.CodeCatalogInvalid, "catalog invalid: "+reason, map[string]string{
		"Reason": reason,
	})
}

func cloneCounts(in map[string]int) map[string]int {
	if in == nil {
		return nil
	}
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
