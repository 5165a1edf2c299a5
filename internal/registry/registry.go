// Package registry holds the enchantment definitions the progression engine
// validates against: host-level caps, applicable item kinds, conflict groups
// and display names.
package registry

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/korvus/EnchantMastery_Go/internal/domain"
)

// Sentinel errors for registry construction
var (
	ErrDuplicateID   = errors.New("duplicate enchantment id")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Def is a single enchantment definition as it appears in configuration.
type Def struct {
	ID            string   `json:"id"`
	DisplayName   string   `json:"display_name,omitempty"`
	MinLevel      int      `json:"min_level,omitempty"`
	MaxLevel      int      `json:"max_level"`
	ApplicableTo  []string `json:"applicable_to,omitempty"`
	ConflictGroup string   `json:"conflict_group,omitempty"`
}

// Enchantment is a resolved definition.
type Enchantment struct {
	ID            domain.EnchantmentID
	DisplayName   string
	MinLevel      int
	MaxLevel      int
	ConflictGroup string

	applicable map[string]bool
}

// Registry answers definition lookups. Implementations are immutable after
// construction and safe for concurrent use.
type Registry interface {
	Get(id domain.EnchantmentID) (Enchantment, bool)
	MinLevel(id domain.EnchantmentID) int
	MaxLevel(id domain.EnchantmentID) int
	DisplayName(id domain.EnchantmentID) string
	CanEnchant(id domain.EnchantmentID, itemKind string) bool
	AreCompatible(a, b domain.EnchantmentID) bool
	All() []Enchantment
}

type staticRegistry struct {
	byID map[domain.EnchantmentID]Enchantment
}

// NewStatic builds a registry from definitions. Every id must parse and be
// unique, and every max level must be at least 1.
func NewStatic(defs []Def) (Registry, error) {
	byID := make(map[domain.EnchantmentID]Enchantment, len(defs))

	for i, def := range defs {
		id, err := domain.ParseEnchantmentID(def.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: definition at index %d: %v", ErrInvalidConfig, i, err)
		}
		if _, exists := byID[id]; exists {
			return nil, fmt.Errorf("%w: '%s'", ErrDuplicateID, id)
		}
		if def.MaxLevel < 1 {
			return nil, fmt.Errorf("%w: '%s' has max_level %d", ErrInvalidConfig, id, def.MaxLevel)
		}
		minLevel := def.MinLevel
		if minLevel == 0 {
			minLevel = 1
		}
		if minLevel < 1 || minLevel > def.MaxLevel {
			return nil, fmt.Errorf("%w: '%s' has min_level %d outside [1, %d]", ErrInvalidConfig, id, def.MinLevel, def.MaxLevel)
		}

		e := Enchantment{
			ID:            id,
			DisplayName:   def.DisplayName,
			MinLevel:      minLevel,
			MaxLevel:      def.MaxLevel,
			ConflictGroup: def.ConflictGroup,
		}
		if e.DisplayName == "" {
			e.DisplayName = titleFromPath(id)
		}
		if len(def.ApplicableTo) > 0 {
			e.applicable = make(map[string]bool, len(def.ApplicableTo))
			for _, kind := range def.ApplicableTo {
				e.applicable[kind] = true
			}
		}

		byID[id] = e
	}

	return &staticRegistry{byID: byID}, nil
}

func (r *staticRegistry) Get(id domain.EnchantmentID) (Enchantment, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// MinLevel returns the lowest meaningful level, 0 for unknown enchantments.
func (r *staticRegistry) MinLevel(id domain.EnchantmentID) int {
	return r.byID[id].MinLevel
}

// MaxLevel returns the host-level cap, 0 for unknown enchantments.
func (r *staticRegistry) MaxLevel(id domain.EnchantmentID) int {
	return r.byID[id].MaxLevel
}

// DisplayName returns the configured name, or a title-cased projection of
// the id path for unknown enchantments.
func (r *staticRegistry) DisplayName(id domain.EnchantmentID) string {
	if e, ok := r.byID[id]; ok {
		return e.DisplayName
	}
	return titleFromPath(id)
}

// CanEnchant reports whether an enchantment may be applied to an item kind.
// A definition with no applicable_to list accepts any item.
func (r *staticRegistry) CanEnchant(id domain.EnchantmentID, itemKind string) bool {
	e, ok := r.byID[id]
	if !ok {
		return false
	}
	if e.applicable == nil {
		return true
	}
	return e.applicable[itemKind]
}

// AreCompatible reports whether two distinct enchantments may coexist on one
// item. Members of the same conflict group exclude each other; an
// enchantment never conflicts with itself.
func (r *staticRegistry) AreCompatible(a, b domain.EnchantmentID) bool {
	if a == b {
		return true
	}
	ea, okA := r.byID[a]
	eb, okB := r.byID[b]
	if !okA || !okB {
		return true
	}
	if ea.ConflictGroup == "" || eb.ConflictGroup == "" {
		return true
	}
	return ea.ConflictGroup != eb.ConflictGroup
}

func (r *staticRegistry) All() []Enchantment {
	out := make([]Enchantment, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, e)
	}
	return out
}

var titleCaser = cases.Title(language.English)

// titleFromPath derives a readable name from an id path, e.g.
// "fire_aspect" becomes "Fire Aspect".
func titleFromPath(id domain.EnchantmentID) string {
	return titleCaser.String(strings.ReplaceAll(id.Path(), "_", " "))
}
