package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korvus/EnchantMastery_Go/internal/domain"
)

const (
	sharpness = domain.EnchantmentID("minecraft:sharpness")
	smite     = domain.EnchantmentID("minecraft:smite")
	mending   = domain.EnchantmentID("minecraft:mending")
	unknown   = domain.EnchantmentID("modpack:unheard_of")
)

func TestNewStatic_Validation(t *testing.T) {
	tests := []struct {
		name    string
		defs    []Def
		wantErr error
	}{
		{
			name:    "duplicate id",
			defs:    []Def{{ID: "minecraft:sharpness", MaxLevel: 5}, {ID: "minecraft:sharpness", MaxLevel: 3}},
			wantErr: ErrDuplicateID,
		},
		{
			name:    "unparseable id",
			defs:    []Def{{ID: "Not An Id", MaxLevel: 1}},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "zero max level",
			defs:    []Def{{ID: "minecraft:sharpness", MaxLevel: 0}},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "min level above max",
			defs:    []Def{{ID: "minecraft:sharpness", MinLevel: 6, MaxLevel: 5}},
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStatic(tt.defs)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDefault_Lookups(t *testing.T) {
	r := Default()

	e, ok := r.Get(sharpness)
	require.True(t, ok)
	assert.Equal(t, 5, e.MaxLevel)
	assert.Equal(t, 5, r.MaxLevel(sharpness))
	assert.Equal(t, 1, r.MinLevel(sharpness))
	assert.Equal(t, 0, r.MaxLevel(unknown))
	assert.Equal(t, 0, r.MinLevel(unknown))

	_, ok = r.Get(unknown)
	assert.False(t, ok)
}

func TestDisplayName(t *testing.T) {
	r := Default()

	assert.Equal(t, "Sharpness", r.DisplayName(sharpness))
	assert.Equal(t, "Fire Aspect", r.DisplayName("minecraft:fire_aspect"))
	assert.Equal(t, "Bane Of Arthropods", r.DisplayName("minecraft:bane_of_arthropods"))

	// Unknown ids still get a readable projection of their path.
	assert.Equal(t, "Unheard Of", r.DisplayName(unknown))
}

func TestDisplayName_ExplicitOverride(t *testing.T) {
	r, err := NewStatic([]Def{{ID: "modpack:zap", DisplayName: "Thunderstrike", MaxLevel: 3}})
	require.NoError(t, err)

	assert.Equal(t, "Thunderstrike", r.DisplayName("modpack:zap"))
}

func TestCanEnchant(t *testing.T) {
	r := Default()

	assert.True(t, r.CanEnchant(sharpness, "sword"))
	assert.True(t, r.CanEnchant(sharpness, "axe"))
	assert.False(t, r.CanEnchant(sharpness, "boots"))

	// No applicable_to list means any item kind.
	assert.True(t, r.CanEnchant(mending, "sword"))
	assert.True(t, r.CanEnchant(mending, "fishing_rod"))

	assert.False(t, r.CanEnchant(unknown, "sword"))
}

func TestAreCompatible(t *testing.T) {
	r := Default()

	assert.False(t, r.AreCompatible(sharpness, smite), "same conflict group")
	assert.True(t, r.AreCompatible(sharpness, "minecraft:looting"))
	assert.True(t, r.AreCompatible(sharpness, sharpness), "an enchantment never conflicts with itself")
	assert.True(t, r.AreCompatible(sharpness, unknown), "unknown ids do not conflict")
	assert.False(t, r.AreCompatible("minecraft:fortune", "minecraft:silk_touch"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "enchantments.json")
	content := `{
		"version": "1",
		"enchantments": [
			{"id": "modpack:zap", "max_level": 3, "applicable_to": ["sword"], "conflict_group": "elemental"},
			{"id": "modpack:frost", "max_level": 2, "conflict_group": "elemental"}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	r, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, r.MaxLevel("modpack:zap"))
	assert.False(t, r.AreCompatible("modpack:zap", "modpack:frost"))
	assert.Len(t, r.All(), 2)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"enchantments": []}`), 0o600))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDefault_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { Default() })
}
