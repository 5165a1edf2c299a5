package registry

// Item kind groups used by the built-in definitions.
var (
	weaponKinds = []string{"sword", "axe"}
	armorKinds  = []string{"helmet", "chestplate", "leggings", "boots"}
	toolKinds   = []string{"pickaxe", "shovel", "axe", "hoe"}
)

// defaultDefs is the built-in enchantment set, used when no configuration
// file is provided. Caps and conflict groups follow the familiar vanilla
// layout.
var defaultDefs = []Def{
	{ID: "minecraft:sharpness", MaxLevel: 5, ApplicableTo: weaponKinds, ConflictGroup: "damage"},
	{ID: "minecraft:smite", MaxLevel: 5, ApplicableTo: weaponKinds, ConflictGroup: "damage"},
	{ID: "minecraft:bane_of_arthropods", MaxLevel: 5, ApplicableTo: weaponKinds, ConflictGroup: "damage"},
	{ID: "minecraft:fire_aspect", MaxLevel: 2, ApplicableTo: weaponKinds},
	{ID: "minecraft:looting", MaxLevel: 3, ApplicableTo: weaponKinds},
	{ID: "minecraft:knockback", MaxLevel: 2, ApplicableTo: weaponKinds},

	{ID: "minecraft:protection", MaxLevel: 4, ApplicableTo: armorKinds, ConflictGroup: "protection"},
	{ID: "minecraft:fire_protection", MaxLevel: 4, ApplicableTo: armorKinds, ConflictGroup: "protection"},
	{ID: "minecraft:blast_protection", MaxLevel: 4, ApplicableTo: armorKinds, ConflictGroup: "protection"},
	{ID: "minecraft:projectile_protection", MaxLevel: 4, ApplicableTo: armorKinds, ConflictGroup: "protection"},
	{ID: "minecraft:thorns", MaxLevel: 3, ApplicableTo: armorKinds},
	{ID: "minecraft:respiration", MaxLevel: 3, ApplicableTo: []string{"helmet"}},
	{ID: "minecraft:feather_falling", MaxLevel: 4, ApplicableTo: []string{"boots"}},
	{ID: "minecraft:depth_strider", MaxLevel: 3, ApplicableTo: []string{"boots"}, ConflictGroup: "boots_movement"},
	{ID: "minecraft:frost_walker", MaxLevel: 2, ApplicableTo: []string{"boots"}, ConflictGroup: "boots_movement"},

	{ID: "minecraft:efficiency", MaxLevel: 5, ApplicableTo: toolKinds},
	{ID: "minecraft:fortune", MaxLevel: 3, ApplicableTo: toolKinds, ConflictGroup: "harvest"},
	{ID: "minecraft:silk_touch", MaxLevel: 1, ApplicableTo: toolKinds, ConflictGroup: "harvest"},

	{ID: "minecraft:power", MaxLevel: 5, ApplicableTo: []string{"bow"}},
	{ID: "minecraft:punch", MaxLevel: 2, ApplicableTo: []string{"bow"}},
	{ID: "minecraft:flame", MaxLevel: 1, ApplicableTo: []string{"bow"}},
	{ID: "minecraft:infinity", MaxLevel: 1, ApplicableTo: []string{"bow"}, ConflictGroup: "bow_ammo"},

	{ID: "minecraft:mending", MaxLevel: 1, ConflictGroup: "bow_ammo"},
	{ID: "minecraft:unbreaking", MaxLevel: 3},
}

// Default returns the registry built from the built-in definition set.
func Default() Registry {
	r, err := NewStatic(defaultDefs)
	if err != nil {
		// The built-in set is validated by tests; a failure here is a
		// programming error.
		panic(err)
	}
	return r
}
