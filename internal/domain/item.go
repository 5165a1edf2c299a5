package domain

// Item is a host inventory stack as seen by the engine. The engine never
// owns item storage; callers pass the item in with a trigger and receive the
// mutated copy back in the transaction result.
type Item struct {
	// Kind is the host item identifier, e.g. "minecraft:enchanted_book".
	Kind string `json:"kind"`

	// Count is the stack size. Absorb consumes one unit.
	Count int `json:"count"`

	// Enchantments are the enchantments active on the item, clamped to the
	// host's per-enchantment maximum level.
	Enchantments map[EnchantmentID]int `json:"enchantments,omitempty"`

	// StoredEnchantments are book-style carried enchantments, the source
	// side of an absorb.
	StoredEnchantments map[EnchantmentID]int `json:"stored_enchantments,omitempty"`

	// EffectiveLevels records true levels for enchantments applied beyond
	// the host cap. Sparse: only levels above the visible level appear here.
	EffectiveLevels map[EnchantmentID]int `json:"effective_levels,omitempty"`
}

// IsEmpty reports whether the item is absent or has no stack left.
func (it *Item) IsEmpty() bool {
	return it == nil || it.Kind == "" || it.Count <= 0
}

// SingleStoredEnchantment returns the item's stored enchantment when it
// carries exactly one. ok is false for zero or multiple.
func (it *Item) SingleStoredEnchantment() (id EnchantmentID, level int, ok bool) {
	if it == nil || len(it.StoredEnchantments) != 1 {
		return "", 0, false
	}
	for k, v := range it.StoredEnchantments {
		return k, v, true
	}
	return "", 0, false
}

// EffectiveLevel returns the true level for an enchantment, preferring the
// effective-level record over the visible enchantment level.
func (it *Item) EffectiveLevel(id EnchantmentID) int {
	if it == nil {
		return 0
	}
	if lvl, ok := it.EffectiveLevels[id]; ok && lvl > 0 {
		return lvl
	}
	return it.Enchantments[id]
}

// SetEnchantment writes the visible enchantment level on the item.
func (it *Item) SetEnchantment(id EnchantmentID, level int) {
	if it.Enchantments == nil {
		it.Enchantments = make(map[EnchantmentID]int)
	}
	it.Enchantments[id] = level
}

// SetEffectiveLevel records a true level beyond the host cap. Levels <= 0
// clear the record entry.
func (it *Item) SetEffectiveLevel(id EnchantmentID, level int) {
	if level <= 0 {
		delete(it.EffectiveLevels, id)
		return
	}
	if it.EffectiveLevels == nil {
		it.EffectiveLevels = make(map[EnchantmentID]int)
	}
	it.EffectiveLevels[id] = level
}

// Clone returns a deep copy of the item.
func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	out := &Item{Kind: it.Kind, Count: it.Count}
	out.Enchantments = cloneLevelMap(it.Enchantments)
	out.StoredEnchantments = cloneLevelMap(it.StoredEnchantments)
	out.EffectiveLevels = cloneLevelMap(it.EffectiveLevels)
	return out
}

func cloneLevelMap(in map[EnchantmentID]int) map[EnchantmentID]int {
	if in == nil {
		return nil
	}
	out := make(map[EnchantmentID]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
