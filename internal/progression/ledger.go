package progression

import (
	"fmt"
	"sort"

	"github.com/korvus/EnchantMastery_Go/internal/domain"
)

// Ledger is the per-player mastery state container: mastery levels, mastery
// XP, unlocked letter indices and total levels spent. Entries exist only
// while positive/non-empty; absence means zero.
//
// A Ledger is not safe for concurrent use. The transaction service is the
// single writer and serializes access per player.
type Ledger struct {
	masteryLevels   map[domain.EnchantmentID]int
	masteryXP       map[domain.EnchantmentID]int
	unlockedLetters map[domain.EnchantmentID][]int
	levelsSpent     int
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		masteryLevels:   make(map[domain.EnchantmentID]int),
		masteryXP:       make(map[domain.EnchantmentID]int),
		unlockedLetters: make(map[domain.EnchantmentID][]int),
	}
}

// MasteryLevel returns the mastery level for an enchantment, 0 if unlearned.
func (l *Ledger) MasteryLevel(id domain.EnchantmentID) int {
	return l.masteryLevels[id]
}

// SetMasteryLevel sets the mastery level. Levels <= 0 clear the entry.
func (l *Ledger) SetMasteryLevel(id domain.EnchantmentID, level int) {
	if level <= 0 {
		delete(l.masteryLevels, id)
		return
	}
	l.masteryLevels[id] = level
}

// HasMastery reports whether the enchantment has been learned at any level.
func (l *Ledger) HasMastery(id domain.EnchantmentID) bool {
	return l.masteryLevels[id] > 0
}

// AllMasteryLevels returns a copy of the mastery level map.
func (l *Ledger) AllMasteryLevels() map[domain.EnchantmentID]int {
	out := make(map[domain.EnchantmentID]int, len(l.masteryLevels))
	for k, v := range l.masteryLevels {
		out[k] = v
	}
	return out
}

// MasteryXP returns the XP accumulated toward the next mastery level.
func (l *Ledger) MasteryXP(id domain.EnchantmentID) int {
	return l.masteryXP[id]
}

// SetMasteryXP sets the XP counter. Values <= 0 clear the entry.
func (l *Ledger) SetMasteryXP(id domain.EnchantmentID, xp int) {
	if xp <= 0 {
		delete(l.masteryXP, id)
		return
	}
	l.masteryXP[id] = xp
}

// AddMasteryXP adds to the XP counter.
func (l *Ledger) AddMasteryXP(id domain.EnchantmentID, xpToAdd int) {
	l.SetMasteryXP(id, l.masteryXP[id]+xpToAdd)
}

// AllMasteryXP returns a copy of the XP map.
func (l *Ledger) AllMasteryXP() map[domain.EnchantmentID]int {
	out := make(map[domain.EnchantmentID]int, len(l.masteryXP))
	for k, v := range l.masteryXP {
		out[k] = v
	}
	return out
}

// UnlockedLetters returns a copy of the unlocked letter indices for an
// enchantment, in unlock order.
func (l *Ledger) UnlockedLetters(id domain.EnchantmentID) []int {
	cur := l.unlockedLetters[id]
	if len(cur) == 0 {
		return nil
	}
	out := make([]int, len(cur))
	copy(out, cur)
	return out
}

// UnlockedLetterCount returns how many letters are unlocked for an enchantment.
func (l *Ledger) UnlockedLetterCount(id domain.EnchantmentID) int {
	return len(l.unlockedLetters[id])
}

// SetUnlockedLetters replaces the unlocked set. Empty input clears the entry.
func (l *Ledger) SetUnlockedLetters(id domain.EnchantmentID, indices []int) {
	if len(indices) == 0 {
		delete(l.unlockedLetters, id)
		return
	}
	cp := make([]int, len(indices))
	copy(cp, indices)
	l.unlockedLetters[id] = cp
}

// AddUnlockedLetter appends a letter index to the unlocked set. Adding an
// already-present index is a no-op.
func (l *Ledger) AddUnlockedLetter(id domain.EnchantmentID, index int) {
	for _, i := range l.unlockedLetters[id] {
		if i == index {
			return
		}
	}
	l.unlockedLetters[id] = append(l.unlockedLetters[id], index)
}

// AllUnlockedLetters returns a deep copy of the unlocked letters map.
func (l *Ledger) AllUnlockedLetters() map[domain.EnchantmentID][]int {
	out := make(map[domain.EnchantmentID][]int, len(l.unlockedLetters))
	for k, v := range l.unlockedLetters {
		cp := make([]int, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

// TotalLevelsSpent returns the running total of levels spent on mastery
// transactions. Monotonic except for Reset.
func (l *Ledger) TotalLevelsSpent() int {
	return l.levelsSpent
}

// AddLevelsSpent increases the spend counter. Negative amounts indicate a
// bug in the caller, never a user-facing condition.
func (l *Ledger) AddLevelsSpent(levels int) {
	if levels < 0 {
		panic(fmt.Sprintf("progression: negative levels spent: %d", levels))
	}
	l.levelsSpent += levels
}

// CopyFrom replaces this ledger's contents wholesale with a deep copy of
// other. Used for the respawn ownership transfer.
func (l *Ledger) CopyFrom(other *Ledger) {
	l.masteryLevels = other.AllMasteryLevels()
	l.masteryXP = other.AllMasteryXP()
	l.unlockedLetters = other.AllUnlockedLetters()
	l.levelsSpent = other.levelsSpent
}

// Clone returns a deep copy.
func (l *Ledger) Clone() *Ledger {
	out := NewLedger()
	out.CopyFrom(l)
	return out
}

// Reset clears all mastery state, including the spend counter.
func (l *Ledger) Reset() {
	l.masteryLevels = make(map[domain.EnchantmentID]int)
	l.masteryXP = make(map[domain.EnchantmentID]int)
	l.unlockedLetters = make(map[domain.EnchantmentID][]int)
	l.levelsSpent = 0
}

// IsEmpty reports whether the ledger holds no state at all.
func (l *Ledger) IsEmpty() bool {
	return len(l.masteryLevels) == 0 && len(l.masteryXP) == 0 &&
		len(l.unlockedLetters) == 0 && l.levelsSpent == 0
}

// CombinedMastery returns the sum of all mastery levels.
func (l *Ledger) CombinedMastery() int {
	total := 0
	for _, v := range l.masteryLevels {
		total += v
	}
	return total
}

// EnchantmentCount returns how many enchantments have been learned.
func (l *Ledger) EnchantmentCount() int {
	return len(l.masteryLevels)
}

// Equal reports whether two ledgers hold the same logical state. Unlocked
// letters compare as sets; unlock order is not significant.
func (l *Ledger) Equal(other *Ledger) bool {
	if l.levelsSpent != other.levelsSpent {
		return false
	}
	if !equalIntMaps(l.masteryLevels, other.masteryLevels) {
		return false
	}
	if !equalIntMaps(l.masteryXP, other.masteryXP) {
		return false
	}
	if len(l.unlockedLetters) != len(other.unlockedLetters) {
		return false
	}
	for k, v := range l.unlockedLetters {
		if !equalIndexSets(v, other.unlockedLetters[k]) {
			return false
		}
	}
	return true
}

func equalIntMaps(a, b map[domain.EnchantmentID]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func equalIndexSets(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	as := make([]int, len(a))
	bs := make([]int, len(b))
	copy(as, a)
	copy(bs, b)
	sort.Ints(as)
	sort.Ints(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// sortedIDs returns map keys in lexical order for deterministic encoding.
func sortedIDs[V any](m map[domain.EnchantmentID]V) []domain.EnchantmentID {
	ids := make([]domain.EnchantmentID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
