// Package decoding implements the deterministic letter-unlock mechanic for
// obfuscated enchantment names. Which letter unlocks next is a pure function
// of (player, enchantment, letters already unlocked): the same player always
// reveals the same sequence for the same enchantment, and different players
// reveal different sequences.
//
// Unlock indices are letter ordinals: the n-th letter of the display name,
// counting letters only. Spaces and punctuation are never indexed and are
// always displayed, so every stored index is < CountLetters(name).
package decoding

import (
	"hash/fnv"
	"math/rand"
	"unicode"

	"github.com/korvus/EnchantMastery_Go/internal/domain"
)

// MaskRune replaces every still-locked letter in the display projection.
const MaskRune = '?'

// CountLetters returns how many decodable letters a display name has.
func CountLetters(name string) int {
	count := 0
	for _, r := range name {
		if unicode.IsLetter(r) {
			count++
		}
	}
	return count
}

// Seed derives the per-player, per-enchantment PRNG seed. FNV-1a over the
// two identifiers keeps the mapping stable across restarts.
func Seed(playerID string, enchantment domain.EnchantmentID) int64 {
	h := fnv.New64a()
	h.Write([]byte(playerID))
	h.Write([]byte{'|'})
	h.Write([]byte(enchantment.String()))
	return int64(h.Sum64())
}

// SelectNextLetter picks the next letter ordinal to unlock. Candidates are
// the ordinals in [0, CountLetters(name)) not yet unlocked; the pick is
// seeded with the unlock count so each step of the sequence is independently
// reproducible. Returns false when the name is fully decoded.
func SelectNextLetter(seed int64, name string, unlocked []int) (int, bool) {
	total := CountLetters(name)
	if total == 0 {
		return 0, false
	}

	taken := make(map[int]bool, len(unlocked))
	for _, i := range unlocked {
		taken[i] = true
	}

	var locked []int
	for i := 0; i < total; i++ {
		if !taken[i] {
			locked = append(locked, i)
		}
	}
	if len(locked) == 0 {
		return 0, false
	}

	rng := rand.New(rand.NewSource(seed + int64(len(unlocked))))
	return locked[rng.Intn(len(locked))], true
}

// DecodedName renders the player's view of a display name: unlocked letters
// show through, locked letters are masked, and non-letter runes always show.
// Each letter's ordinal, not its string position, decides its visibility.
func DecodedName(name string, unlocked []int) string {
	revealed := make(map[int]bool, len(unlocked))
	for _, i := range unlocked {
		revealed[i] = true
	}

	runes := []rune(name)
	out := make([]rune, len(runes))
	letterIndex := 0
	for i, r := range runes {
		if !unicode.IsLetter(r) {
			out[i] = r
			continue
		}
		if revealed[letterIndex] {
			out[i] = r
		} else {
			out[i] = MaskRune
		}
		letterIndex++
	}
	return string(out)
}

// LetterAt returns the letter at an ordinal, or empty string when the ordinal
// is out of range.
func LetterAt(name string, index int) string {
	if index < 0 {
		return ""
	}
	n := 0
	for _, r := range name {
		if !unicode.IsLetter(r) {
			continue
		}
		if n == index {
			return string(r)
		}
		n++
	}
	return ""
}

// UnlockProgress returns the revealed fraction of a name's decodable
// letters, in [0, 1]. Names with no decodable letters count as fully
// revealed.
func UnlockProgress(name string, unlocked []int) float64 {
	total := CountLetters(name)
	if total == 0 {
		return 1.0
	}

	revealed := 0
	for _, i := range unlocked {
		if i >= 0 && i < total {
			revealed++
		}
	}
	return float64(revealed) / float64(total)
}

// IsFullyUnlocked reports whether every decodable letter has been revealed.
func IsFullyUnlocked(name string, unlocked []int) bool {
	_, more := SelectNextLetter(0, name, unlocked)
	return !more
}
