package progression

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/korvus/EnchantMastery_Go/internal/domain"
)

// The ledger has two serialized forms with the same four logical fields:
// a JSON tree (persisted form, also used by HTTP views) and a compact
// count-prefixed varint binary form (snapshot wire form). Both round-trip
// exactly. Decoding skips malformed entries individually instead of
// aborting the whole load.

type levelEntryJSON struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
}

type xpEntryJSON struct {
	ID string `json:"id"`
	XP int    `json:"xp"`
}

type lettersEntryJSON struct {
	ID      string `json:"id"`
	Indices []int  `json:"indices"`
}

type ledgerJSON struct {
	MasteryLevels    []levelEntryJSON   `json:"mastery_levels"`
	MasteryXP        []xpEntryJSON      `json:"mastery_xp"`
	UnlockedLetters  []lettersEntryJSON `json:"unlocked_letters"`
	TotalLevelsSpent int                `json:"total_levels_spent"`
}

// MarshalJSON encodes the ledger as the persisted key-value tree form.
// Entries are ordered by enchantment id so the output is deterministic.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	doc := ledgerJSON{
		MasteryLevels:   make([]levelEntryJSON, 0, len(l.masteryLevels)),
		MasteryXP:       make([]xpEntryJSON, 0, len(l.masteryXP)),
		UnlockedLetters: make([]lettersEntryJSON, 0, len(l.unlockedLetters)),
	}

	for _, id := range sortedIDs(l.masteryLevels) {
		doc.MasteryLevels = append(doc.MasteryLevels, levelEntryJSON{ID: id.String(), Level: l.masteryLevels[id]})
	}
	for _, id := range sortedIDs(l.masteryXP) {
		doc.MasteryXP = append(doc.MasteryXP, xpEntryJSON{ID: id.String(), XP: l.masteryXP[id]})
	}
	for _, id := range sortedIDs(l.unlockedLetters) {
		indices := l.UnlockedLetters(id)
		doc.UnlockedLetters = append(doc.UnlockedLetters, lettersEntryJSON{ID: id.String(), Indices: indices})
	}
	doc.TotalLevelsSpent = l.levelsSpent

	return json.Marshal(doc)
}

// UnmarshalJSON replaces the ledger contents from the persisted form.
// Entries with unparseable ids or non-positive values are skipped.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var doc ledgerJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to decode ledger: %w", err)
	}

	l.Reset()

	for _, e := range doc.MasteryLevels {
		id, err := domain.ParseEnchantmentID(e.ID)
		if err != nil || e.Level <= 0 {
			continue
		}
		l.masteryLevels[id] = e.Level
	}
	for _, e := range doc.MasteryXP {
		id, err := domain.ParseEnchantmentID(e.ID)
		if err != nil || e.XP <= 0 {
			continue
		}
		l.masteryXP[id] = e.XP
	}
	for _, e := range doc.UnlockedLetters {
		id, err := domain.ParseEnchantmentID(e.ID)
		if err != nil {
			continue
		}
		for _, idx := range e.Indices {
			if idx < 0 {
				continue
			}
			l.AddUnlockedLetter(id, idx)
		}
	}
	if doc.TotalLevelsSpent > 0 {
		l.levelsSpent = doc.TotalLevelsSpent
	}

	return nil
}

// MarshalBinary encodes the ledger in the snapshot wire form: four
// count-prefixed sections of uvarint-encoded records, ordered by
// enchantment id.
func (l *Ledger) MarshalBinary() ([]byte, error) {
	var buf []byte

	buf = binary.AppendUvarint(buf, uint64(len(l.masteryLevels)))
	for _, id := range sortedIDs(l.masteryLevels) {
		buf = appendString(buf, id.String())
		buf = binary.AppendUvarint(buf, uint64(l.masteryLevels[id]))
	}

	buf = binary.AppendUvarint(buf, uint64(len(l.masteryXP)))
	for _, id := range sortedIDs(l.masteryXP) {
		buf = appendString(buf, id.String())
		buf = binary.AppendUvarint(buf, uint64(l.masteryXP[id]))
	}

	buf = binary.AppendUvarint(buf, uint64(len(l.unlockedLetters)))
	for _, id := range sortedIDs(l.unlockedLetters) {
		indices := l.unlockedLetters[id]
		buf = appendString(buf, id.String())
		buf = binary.AppendUvarint(buf, uint64(len(indices)))
		for _, idx := range indices {
			buf = binary.AppendUvarint(buf, uint64(idx))
		}
	}

	buf = binary.AppendUvarint(buf, uint64(l.levelsSpent))

	return buf, nil
}

// UnmarshalBinary replaces the ledger contents from the wire form.
// Records with unparseable enchantment ids are consumed and dropped.
func (l *Ledger) UnmarshalBinary(data []byte) error {
	r := &byteReader{buf: data}

	l.Reset()

	levelCount, err := r.uvarint()
	if err != nil {
		return fmt.Errorf("failed to decode mastery levels: %w", err)
	}
	for i := uint64(0); i < levelCount; i++ {
		raw, err := r.string()
		if err != nil {
			return fmt.Errorf("failed to decode mastery levels: %w", err)
		}
		level, err := r.uvarint()
		if err != nil {
			return fmt.Errorf("failed to decode mastery levels: %w", err)
		}
		if id, idErr := domain.ParseEnchantmentID(raw); idErr == nil && level > 0 {
			l.masteryLevels[id] = int(level)
		}
	}

	xpCount, err := r.uvarint()
	if err != nil {
		return fmt.Errorf("failed to decode mastery xp: %w", err)
	}
	for i := uint64(0); i < xpCount; i++ {
		raw, err := r.string()
		if err != nil {
			return fmt.Errorf("failed to decode mastery xp: %w", err)
		}
		xp, err := r.uvarint()
		if err != nil {
			return fmt.Errorf("failed to decode mastery xp: %w", err)
		}
		if id, idErr := domain.ParseEnchantmentID(raw); idErr == nil && xp > 0 {
			l.masteryXP[id] = int(xp)
		}
	}

	letterCount, err := r.uvarint()
	if err != nil {
		return fmt.Errorf("failed to decode unlocked letters: %w", err)
	}
	for i := uint64(0); i < letterCount; i++ {
		raw, err := r.string()
		if err != nil {
			return fmt.Errorf("failed to decode unlocked letters: %w", err)
		}
		n, err := r.uvarint()
		if err != nil {
			return fmt.Errorf("failed to decode unlocked letters: %w", err)
		}
		id, idErr := domain.ParseEnchantmentID(raw)
		for j := uint64(0); j < n; j++ {
			idx, err := r.uvarint()
			if err != nil {
				return fmt.Errorf("failed to decode unlocked letters: %w", err)
			}
			if idErr == nil {
				l.AddUnlockedLetter(id, int(idx))
			}
		}
	}

	spent, err := r.uvarint()
	if err != nil {
		return fmt.Errorf("failed to decode total levels spent: %w", err)
	}
	l.levelsSpent = int(spent)

	return nil
}

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

type byteReader struct {
	buf []byte
	pos int
}

func (r *byteReader) uvarint() (uint64, error) {
	v, n := binary.Uvarint(r.buf[r.pos:])
	if n <= 0 {
		return 0, fmt.Errorf("truncated varint at offset %d", r.pos)
	}
	r.pos += n
	return v, nil
}

func (r *byteReader) string() (string, error) {
	n, err := r.uvarint()
	if err != nil {
		return "", err
	}
	if r.pos+int(n) > len(r.buf) {
		return "", fmt.Errorf("truncated string at offset %d", r.pos)
	}
	s := string(r.buf[r.pos : r.pos+int(n)])
	r.pos += int(n)
	return s, nil
}
