package progression

import (
	"context"
	"fmt"
	"sort"

	"github.com/korvus/EnchantMastery_Go/internal/decoding"
	"github.com/korvus/EnchantMastery_Go/internal/domain"
	"github.com/korvus/EnchantMastery_Go/internal/roman"
)

// EnchantmentProgress is one enchantment's row in a player profile.
type EnchantmentProgress struct {
	Enchantment     domain.EnchantmentID `json:"enchantment"`
	DecodedName     string               `json:"decoded_name"`
	MasteryLevel    int                  `json:"mastery_level"`
	MasteryRoman    string               `json:"mastery_roman,omitempty"`
	MasteryXP       int                  `json:"mastery_xp"`
	XPToNextLevel   int                  `json:"xp_to_next_level"`
	UnlockedLetters []int                `json:"unlocked_letters,omitempty"`
	LettersTotal    int                  `json:"letters_total"`
	DecodeProgress  float64              `json:"decode_progress"`
	FullyDecoded    bool                 `json:"fully_decoded"`
}

// Profile is the full mastery view for one player.
type Profile struct {
	PlayerID         string                `json:"player_id"`
	Balance          int                   `json:"balance"`
	TotalLevelsSpent int                   `json:"total_levels_spent"`
	CombinedMastery  int                   `json:"combined_mastery"`
	Enchantments     []EnchantmentProgress `json:"enchantments"`
}

// CostPreview reports what reaching a target mastery level would cost.
type CostPreview struct {
	Enchantment    domain.EnchantmentID `json:"enchantment"`
	CurrentMastery int                  `json:"current_mastery"`
	TargetLevel    int                  `json:"target_level"`
	TotalCost      int                  `json:"total_cost"`
	NextLevelCost  int                  `json:"next_level_cost"`
	Balance        int                  `json:"balance"`
}

// Stats is the admin summary for one player.
type Stats struct {
	PlayerID            string `json:"player_id"`
	EnchantmentsLearned int    `json:"enchantments_learned"`
	CombinedMastery     int    `json:"combined_mastery"`
	TotalLevelsSpent    int    `json:"total_levels_spent"`
	LettersUnlocked     int    `json:"letters_unlocked"`
}

// Profile builds the player's full mastery view, including the decoded-name
// projection for every enchantment the ledger knows about.
func (s *service) Profile(ctx context.Context, playerID string) (*Profile, error) {
	if playerID == "" {
		return nil, fmt.Errorf("%w: missing player id", domain.ErrInvalidInput)
	}

	ledger, err := s.store.Get(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	balance, err := s.wallet.Balance(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance: %w", err)
	}

	// Union of ids with any mastery state, including letters unlocked for
	// enchantments whose level was later admin-cleared.
	seen := make(map[domain.EnchantmentID]bool)
	ids := make([]domain.EnchantmentID, 0)
	for id := range ledger.AllMasteryLevels() {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for id := range ledger.AllUnlockedLetters() {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	entries := make([]EnchantmentProgress, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, s.progressFor(ledger, id))
	}

	return &Profile{
		PlayerID:         playerID,
		Balance:          balance,
		TotalLevelsSpent: ledger.TotalLevelsSpent(),
		CombinedMastery:  ledger.CombinedMastery(),
		Enchantments:     entries,
	}, nil
}

func (s *service) progressFor(ledger *Ledger, id domain.EnchantmentID) EnchantmentProgress {
	name := s.registry.DisplayName(id)
	level := ledger.MasteryLevel(id)
	unlocked := ledger.UnlockedLetters(id)

	p := EnchantmentProgress{
		Enchantment:     id,
		DecodedName:     decoding.DecodedName(name, unlocked),
		MasteryLevel:    level,
		MasteryXP:       ledger.MasteryXP(id),
		XPToNextLevel:   s.curve.XPThreshold(level),
		UnlockedLetters: unlocked,
		LettersTotal:    decoding.CountLetters(name),
		DecodeProgress:  decoding.UnlockProgress(name, unlocked),
		FullyDecoded:    decoding.IsFullyUnlocked(name, unlocked),
	}
	if level > 0 {
		p.MasteryRoman = roman.ToRoman(level)
	}
	return p
}

// PreviewAbsorbCost sums the absorb costs from the player's current mastery
// up to targetLevel so clients can render the full price of a goal.
func (s *service) PreviewAbsorbCost(ctx context.Context, playerID string, enchantment domain.EnchantmentID, targetLevel int) (*CostPreview, error) {
	if playerID == "" {
		return nil, fmt.Errorf("%w: missing player id", domain.ErrInvalidInput)
	}
	if targetLevel <= 0 {
		return nil, fmt.Errorf("%w: target level must be positive", domain.ErrInvalidInput)
	}
	if _, ok := s.registry.Get(enchantment); !ok {
		return nil, domain.Reject(domain.ErrUnknownEnchantment, enchantment)
	}

	ledger, err := s.store.Get(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	balance, err := s.wallet.Balance(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance: %w", err)
	}

	current := ledger.MasteryLevel(enchantment)
	return &CostPreview{
		Enchantment:    enchantment,
		CurrentMastery: current,
		TargetLevel:    targetLevel,
		TotalCost:      s.curve.TotalAbsorbCost(current, targetLevel),
		NextLevelCost:  s.curve.AbsorbCost(current + 1),
		Balance:        balance,
	}, nil
}

// Stats summarizes a player's mastery footprint for admin tooling.
func (s *service) Stats(ctx context.Context, playerID string) (*Stats, error) {
	if playerID == "" {
		return nil, fmt.Errorf("%w: missing player id", domain.ErrInvalidInput)
	}

	ledger, err := s.store.Get(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	letters := 0
	for _, indices := range ledger.AllUnlockedLetters() {
		letters += len(indices)
	}

	return &Stats{
		PlayerID:            playerID,
		EnchantmentsLearned: ledger.EnchantmentCount(),
		CombinedMastery:     ledger.CombinedMastery(),
		TotalLevelsSpent:    ledger.TotalLevelsSpent(),
		LettersUnlocked:     letters,
	}, nil
}
