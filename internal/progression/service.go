package progression

import (
	"context"
	"fmt"

	"github.com/korvus/EnchantMastery_Go/internal/concurrency"
	"github.com/korvus/EnchantMastery_Go/internal/decoding"
	"github.com/korvus/EnchantMastery_Go/internal/domain"
	"github.com/korvus/EnchantMastery_Go/internal/event"
	"github.com/korvus/EnchantMastery_Go/internal/logger"
	"github.com/korvus/EnchantMastery_Go/internal/registry"
	"github.com/korvus/EnchantMastery_Go/internal/wallet"
)

// MaxCascadeUnlocks caps how many letters one transaction's decode cascade
// can reveal.
const MaxCascadeUnlocks = 3

// LedgerStore is the persistence surface the service mutates ledgers
// through. Satisfied by internal/store implementations.
type LedgerStore interface {
	Get(ctx context.Context, playerID string) (*Ledger, error)
	Save(ctx context.Context, playerID string, ledger *Ledger) error
	Delete(ctx context.Context, playerID string) error
	Players(ctx context.Context) ([]string, error)
}

// Service defines the mastery progression business logic
type Service interface {
	// Transactions. Each call is atomic per player: it either fully
	// commits (ledger saved, currency deducted, snapshot pushed) or
	// fully rejects with a typed domain error.
	TryAbsorb(ctx context.Context, playerID string, item *domain.Item) (*AbsorbResult, error)
	TrySelectAndApply(ctx context.Context, playerID string, item *domain.Item, enchantment domain.EnchantmentID, targetLevel int) (*ApplyResult, error)

	// Views
	Profile(ctx context.Context, playerID string) (*Profile, error)
	PreviewAbsorbCost(ctx context.Context, playerID string, enchantment domain.EnchantmentID, targetLevel int) (*CostPreview, error)
	Stats(ctx context.Context, playerID string) (*Stats, error)

	// Lifecycle
	SyncPlayer(ctx context.Context, playerID string) error
	TransferLedger(ctx context.Context, fromPlayerID, toPlayerID string) error

	// Admin functions
	SetMasteryLevel(ctx context.Context, playerID string, enchantment domain.EnchantmentID, level int) error
	ResetMastery(ctx context.Context, playerID, resetBy string) error
}

// LetterUnlock describes one letter revealed by a decode cascade.
type LetterUnlock struct {
	Index    int    `json:"index"`
	Letter   string `json:"letter"`
	Unlocked int    `json:"unlocked"`
	Total    int    `json:"total"`
}

// AbsorbResult is the receipt for a committed absorb transaction.
type AbsorbResult struct {
	PlayerID         string               `json:"player_id"`
	Enchantment      domain.EnchantmentID `json:"enchantment"`
	NewMasteryLevel  int                  `json:"new_mastery_level"`
	Cost             int                  `json:"cost"`
	RemainingBalance int                  `json:"remaining_balance"`
	TotalLevelsSpent int                  `json:"total_levels_spent"`
	LettersUnlocked  []LetterUnlock       `json:"letters_unlocked,omitempty"`
	DecodedName      string               `json:"decoded_name"`
	Item             *domain.Item         `json:"item"`
}

// ApplyResult is the receipt for a committed apply transaction.
type ApplyResult struct {
	PlayerID         string               `json:"player_id"`
	Enchantment      domain.EnchantmentID `json:"enchantment"`
	TargetLevel      int                  `json:"target_level"`
	VisibleLevel     int                  `json:"visible_level"`
	EffectiveLevel   int                  `json:"effective_level,omitempty"`
	Cost             int                  `json:"cost"`
	RemainingBalance int                  `json:"remaining_balance"`
	TotalLevelsSpent int                  `json:"total_levels_spent"`
	XPGained         int                  `json:"xp_gained"`
	MasteryLevel     int                  `json:"mastery_level"`
	LeveledUp        bool                 `json:"leveled_up"`
	LettersUnlocked  []LetterUnlock       `json:"letters_unlocked,omitempty"`
	Item             *domain.Item         `json:"item"`
}

type service struct {
	store    LedgerStore
	registry registry.Registry
	wallet   wallet.Wallet
	curve    Curve
	bus      event.Bus

	// One lock per player keeps transactions strictly sequential per
	// player; there is no cross-player shared mutable state.
	locks *concurrency.LockManager
}

// NewService creates a new mastery progression service
func NewService(ledgers LedgerStore, reg registry.Registry, w wallet.Wallet, curve Curve, bus event.Bus) Service {
	return &service{
		store:    ledgers,
		registry: reg,
		wallet:   w,
		curve:    curve,
		bus:      bus,
		locks:    concurrency.NewLockManager(),
	}
}

// TryAbsorb consumes one unit of a single-enchantment source item to raise
// the player's mastery level for that enchantment by exactly one step.
func (s *service) TryAbsorb(ctx context.Context, playerID string, item *domain.Item) (*AbsorbResult, error) {
	if playerID == "" {
		return nil, fmt.Errorf("%w: missing player id", domain.ErrInvalidInput)
	}
	if item.IsEmpty() {
		return nil, fmt.Errorf("%w: missing source item", domain.ErrInvalidInput)
	}

	mu := s.locks.GetLock(playerID)
	mu.Lock()
	defer mu.Unlock()

	switch {
	case len(item.StoredEnchantments) == 0:
		return nil, domain.Reject(domain.ErrNoEnchantment, "")
	case len(item.StoredEnchantments) > 1:
		return nil, domain.Reject(domain.ErrMultipleEnchantments, "")
	}
	id, bookLevel, _ := item.SingleStoredEnchantment()

	if _, ok := s.registry.Get(id); !ok {
		return nil, domain.Reject(domain.ErrUnknownEnchantment, id)
	}

	ledger, err := s.store.Get(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	current := ledger.MasteryLevel(id)
	if bookLevel > current+1 {
		// Mastery is absorbed one step at a time.
		return nil, domain.RejectWithAmounts(domain.ErrProgressionGap, id, current+1, bookLevel)
	}
	if bookLevel <= current {
		return nil, domain.RejectWithAmounts(domain.ErrAlreadyLearned, id, current+1, bookLevel)
	}

	cost := s.curve.AbsorbCost(bookLevel)
	balance, err := s.wallet.Balance(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance: %w", err)
	}
	if balance < cost {
		return nil, domain.RejectWithAmounts(domain.ErrInsufficientCurrency, id, cost, balance)
	}

	// All checks passed; mutate a copy and commit it.
	updated := ledger.Clone()
	updated.SetMasteryLevel(id, bookLevel)
	updated.AddLevelsSpent(cost)
	unlocks := s.runDecodeCascade(playerID, updated, id, cost)

	if err := s.commit(ctx, playerID, updated, cost); err != nil {
		return nil, err
	}

	consumed := item.Clone()
	consumed.Count--

	s.publish(ctx, event.NewAbsorbedEvent(playerID, id, bookLevel, cost))
	s.publishUnlocks(ctx, playerID, id, unlocks)
	s.pushSnapshot(ctx, playerID, updated)

	return &AbsorbResult{
		PlayerID:         playerID,
		Enchantment:      id,
		NewMasteryLevel:  bookLevel,
		Cost:             cost,
		RemainingBalance: balance - cost,
		TotalLevelsSpent: updated.TotalLevelsSpent(),
		LettersUnlocked:  unlocks,
		DecodedName:      decoding.DecodedName(s.registry.DisplayName(id), updated.UnlockedLetters(id)),
		Item:             consumed,
	}, nil
}

// TrySelectAndApply spends currency to enchant an item at targetLevel using
// held mastery. Levels beyond the host cap are clamped on the item and
// recorded in its effective-level record.
func (s *service) TrySelectAndApply(ctx context.Context, playerID string, item *domain.Item, enchantment domain.EnchantmentID, targetLevel int) (*ApplyResult, error) {
	if playerID == "" {
		return nil, fmt.Errorf("%w: missing player id", domain.ErrInvalidInput)
	}
	if enchantment == "" {
		return nil, fmt.Errorf("%w: missing enchantment selection", domain.ErrInvalidInput)
	}
	if targetLevel <= 0 {
		return nil, fmt.Errorf("%w: target level must be positive", domain.ErrInvalidInput)
	}
	if item.IsEmpty() {
		return nil, fmt.Errorf("%w: missing target item", domain.ErrInvalidInput)
	}

	mu := s.locks.GetLock(playerID)
	mu.Lock()
	defer mu.Unlock()

	def, ok := s.registry.Get(enchantment)
	if !ok {
		return nil, domain.Reject(domain.ErrUnknownEnchantment, enchantment)
	}

	ledger, err := s.store.Get(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	mastery := ledger.MasteryLevel(enchantment)
	if targetLevel > mastery {
		return nil, domain.RejectWithAmounts(domain.ErrMasteryTooLow, enchantment, targetLevel, mastery)
	}

	if !s.registry.CanEnchant(enchantment, item.Kind) {
		return nil, domain.Reject(domain.ErrItemIncompatible, enchantment)
	}
	for existing := range item.Enchantments {
		if existing == enchantment {
			// Re-applying the same enchantment is an upgrade, never a
			// conflict.
			continue
		}
		if !s.registry.AreCompatible(enchantment, existing) {
			return nil, domain.Reject(domain.ErrEnchantmentConflict, enchantment)
		}
	}

	cost := s.curve.ApplyCost(targetLevel)
	balance, err := s.wallet.Balance(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance: %w", err)
	}
	if balance < cost {
		return nil, domain.RejectWithAmounts(domain.ErrInsufficientCurrency, enchantment, cost, balance)
	}

	updated := ledger.Clone()
	updated.AddLevelsSpent(cost)

	xpGain := s.curve.XPGainFromApplyCost(cost)
	newLevel, remainingXP := s.curve.ResolveLevelUps(mastery, updated.MasteryXP(enchantment), xpGain)
	updated.SetMasteryLevel(enchantment, newLevel)
	updated.SetMasteryXP(enchantment, remainingXP)

	unlocks := s.runDecodeCascade(playerID, updated, enchantment, cost)

	if err := s.commit(ctx, playerID, updated, cost); err != nil {
		return nil, err
	}

	visibleLevel := min(targetLevel, def.MaxLevel)
	effectiveLevel := 0
	if targetLevel > def.MaxLevel {
		effectiveLevel = targetLevel
	}

	enchanted := item.Clone()
	enchanted.SetEnchantment(enchantment, visibleLevel)
	enchanted.SetEffectiveLevel(enchantment, effectiveLevel)

	s.publish(ctx, event.NewAppliedEvent(playerID, enchantment, targetLevel, visibleLevel, effectiveLevel, cost))
	if newLevel > mastery {
		s.publish(ctx, event.NewLevelUpEvent(playerID, enchantment, mastery, newLevel))
	}
	s.publishUnlocks(ctx, playerID, enchantment, unlocks)
	s.pushSnapshot(ctx, playerID, updated)

	return &ApplyResult{
		PlayerID:         playerID,
		Enchantment:      enchantment,
		TargetLevel:      targetLevel,
		VisibleLevel:     visibleLevel,
		EffectiveLevel:   effectiveLevel,
		Cost:             cost,
		RemainingBalance: balance - cost,
		TotalLevelsSpent: updated.TotalLevelsSpent(),
		XPGained:         xpGain,
		MasteryLevel:     newLevel,
		LeveledUp:        newLevel > mastery,
		LettersUnlocked:  unlocks,
		Item:             enchanted,
	}, nil
}

// runDecodeCascade spends the transaction's cost as a non-persistent budget
// on up to MaxCascadeUnlocks letter reveals. The remainder is discarded; it
// is never banked and never deducted from currency again.
func (s *service) runDecodeCascade(playerID string, ledger *Ledger, id domain.EnchantmentID, budget int) []LetterUnlock {
	name := s.registry.DisplayName(id)
	total := decoding.CountLetters(name)
	seed := decoding.Seed(playerID, id)

	var unlocks []LetterUnlock
	remaining := budget
	for len(unlocks) < MaxCascadeUnlocks && remaining > 0 {
		count := ledger.UnlockedLetterCount(id)
		cost := s.curve.DecodeCost(count)
		if cost > remaining {
			break
		}
		index, ok := decoding.SelectNextLetter(seed, name, ledger.UnlockedLetters(id))
		if !ok {
			break
		}
		ledger.AddUnlockedLetter(id, index)
		remaining -= cost
		unlocks = append(unlocks, LetterUnlock{
			Index:    index,
			Letter:   decoding.LetterAt(name, index),
			Unlocked: count + 1,
			Total:    total,
		})
	}
	return unlocks
}

// commit makes a validated transaction durable: deduct the already-checked
// cost, then save the mutated ledger, refunding the deduction if the save
// fails so rejection stays atomic.
func (s *service) commit(ctx context.Context, playerID string, updated *Ledger, cost int) error {
	log := logger.FromContext(ctx)

	if err := s.wallet.Deduct(ctx, playerID, cost); err != nil {
		return fmt.Errorf("failed to deduct currency: %w", err)
	}
	if err := s.store.Save(ctx, playerID, updated); err != nil {
		if refundErr := s.wallet.Credit(ctx, playerID, cost); refundErr != nil {
			log.Error("Failed to refund after save failure",
				"player_id", playerID, "amount", cost, "error", refundErr)
		}
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	return nil
}

// publish sends an event, logging instead of failing: by the time events go
// out the transaction is already durable.
func (s *service) publish(ctx context.Context, e event.Event) {
	if err := s.bus.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn("Event handler failure", "type", e.Type, "error", err)
	}
}

func (s *service) publishUnlocks(ctx context.Context, playerID string, id domain.EnchantmentID, unlocks []LetterUnlock) {
	for _, u := range unlocks {
		s.publish(ctx, event.NewLetterUnlockedEvent(playerID, id, u.Index, u.Letter, u.Unlocked, u.Total))
	}
}

// pushSnapshot serializes the committed ledger and publishes it for the
// mirror projection and SSE subscribers.
func (s *service) pushSnapshot(ctx context.Context, playerID string, ledger *Ledger) {
	data, err := ledger.MarshalBinary()
	if err != nil {
		logger.FromContext(ctx).Error("Failed to encode snapshot", "player_id", playerID, "error", err)
		return
	}
	s.publish(ctx, event.NewSnapshotPushedEvent(playerID, data))
}
