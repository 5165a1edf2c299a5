package progression

import (
	"context"
	"fmt"

	"github.com/korvus/EnchantMastery_Go/internal/domain"
	"github.com/korvus/EnchantMastery_Go/internal/event"
)

// SyncPlayer pushes the player's current snapshot to the mirror, used on
// login/attach so clients start from authoritative state.
func (s *service) SyncPlayer(ctx context.Context, playerID string) error {
	if playerID == "" {
		return fmt.Errorf("%w: missing player id", domain.ErrInvalidInput)
	}

	mu := s.locks.GetLock(playerID)
	mu.Lock()
	defer mu.Unlock()

	ledger, err := s.store.Get(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	s.pushSnapshot(ctx, playerID, ledger)
	return nil
}

// TransferLedger moves mastery state wholesale from one player identity to
// another, the respawn ownership transfer: the destination's prior state is
// discarded, then the source copy is removed.
func (s *service) TransferLedger(ctx context.Context, fromPlayerID, toPlayerID string) error {
	if fromPlayerID == "" || toPlayerID == "" {
		return fmt.Errorf("%w: missing player id", domain.ErrInvalidInput)
	}
	if fromPlayerID == toPlayerID {
		return fmt.Errorf("%w: transfer requires two distinct players", domain.ErrInvalidInput)
	}

	unlock := s.locks.LockPair(fromPlayerID, toPlayerID)
	defer unlock()

	source, err := s.store.Get(ctx, fromPlayerID)
	if err != nil {
		return fmt.Errorf("failed to load source ledger: %w", err)
	}

	transferred := NewLedger()
	transferred.CopyFrom(source)

	if err := s.store.Save(ctx, toPlayerID, transferred); err != nil {
		return fmt.Errorf("failed to save transferred ledger: %w", err)
	}
	if err := s.store.Delete(ctx, fromPlayerID); err != nil {
		return fmt.Errorf("failed to discard source ledger: %w", err)
	}

	s.publish(ctx, event.NewResetEvent(fromPlayerID, "transfer"))
	s.pushSnapshot(ctx, toPlayerID, transferred)
	return nil
}

// SetMasteryLevel force-sets a mastery level, bypassing costs. Level 0
// clears the entry. Admin/debug surface.
func (s *service) SetMasteryLevel(ctx context.Context, playerID string, enchantment domain.EnchantmentID, level int) error {
	if playerID == "" {
		return fmt.Errorf("%w: missing player id", domain.ErrInvalidInput)
	}
	if level < 0 {
		return fmt.Errorf("%w: level must not be negative", domain.ErrInvalidInput)
	}
	if _, ok := s.registry.Get(enchantment); !ok {
		return domain.Reject(domain.ErrUnknownEnchantment, enchantment)
	}

	mu := s.locks.GetLock(playerID)
	mu.Lock()
	defer mu.Unlock()

	ledger, err := s.store.Get(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}

	updated := ledger.Clone()
	updated.SetMasteryLevel(enchantment, level)
	if level == 0 {
		updated.SetMasteryXP(enchantment, 0)
	}

	if err := s.store.Save(ctx, playerID, updated); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}

	s.pushSnapshot(ctx, playerID, updated)
	return nil
}

// ResetMastery wipes all mastery state for a player, the explicit reset
// carve-out that may zero the otherwise monotonic total-levels-spent.
func (s *service) ResetMastery(ctx context.Context, playerID, resetBy string) error {
	if playerID == "" {
		return fmt.Errorf("%w: missing player id", domain.ErrInvalidInput)
	}

	mu := s.locks.GetLock(playerID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.store.Delete(ctx, playerID); err != nil {
		return fmt.Errorf("failed to delete ledger: %w", err)
	}

	s.publish(ctx, event.NewResetEvent(playerID, resetBy))
	return nil
}
