package handler

import (
	"context"

	"github.com/korvus/EnchantMastery_Go/internal/domain"
	"github.com/korvus/EnchantMastery_Go/internal/progression"
)

// fakeService is a hand-rolled progression.Service for handler tests. Each
// endpoint's behavior is swapped in through the matching function field;
// unset fields return zero values.
type fakeService struct {
	absorbFn   func(ctx context.Context, playerID string, item *domain.Item) (*progression.AbsorbResult, error)
	applyFn    func(ctx context.Context, playerID string, item *domain.Item, enchantment domain.EnchantmentID, targetLevel int) (*progression.ApplyResult, error)
	profileFn  func(ctx context.Context, playerID string) (*progression.Profile, error)
	previewFn  func(ctx context.Context, playerID string, enchantment domain.EnchantmentID, targetLevel int) (*progression.CostPreview, error)
	statsFn    func(ctx context.Context, playerID string) (*progression.Stats, error)
	syncFn     func(ctx context.Context, playerID string) error
	transferFn func(ctx context.Context, fromPlayerID, toPlayerID string) error
	setFn      func(ctx context.Context, playerID string, enchantment domain.EnchantmentID, level int) error
	resetFn    func(ctx context.Context, playerID, resetBy string) error
}

func (f *fakeService) TryAbsorb(ctx context.Context, playerID string, item *domain.Item) (*progression.AbsorbResult, error) {
	if f.absorbFn != nil {
		return f.absorbFn(ctx, playerID, item)
	}
	return &progression.AbsorbResult{}, nil
}

func (f *fakeService) TrySelectAndApply(ctx context.Context, playerID string, item *domain.Item, enchantment domain.EnchantmentID, targetLevel int) (*progression.ApplyResult, error) {
	if f.applyFn != nil {
		return f.applyFn(ctx, playerID, item, enchantment, targetLevel)
	}
	return &progression.ApplyResult{}, nil
}

func (f *fakeService) Profile(ctx context.Context, playerID string) (*progression.Profile, error) {
	if f.profileFn != nil {
		return f.profileFn(ctx, playerID)
	}
	return &progression.Profile{PlayerID: playerID}, nil
}

func (f *fakeService) PreviewAbsorbCost(ctx context.Context, playerID string, enchantment domain.EnchantmentID, targetLevel int) (*progression.CostPreview, error) {
	if f.previewFn != nil {
		return f.previewFn(ctx, playerID, enchantment, targetLevel)
	}
	return &progression.CostPreview{}, nil
}

func (f *fakeService) Stats(ctx context.Context, playerID string) (*progression.Stats, error) {
	if f.statsFn != nil {
		return f.statsFn(ctx, playerID)
	}
	return &progression.Stats{PlayerID: playerID}, nil
}

func (f *fakeService) SyncPlayer(ctx context.Context, playerID string) error {
	if f.syncFn != nil {
		return f.syncFn(ctx, playerID)
	}
	return nil
}

func (f *fakeService) TransferLedger(ctx context.Context, fromPlayerID, toPlayerID string) error {
	if f.transferFn != nil {
		return f.transferFn(ctx, fromPlayerID, toPlayerID)
	}
	return nil
}

func (f *fakeService) SetMasteryLevel(ctx context.Context, playerID string, enchantment domain.EnchantmentID, level int) error {
	if f.setFn != nil {
		return f.setFn(ctx, playerID, enchantment, level)
	}
	return nil
}

func (f *fakeService) ResetMastery(ctx context.Context, playerID, resetBy string) error {
	if f.resetFn != nil {
		return f.resetFn(ctx, playerID, resetBy)
	}
	return nil
}
