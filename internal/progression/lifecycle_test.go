package progression

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korvus/EnchantMastery_Go/internal/domain"
	"github.com/korvus/EnchantMastery_Go/internal/event"
)

func TestProfile(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.fund("player-1", 42)
	f.seedLedger("player-1", func(l *Ledger) {
		l.SetMasteryLevel(sharpness, 4)
		l.SetMasteryXP(sharpness, 7)
		l.SetUnlockedLetters(sharpness, []int{0, 4, 8})
		l.SetMasteryLevel(protection, 1)
		l.AddLevelsSpent(60)
	})

	p, err := f.svc.Profile(ctx, "player-1")
	require.NoError(t, err)

	assert.Equal(t, 42, p.Balance)
	assert.Equal(t, 60, p.TotalLevelsSpent)
	assert.Equal(t, 5, p.CombinedMastery)
	require.Len(t, p.Enchantments, 2)

	// Entries are sorted by enchantment id.
	prot, sharp := p.Enchantments[0], p.Enchantments[1]
	assert.Equal(t, protection, prot.Enchantment)
	assert.Equal(t, sharpness, sharp.Enchantment)

	assert.Equal(t, 4, sharp.MasteryLevel)
	assert.Equal(t, "IV", sharp.MasteryRoman)
	assert.Equal(t, 7, sharp.MasteryXP)
	assert.Equal(t, 46, sharp.XPToNextLevel)
	assert.Equal(t, "S???p???s", sharp.DecodedName)
	assert.Equal(t, 9, sharp.LettersTotal)
	assert.InDelta(t, 1.0/3.0, sharp.DecodeProgress, 1e-9)
	assert.False(t, sharp.FullyDecoded)

	assert.Equal(t, "??????????", prot.DecodedName)
}

func TestProfile_EmptyPlayer(t *testing.T) {
	f := newFixture()

	p, err := f.svc.Profile(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, p.Enchantments)
	assert.Equal(t, 0, p.TotalLevelsSpent)
}

func TestPreviewAbsorbCost(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.fund("player-1", 30)
	f.seedLedger("player-1", func(l *Ledger) { l.SetMasteryLevel(sharpness, 1) })

	preview, err := f.svc.PreviewAbsorbCost(ctx, "player-1", sharpness, 3)
	require.NoError(t, err)

	assert.Equal(t, 1, preview.CurrentMastery)
	assert.Equal(t, 3, preview.TargetLevel)
	assert.Equal(t, 35, preview.TotalCost, "levels 2 and 3 cost 12 + 23")
	assert.Equal(t, 12, preview.NextLevelCost)
	assert.Equal(t, 30, preview.Balance)
}

func TestPreviewAbsorbCost_Errors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.PreviewAbsorbCost(ctx, "player-1", "modpack:unheard_of", 1)
	assert.ErrorIs(t, err, domain.ErrUnknownEnchantment)

	_, err = f.svc.PreviewAbsorbCost(ctx, "player-1", sharpness, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStats(t *testing.T) {
	f := newFixture()
	f.seedLedger("player-1", func(l *Ledger) {
		l.SetMasteryLevel(sharpness, 4)
		l.SetMasteryLevel(protection, 2)
		l.SetUnlockedLetters(sharpness, []int{0, 1})
		l.SetUnlockedLetters(protection, []int{3})
		l.AddLevelsSpent(77)
	})

	stats, err := f.svc.Stats(context.Background(), "player-1")
	require.NoError(t, err)

	assert.Equal(t, 2, stats.EnchantmentsLearned)
	assert.Equal(t, 6, stats.CombinedMastery)
	assert.Equal(t, 77, stats.TotalLevelsSpent)
	assert.Equal(t, 3, stats.LettersUnlocked)
}

func TestSyncPlayer(t *testing.T) {
	f := newFixture()
	f.seedLedger("player-1", func(l *Ledger) { l.SetMasteryLevel(sharpness, 2) })

	require.NoError(t, f.svc.SyncPlayer(context.Background(), "player-1"))

	types := f.recorder.types()
	require.Len(t, types, 1)
	assert.Equal(t, event.MasterySnapshotPushed, types[0])
}

func TestTransferLedger(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedLedger("old-entity", func(l *Ledger) {
		l.SetMasteryLevel(sharpness, 3)
		l.AddUnlockedLetter(sharpness, 1)
		l.AddLevelsSpent(40)
	})

	require.NoError(t, f.svc.TransferLedger(ctx, "old-entity", "new-entity"))

	moved, err := f.store.Get(ctx, "new-entity")
	require.NoError(t, err)
	assert.Equal(t, 3, moved.MasteryLevel(sharpness))
	assert.Equal(t, 40, moved.TotalLevelsSpent())

	discarded, err := f.store.Get(ctx, "old-entity")
	require.NoError(t, err)
	assert.True(t, discarded.IsEmpty(), "the source copy is discarded")

	types := f.recorder.types()
	assert.Contains(t, types, event.MasteryReset)
	assert.Contains(t, types, event.MasterySnapshotPushed)
}

func TestTransferLedger_InvalidInput(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.TransferLedger(ctx, "", "b"), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.svc.TransferLedger(ctx, "a", ""), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.svc.TransferLedger(ctx, "a", "a"), domain.ErrInvalidInput)
}

func TestSetMasteryLevel(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.SetMasteryLevel(ctx, "player-1", sharpness, 7))

	saved, err := f.store.Get(ctx, "player-1")
	require.NoError(t, err)
	assert.Equal(t, 7, saved.MasteryLevel(sharpness))

	// Setting to zero clears level and pending XP.
	f.seedLedger("player-1", func(l *Ledger) {
		l.SetMasteryLevel(sharpness, 7)
		l.SetMasteryXP(sharpness, 5)
	})
	require.NoError(t, f.svc.SetMasteryLevel(ctx, "player-1", sharpness, 0))
	saved, err = f.store.Get(ctx, "player-1")
	require.NoError(t, err)
	assert.False(t, saved.HasMastery(sharpness))
	assert.Equal(t, 0, saved.MasteryXP(sharpness))
}

func TestSetMasteryLevel_Errors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.SetMasteryLevel(ctx, "player-1", sharpness, -1), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.svc.SetMasteryLevel(ctx, "player-1", "modpack:unheard_of", 1), domain.ErrUnknownEnchantment)
}

func TestResetMastery(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedLedger("player-1", func(l *Ledger) {
		l.SetMasteryLevel(sharpness, 5)
		l.AddLevelsSpent(100)
	})

	require.NoError(t, f.svc.ResetMastery(ctx, "player-1", "admin"))

	saved, err := f.store.Get(ctx, "player-1")
	require.NoError(t, err)
	assert.True(t, saved.IsEmpty(), "reset is the one operation allowed to zero total levels spent")

	types := f.recorder.types()
	require.Len(t, types, 1)
	assert.Equal(t, event.MasteryReset, types[0])
}
