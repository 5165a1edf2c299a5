// Package mirror maintains the read-only projection of mastery state that
// display surfaces consume. The authoritative ledger pushes full binary
// snapshots; the mirror decodes and caches them, last write wins. The
// mirror never feeds state back into the authoritative side.
package mirror

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/korvus/EnchantMastery_Go/internal/event"
	"github.com/korvus/EnchantMastery_Go/internal/logger"
	"github.com/korvus/EnchantMastery_Go/internal/progression"
)

// DefaultCapacity bounds how many player snapshots the mirror retains.
const DefaultCapacity = 4096

// Snapshot is one decoded push.
type Snapshot struct {
	Ledger     *progression.Ledger
	Raw        []byte
	ReceivedAt time.Time
}

// Mirror caches the latest snapshot per player. Safe for concurrent use.
type Mirror struct {
	cache *lru.Cache[string, Snapshot]
}

// New creates a mirror retaining up to capacity player snapshots. A
// non-positive capacity uses DefaultCapacity.
func New(capacity int) (*Mirror, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	cache, err := lru.New[string, Snapshot](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot cache: %w", err)
	}
	return &Mirror{cache: cache}, nil
}

// Push decodes a binary snapshot and replaces the player's cached state.
// Each push supersedes the previous one wholesale.
func (m *Mirror) Push(playerID string, data []byte) error {
	ledger := progression.NewLedger()
	if err := ledger.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("failed to decode snapshot for player %s: %w", playerID, err)
	}

	raw := make([]byte, len(data))
	copy(raw, data)

	m.cache.Add(playerID, Snapshot{
		Ledger:     ledger,
		Raw:        raw,
		ReceivedAt: time.Now(),
	})
	return nil
}

// Get returns the latest decoded snapshot for a player.
func (m *Mirror) Get(playerID string) (Snapshot, bool) {
	return m.cache.Get(playerID)
}

// Ledger returns the latest projected ledger for a player, or an empty
// ledger when nothing has been pushed yet.
func (m *Mirror) Ledger(playerID string) *progression.Ledger {
	if snap, ok := m.cache.Get(playerID); ok {
		return snap.Ledger.Clone()
	}
	return progression.NewLedger()
}

// Evict drops a player's cached snapshot.
func (m *Mirror) Evict(playerID string) {
	m.cache.Remove(playerID)
}

// Len returns how many players currently have a cached snapshot.
func (m *Mirror) Len() int {
	return m.cache.Len()
}

// AttachTo subscribes the mirror to snapshot push events so every committed
// transaction refreshes the projection.
func (m *Mirror) AttachTo(bus event.Bus) {
	bus.Subscribe(event.MasterySnapshotPushed, func(ctx context.Context, e event.Event) error {
		payload, ok := e.Payload.(event.SnapshotPushedPayloadV1)
		if !ok {
			return fmt.Errorf("unexpected payload type %T for %s", e.Payload, e.Type)
		}
		if err := m.Push(payload.PlayerID, payload.Data); err != nil {
			logger.FromContext(ctx).Warn("Failed to project snapshot",
				"player_id", payload.PlayerID, "error", err)
			return err
		}
		return nil
	})

	bus.Subscribe(event.MasteryReset, func(_ context.Context, e event.Event) error {
		payload, ok := e.Payload.(event.ResetPayloadV1)
		if !ok {
			return fmt.Errorf("unexpected payload type %T for %s", e.Payload, e.Type)
		}
		m.Evict(payload.PlayerID)
		return nil
	})
}
