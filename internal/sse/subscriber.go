package sse

import (
	"context"
	"log/slog"

	"github.com/korvus/EnchantMastery_Go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for all relevant event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.MasteryAbsorbed, s.handleAbsorbed)
	s.bus.Subscribe(event.MasteryApplied, s.handleApplied)
	s.bus.Subscribe(event.MasteryLevelUp, s.handleLevelUp)
	s.bus.Subscribe(event.MasteryLetterUnlocked, s.handleLetterUnlocked)
	s.bus.Subscribe(event.MasterySnapshotPushed, s.handleSnapshotPushed)
	s.bus.Subscribe(event.MasteryReset, s.handleReset)

	slog.Info("SSE subscriber registered for event types",
		"types", []string{
			string(event.MasteryAbsorbed),
			string(event.MasteryApplied),
			string(event.MasteryLevelUp),
			string(event.MasteryLetterUnlocked),
			string(event.MasterySnapshotPushed),
			string(event.MasteryReset),
		})
}

// handleAbsorbed forwards book absorption events to SSE clients
func (s *Subscriber) handleAbsorbed(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.AbsorbedPayloadV1)
	if !ok {
		slog.Warn("Invalid absorbed event payload type")
		return nil
	}

	ssePayload := AbsorbedPayload{
		PlayerID:    payload.PlayerID,
		Enchantment: payload.Enchantment,
		NewLevel:    payload.NewLevel,
		LevelsSpent: payload.LevelsSpent,
	}

	s.hub.Broadcast(EventTypeAbsorbed, payload.PlayerID, ssePayload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeAbsorbed,
		"player_id", ssePayload.PlayerID,
		"enchantment", ssePayload.Enchantment,
		"new_level", ssePayload.NewLevel)

	return nil
}

// handleApplied forwards enchantment apply events to SSE clients
func (s *Subscriber) handleApplied(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.AppliedPayloadV1)
	if !ok {
		slog.Warn("Invalid applied event payload type")
		return nil
	}

	ssePayload := AppliedPayload{
		PlayerID:       payload.PlayerID,
		Enchantment:    payload.Enchantment,
		TargetLevel:    payload.TargetLevel,
		VisibleLevel:   payload.VisibleLevel,
		EffectiveLevel: payload.EffectiveLevel,
		LevelsSpent:    payload.LevelsSpent,
	}

	s.hub.Broadcast(EventTypeApplied, payload.PlayerID, ssePayload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeApplied,
		"player_id", ssePayload.PlayerID,
		"enchantment", ssePayload.Enchantment,
		"target_level", ssePayload.TargetLevel)

	return nil
}

// handleLevelUp forwards mastery level-up events to SSE clients
func (s *Subscriber) handleLevelUp(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.LevelUpPayloadV1)
	if !ok {
		slog.Warn("Invalid level up event payload type")
		return nil
	}

	ssePayload := LevelUpPayload{
		PlayerID:    payload.PlayerID,
		Enchantment: payload.Enchantment,
		OldLevel:    payload.OldLevel,
		NewLevel:    payload.NewLevel,
	}

	s.hub.Broadcast(EventTypeLevelUp, payload.PlayerID, ssePayload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeLevelUp,
		"player_id", ssePayload.PlayerID,
		"enchantment", ssePayload.Enchantment,
		"new_level", ssePayload.NewLevel)

	return nil
}

// handleLetterUnlocked forwards decode letter unlocks to SSE clients
func (s *Subscriber) handleLetterUnlocked(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.LetterUnlockedPayloadV1)
	if !ok {
		slog.Warn("Invalid letter unlocked event payload type")
		return nil
	}

	ssePayload := LetterUnlockedPayload{
		PlayerID:    payload.PlayerID,
		Enchantment: payload.Enchantment,
		LetterIndex: payload.LetterIndex,
		Letter:      payload.Letter,
		Unlocked:    payload.Unlocked,
		Total:       payload.Total,
	}

	s.hub.Broadcast(EventTypeLetterUnlocked, payload.PlayerID, ssePayload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeLetterUnlocked,
		"player_id", ssePayload.PlayerID,
		"enchantment", ssePayload.Enchantment,
		"letter_index", ssePayload.LetterIndex)

	return nil
}

// handleSnapshotPushed forwards full ledger snapshots to SSE clients. This
// is the transport leg of mirror sync: connected clients feed each snapshot
// straight into their local mirror.
func (s *Subscriber) handleSnapshotPushed(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.SnapshotPushedPayloadV1)
	if !ok {
		slog.Warn("Invalid snapshot event payload type")
		return nil
	}

	ssePayload := SnapshotPayload{
		PlayerID: payload.PlayerID,
		Data:     payload.Data,
	}

	s.hub.Broadcast(EventTypeSnapshot, payload.PlayerID, ssePayload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeSnapshot,
		"player_id", ssePayload.PlayerID,
		"snapshot_bytes", len(ssePayload.Data))

	return nil
}

// handleReset forwards mastery reset events to SSE clients
func (s *Subscriber) handleReset(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.ResetPayloadV1)
	if !ok {
		slog.Warn("Invalid reset event payload type")
		return nil
	}

	ssePayload := ResetPayload{
		PlayerID: payload.PlayerID,
		ResetBy:  payload.ResetBy,
	}

	s.hub.Broadcast(EventTypeReset, payload.PlayerID, ssePayload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeReset,
		"player_id", ssePayload.PlayerID)

	return nil
}
