package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/korvus/EnchantMastery_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Common event types
const (
	MasteryAbsorbed       Type = "mastery.absorbed"
	MasteryApplied        Type = "mastery.applied"
	MasteryLevelUp        Type = "mastery.level_up"
	MasteryLetterUnlocked Type = "mastery.letter_unlocked"
	MasterySnapshotPushed Type = "mastery.snapshot_pushed"
	MasteryReset          Type = "mastery.reset"
)

// Typed event payloads for type safety

// AbsorbedPayloadV1 is the typed payload for book absorption events
type AbsorbedPayloadV1 struct {
	PlayerID    string `json:"player_id"`
	Enchantment string `json:"enchantment"`
	NewLevel    int    `json:"new_level"`
	LevelsSpent int    `json:"levels_spent"`
	Timestamp   int64  `json:"timestamp"`
}

// AppliedPayloadV1 is the typed payload for enchantment apply events
type AppliedPayloadV1 struct {
	PlayerID       string `json:"player_id"`
	Enchantment    string `json:"enchantment"`
	TargetLevel    int    `json:"target_level"`
	VisibleLevel   int    `json:"visible_level"`
	EffectiveLevel int    `json:"effective_level,omitempty"`
	LevelsSpent    int    `json:"levels_spent"`
	Timestamp      int64  `json:"timestamp"`
}

// LevelUpPayloadV1 is the typed payload for mastery level-up events
type LevelUpPayloadV1 struct {
	PlayerID    string `json:"player_id"`
	Enchantment string `json:"enchantment"`
	OldLevel    int    `json:"old_level"`
	NewLevel    int    `json:"new_level"`
	Timestamp   int64  `json:"timestamp"`
}

// LetterUnlockedPayloadV1 is the typed payload for letter unlock events
type LetterUnlockedPayloadV1 struct {
	PlayerID    string `json:"player_id"`
	Enchantment string `json:"enchantment"`
	LetterIndex int    `json:"letter_index"`
	Letter      string `json:"letter"`
	Unlocked    int    `json:"unlocked"`
	Total       int    `json:"total"`
	Timestamp   int64  `json:"timestamp"`
}

// SnapshotPushedPayloadV1 is the typed payload for mirror sync events.
// Data carries the full binary snapshot; each push supersedes the last.
type SnapshotPushedPayloadV1 struct {
	PlayerID  string `json:"player_id"`
	Data      []byte `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

// ResetPayloadV1 is the typed payload for mastery reset events
type ResetPayloadV1 struct {
	PlayerID  string `json:"player_id"`
	ResetBy   string `json:"reset_by"`
	Timestamp int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewAbsorbedEvent creates a new absorption event with type-safe payload
func NewAbsorbedEvent(playerID string, enchantment domain.EnchantmentID, newLevel, levelsSpent int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    MasteryAbsorbed,
		Payload: AbsorbedPayloadV1{
			PlayerID:    playerID,
			Enchantment: enchantment.String(),
			NewLevel:    newLevel,
			LevelsSpent: levelsSpent,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewAppliedEvent creates a new apply event with type-safe payload
func NewAppliedEvent(playerID string, enchantment domain.EnchantmentID, targetLevel, visibleLevel, effectiveLevel, levelsSpent int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    MasteryApplied,
		Payload: AppliedPayloadV1{
			PlayerID:       playerID,
			Enchantment:    enchantment.String(),
			TargetLevel:    targetLevel,
			VisibleLevel:   visibleLevel,
			EffectiveLevel: effectiveLevel,
			LevelsSpent:    levelsSpent,
			Timestamp:      time.Now().Unix(),
		},
	}
}

// NewLevelUpEvent creates a new mastery level-up event
func NewLevelUpEvent(playerID string, enchantment domain.EnchantmentID, oldLevel, newLevel int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    MasteryLevelUp,
		Payload: LevelUpPayloadV1{
			PlayerID:    playerID,
			Enchantment: enchantment.String(),
			OldLevel:    oldLevel,
			NewLevel:    newLevel,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewLetterUnlockedEvent creates a new letter unlock event
func NewLetterUnlockedEvent(playerID string, enchantment domain.EnchantmentID, letterIndex int, letter string, unlocked, total int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    MasteryLetterUnlocked,
		Payload: LetterUnlockedPayloadV1{
			PlayerID:    playerID,
			Enchantment: enchantment.String(),
			LetterIndex: letterIndex,
			Letter:      letter,
			Unlocked:    unlocked,
			Total:       total,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewSnapshotPushedEvent creates a new snapshot push event
func NewSnapshotPushedEvent(playerID string, data []byte) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    MasterySnapshotPushed,
		Payload: SnapshotPushedPayloadV1{
			PlayerID:  playerID,
			Data:      data,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewResetEvent creates a new mastery reset event
func NewResetEvent(playerID, resetBy string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    MasteryReset,
		Payload: ResetPayloadV1{
			PlayerID:  playerID,
			ResetBy:   resetBy,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers run synchronously; a transaction's notifications are fully
	// delivered before the next transaction for the player begins.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d handler(s) failed for event %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
