package metrics

import (
	"context"

	"github.com/korvus/EnchantMastery_Go/internal/event"
	"github.com/korvus/EnchantMastery_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.MasteryAbsorbed,
		event.MasteryApplied,
		event.MasteryLevelUp,
		event.MasteryLetterUnlocked,
		event.MasterySnapshotPushed,
		event.MasteryReset,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch payload := evt.Payload.(type) {
	case event.AbsorbedPayloadV1:
		MasteryAbsorbs.WithLabelValues(payload.Enchantment).Inc()
		LevelsSpent.Add(float64(payload.LevelsSpent))

	case event.AppliedPayloadV1:
		MasteryApplies.WithLabelValues(payload.Enchantment).Inc()
		LevelsSpent.Add(float64(payload.LevelsSpent))

	case event.LevelUpPayloadV1:
		MasteryLevelUps.WithLabelValues(payload.Enchantment).Inc()

	case event.LetterUnlockedPayloadV1:
		LettersUnlocked.WithLabelValues(payload.Enchantment).Inc()

	case event.SnapshotPushedPayloadV1:
		SnapshotsPushed.Inc()

	case event.ResetPayloadV1:
		// Counted by EventsPublished only.

	default:
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

// RecordRejection counts a rejected transaction by reason.
func RecordRejection(reason string) {
	Rejections.WithLabelValues(reason).Inc()
}
