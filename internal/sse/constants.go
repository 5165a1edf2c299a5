package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// WriteTimeout is the timeout for writing to client connections
	WriteTimeout = 10 * time.Second
)

// Event types for SSE
const (
	// EventTypeAbsorbed is sent when a player absorbs an enchanted book
	EventTypeAbsorbed = "mastery.absorbed"

	// EventTypeApplied is sent when a player applies an enchantment to an item
	EventTypeApplied = "mastery.applied"

	// EventTypeLevelUp is sent when accumulated XP raises a mastery level
	EventTypeLevelUp = "mastery.level_up"

	// EventTypeLetterUnlocked is sent for each letter revealed by a decode cascade
	EventTypeLetterUnlocked = "mastery.letter_unlocked"

	// EventTypeSnapshot is sent when a fresh ledger snapshot is pushed to mirrors
	EventTypeSnapshot = "mastery.snapshot_pushed"

	// EventTypeReset is sent when a player's mastery state is wiped
	EventTypeReset = "mastery.reset"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgFlushError         = "Failed to flush SSE response"
)
