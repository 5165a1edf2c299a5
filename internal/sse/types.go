package sse

// AbsorbedPayload represents the SSE payload for book absorption events
type AbsorbedPayload struct {
	PlayerID    string `json:"player_id"`
	Enchantment string `json:"enchantment"`
	NewLevel    int    `json:"new_level"`
	LevelsSpent int    `json:"levels_spent"`
}

// AppliedPayload represents the SSE payload for enchantment apply events
type AppliedPayload struct {
	PlayerID       string `json:"player_id"`
	Enchantment    string `json:"enchantment"`
	TargetLevel    int    `json:"target_level"`
	VisibleLevel   int    `json:"visible_level"`
	EffectiveLevel int    `json:"effective_level,omitempty"` // Set only when the target exceeds the host cap
	LevelsSpent    int    `json:"levels_spent"`
}

// LevelUpPayload represents the SSE payload for mastery level-up events
type LevelUpPayload struct {
	PlayerID    string `json:"player_id"`
	Enchantment string `json:"enchantment"`
	OldLevel    int    `json:"old_level"`
	NewLevel    int    `json:"new_level"`
}

// LetterUnlockedPayload represents the SSE payload for decode letter unlocks
type LetterUnlockedPayload struct {
	PlayerID    string `json:"player_id"`
	Enchantment string `json:"enchantment"`
	LetterIndex int    `json:"letter_index"`
	Letter      string `json:"letter"`
	Unlocked    int    `json:"unlocked"`
	Total       int    `json:"total"`
}

// SnapshotPayload represents the SSE payload for mirror snapshot pushes.
// Data is the full binary ledger snapshot; json marshals it as base64.
type SnapshotPayload struct {
	PlayerID string `json:"player_id"`
	Data     []byte `json:"data"`
}

// ResetPayload represents the SSE payload for mastery reset events
type ResetPayload struct {
	PlayerID string `json:"player_id"`
	ResetBy  string `json:"reset_by"`
}
