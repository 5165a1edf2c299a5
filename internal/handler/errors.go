package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam  = "Missing %s query parameter"
	ErrMsgInvalidTargetLevel = "Invalid target_level parameter"

	// Mastery operation error messages
	ErrMsgAbsorbFailed      = "Failed to absorb enchantment"
	ErrMsgApplyFailed       = "Failed to apply enchantment"
	ErrMsgGetProfileFailed  = "Failed to retrieve mastery profile"
	ErrMsgPreviewCostFailed = "Failed to preview absorb cost"
	ErrMsgTransferFailed    = "Failed to transfer mastery ledger"
	ErrMsgSyncFailed        = "Failed to sync player"

	// Admin error messages
	ErrMsgSetMasteryFailed = "Failed to set mastery level"
	ErrMsgResetFailed      = "Failed to reset mastery"
	ErrMsgGetStatsFailed   = "Failed to retrieve mastery stats"
)

// Success messages for API responses
// These are user-facing success messages returned in JSON responses
const (
	MsgTransferSuccess = "Mastery ledger transferred successfully"
	MsgResetSuccess    = "Mastery reset successfully"
	MsgSetLevelSuccess = "Mastery level set successfully"
	MsgSyncSuccess     = "Snapshot pushed successfully"
)
