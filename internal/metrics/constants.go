package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameMasteryAbsorbs  = "mastery_absorbs_total"
	MetricNameMasteryApplies  = "mastery_applies_total"
	MetricNameMasteryLevelUps = "mastery_level_ups_total"
	MetricNameLettersUnlocked = "mastery_letters_unlocked_total"
	MetricNameSnapshotsPushed = "mastery_snapshots_pushed_total"
	MetricNameRejections      = "mastery_rejections_total"
	MetricNameLevelsSpent     = "mastery_levels_spent_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextMasteryAbsorbs  = "Total number of completed absorb transactions"
	HelpTextMasteryApplies  = "Total number of completed apply transactions"
	HelpTextMasteryLevelUps = "Total number of mastery level-ups"
	HelpTextLettersUnlocked = "Total number of letters unlocked by decode cascades"
	HelpTextSnapshotsPushed = "Total number of ledger snapshots pushed to mirrors"
	HelpTextRejections      = "Total number of rejected transactions by reason"
	HelpTextLevelsSpent     = "Total experience levels spent on mastery transactions"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod      = "method"
	LabelPath        = "path"
	LabelStatus      = "status"
	LabelType        = "type"
	LabelEnchantment = "enchantment"
	LabelReason      = "reason"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
