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
	MetricNameBattlesCreated    = "boss_battles_created_total"
	MetricNameBattlesStarted    = "boss_battles_started_total"
	MetricNameBattlesResolved   = "boss_battles_resolved_total"
	MetricNameSubmissionsScored = "boss_submissions_scored_total"
	MetricNameSubmissionScore   = "boss_submission_score"
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
	HelpTextBattlesCreated    = "Total number of boss battles created"
	HelpTextBattlesStarted    = "Total number of boss battles started"
	HelpTextBattlesResolved   = "Total number of boss battles resolved by outcome"
	HelpTextSubmissionsScored = "Total number of solutions evaluated by evaluation mode"
	HelpTextSubmissionScore   = "Distribution of submission scores"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelSource  = "source"
	LabelOutcome = "outcome"
	LabelMode    = "mode"
	LabelLevel   = "target_level"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ScoreBuckets covers the 0-100 scoring scale, with a boundary at the
// victory threshold.
var ScoreBuckets = []float64{0, 10, 25, 40, 55, 70, 85, 100}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Failed to decode event payload for metrics"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
