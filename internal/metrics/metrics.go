package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	BattlesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBattlesCreated,
			Help: HelpTextBattlesCreated,
		},
		[]string{LabelSource, LabelLevel},
	)

	BattlesStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBattlesStarted,
			Help: HelpTextBattlesStarted,
		},
	)

	BattlesResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBattlesResolved,
			Help: HelpTextBattlesResolved,
		},
		[]string{LabelOutcome},
	)

	SubmissionsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSubmissionsScored,
			Help: HelpTextSubmissionsScored,
		},
		[]string{LabelMode},
	)

	SubmissionScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameSubmissionScore,
			Help:    HelpTextSubmissionScore,
			Buckets: ScoreBuckets,
		},
	)
)
