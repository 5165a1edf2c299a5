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
	MasteryAbsorbs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMasteryAbsorbs,
			Help: HelpTextMasteryAbsorbs,
		},
		[]string{LabelEnchantment},
	)

	MasteryApplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMasteryApplies,
			Help: HelpTextMasteryApplies,
		},
		[]string{LabelEnchantment},
	)

	MasteryLevelUps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMasteryLevelUps,
			Help: HelpTextMasteryLevelUps,
		},
		[]string{LabelEnchantment},
	)

	LettersUnlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLettersUnlocked,
			Help: HelpTextLettersUnlocked,
		},
		[]string{LabelEnchantment},
	)

	SnapshotsPushed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSnapshotsPushed,
			Help: HelpTextSnapshotsPushed,
		},
	)

	Rejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRejections,
			Help: HelpTextRejections,
		},
		[]string{LabelReason},
	)

	LevelsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelsSpent,
			Help: HelpTextLevelsSpent,
		},
	)
)
