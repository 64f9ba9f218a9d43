package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_processed_total",
			Help: "Total number of user messages processed, by intent category",
		},
		[]string{"intent"},
	)

	MessagesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_failed_total",
			Help: "Total number of message turns that failed, by error code",
		},
		[]string{"error_code"},
	)

	ProviderFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "completion_provider_failures_total",
			Help: "Total number of completion provider failures, by error code",
		},
		[]string{"error_code"},
	)

	PipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "chat_pipeline_duration_seconds",
			Help: "Duration of the full message pipeline in seconds",
		},
		[]string{"outcome"},
	)
)
