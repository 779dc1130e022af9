package llm

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// LLMCallEvent records metadata about a single LLM invocation.
type LLMCallEvent struct {
	Task      TaskType
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes one structured log line per LLM call.
type LogObserver struct {
	logger *zap.Logger
}

// NewLogObserver creates an Observer that logs events to logger.
func NewLogObserver(logger *zap.Logger) *LogObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogObserver{logger: logger.Named("llm")}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	fields := []zap.Field{
		zap.String("task", string(event.Task)),
		zap.String("model", event.Model),
		zap.Int64("latency_ms", event.LatencyMs),
		zap.String("status", status),
	}
	if event.Success {
		o.logger.Info("llm_call", fields...)
		return
	}
	o.logger.Warn("llm_call", fields...)
}

// MetricsObserver records LLM call counts and latency as Prometheus metrics.
type MetricsObserver struct {
	calls   *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

// NewMetricsObserver registers its collectors with reg.
func NewMetricsObserver(reg prometheus.Registerer) *MetricsObserver {
	factory := promauto.With(reg)
	return &MetricsObserver{
		calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studydesk_llm_calls_total",
				Help: "Total LLM calls by task and outcome",
			},
			[]string{"task", "status"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "studydesk_llm_call_duration_seconds",
				Help:    "LLM call duration in seconds",
				Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30},
			},
			[]string{"task"},
		),
	}
}

func (o *MetricsObserver) OnCallComplete(event LLMCallEvent) {
	status := "ok"
	if !event.Success {
		status = event.ErrorCode
	}
	o.calls.WithLabelValues(string(event.Task), status).Inc()
	o.latency.WithLabelValues(string(event.Task)).Observe(float64(event.LatencyMs) / 1000)
}

// MultiObserver fans one event out to several observers.
type MultiObserver []Observer

func (m MultiObserver) OnCallComplete(event LLMCallEvent) {
	for _, o := range m {
		o.OnCallComplete(event)
	}
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
