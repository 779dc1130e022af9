package llm

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogObserver_WritesStructuredLine(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	obs := NewLogObserver(zap.New(core))

	obs.OnCallComplete(LLMCallEvent{Task: TaskChat, Model: "llama3.2", LatencyMs: 42, Success: true})
	obs.OnCallComplete(LLMCallEvent{Task: TaskTimeParse, Model: "llama3.2", Success: false, ErrorCode: "TIMEOUT"})

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "llm_call", entries[0].Message)
	assert.Equal(t, "chat", first["task"])
	assert.Equal(t, int64(42), first["latency_ms"])
	assert.Equal(t, "ok", first["status"])

	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, "err:TIMEOUT", entries[1].ContextMap()["status"])
}

func TestMetricsObserver_CountsCalls(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := NewMetricsObserver(reg)

	obs.OnCallComplete(LLMCallEvent{Task: TaskChat, Success: true, LatencyMs: 100})
	obs.OnCallComplete(LLMCallEvent{Task: TaskChat, Success: true, LatencyMs: 200})
	obs.OnCallComplete(LLMCallEvent{Task: TaskTimeParse, Success: false, ErrorCode: "UNAVAILABLE"})

	assert.Equal(t, 2.0, testutil.ToFloat64(obs.calls.WithLabelValues("chat", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.calls.WithLabelValues("time_parse", "UNAVAILABLE")))
}

func TestMultiObserver_FansOut(t *testing.T) {
	var a, b int
	multi := MultiObserver{
		&captureObserver{fn: func(LLMCallEvent) { a++ }},
		&captureObserver{fn: func(LLMCallEvent) { b++ }},
		NoopObserver{},
	}
	multi.OnCallComplete(LLMCallEvent{Task: TaskChat})
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}
