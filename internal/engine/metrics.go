package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	TranscriptRequests  atomic.Int64
	TranscriptSuccesses atomic.Int64
	PrimaryFailures     atomic.Int64
	ProxyFallbacks      atomic.Int64
	ProxyErrors         atomic.Int64
	PreflightRequests   atomic.Int64
	UpstreamRequests    atomic.Int64
	LLMCalls            atomic.Int64
	LLMErrors           atomic.Int64

	InvalidURLErrors          atomic.Int64
	VideoUnavailableErrors    atomic.Int64
	TranscriptsDisabledErrors atomic.Int64
	NoTranscriptFoundErrors   atomic.Int64
	UpstreamErrors            atomic.Int64
}

var metricKeys = []string{
	"transcript_requests", "transcript_successes",
	"primary_failures", "proxy_fallbacks", "proxy_errors",
	"preflight_requests", "upstream_requests",
	"llm_calls", "llm_errors",
	"errors_invalid_url", "errors_video_unavailable", "errors_transcripts_disabled",
	"errors_no_transcript_found", "errors_upstream",
}

// GetMetrics returns a snapshot of all metrics.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"transcript_requests":         metrics.TranscriptRequests.Load(),
		"transcript_successes":        metrics.TranscriptSuccesses.Load(),
		"primary_failures":            metrics.PrimaryFailures.Load(),
		"proxy_fallbacks":             metrics.ProxyFallbacks.Load(),
		"proxy_errors":                metrics.ProxyErrors.Load(),
		"preflight_requests":          metrics.PreflightRequests.Load(),
		"upstream_requests":           metrics.UpstreamRequests.Load(),
		"llm_calls":                   metrics.LLMCalls.Load(),
		"llm_errors":                  metrics.LLMErrors.Load(),
		"errors_invalid_url":          metrics.InvalidURLErrors.Load(),
		"errors_video_unavailable":    metrics.VideoUnavailableErrors.Load(),
		"errors_transcripts_disabled": metrics.TranscriptsDisabledErrors.Load(),
		"errors_no_transcript_found":  metrics.NoTranscriptFoundErrors.Load(),
		"errors_upstream":             metrics.UpstreamErrors.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the transcript sub-package.
func IncrTranscriptRequest() { metrics.TranscriptRequests.Add(1) }
func IncrTranscriptSuccess() { metrics.TranscriptSuccesses.Add(1) }
func IncrPrimaryFailure() { metrics.PrimaryFailures.Add(1) }
func IncrProxyFallback() { metrics.ProxyFallbacks.Add(1) }
func IncrProxyError() { metrics.ProxyErrors.Add(1) }
func IncrPreflightRequest() { metrics.PreflightRequests.Add(1) }

// IncrError counts a terminal failure by its taxonomy kind name.
func IncrError(kind string) {
	switch kind {
	case "InvalidURL":
		metrics.InvalidURLErrors.Add(1)
	case "VideoUnavailable":
		metrics.VideoUnavailableErrors.Add(1)
	case "TranscriptsDisabled":
		metrics.TranscriptsDisabledErrors.Add(1)
	case "NoTranscriptFound":
		metrics.NoTranscriptFoundErrors.Add(1)
	default:
		metrics.UpstreamErrors.Add(1)
	}
}

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, threshold time.Duration, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > threshold {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
