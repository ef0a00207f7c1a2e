package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestIncrError(t *testing.T) {
	before := GetMetrics()
	for _, kind := range []string{"InvalidURL", "VideoUnavailable", "TranscriptsDisabled", "NoTranscriptFound", "UpstreamError", "Other"} {
		IncrError(kind)
	}
	after := GetMetrics()

	want := map[string]int64{
		"errors_invalid_url":          1,
		"errors_video_unavailable":    1,
		"errors_transcripts_disabled": 1,
		"errors_no_transcript_found":  1,
		"errors_upstream":             2,
	}
	for k, d := range want {
		if got := after[k] - before[k]; got != d {
			t.Errorf("%s grew by %d, want %d", k, got, d)
		}
	}
}

func TestFormatMetrics(t *testing.T) {
	IncrTranscriptRequest()
	out := FormatMetrics()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(metricKeys) {
		t.Fatalf("got %d lines, want %d", len(lines), len(metricKeys))
	}
	if !strings.HasPrefix(lines[0], "transcript_requests ") {
		t.Errorf("first line = %q", lines[0])
	}
	for _, k := range metricKeys {
		if _, ok := GetMetrics()[k]; !ok {
			t.Errorf("metric %q missing from snapshot", k)
		}
	}
}

func TestTrackOperation(t *testing.T) {
	want := errors.New("boom")
	err := TrackOperation(context.Background(), "op", time.Hour, func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Errorf("TrackOperation() = %v, want %v", err, want)
	}
}
