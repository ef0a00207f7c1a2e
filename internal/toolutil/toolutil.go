// Package toolutil provides shared helper functions for go_transcript MCP tools.
package toolutil

import (
	"log/slog"

	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
)

// CueTexts returns the text of each cue, in order.
func CueTexts(cues []transcript.Cue) []string {
	out := make([]string, len(cues))
	for i, c := range cues {
		out[i] = c.Text
	}
	return out
}

// ReplaceTexts returns a copy of cues with texts[i] as the text of cue i.
// Timings are kept. texts must be as long as cues.
func ReplaceTexts(cues []transcript.Cue, texts []string) []transcript.Cue {
	out := make([]transcript.Cue, len(cues))
	for i, c := range cues {
		out[i] = transcript.Cue{Text: texts[i], Start: c.Start, Duration: c.Duration}
	}
	return out
}

// LogOutcome logs one tool call result: info on success, warn with the error kind otherwise.
func LogOutcome(tool, rawURL string, resp transcript.Response) {
	if resp.Success {
		slog.Info(tool+": ok",
			slog.String("id", resp.VideoID), slog.String("lang", resp.Language), slog.Int("cues", len(resp.Transcript)))
		return
	}
	slog.Warn(tool+": failed",
		slog.String("url", rawURL), slog.String("type", string(resp.ErrorType)), slog.String("error", resp.Error))
}
