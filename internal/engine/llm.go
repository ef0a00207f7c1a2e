package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrLLMDisabled is returned when no LLM client is configured.
var ErrLLMDisabled = errors.New("llm client not configured")

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// CallLLM sends a prompt; temperature and max_tokens come from the client options set in main.
func CallLLM(ctx context.Context, system, prompt string) (string, error) {
	if cfg.LLMClient == nil {
		return "", ErrLLMDisabled
	}
	metrics.LLMCalls.Add(1)
	resp, err := cfg.LLMClient.Complete(ctx, system, prompt)
	if err != nil {
		metrics.LLMErrors.Add(1)
		return "", err
	}
	return stripFences(resp), nil
}

// buildTranslatePrompt renders the translation prompt for lines.
func buildTranslatePrompt(lines []string, target string) (string, error) {
	data, err := json.Marshal(lines)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(translatePrompt, target, len(lines), data), nil
}

// parseTranslation decodes the model answer and checks it is line-aligned with the input.
func parseTranslation(raw string, want int) ([]string, error) {
	var out []string
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil {
		return nil, fmt.Errorf("translate: parse failed on %q: %w", TruncateRunes(raw, 120, "..."), err)
	}
	if len(out) != want {
		return nil, fmt.Errorf("translate: got %d lines, want %d", len(out), want)
	}
	for i := range out {
		out[i] = CollapseSpace(out[i])
	}
	return out, nil
}

// TranslateLines translates caption texts into target with a single LLM call.
// The result has the same length and order as lines.
func TranslateLines(ctx context.Context, lines []string, target string) ([]string, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	if len(lines) > cfg.MaxTranslateCues {
		return nil, fmt.Errorf("translate: %d lines exceeds limit of %d", len(lines), cfg.MaxTranslateCues)
	}
	prompt, err := buildTranslatePrompt(lines, target)
	if err != nil {
		return nil, err
	}
	raw, err := CallLLM(ctx, translateSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("translate: %w", err)
	}
	return parseTranslation(raw, len(lines))
}
