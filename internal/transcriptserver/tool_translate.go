package transcriptserver

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TranslateInput is the input for transcript_translate.
type TranslateInput struct {
	URL      string `json:"url" jsonschema:"YouTube video URL"`
	Language string `json:"language,omitempty" jsonschema:"Source caption language code (default: en)"`
	Target   string `json:"target" jsonschema:"Target language code, e.g. de, es, ja"`
}

// TranslateOutput is the transcript envelope plus the language the cues were translated into.
type TranslateOutput struct {
	Success        bool             `json:"success"`
	Transcript     []transcript.Cue `json:"transcript,omitempty"`
	Language       string           `json:"language,omitempty"`
	TargetLanguage string           `json:"target_language,omitempty"`
	VideoID        string           `json:"video_id,omitempty"`
	Error          string           `json:"error,omitempty"`
	ErrorType      transcript.Kind  `json:"error_type,omitempty"`
	StatusCode     int              `json:"status_code,omitempty"`
}

func failedTranslation(resp transcript.Response) TranslateOutput {
	return TranslateOutput{Error: resp.Error, ErrorType: resp.ErrorType, StatusCode: resp.StatusCode}
}

// translate fetches the transcript through svc and translates every cue with one LLM call.
// Timings are kept; only texts change.
func translate(ctx context.Context, svc *transcript.Service, input TranslateInput) (TranslateOutput, error) {
	target := strings.TrimSpace(input.Target)
	if target == "" {
		return TranslateOutput{}, errors.New("target is required")
	}

	resp := svc.Fetch(ctx, input.URL, input.Language)
	toolutil.LogOutcome("transcript_translate", input.URL, resp)
	if !resp.Success {
		return failedTranslation(resp), nil
	}

	translated, err := engine.TranslateLines(ctx, toolutil.CueTexts(resp.Transcript), target)
	if err != nil {
		slog.Warn("transcript_translate: llm failed", slog.String("target", target), slog.Any("error", err))
		return failedTranslation(transcript.Failure(err)), nil
	}
	return TranslateOutput{
		Success:        true,
		Transcript:     toolutil.ReplaceTexts(resp.Transcript, translated),
		Language:       resp.Language,
		TargetLanguage: target,
		VideoID:        resp.VideoID,
	}, nil
}

func registerTranslate(server *mcp.Server, svc *transcript.Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "transcript_translate",
		Description: "Fetch a YouTube transcript and translate every cue into the target language with the configured LLM. Cue timings are preserved. Failures use the same {success:false, error, error_type, status_code} envelope as youtube_transcript.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input TranslateInput) (*mcp.CallToolResult, TranslateOutput, error) {
		out, err := translate(ctx, svc, input)
		if err != nil {
			return nil, TranslateOutput{}, err
		}
		return nil, out, nil
	})
}
