package transcriptserver

import (
	"context"

	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TranscriptInput is the input for youtube_transcript.
type TranscriptInput struct {
	URL      string `json:"url" jsonschema:"YouTube video URL: watch?v=, youtu.be/, /embed/ or /v/ form"`
	Language string `json:"language,omitempty" jsonschema:"Preferred caption language code (default: en). Falls back to en, then to the first available track"`
}

// handleTranscript is the youtube_transcript handler. Classified failures are part of the
// output, never a tool error.
func handleTranscript(svc *transcript.Service) mcp.ToolHandlerFor[TranscriptInput, transcript.Response] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TranscriptInput) (*mcp.CallToolResult, transcript.Response, error) {
		out := svc.Fetch(ctx, input.URL, input.Language)
		toolutil.LogOutcome("youtube_transcript", input.URL, out)
		return nil, out, nil
	}
}

func registerTranscript(server *mcp.Server, svc *transcript.Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_transcript",
		Description: "Fetch the timed transcript of a YouTube video. Returns {success, transcript:[{text,start,duration}], language, video_id} or {success:false, error, error_type, status_code} with error_type one of InvalidURL, VideoUnavailable, TranscriptsDisabled, NoTranscriptFound, UpstreamError. The language actually used may differ from the requested one.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, handleTranscript(svc))
}
