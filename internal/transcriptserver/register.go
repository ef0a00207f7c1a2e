package transcriptserver

import (
	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolCount is the number of tools RegisterTools adds.
const ToolCount = 2

// RegisterTools registers the transcript tools on the given MCP server:
// youtube_transcript, transcript_translate.
func RegisterTools(server *mcp.Server, svc *transcript.Service) {
	registerTranscript(server, svc)
	registerTranslate(server, svc)
}
