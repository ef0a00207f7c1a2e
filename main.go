// go_transcript — YouTube transcript MCP server.
//
// Exposes two MCP tools: youtube_transcript and transcript_translate.
// Runs as HTTP MCP server or stdio transport.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
	"github.com/anatolykoptev/go_transcript/internal/transcriptserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	svc, err := initEngine()
	if err != nil {
		slog.Error("engine init failed", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("starting go_transcript",
		slog.String("port", mcpPort),
		slog.String("catalog", engine.Cfg.CatalogSource),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_transcript",
		Version: version,
	}, nil)

	transcriptserver.RegisterTools(server, svc)
	slog.Info("tools registered", slog.Int("count", transcriptserver.ToolCount))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_transcript",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 120 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() (*transcript.Service, error) {
	c := engine.ConfigFromEnv()
	c.HTTPClient = engine.NewUpstreamClient(c.FetchTimeout)

	if c.LLMAPIKey != "" {
		c.LLMClient = llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
			llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
			llm.WithMaxTokens(c.LLMMaxTokens),
			llm.WithTemperature(c.LLMTemperature),
			llm.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
		)
		slog.Info("llm client initialized", slog.String("model", c.LLMModel))
	} else {
		slog.Warn("LLM_API_KEY not set, transcript_translate disabled")
	}

	engine.Init(c)

	// The pool is built once here and only read afterwards.
	pool, err := transcript.NewProxyPool(c.ProxyEndpoints)
	if err != nil {
		return nil, err
	}
	slog.Info("proxy pool initialized",
		slog.Int("proxies", pool.Len()), slog.Bool("fallback", c.ProxyFallback && pool.Len() > 0))

	return transcript.NewServiceFromConfig(engine.Cfg, pool)
}
