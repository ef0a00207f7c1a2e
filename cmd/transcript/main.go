// Command transcript prints the transcript of one YouTube video as JSON.
//
//	transcript <url> [language]
//
// The output is the same envelope the youtube_transcript tool returns. Classified
// failures are printed, not signalled through the exit code.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if len(os.Args) < 2 {
		printJSON(map[string]string{"error": "Please provide a YouTube URL"})
		os.Exit(1)
	}
	language := engine.DefaultLanguage
	if len(os.Args) > 2 {
		language = os.Args[2]
	}

	c := engine.ConfigFromEnv()
	c.HTTPClient = engine.NewUpstreamClient(c.FetchTimeout)
	engine.Init(c)

	pool, err := transcript.NewProxyPool(c.ProxyEndpoints)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	svc, err := transcript.NewServiceFromConfig(engine.Cfg, pool)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	printJSON(svc.Fetch(context.Background(), os.Args[1], language))
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
