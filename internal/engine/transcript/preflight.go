package transcript

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

const ytOEmbedURL = "https://www.youtube.com/oembed"

// Preflight probes the oEmbed endpoint before a catalog lookup. It only ever rejects
// a video the endpoint reports as missing or private; every other outcome lets the lookup run.
type Preflight struct {
	client   *http.Client
	endpoint string
	timeout  time.Duration
}

// NewPreflight returns a probe against endpoint; "" means the public oEmbed URL.
func NewPreflight(client *http.Client, endpoint string, timeout time.Duration) *Preflight {
	if endpoint == "" {
		endpoint = ytOEmbedURL
	}
	return &Preflight{client: client, endpoint: endpoint, timeout: timeout}
}

// Check returns a VideoUnavailable error when the video does not exist or is private.
func (p *Preflight) Check(ctx context.Context, id VideoID) error {
	engine.IncrPreflightRequest()
	ctx, cancel := boundedContext(ctx, p.timeout)
	defer cancel()

	q := url.Values{"format": {"json"}, "url": {"https://www.youtube.com/watch?v=" + string(id)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		slog.Warn("transcript: preflight skipped", slog.String("id", id.String()), slog.Any("error", err))
		return nil
	}
	resp, err := engine.Do(p.client, req)
	if err != nil {
		slog.Warn("transcript: preflight failed, continuing", slog.String("id", id.String()), slog.Any("error", err))
		return nil
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusNotFound:
		return videoUnavailable(id, "oembed: video not found")
	case http.StatusForbidden:
		return videoUnavailable(id, "oembed: video is private")
	}
	return nil
}
