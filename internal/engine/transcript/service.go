package transcript

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// slowFetch is the duration after which a transcript request is logged as slow.
const slowFetch = 15 * time.Second

// Response is the envelope returned to callers for both outcomes.
type Response struct {
	Success    bool   `json:"success"`
	Transcript []Cue  `json:"transcript,omitempty"`
	Language   string `json:"language,omitempty"`
	VideoID    string `json:"video_id,omitempty"`
	Error      string `json:"error,omitempty"`
	ErrorType  Kind   `json:"error_type,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}

// Success builds the envelope for a resolved transcript.
func Success(r Result) Response {
	return Response{Success: true, Transcript: r.Cues, Language: r.Language, VideoID: r.VideoID.String()}
}

// Failure builds the envelope for err, classifying it first.
func Failure(err error) Response {
	te := Classify(err)
	return Response{Success: false, Error: te.Error(), ErrorType: te.Kind, StatusCode: te.Status()}
}

// Service runs the acquisition chain: extract, optional preflight, primary locator,
// and the proxy path after a primary UpstreamError. The two paths never run concurrently.
type Service struct {
	locator   *Locator
	proxy     *ProxyFetcher
	preflight *Preflight
}

// Option configures a Service.
type Option func(*Service)

// WithProxyFallback enables the proxy path after a primary UpstreamError.
func WithProxyFallback(f *ProxyFetcher) Option {
	return func(s *Service) { s.proxy = f }
}

// WithPreflight enables the oEmbed availability probe.
func WithPreflight(p *Preflight) Option {
	return func(s *Service) { s.preflight = p }
}

// NewService returns a Service around locator.
func NewService(locator *Locator, opts ...Option) *Service {
	s := &Service{locator: locator}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewServiceFromConfig wires a Service from engine configuration and the startup proxy pool.
func NewServiceFromConfig(c *engine.Config, pool *ProxyPool) (*Service, error) {
	client := c.HTTPClient
	if client == nil {
		client = engine.NewUpstreamClient(c.FetchTimeout)
	}
	source, err := NewCatalogSource(c.CatalogSource, client)
	if err != nil {
		return nil, err
	}
	opts := []Option{}
	if c.ProxyFallback && pool.Len() > 0 {
		opts = append(opts, WithProxyFallback(NewProxyFetcher(pool, c.TimedTextURL, c.ProxyTimeout)))
	}
	if c.Preflight {
		opts = append(opts, WithPreflight(NewPreflight(client, "", c.FetchTimeout)))
	}
	return NewService(NewLocator(source, c.FetchTimeout), opts...), nil
}

// NewCatalogSource returns the catalog source registered under name.
func NewCatalogSource(name string, client *http.Client) (CatalogSource, error) {
	switch name {
	case "", engine.CatalogInnertube:
		return NewInnertubeSource(client, ""), nil
	case engine.CatalogWatchPage:
		return NewWatchPageSource(client, ""), nil
	}
	return nil, fmt.Errorf("unknown catalog source %q", name)
}

// Fetch resolves the transcript behind rawURL and shapes the outcome as a Response.
// It never returns an unclassified failure.
func (s *Service) Fetch(ctx context.Context, rawURL, language string) Response {
	engine.IncrTranscriptRequest()
	var (
		res Result
		err error
	)
	_ = engine.TrackOperation(ctx, "transcript", slowFetch, func(ctx context.Context) error {
		res, err = s.Resolve(ctx, rawURL, language)
		return err
	})
	if err != nil {
		te := Classify(err)
		engine.IncrError(string(te.Kind))
		return Failure(te)
	}
	engine.IncrTranscriptSuccess()
	return Success(res)
}

// Resolve runs the acquisition chain and returns either a Result or an *Error.
func (s *Service) Resolve(ctx context.Context, rawURL, language string) (Result, error) {
	language = engine.NormLang(language)
	id, err := ExtractVideoID(rawURL)
	if err != nil {
		return Result{}, err
	}

	if s.preflight != nil {
		if err := s.preflight.Check(ctx, id); err != nil {
			return Result{}, err
		}
	}

	res, err := s.locator.Locate(ctx, id, language)
	if err == nil {
		return res, nil
	}
	engine.IncrPrimaryFailure()
	te := Classify(err)
	if te.Kind != KindUpstreamError || s.proxy == nil || s.proxy.pool.Len() == 0 {
		return Result{}, te
	}

	slog.Warn("transcript: primary failed, trying proxy",
		slog.String("id", id.String()), slog.String("source", s.locator.source.Name()), slog.Any("err", te))
	engine.IncrProxyFallback()
	cues, err := s.proxy.Fetch(ctx, id, language)
	if err != nil {
		engine.IncrProxyError()
		slog.Warn("transcript: proxy fetch failed", slog.String("id", id.String()), slog.Any("err", err))
		return Result{}, Classify(err)
	}
	return Result{VideoID: id, Language: language, Cues: cues}, nil
}
