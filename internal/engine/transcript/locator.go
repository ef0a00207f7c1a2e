package transcript

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"
)

// defaultTimeout bounds upstream calls when no timeout is configured.
const defaultTimeout = 10 * time.Second

// Result is a resolved transcript.
type Result struct {
	VideoID  VideoID
	Language string // language actually used, may differ from the request
	Cues     []Cue
}

// Locator is the primary fetch path: catalog lookup, language resolution, cue fetch.
// It never falls back to the proxy path itself.
type Locator struct {
	source  CatalogSource
	timeout time.Duration
}

// NewLocator returns a Locator bounding each upstream call by timeout.
func NewLocator(source CatalogSource, timeout time.Duration) *Locator {
	return &Locator{source: source, timeout: timeout}
}

// Locate fetches the transcript of id in the best available language for language.
// Errors are *Error values; UpstreamError is the caller's cue to try the proxy path.
func (l *Locator) Locate(ctx context.Context, id VideoID, language string) (Result, error) {
	catalog, err := l.listTracks(ctx, id)
	if err != nil {
		return Result{}, err
	}

	track, used, err := ResolveTrack(catalog, language)
	if err != nil {
		return Result{}, err
	}
	if used != language {
		slog.Debug("transcript: language fallback",
			slog.String("id", id.String()), slog.String("requested", language), slog.String("used", used))
	}

	cues, err := l.fetchCues(ctx, track)
	if err != nil {
		return Result{}, err
	}
	if len(cues) == 0 {
		return Result{}, noTranscriptFound(id)
	}
	slices.SortStableFunc(cues, func(a, b Cue) int { return cmp.Compare(a.Start, b.Start) })
	return Result{VideoID: id, Language: used, Cues: cues}, nil
}

func (l *Locator) listTracks(ctx context.Context, id VideoID) (Catalog, error) {
	ctx, cancel := boundedContext(ctx, l.timeout)
	defer cancel()
	catalog, err := l.source.ListTracks(ctx, id)
	if err != nil {
		return Catalog{}, Classify(err)
	}
	return catalog, nil
}

func (l *Locator) fetchCues(ctx context.Context, track Track) ([]Cue, error) {
	ctx, cancel := boundedContext(ctx, l.timeout)
	defer cancel()
	cues, err := l.source.FetchCues(ctx, track)
	if err != nil {
		// A listed track that cannot be fetched is an upstream failure, whatever the source said.
		ce := Classify(err)
		if ce.Kind != KindUpstreamError {
			ce = upstream(err, "fetch cues")
		}
		return nil, ce
	}
	return cues, nil
}

// boundedContext detaches ctx from caller cancellation and applies timeout:
// an issued call runs to completion or to its own deadline.
func boundedContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}
