package transcript

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// ProxyEndpoint is a host:port forward proxy.
type ProxyEndpoint string

// URL returns the proxy as an http:// URL for http.ProxyURL.
func (p ProxyEndpoint) URL() *url.URL {
	return &url.URL{Scheme: "http", Host: string(p)}
}

// ProxyPool is the immutable set of forward proxies. It is built once at startup and
// shared by reference; readers need no locking.
type ProxyPool struct {
	endpoints []ProxyEndpoint
}

// NewProxyPool validates host:port entries. Blank entries are skipped.
func NewProxyPool(entries []string) (*ProxyPool, error) {
	eps := make([]ProxyEndpoint, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		host, port, err := net.SplitHostPort(e)
		if err != nil {
			return nil, fmt.Errorf("proxy pool: %q: %w", e, err)
		}
		if host == "" || port == "" {
			return nil, fmt.Errorf("proxy pool: %q: host and port are required", e)
		}
		eps = append(eps, ProxyEndpoint(e))
	}
	return &ProxyPool{endpoints: eps}, nil
}

// Len returns the number of endpoints. A nil pool is empty.
func (p *ProxyPool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.endpoints)
}

// Endpoints returns a copy of the configured endpoints.
func (p *ProxyPool) Endpoints() []ProxyEndpoint {
	if p == nil {
		return nil
	}
	return append([]ProxyEndpoint(nil), p.endpoints...)
}

var errEmptyPool = errors.New("proxy pool is empty")

// ProxyFetcher is the secondary fetch path: one random proxy, one raw timed-text request.
// It does not retry and never tries a second proxy.
type ProxyFetcher struct {
	pool      *ProxyPool
	endpoint  string
	timeout   time.Duration
	intn      func(n int) int
	newClient func(proxy *url.URL, timeout time.Duration) *http.Client
}

// NewProxyFetcher returns a fetcher querying endpoint through pool, bounded by timeout.
func NewProxyFetcher(pool *ProxyPool, endpoint string, timeout time.Duration) *ProxyFetcher {
	return &ProxyFetcher{
		pool:      pool,
		endpoint:  endpoint,
		timeout:   timeout,
		intn:      rand.IntN,
		newClient: engine.NewProxyClient,
	}
}

// Fetch downloads the cues of id in exactly language ("" means "en") through a random proxy.
// Cues are returned in document order.
func (f *ProxyFetcher) Fetch(ctx context.Context, id VideoID, language string) ([]Cue, error) {
	if f.pool.Len() == 0 {
		return nil, upstream(errEmptyPool, "proxy fetch")
	}
	language = engine.NormLang(language)
	proxy := f.pool.endpoints[f.intn(len(f.pool.endpoints))]

	ctx, cancel := boundedContext(ctx, f.timeout)
	defer cancel()

	target := f.endpoint + "?" + url.Values{"lang": {language}, "v": {string(id)}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, upstream(err, "build timedtext request")
	}

	slog.Debug("transcript: proxy fetch", slog.String("id", id.String()), slog.String("proxy", string(proxy)))
	resp, err := engine.Do(f.newClient(proxy.URL(), f.timeout), req)
	if err != nil {
		return nil, upstream(err, "timedtext via proxy %s", proxy)
	}
	defer resp.Body.Close()
	if err := engine.CheckStatus(resp); err != nil {
		return nil, upstream(err, "timedtext via proxy %s", proxy)
	}
	body, err := engine.ReadBody(resp, maxTimedTextBytes)
	if err != nil {
		return nil, upstream(err, "timedtext via proxy %s", proxy)
	}

	cues, err := ParseTimedText(body)
	switch {
	case errors.Is(err, errEmptyDocument):
		return nil, noTranscriptFound(id)
	case err != nil:
		return nil, upstream(err, "timedtext via proxy %s", proxy)
	case len(cues) == 0:
		return nil, noTranscriptFound(id)
	}
	return cues, nil
}
