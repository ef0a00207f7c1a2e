package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/anatolykoptev/go-kit/strutil"
	"golang.org/x/time/rate"
)

// NewUpstreamClient creates the client used for catalog and caption requests.
func NewUpstreamClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     60 * time.Second,
			TLSHandshakeTimeout: timeout,
		},
	}
}

// NewProxyClient creates a client that sends every request through the forward proxy at proxy.
// Connections are not reused: each call picks its own proxy.
func NewProxyClient(proxy *url.URL, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyURL(proxy),
			DisableKeepAlives:   true,
			TLSHandshakeTimeout: timeout,
		},
	}
}

var limiter atomic.Pointer[rate.Limiter]

func initLimiter(rps float64, burst int) {
	if rps <= 0 {
		limiter.Store(nil)
		return
	}
	limiter.Store(rate.NewLimiter(rate.Limit(rps), burst))
}

// WaitUpstream blocks until the process-wide upstream limiter admits one request.
// Without UPSTREAM_RPS it returns immediately.
func WaitUpstream(ctx context.Context) error {
	l := limiter.Load()
	if l == nil {
		return nil
	}
	return l.Wait(ctx)
}

// Do waits for the upstream limiter, sets a browser User-Agent unless one is present,
// and sends req with client.
func Do(client *http.Client, req *http.Request) (*http.Response, error) {
	if err := WaitUpstream(req.Context()); err != nil {
		return nil, fmt.Errorf("upstream limiter: %w", err)
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", RandomUserAgent())
	}
	metrics.UpstreamRequests.Add(1)
	return client.Do(req)
}

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	StatusCode int
	Snippet    string
}

func (e *StatusError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Snippet)
}

// CheckStatus returns a *StatusError carrying the start of the body when resp is not 2xx.
func CheckStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Snippet:    strutil.TruncateWith(CollapseSpace(string(snippet)), 160, "..."),
	}
}

// ReadBody reads at most limit bytes of the response body.
func ReadBody(resp *http.Response, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
