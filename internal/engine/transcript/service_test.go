package transcript

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

func newTestService(t *testing.T, f *fakeYouTube, proxy *fakeProxy, opts ...Option) *Service {
	t.Helper()
	locator := NewLocator(NewInnertubeSource(f.Client(), f.URL+"/player"), 2*time.Second)
	if proxy != nil {
		pool, err := NewProxyPool([]string{proxy.addr()})
		require.NoError(t, err)
		opts = append(opts, WithProxyFallback(NewProxyFetcher(pool, timedTextEndpoint, 2*time.Second)))
	}
	return NewService(locator, opts...)
}

func TestServiceFetchPrimary(t *testing.T) {
	f := newFakeYouTube(t)
	f.playerBody = playerWithTracks("en")
	f.captions["en"] = outOfOrderXML
	proxy := newFakeProxy(t, http.StatusOK, simpleXML)
	svc := newTestService(t, f, proxy)

	resp := svc.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "en")
	require.True(t, resp.Success, resp.Error)
	assert.Equal(t, "en", resp.Language)
	assert.Equal(t, "dQw4w9WgXcQ", resp.VideoID)
	require.NotEmpty(t, resp.Transcript)
	for i := 1; i < len(resp.Transcript); i++ {
		assert.LessOrEqual(t, resp.Transcript[i-1].Start, resp.Transcript[i].Start)
	}
	assert.Zero(t, proxy.hits.Load())
}

func TestServiceFallsBackOnUpstreamError(t *testing.T) {
	f := newFakeYouTube(t)
	f.playerStatus = http.StatusInternalServerError
	proxy := newFakeProxy(t, http.StatusOK, simpleXML)
	svc := newTestService(t, f, proxy)

	res, err := svc.Resolve(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "de")
	require.NoError(t, err)
	assert.Equal(t, "de", res.Language)
	assert.Len(t, res.Cues, 2)
	assert.Equal(t, int32(1), proxy.hits.Load())
}

func TestServiceNoFallbackOnDefinitiveErrors(t *testing.T) {
	tests := []struct {
		name   string
		player string
		want   Kind
	}{
		{"transcripts disabled", playerNoCaptions, KindTranscriptsDisabled},
		{"video unavailable", playerUnavailable, KindVideoUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeYouTube(t)
			f.playerBody = tt.player
			proxy := newFakeProxy(t, http.StatusOK, simpleXML)
			svc := newTestService(t, f, proxy)

			resp := svc.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "en")
			assert.False(t, resp.Success)
			assert.Equal(t, tt.want, resp.ErrorType)
			assert.Equal(t, tt.want.Status(), resp.StatusCode)
			assert.Zero(t, proxy.hits.Load())
		})
	}
}

func TestServiceProxyFailureIsReported(t *testing.T) {
	f := newFakeYouTube(t)
	f.playerBody = playerBotCheck
	proxy := newFakeProxy(t, http.StatusServiceUnavailable, "")
	svc := newTestService(t, f, proxy)

	resp := svc.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "en")
	assert.False(t, resp.Success)
	assert.Equal(t, KindUpstreamError, resp.ErrorType)
	assert.Equal(t, 500, resp.StatusCode)
	assert.Equal(t, int32(1), proxy.hits.Load())
}

func TestServiceWithoutProxy(t *testing.T) {
	f := newFakeYouTube(t)
	f.playerStatus = http.StatusBadGateway
	svc := newTestService(t, f, nil)

	resp := svc.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "en")
	assert.Equal(t, KindUpstreamError, resp.ErrorType)
}

func TestServiceInvalidURL(t *testing.T) {
	f := newFakeYouTube(t)
	svc := newTestService(t, f, nil)

	resp := svc.Fetch(context.Background(), "https://vimeo.com/1", "en")
	assert.Equal(t, KindInvalidURL, resp.ErrorType)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Zero(t, f.playerHits.Load(), "no upstream call for an invalid URL")

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, false, m["success"])
	assert.Equal(t, "InvalidURL", m["error_type"])
	assert.NotContains(t, m, "transcript")
}

func TestServicePreflightRejects(t *testing.T) {
	f := newFakeYouTube(t)
	f.oembedStatus = http.StatusNotFound
	f.playerBody = playerWithTracks("en")
	svc := newTestService(t, f, nil, WithPreflight(NewPreflight(f.Client(), f.URL+"/oembed", time.Second)))

	_, err := svc.Resolve(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "en")
	assert.Equal(t, KindVideoUnavailable, Classify(err).Kind)
	assert.Zero(t, f.playerHits.Load())
}

func TestNewServiceFromConfig(t *testing.T) {
	c := engine.DefaultConfig()
	c.CatalogSource = "nope"
	_, err := NewServiceFromConfig(&c, nil)
	assert.Error(t, err)

	c.CatalogSource = engine.CatalogWatchPage
	pool, err := NewProxyPool([]string{"127.0.0.1:3128"})
	require.NoError(t, err)
	svc, err := NewServiceFromConfig(&c, pool)
	require.NoError(t, err)
	assert.Equal(t, engine.CatalogWatchPage, svc.locator.source.Name())
	assert.NotNil(t, svc.proxy)
	assert.Nil(t, svc.preflight)

	c.ProxyFallback = false
	svc, err = NewServiceFromConfig(&c, pool)
	require.NoError(t, err)
	assert.Nil(t, svc.proxy)
}
