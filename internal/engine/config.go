package engine

import (
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// Catalog sources understood by the transcript package.
const (
	CatalogInnertube = "innertube"
	CatalogWatchPage = "watchpage"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	CatalogSource  string        // innertube (default) or watchpage
	FetchTimeout   time.Duration // bound on each primary-path upstream call
	ProxyTimeout   time.Duration // bound on the proxy-path request
	ProxyEndpoints []string      // host:port entries, read once at startup
	ProxyFallback  bool          // run the proxy path after a primary UpstreamError
	Preflight      bool          // probe oEmbed before the catalog lookup
	TimedTextURL   string        // raw timed-text endpoint reached through the proxy pool
	UpstreamRPS    float64       // 0 = unlimited
	UpstreamBurst  int

	LLMAPIKey          string
	LLMAPIKeyFallbacks []string
	LLMAPIBase         string
	LLMModel           string
	LLMTemperature     float64
	LLMMaxTokens       int
	MaxTranslateCues   int

	HTTPClient *http.Client
	LLMClient  *llm.Client // nil = transcript_translate disabled
}

// DefaultConfig returns the configuration used when a field is left zero.
func DefaultConfig() Config {
	return Config{
		CatalogSource:    CatalogInnertube,
		FetchTimeout:     10 * time.Second,
		ProxyTimeout:     10 * time.Second,
		ProxyFallback:    true,
		TimedTextURL:     "http://video.google.com/timedtext",
		UpstreamBurst:    1,
		MaxTranslateCues: 400,
	}
}

var cfg = DefaultConfig()

// Cfg exposes the engine configuration for sub-packages (transcript).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
// Zero durations and endpoints fall back to DefaultConfig values.
func Init(c Config) {
	d := DefaultConfig()
	if c.CatalogSource == "" {
		c.CatalogSource = d.CatalogSource
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = d.FetchTimeout
	}
	if c.ProxyTimeout <= 0 {
		c.ProxyTimeout = d.ProxyTimeout
	}
	if c.TimedTextURL == "" {
		c.TimedTextURL = d.TimedTextURL
	}
	if c.UpstreamBurst <= 0 {
		c.UpstreamBurst = d.UpstreamBurst
	}
	if c.MaxTranslateCues <= 0 {
		c.MaxTranslateCues = d.MaxTranslateCues
	}
	cfg = c
	Cfg = &cfg
	initLimiter(c.UpstreamRPS, c.UpstreamBurst)
}
