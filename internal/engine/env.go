package engine

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/anatolykoptev/go-kit/env"
)

// ConfigFromEnv reads the engine configuration from environment variables.
// HTTPClient and LLMClient are left for main to construct.
func ConfigFromEnv() Config {
	return Config{
		CatalogSource:      env.Str("CATALOG_SOURCE", CatalogInnertube),
		FetchTimeout:       env.Duration("FETCH_TIMEOUT", 10*time.Second),
		ProxyTimeout:       env.Duration("PROXY_TIMEOUT", 10*time.Second),
		ProxyEndpoints:     env.List("PROXY_POOL", ""),
		ProxyFallback:      envBool("PROXY_FALLBACK", true),
		Preflight:          envBool("PREFLIGHT", false),
		TimedTextURL:       env.Str("TIMEDTEXT_URL", "http://video.google.com/timedtext"),
		UpstreamRPS:        env.Float("UPSTREAM_RPS", 0),
		UpstreamBurst:      env.Int("UPSTREAM_BURST", 1),
		LLMAPIKey:          env.Str("LLM_API_KEY", ""),
		LLMAPIKeyFallbacks: env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:         env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:           env.Str("LLM_MODEL", "gemini-2.5-flash"),
		LLMTemperature:     env.Float("LLM_TEMPERATURE", 0.2),
		LLMMaxTokens:       env.Int("LLM_MAX_TOKENS", 16384),
		MaxTranslateCues:   env.Int("MAX_TRANSLATE_CUES", 400),
	}
}

// envBool reads a boolean variable; unparsable values keep the default.
func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(env.Str(key, strconv.FormatBool(def)))
	if err != nil {
		slog.Warn("invalid boolean, using default", slog.String("key", key), slog.Bool("default", def))
		return def
	}
	return v
}
