// Package transcript fetches timed captions for YouTube videos.
//
// The implementation is split across files by responsibility:
//
//	videoid.go    identifier extraction from watch, youtu.be, embed and /v/ URLs
//	catalog.go    cue, track and catalog types plus the CatalogSource collaborator
//	resolver.go   language resolution: requested, then "en", then first track
//	player.go     player response classification and caption document download
//	innertube.go  ANDROID Innertube /player catalog source (default)
//	watchpage.go  watch page ytInitialPlayerResponse catalog source
//	timedtext.go  legacy and srv3 timed-text XML parsing
//	locator.go    primary path
//	proxy.go      proxy pool and the raw timed-text path through a random proxy
//	preflight.go  optional oEmbed availability probe
//	errors.go     the closed error taxonomy
//	service.go    the caller-side policy and the response envelope
package transcript
