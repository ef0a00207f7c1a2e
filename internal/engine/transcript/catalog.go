package transcript

import (
	"context"
)

// Cue is one timed caption unit. Start and Duration are in seconds.
type Cue struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Track describes one caption track in a catalog.
type Track struct {
	LanguageCode  string
	Name          string
	AutoGenerated bool   // "asr" kind
	BaseURL       string // timed-text URL the cues are fetched from
}

// Catalog is an immutable, ordered view of the tracks available for one video.
// Order is the provider's and is the final fallback tie-break.
type Catalog struct {
	videoID VideoID
	tracks  []Track
}

// NewCatalog copies tracks into a catalog for id.
func NewCatalog(id VideoID, tracks []Track) Catalog {
	return Catalog{videoID: id, tracks: append([]Track(nil), tracks...)}
}

func (c Catalog) VideoID() VideoID { return c.videoID }

// Len returns the number of tracks.
func (c Catalog) Len() int { return len(c.tracks) }

// At returns the i-th track in provider order.
func (c Catalog) At(i int) Track { return c.tracks[i] }

// Tracks returns a copy of the tracks in provider order.
func (c Catalog) Tracks() []Track { return append([]Track(nil), c.tracks...) }

// CatalogSource is the upstream captions-catalog collaborator.
//
// ListTracks fails with KindVideoUnavailable, KindTranscriptsDisabled or KindUpstreamError.
// FetchCues fails with KindUpstreamError only.
type CatalogSource interface {
	Name() string
	ListTracks(ctx context.Context, id VideoID) (Catalog, error)
	FetchCues(ctx context.Context, track Track) ([]Cue, error)
}
