package transcript

import (
	"context"
	"net/http"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// Player response types shared by the Innertube and watch-page catalog sources.

type playerResp struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
	Name         struct {
		SimpleText string `json:"simpleText"`
		Runs       []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"name"`
}

func (t captionTrack) displayName() string {
	if t.Name.SimpleText != "" {
		return t.Name.SimpleText
	}
	var sb strings.Builder
	for _, r := range t.Name.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// botCheckMarker appears in the playability reason when YouTube blocks the requesting IP.
const botCheckMarker = "not a bot"

// catalogFromPlayer classifies a decoded player response and converts its caption tracks.
func catalogFromPlayer(id VideoID, resp playerResp) (Catalog, error) {
	if ps := resp.PlayabilityStatus; ps != nil && ps.Status != "" && ps.Status != "OK" {
		if strings.Contains(ps.Reason, botCheckMarker) {
			return Catalog{}, upstream(nil, "request blocked by upstream: %s", ps.Reason)
		}
		return Catalog{}, videoUnavailable(id, strings.TrimSpace(ps.Status+" "+ps.Reason))
	}
	if resp.Captions == nil {
		return Catalog{}, transcriptsDisabled(id)
	}
	raw := resp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	tracks := make([]Track, 0, len(raw))
	for _, t := range raw {
		tracks = append(tracks, Track{
			LanguageCode:  t.LanguageCode,
			Name:          t.displayName(),
			AutoGenerated: t.Kind == "asr",
			BaseURL:       t.BaseURL,
		})
	}
	return NewCatalog(id, tracks), nil
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe answer with an empty body when fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// fetchTrackCues downloads and parses the timed-text document behind track.BaseURL.
func fetchTrackCues(ctx context.Context, client *http.Client, track Track) ([]Cue, error) {
	if track.BaseURL == "" {
		return nil, upstream(nil, "caption track %q has no URL", track.LanguageCode)
	}
	if needsPoToken(track.BaseURL) {
		return nil, upstream(nil, "caption track %q requires a PoToken", track.LanguageCode)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, track.BaseURL, nil)
	if err != nil {
		return nil, upstream(err, "build timedtext request")
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	resp, err := engine.Do(client, req)
	if err != nil {
		return nil, upstream(err, "fetch timedtext")
	}
	defer resp.Body.Close()
	if err := engine.CheckStatus(resp); err != nil {
		return nil, upstream(err, "fetch timedtext")
	}
	body, err := engine.ReadBody(resp, maxTimedTextBytes)
	if err != nil {
		return nil, upstream(err, "fetch timedtext")
	}
	cues, err := ParseTimedText(body)
	if err != nil {
		return nil, upstream(err, "track %s", track.LanguageCode)
	}
	return cues, nil
}

// maxTimedTextBytes bounds a caption document read.
const maxTimedTextBytes = 4 * 1024 * 1024
