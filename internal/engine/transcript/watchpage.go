package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anatolykoptev/go_transcript/internal/engine"
)

const (
	ytWatchURL = "https://www.youtube.com/watch"

	// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
	ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

	maxWatchPageBytes = 6 * 1024 * 1024
)

// WatchPageSource scrapes the watch page HTML and reads the caption catalog from
// ytInitialPlayerResponse.
type WatchPageSource struct {
	client  *http.Client
	pageURL string
}

// NewWatchPageSource returns a source scraping pageURL?v=<id>; "" means the public watch URL.
func NewWatchPageSource(client *http.Client, pageURL string) *WatchPageSource {
	if pageURL == "" {
		pageURL = ytWatchURL
	}
	return &WatchPageSource{client: client, pageURL: pageURL}
}

func (s *WatchPageSource) Name() string { return engine.CatalogWatchPage }

// ListTracks loads the watch page for id and returns its caption catalog.
func (s *WatchPageSource) ListTracks(ctx context.Context, id VideoID) (Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.pageURL+"?"+url.Values{"v": {string(id)}}.Encode(), nil)
	if err != nil {
		return Catalog{}, upstream(err, "build watch page request")
	}
	for k, v := range engine.ChromeHeaders() {
		req.Header.Set(k, v)
	}
	// Go's transport only decompresses transparently when it set Accept-Encoding itself.
	req.Header.Del("Accept-Encoding")

	resp, err := engine.Do(s.client, req)
	if err != nil {
		return Catalog{}, upstream(err, "watch page")
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return Catalog{}, videoUnavailable(id, "watch page not found")
	}
	if err := engine.CheckStatus(resp); err != nil {
		return Catalog{}, upstream(err, "watch page")
	}
	body, err := engine.ReadBody(resp, maxWatchPageBytes)
	if err != nil {
		return Catalog{}, upstream(err, "watch page")
	}

	pr, found, err := extractPlayerResponse(body)
	if err != nil {
		return Catalog{}, upstream(err, "decode ytInitialPlayerResponse")
	}
	if !found {
		if bytes.Contains(body, []byte(`class="g-recaptcha"`)) {
			return Catalog{}, upstream(nil, "watch page: rate limit exceeded (captcha)")
		}
		return Catalog{}, videoUnavailable(id, "no player response in watch page")
	}
	return catalogFromPlayer(id, pr)
}

// FetchCues downloads the timed-text document of track.
func (s *WatchPageSource) FetchCues(ctx context.Context, track Track) ([]Cue, error) {
	return fetchTrackCues(ctx, s.client, track)
}

// extractPlayerResponse finds the inline script assigning ytInitialPlayerResponse and decodes it.
// A json.Decoder is used so the script text after the object is ignored.
func extractPlayerResponse(page []byte) (playerResp, bool, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return playerResp{}, false, err
	}
	var script string
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		if idx := strings.Index(text, ytInitialPlayerResponseMarker); idx >= 0 {
			script = text[idx+len(ytInitialPlayerResponseMarker):]
			return false
		}
		return true
	})
	if script == "" {
		return playerResp{}, false, nil
	}
	var pr playerResp
	if err := json.NewDecoder(strings.NewReader(script)).Decode(&pr); err != nil {
		return playerResp{}, true, err
	}
	return pr, true, nil
}
