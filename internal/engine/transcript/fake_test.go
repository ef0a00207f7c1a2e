package transcript

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// fakeYouTube serves /player (Innertube), /watch, /timedtext and /oembed from memory.
type fakeYouTube struct {
	*httptest.Server
	playerStatus int
	playerBody   string            // "{{BASE}}" is replaced with the server URL
	watchStatus  int
	watchBody    string
	oembedStatus int
	captions     map[string]string // lang → timed-text document
	captionHits  atomic.Int32
	playerHits   atomic.Int32
}

func newFakeYouTube(t *testing.T) *fakeYouTube {
	t.Helper()
	f := &fakeYouTube{
		playerStatus: http.StatusOK,
		watchStatus:  http.StatusOK,
		oembedStatus: http.StatusOK,
		captions:     map[string]string{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/player", func(w http.ResponseWriter, r *http.Request) {
		f.playerHits.Add(1)
		if r.Method != http.MethodPost {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(f.playerStatus)
		fmt.Fprint(w, strings.ReplaceAll(f.playerBody, "{{BASE}}", f.URL))
	})
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(f.watchStatus)
		fmt.Fprint(w, strings.ReplaceAll(f.watchBody, "{{BASE}}", f.URL))
	})
	mux.HandleFunc("/timedtext", func(w http.ResponseWriter, r *http.Request) {
		f.captionHits.Add(1)
		doc, ok := f.captions[r.URL.Query().Get("lang")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/xml")
		fmt.Fprint(w, doc)
	})
	mux.HandleFunc("/oembed", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(f.oembedStatus)
		fmt.Fprint(w, `{"title":"x"}`)
	})
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

// playerWithTracks renders a playable player response with one caption track per language.
func playerWithTracks(langs ...string) string {
	tracks := make([]string, len(langs))
	for i, l := range langs {
		tracks[i] = fmt.Sprintf(`{"baseUrl":"{{BASE}}/timedtext?v=dQw4w9WgXcQ&lang=%s","languageCode":%q,"name":{"simpleText":"%s track"},"kind":""}`, l, l, l)
	}
	return `{"playabilityStatus":{"status":"OK"},"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[` +
		strings.Join(tracks, ",") + `]}}}`
}

const playerNoCaptions = `{"playabilityStatus":{"status":"OK"}}`

const playerUnavailable = `{"playabilityStatus":{"status":"ERROR","reason":"This video is unavailable"}}`

const playerBotCheck = `{"playabilityStatus":{"status":"LOGIN_REQUIRED","reason":"Sign in to confirm you're not a bot"}}`

// outOfOrderXML has cues out of start order to exercise sorting on the primary path.
const outOfOrderXML = `<transcript>
<text start="3.0" dur="1.0">third</text>
<text start="0.0" dur="1.5">first</text>
<text start="1.5" dur="1.5">second</text>
</transcript>`

const simpleXML = `<transcript><text start="0.0" dur="1.0">hallo</text><text start="1.0" dur="2.0">welt</text></transcript>`
