package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// YouTube Innertube API: ANDROID /player client used as the default catalog source.

const (
	ytInnertubeURL   = "https://www.youtube.com/youtubei/v1/player"
	ytAndroidVersion = "20.10.38"
	ytAndroidUA      = "com.google.android.youtube/" + ytAndroidVersion + " (Linux; U; Android 11) gzip"
)

type innertubeReq struct {
	VideoID        string       `json:"videoId"`
	Context        innertubeCtx `json:"context"`
	RacyCheckOk    bool         `json:"racyCheckOk"`
	ContentCheckOk bool         `json:"contentCheckOk"`
}

type innertubeCtx struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion,omitempty"`
	Hl                string `json:"hl,omitempty"`
	Gl                string `json:"gl,omitempty"`
}

// InnertubeSource lists caption tracks through the ANDROID Innertube /player endpoint.
type InnertubeSource struct {
	client   *http.Client
	endpoint string
}

// NewInnertubeSource returns a source posting to endpoint; "" means the public player URL.
func NewInnertubeSource(client *http.Client, endpoint string) *InnertubeSource {
	if endpoint == "" {
		endpoint = ytInnertubeURL
	}
	return &InnertubeSource{client: client, endpoint: endpoint}
}

func (s *InnertubeSource) Name() string { return engine.CatalogInnertube }

// ListTracks fetches the player response for id and returns its caption catalog.
func (s *InnertubeSource) ListTracks(ctx context.Context, id VideoID) (Catalog, error) {
	reqBody, err := json.Marshal(innertubeReq{
		VideoID: string(id),
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return Catalog{}, upstream(err, "encode player request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"?prettyPrint=false", bytes.NewReader(reqBody))
	if err != nil {
		return Catalog{}, upstream(err, "build player request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", ytAndroidUA)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", ytAndroidVersion)

	resp, err := engine.Do(s.client, req)
	if err != nil {
		return Catalog{}, upstream(err, "android innertube")
	}
	defer resp.Body.Close()
	if err := engine.CheckStatus(resp); err != nil {
		return Catalog{}, upstream(err, "android innertube")
	}

	var pr playerResp
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return Catalog{}, upstream(err, "decode player")
	}
	return catalogFromPlayer(id, pr)
}

// FetchCues downloads the timed-text document of track.
func (s *InnertubeSource) FetchCues(ctx context.Context, track Track) ([]Cue, error) {
	return fetchTrackCues(ctx, s.client, track)
}
