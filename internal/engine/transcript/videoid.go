package transcript

import (
	"strings"
)

// VideoID is a validated 11-character YouTube video identifier.
// Only ExtractVideoID produces values that reach the fetch paths.
type VideoID string

func (id VideoID) String() string { return string(id) }

const videoIDLen = 11

// urlShapes are tried in order; each marker is followed by the candidate id.
var urlShapes = []struct {
	name   string
	marker string
}{
	{"watch", "/watch?"},
	{"short", "youtu.be/"},
	{"embed", "/embed/"},
	{"v", "/v/"},
}

// ExtractVideoID parses a URL into a VideoID. It is pure: no I/O, same output for the same input.
func ExtractVideoID(rawURL string) (VideoID, error) {
	u := strings.TrimSpace(rawURL)
	if u == "" {
		return "", invalidURL("empty URL")
	}
	for _, shape := range urlShapes {
		idx := strings.Index(u, shape.marker)
		if idx < 0 {
			continue
		}
		rest := u[idx+len(shape.marker):]
		if shape.name == "watch" {
			var ok bool
			if rest, ok = queryValue(rest, "v"); !ok {
				continue
			}
		}
		candidate := cutCandidate(rest)
		if !validVideoID(candidate) {
			return "", invalidURL("invalid video id %q in %s URL", candidate, shape.name)
		}
		return VideoID(candidate), nil
	}
	return "", invalidURL("unrecognized YouTube URL %q", rawURL)
}

// queryValue returns the text after "key=" when key is one of the query parameters in q.
func queryValue(q, key string) (string, bool) {
	if i := strings.IndexByte(q, '#'); i >= 0 {
		q = q[:i]
	}
	for _, part := range strings.Split(q, "&") {
		if v, ok := strings.CutPrefix(part, key+"="); ok {
			return v, true
		}
	}
	return "", false
}

// cutCandidate ends the id at the next &, ?, # or path separator.
func cutCandidate(s string) string {
	if i := strings.IndexAny(s, "&?#/"); i >= 0 {
		return s[:i]
	}
	return s
}

func validVideoID(s string) bool {
	if len(s) != videoIDLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
