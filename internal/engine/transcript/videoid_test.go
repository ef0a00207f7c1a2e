package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want VideoID
	}{
		{"watch with timestamp", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=5", "dQw4w9WgXcQ"},
		{"watch v not first", "https://m.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch with fragment", "https://youtube.com/watch?v=dQw4w9WgXcQ#t=30", "dQw4w9WgXcQ"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short link with query", "https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ"},
		{"short link no scheme", "youtu.be/a-b_c1234XY", "a-b_c1234XY"},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"embed with params", "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1", "dQw4w9WgXcQ"},
		{"v path", "https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"v path trailing segment", "https://www.youtube.com/v/dQw4w9WgXcQ/extra", "dQw4w9WgXcQ"},
		{"surrounding whitespace", "  https://youtu.be/dQw4w9WgXcQ \n", "dQw4w9WgXcQ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractVideoIDInvalid(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"no shape", "https://vimeo.com/123456789"},
		{"watch without v", "https://www.youtube.com/watch?list=PL123"},
		{"too short", "https://youtu.be/abc"},
		{"too long", "https://www.youtube.com/watch?v=dQw4w9WgXcQX"},
		{"bad charset", "https://www.youtube.com/embed/dQw4w9W.XcQ"},
		{"empty candidate", "https://www.youtube.com/v/"},
		{"channel page", "https://www.youtube.com/@somechannel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractVideoID(tt.url)
			require.Error(t, err)
			te := Classify(err)
			assert.Equal(t, KindInvalidURL, te.Kind)
			assert.Equal(t, 400, te.Status())
		})
	}
}

func TestExtractVideoIDIdempotent(t *testing.T) {
	const u = "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=5"
	first, err := ExtractVideoID(u)
	require.NoError(t, err)
	for range 5 {
		again, err := ExtractVideoID(u)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
