package transcript

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLegacyXML = `<?xml version="1.0" encoding="utf-8" ?>
<transcript>
  <text start="0.5" dur="2.1">Never gonna give you up</text>
  <text start="2.6" dur="1.9">Never gonna let you down</text>
  <text start="4.5">I&amp;#39;m &lt;font color=&quot;#E5E5E5&quot;&gt;here&lt;/font&gt;</text>
  <text start="7" dur="1"></text>
</transcript>`

const sampleSrv3XML = `<?xml version="1.0" encoding="utf-8" ?>
<timedtext format="3">
<body>
<p t="0" d="10000" w="1"></p>
<p t="1200" d="2500"><s>Hello</s><s t="400"> world</s></p>
<p t="3700" d="1800">second &amp; last</p>
</body>
</timedtext>`

func TestParseTimedTextLegacy(t *testing.T) {
	cues, err := ParseTimedText([]byte(sampleLegacyXML))
	require.NoError(t, err)
	require.Len(t, cues, 4)

	assert.Equal(t, Cue{Text: "Never gonna give you up", Start: 0.5, Duration: 2.1}, cues[0])
	assert.Equal(t, Cue{Text: "Never gonna let you down", Start: 2.6, Duration: 1.9}, cues[1])
	assert.Equal(t, "I'm here", cues[2].Text)
	assert.Equal(t, 4.5, cues[2].Start)
	assert.Zero(t, cues[2].Duration, "missing dur defaults to 0")
	assert.Equal(t, "", cues[3].Text, "missing text is empty")
}

func TestParseTimedTextSrv3(t *testing.T) {
	cues, err := ParseTimedText([]byte(sampleSrv3XML))
	require.NoError(t, err)
	require.Len(t, cues, 2)
	assert.Equal(t, Cue{Text: "Hello world", Start: 1.2, Duration: 2.5}, cues[0])
	assert.Equal(t, Cue{Text: "second & last", Start: 3.7, Duration: 1.8}, cues[1])
}

func TestParseTimedTextErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not xml", `{"events": []}`},
		{"unexpected root", `<html><body>blocked</body></html>`},
		{"missing start", `<transcript><text dur="1">x</text></transcript>`},
		{"bad start", `<transcript><text start="abc">x</text></transcript>`},
		{"bad dur", `<transcript><text start="1" dur="x">x</text></transcript>`},
		{"truncated", `<transcript><text start="1">x</te`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTimedText([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParseTimedTextEmpty(t *testing.T) {
	_, err := ParseTimedText([]byte("  \n"))
	assert.True(t, errors.Is(err, errEmptyDocument))

	cues, err := ParseTimedText([]byte(`<transcript></transcript>`))
	require.NoError(t, err)
	assert.Empty(t, cues)
}
