package transcript

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// errEmptyDocument is returned for a 2xx timed-text response with no body.
var errEmptyDocument = errors.New("empty timedtext document")

// --- Timedtext XML types ---

// timedTextDoc covers both the legacy <transcript><text start dur> format and
// the srv3 <timedtext><body><p t d> format.
type timedTextDoc struct {
	XMLName xml.Name
	Lines   []ytLine `xml:"text"`
	Body    *struct {
		Paras []ytPara `xml:"p"`
	} `xml:"body"`
}

type ytLine struct {
	Start *string `xml:"start,attr"`
	Dur   *string `xml:"dur,attr"`
	Text  string  `xml:",chardata"`
}

type ytPara struct {
	T     *string `xml:"t,attr"`
	D     *string `xml:"d,attr"`
	Inner string  `xml:",innerxml"`
}

// ParseTimedText decodes a timed-text document into cues in document order.
// A missing duration is 0 and missing text is "".
func ParseTimedText(data []byte) ([]Cue, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errEmptyDocument
	}
	var doc timedTextDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}
	switch doc.XMLName.Local {
	case "transcript":
		return parseLegacy(doc.Lines)
	case "timedtext":
		if doc.Body == nil {
			return nil, nil
		}
		return parseSrv3(doc.Body.Paras)
	}
	return nil, fmt.Errorf("parse timedtext XML: unexpected root <%s>", doc.XMLName.Local)
}

func parseLegacy(lines []ytLine) ([]Cue, error) {
	cues := make([]Cue, 0, len(lines))
	for i, line := range lines {
		if line.Start == nil {
			return nil, fmt.Errorf("text #%d: missing start", i)
		}
		start, err := strconv.ParseFloat(*line.Start, 64)
		if err != nil {
			return nil, fmt.Errorf("text #%d: start: %w", i, err)
		}
		var dur float64
		if line.Dur != nil {
			if dur, err = strconv.ParseFloat(*line.Dur, 64); err != nil {
				return nil, fmt.Errorf("text #%d: dur: %w", i, err)
			}
		}
		cues = append(cues, Cue{Text: engine.CleanText(line.Text), Start: start, Duration: dur})
	}
	return cues, nil
}

// parseSrv3 converts millisecond offsets; paragraphs without text are window markers and are skipped.
func parseSrv3(paras []ytPara) ([]Cue, error) {
	cues := make([]Cue, 0, len(paras))
	for i, p := range paras {
		text := engine.CleanText(p.Inner)
		if text == "" {
			continue
		}
		if p.T == nil {
			return nil, fmt.Errorf("p #%d: missing t", i)
		}
		start, err := strconv.ParseInt(*p.T, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("p #%d: t: %w", i, err)
		}
		var dur int64
		if p.D != nil {
			if dur, err = strconv.ParseInt(*p.D, 10, 64); err != nil {
				return nil, fmt.Errorf("p #%d: d: %w", i, err)
			}
		}
		cues = append(cues, Cue{Text: text, Start: float64(start) / 1000, Duration: float64(dur) / 1000})
	}
	return cues, nil
}
