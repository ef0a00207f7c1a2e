package transcript

// ResolveTrack picks one track from catalog for the requested language.
//
// Candidates are evaluated once, in order: the exact requested code, "en", then the
// first track in catalog order. Codes are compared exactly; "en-US" does not satisfy "en".
// It returns the chosen track and the language code actually used.
func ResolveTrack(catalog Catalog, language string) (Track, string, error) {
	if catalog.Len() == 0 {
		return Track{}, "", noTranscriptFound(catalog.VideoID())
	}
	for _, want := range []string{language, "en"} {
		if want == "" {
			continue
		}
		for i := 0; i < catalog.Len(); i++ {
			if t := catalog.At(i); t.LanguageCode == want {
				return t, t.LanguageCode, nil
			}
		}
	}
	first := catalog.At(0)
	return first, first.LanguageCode, nil
}
