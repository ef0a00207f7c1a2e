package engine

// LLM prompt templates: data only, no logic.

// translateSystemPrompt frames the model as a subtitle translator.
const translateSystemPrompt = `You are a professional subtitle translator. You translate caption lines faithfully, keep them short, and never merge or split lines.`

// translatePrompt asks for a line-for-line translation of caption texts.
// Args: target language, number of lines, JSON array of lines.
const translatePrompt = `Translate each caption line below into the language with code "%s".

Respond with valid JSON only (no markdown, no ` + "`" + `json` + "`" + ` block): a JSON array of exactly %d strings,
one translated string per input line, in the same order. Keep empty lines empty.

Lines:
%s`
