package model

// OutlineEntry is one persisted heading in a document outline.
type OutlineEntry struct {
	// Level is the heading depth, one of "H1".."H4" in serialized form.
	Level Level `json:"level"`

	// Text is the normalized heading text. Never empty in valid output.
	Text string `json:"text"`

	// Page is the 0-based page index where the heading's first line starts.
	Page int `json:"page"`
}

// Outline is the structural extraction result for one document: a title and
// the ordered heading sequence. The title never repeats inside the entries.
type Outline struct {
	Title   string
	Entries []OutlineEntry
}
