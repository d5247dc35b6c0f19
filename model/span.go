package model

// Span is the smallest extracted text unit: a run of text that shares one
// font, size and baseline. Spans are immutable once extracted.
type Span struct {
	// Text is the decoded text content of the run.
	Text string

	// Page is the 0-based page index this span appears on.
	Page int

	// BBox is the bounding box of the run.
	BBox BBox

	// FontSize is the nominal font size in points.
	FontSize float64

	// FontName is the PostScript font name (e.g. "ABCDEE+Arial-BoldMT").
	FontName string

	// Bold and Italic are derived from the font name.
	Bold   bool
	Italic bool
}
