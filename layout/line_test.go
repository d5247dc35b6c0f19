package layout

import (
	"testing"

	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/model"
)

func makeSpan(text string, x, y, w, size float64) model.Span {
	return model.Span{
		Text:     text,
		Page:     0,
		BBox:     model.NewBBox(x, y, w, size),
		FontSize: size,
		FontName: "Helvetica",
	}
}

func makeStyledSpan(text string, x, y, w, size float64, bold, italic bool) model.Span {
	s := makeSpan(text, x, y, w, size)
	s.Bold = bold
	s.Italic = italic
	return s
}

func TestDetectEmptyInput(t *testing.T) {
	d := NewLineDetector()
	layout := d.Detect(nil, 612, 792)

	if layout.LineCount() != 0 {
		t.Errorf("Expected 0 lines, got %d", layout.LineCount())
	}
	if layout.PageWidth != 612 {
		t.Errorf("Expected page width 612, got %f", layout.PageWidth)
	}
}

func TestDetectGroupsSameBaseline(t *testing.T) {
	d := NewLineDetector()
	spans := []model.Span{
		makeSpan("Hello", 72, 700, 30, 12),
		makeSpan("world", 110, 700.3, 30, 12),
	}

	layout := d.Detect(spans, 612, 792)
	if layout.LineCount() != 1 {
		t.Fatalf("Expected 1 line, got %d", layout.LineCount())
	}
	if layout.Lines[0].Text != "Hello world" {
		t.Errorf("Expected %q, got %q", "Hello world", layout.Lines[0].Text)
	}
}

func TestDetectSeparatesLines(t *testing.T) {
	d := NewLineDetector()
	spans := []model.Span{
		makeSpan("First line", 72, 700, 60, 12),
		makeSpan("Second line", 72, 685, 66, 12),
		makeSpan("Third line", 72, 670, 60, 12),
	}

	layout := d.Detect(spans, 612, 792)
	if layout.LineCount() != 3 {
		t.Fatalf("Expected 3 lines, got %d", layout.LineCount())
	}

	// Lines come out top to bottom.
	if layout.Lines[0].Text != "First line" {
		t.Errorf("Expected first line on top, got %q", layout.Lines[0].Text)
	}
	if layout.Lines[2].Text != "Third line" {
		t.Errorf("Expected third line on bottom, got %q", layout.Lines[2].Text)
	}
}

func TestDetectSortsSpansLeftToRight(t *testing.T) {
	d := NewLineDetector()
	spans := []model.Span{
		makeSpan("right", 200, 700, 30, 12),
		makeSpan("left", 72, 700, 24, 12),
	}

	layout := d.Detect(spans, 612, 792)
	if layout.LineCount() != 1 {
		t.Fatalf("Expected 1 line, got %d", layout.LineCount())
	}
	if layout.Lines[0].Text != "left right" {
		t.Errorf("Expected %q, got %q", "left right", layout.Lines[0].Text)
	}
}

func TestDetectToleranceScalesWithFontSize(t *testing.T) {
	d := NewLineDetector()

	// At 24pt the median-derived tolerance band is wide enough to absorb
	// a 5pt baseline wobble that would split 8pt text.
	spans := []model.Span{
		makeSpan("Big", 72, 700, 40, 24),
		makeSpan("Title", 120, 695, 60, 24),
	}

	layout := d.Detect(spans, 612, 792)
	if layout.LineCount() != 1 {
		t.Fatalf("Expected 1 line at large font, got %d", layout.LineCount())
	}
}

func TestDetectDropsWhitespaceOnlyLines(t *testing.T) {
	d := NewLineDetector()
	spans := []model.Span{
		makeSpan("  ", 72, 700, 10, 12),
		makeSpan("Real text", 72, 680, 50, 12),
	}

	layout := d.Detect(spans, 612, 792)
	if layout.LineCount() != 1 {
		t.Fatalf("Expected 1 line, got %d", layout.LineCount())
	}
	if layout.Lines[0].Text != "Real text" {
		t.Errorf("Expected %q, got %q", "Real text", layout.Lines[0].Text)
	}
}

func TestDominantFontSize(t *testing.T) {
	spans := []model.Span{
		makeSpan("A short run", 72, 700, 60, 18),
		makeSpan("followed by a much longer run of body text", 140, 700, 240, 11),
	}

	if got := dominantFontSize(spans); got != 11 {
		t.Errorf("Expected dominant size 11, got %f", got)
	}
}

func TestDominantStyle(t *testing.T) {
	tests := []struct {
		name       string
		spans      []model.Span
		wantBold   bool
		wantItalic bool
	}{
		{
			name: "mostly bold",
			spans: []model.Span{
				makeStyledSpan("Important heading text", 72, 700, 120, 12, true, false),
				makeStyledSpan("note", 200, 700, 24, 12, false, false),
			},
			wantBold: true,
		},
		{
			name: "mostly plain",
			spans: []model.Span{
				makeStyledSpan("bold", 72, 700, 24, 12, true, false),
				makeStyledSpan("but the rest of the line is regular", 100, 700, 180, 12, false, false),
			},
		},
		{
			name: "italic run",
			spans: []model.Span{
				makeStyledSpan("entirely italic line", 72, 700, 100, 12, false, true),
			},
			wantItalic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bold, italic := dominantStyle(tt.spans)
			if bold != tt.wantBold {
				t.Errorf("bold = %v, want %v", bold, tt.wantBold)
			}
			if italic != tt.wantItalic {
				t.Errorf("italic = %v, want %v", italic, tt.wantItalic)
			}
		})
	}
}

func TestMedianSpanHeight(t *testing.T) {
	spans := []model.Span{
		makeSpan("a", 72, 700, 10, 10),
		makeSpan("b", 72, 680, 10, 12),
		makeSpan("c", 72, 660, 10, 24),
	}

	if got := medianSpanHeight(spans); got != 12 {
		t.Errorf("Expected median 12, got %f", got)
	}
}
