// Package layout provides document layout analysis: grouping spans into
// lines, merging lines into blocks, and classifying blocks into a heading
// hierarchy that yields a document outline.
package layout

import (
	"sort"
	"strings"

	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/model"
)

// Line represents a single line of text on a page
type Line struct {
	// BBox is the bounding box of the line
	BBox model.BBox

	// Spans are the text spans that make up this line (sorted left to right)
	Spans []model.Span

	// Text is the assembled text content of the line
	Text string

	// Page is the 0-based page index
	Page int

	// Index is the line's position on the page (0-based, top to bottom)
	Index int

	// Baseline is the Y coordinate of the text baseline
	Baseline float64

	// FontSize is the dominant (most frequent) font size among spans
	FontSize float64

	// Bold is true when more than half the line's text is in a bold face
	Bold bool

	// Italic is true when more than half the line's text is in an italic face
	Italic bool

	// Indentation is the left edge of the line
	Indentation float64
}

// LineLayout represents the detected line structure of a page
type LineLayout struct {
	// Lines are the detected text lines (sorted top to bottom)
	Lines []Line

	// PageWidth is the width of the page
	PageWidth float64

	// PageHeight is the height of the page
	PageHeight float64

	// MedianSpanHeight is the median span height used for grouping
	MedianSpanHeight float64

	// Config is the configuration used for detection
	Config LineConfig
}

// LineConfig holds configuration for line detection
type LineConfig struct {
	// BaselineTolerance is the Y-distance tolerance for grouping spans into
	// lines, as a fraction of the median span height (default: 0.5)
	BaselineTolerance float64

	// MinTolerance is the floor for the grouping tolerance in points, so
	// degenerate font metrics cannot collapse it to zero (default: 1.0)
	MinTolerance float64

	// SpaceGapFraction is the horizontal gap, as a fraction of span height,
	// above which a space separates adjacent spans in the assembled text
	// (default: 0.1)
	SpaceGapFraction float64
}

// DefaultLineConfig returns sensible default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		BaselineTolerance: 0.5,
		MinTolerance:      1.0,
		SpaceGapFraction:  0.1,
	}
}

// LineDetector groups text spans into lines
type LineDetector struct {
	config LineConfig
}

// NewLineDetector creates a new line detector with default configuration
func NewLineDetector() *LineDetector {
	return &LineDetector{
		config: DefaultLineConfig(),
	}
}

// NewLineDetectorWithConfig creates a line detector with custom configuration
func NewLineDetectorWithConfig(config LineConfig) *LineDetector {
	return &LineDetector{
		config: config,
	}
}

// Detect analyzes spans from a single page and groups them into lines.
// Two spans share a line when their baselines fall within a tolerance band
// derived from the median span height on the page, which keeps grouping
// stable across documents with very different body sizes.
func (d *LineDetector) Detect(spans []model.Span, pageWidth, pageHeight float64) *LineLayout {
	if len(spans) == 0 {
		return &LineLayout{
			PageWidth:  pageWidth,
			PageHeight: pageHeight,
			Config:     d.config,
		}
	}

	median := medianSpanHeight(spans)
	tolerance := median * d.config.BaselineTolerance
	if tolerance < d.config.MinTolerance {
		tolerance = d.config.MinTolerance
	}

	groups := d.groupByBaseline(spans, tolerance)
	lines := d.buildLines(groups)

	return &LineLayout{
		Lines:            lines,
		PageWidth:        pageWidth,
		PageHeight:       pageHeight,
		MedianSpanHeight: median,
		Config:           d.config,
	}
}

// groupByBaseline groups spans whose baselines fall within tolerance of the
// running average baseline of the current group. Spans are first sorted top
// to bottom (descending Y in PDF coordinates); stream order is preserved for
// spans on the same baseline and an X sort per line follows in buildLines.
func (d *LineDetector) groupByBaseline(spans []model.Span, tolerance float64) [][]model.Span {
	sorted := make([]model.Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		diff := sorted[i].BBox.Y - sorted[j].BBox.Y
		if absFloat64(diff) > tolerance {
			return diff > 0
		}
		return false
	})

	var groups [][]model.Span
	var current []model.Span

	for _, span := range sorted {
		if len(current) == 0 {
			current = append(current, span)
			continue
		}

		if absFloat64(span.BBox.Y-averageBaseline(current)) <= tolerance {
			current = append(current, span)
		} else {
			groups = append(groups, current)
			current = []model.Span{span}
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	return groups
}

// buildLines creates Line objects from span groups
func (d *LineDetector) buildLines(groups [][]model.Span) []Line {
	lines := make([]Line, 0, len(groups))

	for _, spans := range groups {
		if len(spans) == 0 {
			continue
		}

		sort.SliceStable(spans, func(i, j int) bool {
			return spans[i].BBox.X < spans[j].BBox.X
		})

		line := Line{
			Spans: spans,
			Page:  spans[0].Page,
		}

		line.BBox = spansBBox(spans)
		line.Baseline = spans[0].BBox.Y
		for _, s := range spans[1:] {
			if s.BBox.Y < line.Baseline {
				line.Baseline = s.BBox.Y
			}
		}

		line.Text = d.assembleLineText(spans)
		line.FontSize = dominantFontSize(spans)
		line.Bold, line.Italic = dominantStyle(spans)
		line.Indentation = line.BBox.X

		if strings.TrimSpace(line.Text) == "" {
			continue
		}

		lines = append(lines, line)
	}

	for i := range lines {
		lines[i].Index = i
	}

	return lines
}

// assembleLineText joins span texts left to right, inserting a space where
// the horizontal gap between adjacent spans is significant.
func (d *LineDetector) assembleLineText(spans []model.Span) string {
	var sb strings.Builder
	for i, span := range spans {
		if i > 0 {
			prev := spans[i-1]
			gap := span.BBox.X - prev.BBox.Right()
			if gap > span.BBox.Height*d.config.SpaceGapFraction &&
				!strings.HasSuffix(sb.String(), " ") &&
				!strings.HasPrefix(span.Text, " ") {
				sb.WriteString(" ")
			}
		}
		sb.WriteString(span.Text)
	}
	return sb.String()
}

// dominantFontSize returns the most frequent font size weighted by text
// length; ties break toward the larger size.
func dominantFontSize(spans []model.Span) float64 {
	weights := make(map[float64]int)
	for _, s := range spans {
		weights[roundSize(s.FontSize)] += len(s.Text)
	}

	var best float64
	bestWeight := -1
	for size, w := range weights {
		if w > bestWeight || (w == bestWeight && size > best) {
			best = size
			bestWeight = w
		}
	}
	return best
}

// dominantStyle reports bold/italic when more than half the line's text
// carries the attribute.
func dominantStyle(spans []model.Span) (bold, italic bool) {
	total, boldLen, italicLen := 0, 0, 0
	for _, s := range spans {
		n := len(s.Text)
		total += n
		if s.Bold {
			boldLen += n
		}
		if s.Italic {
			italicLen += n
		}
	}
	if total == 0 {
		return false, false
	}
	return boldLen*2 > total, italicLen*2 > total
}

// medianSpanHeight returns the median BBox height across spans
func medianSpanHeight(spans []model.Span) float64 {
	heights := make([]float64, 0, len(spans))
	for _, s := range spans {
		if s.BBox.Height > 0 {
			heights = append(heights, s.BBox.Height)
		}
	}
	if len(heights) == 0 {
		return 12.0
	}
	sort.Float64s(heights)
	mid := len(heights) / 2
	if len(heights)%2 == 0 {
		return (heights[mid-1] + heights[mid]) / 2
	}
	return heights[mid]
}

// spansBBox returns the union bounding box of a span group
func spansBBox(spans []model.Span) model.BBox {
	box := spans[0].BBox
	for _, s := range spans[1:] {
		box = box.Union(s.BBox)
	}
	return box
}

// averageBaseline returns the average baseline Y of a span group
func averageBaseline(spans []model.Span) float64 {
	total := 0.0
	for _, s := range spans {
		total += s.BBox.Y
	}
	return total / float64(len(spans))
}

// roundSize rounds a font size to a tenth of a point so floating point
// noise from transformation matrices does not split identical sizes.
func roundSize(size float64) float64 {
	return float64(int(size*10+0.5)) / 10
}

func absFloat64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// LineCount returns the number of detected lines
func (l *LineLayout) LineCount() int {
	if l == nil {
		return 0
	}
	return len(l.Lines)
}

// WordCount returns an approximate word count for the line
func (line *Line) WordCount() int {
	if line == nil || line.Text == "" {
		return 0
	}
	return len(strings.Fields(line.Text))
}

// IsEmpty returns true if the line has no text content
func (line *Line) IsEmpty() bool {
	if line == nil {
		return true
	}
	return strings.TrimSpace(line.Text) == ""
}
