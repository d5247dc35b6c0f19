// Package parser turns a PDF byte stream into positioned text spans.
//
// It extracts only the embedded text layer, via github.com/ledongthuc/pdf;
// scanned (image-only) PDFs yield an empty document rather than an error.
// Extraction failures on individual pages are skipped and counted so that
// partial results are always preferred to total failure.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/model"
)

// MaxDocumentSize is the largest PDF accepted, in bytes.
const MaxDocumentSize = 50 * 1024 * 1024

// Sentinel causes for a ParseError.
var (
	// ErrEncrypted indicates the document is encrypted and no usable
	// password is available.
	ErrEncrypted = errors.New("document is encrypted")

	// ErrNoPages indicates the document contains zero extractable pages.
	ErrNoPages = errors.New("document has no extractable pages")

	// ErrTooLarge indicates the input exceeds MaxDocumentSize.
	ErrTooLarge = errors.New("document exceeds maximum size")

	// ErrCorrupt indicates the file structure could not be read.
	ErrCorrupt = errors.New("document structure is corrupt")
)

// ParseError reports a fatal per-document failure. It never aborts sibling
// documents in a batch; callers collect it alongside successful results.
type ParseError struct {
	// Doc is the caller-supplied document name.
	Doc string

	// Err is the underlying cause, matchable with errors.Is against the
	// sentinels above.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Doc, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Page holds the spans extracted from one page.
type Page struct {
	// Index is the 0-based page index.
	Index int

	// Width and Height are the page dimensions in points.
	Width  float64
	Height float64

	// Spans are the text runs in content-stream order.
	Spans []model.Span
}

// Document is the result of structural parsing: spans per page plus a
// count of pages that could not be extracted.
type Document struct {
	// Name is the caller-supplied document name.
	Name string

	// Pages holds the successfully extracted pages in order.
	Pages []Page

	// SkippedPages counts pages whose extraction failed.
	SkippedPages int
}

// SpanCount returns the total number of spans across all pages.
func (d *Document) SpanCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Spans)
	}
	return n
}

// IsEmpty returns true if no text was extracted from any page.
func (d *Document) IsEmpty() bool {
	return d.SpanCount() == 0
}

// Config holds configuration for span assembly.
type Config struct {
	// SpaceGapFraction is the horizontal gap, as a fraction of font size,
	// above which a space is inserted between merged text items (default: 0.25).
	SpaceGapFraction float64

	// BreakGapFraction is the horizontal gap, as a fraction of font size,
	// above which a new span starts instead of merging (default: 2.5).
	BreakGapFraction float64

	// BaselineTolerance is the maximum baseline Y difference for two text
	// items to be considered part of the same span (default: 0.5 points).
	BaselineTolerance float64
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		SpaceGapFraction:  0.25,
		BreakGapFraction:  2.5,
		BaselineTolerance: 0.5,
	}
}

// Parser extracts spans from PDF byte streams.
type Parser struct {
	config Config
}

// New creates a parser with default configuration.
func New() *Parser {
	return &Parser{config: DefaultConfig()}
}

// NewWithConfig creates a parser with custom configuration.
func NewWithConfig(config Config) *Parser {
	return &Parser{config: config}
}

// Extract parses a PDF byte stream into a Document. It returns a *ParseError
// when the document as a whole is unreadable (encrypted, corrupt cross
// reference table, zero pages); single-page failures are skipped and counted.
func (p *Parser) Extract(name string, data []byte) (*Document, error) {
	if len(data) > MaxDocumentSize {
		return nil, &ParseError{Doc: name, Err: ErrTooLarge}
	}

	r, err := openReader(data)
	if err != nil {
		return nil, &ParseError{Doc: name, Err: classifyOpenError(err)}
	}

	total := r.NumPage()
	if total == 0 {
		return nil, &ParseError{Doc: name, Err: ErrNoPages}
	}

	doc := &Document{Name: name}
	for i := 1; i <= total; i++ {
		page, ok := p.extractPage(r, i)
		if !ok {
			doc.SkippedPages++
			continue
		}
		doc.Pages = append(doc.Pages, page)
	}

	if len(doc.Pages) == 0 {
		return nil, &ParseError{Doc: name, Err: ErrNoPages}
	}

	return doc, nil
}

// openReader wraps pdf.NewReader, converting the panics it raises on some
// malformed inputs into plain errors.
func openReader(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

// extractPage extracts one page. The underlying reader panics on some
// malformed content streams, so the whole page is guarded: a panic marks
// the page as skipped instead of aborting the document.
func (p *Parser) extractPage(r *pdf.Reader, num int) (page Page, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	pg := r.Page(num)
	if pg.V.IsNull() {
		return Page{}, false
	}

	width, height := pageSize(pg)
	page = Page{
		Index:  num - 1,
		Width:  width,
		Height: height,
	}

	content := pg.Content()
	page.Spans = p.assembleSpans(content.Text, num-1)

	return page, true
}

// assembleSpans coalesces raw text items (often single characters) into
// spans: runs sharing a font, size and baseline with no large horizontal gap.
func (p *Parser) assembleSpans(items []pdf.Text, pageIndex int) []model.Span {
	var spans []model.Span

	var (
		sb      strings.Builder
		cur     pdf.Text // first item of the current run
		curEnd  float64  // right edge of the last item in the run
		started bool
	)

	flush := func() {
		if !started {
			return
		}
		text := sb.String()
		if strings.TrimSpace(text) != "" {
			spans = append(spans, model.Span{
				Text:     text,
				Page:     pageIndex,
				BBox:     model.NewBBox(cur.X, cur.Y, curEnd-cur.X, cur.FontSize),
				FontSize: cur.FontSize,
				FontName: cur.Font,
				Bold:     fontIsBold(cur.Font),
				Italic:   fontIsItalic(cur.Font),
			})
		}
		sb.Reset()
		started = false
	}

	for _, item := range items {
		if item.S == "" {
			continue
		}

		if !started {
			cur = item
			curEnd = item.X + item.W
			sb.WriteString(item.S)
			started = true
			continue
		}

		gap := item.X - curEnd
		sameRun := item.Font == cur.Font &&
			item.FontSize == cur.FontSize &&
			abs(item.Y-cur.Y) <= p.config.BaselineTolerance &&
			gap < item.FontSize*p.config.BreakGapFraction &&
			gap > -item.FontSize // Reject backward jumps (new line or column)

		if !sameRun {
			flush()
			cur = item
			curEnd = item.X + item.W
			sb.WriteString(item.S)
			started = true
			continue
		}

		if gap > item.FontSize*p.config.SpaceGapFraction && !strings.HasSuffix(sb.String(), " ") {
			sb.WriteString(" ")
		}
		sb.WriteString(item.S)
		curEnd = item.X + item.W
	}
	flush()

	return spans
}

// pageSize resolves the page MediaBox, walking up the page tree for
// inherited values. Falls back to US Letter when absent.
func pageSize(pg pdf.Page) (width, height float64) {
	v := pg.V
	for !v.IsNull() {
		if mb := v.Key("MediaBox"); !mb.IsNull() && mb.Len() == 4 {
			x0 := mb.Index(0).Float64()
			y0 := mb.Index(1).Float64()
			x1 := mb.Index(2).Float64()
			y1 := mb.Index(3).Float64()
			return abs(x1 - x0), abs(y1 - y0)
		}
		v = v.Key("Parent")
	}
	return 612, 792
}

// classifyOpenError maps reader open failures onto the error taxonomy.
func classifyOpenError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "encrypt") || strings.Contains(msg, "password") {
		return fmt.Errorf("%w: %v", ErrEncrypted, err)
	}
	return fmt.Errorf("%w: %v", ErrCorrupt, err)
}

// fontIsBold reports whether a font name carries a bold weight marker.
func fontIsBold(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "bold") ||
		strings.Contains(lower, "black") ||
		strings.Contains(lower, "heavy") ||
		strings.Contains(lower, "semibold") ||
		strings.Contains(lower, "demibold")
}

// fontIsItalic reports whether a font name carries an italic marker.
func fontIsItalic(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
