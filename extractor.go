package docparse

import (
	"fmt"

	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/fields"
	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/layout"
	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/model"
	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/output"
	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/parser"
	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/rank"
)

// Extractor provides a fluent interface for structural extraction from one
// PDF document. Each configuration method returns a new Extractor instance,
// making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	name string
	data []byte

	// Configuration
	options extractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of
// options. This keeps chains immutable; each chain method returns a new
// instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		name:     e.name,
		data:     e.data,
		options:  e.options.clone(),
		err:      e.err,
		warnings: append([]Warning(nil), e.warnings...),
	}
}

// warn records a non-fatal condition
func (e *Extractor) warn(stage, format string, args ...any) {
	e.warnings = append(e.warnings, Warning{
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
	})
}

// segment runs the shared front of the pipeline: parse the bytes, group
// spans into lines per page, merge lines into blocks, classify headings.
// An empty document (pages but no text) is a valid result, not an error;
// it comes back as an empty layout with a warning.
func (e *Extractor) segment() (*layout.BlockLayout, []Warning, error) {
	ex := e.clone()
	if ex.err != nil {
		return nil, ex.warnings, ex.err
	}

	doc, err := parser.NewWithConfig(ex.options.parser).Extract(ex.name, ex.data)
	if err != nil {
		return nil, ex.warnings, err
	}
	if doc.SkippedPages > 0 {
		ex.warn("parse", "skipped %d unreadable page(s)", doc.SkippedPages)
	}
	if doc.IsEmpty() {
		ex.warn("parse", "no extractable text")
		return &layout.BlockLayout{}, ex.warnings, nil
	}

	lineDetector := layout.NewLineDetectorWithConfig(ex.options.line)
	pages := make([]*layout.LineLayout, 0, len(doc.Pages))
	for _, page := range doc.Pages {
		pages = append(pages, lineDetector.Detect(page.Spans, page.Width, page.Height))
	}

	blocks := layout.NewBlockDetectorWithConfig(ex.options.block).Detect(pages)
	layout.NewHeadingClassifierWithConfig(ex.options.heading).Classify(blocks)

	return blocks, ex.warnings, nil
}

// Outline is a terminal operation producing the structural-mode record:
// the document title and its heading outline. Warnings report skipped
// pages and dropped entries alongside a usable record.
func (e *Extractor) Outline() (output.StructuralRecord, []Warning, error) {
	blocks, warnings, err := e.segment()
	if err != nil {
		return output.StructuralRecord{Outline: []model.OutlineEntry{}}, warnings, err
	}

	outline, dropped := layout.NewOutlineBuilderWithConfig(e.options.outline).Build(blocks)
	for _, msg := range dropped {
		warnings = append(warnings, Warning{Stage: "outline", Message: msg})
	}

	return output.Structural(outline), warnings, nil
}

// Fields is a terminal operation producing the field-extraction record.
// All five keys are always present; unmatched fields are null.
func (e *Extractor) Fields() (fields.Record, []Warning, error) {
	blocks, warnings, err := e.segment()
	if err != nil {
		return fields.Record{}, warnings, err
	}

	record := fields.NewWithConfig(e.options.fields).Extract(blocks)
	return output.Fields(record), warnings, nil
}

// Sections is a terminal operation producing ranking candidates: each
// outline heading paired with the body text that follows it, up to the
// next heading. The block serving as the document title is not a
// candidate, mirroring its exclusion from the outline. docIndex positions
// the document inside its collection for tie-breaking.
func (e *Extractor) Sections(docIndex int) ([]rank.Section, []Warning, error) {
	blocks, warnings, err := e.segment()
	if err != nil {
		return nil, warnings, err
	}

	if blocks == nil {
		return nil, warnings, nil
	}

	return sectionsFromLayout(e.name, docIndex, blocks, e.options.outline), warnings, nil
}

// sectionsFromLayout pairs each heading block with the consecutive body
// blocks that follow it. The block the outline builder would choose as the
// document title is skipped.
func sectionsFromLayout(name string, docIndex int, blocks *layout.BlockLayout, config layout.OutlineConfig) []rank.Section {
	titleIdx := layout.NewOutlineBuilderWithConfig(config).TitleBlock(blocks)

	var sections []rank.Section
	for i, block := range blocks.Blocks {
		if i == titleIdx || block.Level == model.LevelBody {
			continue
		}

		var body []string
		for j := i + 1; j < len(blocks.Blocks); j++ {
			next := blocks.Blocks[j]
			if next.Level != model.LevelBody {
				break
			}
			body = append(body, next.Text)
		}

		sections = append(sections, rank.Section{
			Document: name,
			DocIndex: docIndex,
			Page:     block.Page,
			Title:    block.Text,
			Body:     joinNonEmpty(body),
		})
	}

	return sections
}

// joinNonEmpty joins parts with single spaces, skipping empties
func joinNonEmpty(parts []string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}
