// Package output assembles the final per-document records and serializes
// them deterministically. All string fields are normalized to Unicode NFC
// and trimmed, key order is fixed by the record structs, and array order
// follows the input, so identical input always yields byte-identical JSON.
package output

import (
	"bytes"
	"encoding/json"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/fields"
	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/model"
	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/rank"
)

// StructuralRecord is the structural-mode output: a title and the heading
// outline. No other top-level keys are ever emitted in this mode.
type StructuralRecord struct {
	Title   string               `json:"title"`
	Outline []model.OutlineEntry `json:"outline"`
}

// PersonaMetadata echoes the ranking request. ProcessedAt is left empty by
// the library so identical input keeps producing identical bytes; callers
// that want a wall-clock stamp set it themselves.
type PersonaMetadata struct {
	Persona     string   `json:"persona"`
	Job         string   `json:"job"`
	Documents   []string `json:"documents"`
	ProcessedAt string   `json:"processed_at,omitempty"`
}

// ExtractedSection is one ranked section reference
type ExtractedSection struct {
	Document     string `json:"document"`
	SectionTitle string `json:"section_title"`
	Page         int    `json:"page"`
	Rank         int    `json:"rank"`
}

// Subsection carries the condensed text of a ranked section
type Subsection struct {
	Document    string `json:"document"`
	Page        int    `json:"page"`
	RefinedText string `json:"refined_text"`
}

// PersonaRecord is the persona-ranking-mode output
type PersonaRecord struct {
	Metadata           PersonaMetadata    `json:"metadata"`
	ExtractedSections  []ExtractedSection `json:"extracted_sections"`
	SubsectionAnalysis []Subsection       `json:"subsection_analysis"`
}

// Normalize canonicalizes a string field: Unicode NFC, trimmed whitespace
func Normalize(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// normalizePtr normalizes through a pointer, preserving nil
func normalizePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := Normalize(*p)
	return &v
}

// Structural builds the structural-mode record from an outline. Entries
// whose text normalizes to empty are dropped rather than emitted, keeping
// the schema invariant that outline text is never blank.
func Structural(outline *model.Outline) StructuralRecord {
	record := StructuralRecord{
		Outline: []model.OutlineEntry{},
	}
	if outline == nil {
		return record
	}

	record.Title = Normalize(outline.Title)
	for _, entry := range outline.Entries {
		text := Normalize(entry.Text)
		if text == "" {
			continue
		}
		record.Outline = append(record.Outline, model.OutlineEntry{
			Level: entry.Level,
			Text:  text,
			Page:  entry.Page,
		})
	}
	return record
}

// Fields normalizes a field-extraction record. Nil values stay nil so
// absent fields serialize as null.
func Fields(record fields.Record) fields.Record {
	return fields.Record{
		Title:                normalizePtr(record.Title),
		Objective:            normalizePtr(record.Objective),
		Deadline:             normalizePtr(record.Deadline),
		EligibilityCriteria:  normalizePtr(record.EligibilityCriteria),
		SubmissionGuidelines: normalizePtr(record.SubmissionGuidelines),
	}
}

// Persona builds the persona-ranking-mode record from a query, the
// document names in collection order, and the ranked sections.
func Persona(query rank.PersonaQuery, documents []string, ranked []rank.RankedSection) PersonaRecord {
	record := PersonaRecord{
		Metadata: PersonaMetadata{
			Persona:   Normalize(query.Persona),
			Job:       Normalize(query.Job),
			Documents: make([]string, 0, len(documents)),
		},
		ExtractedSections:  make([]ExtractedSection, 0, len(ranked)),
		SubsectionAnalysis: make([]Subsection, 0, len(ranked)),
	}

	for _, doc := range documents {
		record.Metadata.Documents = append(record.Metadata.Documents, Normalize(doc))
	}

	for _, rs := range ranked {
		record.ExtractedSections = append(record.ExtractedSections, ExtractedSection{
			Document:     Normalize(rs.Document),
			SectionTitle: Normalize(rs.Title),
			Page:         rs.Page,
			Rank:         rs.Rank,
		})
		record.SubsectionAnalysis = append(record.SubsectionAnalysis, Subsection{
			Document:    Normalize(rs.Document),
			Page:        rs.Page,
			RefinedText: Normalize(rs.Summary),
		})
	}

	return record
}

// Marshal serializes a record with two-space indentation and without HTML
// escaping. Struct-driven key order and input-driven array order make the
// bytes reproducible across runs.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
