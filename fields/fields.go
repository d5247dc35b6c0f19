// Package fields extracts labeled key-value data from classified document
// blocks. It scans body text for "Label: value" lines, matches labels
// case-insensitively against a synonym table, and collects multi-line
// continuations until a blank gap, a new label, or a heading interrupts.
package fields

import (
	"strings"
	"unicode"

	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/layout"
	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/model"
)

// Record holds the five recognized fields. A nil pointer serializes as
// null; absent fields are reported, never omitted, so every record carries
// exactly these five keys.
type Record struct {
	Title                *string `json:"title"`
	Objective            *string `json:"objective"`
	Deadline             *string `json:"deadline"`
	EligibilityCriteria  *string `json:"eligibility_criteria"`
	SubmissionGuidelines *string `json:"submission_guidelines"`
}

// Field names used as synonym table keys.
const (
	FieldTitle                = "title"
	FieldObjective            = "objective"
	FieldDeadline             = "deadline"
	FieldEligibilityCriteria  = "eligibility_criteria"
	FieldSubmissionGuidelines = "submission_guidelines"
)

// Config holds configuration for field extraction
type Config struct {
	// Synonyms maps each field name to the label spellings that select it.
	// Matching is case-insensitive against the text before the colon.
	Synonyms map[string][]string

	// BlankGapMultiplier scales the document's median line gap into the
	// vertical distance that terminates a running value, standing in for a
	// blank line (default: 2.0)
	BlankGapMultiplier float64
}

// DefaultConfig returns the default synonym table and thresholds
func DefaultConfig() Config {
	return Config{
		Synonyms: map[string][]string{
			FieldTitle:                {"title"},
			FieldObjective:            {"objective", "objectives", "purpose", "goal", "aim"},
			FieldDeadline:             {"deadline", "due date", "submission date", "closing date", "applications close"},
			FieldEligibilityCriteria:  {"eligibility", "eligibility criteria", "who can apply", "who may apply"},
			FieldSubmissionGuidelines: {"submission guidelines", "how to apply", "submission instructions", "how to submit"},
		},
		BlankGapMultiplier: 2.0,
	}
}

// Extractor scans classified blocks for labeled fields
type Extractor struct {
	config Config
	labels map[string]string // lowercased synonym -> field name
}

// New creates an extractor with the default synonym table
func New() *Extractor {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates an extractor with a custom synonym table
func NewWithConfig(config Config) *Extractor {
	labels := make(map[string]string)
	for field, synonyms := range config.Synonyms {
		for _, syn := range synonyms {
			labels[strings.ToLower(syn)] = field
		}
	}
	return &Extractor{config: config, labels: labels}
}

// scanLine is a flattened view of one line with the context the
// termination rules need.
type scanLine struct {
	text    string
	heading bool    // line belongs to a non-body block
	gap     float64 // vertical gap before the line's block (first line only)
}

// Extract scans the document and returns a Record. Unmatched fields stay
// nil. A matched label opens a value that absorbs following lines until a
// blank-sized gap, another recognized label, or a heading block. Bulleted
// continuations keep their line structure, joined with newlines; plain
// continuations join with spaces.
func (e *Extractor) Extract(doc *layout.BlockLayout) Record {
	var record Record
	if doc == nil {
		return record
	}

	lines := e.flatten(doc)
	threshold := doc.MedianLineGap * e.config.BlankGapMultiplier

	var (
		field string   // field currently collecting, "" when idle
		parts []string // collected value lines
		block bool     // current value has bulleted parts
	)

	commit := func() {
		if field == "" || len(parts) == 0 {
			field = ""
			parts = nil
			block = false
			return
		}
		sep := " "
		if block {
			sep = "\n"
		}
		value := Normalize(strings.Join(parts, sep), block)
		if value != "" {
			e.assign(&record, field, value)
		}
		field = ""
		parts = nil
		block = false
	}

	for _, line := range lines {
		label, rest, matched := e.matchLabel(line.text)

		terminates := line.heading ||
			(threshold > 0 && line.gap > threshold)

		if field != "" {
			if matched || terminates {
				commit()
			} else {
				if isBullet(line.text) {
					block = true
				}
				parts = append(parts, line.text)
				continue
			}
		}

		if matched && !line.heading {
			field = label
			if strings.TrimSpace(rest) != "" {
				parts = append(parts, rest)
			}
		}
	}
	commit()

	return record
}

// flatten converts blocks into the ordered line sequence the scanner walks
func (e *Extractor) flatten(doc *layout.BlockLayout) []scanLine {
	var lines []scanLine
	for _, b := range doc.Blocks {
		heading := b.Level != model.LevelBody
		for i, line := range b.Lines {
			sl := scanLine{text: line.Text, heading: heading}
			if i == 0 {
				sl.gap = b.GapBefore
			}
			lines = append(lines, sl)
		}
	}
	return lines
}

// matchLabel tests a line against the synonym table. It returns the field
// name, the text after the colon, and whether a label matched. Only the
// first colon splits; later colons belong to the value.
func (e *Extractor) matchLabel(text string) (field, rest string, ok bool) {
	idx := strings.Index(text, ":")
	if idx <= 0 {
		return "", "", false
	}

	label := strings.ToLower(strings.TrimSpace(text[:idx]))
	field, ok = e.labels[label]
	if !ok {
		return "", "", false
	}
	return field, strings.TrimSpace(text[idx+1:]), true
}

// assign stores a value on the record field. First match wins; a later
// duplicate label never overwrites an earlier value.
func (e *Extractor) assign(r *Record, field, value string) {
	set := func(dst **string) {
		if *dst == nil {
			*dst = &value
		}
	}
	switch field {
	case FieldTitle:
		set(&r.Title)
	case FieldObjective:
		set(&r.Objective)
	case FieldDeadline:
		set(&r.Deadline)
	case FieldEligibilityCriteria:
		set(&r.EligibilityCriteria)
	case FieldSubmissionGuidelines:
		set(&r.SubmissionGuidelines)
	}
}

// isBullet reports whether a line starts a bulleted or numbered item
func isBullet(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "*") {
		return true
	}

	// Digit run followed by a period or paren, e.g. "1." or "12)"
	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	return i > 0 && i < len(trimmed) && (trimmed[i] == '.' || trimmed[i] == ')')
}

// Normalize cleans a field value: control characters stripped, runs of
// spaces and tabs collapsed, edges trimmed. When preserveLines is true,
// newlines survive so bulleted values keep their structure.
func Normalize(s string, preserveLines bool) string {
	var sb strings.Builder
	sb.Grow(len(s))

	lastSpace := false
	for _, r := range s {
		switch {
		case r == '\n':
			if preserveLines {
				sb.WriteRune('\n')
				lastSpace = false
			} else if !lastSpace {
				sb.WriteRune(' ')
				lastSpace = true
			}
		case unicode.IsControl(r):
			// dropped
		case unicode.IsSpace(r):
			if !lastSpace {
				sb.WriteRune(' ')
				lastSpace = true
			}
		default:
			sb.WriteRune(r)
			lastSpace = false
		}
	}

	lines := strings.Split(sb.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
