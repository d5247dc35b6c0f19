package docparse

import (
	"fmt"
	"strings"
)

// Warning reports a non-fatal condition encountered while processing a
// document: skipped pages, dropped outline entries, absent text. Warnings
// accompany a usable result; errors replace one.
type Warning struct {
	// Stage names the pipeline stage that raised the warning
	Stage string

	// Message describes the condition
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}

// FormatWarnings joins warnings into a single printable string
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
