// Package docparse provides a fluent API for extracting document structure
// from PDF files: a title and heading outline, labeled key-value fields,
// and ranking-ready sections.
//
// Basic usage:
//
//	record, warnings, err := docparse.Open("document.pdf").Outline()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", docparse.FormatWarnings(warnings))
//	}
//
// With options:
//
//	record, _, err := docparse.Open("flyer.pdf").
//	    WithHeadingConfig(config).
//	    Fields()
//
// For advanced use cases, the parser, layout, fields, and rank packages
// are also available directly.
package docparse

import (
	"os"
)

// Open reads a PDF file and returns an Extractor for fluent configuration.
// A read failure is held on the Extractor and surfaces from the terminal
// operation, keeping chains linear.
//
// Example:
//
//	record, warnings, err := docparse.Open("document.pdf").Outline()
func Open(filename string) *Extractor {
	data, err := os.ReadFile(filename)
	e := &Extractor{
		name:    filename,
		data:    data,
		options: defaultOptions(),
	}
	if err != nil {
		e.err = err
	}
	return e
}

// FromBytes creates an Extractor from an in-memory PDF byte stream. The
// name identifies the document in errors, warnings, and ranking output.
//
// Example:
//
//	record, warnings, err := docparse.FromBytes("upload.pdf", data).Outline()
func FromBytes(name string, data []byte) *Extractor {
	return &Extractor{
		name:    name,
		data:    data,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRecord is a helper that wraps a terminal operation returning
// (T, []Warning, error), panics on error, and discards warnings.
//
// Example:
//
//	record := docparse.MustRecord(docparse.Open("document.pdf").Outline())
func MustRecord[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
