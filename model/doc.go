// Package model defines the geometry and record types shared across the
// extraction pipeline: spans, bounding boxes, heading levels and the
// outline entries persisted in structural output.
//
// All types here are plain data. Spans are produced by the parser package,
// consumed by the layout package, and never mutated after extraction;
// everything derived from them lives only for the duration of a single
// document's processing.
package model
