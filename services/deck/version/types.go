// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package version computes presentation state fingerprints.
//
// A fingerprint is a deterministic digest over a presentation's
// structural and textual state: slide count, per-slide layout name, and
// per-shape geometry and text in the exact order callers index by.
// Callers compare fingerprints taken before and after an operation to
// learn whether previously returned slide/shape indices may be stale.
//
// # Design Principles
//
// Sensitivity over stability: any change to a shape's position, size or
// text, any shape or slide added, removed or reordered, and any layout
// change must change the digest. Hashing text alone and ignoring
// geometry is a known defect class this package exists to prevent.
//
// # Thread Safety
//
// Compute is a pure read; it is safe to call concurrently on distinct
// presentations. A Result is immutable after creation.
package version

import "github.com/DeckhandAI/deckhand/services/deck/pptx"

// DigestLength is the fixed hex-prefix length of a fingerprint. The
// truncation trades collision resistance the "did it change" use case
// does not need for a compact comparison token.
const DigestLength = 16

// errMarkerToken is the canonical, value-stable token contributed by a
// shape that cannot be inspected. Substituting a constant keeps the
// digest deterministic while the scan continues past corrupted entries.
const errMarkerToken = "<unreadable-shape>"

// Separators for the canonical state string. Control characters cannot
// appear in layout names or shape text, so differently structured
// inputs can never concatenate to the same string.
const (
	fieldSep  = "\x1f" // between fields of one record
	recordSep = "\x1e" // between slides/shapes
)

// Shape is the read-only shape access the fingerprint needs.
type Shape interface {
	// Geometry returns the shape's bounding box in raw EMU. Shapes
	// without an explicit transform report zeros.
	Geometry() (pptx.Geometry, error)

	// Text returns the concatenated text-run contents, "" if the shape
	// has no text.
	Text() string
}

// Slide is the read-only slide access the fingerprint needs. Shapes
// must be returned in the same document order that defines the shape
// indices callers use.
type Slide interface {
	LayoutName() string
	Shapes() []Shape
}

// Presentation is the read-only document access the fingerprint needs.
// Slides must be returned in presentation order.
type Presentation interface {
	Slides() []Slide
}

// Result is a computed fingerprint.
//
// Results are plain comparison tokens: they are returned to callers and
// never persisted.
type Result struct {
	// Digest is the DigestLength-character hex fingerprint.
	Digest string `json:"digest"`

	// Complete is false when the scan was cut short (context cancelled
	// or deadline exceeded). Incomplete digests cover a prefix of the
	// document and must never be compared as if they were full scans.
	Complete bool `json:"analysis_complete"`

	// Warnings lists shapes that contributed the error-marker token.
	Warnings []string `json:"warnings,omitempty"`
}

// ComparableTo reports whether two results can be meaningfully
// compared. Either side incomplete means "unknown", never "unchanged".
func (r *Result) ComparableTo(other *Result) bool {
	return r != nil && other != nil && r.Complete && other.Complete
}
