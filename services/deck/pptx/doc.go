// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package pptx implements the presentation document engine.
//
// This package reads and writes PresentationML (.pptx) packages, exposing
// a Document / Slide / Shape object model over the OOXML subset the
// deckhand tools touch: slide order, shape geometry in EMU, text runs,
// fills, alt text, and the structural mutations the CLI performs.
//
// # Design Principles
//
// Open never writes: a Document is a fully in-memory copy of the package,
// so read-only probes (inspection, fingerprinting, validation) are
// guaranteed not to alter the on-disk bytes. Save rewrites the package to
// a temporary file in the target directory and renames it into place, so
// a torn write never replaces a good file with a partial one. Parts the
// engine never parsed are carried through byte-for-byte.
//
// # Thread Safety
//
// Document and its slides/shapes are NOT safe for concurrent use. The
// surrounding tool layer is single-threaded per operation; cross-process
// exclusion is the lock package's job.
package pptx

import "errors"

// Sentinel errors for document operations.
var (
	// ErrNoSuchSlide is returned when a slide index is out of range.
	ErrNoSuchSlide = errors.New("no such slide")

	// ErrNoSuchShape is returned when a shape index is out of range
	// for the slide's shape collection.
	ErrNoSuchShape = errors.New("no such shape")

	// ErrNoTextFrame is returned when a text operation targets a shape
	// that has no text body (e.g. a picture).
	ErrNoTextFrame = errors.New("shape has no text frame")

	// ErrNoSolidFill is returned when a fill attribute operation targets
	// a shape without a solid fill to modify.
	ErrNoSolidFill = errors.New("shape has no solid fill")

	// ErrMalformedPart is returned when a package part cannot be parsed
	// as the XML the engine expects.
	ErrMalformedPart = errors.New("malformed package part")

	// ErrNotPresentation is returned when the file is not a readable
	// PresentationML package.
	ErrNotPresentation = errors.New("not a pptx package")
)

// EMU conversion constants. PresentationML positions and sizes are in
// English Metric Units: 914400 EMU per inch.
const (
	EMUPerInch = 914400
	EMUPerCm   = 360000
	EMUPerPt   = 12700
)
