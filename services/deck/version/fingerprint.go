// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package version

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"log/slog"
	"strconv"
)

// Compute fingerprints a presentation's structural and textual state.
//
// # Description
//
// Walks slides in presentation order and shapes in document order —
// the exact orders that define the indices external callers hold — and
// digests, with unambiguous separators: the slide count, then per slide
// the layout display name, then per shape the geometry token
// "left:top:width:height" in raw EMU and the shape's concatenated text.
// The digest is SHA-256, truncated to DigestLength hex characters.
//
// A shape whose geometry cannot be read contributes the canonical
// error-marker token instead and is recorded as a warning; the scan
// continues (incomplete is better than corrupted, and the marker is
// value-stable so determinism holds).
//
// # Inputs
//
//   - ctx: Cancellation. A cancelled scan returns a partial Result with
//     Complete=false; partial results are not comparable to full ones.
//   - p: Read-only presentation access. Compute never mutates it.
//
// # Outputs
//
//   - *Result: Never nil.
//   - error: Reserved for future structural failures; currently always
//     nil (shape-level failures degrade to marker tokens).
func Compute(ctx context.Context, p Presentation) (*Result, error) {
	h := sha256.New()
	field := func(s string) {
		io.WriteString(h, s)
		io.WriteString(h, fieldSep)
	}

	res := &Result{Complete: true}
	slides := p.Slides()
	field(strconv.Itoa(len(slides)))

	for si, slide := range slides {
		if err := ctx.Err(); err != nil {
			res.Complete = false
			res.Digest = digest(h)
			slog.Warn("Fingerprint scan cancelled; partial digest",
				"slides_scanned", si,
				"slides_total", len(slides))
			return res, nil
		}

		io.WriteString(h, recordSep)
		field(slide.LayoutName())

		for hi, shape := range slide.Shapes() {
			io.WriteString(h, recordSep)
			g, err := shape.Geometry()
			if err != nil {
				field(errMarkerToken)
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("slide %d shape %d: %v", si, hi, err))
				slog.Warn("Unreadable shape during fingerprint scan",
					"slide", si,
					"shape", hi,
					"error", err)
				continue
			}
			field(fmt.Sprintf("%d:%d:%d:%d", g.Left, g.Top, g.Width, g.Height))
			field(shape.Text())
		}
	}

	res.Digest = digest(h)
	return res, nil
}

// digest finalizes the running hash into the truncated hex token.
func digest(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))[:DigestLength]
}
