// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package version

import "github.com/DeckhandAI/deckhand/services/deck/pptx"

// FromDocument adapts an open pptx document to the Presentation
// interface Compute consumes.
func FromDocument(d *pptx.Document) Presentation {
	return docAdapter{d}
}

type docAdapter struct{ d *pptx.Document }

func (a docAdapter) Slides() []Slide {
	src := a.d.Slides()
	out := make([]Slide, len(src))
	for i, s := range src {
		out[i] = slideAdapter{s}
	}
	return out
}

type slideAdapter struct{ s *pptx.Slide }

func (a slideAdapter) LayoutName() string { return a.s.LayoutName() }

func (a slideAdapter) Shapes() []Shape {
	src := a.s.Shapes()
	out := make([]Shape, len(src))
	for i, sh := range src {
		out[i] = sh
	}
	return out
}
