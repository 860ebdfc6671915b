// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package pptx

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
)

// shapeTags are the p:spTree children that count as shapes. Their
// document order is the shape order external callers index by, and also
// the z-order (later elements render on top).
var shapeTags = map[string]bool{
	"sp":           true,
	"pic":          true,
	"graphicFrame": true,
	"cxnSp":        true,
	"grpSp":        true,
}

// Slide is one slide of an open document.
type Slide struct {
	doc        *Document
	partName   string
	relID      string
	dom        *etree.Document
	layoutName string
}

// PartName returns the package part backing this slide.
func (s *Slide) PartName() string { return s.partName }

// LayoutName returns the display name of the slide's layout, or "" when
// the layout cannot be resolved.
func (s *Slide) LayoutName() string { return s.layoutName }

// spTree returns the slide's shape tree element.
func (s *Slide) spTree() *etree.Element {
	return child(child(s.dom.Root(), "cSld"), "spTree")
}

// shapeElements returns the shape elements in document order.
func (s *Slide) shapeElements() []*etree.Element {
	tree := s.spTree()
	if tree == nil {
		return nil
	}
	var els []*etree.Element
	for _, c := range tree.ChildElements() {
		if shapeTags[c.Tag] {
			els = append(els, c)
		}
	}
	return els
}

// Shapes returns the slide's shapes in document order. The returned
// index positions are the shape indices callers use in tool arguments;
// they are valid only until the next structural mutation.
func (s *Slide) Shapes() []*Shape {
	els := s.shapeElements()
	shapes := make([]*Shape, len(els))
	for i, el := range els {
		shapes[i] = &Shape{slide: s, el: el}
	}
	return shapes
}

// ShapeCount returns the number of shapes on the slide.
func (s *Slide) ShapeCount() int { return len(s.shapeElements()) }

// Shape returns the shape at the given zero-based index.
func (s *Slide) Shape(i int) (*Shape, error) {
	els := s.shapeElements()
	if i < 0 || i >= len(els) {
		return nil, fmt.Errorf("%w: index %d of %d on %s", ErrNoSuchShape, i, len(els), s.partName)
	}
	return &Shape{slide: s, el: els[i]}, nil
}

// nextShapeID returns the next free cNvPr id on the slide. Shape ids
// must be unique per slide; id 1 is reserved for the group root.
func (s *Slide) nextShapeID() int {
	max := 1
	for _, el := range findAll(s.dom.Root(), "cNvPr", nil) {
		if id, err := strconv.Atoi(el.SelectAttrValue("id", "")); err == nil && id > max {
			max = id
		}
	}
	return max + 1
}
