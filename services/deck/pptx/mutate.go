// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package pptx

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// TextBoxOptions configures AddTextBox.
type TextBoxOptions struct {
	// Text is the initial run content; empty leaves an empty paragraph.
	Text string

	// Name is the shape display name; defaults to "TextBox <id>".
	Name string

	// Fill is an optional RRGGBB solid fill color.
	Fill string

	// Color is an optional RRGGBB color applied to the text run.
	Color string
}

// AddTextBox appends a text box shape to a slide.
//
// # Description
//
// The shape is appended at the end of the shape tree, so every
// previously returned shape index on the slide remains valid and the
// new shape's index is the previous shape count.
//
// # Inputs
//
//   - slideIdx: Zero-based slide index.
//   - g: Position and size in EMU.
//   - opts: Text and styling options.
//
// # Outputs
//
//   - int: Index of the new shape.
//   - error: ErrNoSuchSlide on a bad index.
func (d *Document) AddTextBox(slideIdx int, g Geometry, opts TextBoxOptions) (int, error) {
	s, err := d.Slide(slideIdx)
	if err != nil {
		return 0, err
	}
	tree := s.spTree()
	if tree == nil {
		return 0, fmt.Errorf("%w: %s has no shape tree", ErrMalformedPart, s.partName)
	}

	id := s.nextShapeID()
	name := opts.Name
	if name == "" {
		name = fmt.Sprintf("TextBox %d", id)
	}

	sp := etree.NewElement("p:sp")
	nv := sp.CreateElement("p:nvSpPr")
	cNvPr := nv.CreateElement("p:cNvPr")
	cNvPr.CreateAttr("id", strconv.Itoa(id))
	cNvPr.CreateAttr("name", name)
	nv.CreateElement("p:cNvSpPr").CreateAttr("txBox", "1")
	nv.CreateElement("p:nvPr")

	spPr := sp.CreateElement("p:spPr")
	xfrm := spPr.CreateElement("a:xfrm")
	off := xfrm.CreateElement("a:off")
	off.CreateAttr("x", strconv.FormatInt(g.Left, 10))
	off.CreateAttr("y", strconv.FormatInt(g.Top, 10))
	ext := xfrm.CreateElement("a:ext")
	ext.CreateAttr("cx", strconv.FormatInt(g.Width, 10))
	ext.CreateAttr("cy", strconv.FormatInt(g.Height, 10))
	prst := spPr.CreateElement("a:prstGeom")
	prst.CreateAttr("prst", "rect")
	prst.CreateElement("a:avLst")

	txBody := sp.CreateElement("p:txBody")
	txBody.CreateElement("a:bodyPr")
	txBody.CreateElement("a:lstStyle")
	p := txBody.CreateElement("a:p")
	if opts.Text != "" {
		r := p.CreateElement("a:r")
		r.CreateElement("a:t").SetText(opts.Text)
	}

	tree.AddChild(sp)

	shape := &Shape{slide: s, el: sp}
	if opts.Fill != "" {
		if err := shape.SetFillColor(opts.Fill); err != nil {
			return 0, err
		}
	}
	if opts.Color != "" && opts.Text != "" {
		if err := shape.SetTextColor(opts.Color); err != nil {
			return 0, err
		}
	}
	return s.ShapeCount() - 1, nil
}

// AddPicture appends a picture shape backed by a new media part.
//
// # Description
//
// Stores the image bytes as a package media part, registers the content
// type and slide relationship, and appends a p:pic element referencing
// the part. Only raster formats are supported; ext selects the content
// type ("png", "jpeg", "gif").
//
// # Outputs
//
//   - int: Index of the new shape.
//   - error: Non-nil on bad indices or unsupported extension.
func (d *Document) AddPicture(slideIdx int, image []byte, ext string, g Geometry, altText string) (int, error) {
	s, err := d.Slide(slideIdx)
	if err != nil {
		return 0, err
	}
	tree := s.spTree()
	if tree == nil {
		return 0, fmt.Errorf("%w: %s has no shape tree", ErrMalformedPart, s.partName)
	}

	contentType, ok := imageContentTypes[ext]
	if !ok {
		return 0, fmt.Errorf("unsupported image extension %q", ext)
	}

	// Store the media part.
	mediaName := fmt.Sprintf("ppt/media/image%d.%s", d.nextPartIndex("ppt/media/image"), ext)
	d.addPart(mediaName, image)
	if err := d.ensureDefaultContentType(ext, contentType); err != nil {
		return 0, err
	}

	// Relate the slide to the media part.
	rid, err := d.addRelationship(relsPartFor(s.partName), relTypeImage,
		"../media/"+path.Base(mediaName))
	if err != nil {
		return 0, err
	}

	id := s.nextShapeID()
	pic := etree.NewElement("p:pic")
	nv := pic.CreateElement("p:nvPicPr")
	cNvPr := nv.CreateElement("p:cNvPr")
	cNvPr.CreateAttr("id", strconv.Itoa(id))
	cNvPr.CreateAttr("name", fmt.Sprintf("Picture %d", id))
	if altText != "" {
		cNvPr.CreateAttr("descr", altText)
	}
	cNvPicPr := nv.CreateElement("p:cNvPicPr")
	cNvPicPr.CreateElement("a:picLocks").CreateAttr("noChangeAspect", "1")
	nv.CreateElement("p:nvPr")

	blipFill := pic.CreateElement("p:blipFill")
	blip := blipFill.CreateElement("a:blip")
	blip.CreateAttr("r:embed", rid)
	blipFill.CreateElement("a:stretch").CreateElement("a:fillRect")

	spPr := pic.CreateElement("p:spPr")
	xfrm := spPr.CreateElement("a:xfrm")
	off := xfrm.CreateElement("a:off")
	off.CreateAttr("x", strconv.FormatInt(g.Left, 10))
	off.CreateAttr("y", strconv.FormatInt(g.Top, 10))
	extEl := xfrm.CreateElement("a:ext")
	extEl.CreateAttr("cx", strconv.FormatInt(g.Width, 10))
	extEl.CreateAttr("cy", strconv.FormatInt(g.Height, 10))
	prst := spPr.CreateElement("a:prstGeom")
	prst.CreateAttr("prst", "rect")
	prst.CreateElement("a:avLst")

	tree.AddChild(pic)
	return s.ShapeCount() - 1, nil
}

var imageContentTypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"gif":  "image/gif",
}

// RemoveShape removes the shape at the given index from a slide. All
// shape indices greater than shapeIdx shift down by one.
func (d *Document) RemoveShape(slideIdx, shapeIdx int) error {
	s, err := d.Slide(slideIdx)
	if err != nil {
		return err
	}
	sh, err := s.Shape(shapeIdx)
	if err != nil {
		return err
	}
	s.spTree().RemoveChild(sh.el)
	return nil
}

// ReorderShape moves a shape to a new position in the slide's shape
// order (which is also its z-order: higher positions render on top).
//
// # Description
//
// Callers must treat this as an arbitrary permutation of the slide's
// shape indices; no position is guaranteed stable afterwards.
func (d *Document) ReorderShape(slideIdx, shapeIdx, newPos int) error {
	s, err := d.Slide(slideIdx)
	if err != nil {
		return err
	}
	els := s.shapeElements()
	if shapeIdx < 0 || shapeIdx >= len(els) {
		return fmt.Errorf("%w: index %d of %d", ErrNoSuchShape, shapeIdx, len(els))
	}
	if newPos < 0 || newPos >= len(els) {
		return fmt.Errorf("%w: target position %d of %d", ErrNoSuchShape, newPos, len(els))
	}
	if newPos == shapeIdx {
		return nil
	}
	tree := s.spTree()
	el := els[shapeIdx]
	tree.RemoveChild(el)
	remaining := s.shapeElements()
	if newPos >= len(remaining) {
		tree.AddChild(el)
		return nil
	}
	tree.InsertChildAt(tokenIndex(tree, remaining[newPos]), el)
	return nil
}

// BringToFront moves a shape to the top of the z-order.
func (d *Document) BringToFront(slideIdx, shapeIdx int) error {
	s, err := d.Slide(slideIdx)
	if err != nil {
		return err
	}
	return d.ReorderShape(slideIdx, shapeIdx, s.ShapeCount()-1)
}

// SendToBack moves a shape to the bottom of the z-order.
func (d *Document) SendToBack(slideIdx, shapeIdx int) error {
	return d.ReorderShape(slideIdx, shapeIdx, 0)
}

// =============================================================================
// Slide-level mutations
// =============================================================================

// AddSlide appends a blank slide to the presentation.
//
// # Description
//
// Creates a new slide part using the layout of the first slide (or the
// first layout in the package for an empty deck), registers it in the
// content types, presentation relationships and p:sldIdLst, and appends
// it to the slide order. Existing slide indices are unchanged.
//
// # Outputs
//
//   - int: Index of the new slide.
//   - error: Non-nil when no slide layout exists to attach to.
func (d *Document) AddSlide() (int, error) {
	partName := fmt.Sprintf("ppt/slides/slide%d.xml", d.nextPartIndex("ppt/slides/slide"))
	d.addPart(partName, []byte(blankSlideXML))

	layoutTarget, err := d.defaultLayoutTarget()
	if err != nil {
		return 0, err
	}
	relsName := relsPartFor(partName)
	relsDom := etree.NewDocument()
	if err := relsDom.ReadFromString(emptyRelsXML); err != nil {
		return 0, fmt.Errorf("%w: rels template: %v", ErrMalformedPart, err)
	}
	d.addPart(relsName, nil)
	d.doms[relsName] = relsDom
	if _, err := d.addRelationship(relsName, relTypeSlideLayout, layoutTarget); err != nil {
		return 0, err
	}

	relID, err := d.registerSlidePart(partName)
	if err != nil {
		return 0, err
	}

	dom, err := d.dom(partName)
	if err != nil {
		return 0, err
	}
	s := &Slide{doc: d, partName: partName, relID: relID, dom: dom}
	s.layoutName = d.layoutNameFor(s)
	d.slides = append(d.slides, s)
	return len(d.slides) - 1, nil
}

// DuplicateSlide appends a copy of the slide at the given index.
//
// # Description
//
// The duplicate is a deep copy of the source slide's XML, appended at
// the end of the slide order with its own part and relationships.
// Notes-slide relationships are not carried over; layout and media
// relationships are shared with the source.
//
// # Outputs
//
//   - int: Index of the duplicate (always the new last slide).
func (d *Document) DuplicateSlide(slideIdx int) (int, error) {
	src, err := d.Slide(slideIdx)
	if err != nil {
		return 0, err
	}

	partName := fmt.Sprintf("ppt/slides/slide%d.xml", d.nextPartIndex("ppt/slides/slide"))
	dupDom := src.dom.Copy()
	d.addPart(partName, nil)
	d.doms[partName] = dupDom

	// Copy the source relationships, dropping notes-slide links: two
	// slides must not claim the same notes part.
	srcRels, err := d.dom(relsPartFor(src.partName))
	if err != nil {
		return 0, err
	}
	dupRels := srcRels.Copy()
	root := dupRels.Root()
	for _, rel := range root.ChildElements() {
		if rel.SelectAttrValue("Type", "") == relTypeNotesSlide {
			root.RemoveChild(rel)
		}
	}
	relsName := relsPartFor(partName)
	d.addPart(relsName, nil)
	d.doms[relsName] = dupRels

	relID, err := d.registerSlidePart(partName)
	if err != nil {
		return 0, err
	}
	s := &Slide{doc: d, partName: partName, relID: relID, dom: dupDom}
	s.layoutName = d.layoutNameFor(s)
	d.slides = append(d.slides, s)
	return len(d.slides) - 1, nil
}

// DeleteSlide removes the slide at the given index.
//
// # Description
//
// Removes the slide's sldId entry, presentation relationship, content
// type override, and parts. Every cached index into the deleted slide's
// shape collection is unconditionally stale; slide indices after the
// deleted one shift down by one. Media parts are kept: they may be
// shared with other slides.
func (d *Document) DeleteSlide(slideIdx int) error {
	s, err := d.Slide(slideIdx)
	if err != nil {
		return err
	}

	pres, err := d.dom(presentationPart)
	if err != nil {
		return err
	}
	if lst := child(pres.Root(), "sldIdLst"); lst != nil {
		for _, sldID := range lst.ChildElements() {
			if attrNS(sldID, "r", "id") == s.relID {
				lst.RemoveChild(sldID)
				break
			}
		}
	}

	rels, err := d.dom(presentationRels)
	if err != nil {
		return err
	}
	for _, rel := range rels.Root().ChildElements() {
		if rel.SelectAttrValue("Id", "") == s.relID {
			rels.Root().RemoveChild(rel)
			break
		}
	}

	ct, err := d.dom(contentTypesPart)
	if err != nil {
		return err
	}
	for _, ov := range ct.Root().ChildElements() {
		if ov.Tag == "Override" && ov.SelectAttrValue("PartName", "") == "/"+s.partName {
			ct.Root().RemoveChild(ov)
			break
		}
	}

	d.removePart(relsPartFor(s.partName))
	d.removePart(s.partName)
	d.slides = append(d.slides[:slideIdx], d.slides[slideIdx+1:]...)
	return nil
}

// ReorderSlides moves the slide at index from to index to, shifting the
// slides in between. Callers must treat the result as an arbitrary
// permutation of slide indices.
func (d *Document) ReorderSlides(from, to int) error {
	n := len(d.slides)
	if from < 0 || from >= n {
		return fmt.Errorf("%w: index %d of %d", ErrNoSuchSlide, from, n)
	}
	if to < 0 || to >= n {
		return fmt.Errorf("%w: target position %d of %d", ErrNoSuchSlide, to, n)
	}
	if from == to {
		return nil
	}

	s := d.slides[from]
	d.slides = append(d.slides[:from], d.slides[from+1:]...)
	rest := make([]*Slide, 0, n)
	rest = append(rest, d.slides[:to]...)
	rest = append(rest, s)
	rest = append(rest, d.slides[to:]...)
	d.slides = rest

	// Rebuild sldIdLst in the new order.
	pres, err := d.dom(presentationPart)
	if err != nil {
		return err
	}
	lst := child(pres.Root(), "sldIdLst")
	if lst == nil {
		return fmt.Errorf("%w: presentation has no sldIdLst", ErrMalformedPart)
	}
	byRel := make(map[string]*etree.Element, n)
	for _, sldID := range lst.ChildElements() {
		byRel[attrNS(sldID, "r", "id")] = sldID
	}
	for _, sldID := range byRel {
		lst.RemoveChild(sldID)
	}
	for _, slide := range d.slides {
		if sldID, ok := byRel[slide.relID]; ok {
			lst.AddChild(sldID)
		}
	}
	return nil
}

// =============================================================================
// Registration helpers
// =============================================================================

// nextPartIndex returns one more than the highest numeric suffix among
// parts named <prefix><N>.<ext>.
func (d *Document) nextPartIndex(prefix string) int {
	max := 0
	for name := range d.parts {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		rest := strings.TrimPrefix(name, prefix)
		if dot := strings.IndexByte(rest, '.'); dot > 0 {
			rest = rest[:dot]
		}
		if n, err := strconv.Atoi(rest); err == nil && n > max {
			max = n
		}
	}
	return max + 1
}

// addRelationship appends a relationship to a rels part and returns the
// assigned id.
func (d *Document) addRelationship(relsName, relType, target string) (string, error) {
	rels, err := d.dom(relsName)
	if err != nil {
		return "", err
	}
	maxID := 0
	for _, rel := range rels.Root().ChildElements() {
		id := rel.SelectAttrValue("Id", "")
		if n, err := strconv.Atoi(strings.TrimPrefix(id, "rId")); err == nil && n > maxID {
			maxID = n
		}
	}
	rid := fmt.Sprintf("rId%d", maxID+1)
	rel := rels.Root().CreateElement("Relationship")
	rel.CreateAttr("Id", rid)
	rel.CreateAttr("Type", relType)
	rel.CreateAttr("Target", target)
	return rid, nil
}

// ensureDefaultContentType adds a Default content-type mapping for an
// extension when the package lacks one.
func (d *Document) ensureDefaultContentType(ext, contentType string) error {
	ct, err := d.dom(contentTypesPart)
	if err != nil {
		return err
	}
	for _, def := range ct.Root().ChildElements() {
		if def.Tag == "Default" && strings.EqualFold(def.SelectAttrValue("Extension", ""), ext) {
			return nil
		}
	}
	def := etree.NewElement("Default")
	def.CreateAttr("Extension", ext)
	def.CreateAttr("ContentType", contentType)
	ct.Root().InsertChildAt(0, def)
	return nil
}

// registerSlidePart wires a new slide part into the content types, the
// presentation relationships and the slide id list, returning the new
// relationship id.
func (d *Document) registerSlidePart(partName string) (string, error) {
	ct, err := d.dom(contentTypesPart)
	if err != nil {
		return "", err
	}
	ov := ct.Root().CreateElement("Override")
	ov.CreateAttr("PartName", "/"+partName)
	ov.CreateAttr("ContentType", contentTypeSlide)

	rid, err := d.addRelationship(presentationRels, relTypeSlide,
		strings.TrimPrefix(partName, "ppt/"))
	if err != nil {
		return "", err
	}

	pres, err := d.dom(presentationPart)
	if err != nil {
		return "", err
	}
	lst := child(pres.Root(), "sldIdLst")
	if lst == nil {
		lst = etree.NewElement("p:sldIdLst")
		pos := 0
		if masters := child(pres.Root(), "sldMasterIdLst"); masters != nil {
			pos = tokenIndex(pres.Root(), masters) + 1
		}
		pres.Root().InsertChildAt(pos, lst)
	}
	maxSlideID := 255 // slide ids start at 256 by convention
	for _, sldID := range lst.ChildElements() {
		if n, err := strconv.Atoi(sldID.SelectAttrValue("id", "")); err == nil && n > maxSlideID {
			maxSlideID = n
		}
	}
	sldID := lst.CreateElement("p:sldId")
	sldID.CreateAttr("id", strconv.Itoa(maxSlideID+1))
	sldID.CreateAttr("r:id", rid)
	return rid, nil
}

// defaultLayoutTarget returns a layout relationship target for new
// slides: the first slide's layout when one exists, otherwise the first
// layout part in the package.
func (d *Document) defaultLayoutTarget() (string, error) {
	if len(d.slides) > 0 {
		rels, err := d.dom(relsPartFor(d.slides[0].partName))
		if err == nil {
			for _, rel := range rels.Root().ChildElements() {
				if rel.SelectAttrValue("Type", "") == relTypeSlideLayout {
					return rel.SelectAttrValue("Target", ""), nil
				}
			}
		}
	}
	best := ""
	for name := range d.parts {
		if strings.HasPrefix(name, "ppt/slideLayouts/slideLayout") && strings.HasSuffix(name, ".xml") {
			if best == "" || name < best {
				best = name
			}
		}
	}
	if best == "" {
		return "", fmt.Errorf("%w: package has no slide layouts", ErrMalformedPart)
	}
	return "../slideLayouts/" + path.Base(best), nil
}
