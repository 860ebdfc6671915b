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
	"strings"

	"github.com/beevik/etree"
)

// Geometry is a shape's position and size in EMU.
//
// Left/Top are the offset of the shape's bounding box from the slide
// origin; Width/Height are its extents. Values are raw EMU exactly as
// stored in the package: no rounding, no derived units.
type Geometry struct {
	Left   int64 `json:"left"`
	Top    int64 `json:"top"`
	Width  int64 `json:"width"`
	Height int64 `json:"height"`
}

// Shape is one shape on a slide: an autoshape, picture, graphic frame,
// connector or group.
type Shape struct {
	slide *Slide
	el    *etree.Element
}

// Kind returns the shape's element kind: "sp", "pic", "graphicFrame",
// "cxnSp" or "grpSp".
func (sh *Shape) Kind() string { return sh.el.Tag }

// Name returns the shape's display name from its cNvPr element.
func (sh *Shape) Name() string {
	if cNvPr := findFirst(sh.el, "cNvPr"); cNvPr != nil {
		return cNvPr.SelectAttrValue("name", "")
	}
	return ""
}

// AltText returns the shape's alternative text (cNvPr/@descr), "" if unset.
func (sh *Shape) AltText() string {
	if cNvPr := findFirst(sh.el, "cNvPr"); cNvPr != nil {
		return cNvPr.SelectAttrValue("descr", "")
	}
	return ""
}

// IsPicture reports whether the shape is a picture element.
func (sh *Shape) IsPicture() bool { return sh.el.Tag == "pic" }

// Geometry returns the shape's position and size in raw EMU.
//
// # Description
//
// Reads a:off and a:ext from the shape's transform. Shapes without an
// explicit transform (placeholders inheriting layout geometry) report
// zero geometry with no error. Malformed coordinate values are a
// structural read error.
//
// # Outputs
//
//   - Geometry: Raw EMU coordinates; zero value when no transform exists.
//   - error: Non-nil when a coordinate attribute is present but unparseable.
func (sh *Shape) Geometry() (Geometry, error) {
	xfrm := findFirst(sh.el, "xfrm")
	if xfrm == nil {
		return Geometry{}, nil
	}
	var g Geometry
	var err error
	if off := child(xfrm, "off"); off != nil {
		if g.Left, err = emuAttr(off, "x"); err != nil {
			return Geometry{}, err
		}
		if g.Top, err = emuAttr(off, "y"); err != nil {
			return Geometry{}, err
		}
	}
	if ext := child(xfrm, "ext"); ext != nil {
		if g.Width, err = emuAttr(ext, "cx"); err != nil {
			return Geometry{}, err
		}
		if g.Height, err = emuAttr(ext, "cy"); err != nil {
			return Geometry{}, err
		}
	}
	return g, nil
}

// emuAttr parses a single EMU attribute value.
func emuAttr(el *etree.Element, key string) (int64, error) {
	raw := el.SelectAttrValue(key, "0")
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad %s coordinate %q", ErrMalformedPart, key, raw)
	}
	return v, nil
}

// SetPosition moves the shape to the given offset in EMU.
func (sh *Shape) SetPosition(left, top int64) error {
	xfrm, err := sh.ensureXfrm()
	if err != nil {
		return err
	}
	off := child(xfrm, "off")
	if off == nil {
		off = etree.NewElement("a:off")
		xfrm.InsertChildAt(0, off)
	}
	off.CreateAttr("x", strconv.FormatInt(left, 10))
	off.CreateAttr("y", strconv.FormatInt(top, 10))
	return nil
}

// SetSize resizes the shape to the given extents in EMU.
func (sh *Shape) SetSize(width, height int64) error {
	xfrm, err := sh.ensureXfrm()
	if err != nil {
		return err
	}
	ext := child(xfrm, "ext")
	if ext == nil {
		ext = xfrm.CreateElement("a:ext")
	}
	ext.CreateAttr("cx", strconv.FormatInt(width, 10))
	ext.CreateAttr("cy", strconv.FormatInt(height, 10))
	return nil
}

// ensureXfrm returns the shape's transform element, creating an empty
// one inside spPr when the shape inherits geometry.
func (sh *Shape) ensureXfrm() (*etree.Element, error) {
	if xfrm := findFirst(sh.el, "xfrm"); xfrm != nil {
		return xfrm, nil
	}
	spPr := findFirst(sh.el, "spPr")
	if spPr == nil {
		return nil, fmt.Errorf("%w: shape %q has no spPr", ErrMalformedPart, sh.Name())
	}
	xfrm := etree.NewElement("a:xfrm")
	spPr.InsertChildAt(0, xfrm)
	return xfrm, nil
}

// TextRuns returns the text content of every run in the shape's text
// body, in document order. Shapes without a text body return nil.
func (sh *Shape) TextRuns() []string {
	txBody := findFirst(sh.el, "txBody")
	if txBody == nil {
		return nil
	}
	var runs []string
	for _, t := range findAll(txBody, "t", nil) {
		runs = append(runs, t.Text())
	}
	return runs
}

// Text returns the concatenated text-run contents of the shape. Shapes
// with a text frame but no runs return ""; so do shapes with no text
// capability at all.
func (sh *Shape) Text() string {
	return strings.Join(sh.TextRuns(), "")
}

// SetText replaces the shape's text body content with a single
// paragraph containing one run.
//
// # Outputs
//
//   - error: ErrNoTextFrame if the shape has no text body.
func (sh *Shape) SetText(text string) error {
	txBody := findFirst(sh.el, "txBody")
	if txBody == nil {
		return fmt.Errorf("%w: %s %q", ErrNoTextFrame, sh.Kind(), sh.Name())
	}
	for _, p := range txBody.ChildElements() {
		if p.Tag == "p" {
			txBody.RemoveChild(p)
		}
	}
	p := txBody.CreateElement("a:p")
	r := p.CreateElement("a:r")
	r.CreateElement("a:t").SetText(text)
	return nil
}

// FillColor returns the shape's solid fill color as uppercase RRGGBB
// hex, and whether a solid fill was found on the shape properties.
func (sh *Shape) FillColor() (string, bool) {
	spPr := findFirst(sh.el, "spPr")
	if spPr == nil {
		return "", false
	}
	fill := child(spPr, "solidFill")
	if fill == nil {
		return "", false
	}
	if clr := child(fill, "srgbClr"); clr != nil {
		return strings.ToUpper(clr.SelectAttrValue("val", "")), true
	}
	return "", false
}

// SetFillColor sets a solid fill of the given RRGGBB hex color on the
// shape, replacing any existing fill choice.
func (sh *Shape) SetFillColor(hex string) error {
	spPr := findFirst(sh.el, "spPr")
	if spPr == nil {
		return fmt.Errorf("%w: shape %q has no spPr", ErrMalformedPart, sh.Name())
	}
	for _, tag := range []string{"solidFill", "noFill", "gradFill", "blipFill", "pattFill", "grpFill"} {
		if old := child(spPr, tag); old != nil {
			spPr.RemoveChild(old)
		}
	}
	fill := spPr.CreateElement("a:solidFill")
	fill.CreateElement("a:srgbClr").CreateAttr("val", strings.ToUpper(hex))
	return nil
}

// SetOpacity injects an alpha value into the shape's solid fill.
//
// # Description
//
// OOXML expresses opacity as an a:alpha child of the fill color in
// thousandths of a percent (val="50000" is 50%). Existing alpha values
// are replaced.
//
// # Inputs
//
//   - percent: Opacity in [0,100].
//
// # Outputs
//
//   - error: ErrNoSolidFill when the shape has no solid srgb fill.
func (sh *Shape) SetOpacity(percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("opacity %d out of range [0,100]", percent)
	}
	spPr := findFirst(sh.el, "spPr")
	fill := child(spPr, "solidFill")
	if fill == nil {
		return fmt.Errorf("%w: %s %q", ErrNoSolidFill, sh.Kind(), sh.Name())
	}
	clr := child(fill, "srgbClr")
	if clr == nil {
		return fmt.Errorf("%w: %s %q", ErrNoSolidFill, sh.Kind(), sh.Name())
	}
	if old := child(clr, "alpha"); old != nil {
		clr.RemoveChild(old)
	}
	clr.CreateElement("a:alpha").CreateAttr("val", strconv.Itoa(percent*1000))
	return nil
}

// TextColors returns the explicit srgb colors of the shape's text runs,
// in document order. Runs without an explicit color are skipped.
func (sh *Shape) TextColors() []string {
	txBody := findFirst(sh.el, "txBody")
	if txBody == nil {
		return nil
	}
	var colors []string
	for _, rPr := range findAll(txBody, "rPr", nil) {
		if fill := child(rPr, "solidFill"); fill != nil {
			if clr := child(fill, "srgbClr"); clr != nil {
				colors = append(colors, strings.ToUpper(clr.SelectAttrValue("val", "")))
			}
		}
	}
	return colors
}

// SetTextColor sets an explicit srgb color on every run in the shape's
// text body.
func (sh *Shape) SetTextColor(hex string) error {
	txBody := findFirst(sh.el, "txBody")
	if txBody == nil {
		return fmt.Errorf("%w: %s %q", ErrNoTextFrame, sh.Kind(), sh.Name())
	}
	for _, r := range findAll(txBody, "r", nil) {
		rPr := child(r, "rPr")
		if rPr == nil {
			rPr = etree.NewElement("a:rPr")
			r.InsertChildAt(0, rPr)
		}
		if old := child(rPr, "solidFill"); old != nil {
			rPr.RemoveChild(old)
		}
		fill := rPr.CreateElement("a:solidFill")
		fill.CreateElement("a:srgbClr").CreateAttr("val", strings.ToUpper(hex))
	}
	return nil
}
