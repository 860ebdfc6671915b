// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
)

// Well-known part names and relationship types.
const (
	presentationPart = "ppt/presentation.xml"
	presentationRels = "ppt/_rels/presentation.xml.rels"
	contentTypesPart = "[Content_Types].xml"

	relTypeSlide       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeSlideLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeNotesSlide  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"
	relTypeImage       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"

	contentTypeSlide = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
)

// Document is an open presentation package.
//
// # Description
//
// Document holds every package part in memory. Parsed parts (the
// presentation, its relationships, content types, slides and slide
// relationships) live as XML trees; everything else is carried as raw
// bytes and written back verbatim on Save.
//
// # Thread Safety
//
// NOT safe for concurrent use.
type Document struct {
	path      string
	parts     map[string][]byte
	partOrder []string
	doms      map[string]*etree.Document
	slides    []*Slide

	// layoutNames caches layout part name -> display name lookups.
	layoutNames map[string]string
}

// Open reads a .pptx package into memory.
//
// # Description
//
// Loads every part of the package and resolves the slide list in
// presentation order (the order of p:sldIdLst, which is the order
// external callers perceive as slide index). The source file is only
// ever read; Open performs no writes.
//
// # Inputs
//
//   - filePath: Path to the .pptx file.
//
// # Outputs
//
//   - *Document: The open document.
//   - error: ErrNotPresentation if the file is not a readable package,
//     ErrMalformedPart if a required part cannot be parsed.
func Open(filePath string) (*Document, error) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPresentation, err)
	}
	defer r.Close()

	parts := make(map[string][]byte, len(r.File))
	order := make([]string, 0, len(r.File))
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open part %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read part %s: %w", f.Name, err)
		}
		parts[f.Name] = data
		order = append(order, f.Name)
	}

	return load(filePath, parts, order)
}

// load wires a Document from an in-memory part set. Shared by Open and New.
func load(filePath string, parts map[string][]byte, order []string) (*Document, error) {
	d := &Document{
		path:        filePath,
		parts:       parts,
		partOrder:   order,
		doms:        make(map[string]*etree.Document),
		layoutNames: make(map[string]string),
	}

	if _, ok := parts[presentationPart]; !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrNotPresentation, presentationPart)
	}

	pres, err := d.dom(presentationPart)
	if err != nil {
		return nil, err
	}
	rels, err := d.dom(presentationRels)
	if err != nil {
		return nil, err
	}

	// Relationship id -> target, relative to ppt/.
	targets := make(map[string]string)
	for _, rel := range rels.Root().ChildElements() {
		targets[rel.SelectAttrValue("Id", "")] = rel.SelectAttrValue("Target", "")
	}

	lst := child(pres.Root(), "sldIdLst")
	if lst == nil {
		// A deck with no slides has no sldIdLst; that is a valid package.
		return d, nil
	}
	for _, sldID := range lst.ChildElements() {
		if sldID.Tag != "sldId" {
			continue
		}
		rid := attrNS(sldID, "r", "id")
		target, ok := targets[rid]
		if !ok {
			return nil, fmt.Errorf("%w: sldId %s has no relationship", ErrMalformedPart, rid)
		}
		partName := resolvePart("ppt", target)
		dom, err := d.dom(partName)
		if err != nil {
			return nil, err
		}
		s := &Slide{doc: d, partName: partName, relID: rid, dom: dom}
		s.layoutName = d.layoutNameFor(s)
		d.slides = append(d.slides, s)
	}

	return d, nil
}

// Path returns the file path the document was opened from.
func (d *Document) Path() string { return d.path }

// SlideCount returns the number of slides in presentation order.
func (d *Document) SlideCount() int { return len(d.slides) }

// Slides returns the slides in presentation order.
func (d *Document) Slides() []*Slide { return d.slides }

// Slide returns the slide at the given zero-based index.
func (d *Document) Slide(i int) (*Slide, error) {
	if i < 0 || i >= len(d.slides) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrNoSuchSlide, i, len(d.slides))
	}
	return d.slides[i], nil
}

// Save writes the package to the given path.
//
// # Description
//
// Serializes every parsed part back into the package, carries all other
// parts through unchanged, writes the result to a temporary file next to
// the target and renames it into place. On any failure the target file
// is left untouched.
//
// # Inputs
//
//   - filePath: Destination path (usually the path the document was
//     opened from).
//
// # Outputs
//
//   - error: Non-nil if serialization or any disk write fails.
func (d *Document) Save(filePath string) error {
	// Flush parsed XML trees into the part map.
	for name, dom := range d.doms {
		data, err := dom.WriteToBytes()
		if err != nil {
			return fmt.Errorf("serialize part %s: %w", name, err)
		}
		d.parts[name] = data
	}

	tmp, err := os.CreateTemp(filepath.Dir(filePath), ".deckhand-*.pptx")
	if err != nil {
		return fmt.Errorf("create temp package: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	zw := zip.NewWriter(tmp)
	for _, name := range d.partOrder {
		w, err := zw.Create(name)
		if err != nil {
			tmp.Close()
			return fmt.Errorf("create zip entry %s: %w", name, err)
		}
		if _, err := w.Write(d.parts[name]); err != nil {
			tmp.Close()
			return fmt.Errorf("write zip entry %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("finalize package: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync package: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close package: %w", err)
	}
	if err := os.Rename(tmpName, filePath); err != nil {
		return fmt.Errorf("replace %s: %w", filePath, err)
	}
	return nil
}

// =============================================================================
// Part plumbing
// =============================================================================

// dom returns the parsed XML tree for a part, parsing and caching it on
// first access.
func (d *Document) dom(partName string) (*etree.Document, error) {
	if dom, ok := d.doms[partName]; ok {
		return dom, nil
	}
	data, ok := d.parts[partName]
	if !ok {
		return nil, fmt.Errorf("%w: missing part %s", ErrMalformedPart, partName)
	}
	dom := etree.NewDocument()
	if err := dom.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPart, partName, err)
	}
	if dom.Root() == nil {
		return nil, fmt.Errorf("%w: %s: empty document", ErrMalformedPart, partName)
	}
	d.doms[partName] = dom
	return dom, nil
}

// addPart registers a new raw part at the end of the package.
func (d *Document) addPart(name string, data []byte) {
	if _, exists := d.parts[name]; !exists {
		d.partOrder = append(d.partOrder, name)
	}
	d.parts[name] = data
}

// removePart drops a part and any parsed tree for it.
func (d *Document) removePart(name string) {
	delete(d.parts, name)
	delete(d.doms, name)
	for i, n := range d.partOrder {
		if n == name {
			d.partOrder = append(d.partOrder[:i], d.partOrder[i+1:]...)
			break
		}
	}
}

// relsPartFor returns the relationships part name for a given part,
// e.g. ppt/slides/slide1.xml -> ppt/slides/_rels/slide1.xml.rels.
func relsPartFor(partName string) string {
	dir, base := path.Split(partName)
	return dir + "_rels/" + base + ".rels"
}

// resolvePart resolves a relationship target against a base directory,
// e.g. ("ppt/slides", "../slideLayouts/slideLayout1.xml") ->
// "ppt/slideLayouts/slideLayout1.xml". Absolute targets are taken from
// the package root.
func resolvePart(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Clean(path.Join(baseDir, target))
}

// layoutNameFor resolves the display name of a slide's layout, caching
// per layout part. Missing layouts yield an empty name rather than an
// error: the layout name is descriptive, not structural.
func (d *Document) layoutNameFor(s *Slide) string {
	relsName := relsPartFor(s.partName)
	rels, err := d.dom(relsName)
	if err != nil {
		return ""
	}
	var layoutPart string
	for _, rel := range rels.Root().ChildElements() {
		if rel.SelectAttrValue("Type", "") == relTypeSlideLayout {
			layoutPart = resolvePart(path.Dir(s.partName), rel.SelectAttrValue("Target", ""))
			break
		}
	}
	if layoutPart == "" {
		return ""
	}
	if name, ok := d.layoutNames[layoutPart]; ok {
		return name
	}
	name := ""
	if dom, err := d.dom(layoutPart); err == nil {
		if cSld := child(dom.Root(), "cSld"); cSld != nil {
			name = cSld.SelectAttrValue("name", "")
		}
	}
	d.layoutNames[layoutPart] = name
	return name
}

// =============================================================================
// XML helpers
// =============================================================================

// child returns the first child element with the given local name,
// ignoring the namespace prefix.
func child(el *etree.Element, tag string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// findFirst returns the first descendant element with the given local
// name, in document order.
func findFirst(el *etree.Element, tag string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			return c
		}
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// findAll appends all descendant elements with the given local name, in
// document order.
func findAll(el *etree.Element, tag string, out []*etree.Element) []*etree.Element {
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			out = append(out, c)
		}
		out = findAll(c, tag, out)
	}
	return out
}

// attrNS returns the value of a namespaced attribute such as r:id.
func attrNS(el *etree.Element, space, key string) string {
	for _, a := range el.Attr {
		if a.Space == space && a.Key == key {
			return a.Value
		}
	}
	return ""
}

// tokenIndex returns the position of a child token within its parent,
// or -1 if the token is not a direct child.
func tokenIndex(parent *etree.Element, t etree.Token) int {
	for i, c := range parent.Child {
		if c == t {
			return i
		}
	}
	return -1
}
