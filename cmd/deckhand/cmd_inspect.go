// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DeckhandAI/deckhand/pkg/ux"
	"github.com/DeckhandAI/deckhand/services/deck/pptx"
	"github.com/DeckhandAI/deckhand/services/deck/version"
)

// slideSummary is one slide row in the inspect payload.
type slideSummary struct {
	Index      int    `json:"index"`
	LayoutName string `json:"layout_name"`
	ShapeCount int    `json:"shape_count"`
}

type inspectPayload struct {
	Path       string         `json:"path"`
	SlideCount int            `json:"slide_count"`
	Slides     []slideSummary `json:"slides"`
	Version    string         `json:"presentation_version"`
	Complete   bool           `json:"analysis_complete"`
	Warnings   []string       `json:"warnings,omitempty"`
}

// shapeSummary is one shape row in the list-shapes payload.
type shapeSummary struct {
	Index    int           `json:"index"`
	Kind     string        `json:"kind"`
	Name     string        `json:"name"`
	Geometry pptx.Geometry `json:"geometry"`
	Text     string        `json:"text,omitempty"`
	AltText  string        `json:"alt_text,omitempty"`
}

type listShapesPayload struct {
	Path   string         `json:"path"`
	Slide  int            `json:"slide"`
	Shapes []shapeSummary `json:"shapes"`
}

type fingerprintPayload struct {
	Path     string   `json:"path"`
	Version  string   `json:"presentation_version"`
	Complete bool     `json:"analysis_complete"`
	Warnings []string `json:"warnings,omitempty"`
}

// runNew creates a blank single-slide presentation.
func runNew(cmd *cobra.Command, args []string) error {
	path := args[0]
	doc, err := pptx.New()
	if err != nil {
		return err
	}
	if err := doc.Save(path); err != nil {
		return err
	}
	fp, err := version.Compute(cmd.Context(), version.FromDocument(doc))
	if err != nil {
		return err
	}
	if flagPretty {
		ux.Success(fmt.Sprintf("created %s (version %s)", path, fp.Digest))
		return nil
	}
	return emitOK(fingerprintPayload{
		Path:     path,
		Version:  fp.Digest,
		Complete: fp.Complete,
		Warnings: fp.Warnings,
	})
}

// runInspect summarizes a deck: slides, layouts, shape counts and the
// state fingerprint.
func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	doc, err := pptx.Open(path)
	if err != nil {
		return err
	}

	payload := inspectPayload{
		Path:       path,
		SlideCount: doc.SlideCount(),
		Slides:     []slideSummary{},
	}
	for i, slide := range doc.Slides() {
		payload.Slides = append(payload.Slides, slideSummary{
			Index:      i,
			LayoutName: slide.LayoutName(),
			ShapeCount: slide.ShapeCount(),
		})
	}

	fp, err := version.Compute(cmd.Context(), version.FromDocument(doc))
	if err != nil {
		return err
	}
	payload.Version = fp.Digest
	payload.Complete = fp.Complete
	payload.Warnings = fp.Warnings

	if flagPretty {
		ux.Title(path)
		for _, s := range payload.Slides {
			ux.Row(ux.IconBullet,
				fmt.Sprintf("slide %d: %s", s.Index, s.LayoutName),
				fmt.Sprintf("%d shapes", s.ShapeCount))
		}
		ux.Muted(fmt.Sprintf("version %s", payload.Version))
		return nil
	}
	return emitOK(payload)
}

// runListShapes lists the shapes on one slide.
func runListShapes(cmd *cobra.Command, args []string) error {
	path := args[0]
	doc, err := pptx.Open(path)
	if err != nil {
		return err
	}
	slide, err := doc.Slide(flagSlide)
	if err != nil {
		return err
	}

	payload := listShapesPayload{Path: path, Slide: flagSlide, Shapes: []shapeSummary{}}
	for i, shape := range slide.Shapes() {
		row := shapeSummary{
			Index:   i,
			Kind:    shape.Kind(),
			Name:    shape.Name(),
			Text:    shape.Text(),
			AltText: shape.AltText(),
		}
		// Unreadable geometry degrades to a zero box; the row survives.
		if g, err := shape.Geometry(); err == nil {
			row.Geometry = g
		}
		payload.Shapes = append(payload.Shapes, row)
	}

	if flagPretty {
		ux.Title(fmt.Sprintf("%s slide %d", path, flagSlide))
		for _, s := range payload.Shapes {
			note := fmt.Sprintf("%dx%d @ %d,%d",
				s.Geometry.Width, s.Geometry.Height, s.Geometry.Left, s.Geometry.Top)
			ux.Row(ux.IconBullet, fmt.Sprintf("%d %s %q", s.Index, s.Kind, s.Name), note)
		}
		return nil
	}
	return emitOK(payload)
}

// runFingerprint computes and reports the presentation fingerprint.
func runFingerprint(cmd *cobra.Command, args []string) error {
	path := args[0]
	doc, err := pptx.Open(path)
	if err != nil {
		return err
	}
	fp, err := version.Compute(cmd.Context(), version.FromDocument(doc))
	if err != nil {
		return err
	}

	if flagPretty {
		if fp.Complete {
			ux.Success(fmt.Sprintf("%s %s", path, fp.Digest))
		} else {
			ux.Warning(fmt.Sprintf("%s %s (incomplete scan)", path, fp.Digest))
		}
		return nil
	}
	return emitOK(fingerprintPayload{
		Path:     path,
		Version:  fp.Digest,
		Complete: fp.Complete,
		Warnings: fp.Warnings,
	})
}
