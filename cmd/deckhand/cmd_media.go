// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DeckhandAI/deckhand/services/deck/policy"
	"github.com/DeckhandAI/deckhand/services/deck/pptx"
)

// runAddPicture embeds an image file on a slide.
func runAddPicture(cmd *cobra.Command, args []string) error {
	in := addPictureInput{
		Path:  args[0],
		Slide: flagSlide,
		Image: flagImage,
		Geometry: geometryInput{
			Left: flagLeft, Top: flagTop, Width: flagWidth, Height: flagHeight,
		},
	}
	if err := checkInput("add-picture", &in); err != nil {
		return err
	}

	// Read the image before locking the deck: a missing image must not
	// touch the target file at all.
	image, err := os.ReadFile(in.Image)
	if err != nil {
		return fmt.Errorf("reading image %s: %w", in.Image, err)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(in.Image)), ".")
	if ext == "" {
		return fmt.Errorf("image %s has no file extension", in.Image)
	}

	return runMutation(cmd, in.Path, policy.OpAddPicture,
		func(doc *pptx.Document) (int, error) {
			return doc.AddPicture(in.Slide, image, ext, pptx.Geometry{
				Left: in.Geometry.Left, Top: in.Geometry.Top,
				Width: in.Geometry.Width, Height: in.Geometry.Height,
			}, flagAlt)
		})
}
