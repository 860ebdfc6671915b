// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"

	"github.com/DeckhandAI/deckhand/services/deck/policy"
	"github.com/DeckhandAI/deckhand/services/deck/pptx"
)

// runAddSlide appends a blank slide.
func runAddSlide(cmd *cobra.Command, args []string) error {
	return runMutation(cmd, args[0], policy.OpAddSlide,
		func(doc *pptx.Document) (int, error) {
			return doc.AddSlide()
		})
}

// runDeleteSlide deletes one slide and its parts.
func runDeleteSlide(cmd *cobra.Command, args []string) error {
	path, slide := args[0], flagSlide
	return runMutation(cmd, path, policy.OpDeleteSlide,
		func(doc *pptx.Document) (int, error) {
			if err := doc.DeleteSlide(slide); err != nil {
				return 0, err
			}
			return slide, nil
		})
}

// runDuplicateSlide appends a copy of one slide.
func runDuplicateSlide(cmd *cobra.Command, args []string) error {
	path, slide := args[0], flagSlide
	return runMutation(cmd, path, policy.OpDuplicateSlide,
		func(doc *pptx.Document) (int, error) {
			return doc.DuplicateSlide(slide)
		})
}

// runReorderSlides moves one slide to a new position.
func runReorderSlides(cmd *cobra.Command, args []string) error {
	in := reorderSlidesInput{Path: args[0], From: flagFrom, To: flagTo}
	if err := checkInput("reorder-slides", &in); err != nil {
		return err
	}

	return runMutation(cmd, in.Path, policy.OpReorderSlides,
		func(doc *pptx.Document) (int, error) {
			if err := doc.ReorderSlides(in.From, in.To); err != nil {
				return 0, err
			}
			return in.To, nil
		})
}
