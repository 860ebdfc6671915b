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

// runSetText replaces the entire text of a shape with a single run.
func runSetText(cmd *cobra.Command, args []string) error {
	in := setTextInput{
		Target: shapeTargetInput{Path: args[0], Slide: flagSlide, Shape: flagShape},
		Text:   flagText,
	}
	if err := checkInput("set-text", &in); err != nil {
		return err
	}

	return runMutation(cmd, in.Target.Path, policy.OpSetShapeText,
		shapeMutation(in.Target, func(sh *pptx.Shape) error {
			return sh.SetText(in.Text)
		}))
}
