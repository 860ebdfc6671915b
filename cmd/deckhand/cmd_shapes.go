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

// runAddTextBox adds a text box to a slide.
func runAddTextBox(cmd *cobra.Command, args []string) error {
	in := addTextBoxInput{
		Path:  args[0],
		Slide: flagSlide,
		Text:  flagText,
		Geometry: geometryInput{
			Left: flagLeft, Top: flagTop, Width: flagWidth, Height: flagHeight,
		},
		Fill:  flagFill,
		Color: flagColor,
	}
	if err := checkInput("add-textbox", &in); err != nil {
		return err
	}

	return runMutation(cmd, in.Path, policy.OpAddShape,
		func(doc *pptx.Document) (int, error) {
			return doc.AddTextBox(in.Slide, pptx.Geometry{
				Left: in.Geometry.Left, Top: in.Geometry.Top,
				Width: in.Geometry.Width, Height: in.Geometry.Height,
			}, pptx.TextBoxOptions{
				Text:  in.Text,
				Name:  flagName,
				Fill:  in.Fill,
				Color: in.Color,
			})
		})
}

// runMoveShape repositions a shape without changing its size.
func runMoveShape(cmd *cobra.Command, args []string) error {
	in := moveShapeInput{
		Target: shapeTargetInput{Path: args[0], Slide: flagSlide, Shape: flagShape},
		Left:   flagLeft,
		Top:    flagTop,
	}
	if err := checkInput("move-shape", &in); err != nil {
		return err
	}

	return runMutation(cmd, in.Target.Path, policy.OpMoveShape,
		shapeMutation(in.Target, func(sh *pptx.Shape) error {
			return sh.SetPosition(in.Left, in.Top)
		}))
}

// runResizeShape resizes a shape in place.
func runResizeShape(cmd *cobra.Command, args []string) error {
	in := resizeShapeInput{
		Target: shapeTargetInput{Path: args[0], Slide: flagSlide, Shape: flagShape},
		Width:  flagWidth,
		Height: flagHeight,
	}
	if err := checkInput("resize-shape", &in); err != nil {
		return err
	}

	return runMutation(cmd, in.Target.Path, policy.OpResizeShape,
		shapeMutation(in.Target, func(sh *pptx.Shape) error {
			return sh.SetSize(in.Width, in.Height)
		}))
}

// runDeleteShape removes a shape from its slide.
func runDeleteShape(cmd *cobra.Command, args []string) error {
	in := shapeTargetInput{Path: args[0], Slide: flagSlide, Shape: flagShape}
	if err := checkInput("delete-shape", &in); err != nil {
		return err
	}

	return runMutation(cmd, in.Path, policy.OpRemoveShape,
		func(doc *pptx.Document) (int, error) {
			if err := doc.RemoveShape(in.Slide, in.Shape); err != nil {
				return 0, err
			}
			return in.Shape, nil
		})
}

// runSetOpacity sets the solid-fill opacity of a shape.
func runSetOpacity(cmd *cobra.Command, args []string) error {
	in := setOpacityInput{
		Target:  shapeTargetInput{Path: args[0], Slide: flagSlide, Shape: flagShape},
		Opacity: flagOpacity,
	}
	if err := checkInput("set-opacity", &in); err != nil {
		return err
	}

	return runMutation(cmd, in.Target.Path, policy.OpSetShapeOpacity,
		shapeMutation(in.Target, func(sh *pptx.Shape) error {
			return sh.SetOpacity(in.Opacity)
		}))
}

// runBringToFront moves a shape to the end of the z-order.
func runBringToFront(cmd *cobra.Command, args []string) error {
	in := shapeTargetInput{Path: args[0], Slide: flagSlide, Shape: flagShape}
	if err := checkInput("bring-to-front", &in); err != nil {
		return err
	}

	return runMutation(cmd, in.Path, policy.OpReorderShapes,
		func(doc *pptx.Document) (int, error) {
			if err := doc.BringToFront(in.Slide, in.Shape); err != nil {
				return 0, err
			}
			slide, err := doc.Slide(in.Slide)
			if err != nil {
				return 0, err
			}
			return slide.ShapeCount() - 1, nil
		})
}

// runSendToBack moves a shape to the start of the z-order.
func runSendToBack(cmd *cobra.Command, args []string) error {
	in := shapeTargetInput{Path: args[0], Slide: flagSlide, Shape: flagShape}
	if err := checkInput("send-to-back", &in); err != nil {
		return err
	}

	return runMutation(cmd, in.Path, policy.OpReorderShapes,
		func(doc *pptx.Document) (int, error) {
			if err := doc.SendToBack(in.Slide, in.Shape); err != nil {
				return 0, err
			}
			return 0, nil
		})
}

// shapeMutation adapts a per-shape edit into a document mutation,
// resolving the slide/shape target and reporting the shape's index.
func shapeMutation(target shapeTargetInput, fn func(*pptx.Shape) error) func(*pptx.Document) (int, error) {
	return func(doc *pptx.Document) (int, error) {
		slide, err := doc.Slide(target.Slide)
		if err != nil {
			return 0, err
		}
		shape, err := slide.Shape(target.Shape)
		if err != nil {
			return 0, err
		}
		if err := fn(shape); err != nil {
			return 0, err
		}
		return target.Shape, nil
	}
}
