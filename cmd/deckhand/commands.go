// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"

	"github.com/DeckhandAI/deckhand/cmd/deckhand/config"
	"github.com/DeckhandAI/deckhand/pkg/logging"
	"github.com/DeckhandAI/deckhand/pkg/ux"
)

// --- Global Command Variables ---
var (
	flagSlide   int
	flagShape   int
	flagLeft    int64
	flagTop     int64
	flagWidth   int64
	flagHeight  int64
	flagText    string
	flagName    string
	flagFill    string
	flagColor   string
	flagAlt     string
	flagImage   string
	flagOpacity int
	flagFrom    int
	flagTo      int
	flagPretty  bool
	flagVerbose bool

	appLogger *logging.Logger

	rootCmd = &cobra.Command{
		Use:   "deckhand",
		Short: "Stateless command-line utilities for editing .pptx presentations",
		Long: `Deckhand manipulates PowerPoint files from the command line. Every
invocation opens the deck fresh, performs one operation, and reports a
fingerprint of the presentation state before and after, so callers can
detect concurrent edits without holding any session open.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return err
			}
			level := logging.ParseLevel(config.Global.Logging.Level)
			if flagVerbose {
				level = logging.LevelDebug
			}
			appLogger = logging.New(logging.Config{
				Level:  level,
				LogDir: config.Global.Logging.Dir,
			})
			appLogger.Install()

			if !cmd.Flags().Changed("pretty") {
				flagPretty = config.Global.Output.Pretty
			}
			if flagPretty {
				ux.SetEnabled(true)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appLogger != nil {
				appLogger.Close()
			}
		},
	}

	// --- Creation / Read-only ---
	newCmd = &cobra.Command{
		Use:   "new [file]",
		Short: "Create a new blank presentation",
		Args:  cobra.ExactArgs(1),
		RunE:  runNew, // Defined in cmd_inspect.go
	}
	inspectCmd = &cobra.Command{
		Use:   "inspect [file]",
		Short: "Summarize a presentation: slides, layouts, shape counts, fingerprint",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect, // Defined in cmd_inspect.go
	}
	listShapesCmd = &cobra.Command{
		Use:   "list-shapes [file]",
		Short: "List the shapes on one slide with geometry and text",
		Args:  cobra.ExactArgs(1),
		RunE:  runListShapes, // Defined in cmd_inspect.go
	}
	fingerprintCmd = &cobra.Command{
		Use:   "fingerprint [file]",
		Short: "Compute the presentation state fingerprint",
		Args:  cobra.ExactArgs(1),
		RunE:  runFingerprint, // Defined in cmd_inspect.go
	}

	// --- Shape Mutations ---
	addTextBoxCmd = &cobra.Command{
		Use:   "add-textbox [file]",
		Short: "Add a text box to a slide",
		Args:  cobra.ExactArgs(1),
		RunE:  runAddTextBox, // Defined in cmd_shapes.go
	}
	moveShapeCmd = &cobra.Command{
		Use:   "move-shape [file]",
		Short: "Move a shape to a new position",
		Args:  cobra.ExactArgs(1),
		RunE:  runMoveShape, // Defined in cmd_shapes.go
	}
	resizeShapeCmd = &cobra.Command{
		Use:   "resize-shape [file]",
		Short: "Resize a shape",
		Args:  cobra.ExactArgs(1),
		RunE:  runResizeShape, // Defined in cmd_shapes.go
	}
	deleteShapeCmd = &cobra.Command{
		Use:   "delete-shape [file]",
		Short: "Delete a shape from a slide",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeleteShape, // Defined in cmd_shapes.go
	}
	setOpacityCmd = &cobra.Command{
		Use:   "set-opacity [file]",
		Short: "Set the fill opacity of a shape (0-100)",
		Args:  cobra.ExactArgs(1),
		RunE:  runSetOpacity, // Defined in cmd_shapes.go
	}
	bringToFrontCmd = &cobra.Command{
		Use:   "bring-to-front [file]",
		Short: "Move a shape to the top of the z-order",
		Args:  cobra.ExactArgs(1),
		RunE:  runBringToFront, // Defined in cmd_shapes.go
	}
	sendToBackCmd = &cobra.Command{
		Use:   "send-to-back [file]",
		Short: "Move a shape to the bottom of the z-order",
		Args:  cobra.ExactArgs(1),
		RunE:  runSendToBack, // Defined in cmd_shapes.go
	}

	// --- Text ---
	setTextCmd = &cobra.Command{
		Use:   "set-text [file]",
		Short: "Replace the text of a shape",
		Args:  cobra.ExactArgs(1),
		RunE:  runSetText, // Defined in cmd_text.go
	}

	// --- Media ---
	addPictureCmd = &cobra.Command{
		Use:   "add-picture [file]",
		Short: "Add an image to a slide",
		Args:  cobra.ExactArgs(1),
		RunE:  runAddPicture, // Defined in cmd_media.go
	}

	// --- Slides ---
	addSlideCmd = &cobra.Command{
		Use:   "add-slide [file]",
		Short: "Append a blank slide",
		Args:  cobra.ExactArgs(1),
		RunE:  runAddSlide, // Defined in cmd_slides.go
	}
	deleteSlideCmd = &cobra.Command{
		Use:   "delete-slide [file]",
		Short: "Delete a slide",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeleteSlide, // Defined in cmd_slides.go
	}
	duplicateSlideCmd = &cobra.Command{
		Use:   "duplicate-slide [file]",
		Short: "Duplicate a slide, appending the copy",
		Args:  cobra.ExactArgs(1),
		RunE:  runDuplicateSlide, // Defined in cmd_slides.go
	}
	reorderSlidesCmd = &cobra.Command{
		Use:   "reorder-slides [file]",
		Short: "Move a slide from one position to another",
		Args:  cobra.ExactArgs(1),
		RunE:  runReorderSlides, // Defined in cmd_slides.go
	}

	// --- Validation ---
	validateCmd = &cobra.Command{
		Use:   "validate [files...]",
		Short: "Check decks for accessibility problems",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runValidate, // Defined in cmd_validate.go
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagPretty, "pretty", false,
		"Render human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(inspectCmd)

	rootCmd.AddCommand(listShapesCmd)
	listShapesCmd.Flags().IntVar(&flagSlide, "slide", 0, "Slide index (0-based)")

	rootCmd.AddCommand(fingerprintCmd)

	rootCmd.AddCommand(addTextBoxCmd)
	addTextBoxCmd.Flags().IntVar(&flagSlide, "slide", 0, "Slide index (0-based)")
	addTextBoxCmd.Flags().StringVar(&flagText, "text", "", "Text content (required)")
	addTextBoxCmd.Flags().StringVar(&flagName, "name", "", "Shape name")
	addTextBoxCmd.Flags().StringVar(&flagFill, "fill", "", "Solid fill color, e.g. #1B4F72")
	addTextBoxCmd.Flags().StringVar(&flagColor, "color", "", "Text color, e.g. #FFFFFF")
	addGeometryFlags(addTextBoxCmd, 914400, 914400, 4572000, 914400)
	_ = addTextBoxCmd.MarkFlagRequired("text")

	rootCmd.AddCommand(moveShapeCmd)
	addShapeTargetFlags(moveShapeCmd)
	moveShapeCmd.Flags().Int64Var(&flagLeft, "left", 0, "New left edge in EMUs")
	moveShapeCmd.Flags().Int64Var(&flagTop, "top", 0, "New top edge in EMUs")

	rootCmd.AddCommand(resizeShapeCmd)
	addShapeTargetFlags(resizeShapeCmd)
	resizeShapeCmd.Flags().Int64Var(&flagWidth, "width", 0, "New width in EMUs")
	resizeShapeCmd.Flags().Int64Var(&flagHeight, "height", 0, "New height in EMUs")

	rootCmd.AddCommand(deleteShapeCmd)
	addShapeTargetFlags(deleteShapeCmd)

	rootCmd.AddCommand(setOpacityCmd)
	addShapeTargetFlags(setOpacityCmd)
	setOpacityCmd.Flags().IntVar(&flagOpacity, "opacity", 100, "Fill opacity percent (0-100)")

	rootCmd.AddCommand(bringToFrontCmd)
	addShapeTargetFlags(bringToFrontCmd)

	rootCmd.AddCommand(sendToBackCmd)
	addShapeTargetFlags(sendToBackCmd)

	rootCmd.AddCommand(setTextCmd)
	addShapeTargetFlags(setTextCmd)
	setTextCmd.Flags().StringVar(&flagText, "text", "", "Replacement text (required)")
	_ = setTextCmd.MarkFlagRequired("text")

	rootCmd.AddCommand(addPictureCmd)
	addPictureCmd.Flags().IntVar(&flagSlide, "slide", 0, "Slide index (0-based)")
	addPictureCmd.Flags().StringVar(&flagImage, "image", "", "Path to the image file (required)")
	addPictureCmd.Flags().StringVar(&flagAlt, "alt", "", "Alternative text for accessibility")
	addGeometryFlags(addPictureCmd, 914400, 914400, 3048000, 2286000)
	_ = addPictureCmd.MarkFlagRequired("image")

	rootCmd.AddCommand(addSlideCmd)

	rootCmd.AddCommand(deleteSlideCmd)
	deleteSlideCmd.Flags().IntVar(&flagSlide, "slide", 0, "Slide index (0-based)")

	rootCmd.AddCommand(duplicateSlideCmd)
	duplicateSlideCmd.Flags().IntVar(&flagSlide, "slide", 0, "Slide index (0-based)")

	rootCmd.AddCommand(reorderSlidesCmd)
	reorderSlidesCmd.Flags().IntVar(&flagFrom, "from", 0, "Current slide index")
	reorderSlidesCmd.Flags().IntVar(&flagTo, "to", 0, "Destination slide index")

	rootCmd.AddCommand(validateCmd)
}

// addShapeTargetFlags registers the slide/shape addressing flags shared
// by every shape-level mutation.
func addShapeTargetFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagSlide, "slide", 0, "Slide index (0-based)")
	cmd.Flags().IntVar(&flagShape, "shape", 0, "Shape index on the slide (0-based)")
}

// addGeometryFlags registers bounding-box flags with per-command
// defaults (EMUs; 914400 per inch).
func addGeometryFlags(cmd *cobra.Command, left, top, width, height int64) {
	cmd.Flags().Int64Var(&flagLeft, "left", left, "Left edge in EMUs")
	cmd.Flags().Int64Var(&flagTop, "top", top, "Top edge in EMUs")
	cmd.Flags().Int64Var(&flagWidth, "width", width, "Width in EMUs")
	cmd.Flags().Int64Var(&flagHeight, "height", height, "Height in EMUs")
}
