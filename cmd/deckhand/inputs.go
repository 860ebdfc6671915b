// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/DeckhandAI/deckhand/services/deck/a11y"
)

// =============================================================================
// Shared Validator Instance
// =============================================================================

// inputValidate checks mutating command inputs before any file is
// opened or locked.
var inputValidate *validator.Validate

func init() {
	inputValidate = validator.New()

	// "deckcolor" accepts #RRGGBB, RRGGBB and #RGB.
	_ = inputValidate.RegisterValidation("deckcolor", validateDeckColor)
}

func validateDeckColor(fl validator.FieldLevel) bool {
	_, err := a11y.ParseHex(fl.Field().String())
	return err == nil
}

// checkInput validates a command input struct, wrapping validator's
// error with the offending command context.
func checkInput(command string, v any) error {
	if err := inputValidate.Struct(v); err != nil {
		return fmt.Errorf("%s: invalid input: %w", command, err)
	}
	return nil
}

// =============================================================================
// Input Structs
// =============================================================================

// geometryInput is a shape bounding box in EMUs.
type geometryInput struct {
	Left   int64 `validate:"gte=0"`
	Top    int64 `validate:"gte=0"`
	Width  int64 `validate:"gt=0"`
	Height int64 `validate:"gt=0"`
}

type addTextBoxInput struct {
	Path     string `validate:"required"`
	Slide    int    `validate:"gte=0"`
	Text     string `validate:"required"`
	Geometry geometryInput
	Fill     string `validate:"omitempty,deckcolor"`
	Color    string `validate:"omitempty,deckcolor"`
}

type addPictureInput struct {
	Path     string `validate:"required"`
	Slide    int    `validate:"gte=0"`
	Image    string `validate:"required"`
	Geometry geometryInput
}

type shapeTargetInput struct {
	Path  string `validate:"required"`
	Slide int    `validate:"gte=0"`
	Shape int    `validate:"gte=0"`
}

type moveShapeInput struct {
	Target shapeTargetInput
	Left   int64 `validate:"gte=0"`
	Top    int64 `validate:"gte=0"`
}

type resizeShapeInput struct {
	Target shapeTargetInput
	Width  int64 `validate:"gt=0"`
	Height int64 `validate:"gt=0"`
}

type setTextInput struct {
	Target shapeTargetInput
	Text   string `validate:"required"`
}

type setOpacityInput struct {
	Target  shapeTargetInput
	Opacity int `validate:"gte=0,lte=100"`
}

type reorderSlidesInput struct {
	Path string `validate:"required"`
	From int    `validate:"gte=0"`
	To   int    `validate:"gte=0"`
}
