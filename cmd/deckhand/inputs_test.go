// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import "testing"

func validGeometry() geometryInput {
	return geometryInput{Left: 0, Top: 0, Width: 100, Height: 100}
}

func TestAddTextBoxInputValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*addTextBoxInput)
		ok     bool
	}{
		{"valid", func(in *addTextBoxInput) {}, true},
		{"missing path", func(in *addTextBoxInput) { in.Path = "" }, false},
		{"missing text", func(in *addTextBoxInput) { in.Text = "" }, false},
		{"negative slide", func(in *addTextBoxInput) { in.Slide = -1 }, false},
		{"zero width", func(in *addTextBoxInput) { in.Geometry.Width = 0 }, false},
		{"negative left", func(in *addTextBoxInput) { in.Geometry.Left = -5 }, false},
		{"bad fill", func(in *addTextBoxInput) { in.Fill = "not-a-color" }, false},
		{"short hex fill", func(in *addTextBoxInput) { in.Fill = "#fff" }, true},
		{"bare hex color", func(in *addTextBoxInput) { in.Color = "1B4F72" }, true},
		{"empty fill allowed", func(in *addTextBoxInput) { in.Fill = "" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := addTextBoxInput{
				Path:     "deck.pptx",
				Slide:    0,
				Text:     "hello",
				Geometry: validGeometry(),
			}
			tc.mutate(&in)
			err := checkInput("add-textbox", &in)
			if tc.ok && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("invalid input passed validation")
			}
		})
	}
}

func TestOpacityInputValidation(t *testing.T) {
	base := setOpacityInput{
		Target:  shapeTargetInput{Path: "deck.pptx", Slide: 0, Shape: 0},
		Opacity: 50,
	}
	if err := checkInput("set-opacity", &base); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}

	over := base
	over.Opacity = 101
	if err := checkInput("set-opacity", &over); err == nil {
		t.Error("opacity 101 passed validation")
	}

	under := base
	under.Opacity = -1
	if err := checkInput("set-opacity", &under); err == nil {
		t.Error("opacity -1 passed validation")
	}
}

func TestReorderSlidesInputValidation(t *testing.T) {
	in := reorderSlidesInput{Path: "deck.pptx", From: 2, To: 0}
	if err := checkInput("reorder-slides", &in); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}
	in.From = -1
	if err := checkInput("reorder-slides", &in); err == nil {
		t.Error("negative from passed validation")
	}
}
