// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package a11y

import (
	"context"
	"math"
	"testing"

	"github.com/DeckhandAI/deckhand/services/deck/pptx"
)

func TestParseHex(t *testing.T) {
	cases := []struct {
		in   string
		want RGB
		ok   bool
	}{
		{"#1B4F72", RGB{0x1B, 0x4F, 0x72}, true},
		{"1B4F72", RGB{0x1B, 0x4F, 0x72}, true},
		{"#fff", RGB{0xFF, 0xFF, 0xFF}, true},
		{"  #000000 ", RGB{0, 0, 0}, true},
		{"", RGB{}, false},
		{"#12345", RGB{}, false},
		{"zzzzzz", RGB{}, false},
	}
	for _, tc := range cases {
		got, err := ParseHex(tc.in)
		if tc.ok && err != nil {
			t.Errorf("ParseHex(%q): %v", tc.in, err)
			continue
		}
		if !tc.ok {
			if err == nil {
				t.Errorf("ParseHex(%q) accepted invalid input", tc.in)
			}
			continue
		}
		if got != tc.want {
			t.Errorf("ParseHex(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := RGB{0x1B, 0x4F, 0x72}
	if c.Hex() != "1B4F72" {
		t.Errorf("Hex = %q, want 1B4F72", c.Hex())
	}
}

func TestContrastRatio(t *testing.T) {
	black := RGB{0, 0, 0}
	white := RGB{255, 255, 255}

	if r := ContrastRatio(black, white); math.Abs(r-21.0) > 0.01 {
		t.Errorf("black/white contrast = %.3f, want 21", r)
	}
	if r := ContrastRatio(white, white); math.Abs(r-1.0) > 0.001 {
		t.Errorf("same-color contrast = %.3f, want 1", r)
	}
	if ContrastRatio(black, white) != ContrastRatio(white, black) {
		t.Error("contrast ratio is not symmetric")
	}

	// Mid-gray on white fails AA for normal text.
	gray := RGB{0x95, 0x95, 0x95}
	if r := ContrastRatio(gray, white); r >= MinContrastNormalText {
		t.Errorf("gray/white contrast = %.3f, expected below %.1f", r, MinContrastNormalText)
	}
}

var checkGeom = pptx.Geometry{Left: 914400, Top: 914400, Width: 4572000, Height: 914400}

func TestCheck(t *testing.T) {
	doc, err := pptx.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Shape 0: white text on white fill, unreadable.
	if _, err := doc.AddTextBox(0, checkGeom, pptx.TextBoxOptions{
		Text: "ghost", Fill: "FFFFFF", Color: "FFFFFF",
	}); err != nil {
		t.Fatalf("AddTextBox: %v", err)
	}
	// Shape 1: white text on dark fill, fine.
	if _, err := doc.AddTextBox(0, checkGeom, pptx.TextBoxOptions{
		Text: "readable", Fill: "1B4F72", Color: "FFFFFF",
	}); err != nil {
		t.Fatalf("AddTextBox: %v", err)
	}
	// Shape 2: picture without alt text.
	if _, err := doc.AddPicture(0, []byte{1, 2, 3}, "png", checkGeom, ""); err != nil {
		t.Fatalf("AddPicture: %v", err)
	}
	// Shape 3: picture with alt text, fine.
	if _, err := doc.AddPicture(0, []byte{1, 2, 3}, "png", checkGeom, "a chart"); err != nil {
		t.Fatalf("AddPicture: %v", err)
	}

	rep := Check(context.Background(), doc)
	if !rep.Complete {
		t.Error("Complete = false without cancellation")
	}
	if len(rep.Findings) != 2 {
		t.Fatalf("findings = %d, want 2: %+v", len(rep.Findings), rep.Findings)
	}

	byRule := map[string]Finding{}
	for _, f := range rep.Findings {
		byRule[f.Rule] = f
	}
	contrast, ok := byRule[RuleContrast]
	if !ok {
		t.Fatal("no contrast finding for white-on-white text")
	}
	if contrast.Shape != 0 {
		t.Errorf("contrast finding shape = %d, want 0", contrast.Shape)
	}
	alt, ok := byRule[RuleMissingAlt]
	if !ok {
		t.Fatal("no finding for picture without alt text")
	}
	if alt.Shape != 2 {
		t.Errorf("alt finding shape = %d, want 2", alt.Shape)
	}
}

func TestCheckCancelled(t *testing.T) {
	doc, err := pptx.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep := Check(ctx, doc)
	if rep.Complete {
		t.Error("cancelled check reported Complete=true")
	}
}
