// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package version

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DeckhandAI/deckhand/services/deck/pptx"
)

// --- Fakes ---

type fakeShape struct {
	g    pptx.Geometry
	text string
	err  error
}

func (s fakeShape) Geometry() (pptx.Geometry, error) { return s.g, s.err }
func (s fakeShape) Text() string                     { return s.text }

type fakeSlide struct {
	layout string
	shapes []Shape
}

func (s fakeSlide) LayoutName() string { return s.layout }
func (s fakeSlide) Shapes() []Shape    { return s.shapes }

type fakeDeck []Slide

func (d fakeDeck) Slides() []Slide { return d }

func box(left, top, width, height int64, text string) fakeShape {
	return fakeShape{
		g:    pptx.Geometry{Left: left, Top: top, Width: width, Height: height},
		text: text,
	}
}

func twoShapeDeck() fakeDeck {
	return fakeDeck{
		fakeSlide{layout: "Title Slide", shapes: []Shape{
			box(914400, 914400, 4572000, 914400, "Quarterly Review"),
			box(914400, 2286000, 4572000, 914400, "Agenda"),
		}},
		fakeSlide{layout: "Blank", shapes: []Shape{
			box(0, 0, 1000, 1000, ""),
		}},
	}
}

func mustDigest(t *testing.T, d fakeDeck) string {
	t.Helper()
	res, err := Compute(context.Background(), d)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if !res.Complete {
		t.Fatalf("Compute reported incomplete scan without cancellation")
	}
	return res.Digest
}

// --- Tests ---

func TestComputeDeterminism(t *testing.T) {
	first := mustDigest(t, twoShapeDeck())
	second := mustDigest(t, twoShapeDeck())
	if first != second {
		t.Errorf("same state produced different digests: %s vs %s", first, second)
	}
	if len(first) != DigestLength {
		t.Errorf("digest length = %d, want %d", len(first), DigestLength)
	}
	if first != strings.ToLower(first) {
		t.Errorf("digest %q is not lowercase hex", first)
	}
}

func TestComputeSensitivity(t *testing.T) {
	base := mustDigest(t, twoShapeDeck())

	cases := []struct {
		name   string
		mutate func(d fakeDeck) fakeDeck
	}{
		{"move shape", func(d fakeDeck) fakeDeck {
			s := d[0].(fakeSlide)
			sh := s.shapes[0].(fakeShape)
			sh.g.Left += 9525
			s.shapes = []Shape{sh, s.shapes[1]}
			d[0] = s
			return d
		}},
		{"resize shape", func(d fakeDeck) fakeDeck {
			s := d[0].(fakeSlide)
			sh := s.shapes[1].(fakeShape)
			sh.g.Height *= 2
			s.shapes = []Shape{s.shapes[0], sh}
			d[0] = s
			return d
		}},
		{"edit text", func(d fakeDeck) fakeDeck {
			s := d[0].(fakeSlide)
			sh := s.shapes[0].(fakeShape)
			sh.text = "Quarterly Review (final)"
			s.shapes = []Shape{sh, s.shapes[1]}
			d[0] = s
			return d
		}},
		{"append shape", func(d fakeDeck) fakeDeck {
			s := d[1].(fakeSlide)
			s.shapes = append(s.shapes, box(10, 10, 20, 20, "new"))
			d[1] = s
			return d
		}},
		{"remove shape", func(d fakeDeck) fakeDeck {
			s := d[0].(fakeSlide)
			s.shapes = s.shapes[:1]
			d[0] = s
			return d
		}},
		{"reorder shapes", func(d fakeDeck) fakeDeck {
			s := d[0].(fakeSlide)
			s.shapes = []Shape{s.shapes[1], s.shapes[0]}
			d[0] = s
			return d
		}},
		{"reorder slides", func(d fakeDeck) fakeDeck {
			return fakeDeck{d[1], d[0]}
		}},
		{"change layout", func(d fakeDeck) fakeDeck {
			s := d[1].(fakeSlide)
			s.layout = "Title and Content"
			d[1] = s
			return d
		}},
		{"append slide", func(d fakeDeck) fakeDeck {
			return append(d, fakeSlide{layout: "Blank"})
		}},
		{"delete slide", func(d fakeDeck) fakeDeck {
			return d[:1]
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mustDigest(t, tc.mutate(twoShapeDeck()))
			if got == base {
				t.Errorf("digest unchanged after %s", tc.name)
			}
		})
	}
}

func TestComputeNoOpIsStable(t *testing.T) {
	d := twoShapeDeck()
	before := mustDigest(t, d)
	after := mustDigest(t, d)
	if before != after {
		t.Errorf("no-op changed the digest: %s vs %s", before, after)
	}
}

// Structurally different decks must not concatenate to the same state
// string: the separators keep field and record boundaries unambiguous.
func TestComputeSeparatorCollision(t *testing.T) {
	joined := fakeDeck{
		fakeSlide{layout: "L", shapes: []Shape{box(1, 1, 1, 1, "ab")}},
	}
	split := fakeDeck{
		fakeSlide{layout: "L", shapes: []Shape{
			box(1, 1, 1, 1, "a"),
			box(1, 1, 1, 1, "b"),
		}},
	}
	if mustDigest(t, joined) == mustDigest(t, split) {
		t.Error("different shape structures collided to one digest")
	}
}

func TestComputeUnreadableShape(t *testing.T) {
	broken := func(text string) fakeDeck {
		return fakeDeck{
			fakeSlide{layout: "Blank", shapes: []Shape{
				fakeShape{err: errors.New("bad offset"), text: text},
				box(5, 5, 5, 5, "ok"),
			}},
		}
	}

	res, err := Compute(context.Background(), broken("x"))
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if !res.Complete {
		t.Error("unreadable shape must not mark the scan incomplete")
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(res.Warnings))
	}
	if !strings.Contains(res.Warnings[0], "slide 0 shape 0") {
		t.Errorf("warning %q does not locate the shape", res.Warnings[0])
	}

	// The marker token is value-stable: what the broken shape would have
	// contributed is irrelevant.
	again, _ := Compute(context.Background(), broken("entirely different"))
	if res.Digest != again.Digest {
		t.Errorf("marker token is not value-stable: %s vs %s", res.Digest, again.Digest)
	}
}

func TestComputeCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Compute(ctx, twoShapeDeck())
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if res.Complete {
		t.Error("cancelled scan reported Complete=true")
	}
	if len(res.Digest) != DigestLength {
		t.Errorf("partial digest length = %d, want %d", len(res.Digest), DigestLength)
	}

	full, _ := Compute(context.Background(), twoShapeDeck())
	if res.ComparableTo(full) || full.ComparableTo(res) {
		t.Error("partial result must not be comparable to a full scan")
	}
}

func TestComparableTo(t *testing.T) {
	complete := &Result{Digest: "a", Complete: true}
	partial := &Result{Digest: "b", Complete: false}

	if !complete.ComparableTo(complete) {
		t.Error("two complete results must be comparable")
	}
	if complete.ComparableTo(partial) {
		t.Error("complete vs partial must not be comparable")
	}
	if complete.ComparableTo(nil) {
		t.Error("nil other must not be comparable")
	}
	var nilRes *Result
	if nilRes.ComparableTo(complete) {
		t.Error("nil receiver must not be comparable")
	}
}
