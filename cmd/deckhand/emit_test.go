// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/DeckhandAI/deckhand/services/deck/envelope"
	"github.com/DeckhandAI/deckhand/services/deck/lock"
	"github.com/DeckhandAI/deckhand/services/deck/policy"
	"github.com/DeckhandAI/deckhand/services/deck/pptx"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		kind      string
		transient bool
	}{
		{"lock sentinel", lock.ErrFileLocked, "file_locked", true},
		{"lock error type", &lock.FileLockError{Path: "x", Err: lock.ErrFileLocked}, "file_locked", true},
		{"policy", &policy.ConfigurationError{Kind: policy.OpKind(99)}, "policy_configuration", false},
		{"save failure", &envelope.NonAtomicMutationError{
			Op: policy.OpAddShape, Path: "x", Err: errors.New("disk full"),
		}, "non_atomic_mutation", false},
		{"bad slide", fmt.Errorf("wrap: %w", pptx.ErrNoSuchSlide), "bad_target", false},
		{"bad shape", pptx.ErrNoSuchShape, "bad_target", false},
		{"no text frame", pptx.ErrNoTextFrame, "unsupported_shape", false},
		{"malformed", pptx.ErrMalformedPart, "malformed_document", false},
		{"not a deck", pptx.ErrNotPresentation, "malformed_document", false},
		{"missing file", os.ErrNotExist, "not_found", false},
		{"anything else", errors.New("boom"), "internal", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.err)
			if got.Kind != tc.kind {
				t.Errorf("kind = %q, want %q", got.Kind, tc.kind)
			}
			if got.Transient != tc.transient {
				t.Errorf("transient = %v, want %v", got.Transient, tc.transient)
			}
			if got.Message == "" {
				t.Error("empty message")
			}
		})
	}
}
