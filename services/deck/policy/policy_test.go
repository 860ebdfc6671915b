// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package policy

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// Every declared kind must have a table entry and a real wire name;
// this is the exhaustiveness check the closed enum relies on.
func TestTableCompleteness(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			rec, err := For(kind)
			if err != nil {
				t.Fatalf("For(%v): %v", kind, err)
			}
			if rec.AffectedEntity == "" || rec.Scope == "" || rec.IndexShift == "" {
				t.Errorf("incomplete record for %v: %+v", kind, rec)
			}
			if strings.HasPrefix(kind.String(), "op_kind(") {
				t.Errorf("kind %d has no wire name", int(kind))
			}
		})
	}
}

func TestForUnknownKind(t *testing.T) {
	_, err := For(OpKind(999))
	if err == nil {
		t.Fatal("For(unknown) returned no error")
	}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error type = %T, want *ConfigurationError", err)
	}
	if cfgErr.Kind != OpKind(999) {
		t.Errorf("error kind = %v, want 999", cfgErr.Kind)
	}
}

func TestDeclaredShifts(t *testing.T) {
	cases := []struct {
		kind  OpKind
		shift IndexShift
		scope Scope
	}{
		{OpAddShape, ShiftAppend, ScopeSingleSlide},
		{OpRemoveShape, ShiftDownAfterRemoved, ScopeSingleSlide},
		{OpReorderShapes, ShiftArbitraryReorder, ScopeSingleSlide},
		{OpMoveShape, ShiftStable, ScopeSingleSlide},
		{OpDeleteSlide, ShiftFullInvalidate, ScopeWholePresentation},
		{OpReorderSlides, ShiftArbitraryReorder, ScopeWholePresentation},
		{OpAddSlide, ShiftAppend, ScopeWholePresentation},
	}
	for _, tc := range cases {
		rec, err := For(tc.kind)
		if err != nil {
			t.Fatalf("For(%v): %v", tc.kind, err)
		}
		if rec.IndexShift != tc.shift {
			t.Errorf("%v shift = %q, want %q", tc.kind, rec.IndexShift, tc.shift)
		}
		if rec.Scope != tc.scope {
			t.Errorf("%v scope = %q, want %q", tc.kind, rec.Scope, tc.scope)
		}
	}
}

func TestOpKindJSON(t *testing.T) {
	data, err := json.Marshal(OpAddPicture)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"add_picture"` {
		t.Errorf("marshaled kind = %s, want \"add_picture\"", data)
	}
}

func TestRecordJSON(t *testing.T) {
	rec, err := For(OpDeleteSlide)
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"affected_entity":"slide","scope":"whole-presentation","index_shift":"full-invalidate"}`
	if string(data) != want {
		t.Errorf("record JSON = %s, want %s", data, want)
	}
}
