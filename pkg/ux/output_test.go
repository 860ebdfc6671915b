// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import "testing"

func TestSetEnabledOverridesDetection(t *testing.T) {
	defer enabled.Store(0)

	SetEnabled(true)
	if !Enabled() {
		t.Error("Enabled() = false after SetEnabled(true)")
	}

	SetEnabled(false)
	if Enabled() {
		t.Error("Enabled() = true after SetEnabled(false)")
	}
}

func TestIconRenderPlainWhenDisabled(t *testing.T) {
	defer enabled.Store(0)

	SetEnabled(false)
	if got := IconSuccess.Render(); got != string(IconSuccess) {
		t.Errorf("disabled icon render = %q, want bare %q", got, string(IconSuccess))
	}

	SetEnabled(true)
	if got := IconArrow.Render(); got != string(IconArrow) {
		t.Errorf("unstyled icon render = %q, want %q", got, string(IconArrow))
	}
}
