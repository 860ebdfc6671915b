// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package envelope

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeckhandAI/deckhand/services/deck/lock"
	"github.com/DeckhandAI/deckhand/services/deck/policy"
	"github.com/DeckhandAI/deckhand/services/deck/pptx"
	"github.com/DeckhandAI/deckhand/services/deck/version"
)

var testGeom = pptx.Geometry{Left: 914400, Top: 914400, Width: 4572000, Height: 914400}

func newDeckFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.pptx")
	doc, err := pptx.New()
	require.NoError(t, err)
	require.NoError(t, doc.Save(path))
	return path
}

func addBox(doc *pptx.Document) (int, error) {
	return doc.AddTextBox(0, testGeom, pptx.TextBoxOptions{Text: "hello"})
}

func fingerprintFile(t *testing.T, path string) string {
	t.Helper()
	doc, err := pptx.Open(path)
	require.NoError(t, err)
	res, err := version.Compute(context.Background(), version.FromDocument(doc))
	require.NoError(t, err)
	return res.Digest
}

func TestRunSuccess(t *testing.T) {
	path := newDeckFile(t)
	before := fingerprintFile(t, path)

	res, err := Run(context.Background(), path, Mutation{
		Kind:  policy.OpAddShape,
		Apply: addBox,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, res.Index)
	assert.Equal(t, before, res.VersionBefore)
	require.NotNil(t, res.VersionAfter, "VersionAfter must be set on success")
	assert.NotEqual(t, res.VersionBefore, *res.VersionAfter,
		"mutation must change the fingerprint")
	assert.Equal(t, fingerprintFile(t, path), *res.VersionAfter,
		"VersionAfter must reflect the saved file state")
	assert.True(t, res.Complete)

	rec, err := policy.For(policy.OpAddShape)
	require.NoError(t, err)
	assert.Equal(t, rec, res.Invalidation)

	locked, _, err := lock.IsLocked(path)
	require.NoError(t, err)
	assert.False(t, locked, "lock must be released after Run")
}

func TestRunUnknownKind(t *testing.T) {
	path := newDeckFile(t)
	before := fingerprintFile(t, path)

	_, err := Run(context.Background(), path, Mutation{
		Kind:  policy.OpKind(99),
		Apply: addBox,
	})
	var cfgErr *policy.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, before, fingerprintFile(t, path),
		"file must be untouched when the policy lookup fails")
}

func TestRunApplyFailure(t *testing.T) {
	path := newDeckFile(t)
	before := fingerprintFile(t, path)

	wantErr := errors.New("shape refused")
	_, err := Run(context.Background(), path, Mutation{
		Kind: policy.OpAddShape,
		Apply: func(doc *pptx.Document) (int, error) {
			return 0, wantErr
		},
	})
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, before, fingerprintFile(t, path),
		"file must be untouched when apply fails")

	locked, _, err := lock.IsLocked(path)
	require.NoError(t, err)
	assert.False(t, locked, "lock must be released after apply failure")
}

func TestRunSaveFailure(t *testing.T) {
	path := newDeckFile(t)
	before := fingerprintFile(t, path)

	orig := save
	save = func(doc *pptx.Document, path string) error {
		return fmt.Errorf("disk full")
	}
	defer func() { save = orig }()

	res, err := Run(context.Background(), path, Mutation{
		Kind:  policy.OpAddShape,
		Apply: addBox,
	})

	var saveErr *NonAtomicMutationError
	require.ErrorAs(t, err, &saveErr)
	assert.Equal(t, policy.OpAddShape, saveErr.Op)

	require.NotNil(t, res, "partial result must survive a save failure")
	assert.Nil(t, res.VersionAfter, "nothing was persisted, no after-version")
	assert.Equal(t, before, res.VersionBefore)
	assert.Equal(t, before, fingerprintFile(t, path),
		"on-disk file must be untouched when the save fails")
}

func TestRunLockedFile(t *testing.T) {
	path := newDeckFile(t)

	h, err := lock.TryAcquireExclusive(path, "competitor")
	require.NoError(t, err)
	defer h.Release()

	_, err = Run(context.Background(), path, Mutation{
		Kind:  policy.OpAddShape,
		Apply: addBox,
	})
	require.ErrorIs(t, err, lock.ErrFileLocked)
}

func TestRunNoOpKeepsFingerprint(t *testing.T) {
	path := newDeckFile(t)

	res, err := Run(context.Background(), path, Mutation{
		Kind: policy.OpMoveShape,
		Apply: func(doc *pptx.Document) (int, error) {
			return 0, nil // touch nothing
		},
	})
	require.NoError(t, err)
	require.NotNil(t, res.VersionAfter)
	assert.Equal(t, res.VersionBefore, *res.VersionAfter,
		"a no-op must not change the fingerprint")
}
