// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package envelope runs mutations under the mandatory fingerprint
// protocol.
//
// Every operation that changes shape geometry, shape count, slide count
// or slide order goes through Run: fingerprint before, exactly one
// logical mutation, save, fingerprint after (from the durably saved
// state, never from unsaved memory), and the invalidation record for
// the operation kind. Callers use the two fingerprints to detect
// change and the invalidation record to know which cached indices died.
package envelope

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DeckhandAI/deckhand/services/deck/lock"
	"github.com/DeckhandAI/deckhand/services/deck/policy"
	"github.com/DeckhandAI/deckhand/services/deck/pptx"
	"github.com/DeckhandAI/deckhand/services/deck/version"
)

// Mutation is one logical change to apply to an open document.
type Mutation struct {
	// Kind selects the invalidation policy entry.
	Kind policy.OpKind

	// Apply performs exactly one logical mutation and returns the index
	// of the affected entity: the new shape or slide index for inserts,
	// the targeted index otherwise. No interleaving of unrelated
	// mutations is permitted within one call.
	Apply func(doc *pptx.Document) (int, error)
}

// Result is the fixed-shape record every mutating operation reports.
// It is never a bare scalar: callers always get named fields.
type Result struct {
	// Index of the affected entity, per Mutation.Apply.
	Index int `json:"index"`

	// VersionBefore is the fingerprint of the document as opened.
	VersionBefore string `json:"presentation_version_before"`

	// VersionAfter is the fingerprint of the durably saved result. Nil
	// when the save failed: an after-value from unsaved state would let
	// a caller believe a change persisted when it did not.
	VersionAfter *string `json:"presentation_version_after"`

	// Invalidation is the declared index-invalidation contract for the
	// operation kind performed.
	Invalidation policy.Record `json:"invalidation"`

	// Complete is false when either fingerprint scan was cut short.
	Complete bool `json:"analysis_complete"`

	// Warnings accumulates unreadable-shape reports from both scans.
	Warnings []string `json:"warnings,omitempty"`
}

// NonAtomicMutationError reports a save failure after the in-memory
// mutation succeeded. Fatal to the operation: the on-disk document is
// only as good as the last successful save.
type NonAtomicMutationError struct {
	Op   policy.OpKind
	Path string
	Err  error
}

// Error implements the error interface.
func (e *NonAtomicMutationError) Error() string {
	return fmt.Sprintf("%s: mutation %q applied in memory but not persisted: %v",
		e.Path, e.Op, e.Err)
}

// Unwrap returns the underlying save error.
func (e *NonAtomicMutationError) Unwrap() error { return e.Err }

// save is the persistence seam; tests override it to simulate I/O
// failure after a successful in-memory mutation.
var save = func(doc *pptx.Document, path string) error {
	return doc.Save(path)
}

// Run executes one mutation under the fingerprint protocol.
//
// # Description
//
// Looks up the invalidation policy (a missing entry fails before any
// file is touched), acquires the exclusive lock, computes the before
// fingerprint, applies the mutation, saves, and computes the after
// fingerprint from a fresh open of the saved file.
//
// # Inputs
//
//   - ctx: Bounds the fingerprint scans; a cancelled scan yields an
//     incomplete result, never a silently partial fingerprint.
//   - path: The deck file to mutate.
//   - m: The mutation to apply.
//
// # Outputs
//
//   - *Result: Non-nil whenever the document was opened, including on
//     save failure (with VersionAfter nil). Nil on lock/open errors.
//   - error: Lock contention, open failure, apply failure, or
//     *NonAtomicMutationError on save failure.
func Run(ctx context.Context, path string, m Mutation) (*Result, error) {
	rec, err := policy.For(m.Kind)
	if err != nil {
		return nil, err
	}

	h, err := lock.TryAcquireExclusive(path, "deckhand "+m.Kind.String())
	if err != nil {
		return nil, err
	}
	defer h.Release()

	doc, err := pptx.Open(path)
	if err != nil {
		return nil, err
	}

	before, err := version.Compute(ctx, version.FromDocument(doc))
	if err != nil {
		return nil, err
	}

	res := &Result{
		VersionBefore: before.Digest,
		Invalidation:  rec,
		Complete:      before.Complete,
		Warnings:      before.Warnings,
	}

	idx, err := m.Apply(doc)
	if err != nil {
		return nil, fmt.Errorf("applying %s: %w", m.Kind, err)
	}
	res.Index = idx

	if err := save(doc, path); err != nil {
		slog.Error("Save failed after in-memory mutation",
			"path", path,
			"op", m.Kind.String(),
			"error", err)
		return res, &NonAtomicMutationError{Op: m.Kind, Path: path, Err: err}
	}

	// Re-open so the after-value reflects the durably committed state.
	saved, err := pptx.Open(path)
	if err != nil {
		return res, fmt.Errorf("reopening saved document: %w", err)
	}
	after, err := version.Compute(ctx, version.FromDocument(saved))
	if err != nil {
		return res, err
	}
	res.VersionAfter = &after.Digest
	res.Complete = res.Complete && after.Complete
	res.Warnings = append(res.Warnings, after.Warnings...)

	slog.Info("Mutation committed",
		"path", path,
		"op", m.Kind.String(),
		"index", idx,
		"version_before", res.VersionBefore,
		"version_after", after.Digest)
	return res, nil
}
