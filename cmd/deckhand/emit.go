// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/DeckhandAI/deckhand/services/deck/envelope"
	"github.com/DeckhandAI/deckhand/services/deck/lock"
	"github.com/DeckhandAI/deckhand/services/deck/policy"
	"github.com/DeckhandAI/deckhand/services/deck/pptx"
)

// errReported signals that the command already emitted its envelope
// and only the non-zero exit code remains.
var errReported = errors.New("already reported")

// errorBody is the "error" object in an error envelope.
type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`

	// Transient marks errors the caller may retry (lock contention).
	Transient bool `json:"transient,omitempty"`
}

// emitOK prints exactly one success envelope to stdout: the payload's
// fields spread at the top level alongside "status": "ok".
func emitOK(payload any) error {
	body := map[string]any{}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
	}
	body["status"] = "ok"

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(body)
}

// emitError prints exactly one error envelope to stdout. Callers exit
// non-zero afterwards.
func emitError(err error) {
	emitErrorWithPayload(err, nil)
}

// emitErrorWithPayload prints an error envelope carrying partial
// results. Save failures use this so callers still see the
// before-fingerprint and the declared invalidation.
func emitErrorWithPayload(err error, payload any) {
	body := map[string]any{}
	if payload != nil {
		if raw, merr := json.Marshal(payload); merr == nil {
			_ = json.Unmarshal(raw, &body)
		}
	}
	body["status"] = "error"
	body["error"] = classify(err)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(body)
}

// classify maps the error taxonomy to wire kinds.
func classify(err error) errorBody {
	var (
		lockErr   *lock.FileLockError
		policyErr *policy.ConfigurationError
		saveErr   *envelope.NonAtomicMutationError
	)
	switch {
	case errors.As(err, &lockErr), errors.Is(err, lock.ErrFileLocked):
		return errorBody{Kind: "file_locked", Message: err.Error(), Transient: true}
	case errors.As(err, &policyErr):
		return errorBody{Kind: "policy_configuration", Message: err.Error()}
	case errors.As(err, &saveErr):
		return errorBody{Kind: "non_atomic_mutation", Message: err.Error()}
	case errors.Is(err, pptx.ErrNoSuchSlide), errors.Is(err, pptx.ErrNoSuchShape):
		return errorBody{Kind: "bad_target", Message: err.Error()}
	case errors.Is(err, pptx.ErrNoTextFrame), errors.Is(err, pptx.ErrNoSolidFill):
		return errorBody{Kind: "unsupported_shape", Message: err.Error()}
	case errors.Is(err, pptx.ErrMalformedPart), errors.Is(err, pptx.ErrNotPresentation):
		return errorBody{Kind: "malformed_document", Message: err.Error()}
	case errors.Is(err, os.ErrNotExist):
		return errorBody{Kind: "not_found", Message: err.Error()}
	default:
		return errorBody{Kind: "internal", Message: err.Error()}
	}
}
