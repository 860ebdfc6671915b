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

	"github.com/spf13/cobra"

	"github.com/DeckhandAI/deckhand/pkg/ux"
	"github.com/DeckhandAI/deckhand/services/deck/envelope"
	"github.com/DeckhandAI/deckhand/services/deck/policy"
	"github.com/DeckhandAI/deckhand/services/deck/pptx"
)

// mutationPayload spreads the envelope result at the top level of the
// JSON output, alongside the operation and target path.
type mutationPayload struct {
	*envelope.Result
	Op   string `json:"op"`
	Path string `json:"path"`
}

// runMutation executes one mutation under the fingerprint protocol and
// emits the result envelope.
func runMutation(cmd *cobra.Command, path string, kind policy.OpKind,
	apply func(doc *pptx.Document) (int, error)) error {

	res, err := envelope.Run(cmd.Context(), path, envelope.Mutation{
		Kind:  kind,
		Apply: apply,
	})
	if err != nil {
		var nonAtomic *envelope.NonAtomicMutationError
		if errors.As(err, &nonAtomic) && res != nil {
			emitErrorWithPayload(err, mutationPayload{
				Result: res, Op: kind.String(), Path: path,
			})
			return errReported
		}
		return err
	}

	if flagPretty {
		renderMutation(kind, path, res)
		return nil
	}
	return emitOK(mutationPayload{Result: res, Op: kind.String(), Path: path})
}

// renderMutation prints the human view of a committed mutation.
func renderMutation(kind policy.OpKind, path string, res *envelope.Result) {
	ux.Success(fmt.Sprintf("%s on %s (index %d)", kind, path, res.Index))
	after := "<not saved>"
	if res.VersionAfter != nil {
		after = *res.VersionAfter
	}
	ux.Muted(fmt.Sprintf("  version %s %s %s", res.VersionBefore, ux.IconArrow, after))
	ux.Muted(fmt.Sprintf("  invalidates %s indices (%s, %s)",
		res.Invalidation.AffectedEntity, res.Invalidation.Scope, res.Invalidation.IndexShift))
	if !res.Complete {
		ux.Warning("fingerprint scan incomplete; treat versions as unknown")
	}
	for _, w := range res.Warnings {
		ux.Warning(w)
	}
}
