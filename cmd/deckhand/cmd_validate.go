// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/DeckhandAI/deckhand/pkg/ux"
	"github.com/DeckhandAI/deckhand/services/deck/a11y"
	"github.com/DeckhandAI/deckhand/services/deck/pptx"
)

// fileReport is the per-file entry in the validate payload.
type fileReport struct {
	Path   string       `json:"path"`
	Report *a11y.Report `json:"report,omitempty"`
	Error  string       `json:"error,omitempty"`
}

type validatePayload struct {
	Files    []fileReport `json:"files"`
	Findings int          `json:"findings"`
	Passed   bool         `json:"passed"`
}

// validateConcurrency caps how many decks are opened at once; each
// deck's check stays single-threaded.
const validateConcurrency = 4

// runValidate checks one or more decks for accessibility problems.
// Files are processed concurrently; an unreadable file is reported in
// its slot instead of aborting the other checks.
func runValidate(cmd *cobra.Command, args []string) error {
	reports := make([]fileReport, len(args))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(validateConcurrency)
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			reports[i].Path = path
			doc, err := pptx.Open(path)
			if err != nil {
				reports[i].Error = err.Error()
				return nil
			}
			reports[i].Report = a11y.Check(ctx, doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	payload := validatePayload{Files: reports, Passed: true}
	for _, r := range reports {
		if r.Error != "" {
			payload.Passed = false
			continue
		}
		payload.Findings += len(r.Report.Findings)
		if len(r.Report.Findings) > 0 || !r.Report.Complete {
			payload.Passed = false
		}
	}

	if flagPretty {
		renderValidate(payload)
	} else if err := emitOK(payload); err != nil {
		return err
	}
	if !payload.Passed {
		return errReported
	}
	return nil
}

func renderValidate(payload validatePayload) {
	ok, errs := 0, 0
	for _, r := range payload.Files {
		switch {
		case r.Error != "":
			ux.Row(ux.IconError, r.Path, r.Error)
			errs++
		case len(r.Report.Findings) == 0:
			ux.Row(ux.IconSuccess, r.Path, "")
			ok++
		default:
			ux.Row(ux.IconWarning, r.Path, fmt.Sprintf("%d findings", len(r.Report.Findings)))
			for _, f := range r.Report.Findings {
				ux.Muted(fmt.Sprintf("    slide %d shape %d [%s] %s",
					f.Slide, f.Shape, f.Rule, f.Message))
			}
			errs++
		}
	}
	ux.Summary(ok, 0, errs)
}
