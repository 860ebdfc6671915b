// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package a11y

import (
	"context"
	"fmt"

	"github.com/DeckhandAI/deckhand/services/deck/pptx"
)

// Severity classifies a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one accessibility problem located on a shape.
type Finding struct {
	Slide    int      `json:"slide"`
	Shape    int      `json:"shape"`
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Report is the result of checking one deck.
type Report struct {
	// Findings in slide/shape order.
	Findings []Finding `json:"findings"`

	// CheckedShapes counts shapes that at least one rule applied to.
	CheckedShapes int `json:"checked_shapes"`

	// Complete is false when the scan was cancelled partway.
	Complete bool `json:"analysis_complete"`
}

// Rule names.
const (
	RuleContrast    = "contrast-min"
	RuleMissingAlt  = "missing-alt-text"
	RuleEmptyAccess = "unreadable-shape"
)

// Check runs all accessibility rules over an open deck.
//
// # Description
//
// For each shape: text runs with an explicit color are checked against
// the shape's solid fill for AA contrast (shapes where either side is
// unresolvable are skipped — inherited theme colors are out of reach
// of a package-level probe); pictures must carry alternative text.
// The document is only read.
//
// # Inputs
//
//   - ctx: Cancellation; a cancelled scan returns the findings so far
//     with Complete=false.
//   - doc: The open document.
//
// # Outputs
//
//   - *Report: Never nil.
func Check(ctx context.Context, doc *pptx.Document) *Report {
	rep := &Report{Findings: []Finding{}, Complete: true}

	for si, slide := range doc.Slides() {
		if ctx.Err() != nil {
			rep.Complete = false
			return rep
		}
		for hi, shape := range slide.Shapes() {
			checked := false

			if shape.IsPicture() {
				checked = true
				if shape.AltText() == "" {
					rep.Findings = append(rep.Findings, Finding{
						Slide:    si,
						Shape:    hi,
						Rule:     RuleMissingAlt,
						Severity: SeverityError,
						Message:  fmt.Sprintf("picture %q has no alternative text", shape.Name()),
					})
				}
			}

			if fill, ok := shape.FillColor(); ok {
				bg, err := ParseHex(fill)
				if err == nil {
					for _, tc := range shape.TextColors() {
						fg, err := ParseHex(tc)
						if err != nil {
							continue
						}
						checked = true
						if ratio := ContrastRatio(fg, bg); ratio < MinContrastNormalText {
							rep.Findings = append(rep.Findings, Finding{
								Slide:    si,
								Shape:    hi,
								Rule:     RuleContrast,
								Severity: SeverityError,
								Message: fmt.Sprintf("text %s on fill %s has contrast %.2f:1, below %.1f:1",
									fg.Hex(), bg.Hex(), ratio, MinContrastNormalText),
							})
						}
					}
				}
			}

			if checked {
				rep.CheckedShapes++
			}
		}
	}
	return rep
}
