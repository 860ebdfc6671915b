// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package policy declares how each mutating operation invalidates
// previously obtained slide and shape indices.
//
// The table is a declared contract, not something computed from runtime
// state: index-shift behavior is a property of how the append, remove
// and reorder primitives are implemented, and cannot be recovered by
// diffing fingerprints. Callers look up their operation kind here to
// decide whether cached indices must be re-fetched.
//
// # Design Principles
//
// The operation kinds are a closed enumeration and the table must cover
// all of them. A missing entry is a construction-time defect surfaced
// as a ConfigurationError, never silently defaulted: an undeclared
// index shift is exactly how stale-index bugs slip through.
//
// # Thread Safety
//
// The table is immutable after package initialization; all lookups are
// safe for concurrent use.
package policy

import "fmt"

// OpKind identifies one mutating operation the tool layer exposes.
type OpKind int

// The closed set of mutating operations. Adding a kind without adding a
// table entry (and a String case) fails TestTableCompleteness.
const (
	OpAddShape OpKind = iota
	OpAddPicture
	OpRemoveShape
	OpReorderShapes
	OpMoveShape
	OpResizeShape
	OpSetShapeText
	OpSetShapeOpacity
	OpAddSlide
	OpDeleteSlide
	OpDuplicateSlide
	OpReorderSlides

	// opKindCount bounds the enum for exhaustiveness checks.
	opKindCount
)

// Kinds returns every declared operation kind.
func Kinds() []OpKind {
	kinds := make([]OpKind, opKindCount)
	for i := range kinds {
		kinds[i] = OpKind(i)
	}
	return kinds
}

// String returns the wire name of the operation kind.
func (k OpKind) String() string {
	switch k {
	case OpAddShape:
		return "add_shape"
	case OpAddPicture:
		return "add_picture"
	case OpRemoveShape:
		return "remove_shape"
	case OpReorderShapes:
		return "reorder_shapes"
	case OpMoveShape:
		return "move_shape"
	case OpResizeShape:
		return "resize_shape"
	case OpSetShapeText:
		return "set_shape_text"
	case OpSetShapeOpacity:
		return "set_shape_opacity"
	case OpAddSlide:
		return "add_slide"
	case OpDeleteSlide:
		return "delete_slide"
	case OpDuplicateSlide:
		return "duplicate_slide"
	case OpReorderSlides:
		return "reorder_slides"
	default:
		return fmt.Sprintf("op_kind(%d)", int(k))
	}
}

// MarshalJSON encodes the kind as its wire name.
func (k OpKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// Entity is the kind of index an operation affects.
type Entity string

// Scope is how far the invalidation reaches.
type Scope string

// IndexShift describes what happens to previously obtained indices.
type IndexShift string

const (
	EntityShape Entity = "shape"
	EntitySlide Entity = "slide"

	ScopeSingleSlide       Scope = "single-slide"
	ScopeWholePresentation Scope = "whole-presentation"

	// ShiftAppend: length +1, all prior positions unchanged, the new
	// entity is at the end.
	ShiftAppend IndexShift = "append"

	// ShiftDownAfterRemoved: positions greater than the removed index
	// shift down by one; positions before it are unchanged.
	ShiftDownAfterRemoved IndexShift = "shift-down-after-removed"

	// ShiftArbitraryReorder: any permutation; no position may be
	// assumed stable. Z-order changes report this even when only one
	// element actually moves — the contract is conservative.
	ShiftArbitraryReorder IndexShift = "arbitrary-reorder"

	// ShiftFullInvalidate: the entire index space is destroyed; every
	// cached index is unconditionally stale.
	ShiftFullInvalidate IndexShift = "full-invalidate"

	// ShiftStable: content changed but no index moved (geometry, text
	// or attribute edits in place).
	ShiftStable IndexShift = "stable"
)

// Record declares the invalidation scope of one operation kind.
type Record struct {
	AffectedEntity Entity     `json:"affected_entity"`
	Scope          Scope      `json:"scope"`
	IndexShift     IndexShift `json:"index_shift"`
}

// table is the declared contract. Keep entries in enum order.
var table = map[OpKind]Record{
	OpAddShape:        {EntityShape, ScopeSingleSlide, ShiftAppend},
	OpAddPicture:      {EntityShape, ScopeSingleSlide, ShiftAppend},
	OpRemoveShape:     {EntityShape, ScopeSingleSlide, ShiftDownAfterRemoved},
	OpReorderShapes:   {EntityShape, ScopeSingleSlide, ShiftArbitraryReorder},
	OpMoveShape:       {EntityShape, ScopeSingleSlide, ShiftStable},
	OpResizeShape:     {EntityShape, ScopeSingleSlide, ShiftStable},
	OpSetShapeText:    {EntityShape, ScopeSingleSlide, ShiftStable},
	OpSetShapeOpacity: {EntityShape, ScopeSingleSlide, ShiftStable},
	OpAddSlide:        {EntitySlide, ScopeWholePresentation, ShiftAppend},
	OpDuplicateSlide:  {EntitySlide, ScopeWholePresentation, ShiftAppend},
	OpDeleteSlide:     {EntitySlide, ScopeWholePresentation, ShiftFullInvalidate},
	OpReorderSlides:   {EntitySlide, ScopeWholePresentation, ShiftArbitraryReorder},
}

// ConfigurationError reports an operation kind with no table entry: a
// design-time defect, not a runtime condition to tolerate.
type ConfigurationError struct {
	Kind OpKind
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("no invalidation policy declared for operation %q", e.Kind)
}

// For returns the invalidation record for an operation kind.
//
// # Outputs
//
//   - Record: The declared invalidation scope.
//   - error: *ConfigurationError when the kind has no entry.
func For(kind OpKind) (Record, error) {
	rec, ok := table[kind]
	if !ok {
		return Record{}, &ConfigurationError{Kind: kind}
	}
	return rec, nil
}
