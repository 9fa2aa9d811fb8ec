// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// TransformFunc adapts a raw materialized value into the value placed on the
// outgoing document.
//
// branch is the first segment of the field's Path. For fields whose Path
// crosses a polymorphic join (annotation.type, url.targettype) that is the
// satellite join actually traversed, so a single Transform can derive the
// union's "type" tag from which branch matched rather than from a stored
// column. Every field receives its branch; transforms outside the tagged
// unions ignore it.
type TransformFunc func(value any, branch string) (any, error)

// Field is one column or relationship path materialized onto a document.
type Field struct {
	// Name is the JSON key written to the document.
	Name string
	// Path is a dotted path rooted at the entity's Table, resolved against
	// the [Graph] by the path algebra.
	Path string
	// Transform adapts the raw value, or nil to pass it through unchanged.
	Transform TransformFunc
	// Multi marks a field that can produce more than one value per root row
	// (a to-many tail); the materializer aggregates these into a slice.
	Multi bool
}

// Profile describes one entity-extension: a derived field computed outside
// the path algebra (a correlated count, a "primary" pick among a to-many
// relationship). The computation itself is registered with the materializer
// by Entity name + Field, keeping schema declarative and side-effect free.
type Profile struct {
	// Field is the JSON key this profile produces.
	Field string
	// Description documents what the profile computes, for operators
	// reading the registry rather than the materializer's Go source.
	Description string
}
