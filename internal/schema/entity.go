// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// DefaultBoost is the uniform search-relevance boost applied to every core,
// matching every core's boost=1.5 in the source declarations.
const DefaultBoost = 1.5

// Entity declares one search core: its root table, the fields materialized
// onto its document, and any extra relationship paths that must participate
// in change detection even though they contribute no field of their own
// (extra paths).
type Entity struct {
	// Name is the core's registry key (e.g. "artist", "release-group").
	Name string
	// Table is the root table name in the [Graph].
	Table string
	// Boost is the search-relevance boost; every core uses [DefaultBoost].
	Boost float64
	// Fields lists every column/relationship path materialized onto the
	// document.
	Fields []Field
	// ExtraPaths lists relationship paths that must feed the dependency
	// index (so a change underneath them triggers a reindex) without
	// being materialized as a field on their own — e.g. a join used only
	// to compute a [Profile].
	ExtraPaths []string
	// Extension bundles this core's derived, non-path fields.
	Extension []Profile
}

// Paths returns every dotted path this entity depends on: its fields' paths
// plus its extra paths. This is the input [UniqueSplitPaths] consumes when
// the dependency index is built.
func (e Entity) Paths() []string {
	paths := make([]string, 0, len(e.Fields)+len(e.ExtraPaths))
	for _, f := range e.Fields {
		paths = append(paths, f.Path)
	}
	paths = append(paths, e.ExtraPaths...)
	return paths
}
