// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package schema implements the static ORM metadata graph, the path algebra
over it, and the registry of indexed entity declarations.

Design Notes: the source project discovers relationships and columns by
reflecting over a live ORM mapper at import time. This package replaces that
with an explicit, hand-authored graph ([Graph]) — every relationship and its
reverse is declared once in graph_data.go, so path resolution never depends
on import order or a running database connection.
*/
package schema

// RelationKind classifies a relationship's cardinality. [TailKindOf] maps
// RelManyToOne to TailManyToOne and the other two kinds to TailToMany.
type RelationKind int

const (
	// RelManyToOne is a foreign-key-holding relationship (e.g. release -> artist_credit).
	RelManyToOne RelationKind = iota
	// RelOneToMany is the reverse of a many-to-one (e.g. artist -> aliases).
	RelOneToMany
	// RelManyToMany is a join-table-mediated relationship.
	RelManyToMany
)

// Relationship is one edge of the metadata graph.
type Relationship struct {
	// Target is the table name the relationship points to.
	Target string
	// Kind is the relationship's cardinality.
	Kind RelationKind
	// Reverse is the attribute name on Target that points back to the
	// owning model, used to compute inverse paths. Empty when the edge
	// has no usable reverse (rare; such edges cannot feed the dependency
	// index: [ReversePath] fails on them and the index build logs and skips
	// the path).
	Reverse string
}

// Model is one table in the metadata graph.
type Model struct {
	// Name is the table name.
	Name string
	// Columns maps a column attribute name to its ColumnKind, for TailKind
	// classification and to distinguish plain columns from composite ones.
	Columns map[string]ColumnKind
	// Relationships maps an attribute name (as it appears in a dotted path)
	// to the edge it represents.
	Relationships map[string]Relationship
}

// ColumnKind distinguishes a plain scalar column from a composite one
// (e.g. a SQLAlchemy composite() mapping several physical columns to one
// Python-level attribute, such as a partial date).
type ColumnKind int

const (
	// ColumnPlain is a single physical column.
	ColumnPlain ColumnKind = iota
	// ColumnComposite is a multi-column composite attribute.
	ColumnComposite
)

// Graph is the full static metadata graph, keyed by table name.
type Graph struct {
	Models map[string]*Model
}

// Model looks up a table by name.
func (g *Graph) Model(name string) (*Model, bool) {
	m, ok := g.Models[name]
	return m, ok
}

// MustModel looks up a table by name, panicking if it is not declared.
// Used only at graph_data.go build time and in tests, never on the
// live-update path.
func (g *Graph) MustModel(name string) *Model {
	m, ok := g.Models[name]
	if !ok {
		panic("schema: undeclared model " + name)
	}
	return m
}
