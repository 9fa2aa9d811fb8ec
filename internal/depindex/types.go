// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package depindex builds and serves the dependency index: the derived
forward, inverse, and column maps the change router
consults to decide which documents a relational change must refresh.
*/
package depindex

// InverseEntry is one table's contribution to a core: when the table
// changes, this core must be reindexed by resolving ReversePath back to the
// core's root table.
//
// An empty ReversePath means the table IS the core's own root table — the
// zero-hop case the change router's tie-break rule treats specially.
type InverseEntry struct {
	Core        string
	ReversePath string
}

// Index is the fully built dependency index.
type Index struct {
	// Forward maps a core name to the sorted list of every table it
	// depends on (including its own root table).
	Forward map[string][]string
	// Inverse maps a table name to the sorted list of cores (and their
	// reverse paths) that must be reindexed when that table changes.
	Inverse map[string][]InverseEntry
	// Columns maps a table name to the set of column/relationship-attribute
	// names that some core's path actually touches, so an UPDATE whose
	// changed-column set doesn't intersect this set can be ignored.
	Columns map[string]map[string]bool
}

// TablesFor returns the tables core depends on.
func (idx *Index) TablesFor(core string) []string {
	return idx.Forward[core]
}

// EntriesFor returns the cores a change to table must reindex.
func (idx *Index) EntriesFor(table string) []InverseEntry {
	return idx.Inverse[table]
}

// ColumnRelevant reports whether a change to column on table could affect
// any registered core. Returns true (relevant) for tables with no recorded
// column set, since that means no core-specific narrowing was computed.
func (idx *Index) ColumnRelevant(table, column string) bool {
	cols, ok := idx.Columns[table]
	if !ok || len(cols) == 0 {
		return true
	}
	return cols[column]
}
