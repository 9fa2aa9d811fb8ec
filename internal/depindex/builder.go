// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package depindex

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/catalogsync/sir/internal/schema"
)

// Build walks every registered core's unique split paths and derives the
// forward, inverse, and column maps.
//
// Determinism (Testable Property 1) comes from two things: iterating
// [schema.Registry.Iterate] (already sorted) and sorting every derived
// slice before it is returned, so two builds over the same registry always
// produce byte-identical output.
//
// An unresolvable path is logged once via logger and skipped rather than
// aborting the build — the registry's own construction already rejected
// structurally invalid entities, so a path failing here means the graph and
// the entity declaration disagree about an edge's reverse, which is a bug
// worth surfacing but not one that should keep the whole index from coming
// up with everything else it was able to resolve.
func Build(reg *schema.Registry, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}

	graph := reg.Graph()
	idx := &Index{
		Forward: make(map[string][]string),
		Inverse: make(map[string][]InverseEntry),
		Columns: make(map[string]map[string]bool),
	}

	seenInverse := make(map[string]bool) // "table|core|reversePath"

	for _, coreName := range reg.Iterate() {
		entity, _ := reg.Get(coreName)
		forwardTables := make(map[string]bool)

		// Every core depends on its own root table at zero hops, regardless
		// of whether any declared field happens to be a bare column on it —
		// record this unconditionally rather than relying on that coincidence.
		forwardTables[entity.Table] = true
		rootKey := entity.Table + "|" + coreName + "|"
		if !seenInverse[rootKey] {
			seenInverse[rootKey] = true
			idx.Inverse[entity.Table] = append(idx.Inverse[entity.Table], InverseEntry{
				Core:        coreName,
				ReversePath: "",
			})
		}

		for _, prefix := range schema.UniqueSplitPaths(entity.Paths()) {
			table, reversePath, err := schema.ReversePath(graph, entity.Table, prefix)
			if err != nil {
				logger.Warn("depindex_unresolved_path",
					slog.String("core", coreName),
					slog.String("path", prefix),
					slog.Any("error", err),
				)
				continue
			}

			forwardTables[table] = true

			key := table + "|" + coreName + "|" + reversePath
			if !seenInverse[key] {
				seenInverse[key] = true
				idx.Inverse[table] = append(idx.Inverse[table], InverseEntry{
					Core:        coreName,
					ReversePath: reversePath,
				})
			}

			segs := strings.Split(prefix, ".")
			column := segs[len(segs)-1]
			colTable := table
			switch schema.TailKindOf(graph, entity.Table, prefix) {
			case schema.TailManyToOne:
				// The watched column is the local foreign key on the model
				// holding the relationship, not a column of its target.
				colTable, _ = schema.SecondLastModel(graph, entity.Table, prefix)
			case schema.TailToMany:
				// A to-many relationship contributes no column.
				continue
			}
			if idx.Columns[colTable] == nil {
				idx.Columns[colTable] = make(map[string]bool)
			}
			idx.Columns[colTable][column] = true
		}

		tables := make([]string, 0, len(forwardTables))
		for t := range forwardTables {
			tables = append(tables, t)
		}
		sort.Strings(tables)
		idx.Forward[coreName] = tables
	}

	for table := range idx.Inverse {
		entries := idx.Inverse[table]
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Core != entries[j].Core {
				return entries[i].Core < entries[j].Core
			}
			return entries[i].ReversePath < entries[j].ReversePath
		})
		idx.Inverse[table] = entries
	}

	return idx
}
