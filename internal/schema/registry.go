// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import (
	"fmt"
	"sort"

	"github.com/catalogsync/sir/internal/platform/apperr"
)

// Registry is the schema registry: the set of indexed entities bound to
// the metadata graph they are resolved against.
//
// # Concurrency
//
// Registry is built once at startup and never mutated afterward; it is
// safe for unsynchronized concurrent reads from every consumer goroutine.
type Registry struct {
	graph    *Graph
	entities map[string]Entity
	names    []string // sorted once at build time
}

// NewRegistry validates and registers every entity against graph.
//
// Validation resolves every field path and extra path via the path algebra;
// an unresolved path is a [apperr.KindStructural] error, aborting startup
// before any queue is subscribed to.
func NewRegistry(graph *Graph, entities []Entity) (*Registry, error) {
	r := &Registry{
		graph:    graph,
		entities: make(map[string]Entity, len(entities)),
	}

	for _, e := range entities {
		if _, ok := graph.Model(e.Table); !ok {
			return nil, apperr.Structural(fmt.Sprintf("entity %q: root table %q not declared in graph", e.Name, e.Table))
		}

		for _, p := range e.Paths() {
			if _, err := LastModel(graph, e.Table, p); err != nil {
				return nil, apperr.Structural(fmt.Sprintf("entity %q: %v", e.Name, err))
			}
		}

		if _, exists := r.entities[e.Name]; exists {
			return nil, apperr.Structural(fmt.Sprintf("entity %q registered twice", e.Name))
		}

		r.entities[e.Name] = e
		r.names = append(r.names, e.Name)
	}

	sort.Strings(r.names)
	return r, nil
}

// Graph returns the metadata graph entities are resolved against.
func (r *Registry) Graph() *Graph { return r.graph }

// Get returns the entity registered under name.
func (r *Registry) Get(name string) (Entity, bool) {
	e, ok := r.entities[name]
	return e, ok
}

// Iterate returns every registered core name in sorted order. Every
// consumer that walks the full registry (the dependency-index builder, the
// bulk reindex driver) must use this rather than ranging a map directly, so
// that build order — and therefore log output and test fixtures — is
// deterministic (Testable Property 1).
func (r *Registry) Iterate() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered cores.
func (r *Registry) Len() int { return len(r.names) }
