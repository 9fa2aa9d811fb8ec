// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import (
	"fmt"
	"sort"
	"strings"
)

// TailKind classifies the final segment of a dotted path.
type TailKind int

const (
	// TailColumn is a plain scalar column on the resolved model.
	TailColumn TailKind = iota
	// TailComposite is a composite (multi-column) attribute.
	TailComposite
	// TailManyToOne is a many-to-one relationship.
	TailManyToOne
	// TailToMany is a one-to-many or many-to-many relationship.
	TailToMany
	// TailUnknown means the segment could not be resolved against the
	// graph. Callers log this once and skip the path rather than abort.
	TailUnknown
)

// String implements [fmt.Stringer].
func (k TailKind) String() string {
	switch k {
	case TailColumn:
		return "column"
	case TailComposite:
		return "composite_column"
	case TailManyToOne:
		return "many_to_one"
	case TailToMany:
		return "to_many"
	default:
		return "unknown"
	}
}

// walkStep is one hop taken while resolving a dotted path.
type walkStep struct {
	fromModel string
	attr      string
	rel       Relationship
}

// walk resolves every segment of path except the last against the graph,
// starting at root. It returns the model the final segment should be
// looked up on, the final segment name, and the hops taken (used to build
// reverse paths).
func walk(g *Graph, root, path string) (model string, lastSeg string, steps []walkStep, err error) {
	segs := strings.Split(path, ".")
	if len(segs) == 0 || segs[0] == "" {
		return "", "", nil, fmt.Errorf("schema: empty path")
	}

	current := root
	for i, seg := range segs[:len(segs)-1] {
		m, ok := g.Model(current)
		if !ok {
			return "", "", nil, fmt.Errorf("schema: unresolved model %q at segment %d of %q", current, i, path)
		}
		rel, ok := m.Relationships[seg]
		if !ok {
			return "", "", nil, fmt.Errorf("schema: unresolved relationship %q on %q in path %q", seg, current, path)
		}
		steps = append(steps, walkStep{fromModel: current, attr: seg, rel: rel})
		current = rel.Target
	}

	return current, segs[len(segs)-1], steps, nil
}

// SecondLastModel returns the table name on which the path's final segment
// should be resolved (i.e. the model just before the last hop).
func SecondLastModel(g *Graph, root, path string) (string, error) {
	model, _, _, err := walk(g, root, path)
	return model, err
}

// Step is one relationship hop taken while resolving a dotted path, exposed
// to callers (the materializer, the change router) that need to turn a
// path into an actual SQL join chain rather than just its endpoints.
type Step struct {
	FromModel string
	Attr      string
	Rel       Relationship
}

// Walk resolves every segment of path against root and returns the model
// the final segment should be looked up on, the final segment name, and the
// ordered hops taken to get there.
func Walk(g *Graph, root, path string) (model string, lastSeg string, steps []Step, err error) {
	model, lastSeg, raw, err := walk(g, root, path)
	if err != nil {
		return "", "", nil, err
	}
	steps = make([]Step, len(raw))
	for i, s := range raw {
		steps[i] = Step{FromModel: s.fromModel, Attr: s.attr, Rel: s.rel}
	}
	return model, lastSeg, steps, nil
}

// LastModel returns the table name the path ultimately resolves to.
//
// If the final segment is a relationship, this is the relationship's
// target; if the final segment is a column, this is the model that owns
// that column (same as [SecondLastModel]).
func LastModel(g *Graph, root, path string) (string, error) {
	model, lastSeg, _, err := walk(g, root, path)
	if err != nil {
		return "", err
	}

	m, ok := g.Model(model)
	if !ok {
		return "", fmt.Errorf("schema: unresolved model %q", model)
	}

	if rel, ok := m.Relationships[lastSeg]; ok {
		return rel.Target, nil
	}
	if _, ok := m.Columns[lastSeg]; ok {
		return model, nil
	}

	return "", fmt.Errorf("schema: unresolved tail %q on %q in path %q", lastSeg, model, path)
}

// TailKindOf classifies the final segment of path.
func TailKindOf(g *Graph, root, path string) TailKind {
	model, lastSeg, _, err := walk(g, root, path)
	if err != nil {
		return TailUnknown
	}

	m, ok := g.Model(model)
	if !ok {
		return TailUnknown
	}

	if rel, ok := m.Relationships[lastSeg]; ok {
		if rel.Kind == RelManyToOne {
			return TailManyToOne
		}
		return TailToMany
	}

	if kind, ok := m.Columns[lastSeg]; ok {
		if kind == ColumnComposite {
			return TailComposite
		}
		return TailColumn
	}

	return TailUnknown
}

// UniqueSplitPaths returns the sorted, de-duplicated set of every non-empty
// prefix of every path in paths, split on ".". This is the full set of
// intermediate relationship hops a dependency-index build needs to walk,
// including each path's own full length.
func UniqueSplitPaths(paths []string) []string {
	seen := make(map[string]bool)
	var out []string

	for _, p := range paths {
		if p == "" {
			continue
		}
		segs := strings.Split(p, ".")
		for i := 1; i <= len(segs); i++ {
			prefix := strings.Join(segs[:i], ".")
			if !seen[prefix] {
				seen[prefix] = true
				out = append(out, prefix)
			}
		}
	}

	sort.Strings(out)
	return out
}

// WalkRelationships walks every segment of path as a relationship hop
// starting at start, with no special treatment of the final segment (unlike
// [walk], which assumes the last segment may be a column). This is what
// the change router uses to turn a dependency index entry's ReversePath —
// itself a chain of relationship attribute names — into an actual SQL join
// chain from a changed table back to a core's root table.
func WalkRelationships(g *Graph, start, path string) (model string, steps []Step, err error) {
	segs := strings.Split(path, ".")
	if len(segs) == 0 || segs[0] == "" {
		return "", nil, fmt.Errorf("schema: empty path")
	}

	current := start
	for _, seg := range segs {
		m, ok := g.Model(current)
		if !ok {
			return "", nil, fmt.Errorf("schema: unresolved model %q in path %q", current, path)
		}
		rel, ok := m.Relationships[seg]
		if !ok {
			return "", nil, fmt.Errorf("schema: unresolved relationship %q on %q in path %q", seg, current, path)
		}
		steps = append(steps, Step{FromModel: current, Attr: seg, Rel: rel})
		current = rel.Target
	}

	return current, steps, nil
}

// ReversePath walks prefix forward from root and returns the table the
// prefix lands on together with the dotted path that leads from that table
// back to root, built from each traversed relationship's declared Reverse
// attribute.
//
// An empty reversePath means prefix resolves to root itself (zero hops):
// this is the core's own root table, the case the change router treats
// differently from every other (non-empty) entry.
func ReversePath(g *Graph, root, prefix string) (table string, reversePath string, err error) {
	model, lastSeg, steps, err := walk(g, root, prefix)
	if err != nil {
		return "", "", err
	}

	m, ok := g.Model(model)
	if !ok {
		return "", "", fmt.Errorf("schema: unresolved model %q", model)
	}

	rel, isRelationship := m.Relationships[lastSeg]
	finalTable := model
	var reverseSegs []string

	if isRelationship {
		finalTable = rel.Target
		if rel.Reverse == "" {
			return "", "", fmt.Errorf("schema: relationship %q on %q has no declared reverse", lastSeg, model)
		}
		reverseSegs = append(reverseSegs, rel.Reverse)
	}

	// Walk the earlier hops in reverse order, prepending each one's Reverse
	// attribute, so the final slice reads leaf-to-root.
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		if step.rel.Reverse == "" {
			return "", "", fmt.Errorf("schema: relationship %q on %q has no declared reverse", step.attr, step.fromModel)
		}
		reverseSegs = append(reverseSegs, step.rel.Reverse)
	}

	return finalTable, strings.Join(reverseSegs, "."), nil
}
