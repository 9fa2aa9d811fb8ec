// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package materialize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/catalogsync/sir/internal/schema"
)

// joinPlan is the SQL shape of one field path: a chain of joins starting
// at the entity's root table and landing on the column the path's tail
// names.
//
// The local foreign-key column for a many-to-one hop, and the child-side
// foreign-key column for a to-many hop, are both taken to be the
// relationship's attribute name — the same convention [schema.ReversePath]
// relies on for the reverse direction, and the one the catalog graph's
// satellite tables (area_alias.area, artist_tag.artist, ...) were declared
// under.
type joinPlan struct {
	selectExpr string
	joins      []string
	multi      bool
}

func buildJoinPlan(g *schema.Graph, rootTable, path string) (*joinPlan, error) {
	model, lastSeg, steps, err := schema.Walk(g, rootTable, path)
	if err != nil {
		return nil, err
	}

	plan := &joinPlan{}
	current := "r0"

	for i, step := range steps {
		alias := "t" + strconv.Itoa(i+1)
		switch step.Rel.Kind {
		case schema.RelManyToOne:
			plan.joins = append(plan.joins, fmt.Sprintf(
				"JOIN %s %s ON %s.id = %s.%s", step.Rel.Target, alias, alias, current, step.Attr,
			))
		default: // RelOneToMany, RelManyToMany
			plan.multi = true
			plan.joins = append(plan.joins, fmt.Sprintf(
				"LEFT JOIN %s %s ON %s.%s = %s.id", step.Rel.Target, alias, alias, step.Rel.Reverse, current,
			))
		}
		current = alias
	}

	m, ok := g.Model(model)
	if !ok {
		return nil, fmt.Errorf("materialize: unresolved model %q for path %q", model, path)
	}
	if _, isRel := m.Relationships[lastSeg]; isRel {
		// The path's tail is itself a relationship (e.g. an extra-path used
		// only to feed the dependency index): there is no column to select,
		// so the plan carries no selectExpr and callers skip materializing it.
		return plan, nil
	}

	plan.selectExpr = current + "." + lastSeg
	return plan, nil
}

// buildSQL renders the full SELECT for this plan, filtered by the root
// table's pkColumn. The caller supplies the args slice; $1 is always the
// primary key value (or values, for an IN-list batch query).
func (p *joinPlan) buildSQL(rootTable, pkColumn string, batch bool) string {
	var b strings.Builder
	b.WriteString("SELECT r0.")
	b.WriteString(pkColumn)
	b.WriteString(", ")
	b.WriteString(p.selectExpr)
	b.WriteString(" FROM ")
	b.WriteString(rootTable)
	b.WriteString(" r0 ")
	b.WriteString(strings.Join(p.joins, " "))
	b.WriteString(" WHERE r0.")
	b.WriteString(pkColumn)
	if batch {
		b.WriteString(" = ANY($1)")
	} else {
		b.WriteString(" = $1")
	}
	return b.String()
}

// branchOf returns the first dotted segment of path, the tagged-union
// discriminator threaded into [schema.TransformFunc] as branch.
func branchOf(path string) string {
	if i := strings.IndexByte(path, '.'); i >= 0 {
		return path[:i]
	}
	return path
}
