// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package router

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/catalogsync/sir/internal/schema"
)

// Rows is the narrow slice of pgx.Rows the router consumes for its
// resolution queries, mirroring [materialize.Rows].
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Querier is the slice of *pgxpool.Pool the router needs to run resolution
// queries against related tables.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// buildResolveSQL renders the join chain that walks reversePath forward
// from changedTable until it lands on the core's root table, selecting the
// root's "id" column for every row reachable from one changed-table row.
//
// Every hop uses the same attribute-name-is-column-name convention as
// [materialize]'s join builder: a many-to-one hop's local foreign key is
// the hop's attribute name; a to-many hop's child-side foreign key is the
// relationship's declared Reverse attribute.
func buildResolveSQL(g *schema.Graph, changedTable, reversePath string) (string, error) {
	_, steps, err := schema.WalkRelationships(g, changedTable, reversePath)
	if err != nil {
		return "", err
	}

	current := "c0"
	var joins []string
	for i, step := range steps {
		alias := "j" + strconv.Itoa(i+1)
		switch step.Rel.Kind {
		case schema.RelManyToOne:
			joins = append(joins, fmt.Sprintf(
				"JOIN %s %s ON %s.id = %s.%s", step.Rel.Target, alias, alias, current, step.Attr,
			))
		default:
			joins = append(joins, fmt.Sprintf(
				"JOIN %s %s ON %s.%s = %s.id", step.Rel.Target, alias, alias, step.Rel.Reverse, current,
			))
		}
		current = alias
	}

	var b strings.Builder
	b.WriteString("SELECT DISTINCT ")
	b.WriteString(current)
	b.WriteString(".id FROM ")
	b.WriteString(changedTable)
	b.WriteString(" c0 ")
	b.WriteString(strings.Join(joins, " "))
	b.WriteString(" WHERE c0.id = $1")
	return b.String(), nil
}

// resolveRootPKs executes the resolution query and collects every matching
// root primary key.
func resolveRootPKs(ctx context.Context, db Querier, g *schema.Graph, changedTable, reversePath string, changedPK any) ([]any, error) {
	query, err := buildResolveSQL(g, changedTable, reversePath)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx, query, changedPK)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pks []any
	for rows.Next() {
		var pk any
		if err := rows.Scan(&pk); err != nil {
			return nil, err
		}
		pks = append(pks, pk)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pks, nil
}
