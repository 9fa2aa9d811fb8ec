// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package materialize

import "context"

// profileFunc computes one [schema.Profile]'s value for a root pk. Unlike a
// [schema.Field], a profile's query is hand-written rather than derived from
// a dotted path, since it correlates across tables the path algebra has no
// single relationship for (a count across several owning tables, a pick
// among siblings by a non-path predicate).
type profileFunc func(ctx context.Context, db Querier, pk any) (any, error)

// profileRegistry binds every (core, field) pair a [schema.Entity] declares
// in its Extension to the query that actually computes it. A declared
// profile with no entry here is a configuration bug, logged and skipped
// rather than silently emitted as an empty field.
var profileRegistry = map[string]map[string]profileFunc{
	"area": {
		"ref_count": areaRefCount,
	},
	"artist": {
		"primary_alias": artistPrimaryAlias,
	},
}

// areaRefCount totals every artist (by residence, or begin/end area), label,
// place, and event that references this area — the count MusicBrainz uses to
// decide whether an area is still in use.
func areaRefCount(ctx context.Context, db Querier, pk any) (any, error) {
	const query = `SELECT
		(SELECT count(*) FROM artist WHERE area = $1 OR begin_area = $1 OR end_area = $1) +
		(SELECT count(*) FROM label WHERE area = $1) +
		(SELECT count(*) FROM place WHERE area = $1) +
		(SELECT count(*) FROM event WHERE area = $1)`

	rows, err := db.Query(ctx, query, pk)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return count, nil
}

// artistPrimaryAlias returns the name of the artist's primary_for_locale
// alias, or nil if the artist has none.
func artistPrimaryAlias(ctx context.Context, db Querier, pk any) (any, error) {
	const query = `SELECT name FROM artist_alias WHERE artist = $1 AND primary_for_locale LIMIT 1`

	rows, err := db.Query(ctx, query, pk)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var name any
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		name = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return name, nil
}
