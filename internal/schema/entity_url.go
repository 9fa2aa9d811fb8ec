// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/catalogsync/sir/internal/schema/transform"

// URLEntity declares the "url" search core.
//
// Its "targettype" field is a tagged union: the url table itself carries no
// type column, so the type is derived from which per-entity link
// relationship (artist_urls, release_urls) reaches this row. Only the artist
// and release branches are declared; the other l_*_url satellites the graph
// declares have no targettype field here, so a url linked only through them
// gets no targettype value.
func URLEntity() Entity {
	return Entity{
		Name:  "url",
		Table: "url",
		Boost: DefaultBoost,
		Fields: []Field{
			{Name: "mbid", Path: "gid"},
			{Name: "url", Path: "url"},
			{Name: "targettype", Path: "artist_urls.artist.gid", Transform: transform.URLTargetType},
			{Name: "targettype", Path: "release_urls.release.gid", Transform: transform.URLTargetType},
		},
	}
}
