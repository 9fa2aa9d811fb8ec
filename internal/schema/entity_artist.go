// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/catalogsync/sir/internal/schema/transform"

// ArtistEntity declares the "artist" search core.
func ArtistEntity() Entity {
	return Entity{
		Name:  "artist",
		Table: "artist",
		Boost: DefaultBoost,
		Fields: []Field{
			{Name: "mbid", Path: "gid"},
			{Name: "name", Path: "name"},
			{Name: "name_ascii", Path: "name", Transform: transform.ASCIIFold},
			{Name: "sort_name", Path: "sort_name"},
			{Name: "comment", Path: "comment", Transform: transform.FillNone},
			{Name: "begin", Path: "begin_date"},
			{Name: "end", Path: "end_date"},
			{Name: "ended", Path: "ended", Transform: transform.Ended},
			{Name: "area", Path: "area.name"},
			{Name: "begin_area", Path: "begin_area.name"},
			{Name: "end_area", Path: "end_area.name"},
			{Name: "country", Path: "area.iso_3166_1_codes.code", Multi: true},
			{Name: "alias", Path: "aliases.name", Multi: true},
			{Name: "tag", Path: "tags.tag.name", Multi: true},
		},
		// The area alias paths surface no field of their own, but a change
		// anywhere in any of the three linked areas' alias lists must still
		// trigger a reindex of the artist documents that denormalize
		// area/begin_area/end_area names.
		ExtraPaths: []string{"area.aliases", "begin_area.aliases", "end_area.aliases"},
		Extension: []Profile{
			{Field: "primary_alias", Description: "the alias marked primary_for_locale for the artist's main locale, if any"},
		},
	}
}
