// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/catalogsync/sir/internal/schema/transform"

// AreaEntity declares the "area" search core.
func AreaEntity() Entity {
	return Entity{
		Name:  "area",
		Table: "area",
		Boost: DefaultBoost,
		Fields: []Field{
			{Name: "mbid", Path: "gid"},
			{Name: "name", Path: "name"},
			{Name: "name_ascii", Path: "name", Transform: transform.ASCIIFold},
			{Name: "comment", Path: "comment", Transform: transform.FillNone},
			{Name: "ended", Path: "ended", Transform: transform.Ended},
			{Name: "alias", Path: "aliases.name", Multi: true},
			{Name: "iso", Path: "iso_3166_1_codes.code", Multi: true},
			{Name: "tag", Path: "tags.tag.name", Multi: true},
		},
		Extension: []Profile{
			{Field: "ref_count", Description: "number of entities (artist/label/place/event) whose area points here"},
		},
	}
}
