// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/catalogsync/sir/internal/schema/transform"

// SeriesEntity declares the "series" search core.
func SeriesEntity() Entity {
	return Entity{
		Name:  "series",
		Table: "series",
		Boost: DefaultBoost,
		Fields: []Field{
			{Name: "mbid", Path: "gid"},
			{Name: "name", Path: "name"},
			{Name: "name_ascii", Path: "name", Transform: transform.ASCIIFold},
			{Name: "comment", Path: "comment", Transform: transform.FillNone},
			{Name: "alias", Path: "aliases.name", Multi: true},
			{Name: "tag", Path: "tags.tag.name", Multi: true},
		},
	}
}
