// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/catalogsync/sir/internal/schema/transform"

// WorkEntity declares the "work" search core.
func WorkEntity() Entity {
	return Entity{
		Name:  "work",
		Table: "work",
		Boost: DefaultBoost,
		Fields: []Field{
			{Name: "mbid", Path: "gid"},
			{Name: "name", Path: "name"},
			{Name: "name_ascii", Path: "name", Transform: transform.ASCIIFold},
			{Name: "comment", Path: "comment", Transform: transform.FillNone},
			{Name: "iswc", Path: "iswc", Transform: transform.FillNone},
			{Name: "alias", Path: "aliases.name", Multi: true},
			{Name: "tag", Path: "tags.tag.name", Multi: true},
		},
	}
}
