// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/catalogsync/sir/internal/schema/transform"

// LabelEntity declares the "label" search core.
func LabelEntity() Entity {
	return Entity{
		Name:  "label",
		Table: "label",
		Boost: DefaultBoost,
		Fields: []Field{
			{Name: "mbid", Path: "gid"},
			{Name: "name", Path: "name"},
			{Name: "name_ascii", Path: "name", Transform: transform.ASCIIFold},
			{Name: "comment", Path: "comment", Transform: transform.FillNone},
			{Name: "code", Path: "label_code"},
			{Name: "area", Path: "area.name"},
			{Name: "country", Path: "area.iso_3166_1_codes.code", Multi: true},
			{Name: "alias", Path: "aliases.name", Multi: true},
			{Name: "tag", Path: "tags.tag.name", Multi: true},
		},
		ExtraPaths: []string{"area.aliases"},
	}
}
