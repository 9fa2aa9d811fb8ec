// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/catalogsync/sir/internal/schema/transform"

// InstrumentEntity declares the "instrument" search core.
func InstrumentEntity() Entity {
	return Entity{
		Name:  "instrument",
		Table: "instrument",
		Boost: DefaultBoost,
		Fields: []Field{
			{Name: "mbid", Path: "gid"},
			{Name: "name", Path: "name"},
			{Name: "name_ascii", Path: "name", Transform: transform.ASCIIFold},
			{Name: "comment", Path: "comment", Transform: transform.FillNone},
			{Name: "description", Path: "description", Transform: transform.FillNone},
			{Name: "alias", Path: "aliases.name", Multi: true},
			{Name: "tag", Path: "tags.tag.name", Multi: true},
		},
	}
}
