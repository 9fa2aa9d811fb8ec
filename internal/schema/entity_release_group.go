// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/catalogsync/sir/internal/schema/transform"

// ReleaseGroupEntity declares the "release-group" search core.
func ReleaseGroupEntity() Entity {
	return Entity{
		Name:  "release-group",
		Table: "release_group",
		Boost: DefaultBoost,
		Fields: []Field{
			{Name: "mbid", Path: "gid"},
			{Name: "name", Path: "name"},
			{Name: "name_ascii", Path: "name", Transform: transform.ASCIIFold},
			{Name: "comment", Path: "comment", Transform: transform.FillNone},
			{Name: "primarytype", Path: "primary_type", Transform: transform.FillNone},
			{Name: "artist", Path: "artist_credit.names.artist.name", Multi: true},
			{Name: "tag", Path: "tags.tag.name", Multi: true},
		},
	}
}
