// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/catalogsync/sir/internal/schema/transform"

// RecordingEntity declares the "recording" search core.
func RecordingEntity() Entity {
	return Entity{
		Name:  "recording",
		Table: "recording",
		Boost: DefaultBoost,
		Fields: []Field{
			{Name: "mbid", Path: "gid"},
			{Name: "name", Path: "name"},
			{Name: "name_ascii", Path: "name", Transform: transform.ASCIIFold},
			{Name: "comment", Path: "comment", Transform: transform.FillNone},
			{Name: "dur", Path: "length", Transform: transform.Qdur},
			{Name: "video", Path: "video", Transform: transform.Boolean},
			{Name: "artist", Path: "artist_credit.names.artist.name", Multi: true},
			{Name: "tag", Path: "tags.tag.name", Multi: true},
		},
	}
}
