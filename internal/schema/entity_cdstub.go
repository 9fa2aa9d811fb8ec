// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/catalogsync/sir/internal/schema/transform"

// CDStubEntity declares the "cdstub" search core (MusicBrainz's release_raw).
func CDStubEntity() Entity {
	return Entity{
		Name:  "cdstub",
		Table: "cdstub",
		Boost: DefaultBoost,
		Fields: []Field{
			{Name: "title", Path: "title"},
			{Name: "artist", Path: "artist", Transform: transform.FillNone},
			{Name: "barcode", Path: "barcode", Transform: transform.FillNone},
			{Name: "discids", Path: "discid"},
			{Name: "tracks", Path: "track_count"},
		},
	}
}
