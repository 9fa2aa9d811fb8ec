// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/catalogsync/sir/internal/schema/transform"

// ReleaseEntity declares the "release" search core.
func ReleaseEntity() Entity {
	return Entity{
		Name:  "release",
		Table: "release",
		Boost: DefaultBoost,
		Fields: []Field{
			{Name: "mbid", Path: "gid"},
			{Name: "name", Path: "name"},
			{Name: "name_ascii", Path: "name", Transform: transform.ASCIIFold},
			{Name: "comment", Path: "comment", Transform: transform.FillNone},
			{Name: "barcode", Path: "barcode", Transform: transform.FillNone},
			{Name: "lang", Path: "language"},
			{Name: "script", Path: "script"},
			{Name: "artist", Path: "artist_credit.names.artist.name", Multi: true},
			{Name: "label", Path: "labels.label.name", Multi: true},
			{Name: "catno", Path: "labels.catalog_number", Multi: true},
			{Name: "country", Path: "countries.country.name", Multi: true},
			{Name: "tracks", Path: "mediums.track_count", Transform: transform.IntegerSum, Multi: true},
		},
	}
}
