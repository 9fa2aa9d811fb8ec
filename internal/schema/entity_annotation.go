// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/catalogsync/sir/internal/schema/transform"

// annotationOwners lists every join table addAnnotationSatellite wires in
// graph_data.go, in the same order, so a future owner added there is a
// one-line addition here too.
var annotationOwners = []string{
	"artist", "release", "release_group", "recording", "label",
	"work", "area", "place", "event", "series", "instrument",
}

// AnnotationEntity declares the "annotation" search core.
//
// Its "type" and "name" fields are a tagged union resolved from which
// per-owner join table (artist_annotation, release_annotation, ...) links to
// a given annotation row; exactly one owner branch ever matches a given row,
// so the materializer's merge guard keeps whichever branch's join actually
// produced a value.
func AnnotationEntity() Entity {
	fields := []Field{
		{Name: "text", Path: "text"},
		{Name: "editor", Path: "editor.name", Transform: transform.FillNone},
	}
	for _, owner := range annotationOwners {
		joinTable := owner + "_annotation"
		fields = append(fields,
			Field{Name: "type", Path: joinTable + "." + owner + ".gid", Transform: transform.AnnotationType},
			Field{Name: "name", Path: joinTable + "." + owner + ".name"},
		)
	}

	return Entity{
		Name:   "annotation",
		Table:  "annotation",
		Boost:  DefaultBoost,
		Fields: fields,
	}
}
