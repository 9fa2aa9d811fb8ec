// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package materialize implements the entity materializer: given a core and a
set of root primary keys, it fetches the object graph reachable through
the core's declared fields and extra paths, applies every field's
transform, and hands the assembled document to a [Serializer].

The relational ORM and the search-backend document schema are external
collaborators referenced only by interface here.
*/
package materialize

import "context"

// Document is one materialized, boosted entity, ready for serialization.
type Document struct {
	Core   string
	PK     any
	Boost  float64
	Fields map[string]any
}

// Serializer turns a materialized document into whatever body the search
// backend expects. It is an external collaborator: this package only ever
// calls it, never implements it; the document serializer lives outside
// this package.
type Serializer interface {
	Serialize(ctx context.Context, doc Document) error
}
