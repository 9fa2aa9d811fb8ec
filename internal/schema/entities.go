// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// DefaultEntities returns all sixteen search core declarations.
func DefaultEntities() []Entity {
	return []Entity{
		AnnotationEntity(),
		AreaEntity(),
		ArtistEntity(),
		CDStubEntity(),
		EditorEntity(),
		EventEntity(),
		InstrumentEntity(),
		LabelEntity(),
		PlaceEntity(),
		RecordingEntity(),
		ReleaseEntity(),
		ReleaseGroupEntity(),
		SeriesEntity(),
		TagEntity(),
		URLEntity(),
		WorkEntity(),
	}
}

// NewDefaultRegistry builds the catalog graph and registers every default
// entity against it, returning an [apperr.KindStructural] error if any
// entity's paths fail to resolve.
func NewDefaultRegistry() (*Registry, error) {
	graph := NewCatalogGraph()
	return NewRegistry(graph, DefaultEntities())
}
