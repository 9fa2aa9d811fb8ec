// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// NewCatalogGraph builds the static metadata graph for the music-metadata
// catalog: the sixteen root entity tables plus the satellite tables their
// declared field/extra paths traverse (aliases, tag joins, artist credits,
// release structure, and the polymorphic annotation/url join tables).
//
// This replaces the source project's reflection over a live SQLAlchemy
// mapper registry with an explicit, hand-authored graph, per the Design
// Notes' call for a non-reflective metadata graph.
func NewCatalogGraph() *Graph {
	g := &Graph{Models: make(map[string]*Model)}

	root := func(name string, columns ...string) *Model {
		m := &Model{Name: name, Columns: map[string]ColumnKind{}, Relationships: map[string]Relationship{}}
		for _, c := range columns {
			m.Columns[c] = ColumnPlain
		}
		g.Models[name] = m
		return m
	}

	// # Root entities

	area := root("area", "id", "gid", "name", "comment", "ended")
	artist := root("artist", "id", "gid", "name", "sort_name", "comment", "begin_date", "end_date", "ended")
	label := root("label", "id", "gid", "name", "comment", "label_code")
	place := root("place", "id", "gid", "name", "comment", "address", "coordinates")
	event := root("event", "id", "gid", "name", "comment", "time", "cancelled")
	instrument := root("instrument", "id", "gid", "name", "comment", "description")
	series := root("series", "id", "gid", "name", "comment")
	work := root("work", "id", "gid", "name", "comment", "iswc")
	recording := root("recording", "id", "gid", "name", "comment", "length", "video")
	release := root("release", "id", "gid", "name", "comment", "barcode", "language", "script")
	releaseGroup := root("release_group", "id", "gid", "name", "comment", "primary_type")
	editor := root("editor", "id", "name")
	tag := root("tag", "id", "name")
	cdstub := root("cdstub", "id", "discid", "title", "artist", "barcode", "track_count")
	url := root("url", "id", "gid", "url")
	annotation := root("annotation", "id", "text", "changelog")

	// # Alias satellites
	//
	// addAliasSatellite wires the repeated "<entity>_alias" pattern shared
	// by every aliasable entity, instead of repeating the same four lines
	// eight times.
	addAliasSatellite := func(owner *Model) {
		table := owner.Name + "_alias"
		m := root(table, "id", "name", "locale", "primary_for_locale")
		m.Relationships[owner.Name] = Relationship{Target: owner.Name, Kind: RelManyToOne, Reverse: "aliases"}
		owner.Relationships["aliases"] = Relationship{Target: table, Kind: RelOneToMany, Reverse: owner.Name}
	}
	for _, owner := range []*Model{area, artist, label, place, event, instrument, series, work} {
		addAliasSatellite(owner)
	}

	// # Tag satellites
	//
	// addTagSatellite wires the repeated "<entity>_tag" join-table pattern
	// linking an entity to the shared tag vocabulary.
	addTagSatellite := func(owner *Model) {
		table := owner.Name + "_tag"
		m := root(table, "weight")
		m.Relationships[owner.Name] = Relationship{Target: owner.Name, Kind: RelManyToOne, Reverse: "tags"}
		m.Relationships["tag"] = Relationship{Target: "tag", Kind: RelManyToOne, Reverse: owner.Name + "_tags"}
		owner.Relationships["tags"] = Relationship{Target: table, Kind: RelOneToMany, Reverse: owner.Name}
		tag.Relationships[owner.Name+"_tags"] = Relationship{Target: table, Kind: RelOneToMany, Reverse: "tag"}
	}
	for _, owner := range []*Model{area, artist, event, instrument, label, place, recording, releaseGroup, series, work} {
		addTagSatellite(owner)
	}

	// # Annotation satellites
	//
	// Each entity's annotation join is the polymorphic branch: traversing
	// "<entity>_annotation.<entity>" is how the annotation core's Transform
	// learns, via the branch argument, which entity type a given row
	// annotates, for tagged-union fields like the annotation core's "type".
	addAnnotationSatellite := func(owner *Model) {
		table := owner.Name + "_annotation"
		m := root(table)
		m.Relationships["annotation"] = Relationship{Target: "annotation", Kind: RelManyToOne, Reverse: owner.Name + "_annotation"}
		m.Relationships[owner.Name] = Relationship{Target: owner.Name, Kind: RelManyToOne, Reverse: "annotation_join"}
		owner.Relationships["annotation_join"] = Relationship{Target: table, Kind: RelOneToMany, Reverse: owner.Name}
		annotation.Relationships[owner.Name+"_annotation"] = Relationship{Target: table, Kind: RelOneToMany, Reverse: "annotation"}
	}
	for _, owner := range []*Model{artist, release, releaseGroup, recording, label, work, area, place, event, series, instrument} {
		addAnnotationSatellite(owner)
	}

	// # URL satellites
	//
	// Mirrors the annotation pattern for the url core's targettype tag.
	addURLSatellite := func(owner *Model) {
		table := "l_" + owner.Name + "_url"
		m := root(table)
		m.Relationships["url"] = Relationship{Target: "url", Kind: RelManyToOne, Reverse: owner.Name + "_urls"}
		m.Relationships[owner.Name] = Relationship{Target: owner.Name, Kind: RelManyToOne, Reverse: "url_join"}
		owner.Relationships["url_join"] = Relationship{Target: table, Kind: RelOneToMany, Reverse: owner.Name}
		url.Relationships[owner.Name+"_urls"] = Relationship{Target: table, Kind: RelOneToMany, Reverse: "url"}
	}
	for _, owner := range []*Model{artist, release, releaseGroup, recording, label, work} {
		addURLSatellite(owner)
	}

	// # Artist credit (recording, release, release_group all share this)
	artistCredit := root("artist_credit", "id", "name")
	artistCreditName := root("artist_credit_name", "position", "name", "join_phrase")
	artistCreditName.Relationships["artist"] = Relationship{Target: "artist", Kind: RelManyToOne, Reverse: "credited_as"}
	artistCreditName.Relationships["artist_credit"] = Relationship{Target: "artist_credit", Kind: RelManyToOne, Reverse: "names"}
	artistCredit.Relationships["names"] = Relationship{Target: "artist_credit_name", Kind: RelOneToMany, Reverse: "artist_credit"}
	artist.Relationships["credited_as"] = Relationship{Target: "artist_credit_name", Kind: RelOneToMany, Reverse: "artist"}

	for _, owner := range []*Model{recording, release, releaseGroup} {
		owner.Relationships["artist_credit"] = Relationship{Target: "artist_credit", Kind: RelManyToOne, Reverse: owner.Name + "s"}
		artistCredit.Relationships[owner.Name+"s"] = Relationship{Target: owner.Name, Kind: RelOneToMany, Reverse: "artist_credit"}
	}

	// # Release structure: medium -> track -> recording, release_label, release_country
	medium := root("medium", "id", "position", "format", "track_count")
	medium.Relationships["release"] = Relationship{Target: "release", Kind: RelManyToOne, Reverse: "mediums"}
	release.Relationships["mediums"] = Relationship{Target: "medium", Kind: RelOneToMany, Reverse: "release"}

	track := root("track", "id", "position", "name", "length")
	track.Relationships["medium"] = Relationship{Target: "medium", Kind: RelManyToOne, Reverse: "tracks"}
	track.Relationships["recording"] = Relationship{Target: "recording", Kind: RelManyToOne, Reverse: "tracks"}
	medium.Relationships["tracks"] = Relationship{Target: "track", Kind: RelOneToMany, Reverse: "medium"}
	recording.Relationships["tracks"] = Relationship{Target: "track", Kind: RelOneToMany, Reverse: "recording"}

	releaseLabel := root("release_label", "id", "catalog_number")
	releaseLabel.Relationships["release"] = Relationship{Target: "release", Kind: RelManyToOne, Reverse: "labels"}
	releaseLabel.Relationships["label"] = Relationship{Target: "label", Kind: RelManyToOne, Reverse: "release_labels"}
	release.Relationships["labels"] = Relationship{Target: "release_label", Kind: RelOneToMany, Reverse: "release"}
	label.Relationships["release_labels"] = Relationship{Target: "release_label", Kind: RelOneToMany, Reverse: "label"}

	countryArea := root("country_area", "id", "name", "iso_code")
	releaseCountry := root("release_country", "date_year", "date_month", "date_day")
	releaseCountry.Relationships["release"] = Relationship{Target: "release", Kind: RelManyToOne, Reverse: "countries"}
	releaseCountry.Relationships["country"] = Relationship{Target: "country_area", Kind: RelManyToOne, Reverse: "release_countries"}
	release.Relationships["countries"] = Relationship{Target: "release_country", Kind: RelOneToMany, Reverse: "release"}
	countryArea.Relationships["release_countries"] = Relationship{Target: "release_country", Kind: RelOneToMany, Reverse: "country"}

	// # Area hierarchy + ISO codes
	iso1 := root("iso_3166_1", "code")
	iso1.Relationships["area"] = Relationship{Target: "area", Kind: RelManyToOne, Reverse: "iso_3166_1_codes"}
	area.Relationships["iso_3166_1_codes"] = Relationship{Target: "iso_3166_1", Kind: RelOneToMany, Reverse: "area"}

	areaLink := root("area_containment", "depth")
	areaLink.Relationships["parent"] = Relationship{Target: "area", Kind: RelManyToOne, Reverse: "descendant_links"}
	areaLink.Relationships["child"] = Relationship{Target: "area", Kind: RelManyToOne, Reverse: "ancestor_links"}
	area.Relationships["descendant_links"] = Relationship{Target: "area_containment", Kind: RelOneToMany, Reverse: "parent"}
	area.Relationships["ancestor_links"] = Relationship{Target: "area_containment", Kind: RelOneToMany, Reverse: "child"}

	for _, owner := range []*Model{artist, place, label, event} {
		owner.Relationships["area"] = Relationship{Target: "area", Kind: RelManyToOne, Reverse: owner.Name + "s"}
		area.Relationships[owner.Name+"s"] = Relationship{Target: owner.Name, Kind: RelOneToMany, Reverse: "area"}
	}
	// Artist additionally distinguishes begin/end area, the classic
	// multiple-inbound-path example for area's dependency-index entry.
	artist.Relationships["begin_area"] = Relationship{Target: "area", Kind: RelManyToOne, Reverse: "artists_begin"}
	artist.Relationships["end_area"] = Relationship{Target: "area", Kind: RelManyToOne, Reverse: "artists_end"}
	area.Relationships["artists_begin"] = Relationship{Target: "artist", Kind: RelOneToMany, Reverse: "begin_area"}
	area.Relationships["artists_end"] = Relationship{Target: "artist", Kind: RelOneToMany, Reverse: "end_area"}

	// # Editor — annotation author
	annotation.Relationships["editor"] = Relationship{Target: "editor", Kind: RelManyToOne, Reverse: "annotations"}
	editor.Relationships["annotations"] = Relationship{Target: "annotation", Kind: RelOneToMany, Reverse: "editor"}

	return g
}
