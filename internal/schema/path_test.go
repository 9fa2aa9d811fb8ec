// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueSplitPaths(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  []string
	}{
		{
			name:  "single path expands every prefix",
			paths: []string{"area.aliases.name"},
			want:  []string{"area", "area.aliases", "area.aliases.name"},
		},
		{
			name:  "duplicate prefixes collapse",
			paths: []string{"area.aliases.name", "area.iso_3166_1_codes.code"},
			want:  []string{"area", "area.aliases", "area.aliases.name", "area.iso_3166_1_codes", "area.iso_3166_1_codes.code"},
		},
		{
			name:  "empty paths are skipped",
			paths: []string{"", "name"},
			want:  []string{"name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UniqueSplitPaths(tt.paths)
			assert.True(t, sort.StringsAreSorted(got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTailKindOf(t *testing.T) {
	g := NewCatalogGraph()

	tests := []struct {
		name string
		root string
		path string
		want TailKind
	}{
		{"plain column", "area", "name", TailColumn},
		{"many to one", "artist", "area", TailManyToOne},
		{"one to many", "area", "aliases", TailToMany},
		{"unresolved segment", "area", "does_not_exist", TailUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TailKindOf(g, tt.root, tt.path))
		})
	}
}

// TestReversePathAreaAlias checks that a change to area_alias resolves back
// to exactly the six affected entries: area's own aliases, three artist
// paths (area, begin_area, end_area), and one each for label and place.
func TestReversePathAreaAlias(t *testing.T) {
	g := NewCatalogGraph()

	reg, err := NewDefaultRegistry()
	require.NoError(t, err)

	type entry struct {
		core        string
		reversePath string
	}
	var got []entry

	for _, coreName := range reg.Iterate() {
		e, _ := reg.Get(coreName)
		for _, prefix := range UniqueSplitPaths(e.Paths()) {
			table, reversePath, err := ReversePath(g, e.Table, prefix)
			if err != nil {
				continue
			}
			if table == "area_alias" {
				got = append(got, entry{core: coreName, reversePath: reversePath})
			}
		}
	}

	want := []entry{
		{core: "area", reversePath: "area"},
		{core: "artist", reversePath: "area.artists"},
		{core: "artist", reversePath: "area.artists_begin"},
		{core: "artist", reversePath: "area.artists_end"},
		{core: "label", reversePath: "area.labels"},
		{core: "place", reversePath: "area.places"},
	}

	sort.Slice(got, func(i, j int) bool {
		if got[i].core != got[j].core {
			return got[i].core < got[j].core
		}
		return got[i].reversePath < got[j].reversePath
	})
	sort.Slice(want, func(i, j int) bool {
		if want[i].core != want[j].core {
			return want[i].core < want[j].core
		}
		return want[i].reversePath < want[j].reversePath
	})

	assert.Equal(t, want, got)
}
