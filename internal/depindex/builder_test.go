// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package depindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogsync/sir/internal/schema"
)

func buildTestIndex(t *testing.T) (*schema.Registry, *Index) {
	t.Helper()
	reg, err := schema.NewDefaultRegistry()
	require.NoError(t, err)
	return reg, Build(reg, nil)
}

// TestBuildIsDeterministic is Testable Property 1: two builds of the same
// registry must be byte-identical.
func TestBuildIsDeterministic(t *testing.T) {
	reg, err := schema.NewDefaultRegistry()
	require.NoError(t, err)

	first := Build(reg, nil)
	second := Build(reg, nil)

	assert.Equal(t, first.Forward, second.Forward)
	assert.Equal(t, first.Inverse, second.Inverse)
	assert.Equal(t, first.Columns, second.Columns)
}

// TestInverseClosure is Testable Property 2: every table named in any
// core's forward list must itself carry an inverse entry pointing back to
// that core.
func TestInverseClosure(t *testing.T) {
	_, idx := buildTestIndex(t)

	for core, tables := range idx.Forward {
		for _, table := range tables {
			entries := idx.Inverse[table]
			found := false
			for _, e := range entries {
				if e.Core == core {
					found = true
					break
				}
			}
			assert.True(t, found, "table %q has no inverse entry back to core %q", table, core)
		}
	}
}

// TestColumnClosure checks a structural side of Testable Property 3: every
// table with recorded columns also has inverse entries, and no recorded
// column set is empty.
func TestColumnClosure(t *testing.T) {
	_, idx := buildTestIndex(t)

	for table, cols := range idx.Columns {
		assert.NotEmpty(t, idx.Inverse[table], "table %q has recorded columns but no inverse entries", table)
		assert.NotEmpty(t, cols)
	}
}

func TestAreaAliasInverseEntries(t *testing.T) {
	_, idx := buildTestIndex(t)

	entries := idx.Inverse["area_alias"]
	require.Len(t, entries, 6)

	want := map[string]string{
		"area":  "area",
		"label": "area.labels",
		"place": "area.places",
	}
	got := make(map[string][]string)
	for _, e := range entries {
		got[e.Core] = append(got[e.Core], e.ReversePath)
	}

	for core, reversePath := range want {
		assert.Contains(t, got[core], reversePath)
	}
	assert.Len(t, got["artist"], 3)
	assert.Contains(t, got["artist"], "area.artists")
	assert.Contains(t, got["artist"], "area.artists_begin")
	assert.Contains(t, got["artist"], "area.artists_end")
}

func TestRegistryIterateDeterminesForwardBuildOrder(t *testing.T) {
	reg, idx := buildTestIndex(t)
	names := reg.Iterate()
	for _, n := range names {
		assert.NotNil(t, idx.Forward[n])
	}
}
