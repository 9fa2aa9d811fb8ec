// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultRegistryResolvesEveryPath(t *testing.T) {
	reg, err := NewDefaultRegistry()
	require.NoError(t, err)
	assert.Equal(t, 16, reg.Len())

	names := reg.Iterate()
	assert.True(t, len(names) == 16)
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i], "Iterate must return sorted core names")
	}
}

func TestNewRegistryRejectsUnresolvedPath(t *testing.T) {
	g := NewCatalogGraph()

	_, err := NewRegistry(g, []Entity{{
		Name:  "broken",
		Table: "area",
		Fields: []Field{
			{Name: "bogus", Path: "does_not_exist"},
		},
	}})

	require.Error(t, err)
}

func TestNewRegistryRejectsUnknownRootTable(t *testing.T) {
	g := NewCatalogGraph()

	_, err := NewRegistry(g, []Entity{{
		Name:  "ghost",
		Table: "no_such_table",
	}})

	require.Error(t, err)
}

func TestNewRegistryRejectsDuplicateNames(t *testing.T) {
	g := NewCatalogGraph()

	_, err := NewRegistry(g, []Entity{
		{Name: "area", Table: "area"},
		{Name: "area", Table: "area"},
	})

	require.Error(t, err)
}
