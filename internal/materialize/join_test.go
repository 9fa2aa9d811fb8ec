// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package materialize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogsync/sir/internal/schema"
)

func TestBuildJoinPlanDirectColumn(t *testing.T) {
	g := schema.NewCatalogGraph()

	plan, err := buildJoinPlan(g, "area", "name")
	require.NoError(t, err)
	assert.Equal(t, "r0.name", plan.selectExpr)
	assert.Empty(t, plan.joins)
	assert.False(t, plan.multi)
}

func TestBuildJoinPlanManyToOne(t *testing.T) {
	g := schema.NewCatalogGraph()

	plan, err := buildJoinPlan(g, "artist", "area.name")
	require.NoError(t, err)
	assert.False(t, plan.multi)
	require.Len(t, plan.joins, 1)
	assert.Equal(t, "JOIN area t1 ON t1.id = r0.area", plan.joins[0])
	assert.Equal(t, "t1.name", plan.selectExpr)
}

func TestBuildJoinPlanToMany(t *testing.T) {
	g := schema.NewCatalogGraph()

	plan, err := buildJoinPlan(g, "area", "aliases.name")
	require.NoError(t, err)
	assert.True(t, plan.multi)
	require.Len(t, plan.joins, 1)
	assert.Equal(t, "LEFT JOIN area_alias t1 ON t1.area = r0.id", plan.joins[0])
	assert.Equal(t, "t1.name", plan.selectExpr)
}

func TestBuildJoinPlanBareRelationshipTailHasNoSelect(t *testing.T) {
	g := schema.NewCatalogGraph()

	plan, err := buildJoinPlan(g, "artist", "aliases")
	require.NoError(t, err)
	assert.Empty(t, plan.selectExpr)
}

func TestBuildSQLBatchVsSingle(t *testing.T) {
	g := schema.NewCatalogGraph()
	plan, err := buildJoinPlan(g, "area", "name")
	require.NoError(t, err)

	single := plan.buildSQL("area", "id", false)
	assert.Contains(t, single, "WHERE r0.id = $1")

	batch := plan.buildSQL("area", "id", true)
	assert.Contains(t, batch, "WHERE r0.id = ANY($1)")
}

func TestBranchOf(t *testing.T) {
	assert.Equal(t, "artist_urls", branchOf("artist_urls.artist.gid"))
	assert.Equal(t, "text", branchOf("text"))
}
