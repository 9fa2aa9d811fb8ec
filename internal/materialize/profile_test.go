// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package materialize

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogsync/sir/internal/schema"
)

// scalarRows replays a single scalar column, one row per value — enough to
// exercise a profileFunc's count/single-row Scan without pgx.
type scalarRows struct {
	values []any
	idx    int
}

func (r *scalarRows) Next() bool {
	if r.idx >= len(r.values) {
		return false
	}
	r.idx++
	return true
}

func (r *scalarRows) Scan(dest ...any) error {
	v := r.values[r.idx-1]
	switch d := dest[0].(type) {
	case *int64:
		*d = v.(int64)
	case *string:
		*d = v.(string)
	default:
		return errors.New("scalarRows: unsupported dest type")
	}
	return nil
}

func (r *scalarRows) Err() error { return nil }
func (r *scalarRows) Close()     {}

type scalarQuerier struct {
	values []any
	err    error
}

func (q *scalarQuerier) Query(_ context.Context, _ string, _ ...any) (Rows, error) {
	if q.err != nil {
		return nil, q.err
	}
	return &scalarRows{values: q.values}, nil
}

func TestAreaRefCountSumsOwners(t *testing.T) {
	q := &scalarQuerier{values: []any{int64(7)}}
	v, err := areaRefCount(context.Background(), q, int64(1))
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)
}

func TestAreaRefCountPropagatesQueryError(t *testing.T) {
	q := &scalarQuerier{err: errors.New("connection reset")}
	_, err := areaRefCount(context.Background(), q, int64(1))
	assert.Error(t, err)
}

func TestArtistPrimaryAliasReturnsName(t *testing.T) {
	q := &scalarQuerier{values: []any{"Madonna"}}
	v, err := artistPrimaryAlias(context.Background(), q, int64(42))
	require.NoError(t, err)
	assert.Equal(t, "Madonna", v)
}

func TestArtistPrimaryAliasReturnsNilWhenNoRow(t *testing.T) {
	q := &scalarQuerier{values: nil}
	v, err := artistPrimaryAlias(context.Background(), q, int64(42))
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestMaterializerSkipsUnregisteredProfile(t *testing.T) {
	g := schema.NewCatalogGraph()
	entity := schema.Entity{
		Name:  "area",
		Table: "area",
		Boost: schema.DefaultBoost,
		Fields: []schema.Field{
			{Name: "name", Path: "name"},
		},
		Extension: []schema.Profile{
			{Field: "nonexistent_field", Description: "not registered, for test purposes"},
		},
	}

	q := &fakeQuerier{handlers: map[string]func(pk any) []fakeRow{
		"r0.name": func(pk any) []fakeRow {
			return []fakeRow{{pk: pk, value: "Reykjavik"}}
		},
	}}
	ser := &fakeSerializer{}

	m := NewMaterializer(q, g, nil)
	n, err := m.MaterializeMany(context.Background(), entity, "id", []any{int64(1)}, ser)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, ser.docs, 1)
	_, present := ser.docs[0].Fields["nonexistent_field"]
	assert.False(t, present, "an unregistered profile must not appear in the document")
}
