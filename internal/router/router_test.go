// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogsync/sir/internal/depindex"
	"github.com/catalogsync/sir/internal/materialize"
	"github.com/catalogsync/sir/internal/schema"
)

type materializeCall struct {
	core string
	pks  []any
}

type fakeMaterializer struct {
	calls []materializeCall
	err   error
}

func (f *fakeMaterializer) MaterializeMany(_ context.Context, entity schema.Entity, _ string, pks []any, _ materialize.Serializer) (int, error) {
	f.calls = append(f.calls, materializeCall{core: entity.Name, pks: pks})
	if f.err != nil {
		return 0, f.err
	}
	return len(pks), nil
}

type deleteCall struct {
	core string
	pk   any
}

type fakeDispatch struct {
	deletes []deleteCall
}

func (f *fakeDispatch) AsSerializer() materialize.Serializer {
	return noopSerializer{}
}

func (f *fakeDispatch) Delete(_ context.Context, core string, pk any) error {
	f.deletes = append(f.deletes, deleteCall{core: core, pk: pk})
	return nil
}

type noopSerializer struct{}

func (noopSerializer) Serialize(context.Context, materialize.Document) error { return nil }

// fakeResolveRows returns a fixed set of root pk rows for every query.
type fakeResolveRows struct {
	vals []any
	idx  int
}

func (r *fakeResolveRows) Next() bool {
	if r.idx >= len(r.vals) {
		return false
	}
	r.idx++
	return true
}
func (r *fakeResolveRows) Scan(dest ...any) error {
	*dest[0].(*any) = r.vals[r.idx-1]
	return nil
}
func (r *fakeResolveRows) Err() error { return nil }
func (r *fakeResolveRows) Close()     {}

type fakeQuerier struct {
	queries []string
	result  []any
}

func (q *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (Rows, error) {
	q.queries = append(q.queries, sql)
	return &fakeResolveRows{vals: q.result}, nil
}

func testRouter(t *testing.T, idx *depindex.Index, mat *fakeMaterializer, disp *fakeDispatch, db *fakeQuerier) *Router {
	t.Helper()
	reg, err := schema.NewDefaultRegistry()
	require.NoError(t, err)
	if idx == nil {
		idx = depindex.Build(reg, nil)
	}
	return New(idx, reg, db, mat, disp, nil)
}

// TestRouteRootInsert is S1: a root insert resolves to exactly one
// materialize call for the artist core.
func TestRouteRootInsert(t *testing.T) {
	mat := &fakeMaterializer{}
	disp := &fakeDispatch{}
	db := &fakeQuerier{}
	r := testRouter(t, nil, mat, disp, db)

	err := r.Route(context.Background(), Message{
		Table:     "artist",
		Operation: OpInsert,
		Columns:   map[string]any{"id": int64(7)},
	})
	require.NoError(t, err)

	require.Len(t, mat.calls, 1)
	assert.Equal(t, "artist", mat.calls[0].core)
	assert.Equal(t, []any{int64(7)}, mat.calls[0].pks)
	assert.Empty(t, disp.deletes)
}

// TestRouteRootDelete is S2: a root delete dispatches a direct delete by
// gid and never touches the materializer.
func TestRouteRootDelete(t *testing.T) {
	mat := &fakeMaterializer{}
	disp := &fakeDispatch{}
	db := &fakeQuerier{}
	r := testRouter(t, nil, mat, disp, db)

	const gid = "90d7709d-feba-47e6-a2d1-8770da3c3d9c"
	err := r.Route(context.Background(), Message{
		Table:     "artist",
		Operation: OpDelete,
		Columns:   map[string]any{"gid": gid},
	})
	require.NoError(t, err)

	assert.Empty(t, mat.calls)
	require.Len(t, disp.deletes, 1)
	assert.Equal(t, "artist", disp.deletes[0].core)
	assert.Equal(t, gid, disp.deletes[0].pk)
}

// TestRouteAreaAliasFanOut is S3: a delete on area_alias (a non-root table)
// runs six resolution queries, one per reverse path that reaches area_alias,
// and every resolved pk becomes an upsert regardless of the incoming
// operation being a delete. The fake querier resolves every query to pk 42,
// so artist's three reverse paths dedupe to a single artist materialize call.
func TestRouteAreaAliasFanOut(t *testing.T) {
	mat := &fakeMaterializer{}
	disp := &fakeDispatch{}
	db := &fakeQuerier{result: []any{int64(42)}}
	r := testRouter(t, nil, mat, disp, db)

	err := r.Route(context.Background(), Message{
		Table:     "area_alias",
		Operation: OpDelete,
		Columns:   map[string]any{"id": int64(1), "area": int64(2)},
	})
	require.NoError(t, err)

	assert.Empty(t, disp.deletes, "non-root changes never dispatch a direct delete")
	assert.Len(t, mat.calls, 4, "area, artist (3 reverse paths, one pk), label, place")
	assert.Len(t, db.queries, 6)

	cores := make(map[string]int)
	for _, c := range mat.calls {
		cores[c.core]++
	}
	assert.Equal(t, 1, cores["artist"])
	assert.Equal(t, 1, cores["area"])
	assert.Equal(t, 1, cores["label"])
	assert.Equal(t, 1, cores["place"])
}

// TestRouteIrrelevantUpdateDropped is S6.
func TestRouteIrrelevantUpdateDropped(t *testing.T) {
	mat := &fakeMaterializer{}
	disp := &fakeDispatch{}
	db := &fakeQuerier{}
	r := testRouter(t, nil, mat, disp, db)

	err := r.Route(context.Background(), Message{
		Table:     "artist",
		Operation: OpUpdate,
		Columns:   map[string]any{"id": int64(1)},
		Changed:   []string{"some_untracked_column"},
	})
	require.NoError(t, err)
	assert.Empty(t, mat.calls)
}

// TestRouteUnknownTableDropped covers "a message referring to a table not
// in inverse is acknowledged and dropped".
func TestRouteUnknownTableDropped(t *testing.T) {
	mat := &fakeMaterializer{}
	disp := &fakeDispatch{}
	db := &fakeQuerier{}
	r := testRouter(t, nil, mat, disp, db)

	err := r.Route(context.Background(), Message{Table: "no_such_table", Operation: OpInsert})
	require.NoError(t, err)
	assert.Empty(t, mat.calls)
}

// TestRouteDedupesWithinOneMessage is Property 4's dedup half: the same
// (core, pk) reached by two reverse-paths is materialized only once.
func TestRouteDedupesWithinOneMessage(t *testing.T) {
	mat := &fakeMaterializer{}
	disp := &fakeDispatch{}
	db := &fakeQuerier{result: []any{int64(9)}}
	r := testRouter(t, nil, mat, disp, db)

	err := r.Route(context.Background(), Message{
		Table:     "area_alias",
		Operation: OpUpdate,
		Columns:   map[string]any{"id": int64(1)},
	})
	require.NoError(t, err)

	seenArtistPKs := map[any]int{}
	for _, c := range mat.calls {
		if c.core != "artist" {
			continue
		}
		for _, pk := range c.pks {
			seenArtistPKs[pk]++
		}
	}
	for pk, n := range seenArtistPKs {
		assert.Equal(t, 1, n, "pk %v materialized more than once for artist", pk)
	}
}
