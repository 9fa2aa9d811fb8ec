// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package router

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/catalogsync/sir/internal/depindex"
	"github.com/catalogsync/sir/internal/materialize"
	"github.com/catalogsync/sir/internal/platform/apperr"
	"github.com/catalogsync/sir/internal/schema"
)

// poolQuerier adapts *pgxpool.Pool to [Querier].
type poolQuerier struct {
	pool *pgxpool.Pool
}

func (p poolQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return p.pool.Query(ctx, sql, args...)
}

// Materializer is the slice of [materialize.Materializer] the router
// drives, narrowed so tests can substitute a fake.
type Materializer interface {
	MaterializeMany(ctx context.Context, entity schema.Entity, pkColumn string, pks []any, ser materialize.Serializer) (int, error)
}

// Dispatch is the slice of [dispatch.Registry] the router needs: an
// upsert path shared with the materializer (via Serializer) plus a direct
// delete path for root-table deletes.
type Dispatch interface {
	AsSerializer() materialize.Serializer
	Delete(ctx context.Context, core string, pk any) error
}

// Router resolves change messages against a dependency index and drives
// materialization and dispatch.
type Router struct {
	idx      *depindex.Index
	registry *schema.Registry
	db       Querier
	mat      Materializer
	dispatch Dispatch
	logger   *slog.Logger
}

// New builds a Router over the given dependency index, schema registry,
// resolution-query connection, materializer, and dispatcher.
func New(idx *depindex.Index, registry *schema.Registry, db Querier, mat Materializer, dispatch Dispatch, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{idx: idx, registry: registry, db: db, mat: mat, dispatch: dispatch, logger: logger}
}

// NewFromPool builds a Router backed by a live connection pool.
func NewFromPool(idx *depindex.Index, registry *schema.Registry, pool *pgxpool.Pool, mat Materializer, dispatch Dispatch, logger *slog.Logger) *Router {
	return New(idx, registry, poolQuerier{pool: pool}, mat, dispatch, logger)
}

// Route looks up the table's inverse entries, applies the column-change
// filter for updates, and for each entry either
// upsert or delete the affected core documents, deduplicating (core, pk)
// within this one message.
//
// The tie-break rule — "delete on a non-root table is always treated as an
// update" — needs no special case here: a non-empty ReversePath always
// resolves to an upsert regardless of msg.Operation, which is exactly that
// rule restated structurally.
func (r *Router) Route(ctx context.Context, msg Message) error {
	entries := r.idx.EntriesFor(msg.Table)
	if len(entries) == 0 {
		r.logger.Debug("router_irrelevant_table", slog.String("table", msg.Table))
		return nil
	}

	if msg.Operation == OpUpdate && !r.changedColumnsRelevant(msg) {
		r.logger.Debug("router_irrelevant_update", slog.String("table", msg.Table))
		return nil
	}

	seen := make(map[string]bool)
	var firstErr error

	for _, entry := range entries {
		entity, ok := r.registry.Get(entry.Core)
		if !ok {
			continue
		}

		if entry.ReversePath == "" {
			if err := r.routeRoot(ctx, entity, msg, seen); err != nil && firstErr == nil {
				firstErr = err
			}
			continue
		}

		if err := r.routeNonRoot(ctx, entity, entry, msg, seen); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

func (r *Router) changedColumnsRelevant(msg Message) bool {
	if len(msg.Changed) == 0 {
		// No explicit changed-column set was supplied; err on the side of
		// refreshing rather than silently dropping a legitimate update.
		return true
	}
	for _, col := range msg.Changed {
		if r.idx.ColumnRelevant(msg.Table, col) {
			return true
		}
	}
	return false
}

func (r *Router) routeRoot(ctx context.Context, entity schema.Entity, msg Message, seen map[string]bool) error {
	if msg.Operation == OpDelete {
		pk, ok := rootDeleteKey(msg)
		if !ok {
			return nil
		}
		key := dedupeKey(entity.Name, pk)
		if seen[key] {
			return nil
		}
		seen[key] = true
		return r.dispatch.Delete(ctx, entity.Name, pk)
	}

	pk, ok := msg.Columns["id"]
	if !ok {
		r.logger.Warn("router_missing_root_pk", slog.String("core", entity.Name), slog.String("table", msg.Table))
		return nil
	}
	key := dedupeKey(entity.Name, pk)
	if seen[key] {
		return nil
	}
	seen[key] = true

	_, err := r.mat.MaterializeMany(ctx, entity, "id", []any{pk}, r.dispatch.AsSerializer())
	return err
}

func (r *Router) routeNonRoot(ctx context.Context, entity schema.Entity, entry depindex.InverseEntry, msg Message, seen map[string]bool) error {
	changedPK, ok := msg.Columns["id"]
	if !ok {
		r.logger.Warn("router_missing_changed_pk", slog.String("table", msg.Table))
		return nil
	}

	pks, err := resolveRootPKs(ctx, r.db, r.registry.Graph(), msg.Table, entry.ReversePath, changedPK)
	if err != nil {
		return apperr.Transient(err, fmt.Sprintf("router_resolve_%s_via_%s", entity.Name, entry.ReversePath))
	}

	var fresh []any
	for _, pk := range pks {
		key := dedupeKey(entity.Name, pk)
		if seen[key] {
			continue
		}
		seen[key] = true
		fresh = append(fresh, pk)
	}
	if len(fresh) == 0 {
		return nil
	}

	_, err = r.mat.MaterializeMany(ctx, entity, "id", fresh, r.dispatch.AsSerializer())
	return err
}

func rootDeleteKey(msg Message) (any, bool) {
	if v, ok := msg.Columns["gid"]; ok {
		return v, true
	}
	if v, ok := msg.Columns["id"]; ok {
		return v, true
	}
	return nil, false
}

func dedupeKey(core string, pk any) string {
	return core + "|" + fmt.Sprint(pk)
}
