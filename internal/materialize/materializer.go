// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package materialize

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/catalogsync/sir/internal/platform/apperr"
	"github.com/catalogsync/sir/internal/platform/dberr"
	"github.com/catalogsync/sir/internal/schema"
)

// Rows is the narrow slice of pgx.Rows the materializer actually consumes,
// cut down so tests can fake a result set without a real connection.
// *pgxpool.Pool's Query already returns a pgx.Rows satisfying this.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Querier is the slice of *pgxpool.Pool the materializer needs, narrowed so
// tests can substitute a fake without standing up a database.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// poolQuerier adapts *pgxpool.Pool to [Querier].
type poolQuerier struct {
	pool *pgxpool.Pool
}

func (p poolQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return p.pool.Query(ctx, sql, args...)
}

// NewMaterializerFromPool builds a Materializer backed by a live connection
// pool.
func NewMaterializerFromPool(pool *pgxpool.Pool, graph *schema.Graph, logger *slog.Logger) *Materializer {
	return NewMaterializer(poolQuerier{pool: pool}, graph, logger)
}

// Materializer builds and executes the query graph for one core's fields
// and hands the assembled documents to a [Serializer].
type Materializer struct {
	db     Querier
	graph  *schema.Graph
	logger *slog.Logger
}

// NewMaterializer builds a Materializer over db, resolving field paths
// against graph.
func NewMaterializer(db Querier, graph *schema.Graph, logger *slog.Logger) *Materializer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Materializer{db: db, graph: graph, logger: logger}
}

// MaterializeMany fetches and serializes one document per pk in pks.
//
// A [apperr.KindData] or [apperr.KindSemantic] failure for one pk is logged
// and skipped so the rest of the batch still materializes; any
// other error aborts the batch and is returned to the caller, since it
// signals a problem (a broken connection, a malformed field declaration)
// that will recur for every remaining pk.
func (m *Materializer) MaterializeMany(ctx context.Context, entity schema.Entity, pkColumn string, pks []any, ser Serializer) (int, error) {
	ok := 0
	for _, pk := range pks {
		err := m.one(ctx, entity, pkColumn, pk, ser)
		switch {
		case err == nil:
			ok++
		case apperr.KindOf(err) == apperr.KindData:
			m.logger.Info("materialize_skip_missing_row",
				slog.String("core", entity.Name), slog.Any("pk", pk))
		case apperr.KindOf(err) == apperr.KindSemantic:
			m.logger.Warn("materialize_skip_transform_error",
				slog.String("core", entity.Name), slog.Any("pk", pk), slog.Any("error", err))
		default:
			return ok, err
		}
	}
	return ok, nil
}

func (m *Materializer) one(ctx context.Context, entity schema.Entity, pkColumn string, pk any, ser Serializer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperr.Semantic(fmt.Errorf("%v", r), "materialize: transform panicked")
		}
	}()

	doc := Document{Core: entity.Name, PK: pk, Boost: entity.Boost, Fields: make(map[string]any, len(entity.Fields))}

	rootExists := false

	for _, f := range entity.Fields {
		plan, perr := buildJoinPlan(m.graph, entity.Table, f.Path)
		if perr != nil {
			m.logger.Warn("materialize_unresolved_field",
				slog.String("core", entity.Name), slog.String("field", f.Name), slog.Any("error", perr))
			continue
		}
		if plan.selectExpr == "" {
			// Tail is a bare relationship (an extra-path declared only to
			// feed the dependency index); nothing to select as a field.
			continue
		}

		query := plan.buildSQL(entity.Table, pkColumn, false)
		values, rowsSeen, qerr := m.collect(ctx, query, pk)
		if qerr != nil {
			return dberr.Wrap(qerr, "materialize_field_"+f.Name)
		}
		if rowsSeen {
			rootExists = true
		}

		branch := branchOf(f.Path)

		if f.Multi || plan.multi {
			collected := make([]any, 0, len(values))
			for _, v := range values {
				if v == nil {
					continue
				}
				tv, terr := applyTransform(f, v, branch)
				if terr != nil {
					return apperr.Semantic(terr, "materialize: transform failed for field "+f.Name)
				}
				collected = append(collected, tv)
			}
			// A tagged-union field (several owner branches sharing one Name,
			// e.g. annotation's per-owner "type"/"name") must not let a
			// non-matching branch's empty result erase an earlier branch's
			// genuine match, so only a non-empty result replaces what's there.
			if len(collected) > 0 || doc.Fields[f.Name] == nil {
				doc.Fields[f.Name] = collected
			}
			continue
		}

		var raw any
		if len(values) > 0 {
			raw = values[0]
		}
		tv, terr := applyTransform(f, raw, branch)
		if terr != nil {
			return apperr.Semantic(terr, "materialize: transform failed for field "+f.Name)
		}
		if tv != nil || doc.Fields[f.Name] == nil {
			doc.Fields[f.Name] = tv
		}
	}

	for _, p := range entity.Extension {
		compute, ok := profileRegistry[entity.Name][p.Field]
		if !ok {
			m.logger.Warn("materialize_unregistered_profile",
				slog.String("core", entity.Name), slog.String("field", p.Field))
			continue
		}
		value, perr := compute(ctx, m.db, pk)
		if perr != nil {
			return dberr.Wrap(perr, "materialize_profile_"+p.Field)
		}
		doc.Fields[p.Field] = value
	}

	if !rootExists {
		return apperr.DataNotFound(fmt.Sprintf("%s pk=%v", entity.Name, pk))
	}

	return ser.Serialize(ctx, doc)
}

// collect runs query for the single pk and returns every non-key column
// value produced, plus whether at least one row (i.e. the root itself)
// was found — a field resolved over a LEFT JOIN to-many path still
// produces exactly one row with a NULL tail when the root has no children.
func (m *Materializer) collect(ctx context.Context, query string, pk any) ([]any, bool, error) {
	rows, err := m.db.Query(ctx, query, pk)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var values []any
	seen := false
	for rows.Next() {
		seen = true
		var pkVal, fieldVal any
		if err := rows.Scan(&pkVal, &fieldVal); err != nil {
			return nil, seen, err
		}
		values = append(values, fieldVal)
	}
	if err := rows.Err(); err != nil {
		return nil, seen, err
	}

	return values, seen, nil
}

func applyTransform(f schema.Field, value any, branch string) (any, error) {
	if f.Transform == nil {
		return value, nil
	}
	return f.Transform(value, branch)
}
