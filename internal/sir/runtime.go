// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package sir bundles the process-wide dependencies every entrypoint
(cmd/indexer, cmd/reindex) needs into one explicit [Runtime] value,
constructed once at startup and passed down instead of relying on
package-level singletons.
*/
package sir

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/catalogsync/sir/internal/depindex"
	"github.com/catalogsync/sir/internal/dispatch"
	"github.com/catalogsync/sir/internal/platform/apperr"
	"github.com/catalogsync/sir/internal/schema"
)

// Runtime bundles the schema registry, derived dependency index, database
// pool, search-core dispatch registry, and logger shared by every
// component wired in cmd/indexer and cmd/reindex.
type Runtime struct {
	Registry *schema.Registry
	Index    *depindex.Index
	Pool     *pgxpool.Pool
	Dispatch *dispatch.Registry
	Logger   *slog.Logger
}

// New builds the schema registry and dependency index and bundles them
// with pool, dispatch, and logger into a Runtime.
//
// A registry or index build failure is always [apperr.KindStructural]: the
// graph or an entity's path declarations disagree with the relational
// schema, and no queue should be subscribed to until that is fixed.
func New(ctx context.Context, pool *pgxpool.Pool, dispatch *dispatch.Registry, logger *slog.Logger) (*Runtime, error) {
	if logger == nil {
		logger = slog.Default()
	}

	registry, err := schema.NewDefaultRegistry()
	if err != nil {
		return nil, apperr.Structural("runtime: schema registry build failed: " + err.Error())
	}

	idx := depindex.Build(registry, logger)

	logger.InfoContext(ctx, "runtime_ready",
		slog.Int("cores", registry.Len()),
	)

	return &Runtime{
		Registry: registry,
		Index:    idx,
		Pool:     pool,
		Dispatch: dispatch,
		Logger:   logger,
	}, nil
}
