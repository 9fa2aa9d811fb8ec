// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reindex

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/catalogsync/sir/internal/materialize"
	"github.com/catalogsync/sir/internal/platform/apperr"
	"github.com/catalogsync/sir/internal/schema"
)

const (
	defaultWindowSize = 500
	defaultWorkers    = 4

	// windowRetryMaxElapsed bounds how long a single window retries a
	// transient materialization failure before giving up and surfacing it.
	windowRetryMaxElapsed = 2 * time.Minute
)

// Materializer is the slice of [materialize.Materializer] the driver needs.
type Materializer interface {
	MaterializeMany(ctx context.Context, entity schema.Entity, pkColumn string, pks []any, ser materialize.Serializer) (int, error)
}

// Dispatch is the slice of [dispatch.Registry] the driver needs.
type Dispatch interface {
	AsSerializer() materialize.Serializer
}

// Config tunes the window size and worker pool width.
type Config struct {
	// WindowSize is the number of primary keys per enumeration window.
	WindowSize int
	// Workers is the fixed number of concurrent window processors, the
	// driver's sole parallelism primitive. All workers share the driver's
	// Materializer and Querier; no worker holds a database session or
	// materializer instance of its own.
	Workers int
}

func (c Config) withDefaults() Config {
	if c.WindowSize <= 0 {
		c.WindowSize = defaultWindowSize
	}
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	return c
}

// Driver runs the bulk reindex key-enumeration loop over every core in a
// registry, or a single named core.
type Driver struct {
	db       Querier
	registry *schema.Registry
	mat      Materializer
	dispatch Dispatch
	cursor   CursorStore
	cfg      Config
	logger   *slog.Logger
}

// New builds a Driver.
func New(db Querier, registry *schema.Registry, mat Materializer, dispatch Dispatch, cursor CursorStore, cfg Config, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{
		db:       db,
		registry: registry,
		mat:      mat,
		dispatch: dispatch,
		cursor:   cursor,
		cfg:      cfg.withDefaults(),
		logger:   logger,
	}
}

// NewFromPool builds a Driver backed by a live connection pool.
func NewFromPool(pool *pgxpool.Pool, registry *schema.Registry, mat Materializer, dispatch Dispatch, cursor CursorStore, cfg Config, logger *slog.Logger) *Driver {
	return New(poolQuerier{pool: pool}, registry, mat, dispatch, cursor, cfg, logger)
}

// ReindexAll streams every entity of every registered core into its index,
// in the registry's deterministic iteration order.
func (d *Driver) ReindexAll(ctx context.Context) error {
	var firstErr error
	for _, core := range d.registry.Iterate() {
		if err := d.ReindexCore(ctx, core); err != nil {
			d.logger.Error("reindex_core_failed", slog.String("core", core), slog.Any("error", err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

type windowJob struct {
	index int
	pks   []int64
}

type windowResult struct {
	index  int
	lastPK int64
	err    error
}

// ReindexCore streams every entity of one core into its index, resuming
// from its last saved cursor position and partitioning the remaining
// primary keys into fixed-size windows dispatched to a worker pool.
func (d *Driver) ReindexCore(ctx context.Context, core string) error {
	entity, ok := d.registry.Get(core)
	if !ok {
		return fmt.Errorf("reindex: unknown core %q", core)
	}

	after, resumed, err := d.cursor.Load(ctx, core)
	if err != nil {
		return err
	}
	if resumed {
		d.logger.Info("reindex_resuming", slog.String("core", core), slog.Int64("after", after))
	}

	jobs := make(chan windowJob)
	results := make(chan windowResult)

	var wg sync.WaitGroup
	for i := 0; i < d.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				err := d.processWindow(ctx, entity, job.pks)
				results <- windowResult{index: job.index, lastPK: job.pks[len(job.pks)-1], err: err}
			}
		}()
	}

	var enumErr error
	go func() {
		defer close(jobs)
		cursorPos := after
		index := 0
		for {
			pks, err := nextWindow(ctx, d.db, entity.Table, cursorPos, d.cfg.WindowSize)
			if err != nil {
				enumErr = err
				return
			}
			if len(pks) == 0 {
				return
			}
			jobs <- windowJob{index: index, pks: pks}
			cursorPos = pks[len(pks)-1]
			index++
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Windows complete out of order across workers; only advance the
	// persisted cursor through the contiguous prefix that has actually
	// finished, so a crash mid-run never skips an in-flight window.
	pending := make(map[int]int64)
	nextFlush := 0
	var firstErr error
	processed := 0

	for res := range results {
		processed++
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			d.logger.Error("reindex_window_failed", slog.String("core", core), slog.Any("error", res.err))
			continue
		}

		pending[res.index] = res.lastPK
		for {
			lastPK, ok := pending[nextFlush]
			if !ok {
				break
			}
			if err := d.cursor.Save(ctx, core, lastPK); err != nil {
				d.logger.Error("reindex_cursor_save_failed", slog.String("core", core), slog.Any("error", err))
			}
			delete(pending, nextFlush)
			nextFlush++
		}
	}

	d.logger.Info("reindex_core_complete", slog.String("core", core), slog.Int("windows", processed))

	if enumErr != nil && firstErr == nil {
		firstErr = enumErr
	}
	return firstErr
}

// processWindow materializes and dispatches one window's primary keys,
// retrying the whole window with exponential backoff while the failure
// classifies as transient; any other failure is permanent for this window.
func (d *Driver) processWindow(ctx context.Context, entity schema.Entity, pks []int64) error {
	ids := make([]any, len(pks))
	for i, pk := range pks {
		ids[i] = pk
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = windowRetryMaxElapsed

	return backoff.Retry(func() error {
		_, err := d.mat.MaterializeMany(ctx, entity, "id", ids, d.dispatch.AsSerializer())
		if err == nil {
			return nil
		}
		if apperr.KindOf(err) == apperr.KindTransient {
			d.logger.Warn("reindex_window_retry", slog.String("core", entity.Name), slog.Any("error", err))
			return err
		}
		return backoff.Permanent(err)
	}, bo)
}
