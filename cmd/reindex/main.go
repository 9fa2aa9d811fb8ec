// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Reindex is the entry point for the bulk reindex driver: it streams every
entity of one or every registered core into its search index, resuming from
its last saved cursor on restart.

Usage:

	go run cmd/reindex/main.go [-core=artist]

The flags/environment variables are:

	-core                Single core name to reindex (flag only); empty reindexes every registered core
	ENVIRONMENT          deployment environment (development, production)
	DATABASE_URL         Postgres connection string (required)
	REDIS_URL            Redis connection string (required)
	REINDEX_BATCH_SIZE   primary keys per enumeration window (default: 500)
	REINDEX_CONCURRENCY  concurrent window workers (default: 4)

Startup Sequence:

 1. Logger: Initialize structured JSON logging (slog).
 2. Config: Load and validate environment variables.
 3. Storage: Establish connections to Postgres and Redis.
 4. Runtime: Build the schema registry and dispatch wiring.
 5. Drive: Run the bulk reindex to completion or until interrupted.

No business logic lives here. This file is strictly for orchestration and wiring.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/catalogsync/sir/internal/dispatch"
	"github.com/catalogsync/sir/internal/materialize"
	"github.com/catalogsync/sir/internal/platform/config"
	"github.com/catalogsync/sir/internal/platform/constants"
	"github.com/catalogsync/sir/internal/platform/postgres"
	"github.com/catalogsync/sir/internal/platform/redisx"
	"github.com/catalogsync/sir/internal/reindex"
	"github.com/catalogsync/sir/internal/sir"
)

func main() {
	var core string
	flag.StringVar(&core, "core", "", "single core name to reindex (default: every registered core)")
	flag.Parse()

	if err := run(core); err != nil {
		slog.Error("application_startup_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(core string) error {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log = log.With(slog.String("app", constants.AppName), slog.String("cmd", "reindex"))
	slog.SetDefault(log)

	log.Info("reindex_initializing")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	pool, err := postgres.NewPool(startupCtx, cfg.DatabaseURL, cfg.ReindexConcurrency, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	rdb, err := redisx.NewClient(startupCtx, cfg.RedisURL, log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() {
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_error", slog.Any("error", cerr))
		}
	}()

	dispatchRegistry := dispatch.NewRegistry()

	runtime, err := sir.New(startupCtx, pool, dispatchRegistry, log)
	if err != nil {
		return fmt.Errorf("build runtime: %w", err)
	}

	for _, c := range runtime.Registry.Iterate() {
		dispatchRegistry.Register(c, dispatch.NewHTTPCore(searchCoreURL(cfg.Environment, c)))
	}

	mat := materialize.NewMaterializerFromPool(pool, runtime.Registry.Graph(), log)
	cursorStore := reindex.NewRedisCursorStore(rdb)

	driver := reindex.NewFromPool(pool, runtime.Registry, mat, dispatchRegistry, cursorStore, reindex.Config{
		WindowSize: cfg.ReindexBatchSize,
		Workers:    cfg.ReindexConcurrency,
	}, log)

	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-quit
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
		runCancel()
	}()

	if core != "" {
		log.Info("reindex_starting_single_core", slog.String("core", core))
		if err := driver.ReindexCore(runCtx, core); err != nil {
			return fmt.Errorf("reindex core %q: %w", core, err)
		}
	} else {
		log.Info("reindex_starting_all_cores", slog.Int("cores", runtime.Registry.Len()))
		if err := driver.ReindexAll(runCtx); err != nil {
			return fmt.Errorf("reindex all cores: %w", err)
		}
	}

	log.Info("reindex_complete")
	return nil
}

// searchCoreURL derives the per-core search-backend endpoint, mirroring
// cmd/indexer's wiring.
func searchCoreURL(environment, core string) string {
	return fmt.Sprintf("http://search-%s.internal/%s", environment, core)
}
