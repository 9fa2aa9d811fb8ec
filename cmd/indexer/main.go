// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Indexer is the entry point for the live incremental search-index updater.

It subscribes to the index/delete/retry JetStream subjects, decodes every
delivery into a change message, and drives it through the change router to
materialize and dispatch the affected documents.

Usage:

	go run cmd/indexer/main.go [flags]

The flags/environment variables are:

	ADMIN_PORT      Port the admin/health HTTP surface listens on (default: 8080)
	ENVIRONMENT     deployment environment (development, production)
	DATABASE_URL    Postgres connection string (required)
	REDIS_URL       Redis connection string (required)
	NATS_URL        NATS JetStream connection string

Startup Sequence:

 1. Logger: Initialize structured JSON logging (slog).
 2. Config: Load and validate environment variables.
 3. Storage: Establish connections to Postgres, Redis, and NATS JetStream.
 4. Migration: Run idempotent bookkeeping schema updates.
 5. Runtime: Build the schema registry, dependency index, and dispatch wiring.
 6. Subscribe: Bind one handler per logical queue, each advancing its own
    bookkeeping cursor.
 7. Server: Bind the admin HTTP listener and handle graceful shutdown.

No business logic lives here. This file is strictly for orchestration and wiring.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/catalogsync/sir/internal/api"
	"github.com/catalogsync/sir/internal/consumer"
	"github.com/catalogsync/sir/internal/dispatch"
	"github.com/catalogsync/sir/internal/materialize"
	"github.com/catalogsync/sir/internal/platform/config"
	"github.com/catalogsync/sir/internal/platform/constants"
	"github.com/catalogsync/sir/internal/platform/cursor"
	"github.com/catalogsync/sir/internal/platform/migration"
	"github.com/catalogsync/sir/internal/platform/postgres"
	"github.com/catalogsync/sir/internal/platform/redisx"
	"github.com/catalogsync/sir/internal/router"
	"github.com/catalogsync/sir/internal/sir"
)

// indexerQueueCount is the number of JetStream queues subscribeQueues binds
// (index, delete, retry) — the pool is sized as if each ran concurrently.
const indexerQueueCount = 3

func main() {
	if err := run(); err != nil {
		slog.Error("application_startup_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// # 1. Logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log = log.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("indexer_initializing")

	// # 2. Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if cfg.Debug {
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})).
			With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.AdminPort),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// # 3. PostgreSQL
	pool, err := postgres.NewPool(startupCtx, cfg.DatabaseURL, indexerQueueCount, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// # 4. Redis
	rdb, err := redisx.NewClient(startupCtx, cfg.RedisURL, log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_error", slog.Any("error", cerr))
		}
	}()

	// # 5. NATS JetStream
	nc, js, err := consumer.Connect(cfg.NATSURL)
	if err != nil {
		return fmt.Errorf("connect to nats: %w", err)
	}
	defer func() {
		log.Info("closing nats connection")
		nc.Close()
	}()

	// # 6. Migrations
	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// # 7. Dispatch Wiring
	dispatchRegistry := dispatch.NewRegistry()

	// # 8. Runtime (schema registry + dependency index)
	runtime, err := sir.New(startupCtx, pool, dispatchRegistry, log)
	if err != nil {
		return fmt.Errorf("build runtime: %w", err)
	}

	for _, core := range runtime.Registry.Iterate() {
		dispatchRegistry.Register(core, dispatch.NewHTTPCore(searchCoreURL(cfg.Environment, core)))
	}

	mat := materialize.NewMaterializerFromPool(pool, runtime.Registry.Graph(), log)
	changeRouter := router.NewFromPool(runtime.Index, runtime.Registry, pool, mat, dispatchRegistry, log)

	// # 9. Cursor Bookkeeping (admin visibility only)
	cursorStore := cursor.NewStore(pool)

	// # 10. Consumer + Subscription Wiring
	publisher := consumer.NewJetStreamPublisher(js)

	subs, err := subscribeQueues(js, changeRouter, publisher, cursorStore, cfg, log)
	if err != nil {
		return fmt.Errorf("subscribe to queues: %w", err)
	}
	defer func() {
		for _, s := range subs {
			if cerr := s.Close(); cerr != nil {
				log.Error("subscription_close_error", slog.Any("error", cerr))
			}
		}
	}()

	// # 11. Health Wiring
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error { return postgres.Ping(context.Background(), pool) },
		CheckCache:    func() error { return redisx.Ping(context.Background(), rdb) },
		CheckBroker: func() error {
			if !nc.IsConnected() {
				return fmt.Errorf("nats: not connected")
			}
			return nil
		},
	}, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Cursor:    api.NewCursorHandler(cursorStore),
	}

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	server := api.NewServer(appCtx, cfg.AdminPort, log, handlers)

	// # 12. Lifecycle Handling
	shutdownErr := make(chan error, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			shutdownErr <- fmt.Errorf("http_server_crash: %w", err)
		}
	}()

	log.Info("indexer_running", slog.String("port", cfg.AdminPort))

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-shutdownErr:
		return err
	}

	appCancel()

	log.Info("shutting_down_indexer", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("server_shutdown_failed: %w", err)
	}

	log.Info("graceful_shutdown_complete")
	return nil
}

// subscribeQueues binds one durable JetStream subscription per logical
// queue, each wrapping changeRouter with its own cursor-advancing decorator
// so /admin/cursor reports progress independently per queue.
func subscribeQueues(
	js nats.JetStreamContext,
	changeRouter *router.Router,
	publisher consumer.Publisher,
	cursorStore *cursor.Store,
	cfg *config.Config,
	log *slog.Logger,
) ([]*consumer.Subscription, error) {
	bindings := []struct {
		subject string
		queue   consumer.Queue
	}{
		{constants.SubjectIndex, consumer.QueueIndex},
		{constants.SubjectDelete, consumer.QueueDelete},
		{constants.SubjectRetry, consumer.QueueRetry},
	}

	subs := make([]*consumer.Subscription, 0, len(bindings))
	for _, b := range bindings {
		queueRouter := bookkeepingRouter{inner: changeRouter, store: cursorStore, queue: string(b.queue)}
		handler := consumer.NewHandler(queueRouter, publisher, cfg.NATSMaxRetries, log)

		durable := fmt.Sprintf("%s-%s", cfg.NATSConsumerName, b.queue)
		sub, err := consumer.Subscribe(js, b.subject, durable, b.queue, handler, log)
		if err != nil {
			for _, s := range subs {
				_ = s.Close()
			}
			return nil, fmt.Errorf("subscribe %q: %w", b.subject, err)
		}
		subs = append(subs, sub)
	}

	return subs, nil
}

// bookkeepingRouter decorates [router.Router] with the per-queue
// admin-visibility cursor: after a successful route, it records the
// message's sequence id as the queue's new high-water mark. A failure to
// record it is logged and swallowed rather than returned — this cursor is
// reporting only, and must never cause a perfectly-routed message to be
// retried or dead-lettered just because the bookkeeping write failed.
type bookkeepingRouter struct {
	inner *router.Router
	store *cursor.Store
	queue string
}

func (b bookkeepingRouter) Route(ctx context.Context, msg router.Message) error {
	if err := b.inner.Route(ctx, msg); err != nil {
		return err
	}
	if err := b.store.Advance(ctx, b.queue, msg.SequenceID); err != nil {
		slog.Default().Warn("cursor_advance_failed",
			slog.String("queue", b.queue), slog.Any("error", err))
	}
	return nil
}

// searchCoreURL derives the per-core search-backend endpoint. Production
// deployments are expected to front every core behind the same reverse
// proxy, keyed by core name in the path.
func searchCoreURL(environment, core string) string {
	return fmt.Sprintf("http://search-%s.internal/%s", environment, core)
}
