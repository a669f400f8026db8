// Command relgraph runs the graph traversal and estimation server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/relgraphio/relgraph/internal/api"
	"github.com/relgraphio/relgraph/internal/config"
	"github.com/relgraphio/relgraph/internal/db"
	"github.com/relgraphio/relgraph/internal/db/migrations"
	"github.com/relgraphio/relgraph/internal/dbpool"
	"github.com/relgraphio/relgraph/internal/engine"
	"github.com/relgraphio/relgraph/internal/service"
	"github.com/relgraphio/relgraph/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := run(log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func run(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	log.SetLevel(level)

	schemas, err := config.LoadSchemas(cfg.SchemasFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
	if err != nil {
		return err
	}
	defer pool.Close()

	// Bundled migrations only provision the default demo schema;
	// externally managed tables are left alone.
	if cfg.SchemasFile == "" {
		if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
			return err
		}
	}

	graphStore := store.NewGraphStore(store.Base{Pool: pool, Log: log})
	eng := engine.New(graphStore, cfg.Limits, log)
	svc := service.NewGraphService(eng, schemas, log)

	router := api.NewRouter(ctx, &api.RouterDeps{
		Log:         log,
		Pool:        pool,
		Graph:       svc,
		Paths:       svc,
		Analyze:     svc,
		Schemas:     svc,
		CORSOrigins: cfg.CORSOrigins,
		Version:     config.Version,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithFields(logrus.Fields{
			"addr":    cfg.Addr(),
			"version": config.Version,
			"schemas": len(schemas.Names()),
		}).Info("server listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
