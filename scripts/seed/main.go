// Package main provides a standalone seeding script that loads a graph
// from CSV files into the relgraph PostgreSQL tables.
//
// Usage:
//
//	NODES_CSV=nodes.csv EDGES_CSV=edges.csv DATABASE_URL=postgres://... go run ./scripts/seed
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
)

// config holds environment-driven seeding settings.
type config struct {
	NodesPath   string
	EdgesPath   string
	DatabaseURL string
	Truncate    bool
	DryRun      bool
}

// report holds the final seeding summary.
type report struct {
	NodesLoaded  int
	EdgesLoaded  int
	EdgesSkipped []skippedEdge
	Elapsed      time.Duration
}

// skippedEdge records an edge whose endpoints were not in the node file.
type skippedEdge struct {
	From   int64
	To     int64
	Reason string
}

func loadConfig() (config, error) {
	cfg := config{
		NodesPath:   os.Getenv("NODES_CSV"),
		EdgesPath:   os.Getenv("EDGES_CSV"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Truncate:    os.Getenv("TRUNCATE") == "true",
		DryRun:      os.Getenv("DRY_RUN") == "true",
	}

	if cfg.NodesPath == "" || cfg.EdgesPath == "" {
		return cfg, fmt.Errorf("NODES_CSV and EDGES_CSV are required")
	}

	if cfg.DatabaseURL == "" && !cfg.DryRun {
		return cfg, fmt.Errorf("DATABASE_URL is required unless DRY_RUN=true")
	}

	return cfg, nil
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(log); err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	nodes, err := readNodes(cfg.NodesPath)
	if err != nil {
		return fmt.Errorf("reading nodes: %w", err)
	}

	edges, skipped, err := readEdges(cfg.EdgesPath, nodes)
	if err != nil {
		return fmt.Errorf("reading edges: %w", err)
	}

	log.Info("parsed input", "nodes", len(nodes), "edges", len(edges), "skipped", len(skipped))

	rep := report{NodesLoaded: len(nodes), EdgesLoaded: len(edges), EdgesSkipped: skipped}

	if cfg.DryRun {
		rep.Elapsed = time.Since(start)
		printReport(log, rep)

		return nil
	}

	conn, err := pgx.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting: %w", err)
	}
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if cfg.Truncate {
		if _, err := tx.Exec(ctx, `TRUNCATE graph_edges, graph_nodes RESTART IDENTITY`); err != nil {
			return fmt.Errorf("truncating tables: %w", err)
		}

		log.Info("truncated existing graph")
	}

	if err := insertNodes(ctx, tx, nodes); err != nil {
		return err
	}

	if err := insertEdges(ctx, tx, edges); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing: %w", err)
	}

	rep.Elapsed = time.Since(start)
	printReport(log, rep)

	return nil
}

func printReport(log *slog.Logger, rep report) {
	log.Info("seed complete",
		"nodes", rep.NodesLoaded,
		"edges", rep.EdgesLoaded,
		"skipped", len(rep.EdgesSkipped),
		"elapsed", rep.Elapsed.Round(time.Millisecond),
	)

	for _, s := range rep.EdgesSkipped {
		log.Warn("skipped edge", "from", s.From, "to", s.To, "reason", s.Reason)
	}
}
