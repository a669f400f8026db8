package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5"
)

// edge is one row of the edges CSV: from, to, optional weight, optional
// qty, optional kind.
type edge struct {
	From   int64
	To     int64
	Weight *float64
	Qty    *float64
	Kind   string
}

// readEdges parses the edges CSV, dropping edges whose endpoints are not
// in the node set rather than failing the whole load.
func readEdges(path string, nodes map[int64]node) ([]edge, []skippedEdge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}

	var (
		edges   []edge
		skipped []skippedEdge
	)

	line := 1

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}

		line++

		if len(record) < 2 {
			return nil, nil, fmt.Errorf("line %d: want at least from,to", line)
		}

		from, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: bad from id %q", line, record[0])
		}

		to, err := strconv.ParseInt(record[1], 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: bad to id %q", line, record[1])
		}

		if _, ok := nodes[from]; !ok {
			skipped = append(skipped, skippedEdge{From: from, To: to, Reason: "unknown source node"})

			continue
		}

		if _, ok := nodes[to]; !ok {
			skipped = append(skipped, skippedEdge{From: from, To: to, Reason: "unknown target node"})

			continue
		}

		e := edge{From: from, To: to}

		if e.Weight, err = parseOptionalFloat(record, 2); err != nil {
			return nil, nil, fmt.Errorf("line %d: bad weight: %w", line, err)
		}

		if e.Qty, err = parseOptionalFloat(record, 3); err != nil {
			return nil, nil, fmt.Errorf("line %d: bad qty: %w", line, err)
		}

		if len(record) > 4 {
			e.Kind = record[4]
		}

		edges = append(edges, e)
	}

	return edges, skipped, nil
}

func parseOptionalFloat(record []string, idx int) (*float64, error) {
	if idx >= len(record) || record[idx] == "" {
		return nil, nil
	}

	f, err := strconv.ParseFloat(record[idx], 64)
	if err != nil {
		return nil, err
	}

	return &f, nil
}

// insertEdges bulk-loads edges via COPY.
func insertEdges(ctx context.Context, tx pgx.Tx, edges []edge) error {
	rows := make([][]any, 0, len(edges))

	for _, e := range edges {
		rows = append(rows, []any{e.From, e.To, e.Weight, e.Qty, e.Kind})
	}

	count, err := tx.CopyFrom(ctx,
		pgx.Identifier{"graph_edges"},
		[]string{"from_id", "to_id", "weight", "qty", "kind"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copying edges: %w", err)
	}

	if int(count) != len(rows) {
		return fmt.Errorf("copied %d of %d edges", count, len(rows))
	}

	return nil
}
