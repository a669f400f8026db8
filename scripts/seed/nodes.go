package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5"
)

// node is one row of the nodes CSV: id, label, kind, optional JSON props.
type node struct {
	ID    int64
	Label string
	Kind  string
	Props []byte
}

// readNodes parses the nodes CSV into a map keyed by ID so edge loading
// can validate endpoints. The first row must be a header.
func readNodes(path string) (map[int64]node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	nodes := map[int64]node{}
	line := 1

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		line++

		if len(record) < 3 {
			return nil, fmt.Errorf("line %d: want at least id,label,kind", line)
		}

		id, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad id %q", line, record[0])
		}

		if _, dup := nodes[id]; dup {
			return nil, fmt.Errorf("line %d: duplicate node id %d", line, id)
		}

		n := node{ID: id, Label: record[1], Kind: record[2]}

		if len(record) > 3 && record[3] != "" {
			if !json.Valid([]byte(record[3])) {
				return nil, fmt.Errorf("line %d: props is not valid JSON", line)
			}

			n.Props = []byte(record[3])
		}

		nodes[id] = n
	}

	return nodes, nil
}

// insertNodes bulk-loads nodes via COPY.
func insertNodes(ctx context.Context, tx pgx.Tx, nodes map[int64]node) error {
	rows := make([][]any, 0, len(nodes))

	for _, n := range nodes {
		props := n.Props
		if props == nil {
			props = []byte("{}")
		}

		rows = append(rows, []any{n.ID, n.Label, n.Kind, props})
	}

	count, err := tx.CopyFrom(ctx,
		pgx.Identifier{"graph_nodes"},
		[]string{"id", "label", "kind", "props"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copying nodes: %w", err)
	}

	if int(count) != len(rows) {
		return fmt.Errorf("copied %d of %d nodes", count, len(rows))
	}

	// COPY bypasses the sequence; realign it so subsequent inserts work.
	_, err = tx.Exec(ctx,
		`SELECT setval(pg_get_serial_sequence('graph_nodes', 'id'), (SELECT COALESCE(MAX(id), 1) FROM graph_nodes))`)
	if err != nil {
		return fmt.Errorf("realigning node sequence: %w", err)
	}

	return nil
}
