package store

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"

	"github.com/relgraphio/relgraph/internal/models"
)

// TableBound returns a conservative upper bound on distinct reachable
// nodes from planner statistics: the smaller of the node-table row
// estimate and the combined distinct endpoint counts of the edge table.
// No live scan happens; the bound may be stale and only ever caps an
// estimate downward. Zero means no usable statistics.
func (s *GraphStore) TableBound(ctx context.Context, schema *models.SchemaDescriptor) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var nodeRows float64

	err := s.Pool.QueryRow(ctx,
		`SELECT reltuples FROM pg_class WHERE relname = $1 AND relkind = 'r'`,
		schema.NodeTable,
	).Scan(&nodeRows)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}

		return 0, fmt.Errorf("reading node table statistics: %w", err)
	}

	if nodeRows < 0 {
		// reltuples is -1 before the first analyze.
		return 0, nil
	}

	edgeRows, distinctEndpoints, err := s.edgeStats(ctx, schema)
	if err != nil {
		return 0, err
	}

	bound := int64(math.Ceil(nodeRows))

	if distinctEndpoints > 0 && distinctEndpoints < bound {
		bound = distinctEndpoints
	}

	// A graph cannot reach more nodes than it has edge rows plus one.
	if edgeRows >= 0 && edgeRows+1 < bound {
		bound = edgeRows + 1
	}

	return bound, nil
}

// edgeStats reads the edge table's row estimate and the per-endpoint
// distinct counts from pg_stats. n_distinct is negative when expressed
// as a fraction of the row count.
func (s *GraphStore) edgeStats(ctx context.Context, schema *models.SchemaDescriptor) (rows int64, distinct int64, err error) {
	var edgeRows float64

	err = s.Pool.QueryRow(ctx,
		`SELECT reltuples FROM pg_class WHERE relname = $1 AND relkind = 'r'`,
		schema.EdgeTable,
	).Scan(&edgeRows)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return -1, 0, nil
		}

		return 0, 0, fmt.Errorf("reading edge table statistics: %w", err)
	}

	statRows, err := s.Pool.Query(ctx,
		`SELECT attname, n_distinct FROM pg_stats WHERE tablename = $1 AND attname = ANY($2)`,
		schema.EdgeTable, []string{schema.FromColumn, schema.ToColumn},
	)
	if err != nil {
		return 0, 0, fmt.Errorf("reading endpoint statistics: %w", err)
	}
	defer statRows.Close()

	total := 0.0

	for statRows.Next() {
		var (
			attname   string
			nDistinct float64
		)

		if err := statRows.Scan(&attname, &nDistinct); err != nil {
			return 0, 0, fmt.Errorf("scanning endpoint statistics: %w", err)
		}

		if nDistinct < 0 {
			// Fraction of rows.
			nDistinct = -nDistinct * edgeRows
		}

		total += nDistinct
	}

	if err := statRows.Err(); err != nil {
		return 0, 0, fmt.Errorf("iterating endpoint statistics: %w", err)
	}

	if edgeRows < 0 {
		return -1, int64(math.Ceil(total)), nil
	}

	return int64(math.Ceil(edgeRows)), int64(math.Ceil(total)), nil
}
