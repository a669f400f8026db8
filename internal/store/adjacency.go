package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/relgraphio/relgraph/internal/models"
)

// maxEdgeFetch is a defense-in-depth cap on edges returned by a single
// adjacency round trip, applied on top of the engine's own limits.
const maxEdgeFetch = 50000

// FetchEdges returns every edge with an endpoint in the frontier, in one
// round trip ("both" runs two frontier matches inside one UNION
// statement). An empty frontier performs no query at all.
func (s *GraphStore) FetchEdges(ctx context.Context, schema *models.SchemaDescriptor, frontier []int64, dir models.Direction, opts models.FetchOptions) ([]models.Edge, error) {
	if len(frontier) == 0 {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	sql, args, err := buildEdgeQuery(schema, frontier, dir, opts)
	if err != nil {
		return nil, err
	}

	rows, err := s.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying adjacency for %d frontier nodes: %w", len(frontier), err)
	}
	defer rows.Close()

	return collectEdges(rows, opts.Columns)
}

// buildEdgeQuery renders the batched adjacency statement. All filters
// are shared between the directional branches.
func buildEdgeQuery(schema *models.SchemaDescriptor, frontier []int64, dir models.Direction, opts models.FetchOptions) (string, []any, error) {
	var b sqlBuilder

	frontierPh := b.bind(frontier)

	if err := b.addPredicate(opts.Predicate); err != nil {
		return "", nil, err
	}

	b.addValidity(schema, opts)
	b.addExclusion(schema, opts)

	selectList := edgeSelectList(schema, opts.Columns)
	table := quote(schema.EdgeTable)
	limit := fmt.Sprintf(" LIMIT %d", maxEdgeFetch)

	branch := func(endpoint string) string {
		conds := append([]string{quote(endpoint) + " = ANY(" + frontierPh + ")"}, b.conds...)

		sql := "SELECT " + selectList + " FROM " + table + " WHERE " + conds[0]
		for _, c := range conds[1:] {
			sql += " AND " + c
		}

		return sql + limit
	}

	var sql string

	switch dir {
	case models.DirectionOutbound:
		sql = branch(schema.FromColumn)
	case models.DirectionInbound:
		sql = branch(schema.ToColumn)
	case models.DirectionBoth:
		// UNION deduplicates edges whose endpoints both sit in the
		// frontier.
		sql = "(" + branch(schema.FromColumn) + ") UNION (" + branch(schema.ToColumn) + ")"
	default:
		return "", nil, &models.InvalidParameterError{Param: "direction", Reason: fmt.Sprintf("unknown direction %q", dir)}
	}

	return sql, b.args, nil
}

// ListEdges returns up to limit edges from the whole edge table, for
// whole-subgraph analysis loads. One row past maxEdgeFetch is allowed
// through so callers requesting cap+1 can detect overflow.
func (s *GraphStore) ListEdges(ctx context.Context, schema *models.SchemaDescriptor, limit int) ([]models.Edge, error) {
	if limit <= 0 || limit > maxEdgeFetch+1 {
		limit = maxEdgeFetch + 1
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	sql := "SELECT " + edgeSelectList(schema, nil) + " FROM " + quote(schema.EdgeTable) +
		" ORDER BY " + quote(schema.FromColumn) + ", " + quote(schema.ToColumn) +
		fmt.Sprintf(" LIMIT %d", limit)

	rows, err := s.Pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("listing edges: %w", err)
	}
	defer rows.Close()

	return collectEdges(rows, nil)
}

// collectEdges scans edge rows: from, to, weight, then any extra
// columns into Attrs with numerics normalized to float64.
func collectEdges(rows pgx.Rows, extras []string) ([]models.Edge, error) {
	edges := make([]models.Edge, 0, 32)

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scanning edge row: %w", err)
		}

		if len(values) < 3 {
			return nil, fmt.Errorf("edge row has %d columns, want at least 3", len(values))
		}

		from, err := asInt64(values[0])
		if err != nil {
			return nil, fmt.Errorf("scanning edge source: %w", err)
		}

		to, err := asInt64(values[1])
		if err != nil {
			return nil, fmt.Errorf("scanning edge target: %w", err)
		}

		weight, _ := normalizeValue(values[2]).(float64)

		edge := models.Edge{From: from, To: to, Weight: weight}

		if len(extras) > 0 {
			edge.Attrs = make(map[string]any, len(extras))

			for i, name := range extras {
				if 3+i < len(values) {
					edge.Attrs[name] = normalizeValue(values[3+i])
				}
			}
		}

		edges = append(edges, edge)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating edge rows: %w", err)
	}

	return edges, nil
}
