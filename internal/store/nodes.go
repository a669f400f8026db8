package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/relgraphio/relgraph/internal/models"
)

// maxNodeFetch caps rows returned by a single materialization.
const maxNodeFetch = 10000

// Materialize resolves a set of node identifiers into attribute rows in
// one round trip. Columns selects a subset (the ID column is always
// included); nil means every column. Numeric values are normalized to
// float64 here, once, so no fixed-point type leaks into downstream
// arithmetic. Soft-deleted rows (non-NULL soft-delete column) are
// filtered when the schema declares the column.
func (s *GraphStore) Materialize(ctx context.Context, schema *models.SchemaDescriptor, ids []int64, columns []string) ([]models.Node, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	selectList, err := nodeSelectList(schema, columns)
	if err != nil {
		return nil, err
	}

	var b sqlBuilder

	b.conds = append(b.conds, quote(schema.NodeIDColumn)+" = ANY("+b.bind(ids)+")")

	if schema.SoftDeleteColumn != "" {
		b.conds = append(b.conds, quote(schema.SoftDeleteColumn)+" IS NULL")
	}

	sql := "SELECT " + selectList + " FROM " + quote(schema.NodeTable) + b.where() +
		" ORDER BY " + quote(schema.NodeIDColumn) +
		fmt.Sprintf(" LIMIT %d", maxNodeFetch)

	rows, err := s.Pool.Query(ctx, sql, b.args...)
	if err != nil {
		return nil, fmt.Errorf("materializing %d nodes: %w", len(ids), err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	nodes := make([]models.Node, 0, len(ids))

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scanning node row: %w", err)
		}

		node := models.Node{Attrs: make(map[string]any, len(values))}

		for i, field := range fields {
			v := normalizeValue(values[i])
			node.Attrs[field.Name] = v

			if field.Name == schema.NodeIDColumn {
				id, err := asInt64(values[i])
				if err != nil {
					return nil, fmt.Errorf("scanning node id: %w", err)
				}

				node.ID = id
			}
		}

		nodes = append(nodes, node)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating node rows: %w", err)
	}

	return nodes, nil
}

// ListNodeIDs returns up to limit node identifiers, for whole-subgraph
// analysis loads. The soft-delete filter applies as in Materialize.
func (s *GraphStore) ListNodeIDs(ctx context.Context, schema *models.SchemaDescriptor, limit int) ([]int64, error) {
	if limit <= 0 || limit > maxNodeFetch {
		limit = maxNodeFetch
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	sql := "SELECT " + quote(schema.NodeIDColumn) + " FROM " + quote(schema.NodeTable)

	if schema.SoftDeleteColumn != "" {
		sql += " WHERE " + quote(schema.SoftDeleteColumn) + " IS NULL"
	}

	sql += " ORDER BY " + quote(schema.NodeIDColumn) + fmt.Sprintf(" LIMIT %d", limit)

	rows, err := s.Pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("listing node ids: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0, 64)

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning node id: %w", err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating node ids: %w", err)
	}

	return ids, nil
}

// nodeSelectList validates and renders the requested column subset,
// always including the ID column first.
func nodeSelectList(schema *models.SchemaDescriptor, columns []string) (string, error) {
	if len(columns) == 0 {
		return "*", nil
	}

	cols := []string{quote(schema.NodeIDColumn)}

	for _, c := range columns {
		if c == schema.NodeIDColumn {
			continue
		}

		if !models.ValidColumn(c) {
			return "", &models.InvalidParameterError{Param: "columns", Reason: fmt.Sprintf("%q is not a valid identifier", c)}
		}

		cols = append(cols, quote(c))
	}

	return strings.Join(cols, ", "), nil
}
