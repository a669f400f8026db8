// Package store implements the relational access layer the engine
// consumes: batched adjacency fetches, node materialization, and
// statistics-based table bounds, all against caller-declared schema
// descriptors.
//
// Every method is a single round trip (two statements at most for
// bidirectional fetches and the stats probe). Identifiers from schema
// descriptors are validated upstream and still quoted here; values are
// always bound as parameters.
package store

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/relgraphio/relgraph/internal/dbpool"
)

const defaultQueryTimeout = 30 * time.Second

// Base contains shared dependencies for stores.
type Base struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// GraphStore implements the engine's fetch primitives over PostgreSQL.
type GraphStore struct {
	Base
}

// NewGraphStore creates a GraphStore with the given shared base.
func NewGraphStore(base Base) *GraphStore {
	return &GraphStore{Base: base}
}
