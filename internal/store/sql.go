package store

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/relgraphio/relgraph/internal/models"
)

// quote wraps an identifier for safe splicing into query text. Schema
// descriptors are validated on load, but quoting is cheap and makes the
// generated SQL robust against reserved words.
func quote(identifier string) string {
	return pgx.Identifier{identifier}.Sanitize()
}

// sqlBuilder accumulates WHERE conditions and their bound arguments.
type sqlBuilder struct {
	conds []string
	args  []any
}

// bind appends an argument and returns its placeholder.
func (b *sqlBuilder) bind(v any) string {
	b.args = append(b.args, v)

	return fmt.Sprintf("$%d", len(b.args))
}

// where renders the accumulated conditions, empty when there are none.
func (b *sqlBuilder) where() string {
	if len(b.conds) == 0 {
		return ""
	}

	return " WHERE " + strings.Join(b.conds, " AND ")
}

// addPredicate renders a typed predicate as a parametrized condition.
func (b *sqlBuilder) addPredicate(p *models.Predicate) error {
	if p == nil {
		return nil
	}

	if err := p.Validate(); err != nil {
		return err
	}

	col := quote(p.Column)

	switch p.Op {
	case models.PredicateEquals:
		b.conds = append(b.conds, col+" = "+b.bind(p.Value))
	case models.PredicateNotEquals:
		b.conds = append(b.conds, col+" <> "+b.bind(p.Value))
	case models.PredicateIn:
		b.conds = append(b.conds, col+" = ANY("+b.bind(p.Values)+")")
	case models.PredicateRange:
		if p.Min != nil {
			b.conds = append(b.conds, col+" >= "+b.bind(*p.Min))
		}

		if p.Max != nil {
			b.conds = append(b.conds, col+" <= "+b.bind(*p.Max))
		}
	}

	return nil
}

// addValidity restricts edges to those valid at the given instant.
// NULL bounds are open-ended.
func (b *sqlBuilder) addValidity(schema *models.SchemaDescriptor, opts models.FetchOptions) {
	if opts.ValidAt == nil || schema.ValidFromColumn == "" {
		return
	}

	at := b.bind(*opts.ValidAt)
	b.conds = append(b.conds,
		"("+quote(schema.ValidFromColumn)+" IS NULL OR "+quote(schema.ValidFromColumn)+" <= "+at+")",
		"("+quote(schema.ValidToColumn)+" IS NULL OR "+quote(schema.ValidToColumn)+" > "+at+")",
	)
}

// addExclusion keeps edges touching any excluded node out of the result.
func (b *sqlBuilder) addExclusion(schema *models.SchemaDescriptor, opts models.FetchOptions) {
	if len(opts.Exclude) == 0 {
		return
	}

	ph := b.bind(opts.Exclude)
	b.conds = append(b.conds,
		"NOT ("+quote(schema.FromColumn)+" = ANY("+ph+") OR "+quote(schema.ToColumn)+" = ANY("+ph+"))",
	)
}

// edgeSelectList renders the columns an edge fetch returns: endpoints,
// the weight coalesced to 1 and cast to float8, and any extras.
func edgeSelectList(schema *models.SchemaDescriptor, extras []string) string {
	cols := []string{
		quote(schema.FromColumn),
		quote(schema.ToColumn),
	}

	if schema.WeightColumn != "" {
		cols = append(cols, "COALESCE("+quote(schema.WeightColumn)+", 1)::float8")
	} else {
		cols = append(cols, "1::float8")
	}

	for _, extra := range extras {
		cols = append(cols, quote(extra))
	}

	return strings.Join(cols, ", ")
}
