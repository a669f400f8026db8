package models

import (
	"fmt"
	"time"
)

// SchemaDescriptor names the relational tables and columns that hold a
// graph. The engine treats every identifier as opaque; the ontology or
// config layer owns the semantics.
type SchemaDescriptor struct {
	Name             string `json:"name" yaml:"name"`
	NodeTable        string `json:"node_table" yaml:"node_table"`
	NodeIDColumn     string `json:"node_id_column" yaml:"node_id_column"`
	EdgeTable        string `json:"edge_table" yaml:"edge_table"`
	FromColumn       string `json:"from_column" yaml:"from_column"`
	ToColumn         string `json:"to_column" yaml:"to_column"`
	WeightColumn     string `json:"weight_column,omitempty" yaml:"weight_column"`
	SoftDeleteColumn string `json:"soft_delete_column,omitempty" yaml:"soft_delete_column"`
	ValidFromColumn  string `json:"valid_from_column,omitempty" yaml:"valid_from_column"`
	ValidToColumn    string `json:"valid_to_column,omitempty" yaml:"valid_to_column"`
}

// maxIdentifierLen matches the PostgreSQL identifier limit.
const maxIdentifierLen = 63

// validIdentifier rejects anything that is not a plain SQL identifier.
// Descriptors come from config, not users, but they still end up spliced
// into query text, so the same rule applies everywhere.
func validIdentifier(s string) bool {
	if s == "" || len(s) > maxIdentifierLen {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}

// ValidColumn reports whether name is usable as a plain SQL identifier.
func ValidColumn(name string) bool {
	return validIdentifier(name)
}

// Validate checks that all required identifiers are present and well formed.
func (s *SchemaDescriptor) Validate() error {
	required := map[string]string{
		"node_table":     s.NodeTable,
		"node_id_column": s.NodeIDColumn,
		"edge_table":     s.EdgeTable,
		"from_column":    s.FromColumn,
		"to_column":      s.ToColumn,
	}

	for field, v := range required {
		if v == "" {
			return &InvalidParameterError{Param: field, Reason: "is required"}
		}

		if !validIdentifier(v) {
			return &InvalidParameterError{Param: field, Reason: fmt.Sprintf("%q is not a valid identifier", v)}
		}
	}

	optional := map[string]string{
		"weight_column":      s.WeightColumn,
		"soft_delete_column": s.SoftDeleteColumn,
		"valid_from_column":  s.ValidFromColumn,
		"valid_to_column":    s.ValidToColumn,
	}

	for field, v := range optional {
		if v != "" && !validIdentifier(v) {
			return &InvalidParameterError{Param: field, Reason: fmt.Sprintf("%q is not a valid identifier", v)}
		}
	}

	if s.FromColumn == s.ToColumn {
		return &InvalidParameterError{Param: "to_column", Reason: "must differ from from_column"}
	}

	if (s.ValidFromColumn == "") != (s.ValidToColumn == "") {
		return &InvalidParameterError{Param: "valid_to_column", Reason: "temporal columns must be declared together"}
	}

	return nil
}

// PredicateOp enumerates the supported typed predicate operators. Raw
// WHERE-clause fragments are deliberately not representable.
type PredicateOp string

// Predicate operators.
const (
	PredicateEquals    PredicateOp = "equals"
	PredicateNotEquals PredicateOp = "not_equals"
	PredicateIn        PredicateOp = "in"
	PredicateRange     PredicateOp = "range"
)

// Predicate is a typed condition over a named column. Values are always
// bound as query parameters, never spliced into SQL text.
type Predicate struct {
	Column string      `json:"column"`
	Op     PredicateOp `json:"op"`
	Value  any         `json:"value,omitempty"`
	Values []any       `json:"values,omitempty"`
	Min    *float64    `json:"min,omitempty"`
	Max    *float64    `json:"max,omitempty"`
}

// Validate checks the predicate shape against its operator.
func (p *Predicate) Validate() error {
	if !validIdentifier(p.Column) {
		return &InvalidParameterError{Param: "predicate.column", Reason: fmt.Sprintf("%q is not a valid identifier", p.Column)}
	}

	switch p.Op {
	case PredicateEquals, PredicateNotEquals:
		if p.Value == nil {
			return &InvalidParameterError{Param: "predicate.value", Reason: "is required for " + string(p.Op)}
		}
	case PredicateIn:
		if len(p.Values) == 0 {
			return &InvalidParameterError{Param: "predicate.values", Reason: "must not be empty for in"}
		}
	case PredicateRange:
		if p.Min == nil && p.Max == nil {
			return &InvalidParameterError{Param: "predicate.range", Reason: "needs at least one of min, max"}
		}

		if p.Min != nil && p.Max != nil && *p.Min > *p.Max {
			return &InvalidParameterError{Param: "predicate.range", Reason: "min exceeds max"}
		}
	default:
		return &InvalidParameterError{Param: "predicate.op", Reason: fmt.Sprintf("unknown operator %q", p.Op)}
	}

	return nil
}

// FetchOptions narrows a batched adjacency fetch. All fields are optional.
type FetchOptions struct {
	Predicate *Predicate `json:"predicate,omitempty"`
	ValidAt   *time.Time `json:"valid_at,omitempty"`
	Exclude   []int64    `json:"exclude,omitempty"`
	// Columns names extra edge columns to return in Edge.Attrs, e.g. a
	// quantity multiplier.
	Columns []string `json:"columns,omitempty"`
}
