package engine

import "github.com/relgraphio/relgraph/internal/models"

// evalPredicate evaluates a typed predicate against a node's attribute
// map. Missing columns never match. Numeric comparisons go through
// float64 because the materializer already normalized numerics.
func evalPredicate(p *models.Predicate, attrs map[string]any) bool {
	if p == nil {
		return false
	}

	v, ok := attrs[p.Column]
	if !ok || v == nil {
		return false
	}

	switch p.Op {
	case models.PredicateEquals:
		return valuesEqual(v, p.Value)
	case models.PredicateNotEquals:
		return !valuesEqual(v, p.Value)
	case models.PredicateIn:
		for _, candidate := range p.Values {
			if valuesEqual(v, candidate) {
				return true
			}
		}

		return false
	case models.PredicateRange:
		f, ok := asFloat(v)
		if !ok {
			return false
		}

		if p.Min != nil && f < *p.Min {
			return false
		}

		if p.Max != nil && f > *p.Max {
			return false
		}

		return true
	}

	return false
}

// valuesEqual compares attribute values loosely: numbers compare as
// float64 (JSON decoding and SQL scanning disagree on integer types),
// everything else compares as Go equality.
func valuesEqual(a, b any) bool {
	fa, aok := asFloat(a)
	fb, bok := asFloat(b)

	if aok && bok {
		return fa == fb
	}

	return a == b
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	}

	return 0, false
}
