package store

import (
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"
)

// normalizeValue converts scanned values into the engine's canonical
// attribute types. Every numeric type — including Postgres numeric and
// decimal, which pgx surfaces as pgtype.Numeric — becomes float64 here
// and nowhere else, so fixed-point types never leak into downstream
// arithmetic.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case float64, bool, string:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint32:
		return float64(x)
	case pgtype.Numeric:
		f, err := x.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}

		return f.Float64
	case *big.Int:
		f, _ := new(big.Float).SetInt(x).Float64()

		return f
	}

	return v
}

// asInt64 coerces an identifier value scanned from the store. Identifier
// columns are integral in every supported schema, but drivers disagree
// on the concrete Go type.
func asInt64(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int32:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int:
		return int64(x), nil
	case pgtype.Numeric:
		f, err := x.Float64Value()
		if err != nil || !f.Valid {
			return 0, fmt.Errorf("numeric id is not representable")
		}

		return int64(f.Float64), nil
	}

	return 0, fmt.Errorf("id value %T is not integral", v)
}
