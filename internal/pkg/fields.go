package pkg

import (
	appErrors "Pocketbook/internal/errors"

	"github.com/shopspring/decimal"
)

// Fields is an open set of named values keyed by document field name. It is
// used both as a list filter and as a partial update.
//
// As a filter it is permissive: a key whose value has the wrong type is
// treated as absent. A key present with a nil value is distinct from a
// missing key (see IsNull).
type Fields map[string]any

func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// IsNull reports whether key is present with an explicit nil value.
func (f Fields) IsNull(key string) bool {
	v, ok := f[key]
	if !ok {
		return false
	}
	if v == nil {
		return true
	}
	if p, isPtr := v.(*string); isPtr && p == nil {
		return true
	}
	return false
}

func (f Fields) String(key string) (string, bool) {
	switch v := f[key].(type) {
	case string:
		return v, true
	case *string:
		if v != nil {
			return *v, true
		}
	}
	return "", false
}

func (f Fields) Int(key string) (int, bool) {
	switch v := f[key].(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case *int:
		if v != nil {
			return *v, true
		}
	}
	return 0, false
}

func (f Fields) Bool(key string) (bool, bool) {
	switch v := f[key].(type) {
	case bool:
		return v, true
	case *bool:
		if v != nil {
			return *v, true
		}
	}
	return false, false
}

// Decimal accepts exact representations only: decimal values, decimal
// strings and integers. Floats are rejected.
func (f Fields) Decimal(key string) (decimal.Decimal, bool) {
	switch v := f[key].(type) {
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v != nil {
			return *v, true
		}
	case string:
		d, err := decimal.NewFromString(v)
		if err == nil {
			return d, true
		}
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	}
	return decimal.Decimal{}, false
}

type FieldKind int

const (
	KindString FieldKind = iota
	KindInt
	KindBool
	KindDecimal
	// KindRef is a reference to another entity id.
	KindRef
	// KindNullableRef is a reference that a falsy value clears.
	KindNullableRef
)

// Schema names the updatable fields of an entity and their kinds.
type Schema map[string]FieldKind

// Normalize keeps the keys of f named by schema and coerces each value to the
// Go type of its kind (string, int, bool, decimal.Decimal). Unknown keys and
// nil values are dropped. A KindNullableRef key with a nil or empty value is
// kept as an explicit nil. A value of the wrong type is a validation error.
func (f Fields) Normalize(schema Schema) (Fields, error) {
	out := make(Fields, len(f))
	for key, raw := range f {
		kind, known := schema[key]
		if !known {
			continue
		}

		if kind == KindNullableRef {
			s, isString := f.String(key)
			switch {
			case f.IsNull(key) || (isString && s == ""):
				out[key] = nil
			case !isString:
				return nil, invalidType(key)
			case !IsValidID(s):
				return nil, appErrors.NewValidationError(key, "is not a valid id")
			default:
				out[key] = s
			}
			continue
		}

		if raw == nil || f.IsNull(key) {
			continue
		}

		switch kind {
		case KindString:
			s, ok := f.String(key)
			if !ok {
				return nil, invalidType(key)
			}
			out[key] = s
		case KindInt:
			n, ok := f.Int(key)
			if !ok {
				return nil, invalidType(key)
			}
			out[key] = n
		case KindBool:
			b, ok := f.Bool(key)
			if !ok {
				return nil, invalidType(key)
			}
			out[key] = b
		case KindDecimal:
			d, ok := f.Decimal(key)
			if !ok {
				return nil, invalidType(key)
			}
			out[key] = d
		case KindRef:
			s, ok := f.String(key)
			if !ok {
				return nil, invalidType(key)
			}
			if !IsValidID(s) {
				return nil, appErrors.NewValidationError(key, "is not a valid id")
			}
			out[key] = s
		}
	}
	return out, nil
}

func invalidType(key string) error {
	return appErrors.NewValidationError(key, "has an invalid type")
}
