package tag

import (
	"fmt"
	"math"
)

// UnsupportedTypeError indicates input that is none of the recognized value
// or selector shapes.
type UnsupportedTypeError struct {
	Got any
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported tag value type %T", e.Got)
}

// From converts a Go value into a typed Value.
//
// This exists as an adapter layer for untyped user input.
func From(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case float64:
		return Float(x), nil
	case float32:
		return Float(float64(x)), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		if uint64(x) > math.MaxInt64 {
			return Value{}, &UnsupportedTypeError{Got: v}
		}
		return Int(int64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		if x > math.MaxInt64 {
			// Avoid silently truncating large values.
			return Value{}, &UnsupportedTypeError{Got: v}
		}
		return Int(int64(x)), nil
	default:
		return Value{}, &UnsupportedTypeError{Got: v}
	}
}

// SelectorFrom converts untyped input into a Selector: a Selector passes
// through, a func(Value) bool becomes a predicate, a slice becomes a one-of
// selector, and anything convertible by From becomes an exact selector.
func SelectorFrom(v any) (Selector, error) {
	switch x := v.(type) {
	case Selector:
		return x, nil
	case func(Value) bool:
		return Where(x), nil
	case []Value:
		return OneOf(x...), nil
	case []any:
		vs := make([]Value, len(x))
		for i := range x {
			vv, err := From(x[i])
			if err != nil {
				return nil, err
			}
			vs[i] = vv
		}
		return OneOf(vs...), nil
	case []string:
		vs := make([]Value, len(x))
		for i := range x {
			vs[i] = String(x[i])
		}
		return OneOf(vs...), nil
	case []int:
		vs := make([]Value, len(x))
		for i := range x {
			vs[i] = Int(int64(x[i]))
		}
		return OneOf(vs...), nil
	case []float64:
		vs := make([]Value, len(x))
		for i := range x {
			vs[i] = Float(x[i])
		}
		return OneOf(vs...), nil
	default:
		vv, err := From(v)
		if err != nil {
			return nil, err
		}
		return Exact(vv), nil
	}
}
