// Package tag provides the typed value model for tagspace.
//
// # Values
//
// Tag values are one of:
//
//   - String: tag.String("gold")
//   - Int: tag.Int(2024)
//   - Float: tag.Float(3.14)
//   - Bool: tag.Bool(true)
//
// Values are compared type-and-value exact: tag.Int(1), tag.Float(1) and
// tag.Bool(true) are three distinct values and never collide as buckets.
//
// # Selectors
//
// Queries and removals take a Selector:
//
//   - Exact(v): a single exact value
//   - OneOf(vs...): union over a finite set of values
//   - Where(fn): every currently-present value satisfying fn
//
// Example:
//
//	idx.Find(tag.Where(func(v tag.Value) bool {
//	    return v.IsNumeric() && v.Float64() < 10
//	}))
//
// # Constraints
//
// A dimension can be constrained at creation time:
//
//   - Range(lower, upper): numeric values within inclusive bounds
//   - Categories(names...): strings from a fixed category set
//
// Constraint violations fail before any mutation occurs.
package tag
