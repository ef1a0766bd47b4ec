package tag

import (
	"fmt"
	"sort"
	"strings"
)

// Constraint restricts the values a dimension accepts. Constraints are
// checked before any mutation and on exact-match query values, so a
// violation never leaves an index partially updated.
type Constraint interface {
	// Validate returns a non-nil error when v is outside the constraint.
	Validate(v Value) error
}

// OutOfRangeError indicates a value outside a numeric range constraint, or a
// non-numeric value written to a range-constrained dimension.
type OutOfRangeError struct {
	Value        Value
	Lower, Upper float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("value %s outside range [%g, %g]", e.Value, e.Lower, e.Upper)
}

// CategoryError indicates a value not contained in a category constraint, or
// a non-string value written to a categorical dimension.
type CategoryError struct {
	Value   Value
	Allowed []string
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("value %s not in categories {%s}", e.Value, strings.Join(e.Allowed, ", "))
}

type rangeConstraint struct {
	lower, upper float64
}

// Range returns a numeric constraint with inclusive bounds. Int and float
// values are compared numerically; any other kind is rejected.
func Range(lower, upper float64) Constraint {
	return rangeConstraint{lower: lower, upper: upper}
}

func (c rangeConstraint) Validate(v Value) error {
	if !v.IsNumeric() {
		return &OutOfRangeError{Value: v, Lower: c.lower, Upper: c.upper}
	}
	if f := v.Float64(); f < c.lower || f > c.upper {
		return &OutOfRangeError{Value: v, Lower: c.lower, Upper: c.upper}
	}
	return nil
}

type categoryConstraint struct {
	allowed map[string]struct{}
}

// Categories returns a string constraint limiting a dimension to the given
// category names.
func Categories(names ...string) Constraint {
	allowed := make(map[string]struct{}, len(names))
	for _, n := range names {
		allowed[n] = struct{}{}
	}
	return categoryConstraint{allowed: allowed}
}

func (c categoryConstraint) Validate(v Value) error {
	if s, ok := v.AsString(); ok {
		if _, ok := c.allowed[s]; ok {
			return nil
		}
	}
	names := make([]string, 0, len(c.allowed))
	for n := range c.allowed {
		names = append(names, n)
	}
	sort.Strings(names)
	return &CategoryError{Value: v, Allowed: names}
}
