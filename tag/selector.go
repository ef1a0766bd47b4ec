package tag

// Selector chooses tag values for queries and removals. The three shapes are
// an exact value (Exact), a finite set of values (OneOf) and an arbitrary
// predicate over values (Where).
type Selector interface {
	// Match reports whether a stored value qualifies.
	Match(v Value) bool

	// Terms returns the selector's value terms and true when the selector is
	// a finite enumeration of exact values. Predicate selectors return false;
	// they can only be evaluated against the values currently present.
	Terms() ([]Value, bool)
}

type exactSelector struct {
	v Value
}

// Exact selects a single exact value.
func Exact(v Value) Selector { return exactSelector{v: v} }

func (s exactSelector) Match(v Value) bool { return s.v.Equal(v) }

func (s exactSelector) Terms() ([]Value, bool) { return []Value{s.v}, true }

type oneOfSelector struct {
	vs []Value
}

// OneOf selects any of the given values. The result of a query is the union
// of the per-value buckets.
func OneOf(vs ...Value) Selector { return oneOfSelector{vs: vs} }

func (s oneOfSelector) Match(v Value) bool {
	for _, t := range s.vs {
		if t.Equal(v) {
			return true
		}
	}
	return false
}

func (s oneOfSelector) Terms() ([]Value, bool) { return s.vs, true }

type whereSelector struct {
	fn func(Value) bool
}

// Where selects every currently-present value satisfying fn. A predicate
// query never fails on a value that was never stored; it simply does not see
// it.
func Where(fn func(Value) bool) Selector { return whereSelector{fn: fn} }

func (s whereSelector) Match(v Value) bool { return s.fn(v) }

func (s whereSelector) Terms() ([]Value, bool) { return nil, false }
