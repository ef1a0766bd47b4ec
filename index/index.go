package index

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/DecAngel/tagspace/tag"
)

// ErrReadOnly is returned when a mutation is attempted through a read-only
// handle obtained from ReadOnly.
var ErrReadOnly = errors.New("index is read-only")

// LengthMismatchError indicates a positional tagging call whose object and
// value sequences differ in length.
type LengthMismatchError struct {
	Objects, Values int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("length mismatch: %d objects, %d values", e.Objects, e.Values)
}

type bucket struct {
	value tag.Value
	ids   *roaring.Bitmap
}

type state[T comparable] struct {
	mu sync.RWMutex

	reg     *Registry[T]
	ownsReg bool

	multi      bool
	constraint tag.Constraint
	alive      func(T) bool

	// value key -> posting list. A bucket emptied by Remove keeps its slot;
	// querying the value afterwards returns an empty result, not an error.
	buckets map[string]*bucket

	// Exclusive mode only: object ID -> its single current value. For every
	// entry the ID is present in exactly the matching bucket and no other.
	reverse map[uint32]tag.Value
}

// Index is a single-dimension index mapping tag values to the set of objects
// currently holding that value.
//
// In exclusive mode (the default) each object holds at most one value and
// retagging moves it; a reverse map makes the move and object removal O(1).
// With MultiValued an object may hold many values simultaneously and there
// is no reverse map.
//
// Posting lists are Roaring Bitmaps over interned object IDs. An Index
// created standalone owns its Registry; an Index inside a TagSpace shares
// the space's registry so bitmaps intersect across dimensions.
type Index[T comparable] struct {
	s        *state[T]
	readonly bool
}

// Option configures an Index at construction time.
type Option[T comparable] func(*state[T])

// MultiValued switches the index to multi mode: an object may hold several
// values at once and retagging adds rather than moves.
func MultiValued[T comparable]() Option[T] {
	return func(s *state[T]) {
		s.multi = true
	}
}

// WithConstraint attaches a validation constraint. Every value written, and
// every exact-match query value, must satisfy it.
func WithConstraint[T comparable](c tag.Constraint) Option[T] {
	return func(s *state[T]) {
		s.constraint = c
	}
}

// WithLiveness switches the index to observe-don't-own membership: the
// object's owner lives elsewhere and alive reports whether it still exists.
// Dead entries are pruned lazily on read, so a query never returns a dead
// object.
func WithLiveness[T comparable](alive func(T) bool) Option[T] {
	return func(s *state[T]) {
		s.alive = alive
	}
}

// WithRegistry shares an external object registry instead of creating an
// owned one. Used by TagSpace so all of its dimensions agree on IDs.
func WithRegistry[T comparable](reg *Registry[T]) Option[T] {
	return func(s *state[T]) {
		s.reg = reg
		s.ownsReg = false
	}
}

// New creates an Index.
func New[T comparable](opts ...Option[T]) *Index[T] {
	s := &state[T]{
		ownsReg: true,
		buckets: make(map[string]*bucket),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.reg == nil {
		s.reg = NewRegistry[T]()
	}
	if !s.multi {
		s.reverse = make(map[uint32]tag.Value)
	}
	return &Index[T]{s: s}
}

// ReadOnly returns a handle sharing this index's state whose mutating
// methods fail with ErrReadOnly.
func (ix *Index[T]) ReadOnly() *Index[T] {
	return &Index[T]{s: ix.s, readonly: true}
}

// MultiValued reports whether the index is in multi mode.
func (ix *Index[T]) MultiValued() bool { return ix.s.multi }

// Validate checks v against the index constraint, if any.
func (ix *Index[T]) Validate(v tag.Value) error {
	if ix.s.constraint == nil {
		return nil
	}
	return ix.s.constraint.Validate(v)
}

// Tag marks objects with value. In exclusive mode an object already holding
// a different value is moved; retagging with the same value is a no-op. In
// multi mode the objects are added to the value's set idempotently.
func (ix *Index[T]) Tag(value tag.Value, objects ...T) error {
	if ix.readonly {
		return ErrReadOnly
	}
	if err := ix.Validate(value); err != nil {
		return err
	}

	s := ix.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, obj := range objects {
		s.tagLocked(s.reg.Intern(obj), value)
	}
	return nil
}

// TagEach marks objects positionally: objects[i] receives values[i]. The
// sequences must have equal length and every value is validated before any
// mutation is applied.
func (ix *Index[T]) TagEach(values []tag.Value, objects []T) error {
	if ix.readonly {
		return ErrReadOnly
	}
	if len(values) != len(objects) {
		return &LengthMismatchError{Objects: len(objects), Values: len(values)}
	}
	for _, v := range values {
		if err := ix.Validate(v); err != nil {
			return err
		}
	}

	s := ix.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, obj := range objects {
		s.tagLocked(s.reg.Intern(obj), values[i])
	}
	return nil
}

func (s *state[T]) tagLocked(id uint32, value tag.Value) {
	if !s.multi {
		if cur, ok := s.reverse[id]; ok {
			if cur.Equal(value) {
				return
			}
			if b, ok := s.buckets[cur.Key()]; ok {
				b.ids.Remove(id)
			}
		}
		s.reverse[id] = value
	}

	k := value.Key()
	b, ok := s.buckets[k]
	if !ok {
		b = &bucket{value: value, ids: roaring.New()}
		s.buckets[k] = b
	}
	b.ids.Add(id)
}

// Find returns the objects selected by sel: the bucket for an exact value,
// the union of buckets for a one-of selector, or the union over every
// currently-present value satisfying a predicate. The result is a defensive
// copy; order is unspecified.
func (ix *Index[T]) Find(sel tag.Selector) ([]T, error) {
	bm, err := ix.Postings(sel)
	if err != nil {
		return nil, err
	}
	return Materialize(bm, ix.s.reg), nil
}

// Postings evaluates sel to a fresh bitmap of object IDs. TagSpace uses this
// to intersect dimensions without materializing intermediate sets.
func (ix *Index[T]) Postings(sel tag.Selector) (*roaring.Bitmap, error) {
	s := ix.s
	if s.alive != nil {
		s.prune()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.evalLocked(sel)
}

func (s *state[T]) evalLocked(sel tag.Selector) (*roaring.Bitmap, error) {
	out := roaring.New()

	if terms, ok := sel.Terms(); ok {
		for _, t := range terms {
			if s.constraint != nil {
				if err := s.constraint.Validate(t); err != nil {
					return nil, err
				}
			}
			if b, ok := s.buckets[t.Key()]; ok {
				out.Or(b.ids)
			}
		}
		return out, nil
	}

	for _, b := range s.buckets {
		if sel.Match(b.value) {
			out.Or(b.ids)
		}
	}
	return out, nil
}

// Remove discards the object sets of every value selected by sel, along with
// the corresponding reverse entries in exclusive mode. The value slots stay
// present but empty.
func (ix *Index[T]) Remove(sel tag.Selector) error {
	if ix.readonly {
		return ErrReadOnly
	}

	s := ix.s
	s.mu.Lock()
	defer s.mu.Unlock()

	targets := make([]*bucket, 0, 1)
	if terms, ok := sel.Terms(); ok {
		for _, t := range terms {
			if s.constraint != nil {
				if err := s.constraint.Validate(t); err != nil {
					return err
				}
			}
			if b, ok := s.buckets[t.Key()]; ok {
				targets = append(targets, b)
			}
		}
	} else {
		for _, b := range s.buckets {
			if sel.Match(b.value) {
				targets = append(targets, b)
			}
		}
	}

	for _, b := range targets {
		if !s.multi {
			it := b.ids.Iterator()
			for it.HasNext() {
				delete(s.reverse, it.Next())
			}
		}
		b.ids.Clear()
	}
	return nil
}

// RemoveObjects removes the given objects from the index. Objects that are
// not present are silently ignored.
func (ix *Index[T]) RemoveObjects(objects ...T) error {
	if ix.readonly {
		return ErrReadOnly
	}

	s := ix.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, obj := range objects {
		id, ok := s.reg.Lookup(obj)
		if !ok {
			continue
		}
		s.removeIDLocked(id)
		if s.ownsReg {
			s.reg.ReleaseID(id)
		}
	}
	return nil
}

func (s *state[T]) removeIDLocked(id uint32) {
	if !s.multi {
		if v, ok := s.reverse[id]; ok {
			if b, ok := s.buckets[v.Key()]; ok {
				b.ids.Remove(id)
			}
			delete(s.reverse, id)
		}
		return
	}
	for _, b := range s.buckets {
		b.ids.Remove(id)
	}
}

// SharedValue returns the single value held by every one of the given
// objects. The reduction is all-or-nothing: one absent or differing object
// yields no result. Multi-valued indexes never report a shared value.
func (ix *Index[T]) SharedValue(objects ...T) (tag.Value, bool) {
	s := ix.s
	if s.multi || len(objects) == 0 {
		return tag.Value{}, false
	}
	if s.alive != nil {
		s.prune()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var shared tag.Value
	for i, obj := range objects {
		id, ok := s.reg.Lookup(obj)
		if !ok {
			return tag.Value{}, false
		}
		v, ok := s.reverse[id]
		if !ok {
			return tag.Value{}, false
		}
		if i == 0 {
			shared = v
			continue
		}
		if !shared.Equal(v) {
			return tag.Value{}, false
		}
	}
	return shared, true
}

// Values returns every value currently known to the index, including values
// whose object set has been emptied by Remove. Order is unspecified.
func (ix *Index[T]) Values() []tag.Value {
	s := ix.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	vs := make([]tag.Value, 0, len(s.buckets))
	for _, b := range s.buckets {
		vs = append(vs, b.value)
	}
	return vs
}

// Len returns the number of objects currently tagged.
func (ix *Index[T]) Len() int {
	s := ix.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.multi {
		return len(s.reverse)
	}
	union := roaring.New()
	for _, b := range s.buckets {
		union.Or(b.ids)
	}
	return int(union.GetCardinality())
}

// Clear drops all buckets and reverse entries. An owned registry is reset;
// a shared one is left to its owner.
func (ix *Index[T]) Clear() error {
	if ix.readonly {
		return ErrReadOnly
	}

	s := ix.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buckets = make(map[string]*bucket)
	if !s.multi {
		s.reverse = make(map[uint32]tag.Value)
	}
	if s.ownsReg {
		s.reg.Reset()
	}
	return nil
}

// ContentString returns a human-readable dump of the value -> objects
// mapping. Diagnostic only; the format does not round-trip.
func (ix *Index[T]) ContentString() string {
	s := ix.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.buckets))
	for k := range s.buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		b := s.buckets[k]
		reprs := make([]string, 0, b.ids.GetCardinality())
		it := b.ids.Iterator()
		for it.HasNext() {
			if obj, ok := s.reg.Object(it.Next()); ok {
				reprs = append(reprs, fmt.Sprintf("%v", obj))
			}
		}
		sort.Strings(reprs)
		fmt.Fprintf(&sb, "\t%s: {%s}\n", b.value, strings.Join(reprs, ", "))
	}
	return sb.String()
}

// ReverseString returns a human-readable dump of the object -> value
// mapping. Exclusive mode only; multi-valued indexes have no reverse map and
// return the empty string. Diagnostic only; the format does not round-trip.
func (ix *Index[T]) ReverseString() string {
	s := ix.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.multi {
		return ""
	}

	lines := make([]string, 0, len(s.reverse))
	for id, v := range s.reverse {
		if obj, ok := s.reg.Object(id); ok {
			lines = append(lines, fmt.Sprintf("\t%v: %s\n", obj, v))
		}
	}
	sort.Strings(lines)

	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
	}
	return sb.String()
}

// Materialize resolves a bitmap of IDs back to objects through reg.
func Materialize[T comparable](bm *roaring.Bitmap, reg *Registry[T]) []T {
	out := make([]T, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		if obj, ok := reg.Object(it.Next()); ok {
			out = append(out, obj)
		}
	}
	return out
}

// prune removes every entry whose object the liveness probe reports dead.
// It runs lazily at the start of read operations so a dead object's
// footprint is never externally observable.
func (s *state[T]) prune() {
	s.mu.Lock()
	defer s.mu.Unlock()

	union := roaring.New()
	for _, b := range s.buckets {
		union.Or(b.ids)
	}

	var dead []uint32
	it := union.Iterator()
	for it.HasNext() {
		id := it.Next()
		obj, ok := s.reg.Object(id)
		if !ok || !s.alive(obj) {
			dead = append(dead, id)
		}
	}

	for _, id := range dead {
		s.removeIDLocked(id)
		if s.ownsReg {
			s.reg.ReleaseID(id)
		}
	}
}
