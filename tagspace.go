package tagspace

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/DecAngel/tagspace/index"
	"github.com/DecAngel/tagspace/tag"
)

// Tags maps tag names to the value each named dimension should record.
type Tags map[string]tag.Value

// Query maps tag names to the selector evaluated against each named
// dimension. Results are intersected across dimensions.
type Query map[string]tag.Selector

// TagSpace is a collection of named tag indexes over a single object domain.
//
// Tagging fans out to the named dimensions independently; querying evaluates
// each named selector against its dimension and intersects the resulting
// object sets. Dimensions share one object registry, so intersection is a
// bitmap AND over identical IDs. A TagSpace owns its indexes exclusively;
// external access goes through read-only handles.
type TagSpace[T comparable] struct {
	mu      sync.RWMutex
	strict  bool
	reg     *index.Registry[T]
	indices map[string]*index.Index[T]

	// Inferred kind of auto-created dimensions, for diagnostics only. Type
	// drift after creation is not re-validated.
	kinds map[string]tag.Kind

	logger  *Logger
	metrics MetricsCollector
	cache   *queryCache[T]
	gen     atomic.Uint64
}

// New creates a TagSpace.
func New[T comparable](opts ...Option) *TagSpace[T] {
	c := &config{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, opt := range opts {
		opt(c)
	}

	t := &TagSpace[T]{
		strict:  c.strict,
		reg:     index.NewRegistry[T](),
		indices: make(map[string]*index.Index[T]),
		kinds:   make(map[string]tag.Kind),
		logger:  c.logger,
		metrics: c.metrics,
	}
	if c.cacheSize > 0 {
		t.cache = newQueryCache[T](c.cacheSize)
	}
	return t
}

// validName reports whether name is a usable tag name: non-empty and not
// carrying the reserved "_" prefix.
func validName(name string) bool {
	return name != "" && !strings.HasPrefix(name, "_")
}

// Define registers a dimension explicitly, with optional constraints or
// multi mode:
//
//	sp.Define("score", index.WithConstraint[string](tag.Range(0, 100)))
//	sp.Define("alias", index.MultiValued[string]())
//
// Define is required before use in strict mode and optional otherwise.
// Redefining an existing name is an error.
func (t *TagSpace[T]) Define(name string, opts ...index.Option[T]) error {
	if !validName(name) {
		return fmt.Errorf("%w: invalid tag name %q", ErrValidation, name)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.indices[name]; ok {
		return fmt.Errorf("%w: already defined: %q", ErrValidation, name)
	}
	opts = append(opts, index.WithRegistry[T](t.reg))
	t.indices[name] = index.New[T](opts...)
	return nil
}

// Tag marks objects along every dimension named in tags. In strict mode each
// name must have been Defined; otherwise first use auto-creates an
// unconstrained index whose kind is inferred from the supplied value. Names
// and values are checked before any dimension is mutated.
func (t *TagSpace[T]) Tag(tags Tags, objects ...T) error {
	start := time.Now()
	err := t.applyTags(tags, objects)
	t.metrics.RecordTag(len(objects), time.Since(start), err)
	t.logger.LogTag(len(tags), len(objects), err)
	return translateError(err)
}

func (t *TagSpace[T]) applyTags(tags Tags, objects []T) error {
	resolved := make(map[string]*index.Index[T], len(tags))
	pending := make(map[string]tag.Kind)

	t.mu.Lock()
	for name, v := range tags {
		if !validName(name) {
			t.mu.Unlock()
			return fmt.Errorf("%w: invalid tag name %q", ErrValidation, name)
		}
		idx, ok := t.indices[name]
		if !ok {
			if t.strict {
				t.mu.Unlock()
				return fmt.Errorf("%w: %q", ErrUnknownTag, name)
			}
			// Auto-creation is deferred until every name and value in the
			// call has been checked, so a failed call never registers an
			// empty dimension.
			pending[name] = v.Kind
			continue
		}
		if err := idx.Validate(v); err != nil {
			t.mu.Unlock()
			return err
		}
		resolved[name] = idx
	}
	for name, kind := range pending {
		resolved[name] = t.createLocked(name, kind)
	}
	t.mu.Unlock()

	for name, v := range tags {
		if err := resolved[name].Tag(v, objects...); err != nil {
			return err
		}
	}
	t.gen.Add(1)
	return nil
}

// TagEach marks objects positionally along one dimension: objects[i]
// receives values[i]. The sequences must have equal length and every value
// is validated before any mutation.
func (t *TagSpace[T]) TagEach(name string, objects []T, values []tag.Value) error {
	start := time.Now()
	err := t.applyTagEach(name, objects, values)
	t.metrics.RecordTag(len(objects), time.Since(start), err)
	t.logger.WithTag(name).LogTag(1, len(objects), err)
	return translateError(err)
}

func (t *TagSpace[T]) applyTagEach(name string, objects []T, values []tag.Value) error {
	// Checked up front so a mismatched call cannot auto-create a dimension.
	if len(values) != len(objects) {
		return &index.LengthMismatchError{Objects: len(objects), Values: len(values)}
	}

	kind := tag.KindInvalid
	if len(values) > 0 {
		kind = values[0].Kind
	}

	t.mu.Lock()
	idx, err := t.indexForLocked(name, kind)
	t.mu.Unlock()
	if err != nil {
		return err
	}

	if err := idx.TagEach(values, objects); err != nil {
		return err
	}
	t.gen.Add(1)
	return nil
}

// indexForLocked resolves a dimension on a tagging path, auto-creating it in
// permissive mode. Caller must hold t.mu.
func (t *TagSpace[T]) indexForLocked(name string, kind tag.Kind) (*index.Index[T], error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: invalid tag name %q", ErrValidation, name)
	}
	if idx, ok := t.indices[name]; ok {
		return idx, nil
	}
	if t.strict {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTag, name)
	}
	return t.createLocked(name, kind), nil
}

// createLocked registers a fresh unconstrained dimension. Caller must hold
// t.mu and must have checked the name and the rest of the call already.
func (t *TagSpace[T]) createLocked(name string, kind tag.Kind) *index.Index[T] {
	idx := index.New[T](index.WithRegistry[T](t.reg))
	t.indices[name] = idx
	if kind != tag.KindInvalid {
		t.kinds[name] = kind
	}
	return idx
}

// Find returns the objects matching every (name, selector) pair in query,
// by set intersection. An empty query returns no objects. Unknown names fail
// with ErrUnknownTag in both modes.
func (t *TagSpace[T]) Find(query Query) ([]T, error) {
	start := time.Now()
	objects, err := t.find(query)
	t.metrics.RecordFind(len(query), len(objects), time.Since(start), err)
	t.logger.LogFind(len(query), len(objects), err)
	return objects, translateError(err)
}

func (t *TagSpace[T]) find(query Query) ([]T, error) {
	if len(query) == 0 {
		return nil, nil
	}

	idxs := make([]*index.Index[T], 0, len(query))
	sels := make([]tag.Selector, 0, len(query))

	t.mu.RLock()
	for name, sel := range query {
		idx, ok := t.indices[name]
		if !ok {
			t.mu.RUnlock()
			return nil, fmt.Errorf("%w: %q", ErrUnknownTag, name)
		}
		idxs = append(idxs, idx)
		sels = append(sels, sel)
	}
	t.mu.RUnlock()

	key, keyable := queryKey(query)
	gen := t.gen.Load()
	if keyable && t.cache != nil {
		if objects, ok := t.cache.get(key, gen); ok {
			return objects, nil
		}
	}

	// Dimensions are independent indexes, so evaluation fans out. Reads are
	// safe to run concurrently with each other.
	results := make([]*roaring.Bitmap, len(idxs))
	var g errgroup.Group
	for i := range idxs {
		g.Go(func() error {
			bm, err := idxs[i].Postings(sels[i])
			if err != nil {
				return err
			}
			results[i] = bm
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	acc := results[0]
	for _, bm := range results[1:] {
		acc.And(bm)
	}

	objects := index.Materialize(acc, t.reg)
	if keyable && t.cache != nil {
		// Store a private copy; the returned slice belongs to the caller.
		t.cache.put(key, gen, append([]T(nil), objects...))
	}
	return objects, nil
}

// SharedTags returns, for every dimension in which all given objects hold
// one identical value, that name -> value pair. Dimensions with no shared
// value are omitted.
func (t *TagSpace[T]) SharedTags(objects ...T) map[string]tag.Value {
	t.mu.RLock()
	snapshot := make(map[string]*index.Index[T], len(t.indices))
	for name, idx := range t.indices {
		snapshot[name] = idx
	}
	t.mu.RUnlock()

	shared := make(map[string]tag.Value)
	for name, idx := range snapshot {
		if v, ok := idx.SharedValue(objects...); ok {
			shared[name] = v
		}
	}
	return shared
}

// Remove discards, per (name, selector) pair, the object sets of the
// qualifying values without destroying the indexes themselves. All names are
// resolved before any dimension is mutated.
func (t *TagSpace[T]) Remove(query Query) error {
	start := time.Now()
	err := t.applyRemove(query)
	t.metrics.RecordRemove(time.Since(start), err)
	t.logger.LogRemove(len(query), err)
	return translateError(err)
}

func (t *TagSpace[T]) applyRemove(query Query) error {
	idxs := make(map[string]*index.Index[T], len(query))

	t.mu.RLock()
	for name := range query {
		idx, ok := t.indices[name]
		if !ok {
			t.mu.RUnlock()
			return fmt.Errorf("%w: %q", ErrUnknownTag, name)
		}
		idxs[name] = idx
	}
	t.mu.RUnlock()

	for name, sel := range query {
		if err := idxs[name].Remove(sel); err != nil {
			return err
		}
	}
	t.gen.Add(1)
	return nil
}

// DropTags destroys whole dimensions, contents included. All names are
// checked before any dimension is dropped.
func (t *TagSpace[T]) DropTags(names ...string) error {
	start := time.Now()
	err := t.applyDropTags(names)
	t.metrics.RecordRemove(time.Since(start), err)
	t.logger.LogRemove(len(names), err)
	return translateError(err)
}

func (t *TagSpace[T]) applyDropTags(names []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, name := range names {
		if _, ok := t.indices[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTag, name)
		}
	}
	for _, name := range names {
		delete(t.indices, name)
		delete(t.kinds, name)
	}
	t.gen.Add(1)
	return nil
}

// RemoveObjects removes the given objects from every dimension and releases
// their registry entries. Objects that are not present anywhere are silently
// ignored.
func (t *TagSpace[T]) RemoveObjects(objects ...T) {
	start := time.Now()

	t.mu.RLock()
	idxs := make([]*index.Index[T], 0, len(t.indices))
	for _, idx := range t.indices {
		idxs = append(idxs, idx)
	}
	t.mu.RUnlock()

	for _, idx := range idxs {
		// Handles held by the space are never read-only.
		_ = idx.RemoveObjects(objects...)
	}
	for _, obj := range objects {
		t.reg.Release(obj)
	}
	t.gen.Add(1)

	t.metrics.RecordRemove(time.Since(start), nil)
	t.logger.LogRemove(len(idxs), nil)
}

// Clear drops all dimensions and resets the object registry, returning the
// space to its initial empty state.
func (t *TagSpace[T]) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.indices = make(map[string]*index.Index[T])
	t.kinds = make(map[string]tag.Kind)
	t.reg.Reset()
	t.gen.Add(1)
}

// Index returns a read-only handle on the named dimension. Mutations through
// the handle fail with ErrReadOnly; the space remains the sole writer.
func (t *TagSpace[T]) Index(name string) (*index.Index[T], error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	idx, ok := t.indices[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTag, name)
	}
	return idx.ReadOnly(), nil
}

// Apply tags obj and returns it, for use in registration chains at
// construction time:
//
//	handler, err := sp.Apply(newHandler(), tagspace.Tags{"kind": tag.String("http")})
func (t *TagSpace[T]) Apply(obj T, tags Tags) (T, error) {
	if err := t.Tag(tags, obj); err != nil {
		return obj, err
	}
	return obj, nil
}

// MustApply is Apply for definition-time registration where a tagging
// failure is a programming error. It panics on error.
func (t *TagSpace[T]) MustApply(obj T, tags Tags) T {
	obj, err := t.Apply(obj, tags)
	if err != nil {
		panic(err)
	}
	return obj
}

// TagNames returns the registered dimension names in sorted order.
func (t *TagSpace[T]) TagNames() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.indices))
	for name := range t.indices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered dimensions.
func (t *TagSpace[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.indices)
}

// ContentString returns a human-readable dump of every dimension's
// value -> objects mapping. Diagnostic only; the format does not round-trip.
func (t *TagSpace[T]) ContentString() string {
	t.mu.RLock()
	names := make([]string, 0, len(t.indices))
	for name := range t.indices {
		names = append(names, name)
	}
	sort.Strings(names)
	snapshot := make(map[string]*index.Index[T], len(names))
	kinds := make(map[string]tag.Kind, len(names))
	for _, name := range names {
		snapshot[name] = t.indices[name]
		if k, ok := t.kinds[name]; ok {
			kinds[name] = k
		}
	}
	t.mu.RUnlock()

	var sb strings.Builder
	for _, name := range names {
		if k, ok := kinds[name]; ok {
			fmt.Fprintf(&sb, "%s (%s):\n", name, k)
		} else {
			fmt.Fprintf(&sb, "%s:\n", name)
		}
		sb.WriteString(snapshot[name].ContentString())
	}
	return sb.String()
}
