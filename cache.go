package tagspace

import (
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultQueryCacheSize is the default number of query results to keep when
// WithQueryCache is enabled without an explicit size.
const DefaultQueryCacheSize = 256

type cacheEntry[T comparable] struct {
	gen     uint64
	objects []T
}

// queryCache memoizes materialized query results. Every entry carries the
// space generation it was computed at; a mutation bumps the generation, so
// stale entries miss and age out of the LRU naturally.
type queryCache[T comparable] struct {
	entries *lru.Cache[string, cacheEntry[T]]
}

func newQueryCache[T comparable](size int) *queryCache[T] {
	entries, _ := lru.New[string, cacheEntry[T]](size)
	return &queryCache[T]{entries: entries}
}

func (c *queryCache[T]) get(key string, gen uint64) ([]T, bool) {
	e, ok := c.entries.Get(key)
	if !ok || e.gen != gen {
		return nil, false
	}
	// Copy so callers cannot mutate the cached slice.
	return append([]T(nil), e.objects...), true
}

func (c *queryCache[T]) put(key string, gen uint64, objects []T) {
	c.entries.Add(key, cacheEntry[T]{gen: gen, objects: objects})
}

// queryKey builds a stable cache key for a query. Queries containing a
// predicate selector are not keyable and bypass the cache.
func queryKey(query Query) (string, bool) {
	names := make([]string, 0, len(query))
	for name := range query {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		terms, ok := query[name].Terms()
		if !ok {
			return "", false
		}
		sb.WriteString(name)
		sb.WriteByte('\x1e')
		for _, t := range terms {
			sb.WriteString(t.Key())
			sb.WriteByte('\x1f')
		}
		sb.WriteByte('\x1d')
	}
	return sb.String(), true
}
