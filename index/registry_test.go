package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DecAngel/tagspace/tag"
)

func TestRegistryIntern(t *testing.T) {
	r := NewRegistry[string]()

	a := r.Intern("a")
	b := r.Intern("b")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, r.Intern("a"), "interning is stable")
	assert.Equal(t, 2, r.Len())

	obj, ok := r.Object(a)
	require.True(t, ok)
	assert.Equal(t, "a", obj)

	id, ok := r.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, b, id)

	_, ok = r.Lookup("c")
	assert.False(t, ok, "Lookup must not assign")
	assert.Equal(t, 2, r.Len())
}

func TestRegistryRelease(t *testing.T) {
	r := NewRegistry[string]()

	a := r.Intern("a")
	r.Intern("b")
	r.Release("a")

	_, ok := r.Lookup("a")
	assert.False(t, ok)
	_, ok = r.Object(a)
	assert.False(t, ok)

	c := r.Intern("c")
	assert.Equal(t, a, c, "released IDs are reused")

	r.Release("never-interned")
	assert.Equal(t, 2, r.Len())
}

func TestRegistryReset(t *testing.T) {
	r := NewRegistry[int]()
	r.Intern(1)
	r.Intern(2)
	r.Reset()

	assert.Equal(t, 0, r.Len())
	assert.Equal(t, uint32(0), r.Intern(3), "IDs restart after reset")
}

func TestSharedRegistryAcrossIndexes(t *testing.T) {
	reg := NewRegistry[int]()
	a := New[int](WithRegistry[int](reg))
	b := New[int](WithRegistry[int](reg))

	require.NoError(t, a.Tag(tag.Int(1), 10))
	require.NoError(t, b.Tag(tag.Int(2), 10))

	assert.Equal(t, 1, reg.Len(), "both dimensions intern the object once")

	pa, err := a.Postings(tag.Exact(tag.Int(1)))
	require.NoError(t, err)
	pb, err := b.Postings(tag.Exact(tag.Int(2)))
	require.NoError(t, err)
	pa.And(pb)
	assert.ElementsMatch(t, []int{10}, Materialize(pa, reg))
}
