package index

import "sync"

// Registry interns objects to dense uint32 IDs so posting lists can be kept
// as Roaring Bitmaps and intersected across dimensions. A Registry shared by
// several indexes guarantees that the same object carries the same ID in
// every dimension.
type Registry[T comparable] struct {
	mu   sync.RWMutex
	ids  map[T]uint32
	objs map[uint32]T
	next uint32
	free []uint32
}

// NewRegistry creates an empty registry.
func NewRegistry[T comparable]() *Registry[T] {
	return &Registry[T]{
		ids:  make(map[T]uint32),
		objs: make(map[uint32]T),
	}
}

// Intern returns the ID for obj, assigning a fresh one on first use.
// Released IDs are reused before new ones are minted.
func (r *Registry[T]) Intern(obj T) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.ids[obj]; ok {
		return id
	}

	var id uint32
	if n := len(r.free); n > 0 {
		id = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		id = r.next
		r.next++
	}

	r.ids[obj] = id
	r.objs[id] = obj
	return id
}

// Lookup returns the ID for obj without assigning one.
func (r *Registry[T]) Lookup(obj T) (uint32, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.ids[obj]
	return id, ok
}

// Object returns the object interned under id.
func (r *Registry[T]) Object(id uint32) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	obj, ok := r.objs[id]
	return obj, ok
}

// Release drops the interning entry for obj and recycles its ID. Callers
// must ensure the ID is absent from every posting list first.
func (r *Registry[T]) Release(obj T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.ids[obj]
	if !ok {
		return
	}
	delete(r.ids, obj)
	delete(r.objs, id)
	r.free = append(r.free, id)
}

// ReleaseID drops the interning entry for id and recycles it.
func (r *Registry[T]) ReleaseID(id uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	obj, ok := r.objs[id]
	if !ok {
		return
	}
	delete(r.ids, obj)
	delete(r.objs, id)
	r.free = append(r.free, id)
}

// Len returns the number of interned objects.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.ids)
}

// Reset drops all interning entries.
func (r *Registry[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ids = make(map[T]uint32)
	r.objs = make(map[uint32]T)
	r.next = 0
	r.free = nil
}
