package arena

import "iter"

// Entity is the capability every arena-managed type must provide.
// The arena writes the identifier exactly once, on Insert.
type Entity interface {
	ID() uint32
	SetID(id uint32)
}

// Arena owns entities of one kind and hands out stable identifiers.
//
// T is expected to be a pointer type so that Get doubles as the mutable
// lookup.
//
// INVARIANTS:
//   - every key in index addresses exactly one live entity in items
//   - items[index[id]].ID() == id for every mapped id
//   - next only grows; free holds ids that are not currently mapped
type Arena[T Entity] struct {
	items []T
	index map[uint32]int
	next  uint32
	free  []uint32
}

// New creates an empty arena.
func New[T Entity]() *Arena[T] {
	return &Arena[T]{
		index: make(map[uint32]int),
	}
}

// nextID pops the free stack, or advances the counter when it is empty.
func (a *Arena[T]) nextID() uint32 {
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		return id
	}
	id := a.next
	a.next++
	return id
}

// Insert assigns an identifier to item, stores it and returns the id.
func (a *Arena[T]) Insert(item T) uint32 {
	id := a.nextID()
	item.SetID(id)
	a.index[id] = len(a.items)
	a.items = append(a.items, item)
	return id
}

// Remove deletes the entity with the given id and returns it.
// Returns false if the id is not currently mapped.
//
// The last entity is swapped into the vacated position; only its index
// entry is patched. The removed id becomes eligible for reuse.
func (a *Arena[T]) Remove(id uint32) (T, bool) {
	pos, ok := a.index[id]
	if !ok {
		var zero T
		return zero, false
	}

	removed := a.items[pos]
	last := len(a.items) - 1
	if pos != last {
		moved := a.items[last]
		a.items[pos] = moved
		a.index[moved.ID()] = pos
	}
	var zero T
	a.items[last] = zero
	a.items = a.items[:last]

	delete(a.index, id)
	a.free = append(a.free, id)
	return removed, true
}

// Get returns the entity with the given id.
func (a *Arena[T]) Get(id uint32) (T, bool) {
	pos, ok := a.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return a.items[pos], true
}

// Contains reports whether id is currently mapped.
func (a *Arena[T]) Contains(id uint32) bool {
	_, ok := a.index[id]
	return ok
}

// GetMany looks up every id in input order. Absent ids yield the zero
// value of T (nil for pointer entities). The result is never reordered
// to storage order.
func (a *Arena[T]) GetMany(ids []uint32) []T {
	out := make([]T, len(ids))
	for i, id := range ids {
		if pos, ok := a.index[id]; ok {
			out[i] = a.items[pos]
		}
	}
	return out
}

// Indices returns the storage position of every id in input order,
// or -1 for ids that are not mapped.
func (a *Arena[T]) Indices(ids []uint32) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		pos, ok := a.index[id]
		if !ok {
			pos = -1
		}
		out[i] = pos
	}
	return out
}

// Len returns the number of live entities.
func (a *Arena[T]) Len() int {
	return len(a.items)
}

// All iterates entities in storage order.
// Storage order changes when entities are removed.
func (a *Arena[T]) All() iter.Seq2[uint32, T] {
	return func(yield func(uint32, T) bool) {
		for _, item := range a.items {
			if !yield(item.ID(), item) {
				return
			}
		}
	}
}

// IDs returns the mapped ids in storage order.
func (a *Arena[T]) IDs() []uint32 {
	ids := make([]uint32, len(a.items))
	for i, item := range a.items {
		ids[i] = item.ID()
	}
	return ids
}

// Clone returns an independent arena. copyItem must return a deep copy
// that preserves the item's id; Clone does not reassign ids.
func (a *Arena[T]) Clone(copyItem func(T) T) *Arena[T] {
	c := &Arena[T]{
		items: make([]T, len(a.items)),
		index: make(map[uint32]int, len(a.index)),
		next:  a.next,
		free:  append([]uint32(nil), a.free...),
	}
	for i, item := range a.items {
		c.items[i] = copyItem(item)
	}
	for id, pos := range a.index {
		c.index[id] = pos
	}
	return c
}
