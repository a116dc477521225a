package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id   uint32
	name string
}

func (i *item) ID() uint32      { return i.id }
func (i *item) SetID(id uint32) { i.id = id }

func newItem(name string) *item { return &item{name: name} }

func TestInsertAssignsSequentialIDs(t *testing.T) {
	a := New[*item]()

	for want := uint32(0); want < 4; want++ {
		it := newItem("x")
		got := a.Insert(it)
		assert.Equal(t, want, got)
		assert.Equal(t, want, it.ID(), "Insert must write the id into the entity")
	}
	assert.Equal(t, 4, a.Len())
}

func TestGetAndContains(t *testing.T) {
	a := New[*item]()
	id := a.Insert(newItem("alpha"))

	got, ok := a.Get(id)
	require.True(t, ok)
	assert.Equal(t, "alpha", got.name)
	assert.True(t, a.Contains(id))

	_, ok = a.Get(99)
	assert.False(t, ok)
	assert.False(t, a.Contains(99))
}

func TestGetIsMutable(t *testing.T) {
	a := New[*item]()
	id := a.Insert(newItem("before"))

	got, _ := a.Get(id)
	got.name = "after"

	again, _ := a.Get(id)
	assert.Equal(t, "after", again.name)
}

func TestRemoveSwapsAndKeepsSurvivorsAddressable(t *testing.T) {
	a := New[*item]()
	ids := []uint32{
		a.Insert(newItem("a")),
		a.Insert(newItem("b")),
		a.Insert(newItem("c")),
		a.Insert(newItem("d")),
	}

	removed, ok := a.Remove(ids[1])
	require.True(t, ok)
	assert.Equal(t, "b", removed.name)
	assert.Equal(t, 3, a.Len())

	// "d" was swapped into the vacated position.
	assert.Equal(t, []int{0, -1, 2, 1}, a.Indices(ids))

	for _, tc := range []struct {
		id   uint32
		name string
	}{{ids[0], "a"}, {ids[2], "c"}, {ids[3], "d"}} {
		got, ok := a.Get(tc.id)
		require.True(t, ok, "id %d should survive", tc.id)
		assert.Equal(t, tc.name, got.name)
	}
	_, ok = a.Get(ids[1])
	assert.False(t, ok)
}

func TestRemoveLastElement(t *testing.T) {
	a := New[*item]()
	first := a.Insert(newItem("a"))
	last := a.Insert(newItem("b"))

	_, ok := a.Remove(last)
	require.True(t, ok)

	got, ok := a.Get(first)
	require.True(t, ok)
	assert.Equal(t, "a", got.name)
	assert.Equal(t, 1, a.Len())
}

func TestRemoveAbsentID(t *testing.T) {
	a := New[*item]()
	a.Insert(newItem("a"))

	_, ok := a.Remove(7)
	assert.False(t, ok)
	assert.Equal(t, 1, a.Len())

	// The next insert must not reuse an id that was never freed.
	assert.Equal(t, uint32(1), a.Insert(newItem("b")))
}

// A high id in a small arena and a freed low id must both be handled by
// membership, not by comparing against the length.
func TestRemoveUsesMembershipNotLength(t *testing.T) {
	a := New[*item]()
	for i := 0; i < 5; i++ {
		a.Insert(newItem("x"))
	}
	for _, id := range []uint32{0, 1, 2} {
		_, ok := a.Remove(id)
		require.True(t, ok)
	}
	require.Equal(t, 2, a.Len())

	// id 4 is present although 4 >= Len().
	got, ok := a.Remove(4)
	require.True(t, ok)
	assert.Equal(t, uint32(4), got.ID())

	// id 0 is absent although 0 < Len().
	_, ok = a.Remove(0)
	assert.False(t, ok)
}

func TestRemovedIDsAreReusedLIFO(t *testing.T) {
	a := New[*item]()
	for i := 0; i < 3; i++ {
		a.Insert(newItem("x"))
	}
	a.Remove(0)
	a.Remove(2)

	assert.Equal(t, uint32(2), a.Insert(newItem("y")))
	assert.Equal(t, uint32(0), a.Insert(newItem("z")))
	assert.Equal(t, uint32(3), a.Insert(newItem("w")))
}

func TestGetManyPreservesInputOrder(t *testing.T) {
	a := New[*item]()
	x := a.Insert(newItem("x"))
	y := a.Insert(newItem("y"))
	z := a.Insert(newItem("z"))

	got := a.GetMany([]uint32{z, 42, x, y})
	require.Len(t, got, 4)
	assert.Equal(t, "z", got[0].name)
	assert.Nil(t, got[1])
	assert.Equal(t, "x", got[2].name)
	assert.Equal(t, "y", got[3].name)
}

func TestAllAndIDsFollowStorageOrder(t *testing.T) {
	a := New[*item]()
	for _, n := range []string{"a", "b", "c"} {
		a.Insert(newItem(n))
	}
	a.Remove(0)

	var names []string
	for _, it := range a.All() {
		names = append(names, it.name)
	}
	assert.Equal(t, []string{"c", "b"}, names)
	assert.Equal(t, []uint32{2, 1}, a.IDs())
}

func TestCloneIsIndependent(t *testing.T) {
	a := New[*item]()
	id := a.Insert(newItem("orig"))
	a.Insert(newItem("other"))
	a.Remove(1)

	c := a.Clone(func(it *item) *item {
		cp := *it
		return &cp
	})

	got, _ := c.Get(id)
	got.name = "changed"
	orig, _ := a.Get(id)
	assert.Equal(t, "orig", orig.name)

	// The free stack is cloned too.
	assert.Equal(t, uint32(1), c.Insert(newItem("n")))
	assert.Equal(t, uint32(1), a.Insert(newItem("n")))
}
