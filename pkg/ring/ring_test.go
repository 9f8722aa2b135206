package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRing_PushBelowCapacity(t *testing.T) {
	r := New[int](3)
	assert.False(t, r.Push(1))
	assert.False(t, r.Push(2))

	assert.Equal(t, []int{1, 2}, r.Items())
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 3, r.Cap())
}

func TestRing_EvictsOldestFirst(t *testing.T) {
	r := New[int](3)
	for i := 1; i <= 3; i++ {
		r.Push(i)
	}

	for i := 4; i <= 10; i++ {
		assert.True(t, r.Push(i))
		require.Equal(t, 3, r.Len())
		assert.Equal(t, []int{i - 2, i - 1, i}, r.Items())
	}
}

func TestTail(t *testing.T) {
	r := New[string](5)
	for _, s := range []string{"a", "b", "c", "d", "e", "f"} {
		r.Push(s)
	}
	items := r.Items()

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{name: "zero", n: 0, want: []string{}},
		{name: "negative", n: -1, want: []string{}},
		{name: "two", n: 2, want: []string{"e", "f"}},
		{name: "all", n: 5, want: []string{"b", "c", "d", "e", "f"}},
		{name: "more_than_len", n: 9, want: []string{"b", "c", "d", "e", "f"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tail(items, tt.n))
		})
	}
}

func TestTail_Empty(t *testing.T) {
	assert.Empty(t, Tail([]int(nil), 3))
}

func TestRing_ItemsIsCopy(t *testing.T) {
	r := New[int](2)
	r.Push(1)
	items := r.Items()
	items[0] = 99

	assert.Equal(t, []int{1}, r.Items())
}

func TestRing_Reset(t *testing.T) {
	r := New[int](2)
	r.Push(1)
	r.Push(2)
	r.Push(3)
	r.Reset()

	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Items())
	r.Push(4)
	assert.Equal(t, []int{4}, r.Items())
}

func TestNew_PanicsOnZeroCapacity(t *testing.T) {
	assert.Panics(t, func() { New[int](0) })
}
