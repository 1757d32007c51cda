package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_New(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory([]int64{1, 2, 3}, 8)
	assert.Equal(8, mem.Size())
	assert.Equal(8, mem.Limit)
	assert.Equal([]int64{1, 2, 3, 0, 0, 0, 0, 0}, mem.Cells)

	// Capacity never truncates the program.
	mem = NewMemory([]int64{1, 2, 3}, 1)
	assert.Equal([]int64{1, 2, 3}, mem.Cells)
}

func TestMemory_Bounds(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory([]int64{5, 6}, 4)

	value, err := mem.Peek(1)
	assert.NoError(err)
	assert.Equal(int64(6), value)

	for _, addr := range []int64{-1, 4, 1 << 40} {
		_, err = mem.Peek(addr)
		assert.ErrorIs(err, ErrMemoryBounds, "%d", addr)
		assert.Equal(ErrBounds{Address: addr, Size: 4}, err)

		err = mem.Poke(addr, 1)
		assert.ErrorIs(err, ErrMemoryBounds, "%d", addr)
	}

	assert.Equal([]int64{5, 6, 0, 0}, mem.Cells)
}

func TestMemory_Grow(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory([]int64{5, 6}, 4)
	mem.Limit = 100

	value, err := mem.Peek(50)
	assert.NoError(err)
	assert.Equal(int64(0), value)
	assert.Equal(4, mem.Size())

	err = mem.Poke(5, 7)
	assert.NoError(err)
	assert.Equal(8, mem.Size())

	err = mem.Poke(60, 9)
	assert.NoError(err)
	assert.Equal(61, mem.Size())

	err = mem.Poke(61, 10)
	assert.NoError(err)
	assert.Equal(100, mem.Size())

	value, err = mem.Peek(60)
	assert.NoError(err)
	assert.Equal(int64(9), value)

	err = mem.Poke(100, 1)
	assert.ErrorIs(err, ErrMemoryBounds)

	// The reported size is the ceiling, not the allocation.
	mem = NewMemory([]int64{5, 6}, 4)
	mem.Limit = 100
	_, err = mem.Peek(5000)
	assert.Equal(ErrBounds{Address: 5000, Size: 100}, err)
}
