package cpu

const (
	MEMORY_SCALE = 4 // Default capacity, as a multiple of the program length.
)

// Memory is the flat cell memory of the machine.
//
// Memory is fixed at its initial capacity unless Limit is raised above it,
// in which case accesses below Limit are permitted and the cells grow on
// write to cover them.
type Memory struct {
	Cells []int64 // Allocated cells.
	Limit int     // Maximum number of cells.
}

// NewMemory creates a memory of 'capacity' cells, with the program copied
// in starting at address 0. The capacity is never less than the program.
func NewMemory(program []int64, capacity int) (mem *Memory) {
	capacity = max(capacity, len(program))

	mem = &Memory{
		Cells: make([]int64, capacity),
		Limit: capacity,
	}
	copy(mem.Cells, program)

	return
}

// Size returns the number of cells currently allocated.
func (mem *Memory) Size() int {
	return len(mem.Cells)
}

// check verifies that 'addr' is addressable.
func (mem *Memory) check(addr int64) (err error) {
	size := max(mem.Limit, len(mem.Cells))
	if addr < 0 || addr >= int64(size) {
		err = ErrBounds{Address: addr, Size: size}
	}
	return
}

// Peek returns the value at 'addr'.
// Cells beyond the allocated memory but within the limit read as zero.
func (mem *Memory) Peek(addr int64) (value int64, err error) {
	err = mem.check(addr)
	if err != nil {
		return
	}

	if addr < int64(len(mem.Cells)) {
		value = mem.Cells[addr]
	}

	return
}

// Poke sets the cell at 'addr' to 'value', growing the allocation if needed.
func (mem *Memory) Poke(addr int64, value int64) (err error) {
	err = mem.check(addr)
	if err != nil {
		return
	}

	if addr >= int64(len(mem.Cells)) {
		mem.grow(int(addr) + 1)
	}

	mem.Cells[addr] = value

	return
}

// grow extends the cells to at least 'size', doubling up to the limit.
func (mem *Memory) grow(size int) {
	target := min(max(size, 2*len(mem.Cells)), mem.Limit)
	mem.Cells = append(mem.Cells, make([]int64, target-len(mem.Cells))...)
}
