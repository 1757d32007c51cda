package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Ip: 0, Words: []string{"in", "9"},
				Codes: []Code{MakeCode(OP_INPUT), 9}},
			{LineNo: 2, Ip: 2, Words: []string{"add", "9", "#1", "9"},
				Codes: []Code{MakeCode(OP_ADD, MODE_POSITION, MODE_IMMEDIATE), 9, 1, 9}},
			{LineNo: 4, Ip: 6, Words: []string{"halt"},
				Codes: []Code{MakeCode(OP_HALT)}},
		},
	}

	table := [](struct {
		ip     int64
		lineno int
		index  int
	}){
		{0, 1, 0},
		{1, 1, 1},
		{2, 2, 0},
		{5, 2, 3},
		{6, 4, 0},
	}

	for _, entry := range table {
		dbg := prog.Debug(entry.ip)
		if !assert.NotNil(dbg.Opcode, "%d", entry.ip) {
			continue
		}
		assert.Equal(entry.lineno, dbg.LineNo, "%d", entry.ip)
		assert.Equal(entry.index, dbg.Index, "%d", entry.ip)
	}

	for _, ip := range []int64{-1, 7, 100} {
		dbg := prog.Debug(ip)
		assert.Nil(dbg.Opcode, "%d", ip)
	}
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Ip: 0, Codes: []Code{104, 7}},
			{LineNo: 2, Ip: 4, Codes: []Code{99}},
		},
	}

	assert.Equal([]int64{104, 7, 0, 0, 99}, prog.Binary())

	var ips []int64
	for ip := range prog.Codes() {
		ips = append(ips, ip)
	}
	assert.Equal([]int64{0, 1, 4}, ips)

	assert.Nil((&Program{}).Binary())
}

func TestProgram_FromBinary(t *testing.T) {
	assert := assert.New(t)

	cells := []int64{1101, 100, -1, 4, 0}
	prog := NewProgramFromBinary(cells)
	assert.Equal(cells, prog.Binary())

	dbg := prog.Debug(3)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(3, dbg.Index)

	prog = NewProgramFromBinary(nil)
	assert.Empty(prog.Opcodes)
}
