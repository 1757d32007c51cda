package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_Decode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code Code
		op   CodeOp
		mode [3]CodeMode
	}){
		{1, OP_ADD, [3]CodeMode{0, 0, 0}},
		{1002, OP_MUL, [3]CodeMode{0, 1, 0}},
		{1101, OP_ADD, [3]CodeMode{1, 1, 0}},
		{21101, OP_ADD, [3]CodeMode{1, 1, 2}},
		{203, OP_INPUT, [3]CodeMode{2, 0, 0}},
		{104, OP_OUTPUT, [3]CodeMode{1, 0, 0}},
		{1205, OP_JUMP_T, [3]CodeMode{2, 1, 0}},
		{2106, OP_JUMP_F, [3]CodeMode{1, 2, 0}},
		{22207, OP_LESS, [3]CodeMode{2, 2, 2}},
		{8, OP_EQUAL, [3]CodeMode{0, 0, 0}},
		{109, OP_RELATIVE, [3]CodeMode{1, 0, 0}},
		{99, OP_HALT, [3]CodeMode{0, 0, 0}},
		{30001, OP_ADD, [3]CodeMode{0, 0, 3}},
	}

	for _, entry := range table {
		inst, err := entry.code.Decode()
		assert.NoError(err, "%d", entry.code)
		assert.Equal(entry.op, inst.Op, "%d", entry.code)
		assert.Equal(entry.mode, inst.Mode, "%d", entry.code)
	}
}

func TestCode_DecodeInvalid(t *testing.T) {
	assert := assert.New(t)

	for _, code := range []Code{0, 10, 11, 98, 100, 1100, -1, -101} {
		_, err := code.Decode()
		assert.True(errors.Is(err, ErrOpcodeDecode), "%d", code)
		assert.True(errors.Is(err, ErrOpcode(code)), "%d", code)
	}
}

func TestCode_MakeCode(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Code(1), MakeCode(OP_ADD))
	assert.Equal(Code(1101), MakeCode(OP_ADD, MODE_IMMEDIATE, MODE_IMMEDIATE))
	assert.Equal(Code(21101), MakeCode(OP_ADD, MODE_IMMEDIATE, MODE_IMMEDIATE, MODE_RELATIVE))
	assert.Equal(Code(204), MakeCode(OP_OUTPUT, MODE_RELATIVE))
	assert.Equal(Code(99), MakeCode(OP_HALT))

	for op := range _opInfo {
		for mode := MODE_POSITION; mode <= MODE_RELATIVE; mode++ {
			code := MakeCode(op, mode, mode, mode)
			inst, err := code.Decode()
			assert.NoError(err)
			assert.Equal(op, inst.Op)
			assert.Equal([3]CodeMode{mode, mode, mode}, inst.Mode)
		}
	}
}

func TestCodeOp_Width(t *testing.T) {
	assert := assert.New(t)

	width := map[CodeOp]int{
		OP_ADD:      4,
		OP_MUL:      4,
		OP_INPUT:    2,
		OP_OUTPUT:   2,
		OP_JUMP_T:   3,
		OP_JUMP_F:   3,
		OP_LESS:     4,
		OP_EQUAL:    4,
		OP_RELATIVE: 2,
		OP_HALT:     1,
	}

	for op, w := range width {
		assert.True(op.Valid(), op.String())
		assert.Equal(w, op.Width(), op.String())
	}

	assert.False(CodeOp(0).Valid())
	assert.False(CodeOp(10).Valid())
	assert.Equal("CodeOp(10)", CodeOp(10).String())
}

func TestCodeOp_Writes(t *testing.T) {
	assert := assert.New(t)

	assert.True(OP_ADD.Writes(2))
	assert.False(OP_ADD.Writes(0))
	assert.True(OP_INPUT.Writes(0))
	assert.False(OP_OUTPUT.Writes(0))
	assert.False(OP_JUMP_T.Writes(1))
	assert.True(OP_EQUAL.Writes(2))
	assert.False(OP_EQUAL.Writes(3))
	assert.False(OP_HALT.Writes(0))
}

func TestCode_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("add #_ #_ @_", Code(21101).String())
	assert.Equal("halt", Code(99).String())
	assert.Equal("?42", Code(42).String())
	assert.Equal("position", MODE_POSITION.String())
	assert.Equal("relative", MODE_RELATIVE.String())
	assert.Equal("CodeMode(3)", CodeMode(3).String())
	assert.Equal("halted", STATUS_HALTED.String())
	assert.Equal("input", STATUS_AWAITING_INPUT.String())
	assert.Equal("Status(9)", Status(9).String())
	assert.Equal("arb", OP_RELATIVE.String())
	assert.Equal("CodeOp(-1)", CodeOp(-1).String())
	assert.Equal("arb @-3", Instruction{Op: OP_RELATIVE, Mode: [3]CodeMode{MODE_RELATIVE}}.Format([]int64{-3}))
}
