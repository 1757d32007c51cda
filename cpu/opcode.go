package cpu

import (
	"errors"
	"fmt"
	"strings"
)

// CodeOp is an instruction operation.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_ADD      = CodeOp(1)  // add
	OP_MUL      = CodeOp(2)  // mul
	OP_INPUT    = CodeOp(3)  // in
	OP_OUTPUT   = CodeOp(4)  // out
	OP_JUMP_T   = CodeOp(5)  // jt
	OP_JUMP_F   = CodeOp(6)  // jf
	OP_LESS     = CodeOp(7)  // lt
	OP_EQUAL    = CodeOp(8)  // eq
	OP_RELATIVE = CodeOp(9)  // arb
	OP_HALT     = CodeOp(99) // halt
)

// opInfo is the parameter layout of an operation.
// Each entry in 'params' is true for a write target.
type opInfo struct {
	params []bool
}

var _opInfo = map[CodeOp]opInfo{
	OP_ADD:      {[]bool{false, false, true}},
	OP_MUL:      {[]bool{false, false, true}},
	OP_INPUT:    {[]bool{true}},
	OP_OUTPUT:   {[]bool{false}},
	OP_JUMP_T:   {[]bool{false, false}},
	OP_JUMP_F:   {[]bool{false, false}},
	OP_LESS:     {[]bool{false, false, true}},
	OP_EQUAL:    {[]bool{false, false, true}},
	OP_RELATIVE: {[]bool{false}},
	OP_HALT:     {nil},
}

// Valid returns true if the operation is a member of the instruction set.
func (op CodeOp) Valid() (ok bool) {
	_, ok = _opInfo[op]
	return
}

// Params returns the number of parameters the operation takes.
func (op CodeOp) Params() int {
	return len(_opInfo[op].params)
}

// Width returns the number of cells used by the operation and its parameters.
func (op CodeOp) Width() int {
	return 1 + op.Params()
}

// Writes returns true if parameter 'n' of the operation is a write target.
func (op CodeOp) Writes(n int) bool {
	params := _opInfo[op].params
	return n >= 0 && n < len(params) && params[n]
}

// CodeMode is a parameter addressing mode.
type CodeMode int

//go:generate go tool stringer -linecomment -type=CodeMode
const (
	MODE_POSITION  = CodeMode(0) // position
	MODE_IMMEDIATE = CodeMode(1) // immediate
	MODE_RELATIVE  = CodeMode(2) // relative
)

// Prefix returns the assembly operand prefix for the mode.
func (mode CodeMode) Prefix() string {
	switch mode {
	case MODE_IMMEDIATE:
		return "#"
	case MODE_RELATIVE:
		return "@"
	}
	return ""
}

// Code is a single raw memory cell, interpreted as an instruction.
type Code int64

// Instruction is the decoded form of an instruction cell.
type Instruction struct {
	Op   CodeOp      // Operation.
	Mode [3]CodeMode // Addressing mode of each parameter.
}

// MakeCode encodes an operation and its parameter modes into a cell.
func MakeCode(op CodeOp, modes ...CodeMode) Code {
	code := int64(op)
	scale := int64(100)
	for _, mode := range modes {
		code += int64(mode) * scale
		scale *= 10
	}
	return Code(code)
}

// Op returns the operation digits of the cell.
func (code Code) Op() CodeOp {
	return CodeOp(code % 100)
}

// Mode returns the addressing mode digit for parameter 'n' (0..2).
func (code Code) Mode(n int) CodeMode {
	value := int64(code) / 100
	for range n {
		value /= 10
	}
	return CodeMode(value % 10)
}

// Decode decodes the cell into an operation and its parameter modes.
func (code Code) Decode() (inst Instruction, err error) {
	inst.Op = code.Op()
	if !inst.Op.Valid() {
		err = errors.Join(ErrOpcode(code), ErrOpcodeDecode)
		return
	}

	for n := range inst.Mode {
		inst.Mode[n] = code.Mode(n)
	}

	return
}

// String returns the mnemonic and parameter modes of the cell.
func (code Code) String() string {
	inst, err := code.Decode()
	if err != nil {
		return fmt.Sprintf("?%d", int64(code))
	}

	return inst.String()
}

// String returns the mnemonic and the modes of the parameters in use.
func (inst Instruction) String() string {
	words := []string{inst.Op.String()}
	for n := range inst.Op.Params() {
		words = append(words, inst.Mode[n].Prefix()+"_")
	}
	return strings.Join(words, " ")
}

// Format renders the instruction with its raw parameter values as assembly.
func (inst Instruction) Format(params []int64) string {
	words := []string{inst.Op.String()}
	for n, param := range params {
		words = append(words, fmt.Sprintf("%v%d", inst.Mode[n].Prefix(), param))
	}
	return strings.Join(words, " ")
}
