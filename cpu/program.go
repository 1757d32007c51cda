package cpu

import (
	"iter"
)

// Link is a reference from a code cell to a label address.
type Link struct {
	Index int    // Index into the Codes of the Opcode.
	Label string // Label whose address is added to the cell.
}

// Opcode represents a line of assembled code with its source location and generated cells.
type Opcode struct {
	LineNo int
	Ip     int
	Words  []string
	Codes  []Code
	Links  []Link
}

type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// NewProgramFromBinary wraps a raw memory image as a single line program.
func NewProgramFromBinary(cells []int64) (prog *Program) {
	codes := make([]Code, len(cells))
	for n, cell := range cells {
		codes[n] = Code(cell)
	}

	prog = &Program{}
	if len(codes) > 0 {
		prog.Opcodes = []Opcode{{LineNo: 1, Ip: 0, Codes: codes}}
	}

	return
}

func (prog *Program) Debug(ip int64) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if ip >= int64(op.Ip) && ip < int64(op.Ip+len(op.Codes)) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(ip - int64(op.Ip)),
			}
			break
		}
	}

	return
}

// Binary returns the memory image of the program.
func (prog *Program) Binary() (bins []int64) {
	for ip, code := range prog.Codes() {
		for int64(len(bins)) < ip {
			bins = append(bins, 0)
		}
		bins = append(bins, int64(code))
	}

	return
}

func (prog *Program) Codes() iter.Seq2[int64, Code] {
	return func(yield func(ip int64, code Code) bool) {
		for _, op := range prog.Opcodes {
			ip := int64(op.Ip)
			for n, code := range op.Codes {
				if !yield(ip+int64(n), code) {
					return
				}
			}
		}
	}
}
