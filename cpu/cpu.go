package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
)

// Status is the suspension state of the machine.
type Status int

//go:generate go tool stringer -linecomment -type=Status
const (
	STATUS_NONE           = Status(0) // none
	STATUS_AWAITING_INPUT = Status(1) // input
	STATUS_OUTPUT_READY   = Status(2) // output
	STATUS_HALTED         = Status(3) // halted
)

var _cpu_defines = map[string]string{
	"OP_ADD":         fmt.Sprintf("%d", OP_ADD),
	"OP_MUL":         fmt.Sprintf("%d", OP_MUL),
	"OP_INPUT":       fmt.Sprintf("%d", OP_INPUT),
	"OP_OUTPUT":      fmt.Sprintf("%d", OP_OUTPUT),
	"OP_JUMP_T":      fmt.Sprintf("%d", OP_JUMP_T),
	"OP_JUMP_F":      fmt.Sprintf("%d", OP_JUMP_F),
	"OP_LESS":        fmt.Sprintf("%d", OP_LESS),
	"OP_EQUAL":       fmt.Sprintf("%d", OP_EQUAL),
	"OP_RELATIVE":    fmt.Sprintf("%d", OP_RELATIVE),
	"OP_HALT":        fmt.Sprintf("%d", OP_HALT),
	"MODE_POSITION":  fmt.Sprintf("%d", MODE_POSITION),
	"MODE_IMMEDIATE": fmt.Sprintf("%d", MODE_IMMEDIATE),
	"MODE_RELATIVE":  fmt.Sprintf("%d", MODE_RELATIVE),
}

// Cpu is the intcode machine state.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory       *Memory // Cell memory.
	Ip           int64   // Current instruction pointer.
	RelativeBase int64   // Offset for relative mode parameters.
	Input        int64   // Pending input, set by the caller on STATUS_AWAITING_INPUT.
	Output       int64   // Last output, valid on STATUS_OUTPUT_READY.
	Status       Status  // Suspension status.

	Ticks     int // Instruction steps since reset.
	TickLimit int // If non-zero, the maximum number of steps.

	program  []int64
	capacity int
}

// NewCpu creates a new machine with 'program' loaded into a memory of
// 'capacity' cells. A zero capacity selects MEMORY_SCALE times the program
// length.
func NewCpu(program []int64, capacity int) (cpu *Cpu) {
	if capacity == 0 {
		capacity = MEMORY_SCALE * len(program)
	}

	cpu = &Cpu{
		program:  slices.Clone(program),
		capacity: capacity,
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the machine to its freshly loaded state.
// - Reloads the program into a cleared memory.
// - Clears the registers and status.
// - Zeros the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	limit := cpu.capacity
	if cpu.Memory != nil {
		limit = max(limit, cpu.Memory.Limit)
	}

	cpu.Memory = NewMemory(cpu.program, cpu.capacity)
	cpu.Memory.Limit = max(limit, cpu.Memory.Size())
	cpu.Ip = 0
	cpu.RelativeBase = 0
	cpu.Input = 0
	cpu.Output = 0
	cpu.Status = STATUS_NONE
	cpu.Ticks = 0
}

// String returns the current machine state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"ip", "rb", "status", "input", "output", "ticks", "memory"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "ip":
			strval = fmt.Sprintf("%d", cpu.Ip)
		case "rb":
			strval = fmt.Sprintf("%d", cpu.RelativeBase)
		case "status":
			strval = cpu.Status.String()
		case "input":
			strval = fmt.Sprintf("%d", cpu.Input)
		case "output":
			strval = fmt.Sprintf("%d", cpu.Output)
		case "ticks":
			strval = fmt.Sprintf("%d", cpu.Ticks)
		case "memory":
			strval = fmt.Sprintf("%d/%d", cpu.Memory.Size(), cpu.Memory.Limit)
		}
		text += fmt.Sprintf("% 6s: %v\n", reg, strval)
	}

	return
}

// Run executes instructions until the machine suspends.
//
// On return without error, Status is one of STATUS_AWAITING_INPUT,
// STATUS_OUTPUT_READY or STATUS_HALTED. Calling Run on a halted machine
// does nothing.
func (cpu *Cpu) Run() (err error) {
	for cpu.Status != STATUS_HALTED {
		err = cpu.Tick()
		if err != nil {
			return
		}
		if cpu.Status != STATUS_NONE {
			break
		}
	}

	return
}

// Tick executes a single instruction step.
//
// Input and output instructions take two steps. The first step announces
// the request in Status, the second completes it and advances the Ip.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Status == STATUS_HALTED {
		return
	}

	if cpu.TickLimit > 0 && cpu.Ticks >= cpu.TickLimit {
		err = ErrTickLimit
		return
	}

	word, err := cpu.Memory.Peek(cpu.Ip)
	if err != nil {
		return
	}

	err = cpu.Execute(Code(word))
	if err != nil {
		return
	}

	cpu.Ticks++

	return
}

// fetchParams returns the raw parameter cells following the Ip.
func (cpu *Cpu) fetchParams(op CodeOp) (params []int64, err error) {
	params = make([]int64, op.Params())
	for n := range params {
		params[n], err = cpu.Memory.Peek(cpu.Ip + 1 + int64(n))
		if err != nil {
			err = errors.Join(errOpcodeArg[n], err)
			return
		}
	}

	return
}

// Execute executes a single instruction cell at the current Ip.
// On error, the machine state is unchanged.
func (cpu *Cpu) Execute(code Code) (err error) {
	inst, err := code.Decode()
	if err != nil {
		return
	}

	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()

	params, err := cpu.fetchParams(inst.Op)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: %04d: %v", cpu.Ip, inst.Format(params))
	}

	next_ip := cpu.Ip + int64(inst.Op.Width())

	// Operand resolution
	arg := func(n int) (value int64) {
		if err != nil {
			return
		}
		value, err = cpu.resolve(params[n], inst.Mode[n], inst.Op.Writes(n))
		if err != nil {
			err = errors.Join(errOpcodeArg[n], err)
		}
		return
	}

	switch inst.Op {
	case OP_ADD, OP_MUL, OP_LESS, OP_EQUAL:
		a, b, dst := arg(0), arg(1), arg(2)
		if err != nil {
			return
		}
		var value int64
		switch inst.Op {
		case OP_ADD:
			value = a + b
		case OP_MUL:
			value = a * b
		case OP_LESS:
			if a < b {
				value = 1
			}
		case OP_EQUAL:
			if a == b {
				value = 1
			}
		}
		err = cpu.Memory.Poke(dst, value)
		if err != nil {
			err = errors.Join(ErrOpcodeArg3, err)
			return
		}
	case OP_INPUT:
		if cpu.Status != STATUS_AWAITING_INPUT {
			// Announce, and retry this instruction on resume.
			cpu.Status = STATUS_AWAITING_INPUT
			return
		}
		dst := arg(0)
		if err != nil {
			return
		}
		err = cpu.Memory.Poke(dst, cpu.Input)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
		cpu.Status = STATUS_NONE
	case OP_OUTPUT:
		if cpu.Status != STATUS_OUTPUT_READY {
			value := arg(0)
			if err != nil {
				return
			}
			// Announce, and retire this instruction on resume.
			cpu.Output = value
			cpu.Status = STATUS_OUTPUT_READY
			return
		}
		cpu.Status = STATUS_NONE
	case OP_JUMP_T, OP_JUMP_F:
		value, target := arg(0), arg(1)
		if err != nil {
			return
		}
		if (value != 0) == (inst.Op == OP_JUMP_T) {
			next_ip = target
		}
	case OP_RELATIVE:
		value := arg(0)
		if err != nil {
			return
		}
		cpu.RelativeBase += value
	case OP_HALT:
		cpu.Status = STATUS_HALTED
		return
	}

	cpu.Ip = next_ip

	return
}

// resolve returns the value of a parameter, or its address if it is a write
// target.
func (cpu *Cpu) resolve(param int64, mode CodeMode, write bool) (value int64, err error) {
	switch mode {
	case MODE_POSITION:
		if write {
			value = param
		} else {
			value, err = cpu.Memory.Peek(param)
		}
	case MODE_IMMEDIATE:
		if write {
			err = ErrOpcodeWrite
			return
		}
		value = param
	case MODE_RELATIVE:
		addr := cpu.RelativeBase + param
		if write {
			value = addr
		} else {
			value, err = cpu.Memory.Peek(addr)
		}
	default:
		err = ErrOpcodeMode
	}

	return
}

// Disassemble returns the assembly text of the instruction at 'ip', and the
// number of cells it occupies. Cells that do not decode are shown as data.
func (cpu *Cpu) Disassemble(ip int64) (text string, width int, err error) {
	word, err := cpu.Memory.Peek(ip)
	if err != nil {
		return
	}

	data := fmt.Sprintf(".data %d", word)

	inst, err := Code(word).Decode()
	if err != nil {
		text, width, err = data, 1, nil
		return
	}

	params := make([]int64, inst.Op.Params())
	for n := range params {
		if inst.Mode[n] > MODE_RELATIVE || inst.Mode[n] < MODE_POSITION {
			text, width = data, 1
			return
		}
		params[n], err = cpu.Memory.Peek(ip + 1 + int64(n))
		if err != nil {
			return
		}
	}

	text = inst.Format(params)
	width = inst.Op.Width()

	return
}
