// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"iter"
	"log"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/internal"
	"github.com/ezrec/intcode/io"
)

// Emulator state. CPU + program listing + IO channel.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
	Channel  io.Channel   // Device servicing input and output requests.

	Scale     int // Memory capacity as a multiple of program length; 0 uses cpu.MEMORY_SCALE.
	Capacity  int // If non-zero, the memory capacity, overriding Scale.
	Limit     int // If larger than the capacity, memory may grow up to Limit cells.
	TickLimit int // If non-zero, maximum instruction steps per Reset.

	pending bool // Cpu is suspended on a request the channel has not serviced.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	seqs := []iter.Seq2[string, string]{
		emu.Cpu.Defines(),
	}

	if device, ok := emu.Channel.(interface {
		Defines() iter.Seq2[string, string]
	}); ok {
		seqs = append(seqs, device.Defines())
	}

	return internal.IterSeq2Concat(seqs...)
}

// capacity returns the memory capacity for a binary of 'size' cells.
func (emu *Emulator) capacity(size int) int {
	if emu.Capacity > 0 {
		return emu.Capacity
	}

	scale := emu.Scale
	if scale <= 0 {
		scale = cpu.MEMORY_SCALE
	}

	return scale * size
}

// Reset loads the program into a fresh machine, and rewinds the channel.
func (emu *Emulator) Reset() (err error) {
	binary := emu.Program.Binary()

	emu.Cpu = cpu.NewCpu(binary, emu.capacity(len(binary)))
	emu.Cpu.Memory.Limit = max(emu.Limit, emu.Cpu.Memory.Size())
	emu.Cpu.TickLimit = emu.TickLimit
	emu.Cpu.Verbose = emu.Verbose
	emu.pending = false

	if emu.Channel != nil {
		emu.Channel.Rewind()
	}

	if emu.Verbose {
		log.Printf("emulator: reset: %d cells, memory %d/%d", len(binary), emu.Cpu.Memory.Size(), emu.Cpu.Memory.Limit)
	}

	return
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	if emu.Cpu == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Ip)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick runs the machine to its next suspension, and services it
// against the channel. Returns done when the machine has halted.
//
// If the channel fails, the suspension stays pending, and the next Tick
// retries the channel before resuming the machine.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Cpu == nil {
		err = emu.Reset()
		if err != nil {
			return
		}
	}

	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	defer func() {
		if err != nil {
			err = &ErrRuntime{Ip: emu.Cpu.Ip, LineNo: emu.LineNo(), Err: err}
		}
	}()

	if !emu.pending {
		err = emu.Cpu.Run()
		if err != nil {
			return
		}
	}

	switch emu.Cpu.Status {
	case cpu.STATUS_AWAITING_INPUT:
		emu.pending = true
		if emu.Channel == nil {
			err = ErrChannelMissing
			return
		}
		var value int64
		value, err = emu.Channel.Receive()
		if err != nil {
			return
		}
		if emu.Verbose {
			log.Printf("emulator: input %d", value)
		}
		emu.Cpu.Input = value
		emu.pending = false
	case cpu.STATUS_OUTPUT_READY:
		emu.pending = true
		if emu.Channel == nil {
			err = ErrChannelMissing
			return
		}
		if emu.Verbose {
			log.Printf("emulator: output %d", emu.Cpu.Output)
		}
		err = emu.Channel.Send(emu.Cpu.Output)
		if err != nil {
			return
		}
		emu.pending = false
	case cpu.STATUS_HALTED:
		if emu.Verbose {
			log.Printf("emulator: halted after %d ticks", emu.Cpu.Ticks)
		}
		done = true
	}

	return
}

// Run ticks the emulator until the machine halts.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Listing returns an iterator over the disassembly of the loaded program,
// yielding the address and text of each instruction.
func (emu *Emulator) Listing() iter.Seq2[int64, string] {
	return func(yield func(ip int64, text string) bool) {
		size := int64(len(emu.Program.Binary()))
		machine := emu.Cpu
		if machine == nil {
			machine = cpu.NewCpu(emu.Program.Binary(), 0)
		}

		for ip := int64(0); ip < size; {
			text, width, err := machine.Disassemble(ip)
			if err != nil {
				return
			}
			if !yield(ip, text) {
				return
			}
			ip += int64(width)
		}
	}
}
