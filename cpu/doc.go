// Package cpu implements the intcode machine and its assembler.
//
// The machine has an instruction pointer (Ip), a relative base register, and
// a flat memory of signed 64-bit cells. Each instruction cell encodes an
// opcode in its two low decimal digits and one addressing mode per parameter
// in the digits above them.
//
// The machine never performs I/O itself. Run executes until the program needs
// an input value, has produced an output value, or halts, and reports which
// through the Status field. The caller services the request and calls Run
// again to resume.
//
// The assembler provides a small assembly language for intcode programs,
// supporting macros, labels, equates, and compile-time expression evaluation.
package cpu
