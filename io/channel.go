// Package io provides the devices an intcode machine talks to.
// It includes an in-memory queue (Queue), a text stream (Tape), a program
// image (Rom), and the hull painting robot (Hull).
package io

import (
	"bufio"
	"unicode"
)

// Channel defines the interface for all devices attached to a machine.
// The machine receives one value per input request, and sends one value
// per output.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive returns the next value for the machine.
	Receive() (value int64, err error)
	// Send accepts a value produced by the machine.
	Send(value int64) error
}

// isSeparator reports whether 'r' separates integers in a text stream.
func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// splitCells is a bufio.SplitFunc that yields integer tokens separated by
// commas or whitespace. Empty tokens are skipped.
var splitCells bufio.SplitFunc = func(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && isSeparator(rune(data[start])) {
		start++
	}

	for n := start; n < len(data); n++ {
		if isSeparator(rune(data[n])) {
			return n + 1, data[start:n], nil
		}
	}

	if atEOF && start < len(data) {
		return len(data), data[start:], nil
	}

	return start, nil, nil
}
