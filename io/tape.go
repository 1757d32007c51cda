package io

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Tape provides sequential text I/O.
// Input integers are separated by commas or whitespace. Each output value is
// written as a decimal line.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	scanner *bufio.Scanner
	fault   error // Failed rewind, reported by the next Receive.
}

var _ Channel = (*Tape)(nil)

// Rewind restarts the input, if the input can seek.
// A failed seek is returned by the next Receive.
func (tc *Tape) Rewind() {
	tc.fault = nil
	if tc.scanner == nil {
		// Nothing read yet.
		return
	}

	tc.scanner = nil
	if seeker, ok := tc.Input.(io.Seeker); ok {
		_, err := seeker.Seek(0, io.SeekStart)
		if err != nil {
			tc.fault = errors.Join(ErrTapeRewind, err)
		}
	}
}

// Receive returns the next integer from the input stream.
// Returns ErrChannelEmpty at the end of the input.
func (tc *Tape) Receive() (value int64, err error) {
	if tc.Input == nil {
		err = ErrChannelEmpty
		return
	}

	if tc.fault != nil {
		err = tc.fault
		return
	}

	if tc.scanner == nil {
		tc.scanner = bufio.NewScanner(tc.Input)
		tc.scanner.Split(splitCells)
	}

	if !tc.scanner.Scan() {
		err = tc.scanner.Err()
		if err == nil {
			err = ErrChannelEmpty
		}
		return
	}

	token := tc.scanner.Text()
	value, err = strconv.ParseInt(token, 10, 64)
	if err != nil {
		err = ErrTapeSyntax(token)
		return
	}

	return
}

// Send writes a value to the output stream as a decimal line.
func (tc *Tape) Send(value int64) (err error) {
	if tc.Output == nil {
		err = ErrChannelFull
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)

	return
}
