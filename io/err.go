package io

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull  = errors.New(f("channel full"))
	ErrChannelEmpty = errors.New(f("channel empty"))

	// Tape errors
	ErrTapeRewind = errors.New(f("tape: rewind failed"))

	// Hull errors
	ErrHullColor = errors.New(f("hull: invalid color"))
	ErrHullTurn  = errors.New(f("hull: invalid turn"))
)

// ErrRomSyntax is returned when a program image has a malformed cell.
type ErrRomSyntax struct {
	Index int    // Cell index.
	Token string // Offending text.
}

func (err ErrRomSyntax) Error() string {
	return f("rom: cell %d: invalid integer %q", err.Index, err.Token)
}

// ErrTapeSyntax is returned when a tape holds a malformed integer.
type ErrTapeSyntax string

func (err ErrTapeSyntax) Error() string {
	return f("tape: invalid integer %q", string(err))
}
