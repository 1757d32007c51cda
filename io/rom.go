package io

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Rom is a program image. As a channel, it plays back its cells and
// refuses all writes.
type Rom struct {
	Data []int64

	readIndex int
}

var _ Channel = (*Rom)(nil)

// ParseRom reads a program image of comma separated integers.
// Whitespace around cells and empty cells are ignored.
func ParseRom(input io.Reader) (rom *Rom, err error) {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(nil, 1<<24)
	scanner.Split(splitCells)

	rom = &Rom{}
	for scanner.Scan() {
		token := scanner.Text()
		var value int64
		value, err = strconv.ParseInt(token, 10, 64)
		if err != nil {
			err = ErrRomSyntax{Index: len(rom.Data), Token: token}
			rom = nil
			return
		}
		rom.Data = append(rom.Data, value)
	}

	err = scanner.Err()
	if err != nil {
		rom = nil
		return
	}

	return
}

// WriteTo writes the image as a single line of comma separated integers.
func (rc *Rom) WriteTo(output io.Writer) (n int64, err error) {
	words := make([]string, len(rc.Data))
	for index, value := range rc.Data {
		words[index] = strconv.FormatInt(value, 10)
	}

	count, err := io.WriteString(output, strings.Join(words, ",")+"\n")
	n = int64(count)

	return
}

// Rewind restarts playback.
func (rc *Rom) Rewind() {
	rc.readIndex = 0
}

// Receive returns the next cell of the image.
func (rc *Rom) Receive() (value int64, err error) {
	if rc.readIndex >= len(rc.Data) {
		err = ErrChannelEmpty
		return
	}

	value = rc.Data[rc.readIndex]
	rc.readIndex++

	return
}

// Send is refused; a Rom is read-only.
func (rc *Rom) Send(value int64) error {
	return ErrChannelFull
}
