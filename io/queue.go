package io

// Queue is an in-memory channel. Values are received from Input in order,
// and sent values are appended to Output.
type Queue struct {
	Capacity int // If non-zero, maximum length of Output.

	Input  []int64
	Output []int64

	readIndex int
}

var _ Channel = (*Queue)(nil)

// Rewind restarts the input, and discards the output.
func (qc *Queue) Rewind() {
	qc.readIndex = 0
	qc.Output = nil
}

// Receive returns the next input value.
// Returns ErrChannelEmpty when the input is exhausted.
func (qc *Queue) Receive() (value int64, err error) {
	if qc.readIndex >= len(qc.Input) {
		err = ErrChannelEmpty
		return
	}

	value = qc.Input[qc.readIndex]
	qc.readIndex++

	return
}

// Send appends a value to the output.
// Returns ErrChannelFull if the output has reached capacity.
func (qc *Queue) Send(value int64) (err error) {
	if qc.Capacity > 0 && len(qc.Output) >= qc.Capacity {
		err = ErrChannelFull
		return
	}

	qc.Output = append(qc.Output, value)

	return
}

// Pending returns the number of unread input values.
func (qc *Queue) Pending() int {
	return len(qc.Input) - qc.readIndex
}
