package io

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestHull_Walk(t *testing.T) {
	assert := assert.New(t)

	hull := &Hull{}
	hull.Rewind()

	value, err := hull.Receive()
	assert.NoError(err)
	assert.Equal(int64(COLOR_BLACK), value)

	sends := []int64{1, 0, 0, 0, 1, 0, 1, 0}
	for _, send := range sends {
		assert.NoError(hull.Send(send))
	}

	// Back at the origin, which was painted white.
	assert.Equal(Point{0, 0}, hull.Position)
	assert.Equal(FACING_UP, hull.Facing)
	value, err = hull.Receive()
	assert.NoError(err)
	assert.Equal(int64(COLOR_WHITE), value)

	sends = []int64{0, 1, 1, 0, 1, 0}
	for _, send := range sends {
		assert.NoError(hull.Send(send))
	}

	assert.Equal(6, hull.Painted())
	assert.Equal(4, hull.White())
	assert.Equal(Point{0, -1}, hull.Position)
	assert.Equal(FACING_LEFT, hull.Facing)
	assert.Equal("..#\n..#\n##.\n", hull.Render())

	hull.Rewind()
	assert.Equal(0, hull.Painted())
	assert.Equal("", hull.Render())
}

func TestHull_Start(t *testing.T) {
	assert := assert.New(t)

	hull := &Hull{Start: COLOR_WHITE}

	value, err := hull.Receive()
	assert.NoError(err)
	assert.Equal(int64(COLOR_WHITE), value)
	assert.Equal(0, hull.Painted())
	assert.Equal(1, hull.White())
	assert.Equal("#\n", hull.Render())

	// Paint origin black, turn right and look at a fresh panel.
	assert.NoError(hull.Send(0))
	assert.NoError(hull.Send(1))
	value, err = hull.Receive()
	assert.NoError(err)
	assert.Equal(int64(COLOR_BLACK), value)
	assert.Equal(Point{1, 0}, hull.Position)
	assert.Equal(0, hull.White())
}

func TestHull_Errors(t *testing.T) {
	assert := assert.New(t)

	hull := &Hull{}
	assert.ErrorIs(hull.Send(2), ErrHullColor)
	assert.Equal(0, hull.Painted())

	assert.NoError(hull.Send(1))
	assert.ErrorIs(hull.Send(-1), ErrHullTurn)
	assert.Equal(Point{0, 0}, hull.Position)

	// The turn is still pending.
	assert.NoError(hull.Send(TURN_RIGHT))
	assert.Equal(Point{1, 0}, hull.Position)
}

func TestHull_Report(t *testing.T) {
	assert := assert.New(t)

	hull := &Hull{}
	for _, send := range []int64{1, 1, 1, 1, 0} {
		assert.NoError(hull.Send(send))
	}

	var buff bytes.Buffer
	err := hull.WriteReport(&buff)
	assert.NoError(err)
	assert.Contains(buff.String(), "painted: 3\n")
	assert.Contains(buff.String(), "facing: down\n")

	var report HullReport
	err = yaml.Unmarshal(buff.Bytes(), &report)
	assert.NoError(err)
	assert.Equal(hull.Report(), report)
	assert.Equal("##\n", report.Render)
	assert.Equal(Point{1, 1}, report.Position)
}

func TestHull_Defines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]string{}
	for key, value := range (&Hull{}).Defines() {
		defines[key] = value
	}

	assert.Equal("0", defines["COLOR_BLACK"])
	assert.Equal("1", defines["COLOR_WHITE"])
	assert.Equal("0", defines["TURN_LEFT"])
	assert.Equal("1", defines["TURN_RIGHT"])

	assert.Equal("white", COLOR_WHITE.String())
	assert.Equal("Color(5)", Color(5).String())
	assert.Equal("left", FACING_LEFT.String())
	assert.Equal("Direction(4)", Direction(4).String())
}
