package io

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color of a hull panel.
type Color int64

//go:generate go tool stringer -linecomment -type=Color
const (
	COLOR_BLACK = Color(0) // black
	COLOR_WHITE = Color(1) // white
)

// Turn command for the robot.
const (
	TURN_LEFT  = int64(0)
	TURN_RIGHT = int64(1)
)

// Direction the robot faces.
type Direction int

//go:generate go tool stringer -linecomment -type=Direction
const (
	FACING_UP    = Direction(0) // up
	FACING_RIGHT = Direction(1) // right
	FACING_DOWN  = Direction(2) // down
	FACING_LEFT  = Direction(3) // left
)

// Point on the hull. Y grows downwards.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

var _direction_step = [4]Point{
	FACING_UP:    {0, -1},
	FACING_RIGHT: {1, 0},
	FACING_DOWN:  {0, 1},
	FACING_LEFT:  {-1, 0},
}

var _hull_defines = map[string]string{
	"COLOR_BLACK": fmt.Sprintf("%d", COLOR_BLACK),
	"COLOR_WHITE": fmt.Sprintf("%d", COLOR_WHITE),
	"TURN_LEFT":   fmt.Sprintf("%d", TURN_LEFT),
	"TURN_RIGHT":  fmt.Sprintf("%d", TURN_RIGHT),
}

// Hull is the hull painting robot.
//
// The robot starts at the origin facing up. Each input request reads the
// color of the panel under the robot. Outputs alternate between the color
// to paint the panel, and the direction to turn before moving one panel
// forward.
type Hull struct {
	Start Color // Color of the origin panel before it is painted.

	Position Point
	Facing   Direction
	Panels   map[Point]Color // Painted panels.

	turning bool // Next output is a turn.
}

var _ Channel = (*Hull)(nil)

// Defines returns an iter of defines for the robot.
func (hc *Hull) Defines() iter.Seq2[string, string] {
	return maps.All(_hull_defines)
}

// Rewind returns the robot to the origin, and clears all paint.
func (hc *Hull) Rewind() {
	hc.Position = Point{}
	hc.Facing = FACING_UP
	hc.Panels = nil
	hc.turning = false
}

// Color returns the color of the panel at 'pt'.
func (hc *Hull) Color(pt Point) Color {
	color, ok := hc.Panels[pt]
	if ok {
		return color
	}

	if pt == (Point{}) {
		return hc.Start
	}

	return COLOR_BLACK
}

// Receive returns the color of the panel under the robot.
func (hc *Hull) Receive() (value int64, err error) {
	value = int64(hc.Color(hc.Position))
	return
}

// Send either paints the panel under the robot, or turns and moves it.
func (hc *Hull) Send(value int64) (err error) {
	if !hc.turning {
		color := Color(value)
		if color != COLOR_BLACK && color != COLOR_WHITE {
			err = ErrHullColor
			return
		}
		if hc.Panels == nil {
			hc.Panels = make(map[Point]Color, 256)
		}
		hc.Panels[hc.Position] = color
		hc.turning = true
		return
	}

	switch value {
	case TURN_LEFT:
		hc.Facing = (hc.Facing + 3) % 4
	case TURN_RIGHT:
		hc.Facing = (hc.Facing + 1) % 4
	default:
		err = ErrHullTurn
		return
	}

	step := _direction_step[hc.Facing]
	hc.Position.X += step.X
	hc.Position.Y += step.Y
	hc.turning = false

	return
}

// Painted returns the number of panels painted at least once.
func (hc *Hull) Painted() int {
	return len(hc.Panels)
}

// White returns the number of panels currently white.
func (hc *Hull) White() (count int) {
	for _, color := range hc.Panels {
		if color == COLOR_WHITE {
			count++
		}
	}

	if _, ok := hc.Panels[Point{}]; !ok && hc.Start == COLOR_WHITE {
		count++
	}

	return
}

// Render draws the white panels as '#' on a '.' background, cropped to the
// white area. An all black hull renders as an empty string.
func (hc *Hull) Render() string {
	var lo, hi Point
	found := false
	visit := func(pt Point) {
		if hc.Color(pt) != COLOR_WHITE {
			return
		}
		if !found {
			lo, hi = pt, pt
			found = true
			return
		}
		lo.X, lo.Y = min(lo.X, pt.X), min(lo.Y, pt.Y)
		hi.X, hi.Y = max(hi.X, pt.X), max(hi.Y, pt.Y)
	}

	visit(Point{})
	for pt := range hc.Panels {
		visit(pt)
	}

	if !found {
		return ""
	}

	var text strings.Builder
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			if hc.Color(Point{x, y}) == COLOR_WHITE {
				text.WriteByte('#')
			} else {
				text.WriteByte('.')
			}
		}
		text.WriteByte('\n')
	}

	return text.String()
}

// HullReport is the summary of a robot run.
type HullReport struct {
	Start    string `yaml:"start"`
	Painted  int    `yaml:"painted"`
	White    int    `yaml:"white"`
	Position Point  `yaml:"position"`
	Facing   string `yaml:"facing"`
	Render   string `yaml:"render,omitempty"`
}

// Report summarizes the robot's current state.
func (hc *Hull) Report() (report HullReport) {
	report = HullReport{
		Start:    hc.Start.String(),
		Painted:  hc.Painted(),
		White:    hc.White(),
		Position: hc.Position,
		Facing:   hc.Facing.String(),
		Render:   hc.Render(),
	}

	return
}

// WriteReport writes the robot's summary as YAML.
func (hc *Hull) WriteReport(output io.Writer) (err error) {
	encoder := yaml.NewEncoder(output)
	encoder.SetIndent(2)

	err = encoder.Encode(hc.Report())
	if err != nil {
		return
	}

	err = encoder.Close()

	return
}
