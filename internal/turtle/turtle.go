// Package turtle implements turtle graphics over a 2D plane and the
// interpreter that drives a turtle from an L-system program.
//
// # Coordinate System
//
// Screen coordinates are used:
//   - X increases right
//   - Y increases down
//   - Headings are in degrees, 0 points along +X, and increasing angles turn
//     clockwise on screen
//
// Nothing is rasterized here. Movement with the pen down produces Segment
// values, which callers collect or forward to a renderer.
package turtle

import (
	"image/color"
	"math"
)

// Pose is the turtle's position and heading.
type Pose struct {
	X, Y    float64
	Heading float64 // degrees
}

// Style is the pen state carried alongside the pose.
type Style struct {
	PenDown bool
	Color   color.NRGBA
	Width   float64
}

// Snapshot is everything "[" saves and "]" restores.
type Snapshot struct {
	Pose  Pose
	Style Style
}

// Segment is a line drawn by the turtle.
type Segment struct {
	X1, Y1 float64
	X2, Y2 float64
	Color  color.NRGBA
	Width  float64
}

// Turtle is a pose and pen with a save/restore stack. The zero value is a
// turtle at the origin facing 0° with the pen up. A Turtle must not be used
// from more than one goroutine.
type Turtle struct {
	pose  Pose
	style Style
	stack stateStack

	// Sink, when set, receives every segment as it is drawn.
	Sink func(Segment)
}

// New returns a turtle at (x, y), heading 0°, with the given pen style.
func New(x, y float64, style Style) *Turtle {
	t := &Turtle{}
	t.Reset(x, y, style)
	return t
}

// Reset moves the turtle to (x, y), points it at 0°, replaces the pen style
// and empties the state stack.
func (t *Turtle) Reset(x, y float64, style Style) {
	t.pose = Pose{X: x, Y: y}
	t.style = style
	t.stack.clear()
}

// Forward moves distance units along the heading. Negative distances move
// backwards. The drawn segment is returned when the pen is down.
func (t *Turtle) Forward(distance float64) (Segment, bool) {
	rad := t.pose.Heading * math.Pi / 180
	x := t.pose.X + math.Cos(rad)*distance
	y := t.pose.Y + math.Sin(rad)*distance
	return t.GoTo(x, y)
}

// Backward is Forward with the distance negated.
func (t *Turtle) Backward(distance float64) (Segment, bool) {
	return t.Forward(-distance)
}

// Move is Forward without drawing, whatever the pen state.
func (t *Turtle) Move(distance float64) {
	down := t.style.PenDown
	t.style.PenDown = false
	t.Forward(distance)
	t.style.PenDown = down
}

// GoTo moves to an absolute position, drawing when the pen is down.
func (t *Turtle) GoTo(x, y float64) (Segment, bool) {
	var seg Segment
	drawn := t.style.PenDown
	if drawn {
		seg = Segment{
			X1: t.pose.X, Y1: t.pose.Y,
			X2: x, Y2: y,
			Color: t.style.Color,
			Width: t.style.Width,
		}
		if t.Sink != nil {
			t.Sink(seg)
		}
	}
	t.pose.X = x
	t.pose.Y = y
	return seg, drawn
}

// Right turns clockwise on screen.
func (t *Turtle) Right(degrees float64) {
	t.pose.Heading += degrees
}

// Left turns counter-clockwise on screen.
func (t *Turtle) Left(degrees float64) {
	t.pose.Heading -= degrees
}

// SetHeading sets an absolute heading. No normalization is applied.
func (t *Turtle) SetHeading(degrees float64) {
	t.pose.Heading = degrees
}

func (t *Turtle) PenUp() { t.style.PenDown = false }
func (t *Turtle) PenDown() { t.style.PenDown = true }

func (t *Turtle) SetColor(c color.NRGBA) { t.style.Color = c }
func (t *Turtle) SetWidth(w float64) { t.style.Width = w }

// Push saves the pose and pen style.
func (t *Turtle) Push() {
	t.stack.push(Snapshot{Pose: t.pose, Style: t.style})
}

// Pop restores the most recently pushed snapshot. Popping an empty stack
// leaves the turtle unchanged.
func (t *Turtle) Pop() {
	s, ok := t.stack.pop()
	if !ok {
		return
	}
	t.pose = s.Pose
	t.style = s.Style
}

func (t *Turtle) Pose() Pose { return t.pose }
func (t *Turtle) Style() Style { return t.style }
func (t *Turtle) Heading() float64 { return t.pose.Heading }

// Position returns the current (x, y).
func (t *Turtle) Position() (float64, float64) {
	return t.pose.X, t.pose.Y
}

// Depth returns the number of saved snapshots.
func (t *Turtle) Depth() int {
	return t.stack.depth()
}

// Snapshot returns the current pose and style.
func (t *Turtle) Snapshot() Snapshot {
	return Snapshot{Pose: t.pose, Style: t.style}
}
