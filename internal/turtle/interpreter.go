package turtle

import "unicode/utf8"

// Default symbol sets for an Interpreter.
const (
	DefaultMovement = "FGAB"
	DefaultSkip     = "f"
)

// Config holds the run parameters of an Interpreter.
type Config struct {
	Step  float64 // distance of one movement symbol
	Angle float64 // degrees turned by "+" and "-"
	Style Style   // pen style restored by Reset

	// Movement symbols move forward and draw when the pen is down.
	// Empty means DefaultMovement.
	Movement string
	// Skip symbols move forward without drawing. Empty means DefaultSkip.
	Skip string

	OriginX, OriginY float64
}

// Interpreter executes program symbols against a turtle:
//
//	movement symbols  forward one step, drawing if the pen is down
//	skip symbols      forward one step, never drawing
//	+                 turn right (clockwise) by the angle
//	-                 turn left by the angle
//	[                 push pose and style
//	]                 pop pose and style; no-op on an empty stack
//
// Every other symbol is ignored.
type Interpreter struct {
	cfg    Config
	move   map[rune]bool
	skip   map[rune]bool
	turtle *Turtle
}

// NewInterpreter returns an interpreter reset to cfg's origin.
func NewInterpreter(cfg Config) *Interpreter {
	if cfg.Movement == "" {
		cfg.Movement = DefaultMovement
	}
	if cfg.Skip == "" {
		cfg.Skip = DefaultSkip
	}

	in := &Interpreter{
		cfg:    cfg,
		move:   symbolSet(cfg.Movement),
		skip:   symbolSet(cfg.Skip),
		turtle: &Turtle{},
	}
	// A symbol can't be both.
	for c := range in.move {
		delete(in.skip, c)
	}
	in.Reset(cfg.OriginX, cfg.OriginY)
	return in
}

func symbolSet(s string) map[rune]bool {
	set := make(map[rune]bool, utf8.RuneCountInString(s))
	for _, c := range s {
		set[c] = true
	}
	return set
}

// Config returns the interpreter's run parameters.
func (in *Interpreter) Config() Config {
	return in.cfg
}

// Turtle exposes the turtle being driven.
func (in *Interpreter) Turtle() *Turtle {
	return in.turtle
}

// SetStyle changes the default pen style applied by later resets.
func (in *Interpreter) SetStyle(style Style) {
	in.cfg.Style = style
}

// Reset returns the turtle to (originX, originY), heading 0°, with the
// configured pen style and an empty stack. Later replays start from the
// same origin.
func (in *Interpreter) Reset(originX, originY float64) {
	in.cfg.OriginX = originX
	in.cfg.OriginY = originY
	in.turtle.Reset(originX, originY, in.cfg.Style)
}

// Step executes one symbol and returns the segment it drew, if any.
func (in *Interpreter) Step(symbol rune) (Segment, bool) {
	switch {
	case in.move[symbol]:
		return in.turtle.Forward(in.cfg.Step)
	case in.skip[symbol]:
		in.turtle.Move(in.cfg.Step)
	case symbol == '+':
		in.turtle.Right(in.cfg.Angle)
	case symbol == '-':
		in.turtle.Left(in.cfg.Angle)
	case symbol == '[':
		in.turtle.Push()
	case symbol == ']':
		in.turtle.Pop()
	}
	return Segment{}, false
}

// RunPrefix resets to the current origin and executes the first length
// symbols of program, returning the segments drawn in order. length is
// clamped to the program.
func (in *Interpreter) RunPrefix(program string, length int) []Segment {
	in.Reset(in.cfg.OriginX, in.cfg.OriginY)

	var segs []Segment
	n := 0
	for _, c := range program {
		if n >= length {
			break
		}
		if seg, ok := in.Step(c); ok {
			segs = append(segs, seg)
		}
		n++
	}
	return segs
}

// Run resets and executes the whole program.
func (in *Interpreter) Run(program string) []Segment {
	return in.RunPrefix(program, utf8.RuneCountInString(program))
}
