// Package session drives a turtle interpreter over a generated program one
// symbol at a time. Stepping backward replays the program from the start.
package session

import (
	"fmt"

	"github.com/yeymeap/L-systems/internal/turtle"
)

// Progress describes how far through the program a Player is.
type Progress struct {
	Cursor int
	Total  int
	Next   rune // symbol at Cursor; zero when Done
	Done   bool
}

func (p Progress) String() string {
	if p.Done {
		return fmt.Sprintf("Step: %d/%d (Done)", p.Cursor, p.Total)
	}
	return fmt.Sprintf("Step: %d/%d (Next: '%c')", p.Cursor, p.Total, p.Next)
}

// Player owns a program, the cursor into it and the interpreter that has
// executed the first cursor symbols. The segments on the canvas always
// equal a fresh run of program[:cursor].
type Player struct {
	program  []rune
	cursor   int
	interp   *turtle.Interpreter
	segments []turtle.Segment
}

// NewPlayer returns a player with an empty program.
func NewPlayer(interp *turtle.Interpreter) *Player {
	p := &Player{interp: interp}
	p.Clear()
	return p
}

// Load replaces the program and clears the canvas.
func (p *Player) Load(program string) {
	p.program = []rune(program)
	p.Clear()
}

// Program returns the loaded program.
func (p *Player) Program() string {
	return string(p.program)
}

// Interpreter returns the driven interpreter.
func (p *Player) Interpreter() *turtle.Interpreter {
	return p.interp
}

// Clear resets the turtle and moves the cursor back to 0.
func (p *Player) Clear() {
	p.cursor = 0
	p.segments = nil
	p.interp.Reset(p.interp.Config().OriginX, p.interp.Config().OriginY)
}

// StepForward executes the symbol under the cursor. It reports the segment
// drawn, if any, and false for advanced when the program is exhausted.
func (p *Player) StepForward() (seg turtle.Segment, drawn, advanced bool) {
	if p.cursor >= len(p.program) {
		return turtle.Segment{}, false, false
	}
	seg, drawn = p.interp.Step(p.program[p.cursor])
	if drawn {
		p.segments = append(p.segments, seg)
	}
	p.cursor++
	return seg, drawn, true
}

// StepBackward undoes the last symbol by replaying the program up to the
// previous cursor. It is a no-op at the start of the program.
func (p *Player) StepBackward() bool {
	if p.cursor <= 0 {
		return false
	}
	p.Seek(p.cursor - 1)
	return true
}

// Seek replays the program from scratch up to n symbols, clamped to the
// program length.
func (p *Player) Seek(n int) {
	if n < 0 {
		n = 0
	}
	if n > len(p.program) {
		n = len(p.program)
	}
	p.segments = p.interp.RunPrefix(string(p.program[:n]), n)
	p.cursor = n
}

// RunAll executes the remaining program.
func (p *Player) RunAll() {
	for p.cursor < len(p.program) {
		p.StepForward()
	}
}

// Cursor returns the number of symbols already executed.
func (p *Player) Cursor() int {
	return p.cursor
}

// Segments returns the segments drawn so far, in order.
func (p *Player) Segments() []turtle.Segment {
	return p.segments
}

// Progress reports the cursor, program length and next symbol.
func (p *Player) Progress() Progress {
	pr := Progress{Cursor: p.cursor, Total: len(p.program)}
	if p.cursor < len(p.program) {
		pr.Next = p.program[p.cursor]
	} else {
		pr.Done = true
	}
	return pr
}
