package turtle

import (
	"math"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInterp(angle float64, style Style) *Interpreter {
	return NewInterpreter(Config{Step: 10, Angle: angle, Style: style})
}

func direction(s Segment) float64 {
	return math.Round(math.Atan2(s.Y2-s.Y1, s.X2-s.X1) * 180 / math.Pi)
}

func TestInterpreter_KochCurve(t *testing.T) {
	in := newInterp(90, penDown())
	segs := in.Run("F+F-F-F+F")
	require.Len(t, segs, 5)

	var dirs []float64
	for _, s := range segs {
		dirs = append(dirs, direction(s))
		assert.InDelta(t, 10, math.Hypot(s.X2-s.X1, s.Y2-s.Y1), eps)
	}
	assert.Equal(t, []float64{0, 90, 0, -90, 0}, dirs)

	assert.Equal(t, 0.0, in.Turtle().Heading())
	x, y := in.Turtle().Position()
	assert.InDelta(t, 30, x, eps)
	assert.InDelta(t, 0, y, eps)
}

func TestInterpreter_UnmatchedCloseBracket(t *testing.T) {
	in := newInterp(90, penDown())
	segs := in.Run("]F")
	require.Len(t, segs, 1)
	assert.Equal(t, 0.0, segs[0].X1)
	assert.Equal(t, 0.0, segs[0].Y1)
	assert.InDelta(t, 10, segs[0].X2, eps)
	assert.Equal(t, 0, in.Turtle().Depth())
}

func TestInterpreter_PenUpRun(t *testing.T) {
	in := newInterp(90, Style{PenDown: false, Width: 3})
	segs := in.Run("F F")
	assert.Empty(t, segs)
	x, y := in.Turtle().Position()
	assert.InDelta(t, 20, x, eps)
	assert.InDelta(t, 0, y, eps)
}

func TestInterpreter_IgnoresUnknownSymbols(t *testing.T) {
	in := newInterp(90, penDown())
	before := in.Turtle().Snapshot()
	for _, c := range "XYZ|!? " {
		_, ok := in.Step(c)
		assert.False(t, ok)
	}
	assert.Equal(t, before, in.Turtle().Snapshot())
}

func TestInterpreter_AllMovementSymbolsDraw(t *testing.T) {
	in := newInterp(90, penDown())
	assert.Len(t, in.Run("FGAB"), 4)
}

func TestInterpreter_CustomMovementSet(t *testing.T) {
	in := NewInterpreter(Config{Step: 1, Angle: 90, Style: penDown(), Movement: "X"})
	segs := in.Run("XFX")
	assert.Len(t, segs, 2)
}

func TestInterpreter_SkipSymbolMovesWithoutDrawing(t *testing.T) {
	in := newInterp(90, penDown())
	segs := in.Run("FfF")
	require.Len(t, segs, 2)
	assert.InDelta(t, 20, segs[1].X1, eps)
	assert.InDelta(t, 30, segs[1].X2, eps)
}

func TestInterpreter_ResetUsesOriginAndStyle(t *testing.T) {
	in := newInterp(25, penDown())
	in.Run("F[+F")
	in.Reset(100, 50)

	tu := in.Turtle()
	assert.Equal(t, Pose{X: 100, Y: 50}, tu.Pose())
	assert.Equal(t, penDown(), tu.Style())
	assert.Equal(t, 0, tu.Depth())

	segs := in.Run("F")
	require.Len(t, segs, 1)
	assert.Equal(t, 100.0, segs[0].X1)
}

func TestInterpreter_SetStyleAppliesOnReset(t *testing.T) {
	in := newInterp(25, penDown())
	in.SetStyle(Style{PenDown: false})
	assert.Empty(t, in.Run("FFF"))
}

func TestInterpreter_RunPrefixClampsLength(t *testing.T) {
	in := newInterp(90, penDown())
	assert.Len(t, in.RunPrefix("FFF", 10), 3)
	assert.Empty(t, in.RunPrefix("FFF", 0))
	assert.Empty(t, in.RunPrefix("FFF", -2))
	assert.Equal(t, Pose{}, in.Turtle().Pose())
}

func TestInterpreter_ReplayDeterminism(t *testing.T) {
	programs := []string{
		"F+F-F-F+F",
		"F[+F]F[-F]F",
		"FF+[+F-F-F]-[-F+F+F]",
		"]]F[F[F+F]]f-G",
	}
	for _, program := range programs {
		full := newInterp(25, penDown())
		wantSegs := full.Run(program)
		wantSnap := full.Turtle().Snapshot()

		runes := []rune(program)
		for k := 0; k <= len(runes); k++ {
			in := newInterp(25, penDown())
			segs := in.RunPrefix(program, k)
			for _, c := range runes[k:] {
				if seg, ok := in.Step(c); ok {
					segs = append(segs, seg)
				}
			}
			assert.Equal(t, wantSegs, segs, "program %q k=%d", program, k)
			assert.Equal(t, wantSnap, in.Turtle().Snapshot(), "program %q k=%d", program, k)
		}
	}
}

func TestInterpreter_BalancedBracketsHaveNoNetEffect(t *testing.T) {
	cases := []struct {
		program   string
		flattened string
	}{
		{"F[+F]F", "FF"},
		{"F[+F[-F]F]+F", "F+F"},
		{"[F][F][F]", ""},
		{"-F[[F]+F]F", "-FF"},
	}
	for _, tc := range cases {
		a := newInterp(25, penDown())
		a.Run(tc.program)
		b := newInterp(25, penDown())
		b.Run(tc.flattened)

		assert.Equal(t, 0, a.Turtle().Depth(), tc.program)
		pa, pb := a.Turtle().Pose(), b.Turtle().Pose()
		assert.InDelta(t, pb.X, pa.X, eps, tc.program)
		assert.InDelta(t, pb.Y, pa.Y, eps, tc.program)
		assert.InDelta(t, pb.Heading, pa.Heading, eps, tc.program)
	}
}

func TestInterpreter_MultiByteProgram(t *testing.T) {
	in := NewInterpreter(Config{Step: 1, Angle: 90, Style: penDown(), Movement: "→"})
	program := "→+→"
	assert.Len(t, in.RunPrefix(program, utf8.RuneCountInString(program)), 2)
	assert.Len(t, in.RunPrefix(program, 2), 1)
}

func BenchmarkInterpreter_Run(b *testing.B) {
	program := "F+F-F-F+F"
	for i := 0; i < 4; i++ {
		next := ""
		for _, c := range program {
			if c == 'F' {
				next += "F+F-F-F+F"
			} else {
				next += string(c)
			}
		}
		program = next
	}
	in := newInterp(90, penDown())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		in.Run(program)
	}
}
