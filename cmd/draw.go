package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/yeymeap/L-systems/internal/render"
	"github.com/yeymeap/L-systems/internal/settings"
	"github.com/yeymeap/L-systems/internal/turtle"
	"github.com/yeymeap/L-systems/internal/ui"
)

const (
	defaultCanvasWidth  = 1000
	defaultCanvasHeight = 700
)

var (
	drawFlags     settingsFlags
	drawCanvas    canvasFlags
	drawOutput    string
	drawSteps     int
	drawMaxLength int
)

var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Expand and interpret an L-system, writing SVG, PNG or the segment list",
	Long: `Expand and interpret an L-system.

With -o file.svg or -o file.png the drawing is written to that file; -o -
writes SVG to stdout. Without -o the draw events are listed one per line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunDraw(cmd.OutOrStdout(), cmd.ErrOrStderr(), DrawOptions{
			Source:    drawFlags.source(cmd),
			Canvas:    drawCanvas.canvas(cmd),
			Output:    drawOutput,
			Steps:     drawSteps,
			MaxLength: drawMaxLength,
			Verbose:   verboseFlag,
		})
	},
}

func init() {
	drawFlags.register(drawCmd)
	drawCanvas.register(drawCmd)
	drawCmd.Flags().StringVarP(&drawOutput, "output", "o", "", "Output file (.svg or .png), or - for SVG on stdout")
	drawCmd.Flags().IntVar(&drawSteps, "steps", -1, "Interpret only the first N symbols (-1 = all)")
	drawCmd.Flags().IntVar(&drawMaxLength, "max-length", defaultMaxLength, "Fail when the program would exceed this many symbols (0 = unlimited)")
	rootCmd.AddCommand(drawCmd)
}

// Canvas holds the render target and where the turtle starts on it.
type Canvas struct {
	Width, Height    int
	OriginX, OriginY float64
	PenUp            bool
	Fit              bool
}

// DefaultCanvas is the original window size with the turtle in the middle.
func DefaultCanvas() Canvas {
	return Canvas{
		Width:   defaultCanvasWidth,
		Height:  defaultCanvasHeight,
		OriginX: defaultCanvasWidth / 2,
		OriginY: defaultCanvasHeight / 2,
	}
}

type canvasFlags struct {
	width, height    int
	originX, originY float64
	penUp, fit       bool
}

func (f *canvasFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVar(&f.width, "canvas-width", defaultCanvasWidth, "Canvas width in pixels")
	fs.IntVar(&f.height, "canvas-height", defaultCanvasHeight, "Canvas height in pixels")
	fs.Float64Var(&f.originX, "origin-x", 0, "Turtle start X (default: canvas center)")
	fs.Float64Var(&f.originY, "origin-y", 0, "Turtle start Y (default: canvas center)")
	fs.BoolVar(&f.penUp, "pen-up", false, "Start with the pen up")
	fs.BoolVar(&f.fit, "fit", false, "Scale the drawing to fit the canvas")
}

func (f *canvasFlags) canvas(cmd *cobra.Command) Canvas {
	c := Canvas{
		Width:   f.width,
		Height:  f.height,
		OriginX: float64(f.width) / 2,
		OriginY: float64(f.height) / 2,
		PenUp:   f.penUp,
		Fit:     f.fit,
	}
	if cmd.Flags().Changed("origin-x") {
		c.OriginX = f.originX
	}
	if cmd.Flags().Changed("origin-y") {
		c.OriginY = f.originY
	}
	return c
}

type DrawOptions struct {
	Source    Source
	Canvas    Canvas
	Output    string
	Steps     int
	MaxLength int
	Verbose   bool
}

func RunDraw(w, errW io.Writer, opts DrawOptions) error {
	s, err := opts.Source.Resolve()
	if err != nil {
		return err
	}

	program, err := expandSettings(errW, s, opts.MaxLength, opts.Verbose)
	if err != nil {
		return err
	}

	c := opts.Canvas
	in := s.Interpreter(c.OriginX, c.OriginY, !c.PenUp)

	steps := opts.Steps
	if steps < 0 {
		steps = utf8.RuneCountInString(program)
	}
	segs := in.RunPrefix(program, steps)

	if opts.Verbose {
		tu := in.Turtle()
		x, y := tu.Position()
		ui.Detail(errW, "final pose: (%.2f, %.2f) heading %g°, stack depth %d", x, y, tu.Heading(), tu.Depth())
	}

	return writeDrawing(w, segs, s, c, opts.Output)
}

// writeDrawing renders segs to path, choosing the format by extension.
// An empty path lists the segments; "-" writes SVG to w.
func writeDrawing(w io.Writer, segs []turtle.Segment, s settings.Settings, c Canvas, path string) error {
	ro := render.Options{
		Width:      c.Width,
		Height:     c.Height,
		Background: settings.FromARGB(s.CanvasColor),
		Fit:        c.Fit,
		Margin:     10,
	}

	switch {
	case path == "":
		for i, seg := range segs {
			ui.SegmentLine(w, i+1, seg)
		}
		return nil
	case path == "-":
		return render.WriteSVG(w, segs, ro)
	}

	var write func(io.Writer, []turtle.Segment, render.Options) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		write = render.WriteSVG
	case ".png":
		write = render.WritePNG
	default:
		return fmt.Errorf("unsupported output format %q: use .svg or .png", filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f, segs, ro); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	ui.Wrote(w, path, len(segs))
	return nil
}
