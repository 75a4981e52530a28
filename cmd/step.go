package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yeymeap/L-systems/internal/session"
	"github.com/yeymeap/L-systems/internal/ui"
)

var (
	stepFlags     settingsFlags
	stepCanvas    canvasFlags
	stepMaxLength int
	stepOutput    string
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Step through a program one symbol at a time",
}

var stepStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Generate a program and start stepping at symbol 0",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStepStart(cmd.OutOrStdout(), cmd.ErrOrStderr(), stepFlags.source(cmd), stepCanvas.canvas(cmd), stepMaxLength, verboseFlag)
	},
}

var stepForwardCmd = &cobra.Command{
	Use:   "forward [n]",
	Short: "Interpret the next n symbols (default 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := stepCount(args)
		if err != nil {
			return err
		}
		return RunStepForward(cmd.OutOrStdout(), n)
	},
}

var stepBackCmd = &cobra.Command{
	Use:   "back [n]",
	Short: "Undo the last n symbols (default 1) by replaying from the start",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := stepCount(args)
		if err != nil {
			return err
		}
		return RunStepBack(cmd.OutOrStdout(), n)
	},
}

var stepShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show progress, optionally rendering the canvas with -o",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStepShow(cmd.OutOrStdout(), stepOutput)
	},
}

var stepClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the canvas and return to symbol 0",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStepClear(cmd.OutOrStdout())
	},
}

var stepStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Discard the stepping session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStepStop(cmd.OutOrStdout())
	},
}

func init() {
	stepFlags.register(stepStartCmd)
	stepCanvas.register(stepStartCmd)
	stepStartCmd.Flags().IntVar(&stepMaxLength, "max-length", defaultMaxLength, "Fail when the program would exceed this many symbols (0 = unlimited)")
	stepShowCmd.Flags().StringVarP(&stepOutput, "output", "o", "", "Render the current canvas to a .svg or .png file")

	stepCmd.AddCommand(stepStartCmd, stepForwardCmd, stepBackCmd, stepShowCmd, stepClearCmd, stepStopCmd)
	rootCmd.AddCommand(stepCmd)
}

func stepCount(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid step count: %s", args[0])
	}
	return n, nil
}

// withSession loads the stored session, lets fn move its player, and saves
// the resulting cursor.
func withSession(fn func(st session.State, p *session.Player) error) error {
	sqlDB, err := openWorkspace()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	store := session.NewStore(sqlDB)
	st, err := store.Load()
	if errors.Is(err, session.ErrNoSession) {
		return fmt.Errorf("no stepping session: run `lsys step start` first")
	}
	if err != nil {
		return err
	}

	p := st.Player()
	before := p.Cursor()
	if err := fn(st, p); err != nil {
		return err
	}
	if p.Cursor() != before {
		return store.SetCursor(p.Cursor())
	}
	return nil
}

func RunStepStart(w, errW io.Writer, src Source, c Canvas, maxLength int, verbose bool) error {
	s, err := src.Resolve()
	if err != nil {
		return err
	}

	program, err := expandSettings(errW, s, maxLength, verbose)
	if err != nil {
		return err
	}

	sqlDB, err := openWorkspace()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	st := session.State{
		Settings: s,
		Program:  program,
		OriginX:  c.OriginX,
		OriginY:  c.OriginY,
		PenDown:  !c.PenUp,
		Width:    c.Width,
		Height:   c.Height,
	}
	if err := session.NewStore(sqlDB).Save(st); err != nil {
		return err
	}

	ui.Progress(w, st.Player().Progress())
	return nil
}

func RunStepForward(w io.Writer, n int) error {
	return withSession(func(_ session.State, p *session.Player) error {
		for i := 0; i < n; i++ {
			seg, drawn, advanced := p.StepForward()
			if !advanced {
				break
			}
			if drawn {
				ui.SegmentLine(w, len(p.Segments()), seg)
			}
		}
		ui.Progress(w, p.Progress())
		return nil
	})
}

func RunStepBack(w io.Writer, n int) error {
	return withSession(func(_ session.State, p *session.Player) error {
		// One replay instead of n.
		p.Seek(p.Cursor() - n)
		ui.Progress(w, p.Progress())
		return nil
	})
}

func RunStepShow(w io.Writer, output string) error {
	return withSession(func(st session.State, p *session.Player) error {
		ui.Progress(w, p.Progress())
		if output == "" {
			ui.Detail(w, "%d segments drawn", len(p.Segments()))
			return nil
		}
		c := Canvas{Width: st.Width, Height: st.Height, OriginX: st.OriginX, OriginY: st.OriginY}
		if c.Width <= 0 || c.Height <= 0 {
			c.Width, c.Height = defaultCanvasWidth, defaultCanvasHeight
		}
		return writeDrawing(w, p.Segments(), st.Settings, c, output)
	})
}

func RunStepClear(w io.Writer) error {
	return withSession(func(_ session.State, p *session.Player) error {
		p.Clear()
		ui.Progress(w, p.Progress())
		return nil
	})
}

func RunStepStop(w io.Writer) error {
	sqlDB, err := openWorkspace()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := session.NewStore(sqlDB).Delete(); err != nil {
		return err
	}
	fmt.Fprintln(w, "session discarded")
	return nil
}
