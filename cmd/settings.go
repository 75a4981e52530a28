package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yeymeap/L-systems/internal/db"
	"github.com/yeymeap/L-systems/internal/grammar"
	"github.com/yeymeap/L-systems/internal/preset"
	"github.com/yeymeap/L-systems/internal/settings"
	"github.com/yeymeap/L-systems/internal/ui"
)

const (
	defaultDBPath    = "lsys/lsys.db"
	defaultMaxLength = 5_000_000
)

// openWorkspace opens the database named by --db. Its directory must have
// been created by `lsys init`.
func openWorkspace() (*sql.DB, error) {
	if _, err := os.Stat(filepath.Dir(dbFlag)); os.IsNotExist(err) {
		return nil, fmt.Errorf("run `lsys init` first")
	}

	sqlDB, err := db.Open(dbFlag)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return sqlDB, nil
}

// Overrides are settings given explicitly on the command line. Nil fields
// keep the value from the preset, file or defaults.
type Overrides struct {
	Axiom       *string
	Rules       *string
	Variables   *string
	Constants   *string
	Iterations  *int
	Angle       *float64
	Step        *float64
	PenWidth    *float64
	PenColor    *string
	CanvasColor *string
}

// Source selects the base settings: a named preset, a YAML file, or the
// defaults when both are empty.
type Source struct {
	Preset    string
	File      string
	Overrides Overrides
}

// Resolve loads the base settings and applies the overrides.
func (src Source) Resolve() (settings.Settings, error) {
	s := settings.Default()

	switch {
	case src.Preset != "" && src.File != "":
		return s, fmt.Errorf("--preset and --file are mutually exclusive")
	case src.Preset != "":
		sqlDB, err := openWorkspace()
		if err != nil {
			return s, err
		}
		defer sqlDB.Close()

		p, err := preset.NewStore(sqlDB).Get(src.Preset)
		if errors.Is(err, preset.ErrNotFound) {
			return s, fmt.Errorf("preset %q not found", src.Preset)
		}
		if err != nil {
			return s, err
		}
		s = p.Settings
	case src.File != "":
		f, err := os.Open(src.File)
		if err != nil {
			return s, fmt.Errorf("reading %s: %w", src.File, err)
		}
		defer f.Close()

		s, err = settings.Decode(f)
		if err != nil {
			return s, fmt.Errorf("reading %s: %w", src.File, err)
		}
	}

	ov := src.Overrides
	if ov.Axiom != nil {
		s.Axiom = *ov.Axiom
	}
	if ov.Rules != nil {
		s.Rules = *ov.Rules
	}
	if ov.Variables != nil {
		s.Variables = *ov.Variables
	}
	if ov.Constants != nil {
		s.Constants = *ov.Constants
	}
	if ov.Iterations != nil {
		s.Iterations = *ov.Iterations
	}
	if ov.Angle != nil {
		s.Angle = *ov.Angle
	}
	if ov.Step != nil {
		s.Step = *ov.Step
	}
	if ov.PenWidth != nil {
		s.PenWidth = *ov.PenWidth
	}
	if ov.PenColor != nil {
		c, err := settings.ParseColor(*ov.PenColor)
		if err != nil {
			return s, fmt.Errorf("--pen-color: %w", err)
		}
		s.PenColor = settings.ARGB(c)
	}
	if ov.CanvasColor != nil {
		c, err := settings.ParseColor(*ov.CanvasColor)
		if err != nil {
			return s, fmt.Errorf("--canvas-color: %w", err)
		}
		s.CanvasColor = settings.ARGB(c)
	}

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// settingsFlags binds the flags shared by every command that builds a run.
type settingsFlags struct {
	preset, file                       string
	axiom, rules, variables, constants string
	iterations                         int
	angle, step, penWidth              float64
	penColor, canvasColor              string
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	d := settings.Default()
	fs := cmd.Flags()
	fs.StringVar(&f.preset, "preset", "", "Start from a saved preset")
	fs.StringVar(&f.file, "file", "", "Start from a YAML settings file")
	fs.StringVar(&f.axiom, "axiom", d.Axiom, "Axiom (generation 0)")
	fs.StringVar(&f.rules, "rules", d.Rules, "Rules as X=replacement, separated by ';' or newlines")
	fs.StringVar(&f.variables, "variables", d.Variables, "Variable symbols")
	fs.StringVar(&f.constants, "constants", d.Constants, "Constant symbols")
	fs.IntVarP(&f.iterations, "iterations", "n", d.Iterations, "Number of rewriting passes")
	fs.Float64Var(&f.angle, "angle", d.Angle, "Turn angle in degrees")
	fs.Float64Var(&f.step, "step", d.Step, "Step length")
	fs.Float64Var(&f.penWidth, "pen-width", d.PenWidth, "Pen width")
	fs.StringVar(&f.penColor, "pen-color", settings.FormatColor(settings.FromARGB(d.PenColor)), "Pen color (name, #rrggbb or #aarrggbb)")
	fs.StringVar(&f.canvasColor, "canvas-color", settings.FormatColor(settings.FromARGB(d.CanvasColor)), "Canvas color")
}

func (f *settingsFlags) source(cmd *cobra.Command) Source {
	fs := cmd.Flags()
	var ov Overrides
	if fs.Changed("axiom") {
		ov.Axiom = &f.axiom
	}
	if fs.Changed("rules") {
		ov.Rules = &f.rules
	}
	if fs.Changed("variables") {
		ov.Variables = &f.variables
	}
	if fs.Changed("constants") {
		ov.Constants = &f.constants
	}
	if fs.Changed("iterations") {
		ov.Iterations = &f.iterations
	}
	if fs.Changed("angle") {
		ov.Angle = &f.angle
	}
	if fs.Changed("step") {
		ov.Step = &f.step
	}
	if fs.Changed("pen-width") {
		ov.PenWidth = &f.penWidth
	}
	if fs.Changed("pen-color") {
		ov.PenColor = &f.penColor
	}
	if fs.Changed("canvas-color") {
		ov.CanvasColor = &f.canvasColor
	}
	return Source{Preset: f.preset, File: f.file, Overrides: ov}
}

// expandSettings expands the grammar described by s, printing skipped rules
// and alphabet issues as warnings on errW.
func expandSettings(errW io.Writer, s settings.Settings, maxLength int, verbose bool) (string, error) {
	g, parseErrors := s.Grammar()
	ui.RuleWarnings(errW, parseErrors)
	for _, issue := range g.Validate() {
		ui.Warn(errW, "%s", issue)
	}

	var trace func(int, int)
	if verbose {
		trace = func(i, n int) {
			ui.Detail(errW, "iteration %d: %d symbols", i, n)
		}
	}

	program, err := grammar.ExpandTrace(g.Axiom, g.Rules, s.Iterations, maxLength, trace)
	if err != nil {
		return "", err
	}
	return program, nil
}
