// Package settings holds the flat, persistable description of an L-system
// run and converts it into a grammar and a configured interpreter.
package settings

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yeymeap/L-systems/internal/grammar"
	"github.com/yeymeap/L-systems/internal/turtle"
)

// Settings is the persisted shape of a run. Colors are 32-bit ARGB values.
type Settings struct {
	Axiom       string  `yaml:"axiom"`
	Rules       string  `yaml:"rules"`
	Variables   string  `yaml:"variables"`
	Constants   string  `yaml:"constants"`
	Iterations  int     `yaml:"iterations"`
	Angle       float64 `yaml:"angle"`
	Step        float64 `yaml:"step"`
	PenWidth    float64 `yaml:"penWidth"`
	CanvasColor int32   `yaml:"canvasColor"`
	PenColor    int32   `yaml:"penColor"`
}

// Default returns the settings a fresh workspace starts with.
func Default() Settings {
	return Settings{
		Axiom:       "F",
		Rules:       "F=F[+F]F[-F]F",
		Variables:   "F",
		Constants:   "+-[]",
		Iterations:  3,
		Angle:       25,
		Step:        50,
		PenWidth:    3,
		CanvasColor: ARGB(mustColor("orange")),
		PenColor:    ARGB(mustColor("green")),
	}
}

// ValidationError aggregates settings that can't produce a run.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "settings: invalid configuration"
	}
	return "invalid settings: " + strings.Join(e.Issues, "; ")
}

// Validate checks the run parameters. Grammar problems are reported by
// Grammar instead since they never stop a run.
func (s Settings) Validate() error {
	var issues []string
	if s.Iterations < 0 {
		issues = append(issues, fmt.Sprintf("iterations must be >= 0, got %d", s.Iterations))
	}
	if s.Step <= 0 {
		issues = append(issues, fmt.Sprintf("step must be > 0, got %g", s.Step))
	}
	if s.PenWidth <= 0 {
		issues = append(issues, fmt.Sprintf("pen width must be > 0, got %g", s.PenWidth))
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// Grammar parses the rule text and alphabet. Skipped rule statements are
// returned alongside.
func (s Settings) Grammar() (grammar.Grammar, []grammar.ParseError) {
	rules, errs := grammar.ParseRules(s.Rules)
	return grammar.Grammar{
		Axiom:     s.Axiom,
		Rules:     rules,
		Variables: grammar.ParseSymbols(s.Variables),
		Constants: grammar.ParseSymbols(s.Constants),
	}, errs
}

// Interpreter returns an interpreter configured with these settings,
// starting at the given origin.
func (s Settings) Interpreter(originX, originY float64, penDown bool) *turtle.Interpreter {
	return turtle.NewInterpreter(turtle.Config{
		Step:  s.Step,
		Angle: s.Angle,
		Style: turtle.Style{
			PenDown: penDown,
			Color:   FromARGB(s.PenColor),
			Width:   s.PenWidth,
		},
		OriginX: originX,
		OriginY: originY,
	})
}

// Encode writes s as a YAML document.
func Encode(w io.Writer, s Settings) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	return enc.Close()
}

// Decode reads one YAML document. Fields missing from the document keep
// their Default values; unknown fields are rejected.
func Decode(r io.Reader) (Settings, error) {
	s := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	return s, nil
}
