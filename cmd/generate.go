package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yeymeap/L-systems/internal/grammar"
	"github.com/yeymeap/L-systems/internal/ui"
)

var (
	generateFlags     settingsFlags
	generateCount     bool
	generateMaxLength int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Expand an L-system grammar and print the program",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunGenerate(cmd.OutOrStdout(), cmd.ErrOrStderr(), GenerateOptions{
			Source:    generateFlags.source(cmd),
			Count:     generateCount,
			MaxLength: generateMaxLength,
			Verbose:   verboseFlag,
		})
	},
}

func init() {
	generateFlags.register(generateCmd)
	generateCmd.Flags().BoolVar(&generateCount, "count", false, "Print only the program length")
	generateCmd.Flags().IntVar(&generateMaxLength, "max-length", defaultMaxLength, "Fail when the program would exceed this many symbols (0 = unlimited)")
	rootCmd.AddCommand(generateCmd)
}

type GenerateOptions struct {
	Source    Source
	Count     bool
	MaxLength int
	Verbose   bool
}

func RunGenerate(w, errW io.Writer, opts GenerateOptions) error {
	s, err := opts.Source.Resolve()
	if err != nil {
		return err
	}

	if opts.Count {
		g, parseErrors := s.Grammar()
		ui.RuleWarnings(errW, parseErrors)
		n, err := grammar.Length(g.Axiom, g.Rules, s.Iterations)
		if err != nil {
			return err
		}
		ui.SummaryLine(w, n)
		return nil
	}

	program, err := expandSettings(errW, s, opts.MaxLength, opts.Verbose)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, program)
	return nil
}
