package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeymeap/L-systems/internal/preset"
	"github.com/yeymeap/L-systems/internal/settings"
	"github.com/yeymeap/L-systems/internal/ui"
)

var (
	presetFlags  settingsFlags
	exportOutput string
	importName   string
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage named settings",
}

var presetSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the given settings under a name, replacing any preset with that name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunPresetSave(cmd.OutOrStdout(), args[0], presetFlags.source(cmd))
	},
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunPresetList(cmd.OutOrStdout())
	},
}

var presetShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a preset as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunPresetShow(cmd.OutOrStdout(), args[0])
	},
}

var presetDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunPresetDelete(cmd.OutOrStdout(), args[0])
	},
}

var presetExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Write a preset to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunPresetExport(cmd.OutOrStdout(), args[0], exportOutput)
	},
}

var presetImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Save a YAML settings file as a preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunPresetImport(cmd.OutOrStdout(), args[0], importName)
	},
}

func init() {
	presetFlags.register(presetSaveCmd)
	presetExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default <name>.yaml)")
	presetImportCmd.Flags().StringVar(&importName, "name", "", "Preset name (default: file name without extension)")

	presetCmd.AddCommand(presetSaveCmd, presetListCmd, presetShowCmd, presetDeleteCmd, presetExportCmd, presetImportCmd)
	rootCmd.AddCommand(presetCmd)
}

func withPresets(fn func(store *preset.Store) error) error {
	sqlDB, err := openWorkspace()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	return fn(preset.NewStore(sqlDB))
}

func notFound(name string, err error) error {
	if errors.Is(err, preset.ErrNotFound) {
		return fmt.Errorf("preset %q not found", name)
	}
	return err
}

func RunPresetSave(w io.Writer, name string, src Source) error {
	s, err := src.Resolve()
	if err != nil {
		return err
	}
	return withPresets(func(store *preset.Store) error {
		if _, err := store.Save(name, s); err != nil {
			return err
		}
		fmt.Fprintf(w, "preset %s saved\n", name)
		return nil
	})
}

func RunPresetList(w io.Writer) error {
	return withPresets(func(store *preset.Store) error {
		presets, err := store.List()
		if err != nil {
			return err
		}

		nameWidth := 0
		for _, p := range presets {
			nameWidth = max(nameWidth, len(p.Name))
		}
		for _, p := range presets {
			s := p.Settings
			ui.PresetRow(w, p.Name, s.Axiom, s.Rules, s.Iterations, s.Angle, nameWidth)
		}
		return nil
	})
}

func RunPresetShow(w io.Writer, name string) error {
	return withPresets(func(store *preset.Store) error {
		p, err := store.Get(name)
		if err != nil {
			return notFound(name, err)
		}
		return settings.Encode(w, p.Settings)
	})
}

func RunPresetDelete(w io.Writer, name string) error {
	return withPresets(func(store *preset.Store) error {
		if err := store.Delete(name); err != nil {
			return notFound(name, err)
		}
		fmt.Fprintf(w, "preset %s deleted\n", name)
		return nil
	})
}

func RunPresetExport(w io.Writer, name, output string) error {
	if output == "" {
		output = name + ".yaml"
	}
	return withPresets(func(store *preset.Store) error {
		p, err := store.Get(name)
		if err != nil {
			return notFound(name, err)
		}

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		if err := settings.Encode(f, p.Settings); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", output, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("writing %s: %w", output, err)
		}

		ui.Created(w, output)
		return nil
	})
}

func RunPresetImport(w io.Writer, path, name string) error {
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	// Resolve reads and validates the file.
	s, err := Source{File: path}.Resolve()
	if err != nil {
		return err
	}
	return withPresets(func(store *preset.Store) error {
		if _, err := store.Save(name, s); err != nil {
			return err
		}
		fmt.Fprintf(w, "preset %s imported from %s\n", name, path)
		return nil
	})
}
