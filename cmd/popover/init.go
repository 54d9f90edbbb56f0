package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/popover/internal/config"
	"github.com/vango-dev/popover/internal/errors"
)

func initCmd() *cobra.Command {
	var (
		name   string
		asYAML bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a popover configuration file",
		Long: `Write popover.json (or popover.yaml with --yaml) with the
default settings.

Examples:
  popover init
  popover init ./site --yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(dir, name, asYAML, force)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Project name shown on the playground page")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Write popover.yaml instead of popover.json")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration")

	return cmd
}

func runInit(dir, name string, asYAML, force bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.New("P022").Wrap(err)
	}
	if existing, ok := config.Find(dir); ok && !force {
		return errors.New("P022").
			WithDetail(existing + " already exists").
			WithSuggestion("Use --force to overwrite it")
	}

	file := config.ConfigFileName
	if asYAML {
		file = config.YAMLConfigFileName
	}
	path := filepath.Join(dir, file)

	cfg := config.New()
	cfg.Name = name
	if err := cfg.SaveTo(path); err != nil {
		return err
	}

	success("Created %s", path)
	info("Run 'popover serve' to open the playground")
	return nil
}
