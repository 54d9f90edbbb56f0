package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/popover/pkg/hooks"
	"github.com/vango-dev/popover/pkg/placement"
)

func hookCmd() *cobra.Command {
	var cfg hooks.Config

	cmd := &cobra.Command{
		Use:   "hook [content]",
		Short: "Print a popover hook attribute",
		Long: `Print the v-hook attribute that declares a popover on a trigger.

Examples:
  popover hook "Copy to clipboard" --placement=right
  popover hook "<b>Hi</b>" --html --click
  popover hook --source=clock`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.Content = args[0]
			}
			if cfg.Placement != "" {
				if _, ok := placement.Parse(cfg.Placement); !ok {
					warn("%q is not a placement; the directive will use %s", cfg.Placement, placement.Default)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), hooks.Popover(cfg).String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfg.Placement, "placement", "p", "", "Preferred placement, e.g. top or bottom-start")
	cmd.Flags().BoolVar(&cfg.HTML, "html", false, "Treat content as HTML markup")
	cmd.Flags().BoolVar(&cfg.Click, "click", false, "Toggle on click instead of hover")
	cmd.Flags().StringVar(&cfg.Source, "source", "", "Registered content source to render")

	return cmd
}
