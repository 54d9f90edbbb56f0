package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/popover/internal/config"
	"github.com/vango-dev/popover/internal/dev"
)

func buildCmd() *cobra.Command {
	var (
		output string
		clean  bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the WebAssembly client",
		Long: `Compile the client with GOOS=js GOARCH=wasm and copy
wasm_exec.js next to it.

Examples:
  popover build
  popover build --output=public --clean`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(output, clean)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory (default from popover.json)")
	cmd.Flags().BoolVar(&clean, "clean", false, "Remove previous build output first")

	return cmd
}

func runBuild(output string, clean bool) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}
	if output != "" {
		cfg.Build.Output = output
	}

	compiler := dev.NewCompiler(dev.CompilerConfig{
		ProjectPath: cfg.Dir(),
		OutputDir:   cfg.OutputPath(),
		Entry:       cfg.Build.Entry,
		Tags:        cfg.Build.Tags,
		LDFlags:     cfg.Build.LDFlags,
	})

	if clean {
		info("Cleaning output directory...")
		if err := compiler.Clean(); err != nil {
			return err
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	info("Building %s...", cfg.Build.Entry)
	result := compiler.Build(ctx)
	if !result.Success {
		return result.Error
	}

	success("Build complete in %s", result.Duration.Round(time.Millisecond))
	fmt.Println()
	fmt.Println("  Output:")
	fmt.Printf("    %s\n", compiler.WasmPath())
	fmt.Printf("    %s\n", compiler.WasmExecPath())
	fmt.Println()

	return nil
}
