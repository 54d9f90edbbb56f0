package main

import (
	"context"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/popover/internal/config"
	"github.com/vango-dev/popover/internal/dev"
)

func serveCmd() *cobra.Command {
	var (
		port      int
		host      string
		noReload  bool
		advertise bool
	)

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"dev"},
		Short:   "Start the playground server",
		Long: `Build the client and serve the playground page.

The server watches the project, rebuilds the client when Go files
change, and refreshes connected browsers.

Examples:
  popover serve
  popover serve --port=8080
  popover serve --no-reload
  popover serve --host=0.0.0.0 --advertise`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host, noReload, advertise)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from popover.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from popover.json)")
	cmd.Flags().BoolVar(&noReload, "no-reload", false, "Disable hot reload")
	cmd.Flags().BoolVar(&advertise, "advertise", false, "Announce the playground on the local network (mDNS)")

	return cmd
}

func runServe(port int, host string, noReload, advertise bool) error {
	if _, err := exec.LookPath("go"); err != nil {
		warn("Go is not installed or not in PATH")
		info("Install Go from https://go.dev/dl/")
		return err
	}

	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	if port > 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if noReload {
		cfg.Server.HotReload = false
	}
	if advertise {
		cfg.Server.Advertise = true
	}

	server := dev.NewServer(dev.ServerOptions{
		Config: cfg,
		Logger: newLogger(),
		OnBuildComplete: func(result dev.BuildResult) {
			if result.Success {
				success("Built in %s", result.Duration.Round(time.Millisecond))
			}
		},
		OnReload: func(clients int) {
			success("Reloaded %d browsers", clients)
		},
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	info("Serving %s", cfg.DevURL())
	return server.Start(ctx)
}
