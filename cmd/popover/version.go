package main

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// buildInfo describes the running binary. Values set through -ldflags win;
// otherwise they come from the module and VCS data the go tool embeds.
type buildInfo struct {
	Module   string
	Version  string
	Revision string
	Time     string
	Modified bool
	Go       string
	Deps     []*debug.Module
}

func readBuildInfo() buildInfo {
	bi, _ := debug.ReadBuildInfo()
	return resolveBuild(bi)
}

func resolveBuild(bi *debug.BuildInfo) buildInfo {
	info := buildInfo{Version: version, Revision: commit, Time: date, Go: runtime.Version()}
	if bi == nil {
		return info
	}
	info.Module = bi.Main.Path
	info.Deps = bi.Deps
	if bi.GoVersion != "" {
		info.Go = bi.GoVersion
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Revision == "none" {
				info.Revision = s.Value
			}
		case "vcs.time":
			if info.Time == "unknown" {
				info.Time = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

func (b buildInfo) write(w io.Writer, deps bool) {
	rev := b.Revision
	if b.Modified {
		rev += " (modified)"
	}
	if b.Module != "" {
		fmt.Fprintf(w, "  Module:     %s\n", b.Module)
	}
	fmt.Fprintf(w, "  Version:    %s\n", b.Version)
	fmt.Fprintf(w, "  Revision:   %s\n", rev)
	fmt.Fprintf(w, "  Built:      %s\n", b.Time)
	fmt.Fprintf(w, "  Go version: %s\n", b.Go)
	fmt.Fprintf(w, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if !deps {
		return
	}
	for _, d := range b.Deps {
		if d.Replace != nil {
			d = d.Replace
		}
		fmt.Fprintf(w, "  %s %s\n", d.Path, d.Version)
	}
}

func versionCmd() *cobra.Command {
	var (
		short bool
		deps  bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			info := readBuildInfo()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return
			}
			info.write(cmd.OutOrStdout(), deps)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only the version")
	cmd.Flags().BoolVar(&deps, "deps", false, "Also list the modules compiled in")

	return cmd
}
