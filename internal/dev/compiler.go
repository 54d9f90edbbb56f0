package dev

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/vango-dev/popover/internal/errors"
)

const (
	// WasmFileName is the name of the compiled client module.
	WasmFileName = "main.wasm"

	// WasmExecFileName is the Go WebAssembly support script.
	WasmExecFileName = "wasm_exec.js"
)

// CompilerConfig configures the WebAssembly compiler.
type CompilerConfig struct {
	// ProjectPath is the root directory of the project.
	ProjectPath string

	// OutputDir is where main.wasm and wasm_exec.js are written.
	OutputDir string

	// Entry is the main package to compile, relative to ProjectPath.
	Entry string

	// Tags are build tags to pass to go build.
	Tags []string

	// LDFlags are linker flags to pass to go build.
	LDFlags string

	// GoRoot locates wasm_exec.js. If empty, "go env GOROOT" is used.
	GoRoot string

	// Env are additional environment variables.
	Env []string
}

// BuildResult contains the result of a build.
type BuildResult struct {
	// Success indicates if the build succeeded.
	Success bool

	// Duration is how long the build took.
	Duration time.Duration

	// Output is the compiler output.
	Output string

	// Error is the build error, if any.
	Error error
}

// Compiler builds the client module with GOOS=js GOARCH=wasm.
type Compiler struct {
	config CompilerConfig
}

// NewCompiler creates a new WebAssembly compiler.
func NewCompiler(config CompilerConfig) *Compiler {
	if config.OutputDir == "" {
		config.OutputDir = filepath.Join(config.ProjectPath, "dist")
	}
	if config.Entry == "" {
		config.Entry = "."
	}
	return &Compiler{config: config}
}

// WasmPath returns the path of the compiled module.
func (c *Compiler) WasmPath() string {
	return filepath.Join(c.config.OutputDir, WasmFileName)
}

// WasmExecPath returns the path of the copied support script.
func (c *Compiler) WasmExecPath() string {
	return filepath.Join(c.config.OutputDir, WasmExecFileName)
}

// args returns the go build arguments.
func (c *Compiler) args() []string {
	args := []string{"build", "-o", c.WasmPath()}
	if len(c.config.Tags) > 0 {
		args = append(args, "-tags", strings.Join(c.config.Tags, ","))
	}
	if c.config.LDFlags != "" {
		args = append(args, "-ldflags", c.config.LDFlags)
	}
	return append(args, c.config.Entry)
}

// env returns the build environment.
func (c *Compiler) env() []string {
	env := append(os.Environ(), "GOOS=js", "GOARCH=wasm")
	return append(env, c.config.Env...)
}

// Build compiles the client module and refreshes wasm_exec.js next to it.
func (c *Compiler) Build(ctx context.Context) BuildResult {
	start := time.Now()

	if err := os.MkdirAll(c.config.OutputDir, 0755); err != nil {
		return BuildResult{
			Duration: time.Since(start),
			Error:    errors.New("P030").Wrap(err),
		}
	}

	cmd := exec.CommandContext(ctx, "go", c.args()...)
	cmd.Dir = c.config.ProjectPath
	cmd.Env = c.env()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	output := stderr.String()
	if output == "" {
		output = stdout.String()
	}

	if err != nil {
		return BuildResult{
			Duration: time.Since(start),
			Output:   output,
			Error:    errors.New("P030").WithDetail(output).Wrap(err),
		}
	}

	if err := c.copyWasmExec(ctx); err != nil {
		return BuildResult{
			Duration: time.Since(start),
			Output:   output,
			Error:    err,
		}
	}

	return BuildResult{
		Success:  true,
		Duration: time.Since(start),
		Output:   output,
	}
}

func (c *Compiler) copyWasmExec(ctx context.Context) error {
	goroot := c.config.GoRoot
	if goroot == "" {
		out, err := exec.CommandContext(ctx, "go", "env", "GOROOT").Output()
		if err != nil {
			return errors.New("P031").Wrap(err)
		}
		goroot = strings.TrimSpace(string(out))
	}

	src, err := FindWasmExec(goroot)
	if err != nil {
		return err
	}
	return copyFile(src, c.WasmExecPath())
}

// FindWasmExec locates wasm_exec.js in a Go installation. Go 1.24 moved it
// from misc/wasm to lib/wasm.
func FindWasmExec(goroot string) (string, error) {
	for _, dir := range []string{"lib/wasm", "misc/wasm"} {
		path := filepath.Join(goroot, filepath.FromSlash(dir), WasmExecFileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", errors.New("P031").WithDetailf("searched %s", goroot)
}

// Clean removes the build output.
func (c *Compiler) Clean() error {
	for _, path := range []string{c.WasmPath(), c.WasmExecPath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.New("P031").Wrap(err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.New("P030").Wrap(err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.New("P030").Wrap(err)
	}
	return out.Close()
}
