package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/popover"
	"github.com/vango-dev/popover/internal/errors"
	"github.com/vango-dev/popover/pkg/placement"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "popover.json"

	// YAMLConfigFileName is the name of the YAML configuration file.
	YAMLConfigFileName = "popover.yaml"

	// DefaultPort is the default development server port.
	DefaultPort = 3000

	// DefaultHost is the default development server host.
	DefaultHost = "localhost"

	// DefaultOutput is the default build output directory.
	DefaultOutput = "dist"

	// DefaultEntry is the default package compiled to WebAssembly.
	DefaultEntry = "./cmd/popover-wasm"

	// ElementID is the id of the page script element that carries the
	// popover section as JSON for the client.
	ElementID = "popover-config"
)

// Config represents the complete popover configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Server contains development server configuration.
	Server ServerConfig `json:"server" yaml:"server"`

	// Build contains WebAssembly build configuration.
	Build BuildConfig `json:"build" yaml:"build"`

	// Watch contains file watching configuration.
	Watch WatchConfig `json:"watch" yaml:"watch"`

	// Popover contains the directive defaults handed to the client.
	Popover PopoverConfig `json:"popover" yaml:"popover"`

	// Publish configures uploads of the built client.
	Publish PublishConfig `json:"publish,omitempty" yaml:"publish,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains development server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the port to run the dev server on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// HotReload reloads connected pages after a rebuild.
	HotReload bool `json:"hotReload" yaml:"hotReload"`

	// Advertise announces the playground on the local network over mDNS.
	Advertise bool `json:"advertise,omitempty" yaml:"advertise,omitempty"`
}

// BuildConfig contains WebAssembly build settings.
type BuildConfig struct {
	// Output is the output directory for builds.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Entry is the main package compiled with GOOS=js GOARCH=wasm.
	Entry string `json:"entry,omitempty" yaml:"entry,omitempty"`

	// Tags are build tags to pass to go build.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// LDFlags are additional linker flags for go build.
	LDFlags string `json:"ldflags,omitempty" yaml:"ldflags,omitempty"`
}

// WatchConfig contains file watching settings.
type WatchConfig struct {
	// Paths are the directories watched for changes.
	Paths []string `json:"paths,omitempty" yaml:"paths,omitempty"`

	// Ignore contains doublestar patterns, relative to the project
	// directory, that never trigger a rebuild.
	Ignore []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`
}

// PublishConfig configures the S3 bucket the client is published to.
type PublishConfig struct {
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`

	// Prefix is prepended to object keys.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`

	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// Endpoint overrides the S3 endpoint for compatible stores.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	CacheControl string `json:"cacheControl,omitempty" yaml:"cacheControl,omitempty"`
}

// PopoverConfig holds directive defaults.
type PopoverConfig struct {
	// Placement is the placement used by triggers without an argument.
	Placement string `json:"placement,omitempty" yaml:"placement,omitempty"`

	Offset      float64 `json:"offset" yaml:"offset"`
	Padding     float64 `json:"padding" yaml:"padding"`
	FadeMs      int     `json:"fadeMs" yaml:"fadeMs"`
	AutoCloseMs int     `json:"autoCloseMs" yaml:"autoCloseMs"`
	ZIndex      int     `json:"zIndex" yaml:"zIndex"`
	ClassName   string  `json:"className" yaml:"className"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:      DefaultHost,
			Port:      DefaultPort,
			HotReload: true,
		},
		Build: BuildConfig{
			Output: DefaultOutput,
			Entry:  DefaultEntry,
		},
		Watch: WatchConfig{
			Paths:  []string{"."},
			Ignore: []string{DefaultOutput + "/**", ".git/**", "**/*_test.go"},
		},
		Popover: PopoverConfig{
			Placement:   string(placement.Default),
			Offset:      popover.DefaultOffset,
			Padding:     popover.DefaultPadding,
			FadeMs:      int(popover.DefaultFadeDuration / time.Millisecond),
			AutoCloseMs: int(popover.DefaultAutoCloseDelay / time.Millisecond),
			ZIndex:      popover.DefaultZIndex,
			ClassName:   popover.DefaultClassName,
		},
	}
}

// Find returns the path of the configuration file in dir, preferring
// popover.json over popover.yaml.
func Find(dir string) (string, bool) {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName, "popover.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// Load reads configuration from the specified directory.
// It looks for popover.json, then popover.yaml in the directory.
func Load(dir string) (*Config, error) {
	path, ok := Find(dir)
	if !ok {
		return nil, errors.New("P020").
			WithDetail("No popover.json or popover.yaml found in " + dir).
			WithSuggestion("Run 'popover init' to create one")
	}
	return LoadFile(path)
}

// LoadFile reads configuration from the specified file path. Files ending
// in .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("P020").
				WithDetail("No configuration file at " + path).
				WithSuggestion("Run 'popover init' to create one")
		}
		return nil, errors.New("P020").Wrap(err)
	}

	cfg, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	cfg.configPath = path
	return cfg, nil
}

// Parse decodes configuration data. source names the file and selects the
// format by extension.
func Parse(data []byte, source string) (*Config, error) {
	cfg := New()
	if isYAML(source) {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return nil, errors.New("P021").
				WithDetail("Failed to parse " + filepath.Base(source) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid YAML")
		}
	} else {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("P021").
				WithDetail("Failed to parse " + filepath.Base(source) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid JSON")
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, in YAML if the
// path ends in .yaml or .yml.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		// Add newline at end of file
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("P022").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("P022").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Build.Output == "" {
		c.Build.Output = DefaultOutput
	}
	if c.Build.Entry == "" {
		c.Build.Entry = DefaultEntry
	}
	if len(c.Watch.Paths) == 0 {
		c.Watch.Paths = []string{"."}
	}
	if c.Popover.Placement == "" {
		c.Popover.Placement = string(placement.Default)
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var problems []string
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		problems = append(problems, "server.port must be between 0 and 65535")
	}
	if _, ok := placement.Parse(c.Popover.Placement); !ok {
		problems = append(problems, "popover.placement "+strconv.Quote(c.Popover.Placement)+" is not a placement")
	}
	if c.Popover.Offset < 0 {
		problems = append(problems, "popover.offset must not be negative")
	}
	if c.Popover.Padding < 0 {
		problems = append(problems, "popover.padding must not be negative")
	}
	if c.Popover.FadeMs < 0 || c.Popover.AutoCloseMs < 0 {
		problems = append(problems, "popover.fadeMs and popover.autoCloseMs must not be negative")
	}

	if len(problems) > 0 {
		return errors.New("P021").
			WithDetail(strings.Join(problems, "; "))
	}
	return nil
}

// Options converts the popover section into directive options.
func (p PopoverConfig) Options() popover.Options {
	opts := popover.DefaultOptions()
	opts.Placement = placement.Placement(p.Placement)
	opts.Offset = p.Offset
	opts.Padding = p.Padding
	opts.FadeDuration = time.Duration(p.FadeMs) * time.Millisecond
	opts.AutoCloseDelay = time.Duration(p.AutoCloseMs) * time.Millisecond
	opts.ZIndex = p.ZIndex
	opts.ClassName = p.ClassName
	return opts
}

// JSON returns the popover section as JSON, for embedding in pages.
func (p PopoverConfig) JSON() string {
	b, _ := json.Marshal(p)
	return string(b)
}

// DevAddress returns the address string for the dev server.
func (c *Config) DevAddress() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// DevURL returns the full URL for the dev server.
func (c *Config) DevURL() string {
	return "http://" + c.DevAddress()
}

// OutputPath returns the absolute path to the build output directory.
func (c *Config) OutputPath() string {
	return c.resolve(c.Build.Output)
}

// WatchPaths returns the watched directories resolved against the config
// directory.
func (c *Config) WatchPaths() []string {
	out := make([]string, len(c.Watch.Paths))
	for i, p := range c.Watch.Paths {
		out[i] = c.resolve(p)
	}
	return out
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, ok := Find(dir)
	return ok
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing the config file, or an error if not
// found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("P020").
				WithDetail("No popover.json found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'popover init' to create one")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the project containing the
// current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
