// Package config loads charj.toml, the per-project front-end settings.
//
//	[frontend]
//	max_diagnostics = 100
//	max_nesting = 256
//	max_token_length = 1048576
//
//	[output]
//	color = "auto"     # auto|on|off
//	context = 1
//	path_mode = "auto" # auto|absolute|relative|basename
//
// Missing keys keep their defaults; command-line flags override the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"
)

// FileName is the name looked up by Find.
const FileName = "charj.toml"

var (
	ErrUnknownKey   = errors.New("unknown key")
	ErrInvalidValue = errors.New("invalid value")
)

type Config struct {
	Frontend Frontend `toml:"frontend"`
	Output   Output   `toml:"output"`
}

type Frontend struct {
	MaxDiagnostics int    `toml:"max_diagnostics"`
	MaxNesting     int    `toml:"max_nesting"`
	MaxTokenLength uint32 `toml:"max_token_length"`
}

type Output struct {
	Color    string `toml:"color"`
	Context  int    `toml:"context"`
	PathMode string `toml:"path_mode"`
}

// ColorModes lists the accepted values of output.color.
var ColorModes = []string{"auto", "on", "off"}

var pathModes = []string{"auto", "absolute", "relative", "basename"}

// Default returns the settings used when no charj.toml exists.
func Default() Config {
	return Config{
		Frontend: Frontend{
			MaxDiagnostics: 100,
			MaxNesting:     256,
			MaxTokenLength: 1 << 20,
		},
		Output: Output{
			Color:    "auto",
			Context:  1,
			PathMode: "auto",
		},
	}
}

// Find walks up from startDir looking for charj.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path on top of Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := lo.Map(undecoded, func(k toml.Key, _ int) string { return k.String() })
		return Config{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	if err := cfg.validate(meta); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the nearest charj.toml. Without one it returns
// Default and an empty path.
func Discover(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return Default(), "", err
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}

func (c Config) validate(meta toml.MetaData) error {
	if meta.IsDefined("frontend", "max_diagnostics") && c.Frontend.MaxDiagnostics < 0 {
		return fmt.Errorf("%w: [frontend].max_diagnostics must be >= 0, got %d", ErrInvalidValue, c.Frontend.MaxDiagnostics)
	}
	if meta.IsDefined("frontend", "max_nesting") && c.Frontend.MaxNesting <= 0 {
		return fmt.Errorf("%w: [frontend].max_nesting must be > 0, got %d", ErrInvalidValue, c.Frontend.MaxNesting)
	}
	if meta.IsDefined("frontend", "max_token_length") && c.Frontend.MaxTokenLength == 0 {
		return fmt.Errorf("%w: [frontend].max_token_length must be > 0", ErrInvalidValue)
	}
	if meta.IsDefined("output", "color") && !lo.Contains(ColorModes, c.Output.Color) {
		return fmt.Errorf("%w: [output].color must be one of %s, got %q", ErrInvalidValue, strings.Join(ColorModes, "|"), c.Output.Color)
	}
	if meta.IsDefined("output", "context") && (c.Output.Context < 0 || c.Output.Context > 127) {
		return fmt.Errorf("%w: [output].context must be within 0..127, got %d", ErrInvalidValue, c.Output.Context)
	}
	if meta.IsDefined("output", "path_mode") && !lo.Contains(pathModes, c.Output.PathMode) {
		return fmt.Errorf("%w: [output].path_mode must be one of %s, got %q", ErrInvalidValue, strings.Join(pathModes, "|"), c.Output.PathMode)
	}
	return nil
}
