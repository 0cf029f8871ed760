// Package config загружает rscanon.toml: значения по умолчанию для CLI.
// Флаги командной строки всегда перекрывают файл.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest looked up from the working directory upwards.
const FileName = "rscanon.toml"

// Output - секция [output].
type Output struct {
	Format string `toml:"format"` // json | msgpack
	Indent int    `toml:"indent"`
}

// Batch - секция [batch].
type Batch struct {
	Jobs    int      `toml:"jobs"`
	Exclude []string `toml:"exclude"` // glob-паттерны относительно корня обхода
	UI      string   `toml:"ui"`
}

// Diagnostics - секция [diagnostics].
type Diagnostics struct {
	Color    string `toml:"color"`
	Max      int    `toml:"max"`
	PathMode string `toml:"path_mode"`
}

// Trace - секция [trace].
type Trace struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

// Config is the decoded manifest. Zero values mean "not set".
type Config struct {
	Path        string      `toml:"-"`
	Output      Output      `toml:"output"`
	Batch       Batch       `toml:"batch"`
	Diagnostics Diagnostics `toml:"diagnostics"`
	Trace       Trace       `toml:"trace"`

	meta toml.MetaData
}

var (
	// ErrInvalid marks a manifest with out-of-range or unknown values.
	ErrInvalid = errors.New("invalid config")
)

// Find walks up from startDir to locate rscanon.toml.
func Find(startDir string) (path string, ok bool, err error) {
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

// Load decodes and validates the manifest at path.
func Load(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg.Path = path
	cfg.meta = meta
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: %w: unknown keys %s", path, ErrInvalid, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Discover loads explicit when non-empty, otherwise the nearest rscanon.toml
// above startDir. Missing manifest yields an empty Config.
func Discover(explicit, startDir string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Config{}, nil
	}
	return Load(path)
}

// IsDefined reports whether the manifest set the given key path,
// e.g. IsDefined("output", "indent"). Нужен, чтобы отличить indent = 0 от отсутствия.
func (c *Config) IsDefined(key ...string) bool {
	if c == nil || c.Path == "" {
		return false
	}
	return c.meta.IsDefined(key...)
}

func (c *Config) validate() error {
	switch c.Output.Format {
	case "", "json", "msgpack":
	default:
		return fmt.Errorf("%w: output.format %q (want json or msgpack)", ErrInvalid, c.Output.Format)
	}
	if c.Output.Indent < 0 || c.Output.Indent > 16 {
		return fmt.Errorf("%w: output.indent %d out of range 0..16", ErrInvalid, c.Output.Indent)
	}
	if c.Batch.Jobs < 0 {
		return fmt.Errorf("%w: batch.jobs must not be negative", ErrInvalid)
	}
	for _, pattern := range c.Batch.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("%w: batch.exclude %q: %w", ErrInvalid, pattern, err)
		}
	}
	for key, val := range map[string]string{"batch.ui": c.Batch.UI, "diagnostics.color": c.Diagnostics.Color} {
		switch val {
		case "", "auto", "on", "off":
		default:
			return fmt.Errorf("%w: %s %q (want auto, on or off)", ErrInvalid, key, val)
		}
	}
	if c.Diagnostics.Max < 0 {
		return fmt.Errorf("%w: diagnostics.max must not be negative", ErrInvalid)
	}
	return nil
}
