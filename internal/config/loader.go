package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aspect-build/mixer-go/pcm"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config] with defaults applied. Relative sound and music paths are resolved
// against the directory of path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, applies defaults and validates
// the result.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	cfg.ApplyDefaults()
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) resolve(dir string) {
	for i, s := range c.Sounds {
		if !filepath.IsAbs(s) {
			c.Sounds[i] = filepath.Join(dir, s)
		}
	}
	if c.Music != "" && !filepath.IsAbs(c.Music) {
		c.Music = filepath.Join(dir, c.Music)
	}
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	// Device
	if cfg.Device.Frequency < 0 {
		errs = append(errs, fmt.Errorf("device.frequency %d must be positive", cfg.Device.Frequency))
	}
	if _, err := cfg.Device.AudioFormat(); err != nil {
		errs = append(errs, fmt.Errorf("device.format: %w", err))
	}
	if cfg.Device.Channels < 0 || cfg.Device.Channels > 8 {
		errs = append(errs, fmt.Errorf("device.channels %d is out of range [1, 8]", cfg.Device.Channels))
	}
	if cfg.Device.ChunkSize < 0 {
		errs = append(errs, fmt.Errorf("device.chunk_size %d must be positive", cfg.Device.ChunkSize))
	}

	if _, err := cfg.InitFlags(); err != nil {
		errs = append(errs, fmt.Errorf("init: %w", err))
	}
	if cfg.Channels < 0 {
		errs = append(errs, fmt.Errorf("channels %d must not be negative", cfg.Channels))
	}
	if cfg.PlaySeconds < 0 {
		errs = append(errs, fmt.Errorf("play_seconds %.2f must not be negative", cfg.PlaySeconds))
	}

	seen := make(map[string]int, len(cfg.Sounds))
	for i, s := range cfg.Sounds {
		prefix := fmt.Sprintf("sounds[%d]", i)
		if strings.TrimSpace(s) == "" {
			errs = append(errs, fmt.Errorf("%s is empty", prefix))
			continue
		}
		if prev, ok := seen[s]; ok {
			slog.Warn("sound listed twice", "path", s, "first", prev, "again", i)
		}
		seen[s] = i
		if pcm.FormatFromPath(s) == "" {
			slog.Debug("sound has no Go decoder; only native loading will work", "path", s)
		}
	}

	return errors.Join(errs...)
}
