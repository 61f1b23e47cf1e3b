// Package config loads the YAML configuration of the mixer demo.
package config

import (
	"log/slog"
	"time"

	mixer "github.com/aspect-build/mixer-go"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Level maps l to its slog level. Unknown values map to info.
func (l LogLevel) Level() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config is the root configuration.
type Config struct {
	LogLevel LogLevel `yaml:"log_level"`

	// Device is the requested output format.
	Device Device `yaml:"device"`

	// Init names the decoder libraries to load: flac, mod, mp3, ogg, mid, opus.
	Init []string `yaml:"init"`

	// Channels is the number of mixing channels to allocate.
	Channels int `yaml:"channels"`

	// Sounds are sample files played once each, on free channels.
	Sounds []string `yaml:"sounds"`

	// Music is an optional track streamed while the sounds play.
	Music string `yaml:"music"`

	// PlaySeconds is how long the demo runs before shutting down.
	PlaySeconds float64 `yaml:"play_seconds"`
}

// Device is the requested audio device format.
type Device struct {
	Frequency int    `yaml:"frequency"`
	Format    string `yaml:"format"`
	Channels  int    `yaml:"channels"`
	ChunkSize int    `yaml:"chunk_size"`
}

// AudioFormat parses the configured sample format.
func (d Device) AudioFormat() (mixer.AudioFormat, error) {
	return mixer.ParseAudioFormat(d.Format)
}

// InitFlags combines the configured decoder names.
func (c *Config) InitFlags() (mixer.InitFlag, error) {
	var flags mixer.InitFlag
	for _, name := range c.Init {
		f, err := mixer.ParseInitFlag(name)
		if err != nil {
			return 0, err
		}
		flags |= f
	}
	return flags, nil
}

// PlayDuration returns PlaySeconds as a duration.
func (c *Config) PlayDuration() time.Duration {
	return time.Duration(c.PlaySeconds * float64(time.Second))
}

// Default values applied to unset fields.
const (
	DefaultChunkSize   = 1024
	DefaultChannels    = 8
	DefaultPlaySeconds = 3
)

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = LogInfo
	}
	if c.Device.Frequency == 0 {
		c.Device.Frequency = mixer.DefaultFrequency
	}
	if c.Device.Format == "" {
		c.Device.Format = "s16sys"
	}
	if c.Device.Channels == 0 {
		c.Device.Channels = mixer.DefaultChannels
	}
	if c.Device.ChunkSize == 0 {
		c.Device.ChunkSize = DefaultChunkSize
	}
	if c.Channels == 0 {
		c.Channels = DefaultChannels
	}
	if c.PlaySeconds == 0 {
		c.PlaySeconds = DefaultPlaySeconds
	}
}
