// Command mixer-demo opens the audio device described by a YAML config, plays
// the configured sounds with a couple of Go effects attached, and reports what
// the mixer did.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"golang.org/x/sync/errgroup"

	mixer "github.com/aspect-build/mixer-go"
	"github.com/aspect-build/mixer-go/internal/config"
	"github.com/aspect-build/mixer-go/pcm"
)

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "mixer.yaml", "path to the YAML configuration file")
	goDecode := flag.Bool("decode", false, "decode sounds in Go instead of with the native decoders")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mixer-demo: %v\n", err)
		return 1
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel.Level()}))
	slog.SetDefault(logger)
	mixer.SetLogger(logger)

	// ── Metrics ───────────────────────────────────────────────────────────────
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())
	if _, err := mixer.RegisterMetrics(mp); err != nil {
		slog.Error("failed to register metrics", "err", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := play(ctx, cfg, *goDecode); err != nil {
		slog.Error("mixer-demo failed", "err", err)
		return 1
	}
	reportMetrics(reader)
	return 0
}

func play(ctx context.Context, cfg *config.Config, goDecode bool) error {
	flags, err := cfg.InitFlags()
	if err != nil {
		return err
	}
	mctx, err := mixer.Init(flags)
	if err != nil {
		return err
	}
	defer mctx.Close()

	format, err := cfg.Device.AudioFormat()
	if err != nil {
		return err
	}
	if err := mixer.OpenAudio(cfg.Device.Frequency, format, cfg.Device.Channels, cfg.Device.ChunkSize); err != nil {
		return err
	}
	defer mixer.CloseAudio()

	spec, err := mixer.QuerySpec()
	if err != nil {
		return err
	}
	slog.Info("audio device open",
		"mixer_version", mixer.LinkedVersion(),
		"frequency", spec.Frequency,
		"format", spec.Format,
		"channels", spec.Channels,
		"initialized", mctx.Flags(),
		"chunk_decoders", mixer.ChunkDecoders(),
		"music_decoders", mixer.MusicDecoders(),
		"go_decoders", mixer.GoDecoders(),
	)
	mixer.AllocateChannels(cfg.Channels)

	chunks, err := loadSounds(ctx, cfg.Sounds, spec, goDecode)
	if err != nil {
		return err
	}
	defer func() {
		mixer.AllChannels.Halt()
		for _, c := range chunks {
			c.Close()
		}
	}()

	finished := make(chan mixer.Channel, cfg.Channels)
	mixer.SetChannelFinished(func(ch mixer.Channel) {
		select {
		case finished <- ch:
		default:
		}
	})
	defer mixer.UnsetChannelFinished()

	meter := &mixer.LevelMeter[int16]{}
	if spec.Format.SampleWidth() == 2 {
		if err := mixer.RegisterEffect[int16](mixer.PostChannel, meter); err != nil {
			return err
		}
	}

	if cfg.Music != "" {
		music, err := mixer.LoadMusic(cfg.Music)
		if err != nil {
			return err
		}
		defer music.Close()
		if err := music.FadeIn(0, 500); err != nil {
			return err
		}
		slog.Info("music started", "path", cfg.Music, "type", music.Type())
	}

	playing := 0
	for i, chunk := range chunks {
		ch, err := mixer.AllChannels.Play(chunk, 0)
		if err != nil {
			slog.Warn("could not play sound", "path", cfg.Sounds[i], "err", err)
			continue
		}
		playing++
		if spec.Channels == 2 && spec.Format.SampleWidth() == 2 {
			// Alternate sounds between the left and right side.
			left, right := float32(1), float32(0.4)
			if i%2 == 1 {
				left, right = right, left
			}
			if err := mixer.RegisterEffect[int16](ch, mixer.NewStereoGain[int16](left, right)); err != nil {
				slog.Warn("could not attach stereo gain", "channel", int(ch), "err", err)
			}
		}
		slog.Debug("sound started", "path", cfg.Sounds[i], "channel", int(ch))
	}

	timeout := time.After(cfg.PlayDuration())
	for playing > 0 {
		select {
		case ch := <-finished:
			playing--
			slog.Info("channel finished", "channel", int(ch), "remaining", playing)
		case <-timeout:
			slog.Info("play time elapsed", "still_playing", mixer.PlayingChannels())
			return nil
		case <-ctx.Done():
			slog.Info("interrupted")
			return nil
		}
	}
	if spec.Format.SampleWidth() == 2 {
		slog.Info("output level", "peak", meter.Peak(), "buffers", meter.Buffers())
	}
	return nil
}

// loadSounds reads the sound files in parallel and hands them to the mixer in
// order. With goDecode the files are decoded and converted to the device
// format in Go as well.
func loadSounds(ctx context.Context, paths []string, spec mixer.Spec, goDecode bool) ([]*mixer.Chunk, error) {
	raw := make([][]byte, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if !goDecode {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				raw[i] = data
				return nil
			}
			data, err := decodeFile(path, spec)
			if err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(path), err)
			}
			raw[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	chunks := make([]*mixer.Chunk, 0, len(paths))
	for i, data := range raw {
		var (
			chunk *mixer.Chunk
			err   error
		)
		if goDecode {
			chunk, err = mixer.LoadChunkFromPCM(data)
		} else {
			chunk, err = mixer.LoadChunkFromMemory(data)
		}
		if err != nil {
			for _, c := range chunks {
				c.Close()
			}
			return nil, fmt.Errorf("%s: %w", paths[i], err)
		}
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}

func decodeFile(path string, spec mixer.Spec) ([]byte, error) {
	format := pcm.FormatFromPath(path)
	if format == "" {
		return nil, pcm.ErrUnknownFormat
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := pcm.DefaultRegistry().Decode(f, format)
	if err != nil {
		return nil, err
	}
	if buf.Format.SampleRate != spec.Frequency {
		return nil, fmt.Errorf("%w: %d Hz, device is %d Hz", mixer.ErrRateMismatch, buf.Format.SampleRate, spec.Frequency)
	}
	return pcm.Encode(buf, spec.Format.Encoding(), spec.Channels)
}

func reportMetrics(reader *sdkmetric.ManualReader) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		if !errors.Is(err, sdkmetric.ErrReaderShutdown) {
			slog.Warn("collecting metrics failed", "err", err)
		}
		return
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					slog.Info("metric", "name", m.Name, "value", dp.Value)
				}
			case metricdata.Gauge[int64]:
				for _, dp := range data.DataPoints {
					slog.Info("metric", "name", m.Name, "value", dp.Value)
				}
			}
		}
	}
}
