package mixer

import (
	"context"
	"sync/atomic"

	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope of the binding's metrics.
const meterName = "github.com/aspect-build/mixer-go"

// stats is written from the audio thread with plain atomic adds and read by
// the metric callback at collection time.
var stats struct {
	effectsRegistered atomic.Int64
	effectsReleased   atomic.Int64
	effectBuffers     atomic.Int64
	effectPanics      atomic.Int64
	channelFinished   atomic.Int64
	musicFinished     atomic.Int64
}

// RegisterMetrics publishes the binding's counters on mp. The instruments are
// asynchronous, so the audio thread never calls into the metrics SDK.
// Unregister the returned registration to stop reporting.
func RegisterMetrics(mp metric.MeterProvider) (metric.Registration, error) {
	m := mp.Meter(meterName)

	registered, err := m.Int64ObservableCounter("mixer.effects.registered",
		metric.WithDescription("Effects handed to the mixer."))
	if err != nil {
		return nil, err
	}
	released, err := m.Int64ObservableCounter("mixer.effects.released",
		metric.WithDescription("Effects released after their channel halted or was cleared."))
	if err != nil {
		return nil, err
	}
	active, err := m.Int64ObservableGauge("mixer.effects.active",
		metric.WithDescription("Effects currently registered."))
	if err != nil {
		return nil, err
	}
	buffers, err := m.Int64ObservableCounter("mixer.effects.buffers",
		metric.WithDescription("Mixing buffers passed through user effects."))
	if err != nil {
		return nil, err
	}
	panics, err := m.Int64ObservableCounter("mixer.effects.panics",
		metric.WithDescription("Effects muted after panicking."))
	if err != nil {
		return nil, err
	}
	channelDone, err := m.Int64ObservableCounter("mixer.hooks.channel_finished",
		metric.WithDescription("Channel finished notifications delivered to the hook."))
	if err != nil {
		return nil, err
	}
	musicDone, err := m.Int64ObservableCounter("mixer.hooks.music_finished",
		metric.WithDescription("Music finished notifications delivered to the hook."))
	if err != nil {
		return nil, err
	}

	return m.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		reg := stats.effectsRegistered.Load()
		rel := stats.effectsReleased.Load()
		o.ObserveInt64(registered, reg)
		o.ObserveInt64(released, rel)
		o.ObserveInt64(active, reg-rel)
		o.ObserveInt64(buffers, stats.effectBuffers.Load())
		o.ObserveInt64(panics, stats.effectPanics.Load())
		o.ObserveInt64(channelDone, stats.channelFinished.Load())
		o.ObserveInt64(musicDone, stats.musicFinished.Load())
		return nil
	}, registered, released, active, buffers, panics, channelDone, musicDone)
}
