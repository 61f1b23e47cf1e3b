// Package mixer provides Go bindings for the SDL2_mixer audio mixing library.
//
// SDL2_mixer plays sample chunks on a fixed number of channels, streams one
// music track, and applies per-channel effects (panning, distance, position,
// reverse stereo and user supplied effects) on its own realtime audio thread.
//
// # Basic Usage
//
//	import mixer "github.com/aspect-build/mixer-go"
//
//	ctx, err := mixer.Init(mixer.InitOGG | mixer.InitMP3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctx.Close()
//
//	if err := mixer.OpenAudio(44100, mixer.AudioS16LSB, 2, 1024); err != nil {
//	    log.Fatal(err)
//	}
//	defer mixer.CloseAudio()
//
//	chunk, err := mixer.LoadChunk("blip.wav")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer chunk.Close()
//
//	ch, err := mixer.AllChannels.Play(chunk, 0)
//
// # Callbacks and Threads
//
// Effects registered with RegisterEffect and the functions installed with
// SetChannelFinished and HookMusicFinished run on the mixer's audio thread,
// not on the goroutine that installed them. They must not block and must not
// call back into this package.
//
// The package needs cgo and the SDL2_mixer development files. Without cgo it
// still builds, and every call fails with ErrNoEngine.
package mixer

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	SetLogger(nil)
}

// SetLogger replaces the logger used by the binding. A nil logger restores
// slog.Default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	logger.Store(l.With("component", "mixer"))
}

func log() *slog.Logger {
	return logger.Load()
}

// Version is a native library version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// String returns the version as a formatted string.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// LinkedVersion returns the version of the dynamically linked SDL2_mixer.
func LinkedVersion() Version {
	return mix.LinkedVersion()
}

// Context keeps the decoder libraries loaded by Init. Close unloads them.
type Context struct {
	flags  InitFlag
	closed atomic.Bool
}

// Flags returns the flags that were initialized.
func (c *Context) Flags() InitFlag {
	return c.flags
}

// Close unloads the decoder libraries.
func (c *Context) Close() error {
	if c.closed.CompareAndSwap(false, true) {
		mix.Quit()
	}
	return nil
}

// Init loads the decoder libraries selected by flags. It fails unless every
// requested flag is supported; the error names the missing ones.
func Init(flags InitFlag) (*Context, error) {
	if !engineAvailable() {
		return nil, ErrNoEngine
	}
	got := InitFlag(mix.Init(int(flags)))
	if got&flags == flags {
		return &Context{flags: got}, nil
	}
	// Mix_Init does not always set the error text for unsupported flags.
	if mix.GetError() == "" {
		mix.SetError("could not initialize: " + (flags &^ got).String())
	}
	err := lastError("init")
	log().Debug("init failed", "requested", flags, "initialized", got, "err", err)
	return nil, err
}

// OpenAudio opens the mixer with the given format. chunkSize is the number of
// sample frames per mixing buffer.
func OpenAudio(frequency int, format AudioFormat, channels, chunkSize int) error {
	if mix.OpenAudio(frequency, uint16(format), channels, chunkSize) != 0 {
		return lastError("open audio")
	}
	return nil
}

// CloseAudio shuts down the mixer. Every playing channel is halted first, so
// registered effects are released.
func CloseAudio() {
	mix.CloseAudio()
}

// QuerySpec returns the format actually in use by the opened device.
func QuerySpec() (Spec, error) {
	freq, format, channels, opened := mix.QuerySpec()
	if opened == 0 {
		return Spec{}, lastError("query spec")
	}
	return Spec{Frequency: freq, Format: AudioFormat(format), Channels: channels}, nil
}

// AllocateChannels sets the number of channels being mixed and returns the
// number now allocated. A negative n only queries.
func AllocateChannels(n int) int {
	return mix.AllocateChannels(n)
}

// ReserveChannels keeps the first n channels from being picked when playing
// on AllChannels. It returns the number reserved.
func ReserveChannels(n int) int {
	return mix.ReserveChannels(n)
}

// PlayingChannels returns how many channels are currently playing.
func PlayingChannels() int {
	return mix.Playing(int(AllChannels))
}

// PausedChannels returns how many channels are currently paused.
func PausedChannels() int {
	return mix.Paused(int(AllChannels))
}

// NumChunkDecoders returns the number of sample decoders available.
func NumChunkDecoders() int {
	return mix.NumChunkDecoders()
}

// ChunkDecoder returns the name of the indexed sample decoder.
func ChunkDecoder(index int) string {
	return mix.ChunkDecoder(index)
}

// NumMusicDecoders returns the number of music decoders available.
func NumMusicDecoders() int {
	return mix.NumMusicDecoders()
}

// MusicDecoder returns the name of the indexed music decoder.
func MusicDecoder(index int) string {
	return mix.MusicDecoder(index)
}

// ChunkDecoders returns the names of all sample decoders.
func ChunkDecoders() []string {
	return decoderNames(mix.NumChunkDecoders(), mix.ChunkDecoder)
}

// MusicDecoders returns the names of all music decoders.
func MusicDecoders() []string {
	return decoderNames(mix.NumMusicDecoders(), mix.MusicDecoder)
}

// HasChunkDecoder reports whether a sample decoder with the given name exists.
func HasChunkDecoder(name string) bool {
	return hasDecoder(ChunkDecoders(), name)
}

// HasMusicDecoder reports whether a music decoder with the given name exists.
func HasMusicDecoder(name string) bool {
	return hasDecoder(MusicDecoders(), name)
}

func decoderNames(n int, name func(int) string) []string {
	names := make([]string, 0, n)
	for i := 0; i < n; i++ {
		names = append(names, name(i))
	}
	return names
}

func hasDecoder(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// keepAlive prevents the GC from collecting an object while native code is using it.
func keepAlive(obj interface{}) {
	runtime.KeepAlive(obj)
}
