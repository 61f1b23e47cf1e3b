package mixer

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"unsafe"
)

// Sample is a sample type the mixer can hand to an effect. Its size must match
// the sample width of the opened device format (AudioS16LSB → int16, and so on).
type Sample interface {
	~uint8 | ~int8 | ~uint16 | ~int16 | ~int32 | ~float32
}

// Effect transforms a channel's audio in place once per mixing buffer.
//
// Process runs on the mixer's audio thread. The buffer holds interleaved
// samples and is only valid for the duration of the call. Process must not
// block, must not retain buf, and must not call into this package. If the
// effect needs to report data to the application it has to bring its own
// synchronization.
//
// An effect that implements io.Closer is closed exactly once when it is
// removed: after the channel halts, after UnregisterAllEffects, or when the
// registration itself fails.
type Effect[T Sample] interface {
	Process(buf []T)
}

// EffectFunc adapts a function to the Effect interface.
type EffectFunc[T Sample] func(buf []T)

// Process calls f(buf).
func (f EffectFunc[T]) Process(buf []T) {
	f(buf)
}

// boxedEffect is an Effect with its sample type erased.
type boxedEffect interface {
	process(raw []byte)
	release() error
	name() string
}

type typedEffect[T Sample] struct {
	effect Effect[T]
}

func (e *typedEffect[T]) process(raw []byte) {
	e.effect.Process(samplesOf[T](raw))
}

func (e *typedEffect[T]) release() error {
	if c, ok := e.effect.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (e *typedEffect[T]) name() string {
	return fmt.Sprintf("%T", e.effect)
}

// samplesOf reinterprets raw as a slice of T. The mixer always hands out
// whole, aligned samples; anything else means the device format and the
// effect's sample type disagree, and there is no way to report that back
// through the audio thread.
func samplesOf[T Sample](raw []byte) []T {
	var zero T
	width := int(unsafe.Sizeof(zero))
	if len(raw) == 0 {
		return nil
	}
	if len(raw)%width != 0 {
		panic(bufferShapeError(fmt.Sprintf("mixer: buffer of %d bytes is not a multiple of the %d-byte %T sample", len(raw), width, zero)))
	}
	p := unsafe.Pointer(unsafe.SliceData(raw))
	if uintptr(p)%unsafe.Alignof(zero) != 0 {
		panic(bufferShapeError(fmt.Sprintf("mixer: buffer is not aligned for %T samples", zero)))
	}
	return unsafe.Slice((*T)(p), len(raw)/width)
}

type effectEntry struct {
	channel Channel
	box     boxedEffect
	// muted is set once Process panicked; the entry stays registered until
	// the mixer removes it but is no longer called.
	muted atomic.Bool
}

var (
	effects     sync.Map // uintptr → *effectEntry
	effectToken atomic.Uintptr
)

// RegisterEffect attaches e to channel ch. The mixer calls e.Process for every
// buffer it mixes on ch while ch is playing, starting with the next one.
// Registering on an idle channel is allowed. Registering on PostChannel
// processes the final mix of all channels.
//
// RegisterEffect takes ownership of e. It is released (and closed, when it
// is an io.Closer) exactly once: when ch halts or finishes, when
// UnregisterAllEffects is called for ch, or right away if registration fails.
func RegisterEffect[T Sample](ch Channel, e Effect[T]) error {
	if e == nil {
		return ErrNilEffect
	}
	return registerBoxed(ch, &typedEffect[T]{effect: e}, sampleWidth[T]())
}

func sampleWidth[T Sample]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

func registerBoxed(ch Channel, box boxedEffect, width int) error {
	if spec, err := QuerySpec(); err == nil && spec.Format.SampleWidth() != width {
		closeEffect(box)
		return fmt.Errorf("%w: %d-byte samples, device is %s", ErrSampleWidth, width, spec.Format)
	}

	token := effectToken.Add(1)
	effects.Store(token, &effectEntry{channel: ch, box: box})
	stats.effectsRegistered.Add(1)

	if mix.RegisterEffect(int(ch), token) == 0 {
		err := lastError("register effect")
		// The mixer never saw the token, so nothing else will release it.
		releaseEffect(token)
		log().Debug("effect registration failed", "channel", int(ch), "effect", box.name(), "err", err)
		return err
	}
	return nil
}

// dispatchEffect is the per-buffer trampoline. It borrows the entry for the
// duration of the call.
func dispatchEffect(token uintptr, raw []byte) {
	v, ok := effects.Load(token)
	if !ok {
		return
	}
	entry := v.(*effectEntry)
	if entry.muted.Load() {
		return
	}
	stats.effectBuffers.Add(1)
	entry.run(raw)
}

func (e *effectEntry) run(raw []byte) {
	defer func() {
		if r := recover(); r != nil {
			if fatal, ok := r.(bufferShapeError); ok {
				panic(fatal)
			}
			e.muted.Store(true)
			stats.effectPanics.Add(1)
			log().Error("effect panicked; muting it until removal",
				"channel", int(e.channel), "effect", e.box.name(), "panic", r)
		}
	}()
	e.box.process(raw)
}

// bufferShapeError marks the sample reinterpretation assertion so that it is
// not swallowed together with panics raised by the effect itself.
type bufferShapeError string

// releaseEffect is the removal trampoline. Only the first call for a token
// finds the entry; later calls are no-ops.
func releaseEffect(token uintptr) {
	v, ok := effects.LoadAndDelete(token)
	if !ok {
		return
	}
	entry := v.(*effectEntry)
	stats.effectsReleased.Add(1)
	closeEffect(entry.box)
}

func closeEffect(box boxedEffect) {
	defer func() {
		if r := recover(); r != nil {
			log().Error("closing effect panicked", "effect", box.name(), "panic", r)
		}
	}()
	if err := box.release(); err != nil {
		log().Warn("closing effect failed", "effect", box.name(), "err", err)
	}
}

// ActiveEffects returns the number of effects currently registered with the
// mixer and not yet released.
func ActiveEffects() int {
	n := 0
	effects.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}
