package mixer

import (
	"math"
	"sync/atomic"
)

// StereoGain scales the left and right samples of an interleaved stereo
// buffer. Results are clamped to the sample type's range.
type StereoGain[T Sample] struct {
	Left  float32
	Right float32
}

// NewStereoGain creates a stereo gain effect.
func NewStereoGain[T Sample](left, right float32) *StereoGain[T] {
	return &StereoGain[T]{Left: left, Right: right}
}

// Process applies the gains.
func (g *StereoGain[T]) Process(buf []T) {
	lo, hi := sampleRange[T]()
	for i := 0; i+1 < len(buf); i += 2 {
		buf[i] = scaleSample(buf[i], g.Left, lo, hi)
		buf[i+1] = scaleSample(buf[i+1], g.Right, lo, hi)
	}
}

func scaleSample[T Sample](v T, gain float32, lo, hi float64) T {
	mid := silence(lo, hi)
	s := (float64(v)-mid)*float64(gain) + mid
	return T(math.Max(lo, math.Min(hi, s)))
}

// silence is the sample value of silence: zero for signed and float samples,
// the midpoint for unsigned ones.
func silence(lo, hi float64) float64 {
	if lo == 0 {
		return (hi + 1) / 2
	}
	return 0
}

func isFloatSample[T Sample]() bool {
	var probe T = 1
	probe /= 2
	return probe != 0
}

func sampleRange[T Sample]() (lo, hi float64) {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 0, math.MaxUint8
	case int8:
		return math.MinInt8, math.MaxInt8
	case uint16:
		return 0, math.MaxUint16
	case int16:
		return math.MinInt16, math.MaxInt16
	case int32:
		return math.MinInt32, math.MaxInt32
	default:
		if isFloatSample[T]() {
			return -1, 1
		}
		return sampleRangeBySize[T]()
	}
}

// sampleRangeBySize covers named types whose underlying type is an integer.
func sampleRangeBySize[T Sample]() (lo, hi float64) {
	var zero T
	signed := zero-1 < zero
	bits := sampleWidth[T]() * 8
	if signed {
		return -math.Ldexp(1, bits-1), math.Ldexp(1, bits-1) - 1
	}
	return 0, math.Ldexp(1, bits) - 1
}

// Echo is a feedback delay line over 16-bit interleaved samples. The delay
// buffer is allocated up front so Process never allocates.
type Echo struct {
	line     []int16
	pos      int
	feedback float32
	closed   atomic.Bool
}

// NewEcho creates an echo of delayMs milliseconds for the given device
// frequency and channel count. feedback is the share of the delayed signal
// mixed back in, from 0 to 1.
func NewEcho(frequency, channels, delayMs int, feedback float32) *Echo {
	n := frequency * channels * delayMs / 1000
	if n < channels {
		n = channels
	}
	return &Echo{line: make([]int16, n), feedback: feedback}
}

// Process mixes the delayed signal into buf.
func (e *Echo) Process(buf []int16) {
	for i, v := range buf {
		delayed := float32(e.line[e.pos]) * e.feedback
		out := clamp16(float32(v) + delayed)
		e.line[e.pos] = out
		buf[i] = out
		e.pos++
		if e.pos == len(e.line) {
			e.pos = 0
		}
	}
}

// Closed reports whether the mixer released the echo.
func (e *Echo) Closed() bool {
	return e.closed.Load()
}

// Close marks the echo released.
func (e *Echo) Close() error {
	e.closed.Store(true)
	return nil
}

func clamp16(v float32) int16 {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	default:
		return int16(v)
	}
}

// LevelMeter records the peak absolute sample value it sees. The peak is
// published through an atomic so another goroutine can poll it while the
// audio thread writes.
type LevelMeter[T Sample] struct {
	peak    atomic.Uint64 // math.Float64bits
	buffers atomic.Int64
	closed  atomic.Bool
}

// Process updates the peak. It does not modify buf.
func (m *LevelMeter[T]) Process(buf []T) {
	mid := silence(sampleRange[T]())
	peak := math.Float64frombits(m.peak.Load())
	for _, v := range buf {
		if a := math.Abs(float64(v) - mid); a > peak {
			peak = a
		}
	}
	m.peak.Store(math.Float64bits(peak))
	m.buffers.Add(1)
}

// Peak returns the largest absolute sample value seen, relative to silence.
func (m *LevelMeter[T]) Peak() float64 {
	return math.Float64frombits(m.peak.Load())
}

// Buffers returns the number of buffers processed.
func (m *LevelMeter[T]) Buffers() int64 {
	return m.buffers.Load()
}

// Reset clears the peak.
func (m *LevelMeter[T]) Reset() {
	m.peak.Store(0)
}

// Closed reports whether the mixer released the meter.
func (m *LevelMeter[T]) Closed() bool {
	return m.closed.Load()
}

// Close marks the meter released.
func (m *LevelMeter[T]) Close() error {
	m.closed.Store(true)
	return nil
}
