package pcm

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-audio/audio"
)

// Encoding is a raw sample layout.
type Encoding struct {
	// Width is the sample size in bytes: 1, 2 or 4.
	Width     int
	Float     bool
	Signed    bool
	BigEndian bool
}

func (e Encoding) order() binary.ByteOrder {
	if e.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Remix converts interleaved samples from src to dst channels. Mono is
// duplicated to every output channel and any channel count is averaged down
// to mono; other conversions fail with ErrChannels.
func Remix(data []float32, src, dst int) ([]float32, error) {
	if src <= 0 || dst <= 0 {
		return nil, fmt.Errorf("%w: %d to %d", ErrChannels, src, dst)
	}
	if src == dst {
		return data, nil
	}
	frames := len(data) / src
	switch {
	case src == 1:
		out := make([]float32, frames*dst)
		for i, v := range data[:frames] {
			for c := 0; c < dst; c++ {
				out[i*dst+c] = v
			}
		}
		return out, nil
	case dst == 1:
		out := make([]float32, frames)
		for i := range out {
			var sum float32
			for _, v := range data[i*src : (i+1)*src] {
				sum += v
			}
			out[i] = sum / float32(src)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d to %d", ErrChannels, src, dst)
	}
}

// Encode converts buf into raw bytes of the given encoding and channel count.
// Samples outside [-1, 1] are clamped.
func Encode(buf *audio.Float32Buffer, enc Encoding, channels int) ([]byte, error) {
	if buf == nil || buf.Format == nil {
		return nil, ErrEmpty
	}
	data, err := Remix(buf.Data, buf.Format.NumChannels, channels)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(data)*enc.Width)
	order := enc.order()
	for i, v := range data {
		v = clamp(v)
		b := out[i*enc.Width:]
		switch {
		case enc.Float && enc.Width == 4:
			order.PutUint32(b, math.Float32bits(v))
		case enc.Float:
			return nil, fmt.Errorf("%w: %d-byte float", ErrEncoding, enc.Width)
		case enc.Width == 1:
			s := int32(math.Round(float64(v) * math.MaxInt8))
			if !enc.Signed {
				s += 128
			}
			b[0] = byte(s)
		case enc.Width == 2:
			s := int32(math.Round(float64(v) * math.MaxInt16))
			if !enc.Signed {
				s += 32768
			}
			order.PutUint16(b, uint16(s))
		case enc.Width == 4:
			s := int64(math.Round(float64(v) * math.MaxInt32))
			if !enc.Signed {
				s += 1 << 31
			}
			order.PutUint32(b, uint32(s))
		default:
			return nil, fmt.Errorf("%w: %d-byte samples", ErrEncoding, enc.Width)
		}
	}
	return out, nil
}

func clamp(v float32) float32 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}
