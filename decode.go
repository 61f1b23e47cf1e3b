package mixer

import (
	"fmt"
	"io"

	"github.com/aspect-build/mixer-go/pcm"
)

var decoders = pcm.DefaultRegistry()

// GoDecoders returns the formats DecodeChunk can decode without the native
// decoders.
func GoDecoders() []string {
	return decoders.Formats()
}

// Encoding returns the pcm sample layout of f.
func (f AudioFormat) Encoding() pcm.Encoding {
	return pcm.Encoding{
		Width:     f.SampleWidth(),
		Float:     f.IsFloat(),
		Signed:    f.IsSigned(),
		BigEndian: f.IsBigEndian(),
	}
}

// DecodeChunk decodes r in Go (format is "wav", "aiff", "mp3" or "ogg") and
// loads the result as a chunk in the opened device's format. It needs no
// native decoder, but the file's sample rate must match the device frequency.
func DecodeChunk(r io.Reader, format string) (*Chunk, error) {
	spec, err := QuerySpec()
	if err != nil {
		return nil, err
	}
	buf, err := decoders.Decode(r, format)
	if err != nil {
		return nil, err
	}
	if buf.Format.SampleRate != spec.Frequency {
		return nil, fmt.Errorf("%w: %d Hz, device is %d Hz", ErrRateMismatch, buf.Format.SampleRate, spec.Frequency)
	}
	raw, err := pcm.Encode(buf, spec.Format.Encoding(), spec.Channels)
	if err != nil {
		return nil, err
	}
	return LoadChunkFromPCM(raw)
}
