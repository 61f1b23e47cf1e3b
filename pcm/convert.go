package pcm

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/audio"
)

// seekable returns r as an io.ReadSeeker, buffering it in memory when needed.
// The go-audio decoders seek between chunks.
func seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("pcm: buffering input: %w", err)
	}
	return bytes.NewReader(data), nil
}

// toFloat normalizes integer samples of the given bit depth into [-1, 1].
func toFloat(ib *audio.IntBuffer, bitDepth int, unsigned bool) (*audio.Float32Buffer, error) {
	var scale float32
	switch bitDepth {
	case 8:
		scale = 128
	case 16:
		scale = 32768
	case 24:
		scale = 8388608
	case 32:
		scale = 2147483648
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBits, bitDepth)
	}

	offset := 0
	if unsigned {
		offset = 128
	}
	out := &audio.Float32Buffer{
		Format:         ib.Format,
		Data:           make([]float32, len(ib.Data)),
		SourceBitDepth: bitDepth,
	}
	for i, v := range ib.Data {
		out.Data[i] = float32(v-offset) / scale
	}
	return out, nil
}
