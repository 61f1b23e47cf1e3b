package pcm

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
)

// AIFF decodes uncompressed AIFF files.
type AIFF struct{}

func (AIFF) Decode(r io.Reader) (*audio.Float32Buffer, error) {
	rs, err := seekable(r)
	if err != nil {
		return nil, err
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrInvalidFile
	}
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("reading aiff header: %w", err)
	}
	format := dec.Format()
	if format == nil {
		return nil, ErrInvalidFile
	}

	chunk := &audio.IntBuffer{Format: format, Data: make([]int, 4096)}
	all := &audio.IntBuffer{Format: format, SourceBitDepth: int(dec.BitDepth)}
	for {
		n, err := dec.PCMBuffer(chunk)
		all.Data = append(all.Data, chunk.Data[:n]...)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading aiff samples: %w", err)
		}
		if n == 0 || err != nil {
			break
		}
	}
	return toFloat(all, int(dec.BitDepth), false)
}
