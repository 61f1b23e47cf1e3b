package pcm

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	gomp3 "github.com/hajimehoshi/go-mp3"
)

// MP3 decodes MPEG-1/2 layer 3 files. go-mp3 always produces 16-bit stereo.
type MP3 struct{}

func (MP3) Decode(r io.Reader) (*audio.Float32Buffer, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("reading mp3 samples: %w", err)
	}

	data := make([]float32, len(raw)/2)
	for i := range data {
		v := int16(binary.LittleEndian.Uint16(raw[2*i:]))
		data[i] = float32(v) / 32768.0
	}
	return &audio.Float32Buffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: dec.SampleRate()},
		Data:           data,
		SourceBitDepth: 16,
	}, nil
}
