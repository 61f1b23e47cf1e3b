package pcm

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/jfreymuth/oggvorbis"
)

// Vorbis decodes Ogg Vorbis files.
type Vorbis struct{}

func (Vorbis) Decode(r io.Reader) (*audio.Float32Buffer, error) {
	data, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return &audio.Float32Buffer{
		Format:         &audio.Format{NumChannels: format.Channels, SampleRate: format.SampleRate},
		Data:           data,
		SourceBitDepth: 32,
	}, nil
}
