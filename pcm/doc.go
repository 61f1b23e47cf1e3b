// Package pcm decodes audio files into PCM in pure Go and encodes PCM into
// the raw sample layouts the mixer plays.
//
// Decoders return go-audio float buffers with samples in [-1, 1]:
//
//	buf, err := pcm.DefaultRegistry().Decode(f, pcm.FormatFromPath(path))
//	if err != nil {
//	    return err
//	}
//	raw, err := pcm.Encode(buf, pcm.Encoding{Width: 2, Signed: true}, 2)
//
// Supported formats: WAV and AIFF (github.com/go-audio), MP3
// (github.com/hajimehoshi/go-mp3) and Ogg Vorbis
// (github.com/jfreymuth/oggvorbis). Sample rate conversion is out of scope.
package pcm
