package pcm

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-audio/audio"
)

// Decoder decodes a whole file into interleaved float samples in [-1, 1].
type Decoder interface {
	Decode(r io.Reader) (*audio.Float32Buffer, error)
}

// Registry maps format names ("wav", "mp3", ...) to decoders.
type Registry struct {
	mu     sync.Mutex
	codecs map[string]Decoder
}

func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

// DefaultRegistry returns a registry with the WAV, AIFF, MP3 and Ogg Vorbis
// decoders.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("wav", WAV{})
	r.Register("aiff", AIFF{})
	r.Register("mp3", MP3{})
	r.Register("ogg", Vorbis{})
	return r
}

func (r *Registry) Register(format string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs[strings.ToLower(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.codecs[strings.ToLower(format)]
	return d, ok
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.codecs))
	for name := range r.codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Decode decodes r with the decoder registered for format.
func (r *Registry) Decode(rd io.Reader, format string) (*audio.Float32Buffer, error) {
	d, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	buf, err := d.Decode(rd)
	if err != nil {
		return nil, fmt.Errorf("pcm: decode %s: %w", format, err)
	}
	if len(buf.Data) == 0 {
		return nil, ErrEmpty
	}
	return buf, nil
}

// FormatFromPath guesses the format name from a file extension. It returns ""
// for unknown extensions.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return "wav"
	case ".aif", ".aiff":
		return "aiff"
	case ".mp3":
		return "mp3"
	case ".ogg", ".oga":
		return "ogg"
	default:
		return ""
	}
}
