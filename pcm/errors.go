package pcm

import "errors"

var (
	ErrUnknownFormat   = errors.New("pcm: unknown format")
	ErrInvalidFile     = errors.New("pcm: not a valid file for format")
	ErrUnsupportedBits = errors.New("pcm: unsupported bit depth")
	ErrChannels        = errors.New("pcm: unsupported channel conversion")
	ErrEncoding        = errors.New("pcm: unsupported sample encoding")
	ErrEmpty           = errors.New("pcm: no samples decoded")
)
