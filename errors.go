package mixer

import "errors"

var (
	// ErrNoEngine is returned when the package was built without cgo and no
	// native mixer is available.
	ErrNoEngine = errors.New("mixer: native engine not available")
	// ErrSampleWidth is returned when an effect's sample type does not match
	// the sample width of the opened device.
	ErrSampleWidth = errors.New("mixer: effect sample width does not match device format")
	ErrNilEffect   = errors.New("mixer: nil effect")
	ErrClosed      = errors.New("mixer: use of closed resource")
	ErrFormat      = errors.New("mixer: unknown audio format")
	// ErrRateMismatch is returned by DecodeChunk when the decoded sample rate
	// differs from the device frequency.
	ErrRateMismatch = errors.New("mixer: decoded sample rate does not match device")
)

// Error is a failure reported by the native mixer.
type Error struct {
	Op  string
	Msg string
}

func (e *Error) Error() string {
	return "mixer: " + e.Op + ": " + e.Msg
}

// lastError builds an Error for op from the engine's current error text,
// synthesizing one when the engine left it empty.
func lastError(op string) error {
	if !engineAvailable() {
		return ErrNoEngine
	}
	msg := mix.GetError()
	if msg == "" {
		msg = op + " failed"
	}
	return &Error{Op: op, Msg: msg}
}
