package mixer

import (
	"runtime"
	"unsafe"
)

// Music is a streamed music track. Only one track plays at a time.
type Music struct {
	handle unsafe.Pointer
	owned  bool
}

func newOwnedMusic(handle unsafe.Pointer) *Music {
	m := &Music{handle: handle, owned: true}
	runtime.SetFinalizer(m, (*Music).Close)
	return m
}

// LoadMusic opens a music file for streaming.
func LoadMusic(path string) (*Music, error) {
	handle := mix.LoadMUS(path)
	if handle == nil {
		err := lastError("load music")
		log().Debug("load music failed", "path", path, "err", err)
		return nil, err
	}
	return newOwnedMusic(handle), nil
}

// LoadMusicFromMemory opens an encoded music file held in data. The native
// side streams from its own copy, which lives as long as the Music.
func LoadMusicFromMemory(data []byte) (*Music, error) {
	if len(data) == 0 {
		return nil, &Error{Op: "load music", Msg: "empty data"}
	}
	handle := mix.LoadMUSMem(data)
	if handle == nil {
		return nil, lastError("load music")
	}
	return newOwnedMusic(handle), nil
}

// Type returns the file format encoding of the music.
func (m *Music) Type() MusicType {
	if m.handle == nil {
		return MusicNone
	}
	return musicTypeFromInt(mix.GetMusicType(m.handle))
}

// Play plays the music loops times (-1 loops forever, 0 plays once).
func (m *Music) Play(loops int) error {
	if m.handle == nil {
		return ErrClosed
	}
	if mix.PlayMusic(m.handle, loops) == -1 {
		return lastError("play music")
	}
	return nil
}

// FadeIn plays the music, fading in over ms milliseconds.
func (m *Music) FadeIn(loops, ms int) error {
	if m.handle == nil {
		return ErrClosed
	}
	if mix.FadeInMusic(m.handle, loops, ms) == -1 {
		return lastError("fade in music")
	}
	return nil
}

// FadeInPos plays the music from position, fading in over ms milliseconds.
// The unit of position depends on the music type.
func (m *Music) FadeInPos(loops, ms int, position float64) error {
	if m.handle == nil {
		return ErrClosed
	}
	if mix.FadeInMusicPos(m.handle, loops, ms, position) == -1 {
		return lastError("fade in music")
	}
	return nil
}

// Close frees the music if m owns it. Closing the playing music halts it.
func (m *Music) Close() error {
	if m.handle != nil {
		if m.owned {
			mix.FreeMusic(m.handle)
		}
		m.handle = nil
		runtime.SetFinalizer(m, nil)
	}
	return nil
}

// MusicVolume returns the music volume.
func MusicVolume() int {
	return mix.VolumeMusic(-1)
}

// SetMusicVolume sets the music volume (0 to MaxVolume, larger values are
// clamped).
func SetMusicVolume(volume int) {
	mix.VolumeMusic(volume)
}

// PauseMusic pauses music playback.
func PauseMusic() {
	mix.PauseMusic()
}

// ResumeMusic resumes paused music.
func ResumeMusic() {
	mix.ResumeMusic()
}

// RewindMusic rewinds the music to the start.
func RewindMusic() {
	mix.RewindMusic()
}

// SetMusicPosition sets the position of the playing music.
func SetMusicPosition(position float64) error {
	if mix.SetMusicPosition(position) == -1 {
		return lastError("set music position")
	}
	return nil
}

// SetMusicCommand sets an external command line player used for music.
func SetMusicCommand(command string) error {
	if mix.SetMusicCMD(command) == -1 {
		return lastError("set music command")
	}
	return nil
}

// HaltMusic stops music playback.
func HaltMusic() {
	mix.HaltMusic()
}

// FadeOutMusic fades the music out over ms milliseconds starting now.
func FadeOutMusic(ms int) error {
	if mix.FadeOutMusic(ms) == 0 {
		return lastError("fade out music")
	}
	return nil
}

// MusicPlaying reports whether music is playing.
func MusicPlaying() bool {
	return mix.PlayingMusic() == 1
}

// MusicPaused reports whether music is paused.
func MusicPaused() bool {
	return mix.PausedMusic() == 1
}

// MusicFading returns the fade state of the music.
func MusicFading() Fading {
	return fadingFromInt(mix.FadingMusic())
}
