package mixer

import "unsafe"

// engine is the C ABI of the native mixer. Methods mirror the Mix_* functions
// one-to-one and keep their raw integer conventions; interpreting results is
// the binding's job. Chunk and music handles are opaque native pointers.
//
// Effect and hook registration never carry Go function values across the
// boundary: the engine routes notifications to the fixed trampolines
// dispatchEffect, releaseEffect, dispatchChannelFinished and
// dispatchMusicFinished, passing back the integer token it was given.
type engine interface {
	Init(flags int) int
	Quit()
	OpenAudio(frequency int, format uint16, channels, chunkSize int) int
	CloseAudio()
	QuerySpec() (frequency int, format uint16, channels int, opened int)
	LinkedVersion() Version
	GetError() string
	SetError(msg string)
	AllocateChannels(n int) int
	ReserveChannels(n int) int

	NumChunkDecoders() int
	ChunkDecoder(index int) string
	NumMusicDecoders() int
	MusicDecoder(index int) string

	LoadWAV(path string) unsafe.Pointer
	LoadWAVMem(data []byte) unsafe.Pointer
	QuickLoadRaw(pcm []byte) unsafe.Pointer
	FreeChunk(chunk unsafe.Pointer)
	VolumeChunk(chunk unsafe.Pointer, volume int) int

	Volume(channel, volume int) int
	PlayChannelTimed(channel int, chunk unsafe.Pointer, loops, ticks int) int
	FadeInChannelTimed(channel int, chunk unsafe.Pointer, loops, ms, ticks int) int
	Pause(channel int)
	Resume(channel int)
	HaltChannel(channel int) int
	ExpireChannel(channel, ticks int) int
	FadeOutChannel(channel, ms int) int
	Playing(channel int) int
	Paused(channel int) int
	FadingChannel(channel int) int
	GetChunk(channel int) unsafe.Pointer
	RegisterEffect(channel int, token uintptr) int
	UnregisterAllEffects(channel int) int
	SetPanning(channel int, left, right uint8) int
	SetDistance(channel int, distance uint8) int
	SetPosition(channel int, angle int16, distance uint8) int
	SetReverseStereo(channel int, flip int) int
	ChannelFinished(enabled bool)

	GroupChannel(channel, tag int) int
	GroupChannels(from, to, tag int) int
	GroupCount(tag int) int
	GroupAvailable(tag int) int
	GroupOldest(tag int) int
	GroupNewer(tag int) int
	FadeOutGroup(tag, ms int) int
	HaltGroup(tag int) int

	LoadMUS(path string) unsafe.Pointer
	LoadMUSMem(data []byte) unsafe.Pointer
	FreeMusic(music unsafe.Pointer)
	GetMusicType(music unsafe.Pointer) int
	PlayMusic(music unsafe.Pointer, loops int) int
	FadeInMusic(music unsafe.Pointer, loops, ms int) int
	FadeInMusicPos(music unsafe.Pointer, loops, ms int, position float64) int
	VolumeMusic(volume int) int
	PauseMusic()
	ResumeMusic()
	RewindMusic()
	SetMusicPosition(position float64) int
	SetMusicCMD(command string) int
	HaltMusic() int
	FadeOutMusic(ms int) int
	HookMusicFinished(enabled bool)
	PlayingMusic() int
	PausedMusic() int
	FadingMusic() int
}

// mix is the engine every binding call goes through. The cgo build installs
// the native engine at init.
var mix engine = noEngine{}

func engineAvailable() bool {
	_, missing := mix.(noEngine)
	return !missing
}

// noEngine fails every call. It backs builds without cgo.
type noEngine struct{}

func (noEngine) Init(int) int                                 { return 0 }
func (noEngine) Quit()                                        {}
func (noEngine) OpenAudio(int, uint16, int, int) int          { return -1 }
func (noEngine) CloseAudio()                                  {}
func (noEngine) QuerySpec() (int, uint16, int, int)           { return 0, 0, 0, 0 }
func (noEngine) LinkedVersion() Version                       { return Version{} }
func (noEngine) GetError() string                             { return ErrNoEngine.Error() }
func (noEngine) SetError(string)                              {}
func (noEngine) AllocateChannels(int) int                     { return 0 }
func (noEngine) ReserveChannels(int) int                      { return 0 }
func (noEngine) NumChunkDecoders() int                        { return 0 }
func (noEngine) ChunkDecoder(int) string                      { return "" }
func (noEngine) NumMusicDecoders() int                        { return 0 }
func (noEngine) MusicDecoder(int) string                      { return "" }
func (noEngine) LoadWAV(string) unsafe.Pointer                { return nil }
func (noEngine) LoadWAVMem([]byte) unsafe.Pointer             { return nil }
func (noEngine) QuickLoadRaw([]byte) unsafe.Pointer           { return nil }
func (noEngine) FreeChunk(unsafe.Pointer)                     {}
func (noEngine) VolumeChunk(unsafe.Pointer, int) int          { return 0 }
func (noEngine) Volume(int, int) int                          { return 0 }
func (noEngine) PlayChannelTimed(int, unsafe.Pointer, int, int) int {
	return -1
}
func (noEngine) FadeInChannelTimed(int, unsafe.Pointer, int, int, int) int {
	return -1
}
func (noEngine) Pause(int)                                        {}
func (noEngine) Resume(int)                                       {}
func (noEngine) HaltChannel(int) int                              { return 0 }
func (noEngine) ExpireChannel(int, int) int                       { return 0 }
func (noEngine) FadeOutChannel(int, int) int                      { return 0 }
func (noEngine) Playing(int) int                                  { return 0 }
func (noEngine) Paused(int) int                                   { return 0 }
func (noEngine) FadingChannel(int) int                            { return 0 }
func (noEngine) GetChunk(int) unsafe.Pointer                      { return nil }
func (noEngine) RegisterEffect(int, uintptr) int                  { return 0 }
func (noEngine) UnregisterAllEffects(int) int                     { return 0 }
func (noEngine) SetPanning(int, uint8, uint8) int                 { return 0 }
func (noEngine) SetDistance(int, uint8) int                       { return 0 }
func (noEngine) SetPosition(int, int16, uint8) int                { return 0 }
func (noEngine) SetReverseStereo(int, int) int                    { return 0 }
func (noEngine) ChannelFinished(bool)                             {}
func (noEngine) GroupChannel(int, int) int                        { return 0 }
func (noEngine) GroupChannels(int, int, int) int                  { return 0 }
func (noEngine) GroupCount(int) int                               { return 0 }
func (noEngine) GroupAvailable(int) int                           { return -1 }
func (noEngine) GroupOldest(int) int                              { return -1 }
func (noEngine) GroupNewer(int) int                               { return -1 }
func (noEngine) FadeOutGroup(int, int) int                        { return 0 }
func (noEngine) HaltGroup(int) int                                { return 0 }
func (noEngine) LoadMUS(string) unsafe.Pointer                    { return nil }
func (noEngine) LoadMUSMem([]byte) unsafe.Pointer                 { return nil }
func (noEngine) FreeMusic(unsafe.Pointer)                         {}
func (noEngine) GetMusicType(unsafe.Pointer) int                  { return 0 }
func (noEngine) PlayMusic(unsafe.Pointer, int) int                { return -1 }
func (noEngine) FadeInMusic(unsafe.Pointer, int, int) int         { return -1 }
func (noEngine) FadeInMusicPos(unsafe.Pointer, int, int, float64) int {
	return -1
}
func (noEngine) VolumeMusic(int) int          { return 0 }
func (noEngine) PauseMusic()                  {}
func (noEngine) ResumeMusic()                 {}
func (noEngine) RewindMusic()                 {}
func (noEngine) SetMusicPosition(float64) int { return -1 }
func (noEngine) SetMusicCMD(string) int       { return -1 }
func (noEngine) HaltMusic() int               { return 0 }
func (noEngine) FadeOutMusic(int) int         { return 0 }
func (noEngine) HookMusicFinished(bool)       {}
func (noEngine) PlayingMusic() int            { return 0 }
func (noEngine) PausedMusic() int             { return 0 }
func (noEngine) FadingMusic() int             { return 0 }
