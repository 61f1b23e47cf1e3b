//go:build cgo

package mixer

/*
#cgo pkg-config: SDL2_mixer
#cgo linux LDFLAGS: -lm -lpthread
#cgo darwin LDFLAGS: -lm -lpthread

#include <stdint.h>
#include <stdlib.h>
#include <SDL2/SDL.h>
#include <SDL2/SDL_mixer.h>

extern void goEffectFunc(int, void *, int, uintptr_t);
extern void goEffectDone(int, uintptr_t);
extern void goChannelFinished(int);
extern void goMusicFinished(void);

static void effectFuncTrampoline(int chan, void *stream, int len, void *udata) {
	goEffectFunc(chan, stream, len, (uintptr_t)udata);
}

static void effectDoneTrampoline(int chan, void *udata) {
	goEffectDone(chan, (uintptr_t)udata);
}

static int registerGoEffect(int chan, uintptr_t token) {
	return Mix_RegisterEffect(chan, effectFuncTrampoline, effectDoneTrampoline, (void *)token);
}

static void channelFinishedTrampoline(int chan) {
	goChannelFinished(chan);
}

static void musicFinishedTrampoline(void) {
	goMusicFinished();
}

static void hookChannelFinished(int enabled) {
	Mix_ChannelFinished(enabled ? channelFinishedTrampoline : NULL);
}

static void hookMusicFinished(int enabled) {
	Mix_HookMusicFinished(enabled ? musicFinishedTrampoline : NULL);
}

static void setError(const char *msg) {
	SDL_SetError("%s", msg);
}

static Mix_Chunk *loadWAVFile(const char *path) {
	return Mix_LoadWAV_RW(SDL_RWFromFile(path, "rb"), 1);
}

static Mix_Chunk *loadWAVMem(const void *data, int size) {
	return Mix_LoadWAV_RW(SDL_RWFromConstMem(data, size), 1);
}

// loadRawCopy hands the chunk its own copy of the samples and marks it
// allocated, so Mix_FreeChunk releases both.
static Mix_Chunk *loadRawCopy(const void *data, Uint32 size) {
	Uint8 *buf = SDL_malloc(size);
	if (buf == NULL) {
		SDL_OutOfMemory();
		return NULL;
	}
	SDL_memcpy(buf, data, size);
	Mix_Chunk *chunk = Mix_QuickLoad_RAW(buf, size);
	if (chunk == NULL) {
		SDL_free(buf);
		return NULL;
	}
	chunk->allocated = 1;
	return chunk;
}
*/
import "C"
import (
	"sync"
	"unsafe"
)

func init() {
	mix = &nativeEngine{musicData: make(map[unsafe.Pointer]unsafe.Pointer)}
}

// nativeEngine calls SDL2_mixer through cgo.
type nativeEngine struct {
	mu sync.Mutex
	// musicData holds the C copies backing music loaded from memory; the
	// stream reads from them until the music is freed.
	musicData map[unsafe.Pointer]unsafe.Pointer
}

func chunkPtr(p unsafe.Pointer) *C.Mix_Chunk { return (*C.Mix_Chunk)(p) }
func musicPtr(p unsafe.Pointer) *C.Mix_Music { return (*C.Mix_Music)(p) }

func cbool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

func (e *nativeEngine) Init(flags int) int {
	return int(C.Mix_Init(C.int(flags)))
}

func (e *nativeEngine) Quit() {
	C.Mix_Quit()
}

func (e *nativeEngine) OpenAudio(frequency int, format uint16, channels, chunkSize int) int {
	return int(C.Mix_OpenAudio(C.int(frequency), C.Uint16(format), C.int(channels), C.int(chunkSize)))
}

func (e *nativeEngine) CloseAudio() {
	C.Mix_CloseAudio()
}

func (e *nativeEngine) QuerySpec() (int, uint16, int, int) {
	var frequency, channels C.int
	var format C.Uint16
	opened := C.Mix_QuerySpec(&frequency, &format, &channels)
	return int(frequency), uint16(format), int(channels), int(opened)
}

func (e *nativeEngine) LinkedVersion() Version {
	v := C.Mix_Linked_Version()
	if v == nil {
		return Version{}
	}
	return Version{Major: int(v.major), Minor: int(v.minor), Patch: int(v.patch)}
}

func (e *nativeEngine) GetError() string {
	return C.GoString(C.SDL_GetError())
}

func (e *nativeEngine) SetError(msg string) {
	cmsg := C.CString(msg)
	defer C.free(unsafe.Pointer(cmsg))
	C.setError(cmsg)
}

func (e *nativeEngine) AllocateChannels(n int) int {
	return int(C.Mix_AllocateChannels(C.int(n)))
}

func (e *nativeEngine) ReserveChannels(n int) int {
	return int(C.Mix_ReserveChannels(C.int(n)))
}

func (e *nativeEngine) NumChunkDecoders() int {
	return int(C.Mix_GetNumChunkDecoders())
}

func (e *nativeEngine) ChunkDecoder(index int) string {
	return C.GoString(C.Mix_GetChunkDecoder(C.int(index)))
}

func (e *nativeEngine) NumMusicDecoders() int {
	return int(C.Mix_GetNumMusicDecoders())
}

func (e *nativeEngine) MusicDecoder(index int) string {
	return C.GoString(C.Mix_GetMusicDecoder(C.int(index)))
}

func (e *nativeEngine) LoadWAV(path string) unsafe.Pointer {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	return unsafe.Pointer(C.loadWAVFile(cpath))
}

func (e *nativeEngine) LoadWAVMem(data []byte) unsafe.Pointer {
	return unsafe.Pointer(C.loadWAVMem(unsafe.Pointer(&data[0]), C.int(len(data))))
}

func (e *nativeEngine) QuickLoadRaw(pcm []byte) unsafe.Pointer {
	return unsafe.Pointer(C.loadRawCopy(unsafe.Pointer(&pcm[0]), C.Uint32(len(pcm))))
}

func (e *nativeEngine) FreeChunk(chunk unsafe.Pointer) {
	C.Mix_FreeChunk(chunkPtr(chunk))
}

func (e *nativeEngine) VolumeChunk(chunk unsafe.Pointer, volume int) int {
	return int(C.Mix_VolumeChunk(chunkPtr(chunk), C.int(volume)))
}

func (e *nativeEngine) Volume(channel, volume int) int {
	return int(C.Mix_Volume(C.int(channel), C.int(volume)))
}

func (e *nativeEngine) PlayChannelTimed(channel int, chunk unsafe.Pointer, loops, ticks int) int {
	return int(C.Mix_PlayChannelTimed(C.int(channel), chunkPtr(chunk), C.int(loops), C.int(ticks)))
}

func (e *nativeEngine) FadeInChannelTimed(channel int, chunk unsafe.Pointer, loops, ms, ticks int) int {
	return int(C.Mix_FadeInChannelTimed(C.int(channel), chunkPtr(chunk), C.int(loops), C.int(ms), C.int(ticks)))
}

func (e *nativeEngine) Pause(channel int) {
	C.Mix_Pause(C.int(channel))
}

func (e *nativeEngine) Resume(channel int) {
	C.Mix_Resume(C.int(channel))
}

func (e *nativeEngine) HaltChannel(channel int) int {
	return int(C.Mix_HaltChannel(C.int(channel)))
}

func (e *nativeEngine) ExpireChannel(channel, ticks int) int {
	return int(C.Mix_ExpireChannel(C.int(channel), C.int(ticks)))
}

func (e *nativeEngine) FadeOutChannel(channel, ms int) int {
	return int(C.Mix_FadeOutChannel(C.int(channel), C.int(ms)))
}

func (e *nativeEngine) Playing(channel int) int {
	return int(C.Mix_Playing(C.int(channel)))
}

func (e *nativeEngine) Paused(channel int) int {
	return int(C.Mix_Paused(C.int(channel)))
}

func (e *nativeEngine) FadingChannel(channel int) int {
	return int(C.Mix_FadingChannel(C.int(channel)))
}

func (e *nativeEngine) GetChunk(channel int) unsafe.Pointer {
	return unsafe.Pointer(C.Mix_GetChunk(C.int(channel)))
}

func (e *nativeEngine) RegisterEffect(channel int, token uintptr) int {
	return int(C.registerGoEffect(C.int(channel), C.uintptr_t(token)))
}

func (e *nativeEngine) UnregisterAllEffects(channel int) int {
	return int(C.Mix_UnregisterAllEffects(C.int(channel)))
}

func (e *nativeEngine) SetPanning(channel int, left, right uint8) int {
	return int(C.Mix_SetPanning(C.int(channel), C.Uint8(left), C.Uint8(right)))
}

func (e *nativeEngine) SetDistance(channel int, distance uint8) int {
	return int(C.Mix_SetDistance(C.int(channel), C.Uint8(distance)))
}

func (e *nativeEngine) SetPosition(channel int, angle int16, distance uint8) int {
	return int(C.Mix_SetPosition(C.int(channel), C.Sint16(angle), C.Uint8(distance)))
}

func (e *nativeEngine) SetReverseStereo(channel int, flip int) int {
	return int(C.Mix_SetReverseStereo(C.int(channel), C.int(flip)))
}

func (e *nativeEngine) ChannelFinished(enabled bool) {
	C.hookChannelFinished(cbool(enabled))
}

func (e *nativeEngine) GroupChannel(channel, tag int) int {
	return int(C.Mix_GroupChannel(C.int(channel), C.int(tag)))
}

func (e *nativeEngine) GroupChannels(from, to, tag int) int {
	return int(C.Mix_GroupChannels(C.int(from), C.int(to), C.int(tag)))
}

func (e *nativeEngine) GroupCount(tag int) int {
	return int(C.Mix_GroupCount(C.int(tag)))
}

func (e *nativeEngine) GroupAvailable(tag int) int {
	return int(C.Mix_GroupAvailable(C.int(tag)))
}

func (e *nativeEngine) GroupOldest(tag int) int {
	return int(C.Mix_GroupOldest(C.int(tag)))
}

func (e *nativeEngine) GroupNewer(tag int) int {
	return int(C.Mix_GroupNewer(C.int(tag)))
}

func (e *nativeEngine) FadeOutGroup(tag, ms int) int {
	return int(C.Mix_FadeOutGroup(C.int(tag), C.int(ms)))
}

func (e *nativeEngine) HaltGroup(tag int) int {
	return int(C.Mix_HaltGroup(C.int(tag)))
}

func (e *nativeEngine) LoadMUS(path string) unsafe.Pointer {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	return unsafe.Pointer(C.Mix_LoadMUS(cpath))
}

func (e *nativeEngine) LoadMUSMem(data []byte) unsafe.Pointer {
	cdata := C.CBytes(data)
	music := unsafe.Pointer(C.Mix_LoadMUS_RW(C.SDL_RWFromConstMem(cdata, C.int(len(data))), 1))
	if music == nil {
		C.free(cdata)
		return nil
	}
	e.mu.Lock()
	e.musicData[music] = cdata
	e.mu.Unlock()
	return music
}

func (e *nativeEngine) FreeMusic(music unsafe.Pointer) {
	C.Mix_FreeMusic(musicPtr(music))
	e.mu.Lock()
	cdata, ok := e.musicData[music]
	delete(e.musicData, music)
	e.mu.Unlock()
	if ok {
		C.free(cdata)
	}
}

func (e *nativeEngine) GetMusicType(music unsafe.Pointer) int {
	return int(C.Mix_GetMusicType(musicPtr(music)))
}

func (e *nativeEngine) PlayMusic(music unsafe.Pointer, loops int) int {
	return int(C.Mix_PlayMusic(musicPtr(music), C.int(loops)))
}

func (e *nativeEngine) FadeInMusic(music unsafe.Pointer, loops, ms int) int {
	return int(C.Mix_FadeInMusic(musicPtr(music), C.int(loops), C.int(ms)))
}

func (e *nativeEngine) FadeInMusicPos(music unsafe.Pointer, loops, ms int, position float64) int {
	return int(C.Mix_FadeInMusicPos(musicPtr(music), C.int(loops), C.int(ms), C.double(position)))
}

func (e *nativeEngine) VolumeMusic(volume int) int {
	return int(C.Mix_VolumeMusic(C.int(volume)))
}

func (e *nativeEngine) PauseMusic() {
	C.Mix_PauseMusic()
}

func (e *nativeEngine) ResumeMusic() {
	C.Mix_ResumeMusic()
}

func (e *nativeEngine) RewindMusic() {
	C.Mix_RewindMusic()
}

func (e *nativeEngine) SetMusicPosition(position float64) int {
	return int(C.Mix_SetMusicPosition(C.double(position)))
}

func (e *nativeEngine) SetMusicCMD(command string) int {
	if command == "" {
		return int(C.Mix_SetMusicCMD(nil))
	}
	ccmd := C.CString(command)
	defer C.free(unsafe.Pointer(ccmd))
	return int(C.Mix_SetMusicCMD(ccmd))
}

func (e *nativeEngine) HaltMusic() int {
	return int(C.Mix_HaltMusic())
}

func (e *nativeEngine) FadeOutMusic(ms int) int {
	return int(C.Mix_FadeOutMusic(C.int(ms)))
}

func (e *nativeEngine) HookMusicFinished(enabled bool) {
	C.hookMusicFinished(cbool(enabled))
}

func (e *nativeEngine) PlayingMusic() int {
	return int(C.Mix_PlayingMusic())
}

func (e *nativeEngine) PausedMusic() int {
	return int(C.Mix_PausedMusic())
}

func (e *nativeEngine) FadingMusic() int {
	return int(C.Mix_FadingMusic())
}
