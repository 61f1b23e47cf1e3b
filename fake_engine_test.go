package mixer

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"unsafe"
)

// fakeEngine is an in-process stand-in for SDL2_mixer. It keeps the same
// integer conventions and calls the trampolines the way the native library
// does: channel finished hook first, then every registered effect is released,
// whenever a channel stops.
type fakeEngine struct {
	mu sync.Mutex

	supported   int
	initialized int
	errText     string

	opened    bool
	frequency int
	format    uint16
	channels  int
	chunkSize int

	mixChannels []*fakeChannel
	reserved    int
	post        []uintptr
	seq         int

	chunks map[unsafe.Pointer]*fakeChunk
	musics map[unsafe.Pointer]*fakeMusic

	channelHook bool
	musicHook   bool

	music       *fakeMusic
	musicPaused bool
	musicFading int
	musicVolume int
	musicCmd    string

	failRegister bool
	quitCalls    int
}

type fakeChannel struct {
	chunk   unsafe.Pointer
	playing bool
	paused  bool
	volume  int
	fading  int
	tag     int
	started int
	expire  int
	effects []uintptr

	panning     bool
	left, right uint8
	distance    uint8
	angle       int16
	reverse     bool
}

type fakeChunk struct {
	data   []byte
	volume int
	frees  int
}

type fakeMusic struct {
	kind  int
	frees int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		supported:   int(InitFLAC | InitMP3 | InitOGG),
		chunks:      make(map[unsafe.Pointer]*fakeChunk),
		musics:      make(map[unsafe.Pointer]*fakeMusic),
		musicVolume: MaxVolume,
	}
}

// useFakeEngine installs a fresh fake for the duration of the test. The
// native engine is not reinstated afterwards: chunks a test leaked still
// carry finalizers, and their fake handles must never reach SDL.
func useFakeEngine(t *testing.T) *fakeEngine {
	t.Helper()
	fe := newFakeEngine()
	resetGlobals()
	mix = fe
	t.Cleanup(func() {
		mix = noEngine{}
		resetGlobals()
	})
	return fe
}

func resetGlobals() {
	channelFinishedHook.Store(nil)
	musicFinishedHook.Store(nil)
	effects.Range(func(k, _ any) bool {
		effects.Delete(k)
		return true
	})
}

// openFake opens the fake device as a 16-bit stereo output.
func openFake(t *testing.T, fe *fakeEngine) {
	t.Helper()
	if err := OpenAudio(44100, AudioS16LSB, 2, 512); err != nil {
		t.Fatalf("OpenAudio: %v", err)
	}
}

func (fe *fakeEngine) setError(msg string) {
	fe.errText = msg
}

func (fe *fakeEngine) channel(ch int) (*fakeChannel, bool) {
	if ch < 0 || ch >= len(fe.mixChannels) {
		fe.setError("Invalid channel number")
		return nil, false
	}
	return fe.mixChannels[ch], true
}

// donePlaying mirrors _Mix_channel_done_playing.
func (fe *fakeEngine) donePlaying(ch int) {
	c := fe.mixChannels[ch]
	c.playing = false
	c.paused = false
	c.fading = 0
	c.expire = 0
	if fe.channelHook {
		dispatchChannelFinished(ch)
	}
	fe.removeAllEffects(c)
}

func (fe *fakeEngine) removeAllEffects(c *fakeChannel) {
	tokens := c.effects
	c.effects = nil
	c.panning, c.left, c.right = false, 0, 0
	c.distance, c.angle, c.reverse = 0, 0, false
	for _, token := range tokens {
		releaseEffect(token)
	}
}

// finish ends playback on ch as if its chunk ran out.
func (fe *fakeEngine) finish(ch int) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	if fe.mixChannels[ch].playing {
		fe.donePlaying(ch)
	}
}

// finishMusic ends the music as if the stream ran out.
func (fe *fakeEngine) finishMusic() {
	fe.mu.Lock()
	playing := fe.music != nil
	fe.music = nil
	hook := fe.musicHook
	fe.mu.Unlock()
	if playing && hook {
		dispatchMusicFinished()
	}
}

// mixChannel runs one mixing tick for ch over buf, which holds 16-bit stereo
// samples: first the built-in panning, then the registered effects.
func (fe *fakeEngine) mixChannel(ch int, buf []byte) {
	fe.mu.Lock()
	c := fe.mixChannels[ch]
	if !c.playing || c.paused {
		fe.mu.Unlock()
		return
	}
	if c.panning {
		for i := 0; i+3 < len(buf); i += 4 {
			l := int16(binary.LittleEndian.Uint16(buf[i:]))
			r := int16(binary.LittleEndian.Uint16(buf[i+2:]))
			l = int16(int32(l) * int32(c.left) / 255)
			r = int16(int32(r) * int32(c.right) / 255)
			binary.LittleEndian.PutUint16(buf[i:], uint16(l))
			binary.LittleEndian.PutUint16(buf[i+2:], uint16(r))
		}
	}
	tokens := append([]uintptr(nil), c.effects...)
	fe.mu.Unlock()
	for _, token := range tokens {
		dispatchEffect(token, buf)
	}
}

// mixPost runs the post-mix effects over buf.
func (fe *fakeEngine) mixPost(buf []byte) {
	fe.mu.Lock()
	tokens := append([]uintptr(nil), fe.post...)
	fe.mu.Unlock()
	for _, token := range tokens {
		dispatchEffect(token, buf)
	}
}

func (fe *fakeEngine) effectCount(ch int) int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return len(fe.mixChannels[ch].effects)
}

func (fe *fakeEngine) Init(flags int) int {
	fe.initialized |= flags & fe.supported
	return fe.initialized
}

func (fe *fakeEngine) Quit() {
	fe.quitCalls++
	fe.initialized = 0
}

func (fe *fakeEngine) OpenAudio(frequency int, format uint16, channels, chunkSize int) int {
	if channels < 1 || channels > 8 {
		fe.setError("Invalid channel count")
		return -1
	}
	fe.mu.Lock()
	defer fe.mu.Unlock()
	fe.opened = true
	fe.frequency, fe.format, fe.channels, fe.chunkSize = frequency, format, channels, chunkSize
	fe.resize(8)
	return 0
}

func (fe *fakeEngine) CloseAudio() {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	for i, c := range fe.mixChannels {
		if c.playing {
			fe.donePlaying(i)
		} else {
			fe.removeAllEffects(c)
		}
	}
	post := fe.post
	fe.post = nil
	for _, token := range post {
		releaseEffect(token)
	}
	fe.mixChannels = nil
	fe.opened = false
}

func (fe *fakeEngine) QuerySpec() (int, uint16, int, int) {
	if !fe.opened {
		fe.setError("Audio device hasn't been opened")
		return 0, 0, 0, 0
	}
	return fe.frequency, fe.format, fe.channels, 1
}

func (fe *fakeEngine) LinkedVersion() Version { return Version{Major: 2, Minor: 8, Patch: 0} }
func (fe *fakeEngine) GetError() string       { return fe.errText }
func (fe *fakeEngine) SetError(msg string)    { fe.errText = msg }

func (fe *fakeEngine) resize(n int) {
	for len(fe.mixChannels) < n {
		fe.mixChannels = append(fe.mixChannels, &fakeChannel{volume: MaxVolume, tag: -1})
	}
	for i := n; i < len(fe.mixChannels); i++ {
		if fe.mixChannels[i].playing {
			fe.donePlaying(i)
		} else {
			fe.removeAllEffects(fe.mixChannels[i])
		}
	}
	fe.mixChannels = fe.mixChannels[:n]
}

func (fe *fakeEngine) AllocateChannels(n int) int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	if n >= 0 {
		fe.resize(n)
	}
	return len(fe.mixChannels)
}

func (fe *fakeEngine) ReserveChannels(n int) int {
	fe.reserved = min(n, len(fe.mixChannels))
	return fe.reserved
}

var fakeChunkDecoders = []string{"WAVE", "OGG", "MP3"}
var fakeMusicDecoders = []string{"WAVE", "OGG", "MP3", "FLAC"}

func (fe *fakeEngine) NumChunkDecoders() int { return len(fakeChunkDecoders) }
func (fe *fakeEngine) NumMusicDecoders() int { return len(fakeMusicDecoders) }

func (fe *fakeEngine) ChunkDecoder(index int) string {
	if index < 0 || index >= len(fakeChunkDecoders) {
		return ""
	}
	return fakeChunkDecoders[index]
}

func (fe *fakeEngine) MusicDecoder(index int) string {
	if index < 0 || index >= len(fakeMusicDecoders) {
		return ""
	}
	return fakeMusicDecoders[index]
}

func (fe *fakeEngine) newChunk(data []byte) unsafe.Pointer {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	c := &fakeChunk{data: append([]byte(nil), data...), volume: MaxVolume}
	p := unsafe.Pointer(c)
	fe.chunks[p] = c
	return p
}

func (fe *fakeEngine) LoadWAV(path string) unsafe.Pointer {
	if strings.HasSuffix(path, ".bad") {
		fe.setError("Couldn't open '" + path + "'")
		return nil
	}
	return fe.newChunk([]byte(path))
}

func (fe *fakeEngine) LoadWAVMem(data []byte) unsafe.Pointer {
	if !bytes.HasPrefix(data, []byte("RIFF")) {
		fe.setError("Unrecognized audio format")
		return nil
	}
	return fe.newChunk(data)
}

func (fe *fakeEngine) QuickLoadRaw(pcm []byte) unsafe.Pointer {
	return fe.newChunk(pcm)
}

func (fe *fakeEngine) FreeChunk(chunk unsafe.Pointer) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	// Mix_FreeChunk halts every channel still playing the chunk.
	for i, c := range fe.mixChannels {
		if c.playing && c.chunk == chunk {
			fe.donePlaying(i)
		}
	}
	// Finalizers of chunks leaked by earlier tests may land here.
	if c, ok := fe.chunks[chunk]; ok {
		c.frees++
	}
}

func (fe *fakeEngine) VolumeChunk(chunk unsafe.Pointer, volume int) int {
	c := fe.chunks[chunk]
	prev := c.volume
	if volume >= 0 {
		c.volume = min(volume, MaxVolume)
	}
	return prev
}

func (fe *fakeEngine) Volume(channel, volume int) int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	if channel == -1 {
		if len(fe.mixChannels) == 0 {
			return 0
		}
		sum := 0
		for _, c := range fe.mixChannels {
			sum += c.volume
			if volume >= 0 {
				c.volume = min(volume, MaxVolume)
			}
		}
		return sum / len(fe.mixChannels)
	}
	c, ok := fe.channel(channel)
	if !ok {
		return 0
	}
	prev := c.volume
	if volume >= 0 {
		c.volume = min(volume, MaxVolume)
	}
	return prev
}

func (fe *fakeEngine) PlayChannelTimed(channel int, chunk unsafe.Pointer, loops, ticks int) int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	if chunk == nil {
		fe.setError("Tried to play a NULL chunk")
		return -1
	}
	if channel == -1 {
		for i := fe.reserved; i < len(fe.mixChannels); i++ {
			if !fe.mixChannels[i].playing {
				channel = i
				break
			}
		}
		if channel == -1 {
			fe.setError("No free channels available")
			return -1
		}
	}
	c, ok := fe.channel(channel)
	if !ok {
		return -1
	}
	if c.playing {
		fe.donePlaying(channel)
	}
	fe.seq++
	c.chunk = chunk
	c.playing = true
	c.paused = false
	c.fading = 0
	c.started = fe.seq
	c.expire = ticks
	return channel
}

func (fe *fakeEngine) FadeInChannelTimed(channel int, chunk unsafe.Pointer, loops, ms, ticks int) int {
	ch := fe.PlayChannelTimed(channel, chunk, loops, ticks)
	if ch >= 0 {
		fe.mu.Lock()
		fe.mixChannels[ch].fading = int(FadingIn)
		fe.mu.Unlock()
	}
	return ch
}

func (fe *fakeEngine) each(channel int, f func(i int, c *fakeChannel)) {
	if channel == -1 {
		for i, c := range fe.mixChannels {
			f(i, c)
		}
		return
	}
	if c, ok := fe.channel(channel); ok {
		f(channel, c)
	}
}

func (fe *fakeEngine) Pause(channel int) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	fe.each(channel, func(_ int, c *fakeChannel) {
		if c.playing {
			c.paused = true
		}
	})
}

func (fe *fakeEngine) Resume(channel int) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	fe.each(channel, func(_ int, c *fakeChannel) {
		c.paused = false
	})
}

func (fe *fakeEngine) HaltChannel(channel int) int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	fe.each(channel, func(i int, c *fakeChannel) {
		if c.playing {
			fe.donePlaying(i)
		}
	})
	return 0
}

func (fe *fakeEngine) ExpireChannel(channel, ticks int) int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	n := 0
	fe.each(channel, func(_ int, c *fakeChannel) {
		if c.playing {
			c.expire = ticks
			n++
		}
	})
	return n
}

func (fe *fakeEngine) FadeOutChannel(channel, ms int) int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	n := 0
	fe.each(channel, func(_ int, c *fakeChannel) {
		if c.playing && ms > 0 {
			c.fading = int(FadingOut)
			n++
		}
	})
	return n
}

func (fe *fakeEngine) Playing(channel int) int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	n := 0
	fe.each(channel, func(_ int, c *fakeChannel) {
		if c.playing {
			n++
		}
	})
	return n
}

func (fe *fakeEngine) Paused(channel int) int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	n := 0
	fe.each(channel, func(_ int, c *fakeChannel) {
		if c.playing && c.paused {
			n++
		}
	})
	return n
}

func (fe *fakeEngine) FadingChannel(channel int) int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	c, ok := fe.channel(channel)
	if !ok || !c.playing {
		return 0
	}
	return c.fading
}

func (fe *fakeEngine) GetChunk(channel int) unsafe.Pointer {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	c, ok := fe.channel(channel)
	if !ok {
		return nil
	}
	return c.chunk
}

func (fe *fakeEngine) RegisterEffect(channel int, token uintptr) int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	if fe.failRegister {
		fe.setError("Out of memory")
		return 0
	}
	if channel == int(PostChannel) {
		fe.post = append(fe.post, token)
		return 1
	}
	c, ok := fe.channel(channel)
	if !ok {
		return 0
	}
	c.effects = append(c.effects, token)
	return 1
}

func (fe *fakeEngine) UnregisterAllEffects(channel int) int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	if channel == int(PostChannel) {
		post := fe.post
		fe.post = nil
		for _, token := range post {
			releaseEffect(token)
		}
		return 1
	}
	c, ok := fe.channel(channel)
	if !ok {
		return 0
	}
	fe.removeAllEffects(c)
	return 1
}

func (fe *fakeEngine) SetPanning(channel int, left, right uint8) int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	c, ok := fe.channel(channel)
	if !ok {
		return 0
	}
	if left == 255 && right == 255 {
		c.panning, c.left, c.right = false, 0, 0
		return 1
	}
	c.panning, c.left, c.right = true, left, right
	return 1
}

func (fe *fakeEngine) SetDistance(channel int, distance uint8) int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	c, ok := fe.channel(channel)
	if !ok {
		return 0
	}
	c.distance = distance
	return 1
}

func (fe *fakeEngine) SetPosition(channel int, angle int16, distance uint8) int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	c, ok := fe.channel(channel)
	if !ok {
		return 0
	}
	c.angle, c.distance = angle, distance
	return 1
}

func (fe *fakeEngine) SetReverseStereo(channel int, flip int) int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	c, ok := fe.channel(channel)
	if !ok {
		return 0
	}
	c.reverse = flip != 0
	return 1
}

func (fe *fakeEngine) ChannelFinished(enabled bool) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	fe.channelHook = enabled
}

func (fe *fakeEngine) GroupChannel(channel, tag int) int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	c, ok := fe.channel(channel)
	if !ok {
		return 0
	}
	c.tag = tag
	return 1
}

func (fe *fakeEngine) GroupChannels(from, to, tag int) int {
	n := 0
	for ch := from; ch <= to; ch++ {
		n += fe.GroupChannel(ch, tag)
	}
	return n
}

func (fe *fakeEngine) inGroup(c *fakeChannel, tag int) bool {
	return tag == -1 || c.tag == tag
}

func (fe *fakeEngine) GroupCount(tag int) int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	n := 0
	for _, c := range fe.mixChannels {
		if fe.inGroup(c, tag) {
			n++
		}
	}
	return n
}

func (fe *fakeEngine) GroupAvailable(tag int) int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	for i, c := range fe.mixChannels {
		if fe.inGroup(c, tag) && !c.playing {
			return i
		}
	}
	return -1
}

func (fe *fakeEngine) groupPick(tag int, better func(a, b int) bool) int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	found, best := -1, 0
	for i, c := range fe.mixChannels {
		if fe.inGroup(c, tag) && c.playing && (found == -1 || better(c.started, best)) {
			found, best = i, c.started
		}
	}
	return found
}

func (fe *fakeEngine) GroupOldest(tag int) int {
	return fe.groupPick(tag, func(a, b int) bool { return a < b })
}

func (fe *fakeEngine) GroupNewer(tag int) int {
	return fe.groupPick(tag, func(a, b int) bool { return a > b })
}

func (fe *fakeEngine) FadeOutGroup(tag, ms int) int {
	n := 0
	for i := range fe.mixChannels {
		if fe.inGroup(fe.mixChannels[i], tag) {
			n += fe.FadeOutChannel(i, ms)
		}
	}
	return n
}

func (fe *fakeEngine) HaltGroup(tag int) int {
	for i := range fe.mixChannels {
		if fe.inGroup(fe.mixChannels[i], tag) {
			fe.HaltChannel(i)
		}
	}
	return 0
}

var fakeMusicTypes = map[string]int{
	".wav": int(MusicWAV),
	".ogg": int(MusicOGG),
	".mp3": int(MusicMP3),
	".mid": int(MusicMID),
}

func (fe *fakeEngine) newMusic(kind int) unsafe.Pointer {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	m := &fakeMusic{kind: kind}
	p := unsafe.Pointer(m)
	fe.musics[p] = m
	return p
}

func (fe *fakeEngine) LoadMUS(path string) unsafe.Pointer {
	kind, ok := fakeMusicTypes[filepath.Ext(path)]
	if !ok {
		fe.setError("Unrecognized audio format")
		return nil
	}
	return fe.newMusic(kind)
}

func (fe *fakeEngine) LoadMUSMem(data []byte) unsafe.Pointer {
	if !bytes.HasPrefix(data, []byte("OggS")) {
		fe.setError("Unrecognized audio format")
		return nil
	}
	return fe.newMusic(int(MusicOGG))
}

func (fe *fakeEngine) FreeMusic(music unsafe.Pointer) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	m, ok := fe.musics[music]
	if !ok {
		return
	}
	if fe.music == m {
		fe.music = nil
	}
	m.frees++
}

func (fe *fakeEngine) GetMusicType(music unsafe.Pointer) int {
	return fe.musics[music].kind
}

func (fe *fakeEngine) PlayMusic(music unsafe.Pointer, loops int) int {
	if music == nil {
		fe.setError("music parameter was NULL")
		return -1
	}
	fe.music = fe.musics[music]
	fe.musicPaused = false
	fe.musicFading = 0
	return 0
}

func (fe *fakeEngine) FadeInMusic(music unsafe.Pointer, loops, ms int) int {
	if fe.PlayMusic(music, loops) == -1 {
		return -1
	}
	fe.musicFading = int(FadingIn)
	return 0
}

func (fe *fakeEngine) FadeInMusicPos(music unsafe.Pointer, loops, ms int, position float64) int {
	return fe.FadeInMusic(music, loops, ms)
}

func (fe *fakeEngine) VolumeMusic(volume int) int {
	prev := fe.musicVolume
	if volume >= 0 {
		fe.musicVolume = min(volume, MaxVolume)
	}
	return prev
}

func (fe *fakeEngine) PauseMusic()  { fe.musicPaused = fe.music != nil }
func (fe *fakeEngine) ResumeMusic() { fe.musicPaused = false }
func (fe *fakeEngine) RewindMusic() {}

func (fe *fakeEngine) SetMusicPosition(position float64) int {
	if fe.music == nil {
		fe.setError("Music isn't playing")
		return -1
	}
	return 0
}

func (fe *fakeEngine) SetMusicCMD(command string) int {
	fe.musicCmd = command
	return 0
}

func (fe *fakeEngine) HaltMusic() int {
	fe.finishMusic()
	return 0
}

func (fe *fakeEngine) FadeOutMusic(ms int) int {
	if fe.music == nil {
		return 0
	}
	fe.musicFading = int(FadingOut)
	return 1
}

func (fe *fakeEngine) HookMusicFinished(enabled bool) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	fe.musicHook = enabled
}

func (fe *fakeEngine) PlayingMusic() int {
	if fe.music != nil && !fe.musicPaused {
		return 1
	}
	return 0
}

func (fe *fakeEngine) PausedMusic() int {
	if fe.musicPaused {
		return 1
	}
	return 0
}

func (fe *fakeEngine) FadingMusic() int {
	if fe.music == nil {
		return 0
	}
	return fe.musicFading
}
