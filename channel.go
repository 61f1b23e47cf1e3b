package mixer

// Channel is a playback slot. Values from 0 up are real channels.
type Channel int

const (
	// AllChannels addresses every channel; when playing it picks the first
	// free unreserved one.
	AllChannels Channel = -1
	// PostChannel is the pseudo channel carrying the final mix. Effects
	// registered on it process the output of all channels.
	PostChannel Channel = -2
)

// SetVolume sets the channel volume (0 to MaxVolume) and returns the previous
// volume. On AllChannels it sets every channel and returns the average.
func (ch Channel) SetVolume(volume int) int {
	return mix.Volume(int(ch), volume)
}

// Volume returns the channel volume.
func (ch Channel) Volume() int {
	return mix.Volume(int(ch), -1)
}

// Play plays chunk loops+1 times (-1 loops forever) and returns the channel
// it plays on.
func (ch Channel) Play(chunk *Chunk, loops int) (Channel, error) {
	return ch.PlayTimed(chunk, loops, -1)
}

// PlayTimed is Play with a time limit of ticks milliseconds (-1 for none).
func (ch Channel) PlayTimed(chunk *Chunk, loops, ticks int) (Channel, error) {
	if chunk == nil || chunk.handle == nil {
		return 0, ErrClosed
	}
	ret := mix.PlayChannelTimed(int(ch), chunk.handle, loops, ticks)
	keepAlive(chunk)
	if ret == -1 {
		return 0, lastError("play channel")
	}
	return Channel(ret), nil
}

// FadeIn is Play with a fade in over ms milliseconds.
func (ch Channel) FadeIn(chunk *Chunk, loops, ms int) (Channel, error) {
	return ch.FadeInTimed(chunk, loops, ms, -1)
}

// FadeInTimed is PlayTimed with a fade in over ms milliseconds.
func (ch Channel) FadeInTimed(chunk *Chunk, loops, ms, ticks int) (Channel, error) {
	if chunk == nil || chunk.handle == nil {
		return 0, ErrClosed
	}
	ret := mix.FadeInChannelTimed(int(ch), chunk.handle, loops, ms, ticks)
	keepAlive(chunk)
	if ret == -1 {
		return 0, lastError("fade in channel")
	}
	return Channel(ret), nil
}

// Pause pauses the channel.
func (ch Channel) Pause() {
	mix.Pause(int(ch))
}

// Resume resumes the paused channel.
func (ch Channel) Resume() {
	mix.Resume(int(ch))
}

// Halt stops playback. Effects registered on the channel are released and the
// channel finished hook runs.
func (ch Channel) Halt() {
	mix.HaltChannel(int(ch))
}

// Expire halts the channel after ticks milliseconds (-1 cancels) and returns
// the number of channels affected.
func (ch Channel) Expire(ticks int) int {
	return mix.ExpireChannel(int(ch), ticks)
}

// FadeOut fades the channel out over ms milliseconds and halts it. It
// returns the number of channels set to fade out.
func (ch Channel) FadeOut(ms int) int {
	return mix.FadeOutChannel(int(ch), ms)
}

// Playing reports whether the channel is playing.
func (ch Channel) Playing() bool {
	return mix.Playing(int(ch)) != 0
}

// Paused reports whether the channel is paused.
func (ch Channel) Paused() bool {
	return mix.Paused(int(ch)) != 0
}

// Fading returns the fade state of the channel.
func (ch Channel) Fading() Fading {
	return fadingFromInt(mix.FadingChannel(int(ch)))
}

// Chunk returns the chunk most recently played on the channel. The result does
// not own the sample.
func (ch Channel) Chunk() (*Chunk, bool) {
	handle := mix.GetChunk(int(ch))
	if handle == nil {
		return nil, false
	}
	return &Chunk{handle: handle}, true
}

// UnregisterAllEffects removes every effect registered on the channel,
// including the built-in ones set with SetPanning and friends.
func (ch Channel) UnregisterAllEffects() error {
	if mix.UnregisterAllEffects(int(ch)) == 0 {
		return lastError("unregister effects")
	}
	return nil
}

// SetPanning sets the left and right volume, from 0 (silent) to 255 (loud).
func (ch Channel) SetPanning(left, right uint8) error {
	if mix.SetPanning(int(ch), left, right) == 0 {
		return lastError("set panning")
	}
	return nil
}

// UnsetPanning removes the panning effect.
func (ch Channel) UnsetPanning() error {
	return ch.SetPanning(255, 255)
}

// SetDistance attenuates the channel to simulate distance, from 0 (close,
// loud) to 255 (far, quiet).
func (ch Channel) SetDistance(distance uint8) error {
	if mix.SetDistance(int(ch), distance) == 0 {
		return lastError("set distance")
	}
	return nil
}

// UnsetDistance removes the distance effect.
func (ch Channel) UnsetDistance() error {
	return ch.SetDistance(0)
}

// SetPosition places the channel at angle degrees (clockwise, 0 is in front)
// and distance from 0 (close) to 255 (far).
func (ch Channel) SetPosition(angle int16, distance uint8) error {
	if mix.SetPosition(int(ch), angle, distance) == 0 {
		return lastError("set position")
	}
	return nil
}

// UnsetPosition removes the position effect.
func (ch Channel) UnsetPosition() error {
	return ch.SetPosition(0, 0)
}

// SetReverseStereo swaps left and right output when flip is true and removes
// the effect when it is false.
func (ch Channel) SetReverseStereo(flip bool) error {
	v := 0
	if flip {
		v = 1
	}
	if mix.SetReverseStereo(int(ch), v) == 0 {
		return lastError("set reverse stereo")
	}
	return nil
}
