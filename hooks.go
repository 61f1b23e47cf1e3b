package mixer

import "sync/atomic"

// Process-wide completion hooks. Written by application goroutines, read by
// the audio thread.
var (
	channelFinishedHook atomic.Pointer[func(Channel)]
	musicFinishedHook   atomic.Pointer[func()]
)

// SetChannelFinished installs f to be called whenever a channel stops playing,
// either because its chunk ended or because it was halted. It replaces any
// previously installed function. f runs on the audio thread and must not call
// into this package. A nil f is the same as UnsetChannelFinished.
func SetChannelFinished(f func(Channel)) {
	if f == nil {
		UnsetChannelFinished()
		return
	}
	channelFinishedHook.Store(&f)
	mix.ChannelFinished(true)
}

// UnsetChannelFinished removes the channel finished hook.
func UnsetChannelFinished() {
	// Stop the mixer from calling in before clearing the slot.
	mix.ChannelFinished(false)
	channelFinishedHook.Store(nil)
}

// HookMusicFinished installs f to be called when music playback stops. It
// replaces any previously installed function. f runs on the audio thread and
// must not call into this package. A nil f is the same as UnhookMusicFinished.
func HookMusicFinished(f func()) {
	if f == nil {
		UnhookMusicFinished()
		return
	}
	musicFinishedHook.Store(&f)
	mix.HookMusicFinished(true)
}

// UnhookMusicFinished removes the music finished hook.
func UnhookMusicFinished() {
	mix.HookMusicFinished(false)
	musicFinishedHook.Store(nil)
}

// dispatchChannelFinished is the channel finished trampoline.
func dispatchChannelFinished(ch int) {
	f := channelFinishedHook.Load()
	if f == nil {
		return
	}
	stats.channelFinished.Add(1)
	(*f)(Channel(ch))
}

// dispatchMusicFinished is the music finished trampoline.
func dispatchMusicFinished() {
	f := musicFinishedHook.Load()
	if f == nil {
		return
	}
	stats.musicFinished.Add(1)
	(*f)()
}
