//go:build cgo

package mixer

// Functions exported to the C trampolines in native.go. This file's preamble
// may only hold declarations.

/*
#include <stdint.h>
*/
import "C"
import "unsafe"

//export goEffectFunc
func goEffectFunc(channel C.int, stream unsafe.Pointer, length C.int, token C.uintptr_t) {
	dispatchEffect(uintptr(token), unsafe.Slice((*byte)(stream), int(length)))
}

//export goEffectDone
func goEffectDone(channel C.int, token C.uintptr_t) {
	releaseEffect(uintptr(token))
}

//export goChannelFinished
func goChannelFinished(channel C.int) {
	dispatchChannelFinished(int(channel))
}

//export goMusicFinished
func goMusicFinished() {
	dispatchMusicFinished()
}
