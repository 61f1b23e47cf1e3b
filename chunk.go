package mixer

import (
	"runtime"
	"unsafe"
)

// Chunk is a sample loaded into memory, ready to be played on a channel.
//
// A Chunk returned by one of the Load functions owns its native sample and
// frees it on Close. The Chunk returned by Channel.Chunk is a view of a sample
// owned elsewhere; closing it only detaches the view.
type Chunk struct {
	handle unsafe.Pointer
	owned  bool
}

func newOwnedChunk(handle unsafe.Pointer) *Chunk {
	c := &Chunk{handle: handle, owned: true}
	runtime.SetFinalizer(c, (*Chunk).Close)
	return c
}

// LoadChunk loads a sample file. Supported formats depend on the decoders
// the native library was built with; see ChunkDecoders.
func LoadChunk(path string) (*Chunk, error) {
	handle := mix.LoadWAV(path)
	if handle == nil {
		err := lastError("load chunk")
		log().Debug("load chunk failed", "path", path, "err", err)
		return nil, err
	}
	return newOwnedChunk(handle), nil
}

// LoadChunkFromMemory decodes an encoded sample file held in data. The data
// is not referenced after the call returns.
func LoadChunkFromMemory(data []byte) (*Chunk, error) {
	if len(data) == 0 {
		return nil, &Error{Op: "load chunk", Msg: "empty data"}
	}
	handle := mix.LoadWAVMem(data)
	if handle == nil {
		return nil, lastError("load chunk")
	}
	return newOwnedChunk(handle), nil
}

// LoadChunkFromPCM creates a chunk from raw samples already in the opened
// device's format. The samples are copied; the copy is freed with the chunk.
func LoadChunkFromPCM(pcm []byte) (*Chunk, error) {
	if len(pcm) == 0 {
		return nil, &Error{Op: "load raw chunk", Msg: "empty data"}
	}
	handle := mix.QuickLoadRaw(pcm)
	if handle == nil {
		return nil, lastError("load raw chunk")
	}
	return newOwnedChunk(handle), nil
}

// Owned reports whether closing c frees the native sample.
func (c *Chunk) Owned() bool {
	return c.owned
}

// SetVolume sets the chunk volume (0 to MaxVolume) and returns the previous
// volume.
func (c *Chunk) SetVolume(volume int) int {
	if c.handle == nil {
		return 0
	}
	return mix.VolumeChunk(c.handle, volume)
}

// Volume returns the chunk volume.
func (c *Chunk) Volume() int {
	if c.handle == nil {
		return 0
	}
	return mix.VolumeChunk(c.handle, -1)
}

// Close frees the native sample if c owns it. It must not be called while the
// chunk is still playing.
func (c *Chunk) Close() error {
	if c.handle != nil {
		if c.owned {
			mix.FreeChunk(c.handle)
		}
		c.handle = nil
		runtime.SetFinalizer(c, nil)
	}
	return nil
}
