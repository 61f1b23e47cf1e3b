package mixer

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// AudioFormat describes the sample encoding of the opened device, using the
// same bit layout as SDL_AudioFormat.
type AudioFormat uint16

const (
	AudioU8     AudioFormat = 0x0008
	AudioS8     AudioFormat = 0x8008
	AudioU16LSB AudioFormat = 0x0010
	AudioS16LSB AudioFormat = 0x8010
	AudioU16MSB AudioFormat = 0x1010
	AudioS16MSB AudioFormat = 0x9010
	AudioU16    AudioFormat = AudioU16LSB
	AudioS16    AudioFormat = AudioS16LSB
	AudioS32LSB AudioFormat = 0x8020
	AudioS32MSB AudioFormat = 0x9020
	AudioS32    AudioFormat = AudioS32LSB
	AudioF32LSB AudioFormat = 0x8120
	AudioF32MSB AudioFormat = 0x9120
	AudioF32    AudioFormat = AudioF32LSB
)

const (
	maskBitSize  = 0xFF
	maskDatatype = 1 << 8
	maskEndian   = 1 << 12
	maskSigned   = 1 << 15
)

// Host byte order variants.
var (
	AudioU16Sys = hostOrder(AudioU16LSB, AudioU16MSB)
	AudioS16Sys = hostOrder(AudioS16LSB, AudioS16MSB)
	AudioS32Sys = hostOrder(AudioS32LSB, AudioS32MSB)
	AudioF32Sys = hostOrder(AudioF32LSB, AudioF32MSB)
)

const (
	// DefaultFrequency is a good default sample rate in Hz for PC sound cards.
	DefaultFrequency = 22050
	// DefaultChannels is stereo.
	DefaultChannels = 2
	// MaxVolume is the maximum value for any volume setting.
	MaxVolume = 128
)

// DefaultFormat is signed 16-bit samples in host byte order.
var DefaultFormat = AudioS16Sys

func hostOrder(little, big AudioFormat) AudioFormat {
	var probe [2]byte
	binary.NativeEndian.PutUint16(probe[:], 1)
	if probe[0] == 1 {
		return little
	}
	return big
}

// BitSize returns the number of bits per sample.
func (f AudioFormat) BitSize() int {
	return int(f & maskBitSize)
}

// SampleWidth returns the number of bytes per sample.
func (f AudioFormat) SampleWidth() int {
	return f.BitSize() / 8
}

func (f AudioFormat) IsFloat() bool     { return f&maskDatatype != 0 }
func (f AudioFormat) IsBigEndian() bool { return f&maskEndian != 0 }
func (f AudioFormat) IsSigned() bool    { return f&maskSigned != 0 }

var formatNames = map[AudioFormat]string{
	AudioU8:     "u8",
	AudioS8:     "s8",
	AudioU16LSB: "u16lsb",
	AudioS16LSB: "s16lsb",
	AudioU16MSB: "u16msb",
	AudioS16MSB: "s16msb",
	AudioS32LSB: "s32lsb",
	AudioS32MSB: "s32msb",
	AudioF32LSB: "f32lsb",
	AudioF32MSB: "f32msb",
}

func (f AudioFormat) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("AudioFormat(%#04x)", uint16(f))
}

// ParseAudioFormat parses the names produced by AudioFormat.String, plus the
// aliases u16, s16, s32, f32 (little endian) and their "sys" host order forms.
func ParseAudioFormat(s string) (AudioFormat, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "u16":
		return AudioU16, nil
	case "s16":
		return AudioS16, nil
	case "s32":
		return AudioS32, nil
	case "f32":
		return AudioF32, nil
	case "u16sys":
		return AudioU16Sys, nil
	case "s16sys":
		return AudioS16Sys, nil
	case "s32sys":
		return AudioS32Sys, nil
	case "f32sys":
		return AudioF32Sys, nil
	}
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrFormat, s)
}

// Spec is the actual format in use by the opened audio device.
type Spec struct {
	Frequency int
	Format    AudioFormat
	Channels  int
}

// InitFlag selects the optional decoder libraries loaded by Init.
type InitFlag int

const (
	InitFLAC       InitFlag = 0x00000001
	InitMOD        InitFlag = 0x00000002
	InitMP3        InitFlag = 0x00000008
	InitOGG        InitFlag = 0x00000010
	InitMID        InitFlag = 0x00000020
	InitOPUS       InitFlag = 0x00000040
	InitFluidSynth          = InitMID
)

var initFlagNames = []struct {
	flag InitFlag
	name string
}{
	{InitFLAC, "FLAC"},
	{InitMOD, "MOD"},
	{InitMP3, "MP3"},
	{InitOGG, "OGG"},
	{InitMID, "MID"},
	{InitOPUS, "OPUS"},
}

// String lists the set flags separated by "|".
func (f InitFlag) String() string {
	var names []string
	for _, n := range initFlagNames {
		if f&n.flag != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// ParseInitFlag maps a decoder name such as "mp3" to its flag.
func ParseInitFlag(s string) (InitFlag, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "FLUIDSYNTH" {
		return InitFluidSynth, nil
	}
	for _, n := range initFlagNames {
		if n.name == name {
			return n.flag, nil
		}
	}
	return 0, fmt.Errorf("mixer: unknown init flag %q", s)
}

// Fading is the fade state of a channel or of the music stream.
type Fading int

const (
	NoFading Fading = iota
	FadingOut
	FadingIn
)

func (f Fading) String() string {
	switch f {
	case FadingOut:
		return "fading out"
	case FadingIn:
		return "fading in"
	default:
		return "no fading"
	}
}

func fadingFromInt(v int) Fading {
	switch Fading(v) {
	case FadingOut, FadingIn:
		return Fading(v)
	default:
		return NoFading
	}
}

// MusicType is the file format encoding of a Music.
type MusicType int

const (
	MusicNone MusicType = iota
	MusicCmd
	MusicWAV
	MusicMOD
	MusicMID
	MusicOGG
	MusicMP3
	MusicMP3Mad
	MusicFLAC
	MusicModPlug
	MusicOpus
)

var musicTypeNames = [...]string{
	MusicNone:    "none",
	MusicCmd:     "cmd",
	MusicWAV:     "wav",
	MusicMOD:     "mod",
	MusicMID:     "mid",
	MusicOGG:     "ogg",
	MusicMP3:     "mp3",
	MusicMP3Mad:  "mp3-mad",
	MusicFLAC:    "flac",
	MusicModPlug: "modplug",
	MusicOpus:    "opus",
}

func (t MusicType) String() string {
	if t >= 0 && int(t) < len(musicTypeNames) {
		return musicTypeNames[t]
	}
	return musicTypeNames[MusicNone]
}

func musicTypeFromInt(v int) MusicType {
	if v >= 0 && v < len(musicTypeNames) {
		return MusicType(v)
	}
	return MusicNone
}
