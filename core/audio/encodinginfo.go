package audio

const (
	DefaultSampleRate = 16000
	DefaultFormat     = "linear16"
)

func GetDefaultEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: DefaultSampleRate, Format: encodingFormat(DefaultFormat)}
}

// EncodingInfo describes the byte layout of a speech blob. Sinks use it to
// configure their device; synthesizers use it to request a matching payload.
// Container formats (mp3) are opaque: they carry no per-sample layout and
// can only be handed to sinks that decode them on their own.
type EncodingInfo struct {
	SampleRate int
	Format     encodingFormat
}

func (e EncodingInfo) IsZero() bool {
	return e.SampleRate == 0 || e.Format.Name() == ""
}

// IsRaw reports whether the format is an uncompressed per-sample layout that
// a PCM sink can play without decoding.
func (e EncodingInfo) IsRaw() bool {
	return e.Format.ByteSize() > 0
}

func (e EncodingInfo) SilenceValue() byte {
	switch e.Format {
	case EncodingALaw:
		return 0x55
	case EncodingMulaw:
		return 0xFF
	case EncodingLinear16:
		return 0
	}

	return 0
}

type encodingFormat string

func (e encodingFormat) Name() string {
	return string(e)
}

// ByteSize returns the per-sample byte width, or -1 for container formats.
func (e encodingFormat) ByteSize() int {
	switch e {
	case EncodingMulaw, EncodingALaw:
		return 1
	case EncodingLinear16:
		return 2
	}
	return -1
}

const (
	EncodingMulaw    encodingFormat = "mulaw"
	EncodingALaw     encodingFormat = "alaw"
	EncodingLinear16 encodingFormat = "linear16"
	EncodingMP3      encodingFormat = "mp3"
)
