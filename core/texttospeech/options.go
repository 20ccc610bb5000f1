package texttospeech

import "github.com/koscakluka/docqa-core/core/audio"

// SynthesizeOptions configure one synthesis request. A synthesizer turns a
// finished answer into a single playable byte blob, so unlike a streaming
// generator there are no marks or incremental callbacks here.
type SynthesizeOptions struct {
	// Language is the speech language code (e.g. "en", "es", "fr").
	Language string
	// SlowSpeech asks the provider to slow the speech down.
	//
	// Not supported by all providers; unsupported providers ignore it.
	SlowSpeech bool

	// EncodingInfo is the byte layout the caller needs the blob in. Left
	// zero, the provider produces its native output; set, providers that
	// cannot honor it must fail instead of returning a mismatched blob.
	EncodingInfo audio.EncodingInfo
}

type SynthesizeOption func(*SynthesizeOptions)

func DefaultSynthesizeOptions() SynthesizeOptions {
	return SynthesizeOptions{Language: "en"}
}

func WithLanguage(language string) SynthesizeOption {
	return func(o *SynthesizeOptions) {
		if language == "" {
			return
		}
		o.Language = language
	}
}

func WithSlowSpeech() SynthesizeOption {
	return func(o *SynthesizeOptions) { o.SlowSpeech = true }
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) SynthesizeOption {
	return func(o *SynthesizeOptions) {
		if encodingInfo.IsZero() {
			return
		}

		o.EncodingInfo = encodingInfo
	}
}
