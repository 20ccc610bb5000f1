// Package deepgram provides a speech synthesizer backed by Deepgram's
// speak websocket API. It is an alternative to the question-answering
// service's own /tts endpoint for setups that hold a Deepgram key.
package deepgram

import (
	"fmt"
	"os"
	"slices"
)

type Voice string

const (
	VoiceAsteria Voice = "aura-asteria-en"
	VoiceLuna    Voice = "aura-luna-en"
	VoiceStella  Voice = "aura-stella-en"
	VoiceAthena  Voice = "aura-athena-en"
	VoiceOrion   Voice = "aura-orion-en"
	VoiceArcas   Voice = "aura-arcas-en"
)

const defaultVoice = VoiceAsteria

func GetAvailableVoices() []Voice {
	return []Voice{
		VoiceAsteria, VoiceLuna, VoiceStella,
		VoiceAthena, VoiceOrion, VoiceArcas,
	}
}

// SpeechSynthesizer synthesizes one answer at a time over a short-lived
// websocket connection; it keeps no connection open between requests.
type SpeechSynthesizer struct {
	voice  Voice
	apiKey string
}

type SpeechSynthesizerOption func(*SpeechSynthesizer)

// WithAPIKey overrides the DEEPGRAM_API_KEY environment variable.
func WithAPIKey(apiKey string) SpeechSynthesizerOption {
	return func(s *SpeechSynthesizer) { s.apiKey = apiKey }
}

func WithVoice(voice Voice) SpeechSynthesizerOption {
	return func(s *SpeechSynthesizer) { s.voice = voice }
}

func NewSpeechSynthesizer(opts ...SpeechSynthesizerOption) (*SpeechSynthesizer, error) {
	synthesizer := &SpeechSynthesizer{
		voice:  defaultVoice,
		apiKey: os.Getenv("DEEPGRAM_API_KEY"),
	}

	for _, opt := range opts {
		opt(synthesizer)
	}

	if !slices.Contains(GetAvailableVoices(), synthesizer.voice) {
		return nil, fmt.Errorf("invalid voice %q", synthesizer.voice)
	}
	if synthesizer.apiKey == "" {
		return nil, fmt.Errorf("deepgram api key not found")
	}

	return synthesizer, nil
}

func (s *SpeechSynthesizer) SetVoice(voice Voice) error {
	if !slices.Contains(GetAvailableVoices(), voice) {
		return fmt.Errorf("invalid voice %q", voice)
	}
	s.voice = voice
	return nil
}
