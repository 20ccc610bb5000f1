package events

const (
	// KindSpeechGenerating identifies an in-flight synthesis request.
	KindSpeechGenerating Kind = "speech_playback.generating"
	// KindSpeechPlaybackStarted identifies the sink pulling the first audio.
	KindSpeechPlaybackStarted Kind = "speech_playback.started"
	// KindSpeechPlaybackPaused identifies suspended playback with the resource retained.
	KindSpeechPlaybackPaused Kind = "speech_playback.paused"
	// KindSpeechPlaybackResumed identifies playback continued without regeneration.
	KindSpeechPlaybackResumed Kind = "speech_playback.resumed"
	// KindSpeechPlaybackEnded identifies a released resource.
	KindSpeechPlaybackEnded Kind = "speech_playback.ended"
	// KindSpeechPlaybackFailed identifies failed synthesis or rejected playback.
	KindSpeechPlaybackFailed Kind = "speech_playback.failed"
)

// SpeechGenerating marks an in-flight synthesis request for the current answer.
type SpeechGenerating struct {
	Base
	Text string
}

// NewSpeechGenerating creates a speech generating event.
func NewSpeechGenerating(text string) SpeechGenerating {
	return SpeechGenerating{Base: NewBase(KindSpeechGenerating), Text: text}
}

// SpeechPlaybackStarted marks actual playback start for a generated resource.
type SpeechPlaybackStarted struct {
	Base
	ResourceID string
}

// NewSpeechPlaybackStarted creates a speech playback started event.
func NewSpeechPlaybackStarted(resourceID string) SpeechPlaybackStarted {
	return SpeechPlaybackStarted{Base: NewBase(KindSpeechPlaybackStarted), ResourceID: resourceID}
}

// SpeechPlaybackPaused marks suspended playback; the resource stays loaded.
type SpeechPlaybackPaused struct {
	Base
	ResourceID string
}

// NewSpeechPlaybackPaused creates a speech playback paused event.
func NewSpeechPlaybackPaused(resourceID string) SpeechPlaybackPaused {
	return SpeechPlaybackPaused{Base: NewBase(KindSpeechPlaybackPaused), ResourceID: resourceID}
}

// SpeechPlaybackResumed marks playback continued from the retained resource.
type SpeechPlaybackResumed struct {
	Base
	ResourceID string
}

// NewSpeechPlaybackResumed creates a speech playback resumed event.
func NewSpeechPlaybackResumed(resourceID string) SpeechPlaybackResumed {
	return SpeechPlaybackResumed{Base: NewBase(KindSpeechPlaybackResumed), ResourceID: resourceID}
}

// SpeechPlaybackEnded marks a released resource. Forced reports whether the
// release was caused by an answer mutation or teardown rather than natural
// completion.
type SpeechPlaybackEnded struct {
	Base
	ResourceID string
	Forced     bool
}

// NewSpeechPlaybackEnded creates a speech playback ended event.
func NewSpeechPlaybackEnded(resourceID string, forced bool) SpeechPlaybackEnded {
	return SpeechPlaybackEnded{Base: NewBase(KindSpeechPlaybackEnded), ResourceID: resourceID, Forced: forced}
}

// SpeechPlaybackFailed marks failed synthesis or a playback start the
// environment rejected; the controller is back at idle when this is emitted.
type SpeechPlaybackFailed struct {
	Base
	Message string
}

// NewSpeechPlaybackFailed creates a speech playback failed event.
func NewSpeechPlaybackFailed(message string) SpeechPlaybackFailed {
	return SpeechPlaybackFailed{Base: NewBase(KindSpeechPlaybackFailed), Message: message}
}
