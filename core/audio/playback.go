package audio

// Playback is a handle to one loaded speech resource. A handle owns the
// underlying device/buffer state for exactly one byte blob: Play starts it,
// Pause/Resume suspend and continue it without reloading, and Close releases
// it. A closed handle must not be reused.
type Playback interface {
	Play() error
	Pause() error
	Resume() error
	Close() error
}

// PlaybackCallbacks carry the sink-driven notifications for one resource.
//
// OnStarted fires when the sink actually begins pulling audio, not when Play
// returns. OnEnded fires once, on natural completion only; a Close before
// completion suppresses it.
type PlaybackCallbacks struct {
	OnStarted func()
	OnEnded   func()
}
