package orchestration

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/koscakluka/docqa-core/core/audio"
	"github.com/koscakluka/docqa-core/core/events"
	"github.com/koscakluka/docqa-core/core/texttospeech"
	"go.opentelemetry.io/otel/codes"
)

// PlaybackState is the observable state of the read-aloud machine.
type PlaybackState string

const (
	PlaybackIdle       PlaybackState = "idle"
	PlaybackGenerating PlaybackState = "generating"
	PlaybackPlaying    PlaybackState = "playing"
	PlaybackPaused     PlaybackState = "paused"
)

// speechResource is one synthesized answer loaded into the audio output. The
// id exists so late sink callbacks for an already released resource can be
// told apart from callbacks for the current one.
type speechResource struct {
	id       string
	text     string
	playback audio.Playback
}

// playbackController drives the read-aloud state machine:
//
//	idle -> generating -> playing <-> paused -> idle
//
// Speech is synthesized at most once per answer: pausing retains the loaded
// resource, resuming continues it without another synthesis request. The
// resource is released on natural completion, and force-released whenever the
// answer it was generated from stops existing.
type playbackController struct {
	mu sync.Mutex

	orchestrator *Orchestrator

	state    PlaybackState
	resource *speechResource

	// generation is the token of the in-flight synthesis request; clearing
	// it drops the result of a synthesis that is already underway.
	generation string

	synthesizer SpeechSynthesizer
	output      AudioOutput

	language   string
	slowSpeech bool
}

func newPlaybackController(orchestrator *Orchestrator) *playbackController {
	return &playbackController{
		orchestrator: orchestrator,
		state:        PlaybackIdle,
		language:     "en",
	}
}

func (c *playbackController) setOutput(output AudioOutput) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.output = output
}

func (c *playbackController) State() PlaybackState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ReadAloud speaks the given answer text.
//
// While a synthesis is in flight or playback is running the call is ignored.
// From paused with the same text it resumes the retained resource instead of
// synthesizing again. Synthesis and playback failures surface as a
// notification and leave the controller idle.
func (c *playbackController) ReadAloud(ctx context.Context, text string) {
	if text == "" {
		c.orchestrator.notifyError("Read aloud failed", &ValidationError{Reason: "no answer to read aloud"})
		return
	}

	c.mu.Lock()
	switch c.state {
	case PlaybackGenerating, PlaybackPlaying:
		c.mu.Unlock()
		return
	case PlaybackPaused:
		if c.resource != nil && c.resource.text == text {
			resource := c.resource
			c.state = PlaybackPlaying
			c.mu.Unlock()
			if err := resource.playback.Resume(); err != nil {
				c.fail(resource, &PlaybackRejectedError{Err: err})
				return
			}
			c.orchestrator.emitEvent(events.NewSpeechPlaybackResumed(resource.id))
			return
		}
	}

	// reached from idle, or from paused over a different answer (which should
	// not happen); a retained resource is stale and gets force-released
	stale := c.resource
	c.resource = nil

	synthesizer := c.synthesizer
	output := c.output
	if synthesizer == nil {
		c.state = PlaybackIdle
		c.mu.Unlock()
		c.releaseStale(stale)
		c.orchestrator.notifyError("Read aloud failed", &PlaybackRejectedError{Err: errors.New("no speech synthesizer configured")})
		return
	}
	if output == nil {
		c.state = PlaybackIdle
		c.mu.Unlock()
		c.releaseStale(stale)
		c.orchestrator.notifyError("Read aloud failed", &PlaybackRejectedError{Err: errors.New("no audio output configured")})
		return
	}

	token := uuid.NewString()
	c.generation = token
	c.state = PlaybackGenerating
	language := c.language
	slowSpeech := c.slowSpeech
	c.mu.Unlock()
	c.releaseStale(stale)
	c.orchestrator.emitEvent(events.NewSpeechGenerating(text))

	ctx, span := tracer.Start(ctx, "read answer aloud")
	defer span.End()

	opts := []texttospeech.SynthesizeOption{
		texttospeech.WithLanguage(language),
		texttospeech.WithEncodingInfo(output.EncodingInfo()),
	}
	if slowSpeech {
		opts = append(opts, texttospeech.WithSlowSpeech())
	}

	speech, err := synthesizer.Synthesize(ctx, text, opts...)

	c.mu.Lock()
	if c.generation != token {
		// the answer changed while synthesizing; the result belongs to a
		// discarded generation
		c.mu.Unlock()
		return
	}
	c.generation = ""

	if err != nil {
		c.state = PlaybackIdle
		c.mu.Unlock()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.orchestrator.emitEvent(events.NewSpeechPlaybackFailed(err.Error()))
		c.orchestrator.notifyError("Read aloud failed", err)
		return
	}

	resource := &speechResource{id: uuid.NewString(), text: text}
	playback, err := output.Open(speech, audio.PlaybackCallbacks{
		OnStarted: func() { c.onStarted(resource) },
		OnEnded:   func() { c.onEnded(resource) },
	})
	if err != nil {
		c.state = PlaybackIdle
		c.mu.Unlock()
		rejection := &PlaybackRejectedError{Err: err}
		span.RecordError(rejection)
		span.SetStatus(codes.Error, rejection.Error())
		c.orchestrator.emitEvent(events.NewSpeechPlaybackFailed(rejection.Error()))
		c.orchestrator.notifyError("Read aloud failed", rejection)
		return
	}
	resource.playback = playback
	c.resource = resource
	c.mu.Unlock()

	if err := playback.Play(); err != nil {
		c.fail(resource, &PlaybackRejectedError{Err: err})
	}
}

// TogglePause suspends running playback or resumes suspended playback.
// Without a loaded resource it does nothing.
func (c *playbackController) TogglePause() {
	c.mu.Lock()
	resource := c.resource
	if resource == nil {
		c.mu.Unlock()
		return
	}

	switch c.state {
	case PlaybackPlaying:
		c.state = PlaybackPaused
		c.mu.Unlock()
		if err := resource.playback.Pause(); err != nil {
			c.fail(resource, &PlaybackRejectedError{Err: err})
			return
		}
		c.orchestrator.emitEvent(events.NewSpeechPlaybackPaused(resource.id))
	case PlaybackPaused:
		c.state = PlaybackPlaying
		c.mu.Unlock()
		if err := resource.playback.Resume(); err != nil {
			c.fail(resource, &PlaybackRejectedError{Err: err})
			return
		}
		c.orchestrator.emitEvent(events.NewSpeechPlaybackResumed(resource.id))
	default:
		c.mu.Unlock()
	}
}

// onStarted is the sink reporting that it pulled the first audio.
func (c *playbackController) onStarted(resource *speechResource) {
	c.mu.Lock()
	if c.resource != resource {
		c.mu.Unlock()
		return
	}
	c.state = PlaybackPlaying
	c.mu.Unlock()
	c.orchestrator.emitEvent(events.NewSpeechPlaybackStarted(resource.id))
}

// onEnded is the sink reporting natural completion; the resource is released.
func (c *playbackController) onEnded(resource *speechResource) {
	c.mu.Lock()
	if c.resource != resource {
		c.mu.Unlock()
		return
	}
	c.resource = nil
	c.state = PlaybackIdle
	c.mu.Unlock()

	resource.playback.Close()
	c.orchestrator.emitEvent(events.NewSpeechPlaybackEnded(resource.id, false))
}

// reset force-releases whatever the controller holds. It runs whenever the
// answer the speech was generated from stops existing, so playback can never
// voice a stale answer.
func (c *playbackController) reset() {
	c.mu.Lock()
	c.generation = ""
	resource := c.resource
	c.resource = nil
	wasActive := c.state != PlaybackIdle
	c.state = PlaybackIdle
	c.mu.Unlock()

	if resource != nil {
		resource.playback.Close()
		c.orchestrator.emitEvent(events.NewSpeechPlaybackEnded(resource.id, true))
	} else if wasActive {
		c.orchestrator.emitEvent(events.NewSpeechPlaybackEnded("", true))
	}
}

func (c *playbackController) teardown() { c.reset() }

// fail releases the resource after the environment rejected an operation on
// it and reports the rejection.
func (c *playbackController) fail(resource *speechResource, err error) {
	c.mu.Lock()
	if c.resource == resource {
		c.resource = nil
		c.state = PlaybackIdle
	}
	c.mu.Unlock()

	resource.playback.Close()
	c.orchestrator.emitEvent(events.NewSpeechPlaybackFailed(err.Error()))
	c.orchestrator.notifyError("Read aloud failed", err)
}

// releaseStale closes a resource detached under lock and reports the forced
// release, so displays driven by playback events see it drop.
func (c *playbackController) releaseStale(stale *speechResource) {
	if stale == nil {
		return
	}
	stale.playback.Close()
	c.orchestrator.emitEvent(events.NewSpeechPlaybackEnded(stale.id, true))
}
