// Package orchestration implements the session and request orchestration
// engine for a document/website question-answering client: it tracks which
// ingested source is active, invalidates stale sessions on any model or
// source change, sequences the ingest → query → text-to-speech request
// chain, and drives the audio playback state machine.
//
// The engine performs no retrieval, embedding, or generation itself; all of
// that is owned by the remote service behind the [Backend] interface. The
// presentation layer renders the observable state and forwards user intents;
// it performs no business logic.
package orchestration

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/koscakluka/docqa-core/core/backend"
	"github.com/koscakluka/docqa-core/core/events"
)

// SourceType selects which ingestion variant the engine uses.
type SourceType string

const (
	SourceTypeDocument SourceType = "pdf"
	SourceTypeURL      SourceType = "url"
)

// configuration is the model and source selection a session is bound to. A
// session id is valid only for the exact configuration that produced it.
type configuration struct {
	LLMModel       string
	EmbeddingModel string
	SourceType     SourceType
	Tone           string
	TopK           int
}

type modelCatalog struct {
	LLMModels       []string
	EmbeddingModels []string
}

// defaultModelCatalog mirrors the service's built-in lists; it stays in
// effect when the startup catalog fetch fails (degraded mode).
var defaultModelCatalog = modelCatalog{
	LLMModels:       []string{"mistral", "llava"},
	EmbeddingModels: []string{"all-MiniLM-L6-v2", "all-mpnet-base-v2", "nomic-embed-text"},
}

// Orchestrator owns all shared mutable state of the engine: configuration,
// source selection, session id, answer, and the playback controller. Each
// field has a single writing operation; the display layer only reads through
// the getters or [Orchestrator.StateV1].
type Orchestrator struct {
	mu sync.Mutex

	config   configuration
	catalog  modelCatalog
	degraded bool

	documentPath string
	sourceURL    string

	sessionID string
	answer    string
	snippets  []string

	ingestGuard flightGuard
	queryGuard  flightGuard

	playback *playbackController

	backend     Backend
	synthesizer SpeechSynthesizer

	emit      eventEmitter
	closeOnce sync.Once
}

func NewOrchestrator(opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		config: configuration{
			LLMModel:       defaultModelCatalog.LLMModels[0],
			EmbeddingModel: defaultModelCatalog.EmbeddingModels[0],
			SourceType:     SourceTypeDocument,
			Tone:           "neutral",
			TopK:           5,
		},
		catalog: defaultModelCatalog,
		emit:    noopEventEmitter,
	}
	o.playback = newPlaybackController(o)

	for _, opt := range opts {
		opt(o)
	}

	o.playback.synthesizer = o.synthesizer

	return o
}

// Orchestrate registers the caller's callbacks and starts the best-effort
// model catalog refresh.
//
// Contract: call Orchestrate at most once per orchestrator instance, before
// issuing operations. Callbacks are not reconfigurable mid-flight.
func (o *Orchestrator) Orchestrate(ctx context.Context, opts ...OrchestrateOption) {
	options := OrchestrateOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	o.emit = newCallbackEventEmitter(options)

	if o.backend != nil {
		go o.refreshModelCatalog(ctx)
	}
}

// Close releases the playback resource if one is loaded. Session state is
// volatile by design and needs no teardown.
func (o *Orchestrator) Close() {
	o.closeOnce.Do(func() {
		o.playback.teardown()
	})
}

func (o *Orchestrator) emitEvent(event events.Event) { o.emit(event) }

// notifyError converts an operation failure into a single user-facing
// notification; nothing propagates further.
func (o *Orchestrator) notifyError(title string, err error) {
	notification := notificationFromError(title, err)
	logger.Warn(notification.Title,
		"message", notification.Message,
		"severity", string(notification.Severity),
	)
	o.emitEvent(events.NewNotificationRaised(notification.Title, notification.Message, notification.Severity))
}

// DeleteSession explicitly releases the current session. Local invalidation
// always happens; the remote delete is best-effort and a session the service
// already forgot is treated as deleted.
func (o *Orchestrator) DeleteSession(ctx context.Context) {
	o.mu.Lock()
	sessionID := o.sessionID
	o.mu.Unlock()

	if sessionID == "" {
		o.notifyError("No session", &ValidationError{Reason: "no active session to delete"})
		return
	}

	var deleteErr error
	if o.backend != nil {
		deleteErr = o.backend.DeleteSession(ctx, sessionID)
	}

	o.mu.Lock()
	if o.sessionID == sessionID {
		o.sessionID = ""
	}
	o.mu.Unlock()
	o.emitEvent(events.NewSessionDeleted(sessionID))

	var requestErr *backend.RequestError
	if deleteErr != nil && !(errors.As(deleteErr, &requestErr) && requestErr.StatusCode == 404) {
		o.notifyError("Session cleanup failed", deleteErr)
	}
}

func (o *Orchestrator) SessionID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sessionID
}

func (o *Orchestrator) HasSession() bool { return o.SessionID() != "" }

func (o *Orchestrator) Answer() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.answer
}

func (o *Orchestrator) ContextSnippets() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return slices.Clone(o.snippets)
}

func (o *Orchestrator) IsIngesting() bool { return o.ingestGuard.inFlight() }
func (o *Orchestrator) IsQuerying() bool  { return o.queryGuard.inFlight() }

func (o *Orchestrator) PlaybackState() PlaybackState { return o.playback.State() }

// ReadAloud speaks the current answer. Without an answer it raises a
// validation notification; while speech is already generating or playing the
// call is ignored.
func (o *Orchestrator) ReadAloud(ctx context.Context) {
	o.mu.Lock()
	answer := o.answer
	o.mu.Unlock()
	o.playback.ReadAloud(ctx, answer)
}

// TogglePlaybackPause suspends running read-aloud playback or resumes it
// from where it paused, without synthesizing the answer again.
func (o *Orchestrator) TogglePlaybackPause() { o.playback.TogglePause() }

// DegradedMode reports whether the model catalog fetch failed and the
// built-in defaults are in effect.
func (o *Orchestrator) DegradedMode() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.degraded
}
