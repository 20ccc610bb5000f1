package orchestration

import (
	"context"

	"github.com/koscakluka/docqa-core/core/audio"
	"github.com/koscakluka/docqa-core/core/backend"
	"github.com/koscakluka/docqa-core/core/events"
	"github.com/koscakluka/docqa-core/core/texttospeech"
)

type OrchestratorOption func(*Orchestrator)

// Backend is the remote RAG service surface the engine depends on. It owns
// sessions and all retrieval/generation work; the engine only sequences
// requests against it.
type Backend interface {
	Models(ctx context.Context) (*backend.ModelCatalog, error)
	UploadDocument(ctx context.Context, document backend.Document, llmModel, embeddingModel string) (*backend.IngestReceipt, error)
	ProcessURL(ctx context.Context, sourceURL, llmModel, embeddingModel string) (*backend.IngestReceipt, error)
	Query(ctx context.Context, sessionID string, request backend.QueryRequest) (*backend.QueryResult, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

func WithBackendClient(client Backend) OrchestratorOption {
	return func(o *Orchestrator) {
		o.backend = client
		// a backend that can also synthesize speech doubles as the default
		// synthesizer unless one was wired explicitly
		if o.synthesizer == nil {
			if synthesizer, ok := client.(SpeechSynthesizer); ok {
				o.synthesizer = synthesizer
			}
		}
	}
}

// SpeechSynthesizer turns a finished answer into one playable byte blob.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string, opts ...texttospeech.SynthesizeOption) ([]byte, error)
}

func WithSpeechSynthesizer(synthesizer SpeechSynthesizer) OrchestratorOption {
	return func(o *Orchestrator) { o.synthesizer = synthesizer }
}

// AudioOutput loads one speech blob into a playable resource. Open must not
// start playback; the returned handle owns the resource until Close.
type AudioOutput interface {
	EncodingInfo() audio.EncodingInfo
	Open(speech []byte, callbacks audio.PlaybackCallbacks) (audio.Playback, error)
}

func WithAudioOutput(output AudioOutput) OrchestratorOption {
	return func(o *Orchestrator) { o.playback.setOutput(output) }
}

func WithLLMModel(id string) OrchestratorOption {
	return func(o *Orchestrator) {
		if id != "" {
			o.config.LLMModel = id
		}
	}
}

func WithEmbeddingModel(id string) OrchestratorOption {
	return func(o *Orchestrator) {
		if id != "" {
			o.config.EmbeddingModel = id
		}
	}
}

func WithSourceType(sourceType SourceType) OrchestratorOption {
	return func(o *Orchestrator) {
		if sourceType == SourceTypeDocument || sourceType == SourceTypeURL {
			o.config.SourceType = sourceType
		}
	}
}

func WithTone(tone string) OrchestratorOption {
	return func(o *Orchestrator) {
		if tone != "" {
			o.config.Tone = tone
		}
	}
}

func WithTopK(topK int) OrchestratorOption {
	return func(o *Orchestrator) {
		if topK > 0 {
			o.config.TopK = topK
		}
	}
}

// WithModelCatalog replaces the built-in default model lists used until the
// remote catalog is fetched.
func WithModelCatalog(llmModels, embeddingModels []string) OrchestratorOption {
	return func(o *Orchestrator) {
		if len(llmModels) > 0 {
			o.catalog.LLMModels = llmModels
		}
		if len(embeddingModels) > 0 {
			o.catalog.EmbeddingModels = embeddingModels
		}
	}
}

// WithSpeechLanguage sets the language code passed to the synthesizer.
func WithSpeechLanguage(language string) OrchestratorOption {
	return func(o *Orchestrator) {
		if language != "" {
			o.playback.language = language
		}
	}
}

// WithSlowSpeech asks the synthesizer to slow speech down.
func WithSlowSpeech() OrchestratorOption {
	return func(o *Orchestrator) { o.playback.slowSpeech = true }
}

type OrchestrateOptions struct {
	onModelCatalogUpdated func(llmModels, embeddingModels []string)
	onDegradedMode        func(reason string)
	onSessionChanged      func(sessionID string)
	onIngesting           func(isIngesting bool)
	onQuerying            func(isQuerying bool)
	onAnswer              func(answer string)
	onPlaybackState       func(state PlaybackState)
	onNotification        func(notification Notification)
	onEvent               func(event events.Event)
}

type OrchestrateOption func(*OrchestrateOptions)

// WithModelCatalogUpdatedCallback registers a callback for refreshed model
// lists from the remote service.
func WithModelCatalogUpdatedCallback(callback func(llmModels, embeddingModels []string)) OrchestrateOption {
	return func(o *OrchestrateOptions) { o.onModelCatalogUpdated = callback }
}

// WithDegradedModeCallback registers a callback for the catalog fetch
// failing. The engine stays usable on its built-in defaults; this exists so
// the degradation is observable rather than silently swallowed.
func WithDegradedModeCallback(callback func(reason string)) OrchestrateOption {
	return func(o *OrchestrateOptions) { o.onDegradedMode = callback }
}

// WithSessionChangedCallback registers a callback for every session id
// transition, including invalidation to the empty id.
func WithSessionChangedCallback(callback func(sessionID string)) OrchestrateOption {
	return func(o *OrchestrateOptions) { o.onSessionChanged = callback }
}

func WithIngestingCallback(callback func(isIngesting bool)) OrchestrateOption {
	return func(o *OrchestrateOptions) { o.onIngesting = callback }
}

func WithQueryingCallback(callback func(isQuerying bool)) OrchestrateOption {
	return func(o *OrchestrateOptions) { o.onQuerying = callback }
}

// WithAnswerCallback registers a callback for answer transitions. The
// callback fires with the empty string when a new query attempt clears the
// previous answer, so stale answers are never displayed against an in-flight
// question.
func WithAnswerCallback(callback func(answer string)) OrchestrateOption {
	return func(o *OrchestrateOptions) { o.onAnswer = callback }
}

func WithPlaybackStateCallback(callback func(state PlaybackState)) OrchestrateOption {
	return func(o *OrchestrateOptions) { o.onPlaybackState = callback }
}

// WithNotificationCallback registers the user-facing notification sink. All
// operation failures end up here as a title and message.
func WithNotificationCallback(callback func(notification Notification)) OrchestrateOption {
	return func(o *OrchestrateOptions) { o.onNotification = callback }
}

// WithEventCallback registers a raw tap on every orchestration event, useful
// for logging or bridging into another event loop.
func WithEventCallback(callback func(event events.Event)) OrchestrateOption {
	return func(o *OrchestrateOptions) { o.onEvent = callback }
}
