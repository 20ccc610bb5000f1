package orchestration

import "github.com/jinzhu/copier"

// StateV1 is a point-in-time copy of the engine's observable state, meant for
// display layers that render a whole frame at once instead of reacting to
// individual callbacks. The V1 suffix leaves room for an incompatible shape
// later without breaking consumers.
type StateV1 struct {
	LLMModel       string
	EmbeddingModel string
	SourceType     SourceType
	Tone           string
	TopK           int

	LLMModels       []string
	EmbeddingModels []string
	DegradedMode    bool

	DocumentPath string
	SourceURL    string

	SessionID       string
	Answer          string
	ContextSnippets []string

	IsIngesting   bool
	IsQuerying    bool
	PlaybackState PlaybackState
}

// StateV1 snapshots the current state. Slice fields are deep copied, so the
// caller can hold the snapshot across further mutations.
func (o *Orchestrator) StateV1() StateV1 {
	o.mu.Lock()
	state := StateV1{
		LLMModel:       o.config.LLMModel,
		EmbeddingModel: o.config.EmbeddingModel,
		SourceType:     o.config.SourceType,
		Tone:           o.config.Tone,
		TopK:           o.config.TopK,
		DegradedMode:   o.degraded,
		DocumentPath:   o.documentPath,
		SourceURL:      o.sourceURL,
		SessionID:      o.sessionID,
		Answer:         o.answer,
	}
	copier.CopyWithOption(&state.LLMModels, o.catalog.LLMModels, copier.Option{DeepCopy: true})
	copier.CopyWithOption(&state.EmbeddingModels, o.catalog.EmbeddingModels, copier.Option{DeepCopy: true})
	copier.CopyWithOption(&state.ContextSnippets, o.snippets, copier.Option{DeepCopy: true})
	o.mu.Unlock()

	state.IsIngesting = o.ingestGuard.inFlight()
	state.IsQuerying = o.queryGuard.inFlight()
	state.PlaybackState = o.playback.State()
	return state
}
