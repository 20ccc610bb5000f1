package orchestration

import (
	"context"
	"fmt"
	"slices"

	"github.com/koscakluka/docqa-core/core/events"
	"go.opentelemetry.io/otel/codes"
)

// The setters below are the only writers of configuration and source state.
// None of them performs I/O; each applies the value and, as a side effect,
// voids the current session, since a session id is only valid for the exact
// configuration and source that produced it.

func (o *Orchestrator) SetLLMModel(id string) {
	o.mu.Lock()
	if id == "" || o.config.LLMModel == id {
		o.mu.Unlock()
		return
	}
	o.config.LLMModel = id
	sessionID, invalidated := o.invalidateSessionLocked()
	o.mu.Unlock()

	if invalidated {
		o.emitEvent(events.NewSessionInvalidated(sessionID, "llm model changed"))
	}
}

func (o *Orchestrator) SetEmbeddingModel(id string) {
	o.mu.Lock()
	if id == "" || o.config.EmbeddingModel == id {
		o.mu.Unlock()
		return
	}
	o.config.EmbeddingModel = id
	sessionID, invalidated := o.invalidateSessionLocked()
	o.mu.Unlock()

	if invalidated {
		o.emitEvent(events.NewSessionInvalidated(sessionID, "embedding model changed"))
	}
}

// SetSourceType switches between document and url ingestion. A source kind
// change discards all source-specific state: the selected document, the url
// text, the answer, and (through the answer) any loaded playback resource.
func (o *Orchestrator) SetSourceType(sourceType SourceType) {
	if sourceType != SourceTypeDocument && sourceType != SourceTypeURL {
		return
	}

	o.mu.Lock()
	if o.config.SourceType == sourceType {
		o.mu.Unlock()
		return
	}
	o.config.SourceType = sourceType
	o.documentPath = ""
	o.sourceURL = ""
	answerCleared := o.answer != "" || o.snippets != nil
	o.answer = ""
	o.snippets = nil
	sessionID, invalidated := o.invalidateSessionLocked()
	o.mu.Unlock()

	o.playback.reset()
	if invalidated {
		o.emitEvent(events.NewSessionInvalidated(sessionID, "source type changed"))
	}
	if answerCleared {
		o.emitEvent(events.NewAnswerCleared())
	}
}

// SetDocument selects the document to ingest by path.
func (o *Orchestrator) SetDocument(path string) {
	o.mu.Lock()
	if o.documentPath == path {
		o.mu.Unlock()
		return
	}
	o.documentPath = path
	sessionID, invalidated := o.invalidateSessionLocked()
	o.mu.Unlock()

	if invalidated {
		o.emitEvent(events.NewSessionInvalidated(sessionID, "document changed"))
	}
}

// SetURL sets the website url to ingest. Any change of the text voids the
// session, even before ingestion is re-run.
func (o *Orchestrator) SetURL(text string) {
	o.mu.Lock()
	if o.sourceURL == text {
		o.mu.Unlock()
		return
	}
	o.sourceURL = text
	sessionID, invalidated := o.invalidateSessionLocked()
	o.mu.Unlock()

	if invalidated {
		o.emitEvent(events.NewSessionInvalidated(sessionID, "url changed"))
	}
}

// SetTone selects the response tone for subsequent queries. Tone is a
// per-query parameter, not part of the ingested index, so it does not void
// the session.
func (o *Orchestrator) SetTone(tone string) {
	if tone == "" {
		return
	}
	o.mu.Lock()
	o.config.Tone = tone
	o.mu.Unlock()
}

// invalidateSessionLocked nulls the session id and reports whether there was
// one to void. Callers must hold o.mu and emit the invalidation event after
// unlocking.
func (o *Orchestrator) invalidateSessionLocked() (string, bool) {
	if o.sessionID == "" {
		return "", false
	}
	sessionID := o.sessionID
	o.sessionID = ""
	return sessionID, true
}

// refreshModelCatalog fetches the available model lists once at startup. On
// failure the built-in defaults stay in effect and the engine flags itself
// degraded instead of swallowing the failure silently.
func (o *Orchestrator) refreshModelCatalog(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "refresh model catalog")
	defer span.End()

	catalog, err := o.backend.Models(ctx)
	if err != nil {
		recordedErr := fmt.Errorf("failed to fetch model catalog: %w", err)
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())

		o.mu.Lock()
		o.degraded = true
		o.mu.Unlock()
		o.emitEvent(events.NewModelCatalogDegraded(err.Error()))
		return
	}

	var invalidations []events.Event
	o.mu.Lock()
	o.degraded = false
	if len(catalog.LLMModels) > 0 {
		o.catalog.LLMModels = slices.Clone(catalog.LLMModels)
		if !slices.Contains(o.catalog.LLMModels, o.config.LLMModel) {
			o.config.LLMModel = o.catalog.LLMModels[0]
			if sessionID, invalidated := o.invalidateSessionLocked(); invalidated {
				invalidations = append(invalidations, events.NewSessionInvalidated(sessionID, "llm model changed"))
			}
		}
	}
	if len(catalog.EmbeddingModels) > 0 {
		o.catalog.EmbeddingModels = slices.Clone(catalog.EmbeddingModels)
		if !slices.Contains(o.catalog.EmbeddingModels, o.config.EmbeddingModel) {
			o.config.EmbeddingModel = o.catalog.EmbeddingModels[0]
			if sessionID, invalidated := o.invalidateSessionLocked(); invalidated {
				invalidations = append(invalidations, events.NewSessionInvalidated(sessionID, "embedding model changed"))
			}
		}
	}
	llmModels := slices.Clone(o.catalog.LLMModels)
	embeddingModels := slices.Clone(o.catalog.EmbeddingModels)
	o.mu.Unlock()

	for _, event := range invalidations {
		o.emitEvent(event)
	}
	o.emitEvent(events.NewModelCatalogUpdated(llmModels, embeddingModels))
}
