package orchestration

import (
	"context"
	"slices"
	"strings"

	"github.com/koscakluka/docqa-core/core/backend"
	"github.com/koscakluka/docqa-core/core/events"
	"go.opentelemetry.io/otel/codes"
)

// Ask sends one question against the established session.
//
// Both preconditions are checked before any network call, and the validation
// message names the one that is missing. The previous answer is cleared at
// attempt start, so a stale answer is never displayed against the in-flight
// question; clearing the answer also force-releases any loaded playback
// resource. At most one query is in flight at a time; there is no retry.
func (o *Orchestrator) Ask(ctx context.Context, question string) {
	token, acquired := o.queryGuard.acquire()
	if !acquired {
		return
	}
	defer o.queryGuard.release(token)

	ctx, span := tracer.Start(ctx, "ask question")
	defer span.End()

	question = strings.TrimSpace(question)
	if question == "" {
		o.notifyError("Query failed", &ValidationError{Reason: "no question provided"})
		return
	}

	o.mu.Lock()
	sessionID := o.sessionID
	config := o.config
	o.mu.Unlock()

	if sessionID == "" {
		o.notifyError("Query failed", &ValidationError{Reason: "no active session: upload a document or process a URL first"})
		return
	}
	if o.backend == nil {
		o.notifyError("Query failed", &ValidationError{Reason: "no backend configured"})
		return
	}

	o.mu.Lock()
	o.answer = ""
	o.snippets = nil
	o.mu.Unlock()
	o.playback.reset()
	o.emitEvent(events.NewQueryStarted(question))

	result, err := o.backend.Query(ctx, sessionID, backend.QueryRequest{
		Question:       question,
		LLMModel:       config.LLMModel,
		EmbeddingModel: config.EmbeddingModel,
		Tone:           config.Tone,
		TopK:           config.TopK,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.emitEvent(events.NewQueryFailed(err.Error()))
		o.notifyError("Query failed", err)
		return
	}

	o.mu.Lock()
	o.answer = result.Answer
	o.snippets = slices.Clone(result.ContextSnippets)
	o.mu.Unlock()

	o.emitEvent(events.NewQueryAnswered(result.Answer, slices.Clone(result.ContextSnippets)))
}
