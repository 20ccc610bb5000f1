package orchestration

import (
	"context"
	"errors"
	"testing"

	"github.com/koscakluka/docqa-core/core/backend"
	"github.com/koscakluka/docqa-core/core/events"
)

func TestNewOrchestratorDefaults(t *testing.T) {
	orchestrator := NewOrchestrator()

	state := orchestrator.StateV1()
	if state.LLMModel != "mistral" {
		t.Fatalf("expected default llm model %q, got %q", "mistral", state.LLMModel)
	}
	if state.EmbeddingModel != "all-MiniLM-L6-v2" {
		t.Fatalf("expected default embedding model %q, got %q", "all-MiniLM-L6-v2", state.EmbeddingModel)
	}
	if state.SourceType != SourceTypeDocument {
		t.Fatalf("expected default source type %q, got %q", SourceTypeDocument, state.SourceType)
	}
	if state.Tone != "neutral" || state.TopK != 5 {
		t.Fatalf("expected default tone and top_k, got %q / %d", state.Tone, state.TopK)
	}
	if state.SessionID != "" || state.Answer != "" {
		t.Fatalf("expected no session or answer on a fresh orchestrator")
	}
	if state.PlaybackState != PlaybackIdle {
		t.Fatalf("expected idle playback, got %q", state.PlaybackState)
	}
}

func TestOrchestratorOptionsOverrideDefaults(t *testing.T) {
	orchestrator := NewOrchestrator(
		WithLLMModel("llava"),
		WithEmbeddingModel("nomic-embed-text"),
		WithSourceType(SourceTypeURL),
		WithTone("simple"),
		WithTopK(7),
		WithModelCatalog([]string{"llava"}, []string{"nomic-embed-text"}),
	)

	state := orchestrator.StateV1()
	if state.LLMModel != "llava" || state.EmbeddingModel != "nomic-embed-text" {
		t.Fatalf("expected configured models, got %q / %q", state.LLMModel, state.EmbeddingModel)
	}
	if state.SourceType != SourceTypeURL || state.Tone != "simple" || state.TopK != 7 {
		t.Fatalf("expected configured source, tone and top_k, got %+v", state)
	}
	if len(state.LLMModels) != 1 || len(state.EmbeddingModels) != 1 {
		t.Fatalf("expected the seeded catalog, got %v / %v", state.LLMModels, state.EmbeddingModels)
	}
}

func TestStateV1SnapshotIsDetached(t *testing.T) {
	orchestrator := NewOrchestrator(WithBackendClient(&fakeBackend{
		queryResult: &backend.QueryResult{Answer: "ok", ContextSnippets: []string{"one"}},
	}))
	orchestrator.Orchestrate(context.Background())

	establishSession(t, orchestrator, writeTestDocument(t))
	orchestrator.Ask(context.Background(), "q")

	state := orchestrator.StateV1()
	state.ContextSnippets[0] = "mutated"
	state.LLMModels[0] = "mutated"

	if orchestrator.ContextSnippets()[0] != "one" {
		t.Fatalf("expected the snapshot detached from orchestrator state")
	}
	if orchestrator.StateV1().LLMModels[0] == "mutated" {
		t.Fatalf("expected the catalog detached from the snapshot")
	}
}

func TestDeleteSessionWithoutSessionRaisesWarning(t *testing.T) {
	notifications := &notificationRecorder{}
	backendFake := &fakeBackend{}
	orchestrator := NewOrchestrator(WithBackendClient(backendFake))
	orchestrator.Orchestrate(context.Background(), WithNotificationCallback(notifications.record))

	orchestrator.DeleteSession(context.Background())

	notification := notifications.last()
	if notification == nil || notification.Severity != events.SeverityWarning {
		t.Fatalf("expected a validation warning, got %+v", notification)
	}
	backendFake.mu.Lock()
	defer backendFake.mu.Unlock()
	if backendFake.deleteCalls != 0 {
		t.Fatalf("expected no remote delete without a session")
	}
}

func TestDeleteSessionClearsLocalState(t *testing.T) {
	recorder := &eventRecorder{}
	backendFake := &fakeBackend{}
	orchestrator := NewOrchestrator(WithBackendClient(backendFake))
	orchestrator.Orchestrate(context.Background(), WithEventCallback(recorder.record))

	establishSession(t, orchestrator, writeTestDocument(t))

	orchestrator.DeleteSession(context.Background())

	if orchestrator.HasSession() {
		t.Fatalf("expected the session cleared")
	}
	backendFake.mu.Lock()
	deleted := backendFake.deletedSessionID
	backendFake.mu.Unlock()
	if deleted != "session-1" {
		t.Fatalf("expected the remote delete for %q, got %q", "session-1", deleted)
	}
	if recorder.lastOfKind(events.KindSessionDeleted) == nil {
		t.Fatalf("expected a session deleted event")
	}
}

func TestDeleteSessionTreatsUnknownSessionAsDeleted(t *testing.T) {
	notifications := &notificationRecorder{}
	backendFake := &fakeBackend{
		deleteErr: &backend.RequestError{StatusCode: 404, Detail: "Session not found"},
	}
	orchestrator := NewOrchestrator(WithBackendClient(backendFake))
	orchestrator.Orchestrate(context.Background(), WithNotificationCallback(notifications.record))

	establishSession(t, orchestrator, writeTestDocument(t))

	orchestrator.DeleteSession(context.Background())

	if orchestrator.HasSession() {
		t.Fatalf("expected the session cleared even when the service already forgot it")
	}
	if notification := notifications.last(); notification != nil {
		t.Fatalf("expected no notification for an already forgotten session, got %+v", notification)
	}
}

func TestDeleteSessionSurfacesOtherRemoteFailures(t *testing.T) {
	notifications := &notificationRecorder{}
	backendFake := &fakeBackend{deleteErr: errors.New("connection reset")}
	orchestrator := NewOrchestrator(WithBackendClient(backendFake))
	orchestrator.Orchestrate(context.Background(), WithNotificationCallback(notifications.record))

	establishSession(t, orchestrator, writeTestDocument(t))

	orchestrator.DeleteSession(context.Background())

	if orchestrator.HasSession() {
		t.Fatalf("expected local invalidation regardless of the remote failure")
	}
	notification := notifications.last()
	if notification == nil || notification.Severity != events.SeverityError {
		t.Fatalf("expected an error notification, got %+v", notification)
	}
}

// Full round trip: ingest, ask, read aloud, pause, resume, natural end.
func TestOrchestratorEndToEndFlow(t *testing.T) {
	recorder := &eventRecorder{}
	synthesizer := &fakeSynthesizer{}
	output := &fakeAudioOutput{}
	backendFake := &fakeBackend{
		queryResult: &backend.QueryResult{Answer: "otters hold hands while sleeping"},
	}
	orchestrator := NewOrchestrator(
		WithBackendClient(backendFake),
		WithSpeechSynthesizer(synthesizer),
		WithAudioOutput(output),
	)
	defer orchestrator.Close()
	orchestrator.Orchestrate(context.Background(), WithEventCallback(recorder.record))

	establishSession(t, orchestrator, writeTestDocument(t))
	orchestrator.Ask(context.Background(), "tell me something about otters")
	orchestrator.ReadAloud(context.Background())

	playback := output.lastPlayback()
	if playback == nil {
		t.Fatalf("expected a playback resource")
	}
	playback.start()
	orchestrator.TogglePlaybackPause()
	orchestrator.TogglePlaybackPause()
	playback.finish()

	synthesizer.mu.Lock()
	spokenText := synthesizer.lastText
	synthesizer.mu.Unlock()
	if spokenText != "otters hold hands while sleeping" {
		t.Fatalf("expected the answer synthesized, got %q", spokenText)
	}

	wantOrder := []events.Kind{
		events.KindSessionEstablished,
		events.KindQueryAnswered,
		events.KindSpeechGenerating,
		events.KindSpeechPlaybackStarted,
		events.KindSpeechPlaybackPaused,
		events.KindSpeechPlaybackResumed,
		events.KindSpeechPlaybackEnded,
	}
	all := recorder.all()
	index := 0
	for _, event := range all {
		if index < len(wantOrder) && event.Kind() == wantOrder[index] {
			index++
		}
	}
	if index != len(wantOrder) {
		kinds := make([]events.Kind, len(all))
		for i, event := range all {
			kinds[i] = event.Kind()
		}
		t.Fatalf("expected event order %v, got %v", wantOrder, kinds)
	}

	if got := orchestrator.PlaybackState(); got != PlaybackIdle {
		t.Fatalf("expected idle playback after the natural end, got %q", got)
	}
}
