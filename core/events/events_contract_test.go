package events

import "testing"

func TestConstructorsEmitExpectedKinds(t *testing.T) {
	testCases := []struct {
		name     string
		event    Event
		expected Kind
	}{
		{name: "model catalog updated", event: NewModelCatalogUpdated([]string{"mistral"}, []string{"all-MiniLM-L6-v2"}), expected: KindModelCatalogUpdated},
		{name: "model catalog degraded", event: NewModelCatalogDegraded("fetch failed"), expected: KindModelCatalogDegraded},
		{name: "session established", event: NewSessionEstablished("s1"), expected: KindSessionEstablished},
		{name: "session invalidated", event: NewSessionInvalidated("s1", "llm model changed"), expected: KindSessionInvalidated},
		{name: "session deleted", event: NewSessionDeleted("s1"), expected: KindSessionDeleted},
		{name: "ingestion started", event: NewIngestionStarted("url", "https://example.com"), expected: KindIngestionStarted},
		{name: "ingestion completed", event: NewIngestionCompleted("s1"), expected: KindIngestionCompleted},
		{name: "ingestion failed", event: NewIngestionFailed("bad pdf"), expected: KindIngestionFailed},
		{name: "query started", event: NewQueryStarted("summarize"), expected: KindQueryStarted},
		{name: "query answered", event: NewQueryAnswered("answer", nil), expected: KindQueryAnswered},
		{name: "query failed", event: NewQueryFailed("session not found"), expected: KindQueryFailed},
		{name: "answer cleared", event: NewAnswerCleared(), expected: KindAnswerCleared},
		{name: "speech generating", event: NewSpeechGenerating("answer"), expected: KindSpeechGenerating},
		{name: "speech playback started", event: NewSpeechPlaybackStarted("r1"), expected: KindSpeechPlaybackStarted},
		{name: "speech playback paused", event: NewSpeechPlaybackPaused("r1"), expected: KindSpeechPlaybackPaused},
		{name: "speech playback resumed", event: NewSpeechPlaybackResumed("r1"), expected: KindSpeechPlaybackResumed},
		{name: "speech playback ended", event: NewSpeechPlaybackEnded("r1", false), expected: KindSpeechPlaybackEnded},
		{name: "speech playback failed", event: NewSpeechPlaybackFailed("rejected"), expected: KindSpeechPlaybackFailed},
		{name: "notification raised", event: NewNotificationRaised("Error", "bad pdf", SeverityError), expected: KindNotificationRaised},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.event.Kind(); got != testCase.expected {
				t.Fatalf("expected kind %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestPlaybackLifecycleKindsAreDistinct(t *testing.T) {
	seen := map[Kind]bool{}
	for _, event := range []Event{
		NewSpeechGenerating(""),
		NewSpeechPlaybackStarted(""),
		NewSpeechPlaybackPaused(""),
		NewSpeechPlaybackResumed(""),
		NewSpeechPlaybackEnded("", false),
		NewSpeechPlaybackFailed(""),
	} {
		if seen[event.Kind()] {
			t.Fatalf("expected distinct playback kinds, %q reused by %T", event.Kind(), event)
		}
		seen[event.Kind()] = true
	}
}
