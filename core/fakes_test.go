package orchestration

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/koscakluka/docqa-core/core/audio"
	"github.com/koscakluka/docqa-core/core/backend"
	"github.com/koscakluka/docqa-core/core/events"
	"github.com/koscakluka/docqa-core/core/texttospeech"
)

type fakeBackend struct {
	mu sync.Mutex

	modelsCatalog *backend.ModelCatalog
	modelsErr     error
	modelsCalls   int

	uploadReceipt *backend.IngestReceipt
	uploadErr     error
	uploadCalls   int
	uploadGate    chan struct{}

	lastUploadName           string
	lastUploadContent        []byte
	lastUploadLLMModel       string
	lastUploadEmbeddingModel string

	processReceipt *backend.IngestReceipt
	processErr     error
	processCalls   int
	lastProcessURL string

	queryResult   *backend.QueryResult
	queryErr      error
	queryCalls    int
	lastSessionID string
	lastQuery     backend.QueryRequest

	deleteErr        error
	deleteCalls      int
	deletedSessionID string
}

func (b *fakeBackend) Models(ctx context.Context) (*backend.ModelCatalog, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.modelsCalls++
	if b.modelsErr != nil {
		return nil, b.modelsErr
	}
	if b.modelsCatalog != nil {
		return b.modelsCatalog, nil
	}
	return &backend.ModelCatalog{
		LLMModels:       []string{"mistral", "llava"},
		EmbeddingModels: []string{"all-MiniLM-L6-v2", "all-mpnet-base-v2", "nomic-embed-text"},
	}, nil
}

func (b *fakeBackend) UploadDocument(ctx context.Context, document backend.Document, llmModel, embeddingModel string) (*backend.IngestReceipt, error) {
	content, _ := io.ReadAll(document.Content)

	b.mu.Lock()
	b.uploadCalls++
	b.lastUploadName = document.Name
	b.lastUploadContent = content
	b.lastUploadLLMModel = llmModel
	b.lastUploadEmbeddingModel = embeddingModel
	gate := b.uploadGate
	receipt, err := b.uploadReceipt, b.uploadErr
	b.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	if receipt != nil {
		return receipt, nil
	}
	return &backend.IngestReceipt{SessionID: "session-1"}, nil
}

func (b *fakeBackend) ProcessURL(ctx context.Context, sourceURL, llmModel, embeddingModel string) (*backend.IngestReceipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.processCalls++
	b.lastProcessURL = sourceURL
	if b.processErr != nil {
		return nil, b.processErr
	}
	if b.processReceipt != nil {
		return b.processReceipt, nil
	}
	return &backend.IngestReceipt{SessionID: "session-1"}, nil
}

func (b *fakeBackend) Query(ctx context.Context, sessionID string, request backend.QueryRequest) (*backend.QueryResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queryCalls++
	b.lastSessionID = sessionID
	b.lastQuery = request
	if b.queryErr != nil {
		return nil, b.queryErr
	}
	if b.queryResult != nil {
		return b.queryResult, nil
	}
	return &backend.QueryResult{Answer: "the answer"}, nil
}

func (b *fakeBackend) DeleteSession(ctx context.Context, sessionID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleteCalls++
	b.deletedSessionID = sessionID
	return b.deleteErr
}

type fakeSynthesizer struct {
	mu sync.Mutex

	speech []byte
	err    error
	calls  int
	gate   chan struct{}

	lastText string
}

func (s *fakeSynthesizer) Synthesize(ctx context.Context, text string, opts ...texttospeech.SynthesizeOption) ([]byte, error) {
	s.mu.Lock()
	s.calls++
	s.lastText = text
	gate := s.gate
	speech, err := s.speech, s.err
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	if speech != nil {
		return speech, nil
	}
	return []byte("speech-bytes"), nil
}

func (s *fakeSynthesizer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type fakeAudioOutput struct {
	mu sync.Mutex

	openErr   error
	openCalls int
	playbacks []*fakePlayback
}

func (o *fakeAudioOutput) EncodingInfo() audio.EncodingInfo {
	return audio.GetDefaultEncodingInfo()
}

func (o *fakeAudioOutput) Open(speech []byte, callbacks audio.PlaybackCallbacks) (audio.Playback, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.openCalls++
	if o.openErr != nil {
		return nil, o.openErr
	}
	playback := &fakePlayback{speech: speech, callbacks: callbacks}
	o.playbacks = append(o.playbacks, playback)
	return playback, nil
}

func (o *fakeAudioOutput) lastPlayback() *fakePlayback {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.playbacks) == 0 {
		return nil
	}
	return o.playbacks[len(o.playbacks)-1]
}

func (o *fakeAudioOutput) openCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.openCalls
}

type fakePlayback struct {
	mu sync.Mutex

	speech    []byte
	callbacks audio.PlaybackCallbacks

	playCalls   int
	pauseCalls  int
	resumeCalls int
	closeCalls  int

	playErr   error
	pauseErr  error
	resumeErr error
}

func (p *fakePlayback) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playCalls++
	return p.playErr
}

func (p *fakePlayback) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pauseCalls++
	return p.pauseErr
}

func (p *fakePlayback) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resumeCalls++
	return p.resumeErr
}

func (p *fakePlayback) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeCalls++
	return nil
}

func (p *fakePlayback) closeCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeCalls
}

// start simulates the sink pulling the first audio.
func (p *fakePlayback) start() { p.callbacks.OnStarted() }

// finish simulates the sink draining the blob.
func (p *fakePlayback) finish() { p.callbacks.OnEnded() }

type eventRecorder struct {
	mu       sync.Mutex
	recorded []events.Event
}

func (r *eventRecorder) record(event events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recorded = append(r.recorded, event)
}

func (r *eventRecorder) all() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Event, len(r.recorded))
	copy(out, r.recorded)
	return out
}

func (r *eventRecorder) lastOfKind(kind events.Kind) events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.recorded) - 1; i >= 0; i-- {
		if r.recorded[i].Kind() == kind {
			return r.recorded[i]
		}
	}
	return nil
}

func (r *eventRecorder) countOfKind(kind events.Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, event := range r.recorded {
		if event.Kind() == kind {
			count++
		}
	}
	return count
}

func (r *eventRecorder) waitFor(t *testing.T, kind events.Kind) events.Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if event := r.lastOfKind(kind); event != nil {
			return event
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for event %q", kind)
	return nil
}

type notificationRecorder struct {
	mu       sync.Mutex
	recorded []Notification
}

func (r *notificationRecorder) record(notification Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recorded = append(r.recorded, notification)
}

func (r *notificationRecorder) all() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.recorded))
	copy(out, r.recorded)
	return out
}

func (r *notificationRecorder) last() *Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.recorded) == 0 {
		return nil
	}
	notification := r.recorded[len(r.recorded)-1]
	return &notification
}

func waitUntil(t *testing.T, condition func() bool, description string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", description)
}
