package events

const (
	// KindIngestionStarted identifies an in-flight upload or process-url request.
	KindIngestionStarted Kind = "ingestion.started"
	// KindIngestionCompleted identifies a processed source with a session issued.
	KindIngestionCompleted Kind = "ingestion.completed"
	// KindIngestionFailed identifies a failed ingestion attempt.
	KindIngestionFailed Kind = "ingestion.failed"
)

// IngestionStarted marks the start of an ingestion request.
type IngestionStarted struct {
	Base
	SourceType string
	Source     string
}

// NewIngestionStarted creates an ingestion started event.
func NewIngestionStarted(sourceType, source string) IngestionStarted {
	return IngestionStarted{Base: NewBase(KindIngestionStarted), SourceType: sourceType, Source: source}
}

// IngestionCompleted marks a successfully processed source.
type IngestionCompleted struct {
	Base
	SessionID string
}

// NewIngestionCompleted creates an ingestion completed event.
func NewIngestionCompleted(sessionID string) IngestionCompleted {
	return IngestionCompleted{Base: NewBase(KindIngestionCompleted), SessionID: sessionID}
}

// IngestionFailed marks a failed ingestion attempt. Session state is
// untouched when this is emitted.
type IngestionFailed struct {
	Base
	Message string
}

// NewIngestionFailed creates an ingestion failed event.
func NewIngestionFailed(message string) IngestionFailed {
	return IngestionFailed{Base: NewBase(KindIngestionFailed), Message: message}
}
