package events

const (
	// KindSessionEstablished identifies a freshly issued session id.
	KindSessionEstablished Kind = "session.established"
	// KindSessionInvalidated identifies a session voided by a local mutation.
	KindSessionInvalidated Kind = "session.invalidated"
	// KindSessionDeleted identifies an explicitly deleted session.
	KindSessionDeleted Kind = "session.deleted"
)

// SessionEstablished marks a session id issued by successful ingestion.
type SessionEstablished struct {
	Base
	SessionID string
}

// NewSessionEstablished creates a session established event.
func NewSessionEstablished(sessionID string) SessionEstablished {
	return SessionEstablished{Base: NewBase(KindSessionEstablished), SessionID: sessionID}
}

// SessionInvalidated marks a session voided by a configuration or source
// mutation. Cause names the mutation that voided it.
type SessionInvalidated struct {
	Base
	SessionID string
	Cause     string
}

// NewSessionInvalidated creates a session invalidated event.
func NewSessionInvalidated(sessionID, cause string) SessionInvalidated {
	return SessionInvalidated{Base: NewBase(KindSessionInvalidated), SessionID: sessionID, Cause: cause}
}

// SessionDeleted marks an explicit session deletion.
type SessionDeleted struct {
	Base
	SessionID string
}

// NewSessionDeleted creates a session deleted event.
func NewSessionDeleted(sessionID string) SessionDeleted {
	return SessionDeleted{Base: NewBase(KindSessionDeleted), SessionID: sessionID}
}
