package orchestration

import (
	"errors"
	"fmt"

	"github.com/koscakluka/docqa-core/core/backend"
	"github.com/koscakluka/docqa-core/core/events"
)

// ValidationError is a locally detected missing precondition (no document,
// blank url/question, no session). It is raised before any network call and
// is always recoverable by user input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// PlaybackRejectedError wraps an environment refusing to start or continue
// audio playback after speech was already synthesized.
type PlaybackRejectedError struct {
	Err error
}

func (e *PlaybackRejectedError) Error() string {
	return fmt.Sprintf("playback rejected: %v", e.Err)
}

func (e *PlaybackRejectedError) Unwrap() error { return e.Err }

// Notification is the single user-facing failure surface of the engine:
// every operation converts its errors into one of these instead of
// propagating them.
type Notification struct {
	Title    string
	Message  string
	Severity events.Severity
}

// notificationFromError grades an error by taxonomy: validation problems are
// warnings the user can fix by input, everything else (request failures with
// their detail message, transport failures, rejected playback) is an error.
func notificationFromError(title string, err error) Notification {
	notification := Notification{Title: title, Message: err.Error(), Severity: events.SeverityError}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		notification.Severity = events.SeverityWarning
		notification.Message = validationErr.Reason
		return notification
	}

	var requestErr *backend.RequestError
	if errors.As(err, &requestErr) {
		// detail message straight from the service when it sent one
		notification.Message = requestErr.Error()
	}

	return notification
}
