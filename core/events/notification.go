package events

const (
	// KindNotificationRaised identifies a user-facing title+message.
	KindNotificationRaised Kind = "notification.raised"
)

// Severity grades a notification for presentation purposes only.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// NotificationRaised carries a user-facing notification produced at an
// operation boundary. This is the only error surface of the engine.
type NotificationRaised struct {
	Base
	Title    string
	Message  string
	Severity Severity
}

// NewNotificationRaised creates a notification raised event.
func NewNotificationRaised(title, message string, severity Severity) NotificationRaised {
	return NotificationRaised{Base: NewBase(KindNotificationRaised), Title: title, Message: message, Severity: severity}
}
