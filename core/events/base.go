package events

import "time"

// Kind names an event type; doc.go lists the full namespace.
type Kind string

// Event is the common surface of everything the engine emits.
type Event interface {
	Kind() Kind
	Timestamp() time.Time
}

// Base carries the kind and emission time shared by all events. Concrete
// events embed it and add their payload fields.
type Base struct {
	kind      Kind
	timestamp time.Time
}

func NewBase(kind Kind) Base {
	return Base{kind: kind, timestamp: time.Now()}
}

func (b Base) Kind() Kind { return b.kind }

func (b Base) Timestamp() time.Time { return b.timestamp }
