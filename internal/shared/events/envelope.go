package events

import "time"

// Envelope is the transport shape every typed event is flattened into.
// Name routes the envelope; Payload carries the event type's own encoding.
// Envelopes never leave the process, so payload values keep their native Go
// types instead of a wire encoding.
type Envelope struct {
	Name       string
	EventID    string
	Source     string
	OccurredAt time.Time
	Payload    map[string]any
}
