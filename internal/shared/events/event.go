package events

// Event is the contract an event type implements to travel through the bus.
// The type parameter makes DecodePayload return the concrete type, so the only
// place an envelope payload is handled untyped is inside the event's own codec
// pair. Decode errors should wrap ErrDecodePayload so subscribers and logs can
// classify them.
type Event[E any] interface {
	// EventName is the stable routing name of the event type, for example
	// "note.added". Envelopes carry it and subscriptions match on it.
	EventName() string

	// EncodePayload flattens the event into an envelope payload.
	EncodePayload() (map[string]any, error)

	// DecodePayload rebuilds a typed event from an envelope payload. It is
	// declared on the value type so the bus can invoke it on a zero E.
	DecodePayload(payload map[string]any) (E, error)
}
