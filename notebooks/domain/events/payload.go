package events

import (
	"fmt"
	"time"

	sharedevents "notekit/internal/shared/events"
)

// Payload helpers shared by the event codecs. Payload values stay native Go
// types: the envelope never leaves the process, so there is no wire encoding
// to normalize against. Every failure wraps sharedevents.ErrDecodePayload so
// the bus can classify it.

func payloadUint64(payload map[string]any, key string) (uint64, error) {
	value, ok := payload[key].(uint64)
	if !ok {
		return 0, fmt.Errorf("%w: %q must be a uint64", sharedevents.ErrDecodePayload, key)
	}
	return value, nil
}

func payloadString(payload map[string]any, key string) (string, error) {
	value, ok := payload[key].(string)
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string", sharedevents.ErrDecodePayload, key)
	}
	return value, nil
}

func payloadTime(payload map[string]any, key string) (time.Time, error) {
	value, ok := payload[key].(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q must be a time.Time", sharedevents.ErrDecodePayload, key)
	}
	return value, nil
}

func payloadUint64Slice(payload map[string]any, key string) ([]uint64, error) {
	value, ok := payload[key].([]uint64)
	if !ok {
		return nil, fmt.Errorf("%w: %q must be a []uint64", sharedevents.ErrDecodePayload, key)
	}
	return value, nil
}
