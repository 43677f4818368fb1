package events

import "encoding/json"

// Envelope reads only the discriminator of a lifecycle message.
type Envelope struct {
	EventType string `json:"event_type"`
}

func PeekType(payload []byte) (string, error) {
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return "", err
	}
	return env.EventType, nil
}
