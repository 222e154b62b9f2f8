package normalizer

import (
	"bytes"
	"encoding/json"
)

// Payload is a raw inbound sensor document keyed by field name.
type Payload map[string]any

// Has reports whether key is present, whatever its value.
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// DecodePayload parses a JSON object. Empty, malformed or non-object bodies
// yield an empty payload so that ingestion still produces an all-absent record.
func DecodePayload(body []byte) Payload {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return Payload{}
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var p Payload
	if err := dec.Decode(&p); err != nil || p == nil {
		return Payload{}
	}
	return p
}
