// Package identity holds the server identification payload reported by the
// host. The payload is opaque: any JSON value is accepted and it is never
// inspected field by field.
package identity

import (
	"bytes"
	"encoding/json"
)

// Payload is the raw server identity value as returned by the host.
type Payload struct {
	raw []byte
}

// Decode checks that data is valid JSON and keeps its compact form.
func Decode(data []byte) (Payload, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return Payload{}, err
	}
	return Payload{raw: buf.Bytes()}, nil
}

func (p *Payload) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

func (p Payload) MarshalJSON() ([]byte, error) {
	if len(p.raw) == 0 {
		return []byte("null"), nil
	}
	return p.raw, nil
}

// String returns the payload with insignificant whitespace removed. Object
// keys keep their order. Number spellings and string escapes are copied as
// the host wrote them, not normalized: 1.0 stays 1.0 and "\/" stays "\/".
func (p Payload) String() string {
	return string(p.raw)
}

// IsZero reports whether no payload was decoded.
func (p Payload) IsZero() bool {
	return len(p.raw) == 0
}
