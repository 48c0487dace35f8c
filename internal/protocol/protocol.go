// Package protocol defines the JSON messages exchanged over the /ws endpoint.
package protocol

import (
	"encoding/json"

	"fakeinput/internal/actions"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// TypeAuth is sent by the client right after connecting when the server
	// requires a token
	TypeAuth MessageType = "auth"

	// TypeRun asks the server to execute a sequence of actions
	TypeRun MessageType = "run"

	// TypeResult reports the outcome of a TypeRun request
	TypeResult MessageType = "result"

	// TypeKeysRequest asks for the key table of the server's backend
	TypeKeysRequest MessageType = "keys_req"

	// TypeKeysResponse carries the key table
	TypeKeysResponse MessageType = "keys_resp"

	// TypePing can be used for application-level heartbeats
	TypePing MessageType = "ping"
)

// Message is the generic container for all WebSocket messages
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewMessage encodes payload into a message of type t.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	msg := Message{Type: t}
	if payload == nil {
		return msg, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return msg, err
	}
	msg.Payload = data
	return msg, nil
}

// Decode unmarshals the payload into v.
func (m Message) Decode(v interface{}) error {
	if len(m.Payload) == 0 {
		return nil
	}
	return json.Unmarshal(m.Payload, v)
}

// AuthPayload is the payload for TypeAuth
type AuthPayload struct {
	Token      string `json:"token"`
	ClientName string `json:"client_name,omitempty"`
}

// RunPayload is the payload for TypeRun. Script is parsed and appended after
// Actions when both are set.
type RunPayload struct {
	ID      string           `json:"id"`
	Script  string           `json:"script,omitempty"`
	Actions []actions.Action `json:"actions,omitempty"`
}

// ResultPayload is the payload for TypeResult
type ResultPayload struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Steps int    `json:"steps"`
}

// KeysResponsePayload is the payload for TypeKeysResponse
type KeysResponsePayload struct {
	Backend string      `json:"backend"`
	Keys    interface{} `json:"keys"`
}
