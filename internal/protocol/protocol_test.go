package protocol

import (
	"encoding/json"
	"testing"

	"fakeinput/internal/actions"
)

func TestNewMessageWire(t *testing.T) {
	msg, err := NewMessage(TypeRun, RunPayload{
		ID:      "1",
		Actions: []actions.Action{{Op: actions.OpTap, Key: "A"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}

	want := `{"type":"run","payload":{"id":"1","actions":[{"op":"tap","key":"A"}]}}`
	if string(data) != want {
		t.Errorf("Expected %s, got %s", want, data)
	}
}

func TestDecodePayload(t *testing.T) {
	var msg Message
	raw := `{"type":"result","payload":{"id":"7","ok":false,"error":"boom","steps":2}}`
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != TypeResult {
		t.Errorf("Expected type result, got %s", msg.Type)
	}

	var res ResultPayload
	if err := msg.Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.ID != "7" || res.OK || res.Error != "boom" || res.Steps != 2 {
		t.Errorf("Unexpected result %+v", res)
	}
}

func TestMessageWithoutPayload(t *testing.T) {
	msg, err := NewMessage(TypePing, nil)
	if err != nil {
		t.Fatal(err)
	}
	data, _ := json.Marshal(msg)
	if string(data) != `{"type":"ping"}` {
		t.Errorf("Expected bare ping, got %s", data)
	}

	var v struct{ A int }
	if err := msg.Decode(&v); err != nil {
		t.Errorf("Expected empty payload to decode, got %v", err)
	}
}
