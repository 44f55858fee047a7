package websocket

import (
	"encoding/json"
	"testing"
)

func TestEnvelopeDecode(t *testing.T) {
	t.Run("Inbound frame", func(t *testing.T) {
		raw := `{"event":"send_message","data":{"conversation_id":"abc","text":"hi"},"ack_id":"1"}`
		var env Envelope
		if err := json.Unmarshal([]byte(raw), &env); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if env.Event != EventSendMessage {
			t.Errorf("expected event %q, got %q", EventSendMessage, env.Event)
		}
		if env.AckID != "1" {
			t.Errorf("expected ack_id %q, got %q", "1", env.AckID)
		}

		var payload SendMessagePayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			t.Fatalf("unexpected error decoding payload: %v", err)
		}
		if payload.ConversationID != "abc" || payload.Text != "hi" {
			t.Errorf("unexpected payload: %+v", payload)
		}
	})

	t.Run("Frame without data", func(t *testing.T) {
		var env Envelope
		if err := json.Unmarshal([]byte(`{"event":"auth"}`), &env); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if env.Event != EventAuth || env.Data != nil {
			t.Errorf("unexpected envelope: %+v", env)
		}
	})
}

func TestNewEnvelope(t *testing.T) {
	env, err := NewEnvelope(EventError, ErrorPayload{Message: "no such conversation"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Event != EventError {
		t.Errorf("expected event %q, got %q", EventError, env.Event)
	}

	var payload ErrorPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("unexpected error decoding payload: %v", err)
	}
	if payload.Message != "no such conversation" {
		t.Errorf("unexpected message %q", payload.Message)
	}

	out, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("unexpected error marshalling frame: %v", err)
	}
	var round Envelope
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatalf("unexpected error on round trip: %v", err)
	}
	if round.Event != env.Event || string(round.Data) != string(env.Data) {
		t.Errorf("round trip mismatch: %+v vs %+v", round, env)
	}
}
