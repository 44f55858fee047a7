package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestCanonicalPair(t *testing.T) {
	a := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	b := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	t.Run("Order independent", func(t *testing.T) {
		p1, p2 := CanonicalPair(a, b)
		q1, q2 := CanonicalPair(b, a)
		if p1 != q1 || p2 != q2 {
			t.Fatalf("expected identical pairs regardless of argument order, got (%s,%s) and (%s,%s)", p1, p2, q1, q2)
		}
	})

	t.Run("Smaller id first", func(t *testing.T) {
		p1, p2 := CanonicalPair(b, a)
		if p1 != a || p2 != b {
			t.Errorf("expected (%s,%s), got (%s,%s)", a, b, p1, p2)
		}
	})
}

func TestConversationParticipants(t *testing.T) {
	a := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	b := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	outsider := uuid.MustParse("33333333-3333-3333-3333-333333333333")

	conv := Conversation{ParticipantOne: a, ParticipantTwo: b}

	t.Run("HasParticipant", func(t *testing.T) {
		if !conv.HasParticipant(a) || !conv.HasParticipant(b) {
			t.Error("expected both participants to be members")
		}
		if conv.HasParticipant(outsider) {
			t.Error("expected outsider not to be a member")
		}
	})

	t.Run("OtherParticipant", func(t *testing.T) {
		other, ok := conv.OtherParticipant(a)
		if !ok || other != b {
			t.Errorf("expected peer of %s to be %s, got %s", a, b, other)
		}
		other, ok = conv.OtherParticipant(b)
		if !ok || other != a {
			t.Errorf("expected peer of %s to be %s, got %s", b, a, other)
		}
		if _, ok := conv.OtherParticipant(outsider); ok {
			t.Error("expected no peer for an outsider")
		}
	})
}
