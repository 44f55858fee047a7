package websocket

import (
	"testing"

	"github.com/google/uuid"
)

func TestHubRegistry(t *testing.T) {
	userA := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	userB := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	convID := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")

	t.Run("Register and unregister track connections", func(t *testing.T) {
		hub := NewHub()
		c := &Client{UserID: userA}

		hub.Register(c)
		if got := hub.ConnectionCount(userA); got != 1 {
			t.Errorf("expected 1 connection, got %d", got)
		}

		hub.Unregister(c)
		if got := hub.ConnectionCount(userA); got != 0 {
			t.Errorf("expected 0 connections after unregister, got %d", got)
		}
	})

	t.Run("Multiple devices per user", func(t *testing.T) {
		hub := NewHub()
		phone := &Client{UserID: userA}
		laptop := &Client{UserID: userA}

		hub.Register(phone)
		hub.Register(laptop)
		if got := hub.ConnectionCount(userA); got != 2 {
			t.Errorf("expected 2 connections, got %d", got)
		}

		hub.Unregister(phone)
		if got := hub.ConnectionCount(userA); got != 1 {
			t.Errorf("expected 1 connection after dropping one device, got %d", got)
		}
	})

	t.Run("Join and leave a room", func(t *testing.T) {
		hub := NewHub()
		a := &Client{UserID: userA}
		b := &Client{UserID: userB}
		hub.Register(a)
		hub.Register(b)

		hub.Join(a, convID)
		hub.Join(b, convID)
		if got := hub.RoomSize(convID); got != 2 {
			t.Errorf("expected room size 2, got %d", got)
		}
		if !hub.InRoom(a, convID) {
			t.Error("expected client a to be in the room")
		}

		hub.Leave(a, convID)
		if hub.InRoom(a, convID) {
			t.Error("expected client a to have left the room")
		}
		if got := hub.RoomSize(convID); got != 1 {
			t.Errorf("expected room size 1 after leave, got %d", got)
		}
	})

	t.Run("Join before register is ignored", func(t *testing.T) {
		hub := NewHub()
		ghost := &Client{UserID: userA}

		hub.Join(ghost, convID)
		if got := hub.RoomSize(convID); got != 0 {
			t.Errorf("expected unregistered join to be ignored, room size %d", got)
		}
	})

	t.Run("Unregister releases every joined room", func(t *testing.T) {
		hub := NewHub()
		otherConv := uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
		c := &Client{UserID: userA}
		hub.Register(c)
		hub.Join(c, convID)
		hub.Join(c, otherConv)

		hub.Unregister(c)
		if hub.RoomSize(convID) != 0 || hub.RoomSize(otherConv) != 0 {
			t.Error("expected all room memberships released on unregister")
		}
		if hub.InRoom(c, convID) {
			t.Error("expected client to be out of the room after unregister")
		}
	})
}
