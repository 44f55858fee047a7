package handlers

import (
	"testing"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userID := uuid.New().String()

	t.Run("Signed token parses back", func(t *testing.T) {
		token, err := signToken(userID, "seller")
		if err != nil {
			t.Fatalf("unexpected error signing: %v", err)
		}

		claims, err := parseToken(token)
		if err != nil {
			t.Fatalf("unexpected error parsing: %v", err)
		}
		if claims["user_id"] != userID {
			t.Errorf("expected user_id %q, got %v", userID, claims["user_id"])
		}
		if claims["role"] != "seller" {
			t.Errorf("expected role %q, got %v", "seller", claims["role"])
		}
	})

	t.Run("Tampered token rejected", func(t *testing.T) {
		token, err := signToken(userID, "seller")
		if err != nil {
			t.Fatalf("unexpected error signing: %v", err)
		}

		if _, err := parseToken(token + "x"); err == nil {
			t.Error("expected a tampered token to be rejected")
		}
	})

	t.Run("Garbage rejected", func(t *testing.T) {
		if _, err := parseToken("not-a-token"); err == nil {
			t.Error("expected garbage input to be rejected")
		}
	})
}

func TestClampListingLimit(t *testing.T) {
	cases := []struct {
		name string
		in   int
		want int
	}{
		{"Zero uses the default", 0, defaultListingLimit},
		{"Negative uses the default", -5, defaultListingLimit},
		{"Oversized is capped", 200, maxListingLimit},
		{"Valid limit passes through", 24, 24},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := clampListingLimit(tc.in); got != tc.want {
				t.Errorf("clampListingLimit(%d) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestListingSortClause(t *testing.T) {
	cases := []struct {
		sort string
		want string
	}{
		{"price_asc", "price asc"},
		{"price_desc", "price desc"},
		{"age", "age asc"},
		{"", "created_at desc"},
		{"bogus", "created_at desc"},
	}
	for _, tc := range cases {
		if got := listingSortClause(tc.sort); got != tc.want {
			t.Errorf("listingSortClause(%q) = %q, want %q", tc.sort, got, tc.want)
		}
	}
}
