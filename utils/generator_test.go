package utils

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestGenerateVerificationToken(t *testing.T) {
	t.Run("Length and charset", func(t *testing.T) {
		token, err := GenerateVerificationToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(token) != 64 {
			t.Errorf("expected 64 hex characters, got %d", len(token))
		}
		if strings.Trim(token, "0123456789abcdef") != "" {
			t.Errorf("token contains non-hex characters: %q", token)
		}
	})

	t.Run("Tokens differ", func(t *testing.T) {
		a, err := GenerateVerificationToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, err := GenerateVerificationToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a == b {
			t.Error("expected two generated tokens to differ")
		}
	})
}

func TestPreview(t *testing.T) {
	t.Run("Short text untouched", func(t *testing.T) {
		if got := Preview("hello"); got != "hello" {
			t.Errorf("expected %q, got %q", "hello", got)
		}
	})

	t.Run("Long text truncated to sixty runes", func(t *testing.T) {
		long := strings.Repeat("a", 200)
		got := Preview(long)
		if utf8.RuneCountInString(got) != previewLength {
			t.Errorf("expected %d runes, got %d", previewLength, utf8.RuneCountInString(got))
		}
	})

	t.Run("Multi-byte text never cut mid-character", func(t *testing.T) {
		long := strings.Repeat("é", 200)
		got := Preview(long)
		if !utf8.ValidString(got) {
			t.Errorf("preview produced invalid utf8: %q", got)
		}
		if utf8.RuneCountInString(got) != previewLength {
			t.Errorf("expected %d runes, got %d", previewLength, utf8.RuneCountInString(got))
		}
	})

	t.Run("Exact boundary untouched", func(t *testing.T) {
		exact := strings.Repeat("b", previewLength)
		if got := Preview(exact); got != exact {
			t.Errorf("expected text of exactly %d runes to pass through unchanged", previewLength)
		}
	})
}
