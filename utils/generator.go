package utils

import (
	"crypto/rand"
	"encoding/hex"
)

const previewLength = 60

// GenerateVerificationToken returns a random hex token for email
// verification links.
func GenerateVerificationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Preview truncates message text for notification payloads. Truncation
// counts runes so multi-byte text is never cut mid-character.
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text
	}
	return string(runes[:previewLength])
}
