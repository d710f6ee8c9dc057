package logger

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxMessageTextLength is the maximum length for message bodies in logs.
	// Telegram captions and voice transcriptions can be long; logs should not be.
	MaxMessageTextLength = 512
	// MaxUsernameLength is the maximum length for usernames in logs
	MaxUsernameLength = 64
	// MaxErrorMessageLength is the maximum length for error messages in logs
	MaxErrorMessageLength = 1000
)

// SanitizeText prepares user-supplied text for safe logging:
// validates UTF-8, strips control characters, and truncates to maxLength.
func SanitizeText(s string, maxLength int) string {
	if s == "" {
		return ""
	}
	if maxLength <= 0 {
		maxLength = MaxMessageTextLength
	}

	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}

	var builder strings.Builder
	builder.Grow(len(s))
	for _, r := range s {
		// Keep printable characters plus the common whitespace runes
		if unicode.IsPrint(r) || r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			builder.WriteRune(r)
		}
	}
	s = builder.String()

	if len(s) > maxLength {
		s = s[:maxLength] + "..."
	}

	return s
}

// SanitizeUsername sanitizes a Telegram username for safe logging
func SanitizeUsername(username string) string {
	return SanitizeText(username, MaxUsernameLength)
}

// SanitizeError sanitizes an error message for safe logging
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeText(err.Error(), MaxErrorMessageLength)
}
