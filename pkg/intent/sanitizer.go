package intent

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxPromptSize bounds prompts accepted from transports.
	DefaultMaxPromptSize = 8192
	// EnvMaxPromptSize overrides DefaultMaxPromptSize.
	EnvMaxPromptSize = "AUTOPLAN_MAX_PROMPT_SIZE"
)

var (
	ErrPromptTooLarge = errors.New("prompt exceeds maximum allowed size")
	ErrInvalidUTF8    = errors.New("prompt contains invalid UTF-8 sequences")
)

// SanitizePrompt enforces the size limit, rejects invalid UTF-8 and strips
// control characters other than newline, tab and carriage return.
// Oversized prompts are rejected rather than truncated.
func SanitizePrompt(prompt string) (string, error) {
	limit := maxPromptSize()
	if len(prompt) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrPromptTooLarge, len(prompt), limit)
	}

	if !utf8.ValidString(prompt) {
		return "", ErrInvalidUTF8
	}

	if strings.IndexFunc(prompt, unsafeControl) < 0 {
		return prompt, nil
	}

	var b strings.Builder
	b.Grow(len(prompt))
	for _, r := range prompt {
		if !unsafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func unsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}

func maxPromptSize() int {
	if val := os.Getenv(EnvMaxPromptSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxPromptSize
}
