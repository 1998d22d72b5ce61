package redact_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/stretchr/testify/assert"
)

func TestRedactString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no sensitive data",
			input:    `invalid estimated effort: "ten"`,
			expected: `invalid estimated effort: "ten"`,
		},
		{
			name:     "dates survive",
			input:    `invalid deadline: "2025-13-01"`,
			expected: `invalid deadline: "2025-13-01"`,
		},
		{
			name:     "password parameter",
			input:    "task name was password=hunter22",
			expected: "task name was [REDACTED_CREDENTIAL]",
		},
		{
			name:     "API key",
			input:    "Using api_key=abcdef1234567890ghijklmnop for authentication",
			expected: "Using [REDACTED_KEY] for authentication",
		},
		{
			name:     "email address",
			input:    "follow up with jane.doe@example.com",
			expected: "follow up with [REDACTED_EMAIL]",
		},
		{
			name:     "unix file path",
			input:    "failed to read config file: open /home/user/.tasks-api/config.yaml: permission denied",
			expected: "failed to read config file: open [REDACTED_PATH]: permission denied",
		},
		{
			name:     "windows file path",
			input:    `open C:\Users\me\config.yaml failed`,
			expected: `open [REDACTED_PATH] failed`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, redact.String(tt.input))
		})
	}
}

func TestRedactStackTrace(t *testing.T) {
	input := "panic: runtime error\n\tmain.go:12\n\thandler.go:40"
	assert.NotContains(t, redact.String(input), "handler.go")
	assert.Contains(t, redact.String(input), redact.RedactedStackTracePlaceholder)
}

func TestRedactError(t *testing.T) {
	assert.Equal(t, "", redact.Error(nil))

	err := fmt.Errorf("update failed: %w", errors.New("owner bob@example.org not allowed"))
	assert.Equal(t, "update failed: owner [REDACTED_EMAIL] not allowed", redact.Error(err))
}
