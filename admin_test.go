package mintpaper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormDatetime(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
	}{
		{"", time.Time{}},
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"2024-01-15T08:30", time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)},
		{" 2024-01-15T08:30:00Z ", time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseFormDatetime(tt.input)
		require.NoError(t, err, tt.input)
		assert.True(t, tt.expected.Equal(got), "parseFormDatetime(%q) = %v", tt.input, got)
	}

	_, err := parseFormDatetime("15/01/2024")
	assert.Error(t, err)
}
