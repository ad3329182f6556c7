package budget

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "date only",
			input:    `"2026-08-29"`,
			expected: time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "RFC3339 timestamp",
			input:    `"2026-08-29T14:30:00Z"`,
			expected: time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC),
		},
		{
			name:     "timestamp without zone",
			input:    `"2026-08-29T14:30:00"`,
			expected: time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC),
		},
		{
			name:     "null",
			input:    `null`,
			expected: time.Time{},
		},
		{
			name:     "empty string",
			input:    `""`,
			expected: time.Time{},
		},
		{
			name:    "garbage",
			input:   `"next tuesday"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(d.Time), "got %v", d.Time)
		})
	}
}

func TestDate_MarshalJSON(t *testing.T) {
	d := NewDate(2026, time.August, 29)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-08-29"`, string(data))

	var zero Date
	data, err = json.Marshal(zero)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2027-02-15")
	require.NoError(t, err)
	assert.Equal(t, "2027-02-15", d.String())

	_, err = ParseDate("02/15/2027")
	assert.Error(t, err)
}

func TestDate_String(t *testing.T) {
	assert.Equal(t, "", Date{}.String())
	assert.Equal(t, "2026-01-05", NewDate(2026, time.January, 5).String())
}
