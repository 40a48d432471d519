package jsonutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeObject(t *testing.T) {
	tests := []struct {
		name        string
		base        string
		fields      []Field
		expected    string
		expectError bool
	}{
		{
			name:     "append_to_object",
			base:     `{"b":1,"a":2}`,
			fields:   []Field{{Key: "_links", Value: json.RawMessage(`{}`)}},
			expected: `{"b":1,"a":2,"_links":{}}`,
		},
		{
			name:     "append_to_empty_object",
			base:     ` { } `,
			fields:   []Field{{Key: "x", Value: json.RawMessage(`true`)}},
			expected: `{"x":true}`,
		},
		{
			name:        "duplicate_key",
			base:        `{"x":1}`,
			fields:      []Field{{Key: "x", Value: json.RawMessage(`2`)}},
			expectError: true,
		},
		{
			name:        "non_object",
			base:        `"value"`,
			fields:      []Field{{Key: "x", Value: json.RawMessage(`2`)}},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := MergeObject([]byte(tt.base), tt.fields...)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestObject(t *testing.T) {
	out, err := Object(
		Field{Key: "z", Value: json.RawMessage(`1`)},
		Field{Key: "a"},
	)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":null}`, string(out))
}
