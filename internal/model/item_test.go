package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{in: "Pending", want: StatusPending},
		{in: "completed", want: StatusCompleted},
		{in: " DONE ", want: StatusCompleted},
		{in: "todo", want: StatusPending},
		{in: "blocked", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusToggle(t *testing.T) {
	assert.Equal(t, StatusCompleted, StatusPending.Toggle())
	assert.Equal(t, StatusPending, StatusCompleted.Toggle())
	assert.Equal(t, StatusCompleted, Status("").Toggle())
}

func TestZeroStatusEncodesAsPending(t *testing.T) {
	s, err := Encode([]Item{{Title: "x"}})
	require.NoError(t, err)
	assert.Equal(t, `[{"title":"x","status":"Pending"}]`, s)
}

func TestEncodeNilIsEmptyArray(t *testing.T) {
	s, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", s)
}

func TestDecodeIgnoresUnknownFields(t *testing.T) {
	items, err := Decode(`[{"title":"A","status":"Completed","index":0}]`)
	require.NoError(t, err)
	assert.Equal(t, []Item{{Title: "A", Status: StatusCompleted}}, items)
}

func TestDecodeRejectsUnknownStatus(t *testing.T) {
	_, err := Decode(`[{"title":"A","status":"Blocked"}]`)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDecodeNull(t *testing.T) {
	items, err := Decode("null")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestRoundTrip(t *testing.T) {
	in := []Item{
		{Title: "Buy milk", Status: StatusPending},
		{Title: "", Status: StatusCompleted},
		{Title: "unicode ✔ \"quoted\"", Status: StatusPending},
	}
	s, err := Encode(in)
	require.NoError(t, err)
	out, err := Decode(s)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	var generic []map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &generic))
	assert.Len(t, generic, 3)
	assert.Equal(t, "Completed", generic[1]["status"])
}
