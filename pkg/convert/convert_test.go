package convert

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsMap(t *testing.T) {
	m, err := AsMap(map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1}, m)

	_, err = AsMap([]any{1})
	assert.Error(t, err)
	_, err = AsMap(nil)
	assert.Error(t, err)
}

func TestAsSlice(t *testing.T) {
	s, err := AsSlice([]any{1, 2})
	require.NoError(t, err)
	assert.Len(t, s, 2)

	_, err = AsSlice(map[string]any{})
	assert.Error(t, err)
	_, err = AsSlice(nil)
	assert.Error(t, err)
}

func TestAsString(t *testing.T) {
	assert.Equal(t, "Lounge", AsString("Lounge"))
	assert.Equal(t, "", AsString(nil))
	assert.Equal(t, "7", AsString(7))
}

func TestToInt(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  int
	}{
		{"int", 3, 3},
		{"float truncates", 21.9, 21},
		{"negative float truncates toward zero", -2.9, -2},
		{"json.Number", json.Number("16"), 16},
		{"numeric string", "4.5", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToInt(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects non-numbers", func(t *testing.T) {
		_, err := ToInt(nil)
		assert.Error(t, err)
		_, err = ToInt("lounge")
		assert.Error(t, err)
		_, err = ToInt(map[string]any{})
		assert.Error(t, err)
	})
}

func TestToFloat(t *testing.T) {
	got, err := ToFloat(21.5)
	require.NoError(t, err)
	assert.Equal(t, 21.5, got)

	got, err = ToFloat(json.Number("1"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	_, err = ToFloat("x")
	assert.Error(t, err)
}

func TestDigMap(t *testing.T) {
	m := map[string]any{
		"childNodes": map[string]any{
			"_cfg": map[string]any{
				"childValues": map[string]any{"name": map[string]any{"val": "Room Sensor"}},
			},
		},
	}

	t.Run("walks nested objects", func(t *testing.T) {
		got, err := DigMap(m, "childNodes", "_cfg", "childValues")
		require.NoError(t, err)
		assert.Contains(t, got, "name")
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := DigMap(m, "childNodes", "missing")
		assert.Error(t, err)
	})

	t.Run("non-object step", func(t *testing.T) {
		_, err := DigMap(map[string]any{"leaf": 3}, "leaf")
		assert.Error(t, err)
	})
}
