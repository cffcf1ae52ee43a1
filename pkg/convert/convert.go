package convert

import (
	"encoding/json"
	"fmt"
	"strconv"
)

var errNotMap = fmt.Errorf("value is not an object")
var errNotSlice = fmt.Errorf("value is not an array")
var errNotNumber = fmt.Errorf("value is not a number")

// AsMap asserts a decoded JSON value is an object.
func AsMap(v any) (map[string]any, error) {
	if v == nil {
		return nil, errNotMap
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", errNotMap, v)
	}
	return m, nil
}

// AsSlice asserts a decoded JSON value is an array.
func AsSlice(v any) ([]any, error) {
	if v == nil {
		return nil, errNotSlice
	}
	s, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", errNotSlice, v)
	}
	return s, nil
}

// AsString returns the string form of a decoded JSON leaf, "" for nil.
func AsString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// ToInt coerces a decoded JSON number leaf to an int, truncating floats.
// Accepts float64, json.Number and numeric strings.
func ToInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", errNotNumber, n.String())
		}
		return int(f), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", errNotNumber, n)
		}
		return int(f), nil
	default:
		return 0, fmt.Errorf("%w: got %T", errNotNumber, v)
	}
}

// ToFloat coerces a decoded JSON number leaf to a float64.
func ToFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", errNotNumber, n.String())
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: got %T", errNotNumber, v)
	}
}

// DigMap walks nested objects by key, failing on the first missing or
// non-object step.
func DigMap(m map[string]any, keys ...string) (map[string]any, error) {
	current := m
	for _, k := range keys {
		next, ok := current[k]
		if !ok {
			return nil, fmt.Errorf("key %q not present", k)
		}
		var err error
		current, err = AsMap(next)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
	}
	return current, nil
}
