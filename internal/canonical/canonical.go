// Package canonical turns structured API responses into one deterministic
// textual form so that byte comparison detects semantic divergence only.
// Object keys are sorted, indentation is fixed, and floating-point leaves
// are truncated to integers: the hub's three access paths disagree on
// numeric formatting (21.0 vs 21) while agreeing on magnitude.
package canonical

import (
	"encoding/json"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/hub-reconciler/internal/errors"
)

var parseAPI = jsoniter.Config{UseNumber: true}.Froze()

var encodeAPI = jsoniter.Config{
	SortMapKeys:   true,
	IndentionStep: 2,
	EscapeHTML:    false,
}.Froze()

// Normalize parses raw JSON and returns its canonical text. Two inputs with
// identical logical content always produce byte-identical output.
func Normalize(raw []byte) (string, error) {
	var doc any
	if err := parseAPI.Unmarshal(raw, &doc); err != nil {
		return "", errors.Wrap(err, errors.CodeNormalizeMalformed, "response body is not valid JSON")
	}

	out, err := encodeAPI.MarshalToString(truncateNumbers(doc))
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "failed to serialize canonical document")
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

// truncateNumbers rewrites every floating-point leaf to its integer
// truncation (toward zero, never rounding). Integer leaves pass through
// verbatim so arbitrarily large integers keep their exact text.
func truncateNumbers(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = truncateNumbers(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = truncateNumbers(item)
		}
		return out
	case json.Number:
		return truncateNumber(val)
	default:
		return v
	}
}

func truncateNumber(n json.Number) json.Number {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		return n
	}
	f, err := n.Float64()
	if err != nil {
		return n
	}
	return json.Number(strconv.FormatInt(int64(f), 10))
}
