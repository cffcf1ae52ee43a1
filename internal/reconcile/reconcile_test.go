package reconcile

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/hub-reconciler/internal/core/domain"
)

func doc(label, text string) domain.CanonicalDocument {
	return domain.CanonicalDocument{
		SourceLabel:  label,
		ResourceType: domain.ResourceZones,
		Text:         text,
	}
}

func TestCompare_Identical(t *testing.T) {
	text := "{\n  \"id\": 3,\n  \"name\": \"Lounge\"\n}\n"

	result := Compare(doc("cloud", text), doc("local", text))

	assert.Equal(t, domain.StatusMatch, result.Status)
	assert.True(t, result.Identical)
	assert.Empty(t, result.DiffLines)
	assert.Empty(t, result.Unified)
	assert.Equal(t, "cloud", result.SourceA)
	assert.Equal(t, "local", result.SourceB)
	assert.Equal(t, "cloud--local", result.PairKey())
}

func TestCompare_Divergent(t *testing.T) {
	a := "{\n  \"id\": 3,\n  \"mode\": \"timer\",\n  \"name\": \"Lounge\"\n}\n"
	b := "{\n  \"id\": 3,\n  \"mode\": \"off\",\n  \"name\": \"Lounge\"\n}\n"

	result := Compare(doc("cloud", a), doc("local", b))

	require.Equal(t, domain.StatusDiff, result.Status)
	assert.False(t, result.Identical)
	assert.NotEmpty(t, result.Unified)
	require.NotEmpty(t, result.DiffLines)

	var removed, added []string
	for _, line := range result.DiffLines {
		switch line.Kind {
		case domain.DiffRemoved:
			removed = append(removed, line.Content)
		case domain.DiffAdded:
			added = append(added, line.Content)
		}
	}
	require.Len(t, removed, 1)
	require.Len(t, added, 1)
	assert.Contains(t, removed[0], `"timer"`)
	assert.Contains(t, added[0], `"off"`)
}

func TestCompare_DiffLineShape(t *testing.T) {
	a := "{\n  \"id\": 3,\n  \"mode\": \"timer\",\n  \"name\": \"Lounge\"\n}\n"
	b := "{\n  \"id\": 3,\n  \"mode\": \"off\",\n  \"name\": \"Lounge\"\n}\n"

	result := Compare(doc("cloud", a), doc("local", b))
	require.Equal(t, domain.StatusDiff, result.Status)

	var got []domain.DiffLine
	for _, line := range result.DiffLines {
		if line.Kind == domain.DiffContext {
			continue
		}
		got = append(got, domain.DiffLine{
			Kind:    line.Kind,
			Content: strings.TrimRight(line.Content, "\n"),
		})
	}

	want := []domain.DiffLine{
		{Kind: domain.DiffRemoved, Content: `  "mode": "timer",`},
		{Kind: domain.DiffAdded, Content: `  "mode": "off",`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("diff lines mismatch (-want +got):\n%s", diff)
	}
}

func TestCompare_ExtraField(t *testing.T) {
	a := "{\n  \"id\": 3\n}\n"
	b := "{\n  \"id\": 3,\n  \"occupied\": true\n}\n"

	result := Compare(doc("local", a), doc("ghclient", b))

	require.Equal(t, domain.StatusDiff, result.Status)

	var added int
	for _, line := range result.DiffLines {
		if line.Kind == domain.DiffAdded {
			added++
		}
	}
	assert.NotZero(t, added)
}

// Identical must not depend on argument order, even though the rendered
// diff direction does.
func TestCompare_IdenticalSymmetry(t *testing.T) {
	a := "{\n  \"setpoint\": 21\n}\n"
	b := "{\n  \"setpoint\": 22\n}\n"

	forward := Compare(doc("cloud", a), doc("local", b))
	backward := Compare(doc("local", b), doc("cloud", a))

	assert.Equal(t, forward.Identical, backward.Identical)
	assert.Equal(t, forward.Status, backward.Status)

	same := Compare(doc("cloud", a), doc("local", a))
	sameBack := Compare(doc("local", a), doc("cloud", a))
	assert.True(t, same.Identical)
	assert.True(t, sameBack.Identical)
}

func TestCompare_DoesNotMutateInputs(t *testing.T) {
	a := doc("cloud", "{\n  \"id\": 1\n}\n")
	b := doc("local", "{\n  \"id\": 2\n}\n")
	aText, bText := a.Text, b.Text

	_ = Compare(a, b)

	assert.Equal(t, aText, a.Text)
	assert.Equal(t, bText, b.Text)
}
