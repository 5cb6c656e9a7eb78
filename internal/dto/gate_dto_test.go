package dto

import (
	"encoding/json"
	"testing"

	"copygate-be/pkg/scoring"

	"github.com/stretchr/testify/assert"
)

func TestOrderedSectionsKeepsAuthorOrder(t *testing.T) {
	raw := `{"hero": "First impression copy.", "about": "Who we are.", "services": "What we do."}`

	var sections OrderedSections
	err := json.Unmarshal([]byte(raw), &sections)

	assert.NoError(t, err)
	assert.Equal(t, OrderedSections{
		{Name: "hero", Text: "First impression copy."},
		{Name: "about", Text: "Who we are."},
		{Name: "services", Text: "What we do."},
	}, sections)
}

func TestOrderedSectionsRejectsNonObject(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"array", `["hero", "about"]`},
		{"string", `"hero"`},
		{"non-string value", `{"hero": 42}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var sections OrderedSections
			assert.Error(t, json.Unmarshal([]byte(tc.raw), &sections))
		})
	}
}

func TestOrderedSectionsMarshalRoundTrip(t *testing.T) {
	sections := OrderedSections{
		{Name: "hero", Text: "one"},
		{Name: "about", Text: "two"},
	}

	raw, err := json.Marshal(sections)
	assert.NoError(t, err)
	assert.Equal(t, `{"hero":"one","about":"two"}`, string(raw))

	var back OrderedSections
	assert.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, sections, back)
}

func TestOrderedSectionsConvertsToScoringSections(t *testing.T) {
	sections := OrderedSections{{Name: "hero", Text: "copy"}}

	converted := []scoring.Section(sections)

	assert.Len(t, converted, 1)
	assert.Equal(t, "hero", converted[0].Name)
}
