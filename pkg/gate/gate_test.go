package gate

import (
	"testing"

	"copygate-be/pkg/scoring"
	"copygate-be/pkg/voice"

	"github.com/stretchr/testify/assert"
)

const cleanCopy = "The 2019 Subaru Outback sold for $23,400 after 48 hours on the lot. " +
	"Quick turnaround. " +
	"Marcus handled the inspection himself, checked the timing belt twice, and signed off before lunch. " +
	"Most dealers won't do that."

const aiFlavoredCopy = "Our world-class team delivers a wide range of services for every customer. " +
	"We pride ourselves on quality results and expert care for local clients. " +
	"Look no further because our dedicated staff will always exceed your expectations. " +
	"Contact our friendly office today and discover the difference that really matters."

func failingProfile() *voice.Profile {
	// A forbidden phrase present in cleanCopy makes Pass 2 fail on
	// otherwise clean text.
	return &voice.Profile{
		ProfileID:        "gad-main",
		BrandDisplayName: "German Auto Doctor",
		NegativeSpace:    &voice.NegativeSpace{Items: []string{"timing belt"}},
	}
}

func passingProfile() *voice.Profile {
	return &voice.Profile{
		ProfileID:        "gad-main",
		BrandDisplayName: "German Auto Doctor",
		NegativeSpace:    &voice.NegativeSpace{Items: []string{"synergy"}},
	}
}

func assertGateInvariant(t *testing.T, r Result) {
	t.Helper()
	assert.Equal(t, (r.Pass1.Pass && r.Pass2.Pass) || r.OverrideApplied, r.GateOpen)
	assert.NotEmpty(t, r.Summary)
	assert.NotEmpty(t, r.ActionRequired)
}

func TestGateOpensWhenBothPassesClear(t *testing.T) {
	g := New(Config{Profile: passingProfile()})

	r := g.RunSection(cleanCopy, "hero", false, "")

	assert.True(t, r.GateOpen)
	assert.Equal(t, StatusPass, r.GateStatus)
	assert.False(t, r.OverrideApplied)
	assert.True(t, r.Pass1.Pass)
	assert.True(t, r.Pass2.Pass)
	assert.True(t, r.Pass2.Active)
	assert.Equal(t, "gad-main", r.Pass2.ProfileUsed)
	assert.Contains(t, r.Summary, "Both passes cleared")
	assertGateInvariant(t, r)
}

func TestGateFailsOnAIFlavoredCopy(t *testing.T) {
	g := New(Config{})

	r := g.RunSection(aiFlavoredCopy, "about", false, "")

	assert.False(t, r.GateOpen)
	assert.Equal(t, StatusFail, r.GateStatus)
	assert.False(t, r.Pass1.Pass)
	assert.Contains(t, r.Pass1.SectionsFailed, "about")
	assert.Contains(t, r.Summary, "Pass 1 failed")
	assertGateInvariant(t, r)
}

func TestGateWithoutProfileSkipsPass2(t *testing.T) {
	g := New(Config{})

	r := g.RunSection(cleanCopy, "hero", false, "")

	assert.True(t, r.GateOpen)
	assert.False(t, r.Pass2.Active)
	assert.True(t, r.Pass2.Pass, "inactive pass must not block the gate")
	assert.Nil(t, r.Pass2.Score)
	assert.Contains(t, r.Summary, "Pass 2 skipped")
	assertGateInvariant(t, r)
}

func TestGatePass2FailureNamesProfile(t *testing.T) {
	g := New(Config{Profile: failingProfile()})

	r := g.RunSection(cleanCopy, "hero", false, "")

	assert.False(t, r.GateOpen)
	assert.True(t, r.Pass1.Pass)
	assert.False(t, r.Pass2.Pass)
	assert.Contains(t, r.Summary, "gad-main")
	assert.Contains(t, r.Pass2.SectionsFailed, "hero")
	assertGateInvariant(t, r)
}

func TestOverrideOpensFailedGate(t *testing.T) {
	g := New(Config{})

	r := g.RunSection(aiFlavoredCopy, "about", true, "Client approved via email 2026-02-18")

	assert.True(t, r.GateOpen)
	assert.Equal(t, StatusOverride, r.GateStatus)
	assert.True(t, r.OverrideApplied)
	assert.Equal(t, "Client approved via email 2026-02-18", r.OverrideNote)
	// Scores are untouched; only the outcome flips
	assert.False(t, r.Pass1.Pass)
	assert.Contains(t, r.Summary, "overridden")
	assertGateInvariant(t, r)
}

func TestOverrideWithBlankNoteRecordsPlaceholder(t *testing.T) {
	g := New(Config{})

	r := g.RunSection(aiFlavoredCopy, "about", true, "   ")

	assert.True(t, r.OverrideApplied)
	assert.Equal(t, PlaceholderOverrideNote, r.OverrideNote)
	assert.NotEmpty(t, r.OverrideNote)
	assertGateInvariant(t, r)
}

func TestOverrideIgnoredWhenGateAlreadyOpen(t *testing.T) {
	g := New(Config{})

	r := g.RunSection(cleanCopy, "hero", true, "not needed")

	assert.True(t, r.GateOpen)
	assert.Equal(t, StatusPass, r.GateStatus)
	assert.False(t, r.OverrideApplied)
	assert.Empty(t, r.OverrideNote)
	assertGateInvariant(t, r)
}

func TestEmptySectionsTriviallyPass(t *testing.T) {
	g := New(Config{Profile: passingProfile()})

	r := g.Run(nil, false, "")

	assert.True(t, r.GateOpen)
	assert.Equal(t, StatusPass, r.GateStatus)
	assert.NotEmpty(t, r.Note)
	assert.Empty(t, r.Sections)
	assertGateInvariant(t, r)
}

func TestMultiSectionBreakdownKeepsOrder(t *testing.T) {
	g := New(Config{})

	r := g.Run([]scoring.Section{
		{Name: "hero", Text: cleanCopy},
		{Name: "about", Text: aiFlavoredCopy},
		{Name: "services", Text: cleanCopy},
	}, false, "")

	assert.Equal(t, []string{"hero", "about", "services"}, r.SectionOrder)
	assert.Equal(t, []string{"about"}, r.Pass1.SectionsFailed)

	assert.True(t, r.Sections["hero"].Pass)
	assert.False(t, r.Sections["about"].Pass)
	assert.True(t, r.Sections["services"].Pass)
	assert.NotEmpty(t, r.Sections["about"].Pass1Failures)
	assertGateInvariant(t, r)
}

func TestBothPassesFailing(t *testing.T) {
	p := &voice.Profile{
		ProfileID:        "gad-main",
		BrandDisplayName: "German Auto Doctor",
		NegativeSpace:    &voice.NegativeSpace{Items: []string{"world-class"}},
	}
	g := New(Config{Profile: p})

	r := g.RunSection(aiFlavoredCopy, "about", false, "")

	assert.False(t, r.GateOpen)
	assert.False(t, r.Pass1.Pass)
	assert.False(t, r.Pass2.Pass)
	assert.Contains(t, r.Summary, "Both passes failed")
	assertGateInvariant(t, r)
}
