package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubjectFiveSegments(t *testing.T) {
	parsed, ok := ParseSubject("Sky Cotex | PPC | Customer CR | Operational Issue | Rate Master Issue")
	require.True(t, ok)
	assert.Equal(t, "Sky Cotex", parsed.Customer)
	assert.Equal(t, "PPC", parsed.Module)
	assert.Equal(t, "Customer CR", parsed.CRType)
	assert.Equal(t, "Operational Issue", parsed.IssueType)
	assert.Equal(t, "Rate Master Issue", parsed.Description)
}

func TestParseSubjectExtraSegmentsRejoinDescription(t *testing.T) {
	parsed, ok := ParseSubject("Acme | FA | CR | Bug | rate | master | issue")
	require.True(t, ok)
	assert.Equal(t, "rate | master | issue", parsed.Description)
}

func TestParseSubjectTrimsWhitespace(t *testing.T) {
	parsed, ok := ParseSubject("  Acme  |FA|  CR |Bug|  broken screen ")
	require.True(t, ok)
	assert.Equal(t, "Acme", parsed.Customer)
	assert.Equal(t, "FA", parsed.Module)
	assert.Equal(t, "broken screen", parsed.Description)
}

func TestParseSubjectTooFewSegments(t *testing.T) {
	_, ok := ParseSubject("Acme | FA | CR | Bug")
	assert.False(t, ok)

	_, ok = ParseSubject("just a normal subject")
	assert.False(t, ok)

	_, ok = ParseSubject("")
	assert.False(t, ok)
}

func TestComposeDescriptionAppendsBodyUnderMarker(t *testing.T) {
	parsed := ParsedSubject{Description: "Rate Master Issue"}
	got := ComposeDescription(parsed, "full body text")
	assert.Equal(t, "Rate Master Issue\n\n--- Original Email Body ---\nfull body text", got)
}
