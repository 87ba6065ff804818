package ai

import (
	"testing"

	"github.com/dev-ventures/ventures/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFeasibility(t *testing.T) {
	assert.Equal(t, types.FeasibilityScam, NormalizeFeasibility("scam"))
	assert.Equal(t, types.FeasibilityValid, NormalizeFeasibility("  Valid\n"))
	assert.Equal(t, types.FeasibilityUnsure, NormalizeFeasibility("unsure"))
	assert.Equal(t, types.FeasibilityUnsure, NormalizeFeasibility("I think it's probably fine"))
	assert.Equal(t, types.FeasibilityUnsure, NormalizeFeasibility(""))
}

func TestExtractJSONFencedBlock(t *testing.T) {
	reply := "Here you go:\n```json\n{\"a\": 1}\n```\nLet me know!"

	payload, err := ExtractJSON(reply)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, payload)
}

func TestExtractJSONBareFence(t *testing.T) {
	reply := "```\n{\"a\": 1}\n```"

	payload, err := ExtractJSON(reply)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, payload)
}

func TestExtractJSONBalancedRegion(t *testing.T) {
	reply := `Sure thing. {"a": {"b": "close } brace in string"}, "c": 2} trailing text`

	payload, err := ExtractJSON(reply)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": {"b": "close } brace in string"}, "c": 2}`, payload)
}

func TestExtractJSONSkipsProseBraces(t *testing.T) {
	reply := `wrap values in { curly braces } like so: {"cover_letter": "hi"}`

	payload, err := ExtractJSON(reply)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cover_letter": "hi"}`, payload)
}

func TestExtractJSONNoPayload(t *testing.T) {
	_, err := ExtractJSON("no structured content here")
	assert.ErrorIs(t, err, ErrParse)
}

func TestParseProposalDraft(t *testing.T) {
	reply := "```json\n" +
		`{"cover_letter": "x", "proposal": "y", "feasibility_score": 80, "feasibility_reason": "r", "summary": "s", "project_duration": "2 weeks", "overall_score": 70}` +
		"\n```"

	draft, err := ParseProposalDraft(reply)
	require.NoError(t, err)

	assert.Equal(t, "x", draft.CoverLetter)
	assert.Equal(t, "y", draft.ProposalText)
	assert.Equal(t, 80.0, draft.FeasibilityScore)
	assert.Equal(t, "r", draft.FeasibilityReason)
	assert.Equal(t, "s", draft.Summary)
	assert.Equal(t, "2 weeks", draft.ProjectDuration)
	assert.Equal(t, 70.0, draft.OverallScore)
}

func TestParseProposalDraftAcceptsProposalTextKey(t *testing.T) {
	reply := `{"cover_letter": "x", "proposal_text": "y", "feasibility_score": 1, "feasibility_reason": "r", "summary": "s", "project_duration": "d", "overall_score": 2}`

	draft, err := ParseProposalDraft(reply)
	require.NoError(t, err)
	assert.Equal(t, "y", draft.ProposalText)
}

func TestParseProposalDraftMissingField(t *testing.T) {
	reply := `{"cover_letter": "x", "proposal": "y"}`

	_, err := ParseProposalDraft(reply)
	assert.ErrorIs(t, err, ErrParse)
}

func TestParseProposalDraftNoJSON(t *testing.T) {
	_, err := ParseProposalDraft("sorry, I cannot help with that")
	assert.ErrorIs(t, err, ErrParse)
}
