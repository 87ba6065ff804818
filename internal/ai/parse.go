package ai

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dev-ventures/ventures/internal/types"
	"github.com/tidwall/gjson"
)

// ErrParse reports that the model's reply carried no usable JSON payload or
// that required fields were missing from it.
var ErrParse = errors.New("unparseable enrichment response")

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

type ProposalDraft struct {
	CoverLetter       string
	ProposalText      string
	FeasibilityScore  float64
	FeasibilityReason string
	Summary           string
	ProjectDuration   string
	OverallScore      float64
}

// NormalizeFeasibility maps a raw model reply onto the feasibility enum,
// defaulting to unsure for anything that is not an exact label.
func NormalizeFeasibility(reply string) string {
	status := strings.ToLower(strings.TrimSpace(reply))

	switch status {
	case types.FeasibilityValid, types.FeasibilityScam, types.FeasibilityUnsure:
		return status
	default:
		return types.FeasibilityUnsure
	}
}

// ExtractJSON pulls the JSON object out of a model reply. A fenced ```json
// block wins; otherwise the first balanced {...} region is used.
func ExtractJSON(text string) (string, error) {
	if match := fencedJSON.FindStringSubmatch(text); match != nil {
		return match[1], nil
	}

	if region := firstBalancedObject(text); region != "" {
		return region, nil
	}

	return "", fmt.Errorf("%w: no JSON object found", ErrParse)
}

// firstBalancedObject returns the first balanced {...} region that is valid
// JSON. Braces in prose ahead of the payload produce balanced regions that
// fail validation and are skipped.
func firstBalancedObject(text string) string {
	for start := 0; start < len(text); start++ {
		offset := strings.IndexByte(text[start:], '{')

		if offset < 0 {
			return ""
		}

		start += offset

		if region := balancedObjectAt(text, start); region != "" && gjson.Valid(region) {
			return region
		}
	}

	return ""
}

func balancedObjectAt(text string, start int) string {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if escaped {
			escaped = false
			continue
		}

		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1]
				}
			}
		}
	}

	return ""
}

// ParseProposalDraft extracts and validates the structured proposal object
// from a raw model reply. Every field is required; a missing one fails the
// whole parse rather than silently defaulting.
func ParseProposalDraft(reply string) (*ProposalDraft, error) {
	payload, err := ExtractJSON(reply)

	if err != nil {
		return nil, err
	}

	if !gjson.Valid(payload) {
		return nil, fmt.Errorf("%w: extracted region is not valid JSON", ErrParse)
	}

	parsed := gjson.Parse(payload)

	for _, field := range []string{"cover_letter", "feasibility_score", "feasibility_reason", "summary", "project_duration", "overall_score"} {
		if !parsed.Get(field).Exists() {
			return nil, fmt.Errorf("%w: missing field %q", ErrParse, field)
		}
	}

	// The model is asked for "proposal" but some replies use "proposal_text".
	proposalText := parsed.Get("proposal")
	if !proposalText.Exists() {
		proposalText = parsed.Get("proposal_text")
	}
	if !proposalText.Exists() {
		return nil, fmt.Errorf("%w: missing field %q", ErrParse, "proposal")
	}

	return &ProposalDraft{
		CoverLetter:       parsed.Get("cover_letter").String(),
		ProposalText:      proposalText.String(),
		FeasibilityScore:  parsed.Get("feasibility_score").Float(),
		FeasibilityReason: parsed.Get("feasibility_reason").String(),
		Summary:           parsed.Get("summary").String(),
		ProjectDuration:   parsed.Get("project_duration").String(),
		OverallScore:      parsed.Get("overall_score").Float(),
	}, nil
}
