package intelligence

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
)

// PhaseCandidate is one phase as reported by the model, before validation.
type PhaseCandidate struct {
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	Address              string   `json:"address"`
	GoogleMapsLink       string   `json:"googleMapsLink"`
	Cost                 int      `json:"cost"`
	IsIndoor             bool     `json:"isIndoor"`
	IsOutdoor            bool     `json:"isOutdoor"`
	IsVegetarianFriendly bool     `json:"isVegetarianFriendly"`
	IsAlcoholFriendly    bool     `json:"isAlcoholFriendly"`
	TravelTime           *int     `json:"travelTime"`
	Distance             *float64 `json:"distance"`
}

// PlanCandidate is one plan as reported by the model. Model-reported fields
// are untrusted: the validator recomputes totals and fills defaults.
type PlanCandidate struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	Theme              string           `json:"theme"`
	Phases             []PhaseCandidate `json:"phases"`
	TotalCost          int              `json:"totalCost"`
	BestFor            []string         `json:"bestFor"`
	Rating             *int             `json:"rating"`
	FitAnalysis        string           `json:"fitAnalysis"`
	RotationSuggestion string           `json:"rotationSuggestion"`
}

// parseShape tags the recognised top-level shapes of a model response.
type parseShape int

const (
	shapeUnrecognized parseShape = iota
	shapeObjectWithPlans
	shapeBareArray
)

// ParsePlans extracts a plan candidate list from free-form model output.
// It tolerates prose around the JSON and fenced code blocks. Malformed or
// unrecognised input yields an empty list, never an error: a parse failure
// is total for that response and callers fall back rather than patch.
func ParsePlans(raw string) []PlanCandidate {
	// A fenced block, when present, is authoritative.
	if fenced, ok := extractFencedBlock(raw); ok {
		return decodeSpan(fenced)
	}

	// Otherwise take the outermost brace span when it is well-formed JSON.
	// Well-formed JSON of the wrong shape is a total parse failure, never a
	// cue to go hunting for an embedded array. Only when the brace span is
	// not JSON at all (a bare array of objects in prose yields one) does
	// the bracket span get a try.
	if span, ok := braceSpan(raw); ok {
		if json.Valid([]byte(span)) {
			return decodeSpan(span)
		}
	}
	if span, ok := bracketSpan(raw); ok {
		return decodeSpan(span)
	}
	return nil
}

func decodeSpan(span string) []PlanCandidate {
	shape, payload := classify(span)
	if shape == shapeUnrecognized {
		return nil
	}
	var candidates []PlanCandidate
	if err := json.Unmarshal(payload, &candidates); err != nil {
		zap.L().Debug("Plan payload failed to decode", zap.Error(err))
		return nil
	}
	return candidates
}

func braceSpan(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(raw, "}")
	if end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

func bracketSpan(raw string) (string, bool) {
	start := strings.Index(raw, "[")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(raw, "]")
	if end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// extractFencedBlock returns the content between the first ```json fence
// (or bare ``` fence whose body starts with JSON) and its closing fence.
func extractFencedBlock(raw string) (string, bool) {
	marker := "```json"
	start := strings.Index(raw, marker)
	if start < 0 {
		return "", false
	}
	rest := raw[start+len(marker):]
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

// classify decides the top-level shape of the extracted span and returns
// the raw plan-list payload for the recognised shapes.
func classify(span string) (parseShape, json.RawMessage) {
	trimmed := strings.TrimSpace(span)
	if trimmed == "" {
		return shapeUnrecognized, nil
	}

	switch trimmed[0] {
	case '{':
		var envelope struct {
			Plans json.RawMessage `json:"plans"`
		}
		if err := json.Unmarshal([]byte(trimmed), &envelope); err != nil {
			return shapeUnrecognized, nil
		}
		if envelope.Plans == nil {
			return shapeUnrecognized, nil
		}
		return shapeObjectWithPlans, envelope.Plans
	case '[':
		if !json.Valid([]byte(trimmed)) {
			return shapeUnrecognized, nil
		}
		return shapeBareArray, json.RawMessage(trimmed)
	default:
		return shapeUnrecognized, nil
	}
}
