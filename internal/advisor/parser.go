package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/finadvise/finadvise/internal/models"
)

// ParseAllocation extracts the allocation block from raw completion output
// and validates it into a candidate. The response is untrusted: prose may
// surround the JSON object, and the structure must match the closed asset
// class set exactly. Validation is strict; a single malformed key rejects
// the whole candidate. The sum-to-100 invariant is deliberately not
// checked here, since minor rounding drift is repaired downstream.
func ParseAllocation(raw string) (models.AllocationCandidate, string, error) {
	block, err := extractJSONObject(raw)
	if err != nil {
		return nil, "", &MalformedAllocationError{Reason: err.Error()}
	}

	var envelope struct {
		Allocations map[string]json.RawMessage `json:"allocations"`
		Rationale   string                     `json:"rationale"`
		Narrative   string                     `json:"narrative"`
	}

	weights := make(map[string]json.RawMessage)
	rationale := ""

	if err := json.Unmarshal([]byte(block), &envelope); err == nil && len(envelope.Allocations) > 0 {
		weights = envelope.Allocations
		rationale = envelope.Rationale
		if rationale == "" {
			rationale = envelope.Narrative
		}
	} else if err := json.Unmarshal([]byte(block), &weights); err != nil {
		return nil, "", &MalformedAllocationError{Reason: fmt.Sprintf("allocation block is not a JSON object: %v", err)}
	}

	candidate := make(models.AllocationCandidate, len(weights))
	for rawKey, rawValue := range weights {
		class, ok := normalizeAssetClass(rawKey)
		if !ok {
			return nil, "", &MalformedAllocationError{Reason: fmt.Sprintf("unknown asset class %q", rawKey)}
		}
		if _, dup := candidate[class]; dup {
			return nil, "", &MalformedAllocationError{Reason: fmt.Sprintf("duplicate asset class %q", class)}
		}

		var weight float64
		if err := json.Unmarshal(rawValue, &weight); err != nil {
			return nil, "", &MalformedAllocationError{Reason: fmt.Sprintf("non-numeric weight for %q", class)}
		}
		if weight < 0 || weight > 100 {
			return nil, "", &MalformedAllocationError{Reason: fmt.Sprintf("weight for %q out of range: %v", class, weight)}
		}
		candidate[class] = weight
	}

	for _, class := range models.AssetClasses() {
		if _, ok := candidate[class]; !ok {
			return nil, "", &MalformedAllocationError{Reason: fmt.Sprintf("missing asset class %q", class)}
		}
	}

	return candidate, strings.TrimSpace(rationale), nil
}

// normalizeAssetClass folds case, whitespace, and separator variants onto
// the canonical identifiers.
func normalizeAssetClass(raw string) (models.AssetClass, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "-", "_")
	key = strings.ReplaceAll(key, " ", "_")

	switch models.AssetClass(key) {
	case models.AssetEquities, models.AssetBonds, models.AssetRealEstate,
		models.AssetCashEquivalents, models.AssetAlternatives:
		return models.AssetClass(key), true
	}
	return "", false
}

// extractJSONObject locates the first balanced JSON object in text,
// tolerating surrounding prose and markdown fences.
func extractJSONObject(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", fmt.Errorf("no JSON object found in response")
	}

	depth := 0
	inString := false
	escape := false

	for i := start; i < len(text); i++ {
		ch := text[i]

		if escape {
			escape = false
			continue
		}
		if ch == '\\' {
			escape = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch ch {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	return "", fmt.Errorf("unterminated JSON object in response")
}
