package facts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vbonduro/showmyfood/internal/domain"
	"github.com/vbonduro/showmyfood/internal/rules"
)

// factPayload mirrors one element of the JSON array the generative provider
// is asked to emit.
type factPayload struct {
	Type       string   `json:"type"`
	Text       string   `json:"text"`
	Sources    []string `json:"sources"`
	Verified   bool     `json:"verified"`
	Confidence float64  `json:"confidence"`
}

// ParseGeneratedFacts extracts dish facts from a model response. The response
// is expected to be a JSON array, possibly wrapped in a markdown code fence.
// Malformed or invalid elements are dropped individually; only an unparseable
// top-level array is an error.
func ParseGeneratedFacts(content string, excludeTexts []string) ([]domain.DishFact, error) {
	content = stripCodeFence(content)

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(content), &elements); err != nil {
		return nil, fmt.Errorf("response is not a JSON array: %w", err)
	}

	exclude := make(map[string]struct{}, len(excludeTexts))
	for _, text := range excludeTexts {
		exclude[text] = struct{}{}
	}

	facts := make([]domain.DishFact, 0, len(elements))
	for _, raw := range elements {
		var p factPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			continue
		}
		p.Text = strings.TrimSpace(p.Text)
		if !domain.ValidFactKind(p.Type) || !rules.ValidFactText(p.Text) || !rules.ValidSources(p.Sources) {
			continue
		}
		if _, shown := exclude[p.Text]; shown {
			continue
		}
		facts = append(facts, domain.DishFact{
			Kind:       domain.FactKind(p.Type),
			Text:       p.Text,
			Sources:    p.Sources,
			Verified:   p.Verified,
			Confidence: clamp01(p.Confidence),
		})
	}
	return facts, nil
}

// stripCodeFence removes a surrounding ```json ... ``` (or plain ```) block
// that chat models often wrap structured output in.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if after, ok := strings.CutPrefix(content, "```json"); ok {
		content = after
	} else if after, ok := strings.CutPrefix(content, "```"); ok {
		content = after
	} else {
		return content
	}
	if before, _, ok := strings.Cut(content, "```"); ok {
		content = before
	}
	return strings.TrimSpace(content)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
