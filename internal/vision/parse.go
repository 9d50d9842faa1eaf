package vision

import (
	"encoding/json"
	"strings"

	"github.com/vbonduro/showmyfood/internal/domain"
)

type labelPayload struct {
	Name        string  `json:"name"`
	Confidence  float64 `json:"confidence"`
	Description string  `json:"description"`
}

// ParseLabels parses a model response into candidate labels. The response is
// expected to be a JSON array, possibly inside a markdown code fence; elements
// without a name are dropped. A response that is not a JSON array at all
// yields the single UnknownDishLabel, mirroring how little we trust free-form
// model output.
func ParseLabels(content string) []domain.Label {
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &elements); err != nil {
		return []domain.Label{UnknownDishLabel()}
	}

	labels := make([]domain.Label, 0, len(elements))
	for _, raw := range elements {
		var p labelPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			continue
		}
		p.Name = strings.ToLower(strings.TrimSpace(p.Name))
		if p.Name == "" {
			continue
		}
		if p.Confidence < 0 {
			p.Confidence = 0
		} else if p.Confidence > 1 {
			p.Confidence = 1
		}
		labels = append(labels, domain.Label{
			Name:        p.Name,
			Confidence:  p.Confidence,
			Description: strings.TrimSpace(p.Description),
		})
		if len(labels) == MaxLabels {
			break
		}
	}
	if len(labels) == 0 {
		return []domain.Label{UnknownDishLabel()}
	}
	return labels
}

// UnknownDishLabel is returned when a model reply cannot be interpreted.
func UnknownDishLabel() domain.Label {
	return domain.Label{
		Name:        "неизвестное блюдо",
		Confidence:  0.5,
		Description: "Не удалось определить блюдо",
	}
}

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
