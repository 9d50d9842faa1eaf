// Package vision defines the dish-classification capability and its shared
// response format. Concrete adapters live in subpackages; variants are picked
// at construction time in main.
package vision

import (
	"context"

	"github.com/vbonduro/showmyfood/internal/domain"
)

// ClassifyPrompt is the shared prompt used by all vision adapters.
const ClassifyPrompt = `Проанализируй это изображение еды и определи, что это за блюдо.
Верни ответ строго в формате JSON: массив блюд, каждое с полями:
- name: название блюда на русском языке
- confidence: уверенность от 0.0 до 1.0
- description: краткое описание

Верни до 3 наиболее вероятных вариантов, самый вероятный первым.
Пример:
[{"name": "паста карбонара", "confidence": 0.9, "description": "Итальянская паста с беконом и сыром"}]`

// MaxLabels bounds how many candidate labels one classification returns.
const MaxLabels = 3

// Classifier labels a dish photo with candidate dish names ordered by
// confidence.
type Classifier interface {
	Classify(ctx context.Context, image []byte) ([]domain.Label, error)
}
