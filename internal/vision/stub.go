package vision

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/vbonduro/showmyfood/internal/domain"
)

// stubDishes are the dishes the offline classifier samples from. Kept in sync
// with the bundled nutrition catalog so a stubbed suggestion still produces a
// full analysis.
var stubDishes = []string{
	"паста карбонара",
	"борщ",
	"плов",
	"салат цезарь",
	"пицца маргарита",
	"суши",
	"шашлык",
	"блины",
	"пельмени",
	"оладьи",
}

// StubClassifier is the degraded/offline vision backend: it ignores the image
// and samples 1-3 random dishes with decaying confidence.
type StubClassifier struct{}

func NewStubClassifier() *StubClassifier {
	return &StubClassifier{}
}

func (s *StubClassifier) Classify(_ context.Context, _ []byte) ([]domain.Label, error) {
	n := 1 + rand.IntN(MaxLabels)
	picks := rand.Perm(len(stubDishes))[:n]

	labels := make([]domain.Label, 0, n)
	for i, pick := range picks {
		confidence := 0.9 - float64(i)*0.2
		if confidence < 0.3 {
			confidence = 0.3
		}
		labels = append(labels, domain.Label{
			Name:        stubDishes[pick],
			Confidence:  confidence,
			Description: fmt.Sprintf("Возможно, это %s", stubDishes[pick]),
		})
	}
	return labels, nil
}
