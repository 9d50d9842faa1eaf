package analyzer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/showmyfood/internal/domain"
	"github.com/vbonduro/showmyfood/internal/facts"
	"github.com/vbonduro/showmyfood/internal/nutrition"
)

type stubClassifier struct {
	labels []domain.Label
	err    error
}

func (s *stubClassifier) Classify(_ context.Context, _ []byte) ([]domain.Label, error) {
	return s.labels, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAnalyzer(c *stubClassifier) *Analyzer {
	nutTable := &domain.NutritionTable{
		Dishes: []domain.NutritionEntry{
			{
				Name:        "борщ",
				Per100g:     domain.NutrientsPer100g{Kcal: 50, Protein: 2, Fat: 1.5, Carbs: 6},
				Ingredients: []string{"свекла", "капуста", "картофель"},
			},
		},
		Multipliers: map[string]float64{"варка": 1.0, "жарка": 1.2},
	}
	factTable := &domain.FactTable{
		Groups: []domain.FactGroup{
			{
				DishNames: []string{"борщ"},
				Facts: []domain.DishFact{{
					Kind:       domain.FactHistory,
					Text:       "Борщ упоминается в письменных источниках с XVI века.",
					Sources:    []string{"https://example.com/borscht"},
					Verified:   true,
					Confidence: 0.9,
				}},
			},
		},
		Fallback: []domain.DishFact{{
			Kind:       domain.FactHistory,
			Text:       "Вилка вошла в широкий обиход в Европе только к XVIII веку.",
			Sources:    []string{"https://example.com/fork"},
			Verified:   true,
			Confidence: 0.8,
		}},
	}
	return New(
		nutrition.New(nutTable),
		facts.NewAggregator(factTable, nil, discardLogger()),
		c,
		discardLogger(),
	)
}

func TestFullAnalysisKnownDish(t *testing.T) {
	a := testAnalyzer(&stubClassifier{})

	res, err := a.FullAnalysis(context.Background(), "борщ", 300, "варка", nil)

	require.NoError(t, err)
	require.NotNil(t, res.Estimate)
	assert.Equal(t, 150.0, res.Estimate.TotalKcal)
	assert.Equal(t, 6.0, res.Estimate.TotalProtein)
	require.Len(t, res.Facts.Facts, 1)
	assert.False(t, res.FactsAreFallback)
}

func TestFullAnalysisUnknownDishFallsBack(t *testing.T) {
	a := testAnalyzer(&stubClassifier{})

	res, err := a.FullAnalysis(context.Background(), "рататуй", 200, "тушение", nil)

	require.NoError(t, err)
	assert.Nil(t, res.Estimate, "unknown dish must not produce an estimate")
	assert.True(t, res.FactsAreFallback)
	require.Len(t, res.Facts.Facts, 1)
	assert.Contains(t, res.Facts.Facts[0].Text, "Вилка")
}

func TestMoreFactsExcludesShown(t *testing.T) {
	a := testAnalyzer(&stubClassifier{})

	batch, fallback := a.MoreFacts(context.Background(), "борщ", nil)
	require.Len(t, batch.Facts, 1)
	assert.False(t, fallback)

	// All dish facts shown: the next request serves general facts.
	batch, fallback = a.MoreFacts(context.Background(), "борщ", []string{batch.Facts[0].Text})
	assert.True(t, fallback)
	require.Len(t, batch.Facts, 1)
	assert.Contains(t, batch.Facts[0].Text, "Вилка")
}

func TestDishSuggestions(t *testing.T) {
	c := &stubClassifier{labels: []domain.Label{
		{Name: "борщ", Confidence: 0.9},
		{Name: "свекольник", Confidence: 0.5},
	}}
	a := testAnalyzer(c)

	labels, err := a.DishSuggestions(context.Background(), []byte("jpeg"))

	require.NoError(t, err)
	assert.Len(t, labels, 2)
	assert.Equal(t, "борщ", labels[0].Name)
}

func TestDishSuggestionsClassifierError(t *testing.T) {
	a := testAnalyzer(&stubClassifier{err: errors.New("model offline")})

	_, err := a.DishSuggestions(context.Background(), []byte("jpeg"))

	assert.Error(t, err)
}
