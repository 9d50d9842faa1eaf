package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/showmyfood/internal/domain"
)

func testTable() *domain.NutritionTable {
	return &domain.NutritionTable{
		Dishes: []domain.NutritionEntry{
			{
				Name:        "борщ",
				Per100g:     domain.NutrientsPer100g{Kcal: 50, Protein: 2, Fat: 1.5, Carbs: 6},
				Ingredients: []string{"свекла", "капуста", "картофель"},
			},
			{
				Name:    "паста",
				Per100g: domain.NutrientsPer100g{Kcal: 160, Protein: 6, Fat: 5, Carbs: 24},
			},
			{
				Name:    "паста карбонара",
				Per100g: domain.NutrientsPer100g{Kcal: 190, Protein: 7.5, Fat: 9, Carbs: 20},
			},
		},
		Multipliers: map[string]float64{
			"варка":     1.0,
			"жарка":     1.2,
			"запекание": 1.15,
		},
	}
}

func TestLookupExact(t *testing.T) {
	p := New(testTable())

	entry, err := p.Lookup("борщ")
	require.NoError(t, err)
	assert.Equal(t, "борщ", entry.Name)
}

func TestLookupNormalizes(t *testing.T) {
	p := New(testTable())

	entry, err := p.Lookup("  БОРЩ  ")
	require.NoError(t, err)
	assert.Equal(t, "борщ", entry.Name)
}

func TestLookupPrefersMostSpecificSubstringMatch(t *testing.T) {
	p := New(testTable())

	// Both "паста" and "паста карбонара" contain-match; the longest key wins.
	entry, err := p.Lookup("паста карбонара со сливками")
	require.NoError(t, err)
	assert.Equal(t, "паста карбонара", entry.Name)
}

func TestLookupSubstringBothDirections(t *testing.T) {
	p := New(testTable())

	// Query contained in catalog key.
	entry, err := p.Lookup("карбонара")
	require.NoError(t, err)
	assert.Equal(t, "паста карбонара", entry.Name)
}

func TestLookupNotFound(t *testing.T) {
	p := New(testTable())

	_, err := p.Lookup("рамен")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = p.Lookup("   ")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEstimateScenario(t *testing.T) {
	p := New(testTable())

	est, err := p.Estimate("борщ", 300, "варка")
	require.NoError(t, err)

	assert.Equal(t, 150.0, est.TotalKcal)
	assert.Equal(t, 6.0, est.TotalProtein)
	assert.Equal(t, 4.5, est.TotalFat)
	assert.Equal(t, 18.0, est.TotalCarbs)
}

func TestEstimateLinearInWeight(t *testing.T) {
	p := New(testTable())

	base, err := p.Estimate("борщ", 100, "варка")
	require.NoError(t, err)

	for _, w := range []int{50, 150, 250, 400} {
		est, err := p.Estimate("борщ", w, "варка")
		require.NoError(t, err)
		assert.InDelta(t, base.TotalKcal*float64(w)/100, est.TotalKcal, 0.06, "weight %d", w)
	}
}

func TestEstimateCookingMultipliers(t *testing.T) {
	p := New(testTable())

	tests := []struct {
		method   string
		wantKcal float64
	}{
		{"варка", 50},
		{"жарка", 60},
		{"запекание", 57.5},
		{"сувид", 50}, // unrecognized method keeps multiplier 1.0
	}

	for _, tt := range tests {
		est, err := p.Estimate("борщ", 100, tt.method)
		require.NoError(t, err)
		assert.Equal(t, tt.wantKcal, est.TotalKcal, "method %s", tt.method)
	}
}

func TestEstimateMultiplierOnlyAffectsKcal(t *testing.T) {
	p := New(testTable())

	est, err := p.Estimate("борщ", 100, "жарка")
	require.NoError(t, err)

	assert.Equal(t, 60.0, est.TotalKcal)
	assert.Equal(t, 2.0, est.TotalProtein)
	assert.Equal(t, 1.5, est.TotalFat)
	assert.Equal(t, 6.0, est.TotalCarbs)
}

func TestEstimateAssumptions(t *testing.T) {
	p := New(testTable())

	est, err := p.Estimate("борщ", 100, "варка")
	require.NoError(t, err)
	assert.Empty(t, est.Assumptions)

	est, err = p.Estimate("борщ", 300, "жарка")
	require.NoError(t, err)
	assert.Len(t, est.Assumptions, 2)
}

func TestEstimateDefaultsCookingMethod(t *testing.T) {
	p := New(testTable())

	est, err := p.Estimate("борщ", 100, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultCookingMethod, est.CookingMethod)
	assert.Equal(t, 50.0, est.TotalKcal)
}

func TestIngredients(t *testing.T) {
	p := New(testTable())

	assert.Equal(t, []string{"свекла", "капуста", "картофель"}, p.Ingredients("борщ"))
	assert.Nil(t, p.Ingredients("рамен"))
}
