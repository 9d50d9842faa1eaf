package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vbonduro/showmyfood/internal/domain"
)

func TestValidDishName(t *testing.T) {
	assert.True(t, ValidDishName("борщ"))
	assert.True(t, ValidDishName("  паста карбонара  "))

	assert.False(t, ValidDishName(""))
	assert.False(t, ValidDishName("щ"))
	assert.False(t, ValidDishName(strings.Repeat("а", 101)))
	assert.False(t, ValidDishName("борщ<script>"))
	assert.False(t, ValidDishName("суп/пюре"))
}

func TestValidWeight(t *testing.T) {
	assert.True(t, ValidWeight(1))
	assert.True(t, ValidWeight(300))
	assert.True(t, ValidWeight(5000))

	assert.False(t, ValidWeight(0))
	assert.False(t, ValidWeight(-10))
	assert.False(t, ValidWeight(5001))
}

func TestValidCookingMethod(t *testing.T) {
	assert.True(t, ValidCookingMethod("варка"))
	assert.True(t, ValidCookingMethod("ЖАРКА"))
	assert.True(t, ValidCookingMethod(" жарка на углях "))

	assert.False(t, ValidCookingMethod("сувид"))
	assert.False(t, ValidCookingMethod(""))
}

func TestValidFactText(t *testing.T) {
	assert.True(t, ValidFactText("Борщ варят из свеклы."))

	assert.False(t, ValidFactText("коротко"))
	assert.False(t, ValidFactText(strings.Repeat("ф", 501)))
}

func TestValidSources(t *testing.T) {
	assert.True(t, ValidSources([]string{"https://example.com/a", "http://other.org/b"}))

	assert.False(t, ValidSources(nil))
	assert.False(t, ValidSources([]string{"ftp://example.com"}))
	assert.False(t, ValidSources([]string{"example.com"}))
}

func TestDistinctDomains(t *testing.T) {
	assert.Equal(t, 2, DistinctDomains([]string{
		"https://ru.wikipedia.org/wiki/Борщ",
		"https://www.bbc.com/news/1",
		"https://ru.wikipedia.org/wiki/Свекла",
	}))
	assert.Equal(t, 0, DistinctDomains([]string{"not a url"}))
}

func TestShouldShowCelebrityFact(t *testing.T) {
	trusted := domain.DishFact{
		Kind:       domain.FactCelebrity,
		Verified:   true,
		Confidence: 0.8,
		Sources:    []string{"https://a.com/x", "https://b.org/y"},
	}
	assert.True(t, ShouldShowCelebrityFact(trusted))

	unverified := trusted
	unverified.Verified = false
	assert.False(t, ShouldShowCelebrityFact(unverified))

	singleDomain := trusted
	singleDomain.Sources = []string{"https://a.com/x", "https://a.com/y"}
	assert.False(t, ShouldShowCelebrityFact(singleDomain))

	lowConfidence := trusted
	lowConfidence.Confidence = 0.2
	assert.False(t, ShouldShowCelebrityFact(lowConfidence))

	// Non-celebrity kinds are never gated here, even unverified.
	history := domain.DishFact{Kind: domain.FactHistory, Verified: false, Confidence: 0.1}
	assert.True(t, ShouldShowCelebrityFact(history))
}

func TestDefaultWeightForDish(t *testing.T) {
	assert.Equal(t, 300, DefaultWeightForDish("борщ украинский"))
	assert.Equal(t, 250, DefaultWeightForDish("Паста карбонара"))
	assert.Equal(t, DefaultWeightGrams, DefaultWeightForDish("рамен"))
}
