// Package rules holds validation and business rules shared by the bot
// handlers and the fact pipeline.
package rules

import (
	"net/url"
	"strings"

	"github.com/vbonduro/showmyfood/internal/domain"
)

const (
	// MinFactConfidence is the floor below which a celebrity fact is never shown.
	MinFactConfidence = 0.3

	// MinCelebritySources is how many distinct-domain sources a celebrity
	// claim needs before it is trusted.
	MinCelebritySources = 2

	MinWeightGrams = 1
	MaxWeightGrams = 5000

	// MaxImageBytes caps accepted photos at 20 MB, Telegram's own photo limit.
	MaxImageBytes = 20 << 20
)

// CookingMethods lists every preparation the bot recognizes, including
// colloquial inflections users actually type.
var CookingMethods = []string{
	"варка", "жарка", "запекание", "тушение", "гриль",
	"жарка на углях", "сырой", "на пару", "запеченная", "жареная",
	"тушеная", "вареный", "варенная",
}

var forbiddenNameChars = "<>&\"'\\/\n\r\t"

// ValidDishName checks user-supplied dish names: 2..100 characters and no
// markup or path characters.
func ValidDishName(name string) bool {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < 2 || len([]rune(name)) > 100 {
		return false
	}
	return !strings.ContainsAny(name, forbiddenNameChars)
}

func ValidWeight(grams int) bool {
	return grams >= MinWeightGrams && grams <= MaxWeightGrams
}

func ValidCookingMethod(method string) bool {
	method = strings.ToLower(strings.TrimSpace(method))
	for _, m := range CookingMethods {
		if m == method {
			return true
		}
	}
	return false
}

func ValidImageSize(data []byte) bool {
	return len(data) <= MaxImageBytes
}

// ValidFactText bounds fact texts to 10..500 characters.
func ValidFactText(text string) bool {
	n := len([]rune(strings.TrimSpace(text)))
	return n >= 10 && n <= 500
}

// ValidSources requires a non-empty list of http(s) URLs.
func ValidSources(sources []string) bool {
	if len(sources) == 0 {
		return false
	}
	for _, s := range sources {
		if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
			return false
		}
	}
	return true
}

// ShouldShowCelebrityFact applies the trust rule: celebrity claims need
// verification, at least MinCelebritySources sources from distinct domains,
// and confidence of at least MinFactConfidence. Other kinds always pass.
func ShouldShowCelebrityFact(fact domain.DishFact) bool {
	if fact.Kind != domain.FactCelebrity {
		return true
	}
	if !fact.Verified || fact.Confidence < MinFactConfidence {
		return false
	}
	return DistinctDomains(fact.Sources) >= MinCelebritySources
}

// DistinctDomains counts how many different hosts appear in the source URLs.
func DistinctDomains(sources []string) int {
	domains := make(map[string]struct{}, len(sources))
	for _, s := range sources {
		u, err := url.Parse(s)
		if err != nil || u.Host == "" {
			continue
		}
		domains[strings.ToLower(u.Host)] = struct{}{}
	}
	return len(domains)
}

// defaultWeights maps dish-type keywords to typical serving weights in grams.
var defaultWeights = map[string]int{
	"суп":      300,
	"борщ":     300,
	"салат":    200,
	"паста":    250,
	"плов":     250,
	"пицца":    200,
	"пельмени": 200,
	"шашлык":   200,
	"блины":    150,
	"оладьи":   150,
}

// DefaultWeightGrams is used when no dish-type keyword matches.
const DefaultWeightGrams = 200

// DefaultWeightForDish returns a typical serving weight for the dish.
func DefaultWeightForDish(dishName string) int {
	name := strings.ToLower(dishName)
	for keyword, weight := range defaultWeights {
		if strings.Contains(name, keyword) {
			return weight
		}
	}
	return DefaultWeightGrams
}
