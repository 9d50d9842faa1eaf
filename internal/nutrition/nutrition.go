// Package nutrition estimates nutrient totals for a named dish from the
// bundled catalog table.
package nutrition

import (
	"fmt"
	"math"
	"strings"

	"github.com/vbonduro/showmyfood/internal/domain"
)

// DefaultCookingMethod is the baseline preparation the per-100g values assume.
const DefaultCookingMethod = "варка"

// estimateConfidence reflects that the catalog holds typical recipes, not the
// exact dish on the user's plate.
const estimateConfidence = 0.8

type Provider struct {
	table  *domain.NutritionTable
	byName map[string]*domain.NutritionEntry
}

func New(table *domain.NutritionTable) *Provider {
	byName := make(map[string]*domain.NutritionEntry, len(table.Dishes))
	for i := range table.Dishes {
		byName[table.Dishes[i].Name] = &table.Dishes[i]
	}
	return &Provider{table: table, byName: byName}
}

// Lookup resolves a dish name to its catalog entry. An exact match wins;
// otherwise bidirectional substring containment is tried against every catalog
// key and the longest (most specific) matching key is chosen. Returns
// domain.ErrNotFound when nothing matches even partially.
func (p *Provider) Lookup(dishName string) (*domain.NutritionEntry, error) {
	name := normalize(dishName)
	if name == "" {
		return nil, domain.ErrNotFound
	}

	if entry, ok := p.byName[name]; ok {
		return entry, nil
	}

	var best *domain.NutritionEntry
	for i := range p.table.Dishes {
		entry := &p.table.Dishes[i]
		if !strings.Contains(name, entry.Name) && !strings.Contains(entry.Name, name) {
			continue
		}
		if best == nil || len(entry.Name) > len(best.Name) {
			best = entry
		}
	}
	if best == nil {
		return nil, domain.ErrNotFound
	}
	return best, nil
}

// Ingredients returns the catalog ingredient list for a dish, or nil when the
// dish is unknown. Used as best-effort metadata for fact matching.
func (p *Provider) Ingredients(dishName string) []string {
	entry, err := p.Lookup(dishName)
	if err != nil {
		return nil
	}
	return entry.Ingredients
}

// Estimate projects the per-100g catalog values onto the given weight and
// cooking method. Unrecognized methods use multiplier 1.0.
func (p *Provider) Estimate(dishName string, weightGrams int, cookingMethod string) (*domain.NutrientEstimate, error) {
	entry, err := p.Lookup(dishName)
	if err != nil {
		return nil, err
	}

	if cookingMethod == "" {
		cookingMethod = DefaultCookingMethod
	}
	multiplier, ok := p.table.Multipliers[strings.ToLower(cookingMethod)]
	if !ok {
		multiplier = 1.0
	}

	weightRatio := float64(weightGrams) / 100.0

	est := &domain.NutrientEstimate{
		DishName:      dishName,
		WeightGrams:   weightGrams,
		CookingMethod: cookingMethod,
		Per100g:       entry.Per100g,
		TotalKcal:     round1(entry.Per100g.Kcal * multiplier * weightRatio),
		TotalProtein:  round1(entry.Per100g.Protein * weightRatio),
		TotalFat:      round1(entry.Per100g.Fat * weightRatio),
		TotalCarbs:    round1(entry.Per100g.Carbs * weightRatio),
		Confidence:    estimateConfidence,
	}

	if cookingMethod != DefaultCookingMethod {
		est.Assumptions = append(est.Assumptions,
			fmt.Sprintf("Учтено изменение калорийности при способе приготовления «%s»", cookingMethod))
	}
	if weightGrams != 100 {
		est.Assumptions = append(est.Assumptions,
			fmt.Sprintf("Расчет для %dг (стандартная порция: 100г)", weightGrams))
	}

	return est, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
