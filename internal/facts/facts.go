// Package facts merges dish facts from the bundled catalog with facts fetched
// from a generative provider, filters untrusted claims, and ranks the result.
package facts

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/vbonduro/showmyfood/internal/domain"
	"github.com/vbonduro/showmyfood/internal/rules"
)

// MaxFactsPerDish bounds how many facts one aggregation call returns.
const MaxFactsPerDish = 3

// MaxFallbackFacts bounds the dish-agnostic fallback set.
const MaxFallbackFacts = 2

// minSharedIngredients is how many ingredients a fact group must share with the
// dish before an ingredient-only match counts.
const minSharedIngredients = 2

// Generator produces dish facts from an external generative service. Failures
// are expected and tolerated: the aggregator degrades to local facts only.
type Generator interface {
	GenerateFacts(ctx context.Context, dishName string, ingredients, excludeTexts []string) ([]domain.DishFact, error)
	GenerateFallbackFacts(ctx context.Context, excludeTexts []string) ([]domain.DishFact, error)
}

// Aggregator combines the local fact catalog with an optional external
// generator. A nil generator means local-only operation.
type Aggregator struct {
	table     *domain.FactTable
	generator Generator
	logger    *slog.Logger
}

func NewAggregator(table *domain.FactTable, generator Generator, logger *slog.Logger) *Aggregator {
	return &Aggregator{table: table, generator: generator, logger: logger}
}

// GetFacts returns at most MaxFactsPerDish facts about a dish, ordered by
// (verified, confidence) descending. Facts whose text appears in excludeTexts
// are never returned. Provider failures degrade to local facts only.
func (a *Aggregator) GetFacts(ctx context.Context, dishName string, ingredients, excludeTexts []string) *domain.FactBatch {
	external := a.fetchExternal(ctx, dishName, ingredients, excludeTexts)
	local := a.localFacts(dishName, ingredients)
	candidates := append(local, <-external...)

	kept, suppressed := filterCandidates(candidates, excludeTexts)
	sortByPriority(kept)

	if len(kept) > MaxFactsPerDish {
		kept = kept[:MaxFactsPerDish]
	}

	return &domain.FactBatch{
		Facts:               kept,
		TotalCandidates:     len(candidates),
		CelebritySuppressed: suppressed,
	}
}

// GetFallbackFacts returns up to MaxFallbackFacts dish-agnostic facts through
// the same merge-and-exclude pipeline, with the same batch diagnostics as
// GetFacts. When more than MaxFallbackFacts survive filtering, a uniform
// random sample is taken.
func (a *Aggregator) GetFallbackFacts(ctx context.Context, excludeTexts []string) *domain.FactBatch {
	candidates := append([]domain.DishFact(nil), a.table.Fallback...)

	if a.generator != nil {
		generated, err := a.generator.GenerateFallbackFacts(ctx, excludeTexts)
		if err != nil {
			a.logger.Warn("fallback fact generation failed", "error", err)
		} else {
			candidates = append(candidates, generated...)
		}
	}

	kept, suppressed := filterCandidates(candidates, excludeTexts)
	if len(kept) > MaxFallbackFacts {
		rand.Shuffle(len(kept), func(i, j int) { kept[i], kept[j] = kept[j], kept[i] })
		kept = kept[:MaxFallbackFacts]
	}
	return &domain.FactBatch{
		Facts:               kept,
		TotalCandidates:     len(candidates),
		CelebritySuppressed: suppressed,
	}
}

// fetchExternal issues the generator call without blocking the local table
// scan; the result channel always yields exactly one value.
func (a *Aggregator) fetchExternal(ctx context.Context, dishName string, ingredients, excludeTexts []string) <-chan []domain.DishFact {
	ch := make(chan []domain.DishFact, 1)
	if a.generator == nil {
		ch <- nil
		return ch
	}
	go func() {
		generated, err := a.generator.GenerateFacts(ctx, dishName, ingredients, excludeTexts)
		if err != nil {
			a.logger.Warn("fact generation failed", "dish", dishName, "error", err)
			ch <- nil
			return
		}
		ch <- generated
	}()
	return ch
}

// localFacts collects facts from every catalog group matching the dish by name
// or by shared ingredients.
func (a *Aggregator) localFacts(dishName string, ingredients []string) []domain.DishFact {
	name := strings.ToLower(strings.TrimSpace(dishName))

	var out []domain.DishFact
	for i := range a.table.Groups {
		group := &a.table.Groups[i]
		if matchesDish(name, group.DishNames) || sharedIngredients(ingredients, group.Ingredients) >= minSharedIngredients {
			out = append(out, group.Facts...)
		}
	}
	return out
}

// matchesDish reports whether the dish name matches any group name exactly or
// by containment in either direction.
func matchesDish(name string, groupNames []string) bool {
	if name == "" {
		return false
	}
	for _, gn := range groupNames {
		gn = strings.ToLower(gn)
		if name == gn || strings.Contains(name, gn) || strings.Contains(gn, name) {
			return true
		}
	}
	return false
}

func sharedIngredients(dish, group []string) int {
	if len(dish) == 0 || len(group) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(group))
	for _, ing := range group {
		set[strings.ToLower(strings.TrimSpace(ing))] = struct{}{}
	}
	shared := 0
	for _, ing := range dish {
		if _, ok := set[strings.ToLower(strings.TrimSpace(ing))]; ok {
			shared++
		}
	}
	return shared
}

// filterCandidates drops excluded and duplicate texts (first occurrence wins)
// and celebrity facts failing the trust rule, returning the survivors and the
// number of suppressed celebrity facts.
func filterCandidates(candidates []domain.DishFact, excludeTexts []string) ([]domain.DishFact, int) {
	seen := make(map[string]struct{}, len(excludeTexts))
	for _, text := range excludeTexts {
		seen[text] = struct{}{}
	}

	kept := make([]domain.DishFact, 0, len(candidates))
	suppressed := 0
	for _, fact := range candidates {
		if _, dup := seen[fact.Text]; dup {
			continue
		}
		seen[fact.Text] = struct{}{}
		if !rules.ShouldShowCelebrityFact(fact) {
			suppressed++
			continue
		}
		kept = append(kept, fact)
	}
	return kept, suppressed
}

func sortByPriority(facts []domain.DishFact) {
	sort.SliceStable(facts, func(i, j int) bool {
		if facts[i].Verified != facts[j].Verified {
			return facts[i].Verified
		}
		return facts[i].Confidence > facts[j].Confidence
	})
}
