// Package analyzer orchestrates a full dish analysis: nutrition estimation
// and fact aggregation run concurrently, and vision classification turns a
// photo into dish suggestions.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/vbonduro/showmyfood/internal/domain"
	"github.com/vbonduro/showmyfood/internal/facts"
	"github.com/vbonduro/showmyfood/internal/nutrition"
	"github.com/vbonduro/showmyfood/internal/vision"
)

// Result is one complete analysis. Estimate is nil when the dish is not in
// the nutrition catalog; Facts always carries something to say, falling back
// to general food facts when the dish has none of its own.
type Result struct {
	Estimate *domain.NutrientEstimate
	Facts    *domain.FactBatch

	// FactsAreFallback marks that Facts came from the general pool rather
	// than matching the dish.
	FactsAreFallback bool
}

type Analyzer struct {
	nutrition  *nutrition.Provider
	facts      *facts.Aggregator
	classifier vision.Classifier
	logger     *slog.Logger
}

func New(n *nutrition.Provider, f *facts.Aggregator, c vision.Classifier, logger *slog.Logger) *Analyzer {
	return &Analyzer{nutrition: n, facts: f, classifier: c, logger: logger}
}

// FullAnalysis runs nutrition estimation and fact aggregation for a dish in
// parallel. A dish missing from the nutrition catalog is not an error: the
// result simply has no estimate. Facts for unknown dishes come from the
// fallback pool.
func (a *Analyzer) FullAnalysis(ctx context.Context, dishName string, weightGrams int, cookingMethod string, excludeTexts []string) (*Result, error) {
	res := &Result{}
	ingredients := a.nutrition.Ingredients(dishName)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		est, err := a.nutrition.Estimate(dishName, weightGrams, cookingMethod)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				a.logger.Info("dish not in nutrition catalog", "dish", dishName)
				return nil
			}
			return fmt.Errorf("estimate nutrition: %w", err)
		}
		res.Estimate = est
		return nil
	})

	g.Go(func() error {
		res.Facts = a.facts.GetFacts(gctx, dishName, ingredients, excludeTexts)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(res.Facts.Facts) == 0 {
		res.Facts = a.facts.GetFallbackFacts(ctx, excludeTexts)
		res.FactsAreFallback = true
	}
	return res, nil
}

// MoreFacts fetches another batch of facts for an already-analyzed dish,
// excluding everything the user has seen.
func (a *Analyzer) MoreFacts(ctx context.Context, dishName string, excludeTexts []string) (*domain.FactBatch, bool) {
	ingredients := a.nutrition.Ingredients(dishName)
	batch := a.facts.GetFacts(ctx, dishName, ingredients, excludeTexts)
	if len(batch.Facts) > 0 {
		return batch, false
	}
	return a.facts.GetFallbackFacts(ctx, excludeTexts), true
}

// FallbackFacts serves general food facts when no dish is in play.
func (a *Analyzer) FallbackFacts(ctx context.Context, excludeTexts []string) *domain.FactBatch {
	return a.facts.GetFallbackFacts(ctx, excludeTexts)
}

// DishSuggestions classifies a photo into up to three candidate dish names,
// most confident first.
func (a *Analyzer) DishSuggestions(ctx context.Context, image []byte) ([]domain.Label, error) {
	labels, err := a.classifier.Classify(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("classify image: %w", err)
	}
	return labels, nil
}
