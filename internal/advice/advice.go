// Package advice serves food-photography tips as quotes from well-known
// photographers and chefs.
package advice

import (
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/vbonduro/showmyfood/internal/domain"
)

// Provider picks quotes from the loaded catalog without repeating ones the
// user has already seen.
type Provider struct {
	quotes []domain.Quote
}

func New(quotes []domain.Quote) *Provider {
	return &Provider{quotes: quotes}
}

// Categories returns the distinct quote categories, in catalog order.
func (p *Provider) Categories() []string {
	var cats []string
	for _, q := range p.quotes {
		if !slices.Contains(cats, q.Category) {
			cats = append(cats, q.Category)
		}
	}
	return cats
}

// Random returns a uniformly chosen quote not in excludeTexts. When every
// quote has been seen, the exclusion resets and any quote may repeat.
func (p *Provider) Random(excludeTexts []string) (domain.Quote, bool) {
	return p.pick(p.quotes, excludeTexts)
}

// ByCategory is Random restricted to one category. Category matching is
// case-insensitive.
func (p *Provider) ByCategory(category string, excludeTexts []string) (domain.Quote, bool) {
	var pool []domain.Quote
	for _, q := range p.quotes {
		if strings.EqualFold(q.Category, category) {
			pool = append(pool, q)
		}
	}
	return p.pick(pool, excludeTexts)
}

func (p *Provider) pick(pool []domain.Quote, excludeTexts []string) (domain.Quote, bool) {
	if len(pool) == 0 {
		return domain.Quote{}, false
	}
	fresh := make([]domain.Quote, 0, len(pool))
	for _, q := range pool {
		if !slices.Contains(excludeTexts, q.Text) {
			fresh = append(fresh, q)
		}
	}
	if len(fresh) == 0 {
		fresh = pool
	}
	return fresh[rand.IntN(len(fresh))], true
}
