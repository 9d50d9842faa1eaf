package render

import (
	"bytes"
	"image/png"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/showmyfood/internal/domain"
)

func testEstimate() *domain.NutrientEstimate {
	return &domain.NutrientEstimate{
		DishName:      "борщ",
		WeightGrams:   300,
		CookingMethod: "варка",
		TotalKcal:     150,
		TotalProtein:  6,
		TotalFat:      4.5,
		TotalCarbs:    18,
		Assumptions:   []string{"Вес порции принят за 300 г."},
	}
}

func testFacts() []domain.DishFact {
	return []domain.DishFact{
		{
			Kind:       domain.FactHistory,
			Text:       "Борщ упоминается в письменных источниках начиная с XVI века и с тех пор оброс десятками региональных вариантов.",
			Sources:    []string{"https://ru.wikipedia.org/wiki/Борщ"},
			Verified:   true,
			Confidence: 0.9,
		},
	}
}

func TestRenderCardDimensions(t *testing.T) {
	r, err := NewCardRenderer()
	require.NoError(t, err)

	data, err := r.RenderCard(testEstimate(), testFacts())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, CardWidth, img.Bounds().Dx())
	assert.Equal(t, CardHeight, img.Bounds().Dy())
}

func TestRenderCardWithoutEstimate(t *testing.T) {
	r, err := NewCardRenderer()
	require.NoError(t, err)

	data, err := r.RenderCard(nil, testFacts())
	require.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestRenderCardConcurrent(t *testing.T) {
	r, err := NewCardRenderer()
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, rerr := r.RenderCard(testEstimate(), testFacts())
			if rerr == nil {
				_, rerr = png.Decode(bytes.NewReader(data))
			}
			errs[i] = rerr
		}()
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestWrapRespectsWidth(t *testing.T) {
	r, err := NewCardRenderer()
	require.NoError(t, err)

	text := "очень длинный факт о еде который точно не поместится на одной строке карточки и должен быть перенесён"
	lines := r.wrap(text, r.body, 400)

	assert.Greater(t, len(lines), 1)
	assert.Equal(t, text, joinWords(lines))
}

func joinWords(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += " "
		}
		out += l
	}
	return out
}
