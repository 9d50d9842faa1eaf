// Package render draws the 1280x720 nutrition card sent back to the user.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/vbonduro/showmyfood/internal/domain"
)

const (
	CardWidth  = 1280
	CardHeight = 720
)

var (
	colBackground = color.RGBA{R: 0x1e, G: 0x26, B: 0x2e, A: 0xff}
	colHeader     = color.RGBA{R: 0x2a, G: 0x38, B: 0x45, A: 0xff}
	colText       = color.RGBA{R: 0xec, G: 0xf0, B: 0xf1, A: 0xff}
	colMuted      = color.RGBA{R: 0x95, G: 0xa5, B: 0xa6, A: 0xff}
	colAccent     = color.RGBA{R: 0xf3, G: 0x9c, B: 0x12, A: 0xff}
)

// Renderer produces a card image for an analysis. Implementations are safe
// for concurrent use.
type Renderer interface {
	RenderCard(est *domain.NutrientEstimate, facts []domain.DishFact) ([]byte, error)
}

// CardRenderer draws PNG cards with the Go fonts, which cover Cyrillic.
// Font faces share an internal glyph buffer, so one card is drawn at a time.
type CardRenderer struct {
	mu      sync.Mutex
	title   font.Face
	heading font.Face
	body    font.Face
	small   font.Face
}

func NewCardRenderer() (*CardRenderer, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}

	face := func(f *sfnt.Font, size float64) (font.Face, error) {
		return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	}

	r := &CardRenderer{}
	if r.title, err = face(bold, 52); err != nil {
		return nil, err
	}
	if r.heading, err = face(bold, 34); err != nil {
		return nil, err
	}
	if r.body, err = face(regular, 26); err != nil {
		return nil, err
	}
	if r.small, err = face(regular, 20); err != nil {
		return nil, err
	}
	return r, nil
}

// RenderCard draws the estimate and up to three facts onto a 1280x720 card
// and returns it PNG-encoded. est may be nil when the dish was not found in
// the catalog; the card then carries facts only.
func (r *CardRenderer) RenderCard(est *domain.NutrientEstimate, facts []domain.DishFact) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, CardWidth, CardHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(colBackground), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, CardWidth, 120), image.NewUniform(colHeader), image.Point{}, draw.Src)

	title := "Что у вас на тарелке"
	if est != nil {
		title = capitalize(est.DishName)
	}
	r.drawText(img, r.title, colText, 48, 78, title)

	y := 190
	if est != nil {
		r.drawText(img, r.heading, colAccent, 48, y,
			fmt.Sprintf("%s ккал", trimFloat(est.TotalKcal)))
		y += 56
		r.drawText(img, r.body, colText, 48, y,
			fmt.Sprintf("Белки %s г  ·  Жиры %s г  ·  Углеводы %s г",
				trimFloat(est.TotalProtein), trimFloat(est.TotalFat), trimFloat(est.TotalCarbs)))
		y += 44
		r.drawText(img, r.small, colMuted, 48, y,
			fmt.Sprintf("Порция %d г, %s", est.WeightGrams, est.CookingMethod))
		y += 32
		for _, a := range est.Assumptions {
			r.drawText(img, r.small, colMuted, 48, y, a)
			y += 28
		}
		y += 28
	}

	if len(facts) > 0 {
		r.drawText(img, r.heading, colText, 48, y, "Интересные факты")
		y += 48
		for _, f := range facts {
			lines := r.wrap(f.Text, r.body, CardWidth-120)
			for i, line := range lines {
				prefix := "   "
				if i == 0 {
					prefix = "•  "
				}
				r.drawText(img, r.body, colText, 48, y, prefix+line)
				y += 36
				if y > CardHeight-40 {
					break
				}
			}
			y += 12
			if y > CardHeight-40 {
				break
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode card: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *CardRenderer) drawText(dst draw.Image, face font.Face, c color.Color, x, y int, text string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// wrap splits text into lines no wider than maxWidth pixels.
func (r *CardRenderer) wrap(text string, face font.Face, maxWidth int) []string {
	d := &font.Drawer{Face: face}
	limit := fixed.I(maxWidth)

	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		candidate := word
		if line.Len() > 0 {
			candidate = line.String() + " " + word
		}
		if d.MeasureString(candidate) <= limit {
			line.Reset()
			line.WriteString(candidate)
			continue
		}
		if line.Len() > 0 {
			lines = append(lines, line.String())
		}
		line.Reset()
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
