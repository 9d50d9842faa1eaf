package facts

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/vbonduro/showmyfood/internal/domain"
)

const perplexityBaseURL = "https://api.perplexity.ai"

// requestTimeout bounds one Perplexity call; expiry is treated as an ordinary
// empty result upstream, never retried.
const requestTimeout = 10 * time.Second

// maxGeneratedFacts caps how many facts one provider call may contribute.
const maxGeneratedFacts = 5

const systemPrompt = "Ты эксперт по кулинарии и истории блюд. Отвечай на русском языке. " +
	"Предоставляй только проверенные факты с источниками. Всегда отвечай в формате JSON."

// PerplexityGenerator produces dish facts through Perplexity's
// OpenAI-compatible chat-completions API.
type PerplexityGenerator struct {
	client *openai.Client
	model  string
}

func NewPerplexityGenerator(apiKey, model string) *PerplexityGenerator {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = perplexityBaseURL
	return &PerplexityGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (g *PerplexityGenerator) GenerateFacts(ctx context.Context, dishName string, ingredients, excludeTexts []string) ([]domain.DishFact, error) {
	query := fmt.Sprintf(`Блюдо: %q
Ингредиенты: %s

Задача: дай 3–5 коротких факта (1–2 предложения каждый) о блюде и/или его ключевых ингредиентах.
Типы фактов: history, ingredient, event, celebrity.
Для каждого факта обязательно укажи:
- type (одно из: history|ingredient|event|celebrity)
- text (RU, 1–2 предложения, без кликбейта)
- sources (1–3 валидных URL, разные домены)
- confidence (0..1, честная оценка)
- verified (true/false). Для celebrity = true только при наличии проверяемых независимых источников.

Формат ответа: JSON-массив объектов с полями type, text, sources, verified, confidence.
Если данных недостаточно, верни пустой массив.`, dishName, strings.Join(ingredients, ", "))

	facts, err := g.complete(ctx, query, excludeTexts)
	if err != nil {
		return nil, err
	}
	if len(facts) > maxGeneratedFacts {
		facts = facts[:maxGeneratedFacts]
	}
	return facts, nil
}

func (g *PerplexityGenerator) GenerateFallbackFacts(ctx context.Context, excludeTexts []string) ([]domain.DishFact, error) {
	query := `Задача: дай 2-3 коротких факта о кулинарии, здоровом питании или истории блюд в целом.
Типы фактов: history, ingredient, event.
Для каждого факта обязательно укажи:
- type (одно из: history|ingredient|event)
- text (RU, 1–2 предложения, без кликбейта)
- sources (1–3 валидных URL, разные домены)
- confidence (0..1, честная оценка)
- verified (true/false)

Формат ответа: JSON-массив объектов с полями type, text, sources, verified, confidence.`

	facts, err := g.complete(ctx, query, excludeTexts)
	if err != nil {
		return nil, err
	}
	if len(facts) > MaxFallbackFacts {
		facts = facts[:MaxFallbackFacts]
	}
	return facts, nil
}

func (g *PerplexityGenerator) complete(ctx context.Context, query string, excludeTexts []string) ([]domain.DishFact, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
		MaxTokens:   1500,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("perplexity request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("perplexity returned no choices")
	}

	return ParseGeneratedFacts(resp.Choices[0].Message.Content, excludeTexts)
}
