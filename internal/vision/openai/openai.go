package openai

import (
	"context"
	"encoding/base64"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/vbonduro/showmyfood/internal/domain"
	"github.com/vbonduro/showmyfood/internal/vision"
)

// Classifier labels dish photos through the OpenAI vision chat API.
type Classifier struct {
	client *goopenai.Client
	model  string
}

func NewClassifier(apiKey, model string) *Classifier {
	return &Classifier{
		client: goopenai.NewClient(apiKey),
		model:  model,
	}
}

func (c *Classifier) Classify(ctx context.Context, image []byte) ([]domain.Label, error) {
	encoded := base64.StdEncoding.EncodeToString(image)

	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   500,
		Temperature: 0.3,
		Messages: []goopenai.ChatCompletionMessage{
			{
				Role: goopenai.ChatMessageRoleUser,
				MultiContent: []goopenai.ChatMessagePart{
					{Type: goopenai.ChatMessagePartTypeText, Text: vision.ClassifyPrompt},
					{
						Type: goopenai.ChatMessagePartTypeImageURL,
						ImageURL: &goopenai.ChatMessageImageURL{
							URL: "data:image/jpeg;base64," + encoded,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	return vision.ParseLabels(resp.Choices[0].Message.Content), nil
}
