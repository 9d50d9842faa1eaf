package claude

import (
	"context"
	"fmt"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	"github.com/vbonduro/showmyfood/internal/domain"
	"github.com/vbonduro/showmyfood/internal/vision"
)

// Classifier labels dish photos through the Anthropic Messages API.
type Classifier struct {
	client *anthropic.Client
	model  string
}

func NewClassifier(apiKey, model string) *Classifier {
	return &Classifier{
		client: anthropic.NewClient(apiKey),
		model:  model,
	}
}

func (c *Classifier) Classify(ctx context.Context, image []byte) ([]domain.Label, error) {
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		MaxTokens: 512,
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewImageMessageContent(
						anthropic.NewMessageContentSource(anthropic.MessagesContentSourceTypeBase64, "image/jpeg", image),
					),
					anthropic.NewTextMessageContent(vision.ClassifyPrompt),
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call claude: %w", err)
	}

	text := resp.GetFirstContentText()
	if text == "" {
		return nil, fmt.Errorf("claude returned no text content")
	}

	return vision.ParseLabels(text), nil
}
