package ollama

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vbonduro/showmyfood/internal/domain"
	"github.com/vbonduro/showmyfood/internal/vision"
)

// Classifier labels dish photos through a local Ollama instance.
type Classifier struct {
	host   string
	model  string
	client *http.Client
}

func NewClassifier(host, model string) *Classifier {
	return &Classifier{
		host:   host,
		model:  model,
		client: &http.Client{},
	}
}

func (c *Classifier) Classify(ctx context.Context, image []byte) ([]domain.Label, error) {
	reqBody := map[string]any{
		"model":  c.model,
		"prompt": vision.ClassifyPrompt,
		"images": []string{base64.StdEncoding.EncodeToString(image)},
		"stream": false,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call ollama: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close ollama response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var respBody struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return vision.ParseLabels(respBody.Response), nil
}
