package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.0-flash-001"

// ErrMissingAPIKey is returned by New without a key
var ErrMissingAPIKey = errors.New("gemini API key is required")

// Client generates replies with Google's Gemini API
type Client struct {
	client      *genai.Client
	model       string
	temperature float32
}

// New creates a Gemini client
func New(ctx context.Context, apiKey, model string, temperature float64) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Client{
		client:      client,
		model:       model,
		temperature: float32(temperature),
	}, nil
}

// Model returns the configured model name
func (c *Client) Model() string {
	return c.model
}

// Generate sends a single prompt and returns the model's text
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var cfg *genai.GenerateContentConfig
	if c.temperature > 0 {
		cfg = &genai.GenerateContentConfig{Temperature: genai.Ptr(c.temperature)}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned no text")
	}
	return text, nil
}
