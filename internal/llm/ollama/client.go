package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// Client talks to a local Ollama server
type Client struct {
	Host        string
	Model       string
	Temperature float64
	Debug       bool
	client      *http.Client
	log         zerolog.Logger
}

// NewClient creates a client for model on host
func NewClient(host, model string, temperature float64, log zerolog.Logger) *Client {
	return &Client{
		Host:        host,
		Model:       model,
		Temperature: temperature,
		client:      &http.Client{},
		log:         log,
	}
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	System  string         `json:"system,omitempty"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

// chunk is one line of the NDJSON stream
type chunk struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// Model is an installed model
type Model struct {
	Name       string `json:"name"`
	ModifiedAt string `json:"modified_at"`
	Size       int64  `json:"size"`
}

type tagsResponse struct {
	Models []Model `json:"models"`
}

// Generate sends a prompt and returns the whole streamed answer
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var sb strings.Builder
	err := c.Stream(ctx, prompt, "", func(text string) error {
		sb.WriteString(text)
		return nil
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Stream sends a prompt and hands each piece of the answer to onChunk as it arrives
func (c *Client) Stream(ctx context.Context, prompt, system string, onChunk func(string) error) error {
	body := generateRequest{Model: c.Model, Prompt: prompt, System: system, Stream: true}
	if c.Temperature > 0 {
		body.Options = map[string]any{"temperature": c.Temperature}
	}
	if c.Debug {
		c.log.Debug().Str("model", c.Model).Float64("temperature", c.Temperature).Str("prompt", prompt).Msg("ollama request")
	}

	resp, err := c.request(ctx, http.MethodPost, "/api/generate", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var received int
	dec := json.NewDecoder(resp.Body)
	for {
		var ch chunk
		if err := dec.Decode(&ch); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("failed to parse response: %w", err)
		}
		if ch.Error != "" {
			return fmt.Errorf("ollama API error: %s", ch.Error)
		}
		if ch.Response != "" {
			received += len(ch.Response)
			if err := onChunk(ch.Response); err != nil {
				return err
			}
		}
		if ch.Done {
			break
		}
	}

	if c.Debug {
		c.log.Debug().Int("bytes", received).Msg("ollama response complete")
	}
	return nil
}

// ListModels returns the models installed on the server
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	resp, err := c.request(ctx, http.MethodGet, "/api/tags", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("failed to decode models response: %w", err)
	}
	return tags.Models, nil
}

// CheckConnection verifies that Ollama is running and the configured model is installed
func (c *Client) CheckConnection(ctx context.Context) error {
	models, err := c.ListModels(ctx)
	if err != nil {
		return err
	}
	if c.Model == "" {
		return nil
	}
	for _, m := range models {
		if m.Name == c.Model || strings.TrimSuffix(m.Name, ":latest") == c.Model {
			return nil
		}
	}
	return fmt.Errorf("model %s is not installed", c.Model)
}

// request performs a call and fails on any non-200 status.
// The caller closes the body.
func (c *Client) request(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimSuffix(c.Host, "/")+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ollama: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama API error: %s - %s", resp.Status, strings.TrimSpace(string(msg)))
	}
	return resp, nil
}
