package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrProxyFailure wraps every failed conversational request
var ErrProxyFailure = errors.New("proxy failure")

// Client talks to a running proxy server
type Client struct {
	URL    string
	client *http.Client
}

// NewClient creates a client for the endpoint at url
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		URL:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Ask forwards prompt verbatim and returns the trimmed reply
func (c *Client) Ask(ctx context.Context, prompt string) (string, error) {
	data, err := json.Marshal(GenerateRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal request: %w", ErrProxyFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %w", ErrProxyFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(body.Response), nil
}

// Health probes the endpoint and returns its standby message
func (c *Client) Health(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %w", ErrProxyFailure, err)
	}

	body, err := c.do(req)
	if err != nil {
		return "", err
	}
	return body.Message, nil
}

func (c *Client) do(req *http.Request) (*GenerateResponse, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProxyFailure, err)
	}
	defer resp.Body.Close()

	var body GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %s: failed to decode response: %w", ErrProxyFailure, resp.Status, err)
	}

	if resp.StatusCode != http.StatusOK || !body.Success {
		msg := body.Error
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("%w: %s", ErrProxyFailure, msg)
	}

	return &body, nil
}
