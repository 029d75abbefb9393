// Package ai holds the chat-completion client for the AI gateway and the
// response normalization shared by plan generation and motivation fetching.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxResponseSize caps the gateway response body read.
const maxResponseSize = 4 * 1024 * 1024

const defaultBaseURL = "https://ai.gateway.lovable.dev/v1"

// Message is one chat message sent to the gateway.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client performs single-turn chat completions against an OpenAI-compatible
// gateway. It does not retry: rate limiting and quota errors are surfaced to
// the caller, who decides whether the user retries.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithBaseURL overrides the gateway base URL.
func WithBaseURL(url string) ClientOption {
	return func(client *Client) {
		client.baseURL = strings.TrimRight(url, "/")
	}
}

// NewClient creates a gateway client. An empty apiKey is allowed here and
// rejected at call time with ErrNotConfigured, so the server can boot
// without credentials and surface the problem per request.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one chat completion and returns the first choice's message
// content, untouched. Fence stripping and JSON parsing are the caller's
// concern since not every completion is JSON.
func (c *Client) Complete(ctx context.Context, model string, messages []Message) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(completionRequest{Model: model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("read response body: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return "", ErrQuotaExceeded
	case resp.StatusCode != http.StatusOK:
		return "", &TransportError{Status: resp.StatusCode}
	}

	var completion completionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", &MalformedResponseError{Reason: "response is not valid JSON", Err: err}
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", &MalformedResponseError{Reason: "no content in AI response"}
	}

	return completion.Choices[0].Message.Content, nil
}

// CompleteJSON runs Complete, strips one markdown fence pair from the
// content, and unmarshals the remainder into out. A payload that still
// fails to parse is reported as MalformedResponseError.
func (c *Client) CompleteJSON(ctx context.Context, model string, messages []Message, out any) error {
	content, err := c.Complete(ctx, model, messages)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(StripFences(content)), out); err != nil {
		return &MalformedResponseError{Reason: "content does not parse as JSON", Err: err}
	}
	return nil
}
