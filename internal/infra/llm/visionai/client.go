package visionai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/skinlab/skinanalyzer/pkg/errors"
)

// ContentPart is one element of a multimodal chat message.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL carries an inline data URL or a remote image reference.
type ImageURL struct {
	URL string `json:"url"`
}

// Message mirrors the chat completion message structure.
type Message struct {
	Role    string        `json:"role"`
	Content []ContentPart `json:"content"`
}

// TextMessage builds a single-part text message.
func TextMessage(role, text string) Message {
	return Message{Role: role, Content: []ContentPart{{Type: "text", Text: text}}}
}

// VisionMessage builds a text + image message.
func VisionMessage(role, text, imageURL string) Message {
	return Message{Role: role, Content: []ContentPart{
		{Type: "text", Text: text},
		{Type: "image_url", ImageURL: &ImageURL{URL: imageURL}},
	}}
}

// ChatCompletionRequest is the payload sent to the vision gateway.
type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// ChatCompletionResponse captures the non-streaming response.
type ChatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client performs HTTP requests against an OpenAI-compatible vision gateway.
// Exactly one attempt per call: no retries, no backoff.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a vision gateway client with a fixed request timeout.
func NewClient(apiKey, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("vision gateway api key cannot be empty")
	}
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("vision gateway base url cannot be empty")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// CreateChatCompletion performs a single synchronous completion call.
// Failures carry an apperrors code: network_error for transport problems
// (timeouts included), rate_limited for 429, quota_exceeded for 402 and
// service_error for any other non-2xx status.
func (c *Client) CreateChatCompletion(ctx context.Context, req ChatCompletionRequest) (ChatCompletionResponse, error) {
	var out ChatCompletionResponse

	payload, err := json.Marshal(req)
	if err != nil {
		return out, fmt.Errorf("encode chat completion request: %w", err)
	}
	endpoint := c.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return out, fmt.Errorf("build chat completion request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return out, apperrors.Wrap("network_error", "vision gateway unreachable", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return out, apperrors.Wrap("rate_limited", "vision gateway rate limit exceeded", nil)
	case resp.StatusCode == http.StatusPaymentRequired:
		return out, apperrors.Wrap("quota_exceeded", "vision gateway quota exceeded", nil)
	case resp.StatusCode >= 300:
		return out, apperrors.Wrap("service_error", serviceMessage(resp.StatusCode, body), nil)
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, apperrors.Wrap("content_error", "vision gateway returned an unparseable body", err)
	}
	return out, nil
}

// serviceMessage extracts the server supplied error message when the error
// envelope carries one, falling back to the bare status.
func serviceMessage(status int, body []byte) string {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Error) > 0 {
		var plain string
		if err := json.Unmarshal(envelope.Error, &plain); err == nil && strings.TrimSpace(plain) != "" {
			return plain
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(envelope.Error, &nested); err == nil && strings.TrimSpace(nested.Message) != "" {
			return nested.Message
		}
	}
	return fmt.Sprintf("vision gateway request failed: status=%d", status)
}
