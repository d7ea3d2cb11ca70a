// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/lumi-tui/internal/config"
	"github.com/jeranaias/lumi-tui/internal/model"
)

// Configuration constants for the OpenAI-compatible backend.
const (
	// DefaultOpenAIURL is the base URL for the OpenAI-compatible API.
	DefaultOpenAIURL = "https://api.openai.com/v1"

	// defaultOpenAITimeout is the default timeout for API requests.
	defaultOpenAITimeout = 60 * time.Second

	// maxResponseSize is the maximum allowed response body size.
	maxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

// sharedHTTPClient pools connections across all OpenAI-compatible
// requests.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
	Timeout: defaultOpenAITimeout,
}

// =============================================================================
// CLIENT
// =============================================================================

// OpenAIClient handles communication with an OpenAI-compatible chat
// completions API.
type OpenAIClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// OpenAIConfig holds configuration options for the OpenAI client.
type OpenAIConfig struct {
	// BaseURL overrides the API base URL (default: api.openai.com/v1).
	BaseURL string
}

// NewOpenAIClient creates a new OpenAI-compatible client.
func NewOpenAIClient(cfg *OpenAIConfig) *OpenAIClient {
	baseURL := DefaultOpenAIURL
	if cfg != nil && cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}
	return &OpenAIClient{
		baseURL:    baseURL,
		httpClient: sharedHTTPClient,
		limiter:    newLimiter(),
	}
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// openaiMessage content is either a plain string or a part list when an
// attachment rides along, so Content is typed any.
type openaiMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type openaiContentPart struct {
	Type     string           `json:"type"`
	Text     string           `json:"text,omitempty"`
	ImageURL *openaiImagePart `json:"image_url,omitempty"`
}

type openaiImagePart struct {
	URL string `json:"url"`
}

type openaiResponseFormat struct {
	Type string `json:"type"`
}

type openaiRequest struct {
	Model          string                `json:"model"`
	Messages       []openaiMessage       `json:"messages"`
	ResponseFormat *openaiResponseFormat `json:"response_format,omitempty"`
}

type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type openaiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// =============================================================================
// OPERATIONS
// =============================================================================

// SendTurn sends a chat turn with the trailing history window. The
// system prompt is delivered as a leading system message; an attachment
// becomes a data-URL image part alongside the text.
func (c *OpenAIClient) SendTurn(ctx context.Context, text string, att *model.Attachment, history []*model.Message, cfg config.Config) (string, error) {
	key, err := ResolveKey(cfg)
	if err != nil {
		return "", err
	}

	messages := make([]openaiMessage, 0, len(history)+2)
	messages = append(messages, openaiMessage{Role: "system", Content: SystemPrompt})
	for _, msg := range history {
		messages = append(messages, openaiMessage{Role: openaiRole(msg.Role), Content: msg.Text})
	}

	if att != nil {
		messages = append(messages, openaiMessage{
			Role: "user",
			Content: []openaiContentPart{
				{Type: "image_url", ImageURL: &openaiImagePart{URL: "data:" + att.MimeType + ";base64," + att.Data}},
				{Type: "text", Text: text},
			},
		})
	} else {
		messages = append(messages, openaiMessage{Role: "user", Content: text})
	}

	reply, err := c.complete(ctx, key, &openaiRequest{Model: cfg.ModelID, Messages: messages})
	if err != nil {
		return "", err
	}
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}

// GenerateTasks asks for three suggested tasks as JSON. The OpenAI API
// has no response schema parameter, so the shape is enforced by local
// validation; a malformed reply yields (nil, nil).
func (c *OpenAIClient) GenerateTasks(ctx context.Context, moodContext string, cfg config.Config) ([]TaskSuggestion, error) {
	key, err := ResolveKey(cfg)
	if err != nil {
		return nil, err
	}

	reqBody := openaiRequest{
		Model: cfg.ModelID,
		Messages: []openaiMessage{
			{Role: "user", Content: taskPrompt(moodContext)},
		},
		ResponseFormat: &openaiResponseFormat{Type: "json_object"},
	}

	reply, err := c.complete(ctx, key, &reqBody)
	if err != nil {
		if IsKeyMissing(err) {
			return nil, err
		}
		return nil, nil
	}
	return parseTaskSuggestions(reply), nil
}

// GenerateMotivation returns a short quote, or a fixed fallback on any
// failure.
func (c *OpenAIClient) GenerateMotivation(ctx context.Context, cfg config.Config) (string, error) {
	key, err := ResolveKey(cfg)
	if err != nil {
		return "", err
	}

	reqBody := openaiRequest{
		Model: cfg.ModelID,
		Messages: []openaiMessage{
			{Role: "user", Content: motivationPrompt},
		},
	}

	reply, err := c.complete(ctx, key, &reqBody)
	if err != nil {
		return motivationErrorFallback, nil
	}
	if reply == "" {
		return motivationEmptyFallback, nil
	}
	return reply, nil
}

// =============================================================================
// HTTP PLUMBING
// =============================================================================

// complete performs a chat completions call and returns the first
// choice's content.
func (c *OpenAIClient) complete(ctx context.Context, key string, reqBody *openaiRequest) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", &GatewayError{Type: ErrTypeConnection, Message: "request canceled", Cause: err}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", &GatewayError{Type: ErrTypeUnknown, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &GatewayError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &GatewayError{Type: ErrTypeConnection, Message: "request timed out", Cause: err}
		}
		return "", &GatewayError{Type: ErrTypeConnection, Message: "could not reach provider", Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", &GatewayError{Type: ErrTypeProvider, Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr openaiErrorResponse
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error.Message != "" {
			return "", &GatewayError{Type: ErrTypeProvider, Message: apiErr.Error.Message}
		}
		return "", &GatewayError{Type: ErrTypeProvider, Message: "chat request failed: " + resp.Status}
	}

	var result openaiResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", &GatewayError{Type: ErrTypeProvider, Message: "failed to decode response", Cause: err}
	}
	if len(result.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

// openaiRole maps conversation roles to the wire roles the chat
// completions API expects.
func openaiRole(r model.Role) string {
	if r == model.RoleUser {
		return "user"
	}
	return "assistant"
}
