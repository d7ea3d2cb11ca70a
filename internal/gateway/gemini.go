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
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/lumi-tui/internal/config"
	"github.com/jeranaias/lumi-tui/internal/model"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// GeminiConfig holds configuration options for the Gemini client.
type GeminiConfig struct {
	// BaseURL is the generative language API base URL.
	BaseURL string

	// Timeout for requests (default: 60s).
	Timeout time.Duration
}

// DefaultGeminiConfig returns the default Gemini client configuration.
func DefaultGeminiConfig() *GeminiConfig {
	return &GeminiConfig{
		BaseURL: "https://generativelanguage.googleapis.com/v1beta",
		Timeout: 60 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// GeminiClient handles communication with the hosted Gemini API.
// It is safe for concurrent use; independent in-flight requests are
// neither deduplicated nor serialized.
type GeminiClient struct {
	config     *GeminiConfig
	httpClient *http.Client
	limiter    *rate.Limiter

	// Chat session state. Gemini keeps no server-side handle, but the
	// prepared session must be invalidated whenever the selected model
	// changes.
	mu      sync.Mutex
	session *chatSession
}

// chatSession carries the per-model prepared state for multi-turn chat.
type chatSession struct {
	modelID string
	system  geminiContent
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(cfg *GeminiConfig) *GeminiClient {
	if cfg == nil {
		cfg = DefaultGeminiConfig()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &GeminiClient{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    newLimiter(),
	}
}

// =============================================================================
// WIRE TYPES
// =============================================================================

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// taskResponseSchema constrains the task-generation output to the
// documented JSON shape.
var taskResponseSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"tasks": {
			"type": "ARRAY",
			"items": {
				"type": "OBJECT",
				"properties": {
					"title": {"type": "STRING"},
					"description": {"type": "STRING"},
					"difficulty": {"type": "STRING", "enum": ["Gentle", "Moderate", "Challenge"]}
				},
				"required": ["title", "description", "difficulty"]
			}
		}
	}
}`)

// =============================================================================
// SESSION MANAGEMENT
// =============================================================================

// sessionFor returns the chat session for the given model, recreating it
// when the selected model has changed since the last turn.
func (c *GeminiClient) sessionFor(modelID string) *chatSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil || c.session.modelID != modelID {
		c.session = &chatSession{
			modelID: modelID,
			system:  geminiContent{Parts: []geminiPart{{Text: SystemPrompt}}},
		}
	}
	return c.session
}

// =============================================================================
// OPERATIONS
// =============================================================================

// SendTurn sends a chat turn with the trailing history window and
// returns the model's text reply.
func (c *GeminiClient) SendTurn(ctx context.Context, text string, att *model.Attachment, history []*model.Message, cfg config.Config) (string, error) {
	key, err := ResolveKey(cfg)
	if err != nil {
		return "", err
	}

	session := c.sessionFor(cfg.ModelID)

	contents := make([]geminiContent, 0, len(history)+1)
	for _, msg := range history {
		contents = append(contents, geminiContent{
			Role:  geminiRole(msg.Role),
			Parts: []geminiPart{{Text: msg.Text}},
		})
	}

	turn := geminiContent{Role: "user"}
	if att != nil {
		turn.Parts = append(turn.Parts, geminiPart{
			InlineData: &geminiInlineData{MimeType: att.MimeType, Data: att.Data},
		})
	}
	turn.Parts = append(turn.Parts, geminiPart{Text: text})
	contents = append(contents, turn)

	reqBody := geminiRequest{
		SystemInstruction: &session.system,
		Contents:          contents,
	}

	reply, err := c.generate(ctx, cfg.ModelID, key, &reqBody)
	if err != nil {
		return "", err
	}
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}

// GenerateTasks asks for three suggested tasks as schema-constrained
// JSON. Any parse failure yields (nil, nil): the caller shows no tasks.
func (c *GeminiClient) GenerateTasks(ctx context.Context, moodContext string, cfg config.Config) ([]TaskSuggestion, error) {
	key, err := ResolveKey(cfg)
	if err != nil {
		return nil, err
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: taskPrompt(moodContext)}}},
		},
		GenerationConfig: &geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   taskResponseSchema,
		},
	}

	reply, err := c.generate(ctx, cfg.ModelID, key, &reqBody)
	if err != nil {
		if IsKeyMissing(err) {
			return nil, err
		}
		return nil, nil
	}
	return parseTaskSuggestions(reply), nil
}

// GenerateMotivation returns a short quote, or a fixed fallback on any
// failure. The missing-key case still surfaces so the UI can redirect
// to settings.
func (c *GeminiClient) GenerateMotivation(ctx context.Context, cfg config.Config) (string, error) {
	key, err := ResolveKey(cfg)
	if err != nil {
		return "", err
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: motivationPrompt}}},
		},
	}

	reply, err := c.generate(ctx, cfg.ModelID, key, &reqBody)
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

// generate performs a generateContent call and returns the first
// candidate's concatenated text parts.
func (c *GeminiClient) generate(ctx context.Context, modelID, key string, reqBody *geminiRequest) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", &GatewayError{Type: ErrTypeConnection, Message: "request canceled", Cause: err}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", &GatewayError{Type: ErrTypeUnknown, Message: "failed to marshal request", Cause: err}
	}

	url := c.config.BaseURL + "/models/" + modelID + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &GatewayError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &GatewayError{Type: ErrTypeConnection, Message: "request timed out", Cause: err}
		}
		return "", &GatewayError{Type: ErrTypeConnection, Message: "could not reach Gemini", Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", &GatewayError{Type: ErrTypeProvider, Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr geminiErrorResponse
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error.Message != "" {
			return "", &GatewayError{Type: ErrTypeProvider, Message: apiErr.Error.Message}
		}
		return "", &GatewayError{Type: ErrTypeProvider, Message: "Gemini request failed: " + resp.Status}
	}

	var result geminiResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", &GatewayError{Type: ErrTypeProvider, Message: "failed to decode response", Cause: err}
	}
	if len(result.Candidates) == 0 {
		return "", nil
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}

// geminiRole maps conversation roles to the wire roles Gemini expects.
func geminiRole(r model.Role) string {
	if r == model.RoleUser {
		return "user"
	}
	return "model"
}

// parseTaskSuggestions validates the structured task reply. A malformed
// or off-schema payload returns nil.
func parseTaskSuggestions(reply string) []TaskSuggestion {
	var parsed struct {
		Tasks []TaskSuggestion `json:"tasks"`
	}
	if err := json.Unmarshal([]byte(reply), &parsed); err != nil {
		return nil
	}
	out := make([]TaskSuggestion, 0, len(parsed.Tasks))
	for _, t := range parsed.Tasks {
		if t.Title == "" || !taskDifficulties[t.Difficulty] {
			return nil
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
