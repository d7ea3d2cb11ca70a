// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway provides the HTTP clients for the hosted
// generative-language providers.
//
// The gateway exposes three operations behind the Provider interface:
// sending a chat turn, generating suggested tasks, and generating a
// motivational quote. The external contract of the three operations is
// identical across providers; selecting a provider switches the HTTP
// endpoint, request/response shape, and system-prompt delivery only.
package gateway

import (
	"context"
	"errors"
	"os"

	"golang.org/x/time/rate"

	"github.com/jeranaias/lumi-tui/internal/config"
	"github.com/jeranaias/lumi-tui/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorType categorizes gateway errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota

	// ErrTypeKeyMissing means no usable credential was resolvable. The
	// UI redirects to settings instead of showing a chat error.
	ErrTypeKeyMissing

	// ErrTypeProvider means a non-success HTTP status or malformed
	// response from the AI backend.
	ErrTypeProvider

	// ErrTypeParse means a structured response failed JSON or schema
	// validation.
	ErrTypeParse

	// ErrTypeConnection means the request never reached the provider.
	ErrTypeConnection
)

// GatewayError represents an error from a provider client.
type GatewayError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *GatewayError) Unwrap() error {
	return e.Cause
}

// Is allows errors.Is matching against sentinel gateway errors by type.
func (e *GatewayError) Is(target error) bool {
	var ge *GatewayError
	if errors.As(target, &ge) {
		return e.Type == ge.Type
	}
	return false
}

// Sentinel errors for easy checking.
var (
	ErrKeyMissing = &GatewayError{Type: ErrTypeKeyMissing, Message: "API key is missing; add it in settings"}
	ErrEmptyReply = &GatewayError{Type: ErrTypeProvider, Message: "provider returned an empty reply"}
)

// IsKeyMissing reports whether err is the missing-credential failure.
func IsKeyMissing(err error) bool {
	return errors.Is(err, ErrKeyMissing)
}

// =============================================================================
// PROVIDER INTERFACE
// =============================================================================

// TaskSuggestion is one AI-suggested task from GenerateTasks.
type TaskSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
}

// Provider is the uniform capability interface over AI backends.
//
// All operations are able to fail; none retries automatically.
// GenerateTasks returns (nil, nil) when the structured response cannot
// be parsed: callers must tolerate an empty result. GenerateMotivation
// never fails: it returns a fixed fallback string instead.
type Provider interface {
	// SendTurn sends the latest user utterance plus a bounded trailing
	// window of prior turns and returns the model's raw text reply.
	SendTurn(ctx context.Context, text string, att *model.Attachment, history []*model.Message, cfg config.Config) (string, error)

	// GenerateTasks asks for exactly three tasks spanning physical,
	// environmental, and emotional categories as schema-validated JSON.
	GenerateTasks(ctx context.Context, moodContext string, cfg config.Config) ([]TaskSuggestion, error)

	// GenerateMotivation returns a short motivational quote.
	GenerateMotivation(ctx context.Context, cfg config.Config) (string, error)
}

// New returns the provider client for the selected backend, honoring
// the configured OpenAI-compatible base-URL override.
func New(cfg config.Config) Provider {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(&OpenAIConfig{BaseURL: cfg.OpenAIBaseURL})
	default:
		return NewGeminiClient(nil)
	}
}

// =============================================================================
// KEY RESOLUTION
// =============================================================================

// BuiltinKey is an optional build-time embedded API key, set via
// -ldflags "-X .../internal/gateway.BuiltinKey=...". When present it
// takes precedence over a user-entered key.
var BuiltinKey = ""

// EnvKey is the environment variable consulted as the last resort for
// an API key.
const EnvKey = "LUMI_API_KEY"

// minKeyLength filters out placeholder values left in the builtin slot.
const minKeyLength = 6

// ResolveKey returns the first usable credential: built-in key, then
// the user-entered settings key, then the environment. Returns
// ErrKeyMissing when none is available.
func ResolveKey(cfg config.Config) (string, error) {
	if len(BuiltinKey) >= minKeyLength {
		return BuiltinKey, nil
	}
	if key := cfg.Key(); key != "" {
		return key, nil
	}
	if key := os.Getenv(EnvKey); key != "" {
		return key, nil
	}
	return "", ErrKeyMissing
}

// HasKey reports whether any credential is resolvable for the current
// settings. Every AI-invoking UI action is gated on this check before
// any network I/O happens.
func HasKey(cfg config.Config) bool {
	_, err := ResolveKey(cfg)
	return err == nil
}

// =============================================================================
// RATE LIMITING
// =============================================================================

// newLimiter returns the per-provider courtesy limiter applied before
// each outbound request.
func newLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Limit(2), 4)
}
