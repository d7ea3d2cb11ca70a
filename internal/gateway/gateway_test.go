// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"errors"
	"testing"

	"github.com/jeranaias/lumi-tui/internal/config"
)

// setBuiltinKey swaps the build-time key for the duration of a test.
func setBuiltinKey(t *testing.T, key string) {
	t.Helper()
	prev := BuiltinKey
	BuiltinKey = key
	t.Cleanup(func() { BuiltinKey = prev })
}

func TestResolveKey_BuiltinWins(t *testing.T) {
	setBuiltinKey(t, "builtin-key-123")
	t.Setenv(EnvKey, "env-key")

	cfg := *config.Default()
	cfg.GeminiKey = "settings-key"

	key, err := ResolveKey(cfg)
	if err != nil {
		t.Fatalf("ResolveKey() error = %v", err)
	}
	if key != "builtin-key-123" {
		t.Errorf("ResolveKey() = %q, want builtin key", key)
	}
}

func TestResolveKey_ShortBuiltinIgnored(t *testing.T) {
	// A placeholder shorter than the minimum length must not shadow the
	// user's real key.
	setBuiltinKey(t, "xxx")
	t.Setenv(EnvKey, "")

	cfg := *config.Default()
	cfg.GeminiKey = "settings-key"

	key, err := ResolveKey(cfg)
	if err != nil {
		t.Fatalf("ResolveKey() error = %v", err)
	}
	if key != "settings-key" {
		t.Errorf("ResolveKey() = %q, want settings key", key)
	}
}

func TestResolveKey_SettingsBeforeEnv(t *testing.T) {
	setBuiltinKey(t, "")
	t.Setenv(EnvKey, "env-key")

	cfg := *config.Default()
	cfg.GeminiKey = "settings-key"

	key, err := ResolveKey(cfg)
	if err != nil {
		t.Fatalf("ResolveKey() error = %v", err)
	}
	if key != "settings-key" {
		t.Errorf("ResolveKey() = %q, want settings key over env", key)
	}
}

func TestResolveKey_EnvFallback(t *testing.T) {
	setBuiltinKey(t, "")
	t.Setenv(EnvKey, "env-key")

	key, err := ResolveKey(*config.Default())
	if err != nil {
		t.Fatalf("ResolveKey() error = %v", err)
	}
	if key != "env-key" {
		t.Errorf("ResolveKey() = %q, want env key", key)
	}
}

func TestResolveKey_Missing(t *testing.T) {
	setBuiltinKey(t, "")
	t.Setenv(EnvKey, "")

	_, err := ResolveKey(*config.Default())
	if !IsKeyMissing(err) {
		t.Errorf("ResolveKey() error = %v, want ErrKeyMissing", err)
	}

	if HasKey(*config.Default()) {
		t.Error("HasKey() = true with no credential anywhere")
	}
}

func TestResolveKey_PerProviderKey(t *testing.T) {
	setBuiltinKey(t, "")
	t.Setenv(EnvKey, "")

	cfg := *config.Default()
	cfg.Provider = config.ProviderOpenAI
	cfg.OpenAIKey = "openai-key"
	cfg.GeminiKey = "gemini-key"

	key, err := ResolveKey(cfg)
	if err != nil {
		t.Fatalf("ResolveKey() error = %v", err)
	}
	if key != "openai-key" {
		t.Errorf("ResolveKey() = %q, want the selected provider's key", key)
	}
}

func TestGatewayError_Is(t *testing.T) {
	wrapped := &GatewayError{Type: ErrTypeKeyMissing, Message: "different message"}
	if !errors.Is(wrapped, ErrKeyMissing) {
		t.Error("errors.Is should match gateway errors by type")
	}

	provider := &GatewayError{Type: ErrTypeProvider, Message: "boom"}
	if errors.Is(provider, ErrKeyMissing) {
		t.Error("provider error should not match ErrKeyMissing")
	}
}

func TestGatewayError_UnwrapsCause(t *testing.T) {
	cause := errors.New("socket closed")
	err := &GatewayError{Type: ErrTypeConnection, Message: "could not reach provider", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("GatewayError should unwrap to its cause")
	}
	if err.Error() != "could not reach provider: socket closed" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestNew_SelectsProvider(t *testing.T) {
	if _, ok := New(config.Config{Provider: config.ProviderGemini}).(*GeminiClient); !ok {
		t.Error("New(gemini) should return a GeminiClient")
	}
	if _, ok := New(config.Config{Provider: config.ProviderOpenAI}).(*OpenAIClient); !ok {
		t.Error("New(openai) should return an OpenAIClient")
	}
}

func TestNew_HonorsOpenAIBaseURL(t *testing.T) {
	cfg := config.Config{Provider: config.ProviderOpenAI, OpenAIBaseURL: "http://127.0.0.1:11434/v1"}
	client, ok := New(cfg).(*OpenAIClient)
	if !ok {
		t.Fatal("New(openai) should return an OpenAIClient")
	}
	if client.baseURL != "http://127.0.0.1:11434/v1" {
		t.Errorf("baseURL = %q, want the configured endpoint", client.baseURL)
	}

	cfg.OpenAIBaseURL = ""
	if client := New(cfg).(*OpenAIClient); client.baseURL != DefaultOpenAIURL {
		t.Errorf("baseURL = %q, want the default when unset", client.baseURL)
	}
}

func TestParseTaskSuggestions(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  int
	}{
		{
			name:  "valid three tasks",
			reply: `{"tasks":[{"title":"Drink water","description":"A glass","difficulty":"Gentle"},{"title":"Open a window","description":"Fresh air","difficulty":"Moderate"},{"title":"Write a sentence","description":"Just one","difficulty":"Challenge"}]}`,
			want:  3,
		},
		{name: "not json", reply: "sorry, here are some ideas:", want: 0},
		{name: "empty tasks", reply: `{"tasks":[]}`, want: 0},
		{
			name:  "missing title rejects whole reply",
			reply: `{"tasks":[{"title":"","description":"x","difficulty":"Gentle"}]}`,
			want:  0,
		},
		{
			name:  "unknown difficulty rejects whole reply",
			reply: `{"tasks":[{"title":"Stretch","description":"x","difficulty":"Impossible"}]}`,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTaskSuggestions(tt.reply)
			if len(got) != tt.want {
				t.Errorf("parseTaskSuggestions() returned %d suggestions, want %d", len(got), tt.want)
			}
		})
	}
}
