// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Provider != ProviderGemini {
		t.Errorf("default provider = %q", cfg.Provider)
	}
	if cfg.ModelID != "gemini-2.5-flash" {
		t.Errorf("default model = %q", cfg.ModelID)
	}
	if cfg.DarkMode() {
		t.Error("default theme must be light")
	}
}

func TestConfig_KeyFollowsProvider(t *testing.T) {
	cfg := Default()
	cfg.GeminiKey = "g-key"
	cfg.OpenAIKey = "o-key"

	if cfg.Key() != "g-key" {
		t.Errorf("gemini Key() = %q", cfg.Key())
	}
	cfg.Provider = ProviderOpenAI
	if cfg.Key() != "o-key" {
		t.Errorf("openai Key() = %q", cfg.Key())
	}

	cfg.SetKey("new-o-key")
	if cfg.OpenAIKey != "new-o-key" || cfg.GeminiKey != "g-key" {
		t.Error("SetKey must only touch the selected provider's slot")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Provider = ProviderOpenAI
	cfg.ModelID = "gpt-4o"
	cfg.OpenAIKey = "sk-abc"
	cfg.OpenAIBaseURL = "http://localhost:11434/v1"
	cfg.Theme = "dark"
	cfg.TranscriberCmd = "whisper-cli"

	if err := SaveToPath(cfg, path); err != nil {
		t.Fatalf("SaveToPath() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file mode = %o, want 0600 (contains a key)", perm)
	}

	got := LoadFromPath(path)
	if *got != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoadFromPath_CorruptFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("provider = [this is not toml"), 0600); err != nil {
		t.Fatal(err)
	}

	got := LoadFromPath(path)
	if *got != *Default() {
		t.Errorf("corrupt file should load as defaults, got %+v", got)
	}
}

func TestLoadFromPath_MissingFileIsDefaults(t *testing.T) {
	got := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	if *got != *Default() {
		t.Errorf("missing file should load as defaults, got %+v", got)
	}
}

func TestLoadFromPath_LegacyJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	blob := `{"provider":"openai","modelId":"gpt-4o-mini","openaiKey":"sk-1","theme":"dark"}`
	if err := os.WriteFile(path, []byte(blob), 0600); err != nil {
		t.Fatal(err)
	}

	got := LoadFromPath(path)
	if got.Provider != ProviderOpenAI || got.ModelID != "gpt-4o-mini" || got.OpenAIKey != "sk-1" || !got.DarkMode() {
		t.Errorf("legacy JSON mis-loaded: %+v", got)
	}
}

func TestFillDefaults_IndependentFields(t *testing.T) {
	// A bad value in one field must not disturb the others.
	cfg := &Config{Provider: "banana", ModelID: "", Theme: "sparkly"}
	fillDefaults(cfg)
	if cfg.Provider != ProviderGemini {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.ModelID != DefaultModelFor(ProviderGemini) {
		t.Errorf("model = %q", cfg.ModelID)
	}
	if cfg.Theme != "light" {
		t.Errorf("theme = %q, non-dark values render light", cfg.Theme)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvProvider, "openai")
	t.Setenv(EnvModel, "local-model")
	t.Setenv(EnvTheme, "dark")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Provider != ProviderOpenAI {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.ModelID != "local-model" {
		t.Errorf("model = %q", cfg.ModelID)
	}
	if !cfg.DarkMode() {
		t.Error("theme override not applied")
	}
}

func TestApplyEnvOverrides_InvalidProviderIgnored(t *testing.T) {
	t.Setenv(EnvProvider, "skynet")
	cfg := Default()
	cfg.ApplyEnvOverrides()
	if cfg.Provider != ProviderGemini {
		t.Errorf("invalid provider override must be ignored, got %q", cfg.Provider)
	}
}

func TestStore_UpdatePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	store := NewStoreWithPath(path)

	err := store.Update(func(c *Config) {
		c.Theme = "dark"
		c.GeminiKey = "saved-key"
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	// A fresh load from disk must see the mutation.
	reloaded := LoadFromPath(path)
	if !reloaded.DarkMode() || reloaded.GeminiKey != "saved-key" {
		t.Errorf("persisted config = %+v", reloaded)
	}
}

func TestStore_GetReturnsCopy(t *testing.T) {
	store := NewStoreWithPath(filepath.Join(t.TempDir(), "config.toml"))

	cfg := store.Get()
	cfg.GeminiKey = "scribbled"

	if store.Get().GeminiKey == "scribbled" {
		t.Error("mutating a Get() result must not touch the store")
	}
}
