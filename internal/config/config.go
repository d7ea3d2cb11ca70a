// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for lumi.
//
// Supports both TOML and JSON configuration formats, with sensible defaults
// and environment variable overrides.
//
// Configuration file locations (in order of precedence):
//   - ~/.lumi/config.toml
//   - ~/.lumi/config.json
//   - Built-in defaults
//
// A corrupt or unreadable configuration file is never fatal: loading
// falls back to defaults rather than surfacing an error.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// PROVIDER AND MODEL CATALOG
// =============================================================================

// Provider identifies the external generative-language service.
type Provider string

const (
	// ProviderGemini is the hosted Google generative API.
	ProviderGemini Provider = "gemini"

	// ProviderOpenAI is any OpenAI-compatible chat completions API.
	ProviderOpenAI Provider = "openai"
)

// Valid reports whether the provider is a known backend.
func (p Provider) Valid() bool {
	return p == ProviderGemini || p == ProviderOpenAI
}

// ModelOption describes a selectable model for a provider.
type ModelOption struct {
	ID   string
	Name string
}

// AvailableModels lists the selectable models per provider.
var AvailableModels = map[Provider][]ModelOption{
	ProviderGemini: {
		{ID: "gemini-2.5-flash", Name: "Gemini 2.5 Flash (Fast)"},
		{ID: "gemini-2.5-flash-lite-latest", Name: "Gemini 2.5 Flash Lite"},
		{ID: "gemini-2.0-flash-thinking-exp-01-21", Name: "Gemini 2.0 Flash Thinking"},
	},
	ProviderOpenAI: {
		{ID: "gpt-4o-mini", Name: "GPT-4o mini (Fast)"},
		{ID: "gpt-4o", Name: "GPT-4o"},
	},
}

// DefaultModelFor returns the default model ID for a provider.
func DefaultModelFor(p Provider) string {
	if opts, ok := AvailableModels[p]; ok && len(opts) > 0 {
		return opts[0].ID
	}
	return ""
}

// =============================================================================
// CONFIG STRUCTURE
// =============================================================================

// Config represents the complete lumi configuration. The AI settings and
// the theme flag are independent values that happen to share a file:
// a bad value in one never disturbs the default of the other.
type Config struct {
	// Provider selects the AI backend.
	Provider Provider `toml:"provider" json:"provider"`

	// ModelID is the selected model for the provider.
	ModelID string `toml:"model_id" json:"modelId"`

	// GeminiKey is the user-supplied Gemini API key.
	GeminiKey string `toml:"gemini_key" json:"geminiKey,omitempty"`

	// OpenAIKey is the user-supplied key for the OpenAI-compatible backend.
	OpenAIKey string `toml:"openai_key" json:"openaiKey,omitempty"`

	// OpenAIBaseURL overrides the OpenAI-compatible endpoint base URL.
	OpenAIBaseURL string `toml:"openai_base_url" json:"openaiBaseUrl,omitempty"`

	// Theme is the display preference: "dark" or "light".
	Theme string `toml:"theme" json:"theme"`

	// TranscriberCmd is an optional external speech-to-text command used
	// by the dictation toggle. It receives no arguments and must print a
	// transcript to stdout.
	TranscriberCmd string `toml:"transcriber_cmd" json:"transcriberCmd,omitempty"`
}

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Provider: ProviderGemini,
		ModelID:  DefaultModelFor(ProviderGemini),
		Theme:    "light",
	}
}

// Key returns the user-supplied key for the selected provider.
func (c *Config) Key() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAIKey
	default:
		return c.GeminiKey
	}
}

// SetKey stores a key for the selected provider.
func (c *Config) SetKey(key string) {
	switch c.Provider {
	case ProviderOpenAI:
		c.OpenAIKey = key
	default:
		c.GeminiKey = key
	}
}

// DarkMode reports whether the dark theme is selected.
func (c *Config) DarkMode() bool {
	return c.Theme == "dark"
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	dup := *c
	return &dup
}

// =============================================================================
// FILE LOCATIONS
// =============================================================================

// ConfigDir returns the lumi configuration directory (~/.lumi).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".lumi"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the legacy JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir creates the configuration directory if needed.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from disk, preferring TOML over legacy
// JSON, and falls back to defaults for anything missing or unreadable.
// Load never fails on a corrupt file: the persisted blob is advisory.
func Load() *Config {
	cfg := Default()

	if path, err := ConfigPathTOML(); err == nil {
		if loadTOML(cfg, path) {
			fillDefaults(cfg)
			return cfg
		}
	}
	if path, err := ConfigPathJSON(); err == nil {
		loadJSON(cfg, path)
	}
	fillDefaults(cfg)
	return cfg
}

// LoadFromPath reads a config file (TOML or JSON by extension) from an
// explicit path, falling back to defaults on any failure.
func LoadFromPath(path string) *Config {
	cfg := Default()
	switch filepath.Ext(path) {
	case ".json":
		loadJSON(cfg, path)
	default:
		loadTOML(cfg, path)
	}
	fillDefaults(cfg)
	return cfg
}

// loadTOML merges a TOML file into cfg. Returns true if the file existed
// and parsed; a corrupt file resets cfg to defaults and returns true so
// legacy JSON is not consulted over a present-but-broken TOML file.
func loadTOML(cfg *Config, path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		*cfg = *Default()
	}
	return true
}

// loadJSON merges a JSON file into cfg, resetting to defaults on a
// corrupt blob.
func loadJSON(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		*cfg = *Default()
	}
}

// fillDefaults replaces invalid or empty fields with defaults.
func fillDefaults(cfg *Config) {
	if !cfg.Provider.Valid() {
		cfg.Provider = ProviderGemini
	}
	if cfg.ModelID == "" {
		cfg.ModelID = DefaultModelFor(cfg.Provider)
	}
	if cfg.Theme != "dark" {
		// Anything that is not exactly "dark" renders light.
		cfg.Theme = "light"
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// Environment variable names recognized at startup.
const (
	EnvProvider = "LUMI_PROVIDER"
	EnvModel    = "LUMI_MODEL"
	EnvTheme    = "LUMI_THEME"
)

// ApplyEnvOverrides applies environment variable overrides to the
// configuration. The API key environment variable is intentionally not
// applied here: it sits below the settings key in the gateway's key
// resolution order.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvProvider); v != "" && Provider(v).Valid() {
		c.Provider = Provider(v)
		if c.ModelID == "" {
			c.ModelID = DefaultModelFor(c.Provider)
		}
	}
	if v := os.Getenv(EnvModel); v != "" {
		c.ModelID = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		c.Theme = v
		fillDefaults(c)
	}
}

// =============================================================================
// SAVING
// =============================================================================

// Save persists the configuration as TOML. The file is written with
// 0600 permissions since it may contain an API key.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveToPath(cfg, path)
}

// SaveToPath persists the configuration as TOML to an explicit path.
func SaveToPath(cfg *Config, path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}
