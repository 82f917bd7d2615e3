package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(ConfigDirEnv, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Proxy.Listen != ":8787" {
		t.Fatalf("expected listen :8787, got %s", cfg.Proxy.Listen)
	}
	if cfg.Proxy.Path != "/api/vapi/generate" {
		t.Fatalf("expected default path, got %s", cfg.Proxy.Path)
	}
	if cfg.Proxy.Timeout != 60*time.Second {
		t.Fatalf("expected 60s timeout, got %s", cfg.Proxy.Timeout)
	}
	if cfg.LLM.Provider != "gemini" || cfg.LLM.Model != "gemini-2.0-flash-001" {
		t.Fatalf("expected gemini defaults, got %s/%s", cfg.LLM.Provider, cfg.LLM.Model)
	}
	if cfg.UI.ClearedTimeout != 2*time.Second {
		t.Fatalf("expected 2s cleared timeout, got %s", cfg.UI.ClearedTimeout)
	}
	if cfg.UI.FeedbackTimeout != 2500*time.Millisecond {
		t.Fatalf("expected 2.5s feedback timeout, got %s", cfg.UI.FeedbackTimeout)
	}
	if !cfg.UI.SpeakReplies {
		t.Fatalf("expected replies to be spoken by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigDirEnv, t.TempDir())
	t.Setenv("FRIDAY_LLM_PROVIDER", "ollama")
	t.Setenv("FRIDAY_PROXY_LISTEN", ":9999")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("VAPI_ASSISTANT_ID", "assistant-42")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.LLM.Provider != "ollama" {
		t.Fatalf("expected provider ollama, got %s", cfg.LLM.Provider)
	}
	if cfg.Proxy.Listen != ":9999" {
		t.Fatalf("expected listen :9999, got %s", cfg.Proxy.Listen)
	}
	if cfg.LLM.APIKey != "secret" {
		t.Fatalf("expected api key from GEMINI_API_KEY, got %q", cfg.LLM.APIKey)
	}
	if cfg.Voice.AssistantID != "assistant-42" {
		t.Fatalf("expected assistant id from VAPI_ASSISTANT_ID, got %q", cfg.Voice.AssistantID)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(ConfigDirEnv, tmp)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.LLM.Provider = "ollama"
	cfg.LLM.Model = "llama3"
	cfg.Voice.URL = "ws://relay:9000/voice"

	if err := cfg.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmp, "config.yaml")); err != nil {
		t.Fatalf("expected config file: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.LLM.Provider != "ollama" || loaded.LLM.Model != "llama3" {
		t.Fatalf("expected ollama/llama3, got %s/%s", loaded.LLM.Provider, loaded.LLM.Model)
	}
	if loaded.Voice.URL != "ws://relay:9000/voice" {
		t.Fatalf("expected saved voice url, got %s", loaded.Voice.URL)
	}
}

func TestLoad_RejectsBrokenFile(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(ConfigDirEnv, tmp)
	if err := os.WriteFile(filepath.Join(tmp, "config.yaml"), []byte("proxy: [unterminated"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatalf("expected an error for malformed yaml")
	}
}

func TestSave_BacksUpExistingFile(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(ConfigDirEnv, tmp)
	path := filepath.Join(tmp, "config.yaml")
	original := []byte("llm:\n  model: old-model\n")
	if err := os.WriteFile(path, original, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.LLM.Model = "new-model"
	if err := cfg.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := os.ReadFile(path + ".backup")
	if err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
	if string(got) != string(original) {
		t.Fatalf("expected backup to hold the previous file, got %q", got)
	}
}

func TestSave_OmitsAPIKey(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(ConfigDirEnv, tmp)
	t.Setenv("GEMINI_API_KEY", "sk-secret-123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LLM.APIKey != "sk-secret-123" {
		t.Fatalf("expected api key from env, got %q", cfg.LLM.APIKey)
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmp, "config.yaml"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(data), "sk-secret-123") || strings.Contains(string(data), "api_key") {
		t.Fatalf("expected no api key in saved config, got:\n%s", data)
	}
}
