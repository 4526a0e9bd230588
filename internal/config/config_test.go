package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "bot-token")
	t.Setenv("DEEPSEEK_API_KEY", "ds-key")
	t.Setenv("AUTHORIZED_ACCOUNTS", "")
	t.Setenv("PROMPT_PATH", filepath.Join(t.TempDir(), "missing.txt"))
	t.Setenv("DEEPSEEK_BASE_URL", "")
	t.Setenv("COMPLETION_TIMEOUT_SECONDS", "")
	t.Setenv("HEALTH_ADDR", "")
}

func TestLoadRequiresCredentials(t *testing.T) {
	cases := map[string][2]string{
		"no token": {"", "ds-key"},
		"no key":   {"bot-token", ""},
		"neither":  {"", ""},
	}
	for name, creds := range cases {
		t.Run(name, func(t *testing.T) {
			setRequired(t)
			t.Setenv("BOT_TOKEN", creds[0])
			t.Setenv("DEEPSEEK_API_KEY", creds[1])

			if _, err := Load(filepath.Join(t.TempDir(), ".env")); err == nil {
				t.Fatal("expected error for missing credentials")
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load(filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("expected model %q, got %q", DefaultModel, cfg.Model)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("expected base url %q, got %q", DefaultBaseURL, cfg.BaseURL)
	}
	if cfg.SystemPrompt != DefaultSystemPrompt {
		t.Errorf("expected default prompt, got %q", cfg.SystemPrompt)
	}
	if cfg.CompletionTimeout != 0 {
		t.Errorf("expected no timeout, got %s", cfg.CompletionTimeout)
	}
	if cfg.AuthorizedUserIDs != nil {
		t.Errorf("expected no authorized users, got %v", cfg.AuthorizedUserIDs)
	}
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	setRequired(t)
	t.Setenv("BOT_TOKEN", "from-env")

	path := filepath.Join(t.TempDir(), ".env")
	content := "BOT_TOKEN=from-file\nCOMPLETION_TIMEOUT_SECONDS=30\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COMPLETION_TIMEOUT_SECONDS", "")
	os.Unsetenv("COMPLETION_TIMEOUT_SECONDS")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TelegramToken != "from-env" {
		t.Errorf("expected env token to win, got %q", cfg.TelegramToken)
	}
	if cfg.CompletionTimeout != 30*time.Second {
		t.Errorf("expected 30s timeout from .env, got %s", cfg.CompletionTimeout)
	}
}

func TestParseIDs(t *testing.T) {
	cases := map[string][]int64{
		"":                     nil,
		"  ":                   nil,
		"1,2,3":                {1, 2, 3},
		" 10 , ,abc,20 ":       {10, 20},
		"-5,7":                 {7},
		"12x,99999999999":      {99999999999},
		"99999999999999999999": nil,
	}
	for raw, want := range cases {
		got := parseIDs(raw)
		if len(got) == 0 && len(want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("parseIDs(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestLoadSystemPrompt(t *testing.T) {
	dir := t.TempDir()

	if got := LoadSystemPrompt(filepath.Join(dir, "prompt.txt")); got != DefaultSystemPrompt {
		t.Errorf("missing file: expected default prompt, got %q", got)
	}

	path := filepath.Join(dir, "custom.txt")
	if err := os.WriteFile(path, []byte("  Answer in haiku.\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := LoadSystemPrompt(path); got != "Answer in haiku." {
		t.Errorf("expected trimmed prompt, got %q", got)
	}
}
