package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultModel        = "deepseek-reasoner"
	DefaultBaseURL      = "https://api.deepseek.com"
	DefaultPromptPath   = "prompt.txt"
	DefaultSystemPrompt = "You are a helpful assistant."
)

type Config struct {
	TelegramToken     string
	DeepSeekKey       string
	BaseURL           string
	Model             string
	AuthorizedUserIDs []int64
	PromptPath        string
	SystemPrompt      string
	CompletionTimeout time.Duration
	HealthAddr        string
}

func Load(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil {
		log.Printf("could not read %s: %v", path, err)
	}

	cfg := Config{
		BaseURL:           getenvDefault("DEEPSEEK_BASE_URL", DefaultBaseURL),
		Model:             DefaultModel,
		PromptPath:        getenvDefault("PROMPT_PATH", DefaultPromptPath),
		CompletionTimeout: time.Duration(getenvIntDefault("COMPLETION_TIMEOUT_SECONDS", 0)) * time.Second,
		HealthAddr:        strings.TrimSpace(os.Getenv("HEALTH_ADDR")),
	}

	cfg.TelegramToken = os.Getenv("BOT_TOKEN")
	cfg.DeepSeekKey = os.Getenv("DEEPSEEK_API_KEY")
	if cfg.TelegramToken == "" || cfg.DeepSeekKey == "" {
		return cfg, errors.New("missing BOT_TOKEN or DEEPSEEK_API_KEY in environment variables")
	}

	cfg.AuthorizedUserIDs = parseIDs(os.Getenv("AUTHORIZED_ACCOUNTS"))
	cfg.SystemPrompt = LoadSystemPrompt(cfg.PromptPath)

	return cfg, nil
}

// LoadSystemPrompt reads the prompt file, falling back to DefaultSystemPrompt
// when it cannot be read.
func LoadSystemPrompt(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("%s not found, using default system prompt", path)
		} else {
			log.Printf("could not read %s, using default system prompt: %v", path, err)
		}
		return DefaultSystemPrompt
	}
	return strings.TrimSpace(string(data))
}

// parseIDs keeps only entries made of ASCII digits; anything else is skipped.
func parseIDs(raw string) []int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || !isDigits(p) {
			continue
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			log.Printf("skipping user id %q: %v", p, err)
			continue
		}
		ids = append(ids, v)
	}
	return ids
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvIntDefault(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid int for %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}
