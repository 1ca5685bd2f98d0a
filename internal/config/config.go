package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	AuthHMACSecret string

	OpenAIModel string
	OpenAIKey   string

	PromptTemplatePath string

	// Generation pipeline.
	EventBuffer       int           // event bus extra-buffer capacity
	CompletionTimeout time.Duration // per completion call
	ReaperInterval    time.Duration
	ReaperMaxAge      time.Duration // how long a quiz may sit in "creating"

	CORSOrigins []string
}

func FromEnv() Config {
	return Config{
		HTTPAddr:           envOr("HTTP_ADDR", ":8080"),
		DBDriver:           envOr("DB_DRIVER", "sqlite"),
		DBDSN:              envOr("DB_DSN", ""),
		AuthHMACSecret:     envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		OpenAIModel:        envOr("OPENAI_MODEL", "gpt-4.1"),
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		PromptTemplatePath: envOr("PROMPT_TEMPLATE_PATH", "templates/quiz_prompt.tmpl"),
		EventBuffer:        envInt("QUIZ_EVENT_BUFFER", 100),
		CompletionTimeout:  envDur("COMPLETION_TIMEOUT", 90*time.Second),
		ReaperInterval:     envDur("REAPER_INTERVAL", time.Minute),
		ReaperMaxAge:       envDur("REAPER_MAX_AGE", 10*time.Minute),
		CORSOrigins:        csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envDur(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
