package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port                 string
	Env                  string
	LogLevel             string
	GithubSecret         string
	GithubPrivateKeyPath string
	GithubAppID          string
	GithubInstallationID string

	AIProvider  string
	OpenAIKey   string
	OpenAIModel string
	OllamaURL   string
	OllamaModel string

	// Review pipeline knobs.
	PromptTemplate  string
	ExcludePatterns []string
	MaxConcurrent   int
	MaxComments     int
	PublishMode     string

	QueueType string
	RedisAddr string

	RateLimitRPS   int
	RateLimitBurst int

	BudgetEnabled  bool
	BudgetDailyUSD float64
	BudgetPRUSD    float64
}

func Load() *Config {
	return &Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  getEnv("ENV", "local"),
		LogLevel:             getEnv("LOG_LEVEL", "debug"),
		GithubSecret:         getEnv("GITHUB_WEBHOOK_SECRET", ""),
		GithubPrivateKeyPath: getEnv("GITHUB_APP_PRIVATE_KEY_PATH", ""),
		GithubAppID:          getEnv("GITHUB_APP_ID", ""),
		GithubInstallationID: getEnv("GITHUB_APP_INSTALLATION_ID", ""),

		AIProvider:  getEnv("AI_PROVIDER", "openai"),
		OpenAIKey:   getEnv("OPENAI_KEY", ""),
		OpenAIModel: getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OllamaURL:   getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel: getEnv("OLLAMA_MODEL", "llama3"),

		PromptTemplate:  getEnv("REVIEW_PROMPT_TEMPLATE", ""),
		ExcludePatterns: getEnvList("EXCLUDE_PATTERNS", "*.lock,*.sum,*.min.js,vendor/**"),
		MaxConcurrent:   getEnvInt("MAX_CONCURRENT", 5),
		MaxComments:     getEnvInt("MAX_COMMENTS", 10),
		PublishMode:     getEnv("PUBLISH_MODE", "per-comment"), // per-comment | batched

		QueueType: getEnv("QUEUE_TYPE", "memory"), // memory | redis
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),

		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 1),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 3),

		BudgetEnabled:  getEnv("BUDGET_ENABLED", "false") == "true",
		BudgetDailyUSD: getEnvFloat("BUDGET_DAILY_USD", 5),
		BudgetPRUSD:    getEnvFloat("BUDGET_PR_USD", 0.5),
	}
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid env %s: %v", key, err)
	}
	return i
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("invalid env %s: %v", key, err)
	}
	return f
}

func getEnvList(key, def string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = def
	}

	var out []string
	for _, p := range strings.Split(v, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
