package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"memoai-backend/internal/llm"

	"github.com/joho/godotenv"
)

// Config holds application configuration values loaded from environment variables.
type Config struct {
	HTTPPort string

	// Notion
	NotionAPIKey     string
	NotionRootPageID string
	NotionConfigDBID string

	// Completion provider (any OpenAI-compatible endpoint)
	LLMAPIKey              string
	LLMBaseURL             string
	DefaultTextModel       string
	DefaultMultimodalModel string
	LLMTimeout             time.Duration
	LLMMaxRetries          int
	LLMRetryBackoff        time.Duration
	LLMVerbose             bool

	// Location renders time context in prompts; defaults to Asia/Tokyo.
	Location *time.Location
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file (useful for development)
	err := godotenv.Load() // Loads .env from the current directory or parent dirs
	if err != nil {
		log.Println("Warning: Could not load .env file. Using environment variables only.", err)
		// Don't fail if .env is not present, might be in production
	}

	notionKey := getEnv("NOTION_API_KEY", "")
	if notionKey == "" {
		log.Fatal("FATAL: NOTION_API_KEY environment variable is not set.")
	}

	rootPageID := getEnv("NOTION_ROOT_PAGE_ID", "")
	if rootPageID == "" {
		log.Println("Warning: NOTION_ROOT_PAGE_ID is not set; target listing and page creation will fail until it is.")
	} else if strings.Contains(rootPageID, "-") || strings.Contains(rootPageID, "http") || len(rootPageID) < 20 {
		// A Notion page id is the 32 alphanumeric characters at the end of
		// the page URL, without hyphens.
		log.Printf("Warning: NOTION_ROOT_PAGE_ID looks malformed: %.30s...", rootPageID)
	}

	llmKey := getEnv("LLM_API_KEY", "")
	if llmKey == "" {
		log.Println("Warning: LLM_API_KEY is not set; analyze and chat will fail at the provider.")
	}

	cfg := &Config{
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		NotionAPIKey:           notionKey,
		NotionRootPageID:       rootPageID,
		NotionConfigDBID:       getEnv("NOTION_CONFIG_DB_ID", ""),
		LLMAPIKey:              llmKey,
		LLMBaseURL:             getEnv("LLM_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai"),
		DefaultTextModel:       getEnv("DEFAULT_TEXT_MODEL", llm.DefaultTextModel),
		DefaultMultimodalModel: getEnv("DEFAULT_MULTIMODAL_MODEL", llm.DefaultMultimodalModel),
		LLMTimeout:             getEnvAsSeconds("LLM_TIMEOUT_SECONDS", 30),
		LLMMaxRetries:          getEnvAsInt("LLM_MAX_RETRIES", 2),
		LLMRetryBackoff:        getEnvAsSeconds("LLM_RETRY_BACKOFF_SECONDS", 2),
		LLMVerbose:             getEnvAsBool("LLM_VERBOSE", false),
		Location:               loadLocation(getEnv("TIMEZONE", "Asia/Tokyo")),
	}

	log.Printf("Loaded config: Port=%s, NotionKey=***, RootPage=%s, TextModel=%s, MultimodalModel=%s, Timeout=%s",
		cfg.HTTPPort, cfg.NotionRootPageID, cfg.DefaultTextModel, cfg.DefaultMultimodalModel, cfg.LLMTimeout)

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvAsInt retrieves an integer environment variable or returns a default value.
func getEnvAsInt(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: Invalid %s '%s', using default %d. Error: %v", key, raw, fallback, err)
		return fallback
	}
	return value
}

// getEnvAsSeconds retrieves a duration given in whole seconds.
func getEnvAsSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback)) * time.Second
}

// getEnvAsBool retrieves a boolean environment variable or returns a default value.
func getEnvAsBool(key string, fallback bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Warning: Invalid %s '%s', using default %t. Error: %v", key, raw, fallback, err)
		return fallback
	}
	return value
}

// loadLocation resolves the prompt timezone, falling back to a fixed JST
// offset when the zone database is unavailable (minimal containers).
func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Warning: Could not load timezone %q, falling back to fixed JST offset. Error: %v", name, err)
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}
