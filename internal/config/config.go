// Package config loads vidqa settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Provider identifies an LLM or embedding backend.
type Provider string

const (
	ProviderOllama    Provider = "ollama"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderBedrock   Provider = "bedrock"
)

// Store selects the chunk index backend.
type Store string

const (
	StoreSurrealDB Store = "surrealdb"
	StoreMemory    Store = "memory"
)

// ChunkPolicy selects how transcript spans are grouped into chunks.
type ChunkPolicy string

const (
	ChunkPolicyWindow    ChunkPolicy = "window"
	ChunkPolicyRecursive ChunkPolicy = "recursive"
)

// Config holds all configuration values.
type Config struct {
	Store Store

	// SurrealDB connection
	SurrealDBURL       string
	SurrealDBNamespace string
	SurrealDBDatabase  string
	SurrealDBUser      string
	SurrealDBPass      string
	SurrealDBAuthLevel string

	// Language model
	LLMProvider Provider
	LLMModel    string
	Temperature float64
	MaxTokens   int

	// Embeddings
	EmbedProvider  Provider
	EmbedModel     string
	EmbedDimension int

	// Provider credentials and endpoints
	OllamaHost      string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	AWSRegion       string

	// Retrieval
	TopK             int
	DeepTopK         int
	ProbeK           int
	CondenseFallback bool

	// Routing data; RoutingFile is decoded into Routing by LoadRouting.
	RoutingFile string
	Routing     Routing

	// Chunking
	ChunkPolicy   ChunkPolicy
	WindowSeconds float64
	MaxChars      int
	ChunkSize     int
	ChunkOverlap  int

	// Transcripts
	TranscriptDir string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
// A .env file in the working directory is applied first when present;
// variables already set in the environment take precedence.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Store: Store(getEnv("VIDQA_STORE", string(StoreSurrealDB))),

		SurrealDBURL:       getEnv("SURREALDB_URL", "ws://localhost:8000/rpc"),
		SurrealDBNamespace: getEnv("SURREALDB_NAMESPACE", "vidqa"),
		SurrealDBDatabase:  getEnv("SURREALDB_DATABASE", "transcripts"),
		SurrealDBUser:      getEnv("SURREALDB_USER", "root"),
		SurrealDBPass:      getEnv("SURREALDB_PASS", "root"),
		SurrealDBAuthLevel: getEnv("SURREALDB_AUTH_LEVEL", "root"),

		LLMProvider: Provider(getEnv("VIDQA_LLM_PROVIDER", string(ProviderOllama))),
		LLMModel:    getEnv("VIDQA_LLM_MODEL", "llama3.2"),
		Temperature: getEnvFloat("VIDQA_TEMPERATURE", 0.1),
		MaxTokens:   getEnvInt("VIDQA_MAX_TOKENS", 1024),

		EmbedProvider:  Provider(getEnv("VIDQA_EMBED_PROVIDER", string(ProviderOllama))),
		EmbedModel:     getEnv("VIDQA_EMBED_MODEL", "all-minilm:l6-v2"),
		EmbedDimension: getEnvInt("VIDQA_EMBED_DIMENSION", 384),

		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AWSRegion:       getEnv("AWS_REGION", ""),

		TopK:             getEnvInt("VIDQA_TOP_K", 6),
		DeepTopK:         getEnvInt("VIDQA_DEEP_TOP_K", 12),
		ProbeK:           getEnvInt("VIDQA_PROBE_K", 5),
		CondenseFallback: getEnvBool("VIDQA_CONDENSE_FALLBACK", false),
		RoutingFile:      getEnv("VIDQA_ROUTING_FILE", ""),

		ChunkPolicy:   ChunkPolicy(getEnv("VIDQA_CHUNK_POLICY", string(ChunkPolicyWindow))),
		WindowSeconds: getEnvFloat("VIDQA_WINDOW_SECONDS", 120),
		MaxChars:      getEnvInt("VIDQA_MAX_CHARS", 4000),
		ChunkSize:     getEnvInt("VIDQA_CHUNK_SIZE", 1000),
		ChunkOverlap:  getEnvInt("VIDQA_CHUNK_OVERLAP", 200),

		TranscriptDir: getEnv("VIDQA_TRANSCRIPT_DIR", "transcripts"),

		LogFile:  getEnv("VIDQA_LOG_FILE", "/tmp/vidqa.log"),
		LogLevel: parseLogLevel(getEnv("VIDQA_LOG_LEVEL", "INFO")),
	}
}

// Validate reports configuration values the answering path cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.TopK <= 0 {
		errs = append(errs, fmt.Errorf("VIDQA_TOP_K must be positive, got %d", c.TopK))
	}
	if c.DeepTopK <= 0 {
		errs = append(errs, fmt.Errorf("VIDQA_DEEP_TOP_K must be positive, got %d", c.DeepTopK))
	}
	if c.ProbeK <= 0 {
		errs = append(errs, fmt.Errorf("VIDQA_PROBE_K must be positive, got %d", c.ProbeK))
	}
	if c.EmbedDimension <= 0 {
		errs = append(errs, fmt.Errorf("VIDQA_EMBED_DIMENSION must be positive, got %d", c.EmbedDimension))
	}
	if c.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("VIDQA_MAX_TOKENS must be positive, got %d", c.MaxTokens))
	}
	switch c.Store {
	case StoreSurrealDB, StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unsupported store: %q", c.Store))
	}
	switch c.ChunkPolicy {
	case ChunkPolicyWindow:
		if c.WindowSeconds <= 0 || c.MaxChars <= 0 {
			errs = append(errs, fmt.Errorf("window chunking needs positive VIDQA_WINDOW_SECONDS and VIDQA_MAX_CHARS"))
		}
	case ChunkPolicyRecursive:
		if c.ChunkSize <= 0 || c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
			errs = append(errs, fmt.Errorf("recursive chunking needs 0 <= VIDQA_CHUNK_OVERLAP < VIDQA_CHUNK_SIZE"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported chunk policy: %q", c.ChunkPolicy))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultVal
	}
	return v
}

func getEnvFloat(key string, defaultVal float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultVal
	}
	return v
}

func getEnvBool(key string, defaultVal bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultVal
	}
	return v
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
