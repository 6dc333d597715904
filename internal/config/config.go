package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Keys     APIKeys
	Ai       AIConfig
	Pipeline PipelineConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	QueryLogTopic      string
	MaxUploadBytes     int
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JwtSecret   string
	GuestPrefix string
}

type APIKeys struct {
	GoogleGemini string
	OpenAI       string
	Jina         string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini", "ollama", "openai" or "jina"
	EmbeddingModel    string
	OllamaBaseURL     string
	OpenAIBaseURL     string
	LLMProvider       string // "ollama", "gemini" or "openai"
	LLMModel          string
}

// PipelineConfig tunes the query pipeline. It can be overridden from a YAML
// file named by PIPELINE_CONFIG_FILE.
type PipelineConfig struct {
	ChunkSize       int           `yaml:"chunk_size"`
	ChunkOverlap    int           `yaml:"chunk_overlap"`
	TopK            int           `yaml:"top_k"`
	QueryTimeout    time.Duration `yaml:"query_timeout"`
	IndexBackend    string        `yaml:"index_backend"` // "memory" or "pgvector"
	StructuredTable string        `yaml:"structured_table"`
	MaxRows         int           `yaml:"max_rows"`
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	cfg := &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:8501"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			QueryLogTopic:      getEnv("QUERY_LOG_TOPIC_NAME", "QUERY_ANSWERED"),
			MaxUploadBytes:     getEnvAsInt("MAX_UPLOAD_BYTES", 20*1024*1024),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret:   getEnv("JWT_SECRET", ""),
			GuestPrefix: getEnv("GUEST_PREFIX", "guest_"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
			Jina:         getEnv("JINA_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
		},
		Pipeline: PipelineConfig{
			ChunkSize:       getEnvAsInt("CHUNK_SIZE", 1000),
			ChunkOverlap:    getEnvAsInt("CHUNK_OVERLAP", 150),
			TopK:            getEnvAsInt("RETRIEVAL_TOP_K", 4),
			QueryTimeout:    getEnvAsDuration("QUERY_TIMEOUT", 120*time.Second),
			IndexBackend:    getEnv("INDEX_BACKEND", "memory"),
			StructuredTable: getEnv("STRUCTURED_TABLE", "sales_data"),
			MaxRows:         getEnvAsInt("STRUCTURED_MAX_ROWS", 200),
		},
	}

	if path := getEnv("PIPELINE_CONFIG_FILE", ""); path != "" {
		if err := applyPipelineFile(&cfg.Pipeline, path); err != nil {
			log.Printf("[WARN] Failed to apply pipeline config %s: %v", path, err)
		}
	}
	cfg.Pipeline.sanitize()

	return cfg
}

func (p *PipelineConfig) sanitize() {
	if p.ChunkSize <= 0 {
		p.ChunkSize = 1000
	}
	if p.ChunkOverlap < 0 || p.ChunkOverlap >= p.ChunkSize {
		p.ChunkOverlap = 0
	}
	if p.TopK <= 0 {
		p.TopK = 4
	}
	if p.QueryTimeout <= 0 {
		p.QueryTimeout = 120 * time.Second
	}
	if p.IndexBackend != "pgvector" {
		p.IndexBackend = "memory"
	}
	if p.StructuredTable == "" {
		p.StructuredTable = "sales_data"
	}
	if p.MaxRows <= 0 {
		p.MaxRows = 200
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
