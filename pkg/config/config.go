package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries settings for all three services (server, bridge, connector).
// Values come from the environment, optionally seeded from a .env file.
type Config struct {
	Port          string
	DatabaseURL   string
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	// Ollama
	OllamaHost       string
	OllamaModel      string
	OllamaEmbedModel string
	Temperature      float64
	MaxTokens        int

	// Pepper robot / bridge
	PepperIP   string
	PepperPort int
	BridgePort string
	BridgeURL  string
	RobotMode  string // "sidecar" or "sim"
	SidecarURL string
	// When both are set the bridge spawns the qi helper itself.
	QIPython       string
	QIHelperScript string

	// Redis (optional; in-process cache is used when empty)
	RedisURL string

	// Document storage
	StorageType     string // "local", "minio" or "s3"
	UploadDir       string
	BucketEndpoint  string
	BucketAccessID  string
	BucketAccessKey string
	BucketName      string
	BucketRegion    string
	BucketUseSSL    bool

	KnowledgeDir string
	MaxFileSize  int64
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	return Config{
		Port:          getEnv("PORT", "8501"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:     getEnv("JWT_ISSUER", "pepper-tutor"),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", 60),

		OllamaHost:       getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel:      getEnv("OLLAMA_MODEL", "llama2"),
		OllamaEmbedModel: getEnv("OLLAMA_EMBED_MODEL", "nomic-embed-text"),
		Temperature:      getEnvFloat("LLM_TEMPERATURE", 0.3),
		MaxTokens:        getEnvInt("LLM_MAX_TOKENS", 1000),

		PepperIP:       getEnv("PEPPER_IP", "127.0.0.1"),
		PepperPort:     getEnvInt("PEPPER_PORT", 9559),
		BridgePort:     getEnv("BRIDGE_PORT", "5000"),
		BridgeURL:      getEnv("BRIDGE_URL", "http://localhost:5000"),
		RobotMode:      getEnv("ROBOT_MODE", "sim"),
		SidecarURL:     getEnv("QI_SIDECAR_URL", "http://127.0.0.1:5001"),
		QIPython:       os.Getenv("QI_PYTHON"),
		QIHelperScript: os.Getenv("QI_HELPER_SCRIPT"),

		RedisURL: os.Getenv("REDIS_URL"),

		StorageType:     getEnv("STORAGE_TYPE", "local"),
		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		BucketEndpoint:  os.Getenv("BUCKET_ENDPOINT"),
		BucketAccessID:  os.Getenv("BUCKET_ACCESS_ID"),
		BucketAccessKey: os.Getenv("BUCKET_ACCESS_KEY"),
		BucketName:      getEnv("BUCKET_NAME", "pepper-documents"),
		BucketRegion:    os.Getenv("BUCKET_REGION"),
		BucketUseSSL:    os.Getenv("BUCKET_USE_SSL") == "true",

		KnowledgeDir: os.Getenv("KNOWLEDGE_DIR"),
		MaxFileSize:  getEnvInt64("MAX_FILE_SIZE", 15<<20), // 15MB
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
