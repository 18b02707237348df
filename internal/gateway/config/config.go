package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the gateway needs at startup. The Gemini
// key is the only required setting; everything else has a workable
// default.
type Config struct {
	Port string
	Env  string

	GeminiAPIKey    string
	TranscribeModel string

	// Model-call throttle (token bucket, requests per second). Zero
	// leaves the client unthrottled.
	LLMRPS   int
	LLMBurst int

	// Per-IP request ceiling on the REST surface, per minute.
	APIRateLimit int

	// Upload ceiling per attachment, bytes.
	MaxUploadBytes int64

	// Conversations idle longer than this are dropped. Zero disables
	// the sweep.
	SessionIdleTTL time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8080", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	return fromEnv(*port)
}

func fromEnv(port string) (*Config, error) {
	key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if key == "" {
		return nil, fmt.Errorf("config: GEMINI_API_KEY is required")
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:            port,
		Env:             env,
		GeminiAPIKey:    key,
		TranscribeModel: getEnvOrDefault("TRANSCRIBE_MODEL", "gemini-3-flash-preview"),
		LLMRPS:          getEnvAsIntOrDefault("LLM_RPS", 0),
		LLMBurst:        getEnvAsIntOrDefault("LLM_BURST", 2),
		APIRateLimit:    getEnvAsIntOrDefault("API_RATE_LIMIT", 120),
		MaxUploadBytes:  getEnvAsInt64OrDefault("UPLOAD_MAX_BYTES", 20<<20),
		SessionIdleTTL:  getEnvAsDurationOrDefault("SESSION_IDLE_TTL", 6*time.Hour),
	}, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsInt64OrDefault(key string, defaultVal int64) int64 {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
