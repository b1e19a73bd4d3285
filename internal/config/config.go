package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	AI        AIConfig
	Document  DocumentConfig
	OCR       OCRConfig
	RateLimit RateLimitConfig
	Firebase  FirebaseConfig
}

type ServerConfig struct {
	Port          string
	Env           string
	MaxTextLength int
}

type AIConfig struct {
	Provider      string
	Strategy      string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiAPIKey  string
	GeminiModel   string
	Temperature   float32
}

type DocumentConfig struct {
	TempDir         string
	DownloadTimeout time.Duration
	MinTextLength   int
	LibreOfficeBin  string

	// BatchConcurrency bounds parallel pipeline runs in the CLI.
	BatchConcurrency int
}

type OCRConfig struct {
	Engine          string
	PdftoppmBin     string
	TesseractBin    string
	Lang            string
	DPI             int
	LegacyNormalize bool
}

type RateLimitConfig struct {
	Interval time.Duration
	MaxKeys  int
}

// FirebaseConfig is accepted for deployment compatibility. Converted PDFs
// are never published, so the bucket is informational only.
type FirebaseConfig struct {
	Bucket string
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	StrategyStructured = "structured"
	StrategyJSONOnly   = "json_only"

	OCREngineTesseract = "tesseract"
	OCREngineVision    = "vision"
)

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:          getEnv("PORT", "8000"),
			Env:           getEnv("ENV", "development"),
			MaxTextLength: getEnvAsInt("MAX_TEXT_LENGTH", 200_000),
		},
		AI: AIConfig{
			Provider:      strings.ToLower(getEnv("AI_PROVIDER", ProviderOpenAI)),
			Strategy:      strings.ToLower(getEnv("AI_STRATEGY", StrategyStructured)),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
			GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Temperature:   getEnvAsFloat32("AI_TEMPERATURE", 0.3),
		},
		Document: DocumentConfig{
			TempDir:          getEnv("TEMP_DIR", os.TempDir()),
			DownloadTimeout:  getEnvAsDuration("DOWNLOAD_TIMEOUT", "60s"),
			MinTextLength:    getEnvAsInt("MIN_TEXT_LENGTH", 300),
			LibreOfficeBin:   getEnv("LIBREOFFICE_BIN", "libreoffice"),
			BatchConcurrency: getEnvAsInt("BATCH_CONCURRENCY", 2),
		},
		OCR: OCRConfig{
			Engine:          strings.ToLower(getEnv("OCR_ENGINE", OCREngineTesseract)),
			PdftoppmBin:     getEnv("PDFTOPPM_BIN", "pdftoppm"),
			TesseractBin:    getEnv("TESSERACT_BIN", "tesseract"),
			Lang:            getEnv("OCR_LANG", "kor+eng"),
			DPI:             getEnvAsInt("OCR_DPI", 300),
			LegacyNormalize: getEnvAsBool("OCR_LEGACY_NORMALIZE", false),
		},
		RateLimit: RateLimitConfig{
			Interval: getEnvAsDuration("RATE_LIMIT_INTERVAL", "1s"),
			MaxKeys:  getEnvAsInt("RATE_LIMIT_MAX_KEYS", 10_000),
		},
		Firebase: FirebaseConfig{
			Bucket: getEnv("FIREBASE_BUCKET", ""),
		},
	}
}

// Validate reports configuration that would only fail later, at the first request.
func (c *Config) Validate() error {
	switch c.AI.Provider {
	case ProviderOpenAI:
		if c.AI.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when AI_PROVIDER=%s", ProviderOpenAI)
		}
	case ProviderGemini:
		if c.AI.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when AI_PROVIDER=%s", ProviderGemini)
		}
	default:
		return fmt.Errorf("unknown AI_PROVIDER %q", c.AI.Provider)
	}

	switch c.AI.Strategy {
	case StrategyStructured, StrategyJSONOnly:
	default:
		return fmt.Errorf("unknown AI_STRATEGY %q", c.AI.Strategy)
	}

	switch c.OCR.Engine {
	case OCREngineTesseract, OCREngineVision:
	default:
		return fmt.Errorf("unknown OCR_ENGINE %q", c.OCR.Engine)
	}

	if c.Server.MaxTextLength <= 0 {
		return fmt.Errorf("MAX_TEXT_LENGTH must be positive")
	}
	return nil
}

// BodyLimit is the request body ceiling in bytes.
func (c *Config) BodyLimit() int {
	return c.Server.MaxTextLength * 10
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
