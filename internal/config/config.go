package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Iris       IrisConfig
	Kakao      KakaoConfig
	Bot        BotConfig
	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	YouTube    YouTubeConfig
	Transcript TranscriptConfig
	Redis      RedisConfig
	Notes      NotesConfig
	Logging    LoggingConfig
}

type IrisConfig struct {
	BaseURL string `validate:"required,url"`
	WSURL   string `validate:"required,url"`
}

type KakaoConfig struct {
	// Rooms restricts the bot to these rooms; empty means every room.
	Rooms []string
}

type BotConfig struct {
	Prefix      string `validate:"required,max=3"`
	AutoPreview bool

	// MaxConcurrency bounds how many chat commands run at once.
	MaxConcurrency int `validate:"gte=1,lte=64"`
}

type GeminiConfig struct {
	APIKey string
	Model  string `validate:"required"`
}

type OpenAIConfig struct {
	APIKey         string
	Model          string
	EnableFallback bool
}

type YouTubeConfig struct {
	APIKey string
}

type TranscriptConfig struct {
	Languages []string `validate:"min=1,dive,required"`

	// HTTPTimeout bounds each caption HTTP call; 0 disables the client timeout.
	HTTPTimeout time.Duration `validate:"gte=0"`
}

type RedisConfig struct {
	Enabled  bool
	Host     string `validate:"required_if=Enabled true"`
	Port     int    `validate:"gte=0,lte=65535"`
	Password string
	DB       int `validate:"gte=0"`
}

type NotesConfig struct {
	ExposeErrorDetails bool
	Preset             string `validate:"oneof=creative precise balanced"`
}

type LoggingConfig struct {
	Level  string `validate:"oneof=debug info warn warning error"`
	File   string
	Format string `validate:"oneof=console json"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Iris: IrisConfig{
			BaseURL: getEnv("IRIS_BASE_URL", "http://localhost:3000"),
			WSURL:   getEnv("IRIS_WS_URL", "ws://localhost:3000/ws"),
		},
		Kakao: KakaoConfig{
			Rooms: parseCommaSeparated(getEnv("KAKAO_ROOMS", "")),
		},
		Bot: BotConfig{
			Prefix:         getEnv("BOT_PREFIX", "!"),
			AutoPreview:    getEnvBool("BOT_AUTO_PREVIEW", false),
			MaxConcurrency: getEnvInt("BOT_MAX_CONCURRENCY", 4),
		},
		Gemini: GeminiConfig{
			APIKey: firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY"),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", "gpt-5-mini"),
			EnableFallback: getEnvBool("OPENAI_ENABLE_FALLBACK", true),
		},
		YouTube: YouTubeConfig{
			APIKey: getEnv("YOUTUBE_API_KEY", ""),
		},
		Transcript: TranscriptConfig{
			Languages:   parseCommaSeparated(getEnv("TRANSCRIPT_LANGUAGES", "en")),
			HTTPTimeout: getEnvDuration("TRANSCRIPT_HTTP_TIMEOUT", 30*time.Second),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Notes: NotesConfig{
			ExposeErrorDetails: getEnvBool("NOTES_EXPOSE_ERROR_DETAILS", false),
			Preset:             getEnv("NOTES_MODEL_PRESET", "balanced"),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			File:   getEnv("LOG_FILE", ""),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "console")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks structural settings only. A missing Gemini key is not an error:
// the summarization call fails downstream instead.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}

// HasSummarizer reports whether any summarization credential is configured.
func (c *Config) HasSummarizer() bool {
	return c.Gemini.APIKey != "" || (c.OpenAI.EnableFallback && c.OpenAI.APIKey != "")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return ""
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go duration strings ("45s") or a plain number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func parseCommaSeparated(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
