package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates every runtime setting for the service.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	AI       AIConfig
	Speech   SpeechConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	database, err := loadDatabaseConfig()
	if err != nil {
		return nil, err
	}

	auth, err := loadAuthConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	speech, err := loadSpeechConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:   server,
		Database: database,
		Auth:     auth,
		AI:       ai,
		Speech:   speech,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as-is.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// DatabaseConfig holds the MySQL DSN.
type DatabaseConfig struct {
	DSN string
}

func loadDatabaseConfig() (DatabaseConfig, error) {
	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		return DatabaseConfig{}, fmt.Errorf("DB_DSN is required")
	}
	return DatabaseConfig{DSN: dsn}, nil
}

// AuthConfig holds JWT signing settings.
type AuthConfig struct {
	JWTSecret   string
	TokenExpiry int // minutes
}

func loadAuthConfig() (AuthConfig, error) {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		return AuthConfig{}, fmt.Errorf("JWT_SECRET is required")
	}

	expiry := 60
	if override, err := parseOptionalIntEnv("JWT_EXPIRY_MINUTES"); err != nil {
		return AuthConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return AuthConfig{}, fmt.Errorf("JWT_EXPIRY_MINUTES must be positive")
		}
		expiry = *override
	}

	return AuthConfig{JWTSecret: secret, TokenExpiry: expiry}, nil
}

// AIConfig describes the completion engine.
type AIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature *float32
	MaxTokens   *int
	Timeout     int // seconds
}

// Enabled reports whether completion credentials are present.
func (c AIConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloat32Env("DEEPSEEK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("DEEPSEEK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	timeout := 30
	if override, err := parseOptionalIntEnv("DEEPSEEK_TIMEOUT"); err != nil {
		return AIConfig{}, err
	} else if override != nil {
		timeout = *override
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("DEEPSEEK_API_KEY")),
		BaseURL:     getEnvOrDefault("DEEPSEEK_BASE_URL", "https://api.deepseek.com/v1"),
		Model:       getEnvOrDefault("DEEPSEEK_MODEL", "gpt-4"),
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Timeout:     timeout,
	}, nil
}

// SpeechConfig describes the speech synthesis engine.
type SpeechConfig struct {
	APIKey  string
	BaseURL string
	ModelID string
	Format  string
	Timeout int // seconds
	Enabled bool
}

func loadSpeechConfig() (SpeechConfig, error) {
	timeout := 30
	if override, err := parseOptionalIntEnv("ELEVENLABS_TIMEOUT"); err != nil {
		return SpeechConfig{}, err
	} else if override != nil {
		timeout = *override
	}

	apiKey := strings.TrimSpace(os.Getenv("ELEVENLABS_API_KEY"))

	return SpeechConfig{
		APIKey:  apiKey,
		BaseURL: getEnvOrDefault("ELEVENLABS_BASE_URL", "wss://api.elevenlabs.io/v1/text-to-speech"),
		ModelID: getEnvOrDefault("ELEVENLABS_MODEL_ID", "eleven_multilingual_v2"),
		Format:  getEnvOrDefault("ELEVENLABS_OUTPUT_FORMAT", "mp3_44100_128"),
		Timeout: timeout,
		Enabled: apiKey != "",
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalFloat32Env(key string) (*float32, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	result := float32(val)
	return &result, nil
}
