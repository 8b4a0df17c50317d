package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI   = "openai"
	ProviderGigaChat = "gigachat"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	AI        AIConfig
	Retention RetentionConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
	File  string // optional, rotated with lumberjack
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Driver   string
	DSN      string // sqlite file path or full postgres DSN
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// PostgresDSN returns DSN when set, otherwise builds one from the discrete fields.
func (c DatabaseConfig) PostgresDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

type AIConfig struct {
	Provider           string
	APIKey             string
	Endpoint           string
	Model              string
	Timeout            time.Duration
	InsecureSkipVerify bool
	GigaChatAPIKey     string
	GigaChatScope      string
}

// Configured reports whether the selected provider has the credentials it needs.
func (c AIConfig) Configured() bool {
	switch c.Provider {
	case ProviderGigaChat:
		return c.GigaChatAPIKey != ""
	default:
		return c.APIKey != "" && c.Endpoint != ""
	}
}

type RetentionConfig struct {
	// InteractionDays is the age after which chat logs may be pruned. 0 keeps them forever.
	InteractionDays int
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work too
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, err := getEnvInt("SERVER_READ_TIMEOUT", 30)
	if err != nil {
		return nil, err
	}
	writeTimeout, err := getEnvInt("SERVER_WRITE_TIMEOUT", 60)
	if err != nil {
		return nil, err
	}
	aiTimeout, err := getEnvInt("AI_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	retentionDays, err := getEnvInt("INTERACTION_RETENTION_DAYS", 0)
	if err != nil {
		return nil, err
	}
	if retentionDays < 0 {
		return nil, fmt.Errorf("INTERACTION_RETENTION_DAYS must not be negative, got %d", retentionDays)
	}

	driver := strings.ToLower(getEnv("DB_DRIVER", DriverSQLite))
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	dsn := getEnv("DB_DSN", "")
	if dsn == "" && driver == DriverSQLite {
		dsn = "feiyi.db"
	}

	provider := strings.ToLower(getEnv("AI_PROVIDER", ProviderOpenAI))
	if provider != ProviderOpenAI && provider != ProviderGigaChat {
		return nil, fmt.Errorf("unsupported AI_PROVIDER %q", provider)
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "5000"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Driver:   driver,
			DSN:      dsn,
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "feiyi"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		AI: AIConfig{
			Provider:           provider,
			APIKey:             getEnv("HUAWEI_AI_API_KEY", ""),
			Endpoint:           getEnv("HUAWEI_AI_ENDPOINT", ""),
			Model:              getEnv("AI_MODEL", "deepseek-v3.2-exp"),
			Timeout:            time.Duration(aiTimeout) * time.Second,
			InsecureSkipVerify: getEnv("AI_INSECURE_SKIP_VERIFY", "false") == "true",
			GigaChatAPIKey:     getEnv("GIGACHAT_API_KEY", ""),
			GigaChatScope:      getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
		},
		Retention: RetentionConfig{
			InteractionDays: retentionDays,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}
