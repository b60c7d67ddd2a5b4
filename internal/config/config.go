package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config содержит конфигурацию сервера
type Config struct {
	Environment string `envconfig:"ENV" default:"development"`

	// Настройки HTTP сервера
	ServerPort         int           `envconfig:"SERVER_PORT" default:"8080"`
	ServerReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	ServerWriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"180s"` // Генерация сцены может занимать до ~3 минут
	ServerIdleTimeout  time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// Настройки CORS
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`

	// Настройки Groq (OpenAI-совместимый API)
	GroqBaseURL       string        `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1"`
	GroqModel         string        `envconfig:"GROQ_MODEL" default:"llama-3.3-70b-versatile"`
	GroqScenesTimeout time.Duration `envconfig:"GROQ_SCENES_TIMEOUT" default:"45s"`
	GroqQuizTimeout   time.Duration `envconfig:"GROQ_QUIZ_TIMEOUT" default:"20s"`
	GroqChatTimeout   time.Duration `envconfig:"GROQ_CHAT_TIMEOUT" default:"20s"`
	// Секретное поле БЕЗ envconfig тега
	GroqAPIKey string

	// Настройки Bria FIBO
	BriaTranslatorURL    string        `envconfig:"BRIA_TRANSLATOR_URL" default:"https://engine.prod.bria-api.com/v2/structured_prompt/generate"`
	BriaGeneratorURL     string        `envconfig:"BRIA_GENERATOR_URL" default:"https://engine.prod.bria-api.com/v2/image/generate"`
	BriaTranslateTimeout time.Duration `envconfig:"BRIA_TRANSLATE_TIMEOUT" default:"60s"`
	BriaRenderTimeout    time.Duration `envconfig:"BRIA_RENDER_TIMEOUT" default:"120s"`
	// Секретное поле БЕЗ envconfig тега
	BriaAPIKey string

	// Общая политика повторов для внешних AI-сервисов
	AIMaxAttempts int           `envconfig:"AI_MAX_ATTEMPTS" default:"3"`
	AIRetryDelay  time.Duration `envconfig:"AI_RETRY_DELAY" default:"2s"`

	// Настройки PostgreSQL
	DBHost        string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" default:"postgres"`
	DBName        string        `envconfig:"DB_NAME" default:"wiseowl"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_MAX_IDLE_TIME" default:"5m"`
	// Секретное поле БЕЗ envconfig тега
	DBPassword string

	// Путь к директории с миграциями
	MigrationsDir string `envconfig:"MIGRATIONS_DIR" default:"internal/database/migrations"`

	// Секретное поле БЕЗ envconfig тега
	JWTSecret string
}

// GetDSN возвращает строку подключения (DSN) для PostgreSQL
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// Load загружает конфигурацию из переменных окружения и секретов
func Load() (*Config, error) {
	var cfg Config
	// Загружаем НЕсекретные переменные
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Секреты читаем отдельно, чтобы они не попадали в дефолты и логи
	var err error
	if cfg.GroqAPIKey, err = requireSecret("GROQ_API_KEY"); err != nil {
		return nil, err
	}
	if cfg.BriaAPIKey, err = requireSecret("BRIA_API_KEY"); err != nil {
		return nil, err
	}
	if cfg.JWTSecret, err = requireSecret("JWT_SECRET"); err != nil {
		return nil, err
	}
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	if cfg.DBPassword == "" {
		cfg.DBPassword = "postgres"
	}

	log.Info().
		Str("environment", cfg.Environment).
		Int("server_port", cfg.ServerPort).
		Str("groq_base_url", cfg.GroqBaseURL).
		Str("groq_model", cfg.GroqModel).
		Int("ai_max_attempts", cfg.AIMaxAttempts).
		Dur("ai_retry_delay", cfg.AIRetryDelay).
		Str("db_dsn", cfg.getMaskedDSN()).
		Msg("configuration loaded")

	return &cfg, nil
}

// requireSecret читает обязательный секрет из переменной окружения
func requireSecret(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("переменная окружения %s не установлена", key)
	}
	return value, nil
}

// getMaskedDSN возвращает DSN с замаскированным паролем для логирования
func (c *Config) getMaskedDSN() string {
	dsn := c.GetDSN()
	parts := strings.Split(dsn, "@")
	if len(parts) != 2 {
		return "[invalid dsn format]"
	}
	userInfo := strings.Split(parts[0], ":")
	if len(userInfo) >= 2 {
		userInfo[len(userInfo)-1] = "********"
	}
	return strings.Join(userInfo, ":") + "@" + parts[1]
}
