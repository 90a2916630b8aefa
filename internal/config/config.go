package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Режимы получения обновлений.
const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
)

// Типы хранилища загруженных наборов вопросов.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// ErrValidation возвращается, если конфигурация некорректна.
var ErrValidation = errors.New("config validation error")

// Config содержит параметры приложения.
type Config struct {
	Telegram  Telegram  `yaml:"telegram"`
	Questions Questions `yaml:"questions"`
	Storage   Storage   `yaml:"storage"`
	Health    Health    `yaml:"health"`
	Log       Log       `yaml:"log"`
	AdminIDs  []int64   `yaml:"admin_ids"`
	Debug     bool      `yaml:"debug"`
}

// Telegram — параметры подключения к Bot API.
type Telegram struct {
	Token       string        `yaml:"token"`
	Mode        string        `yaml:"mode"`
	WebhookURL  string        `yaml:"webhook_url"`
	SecretToken string        `yaml:"secret_token"`
	ListenAddr  string        `yaml:"listen_addr"`
	PollTimeout time.Duration `yaml:"poll_timeout"`
}

// Questions — откуда берется набор вопросов по умолчанию и ограничения загрузки.
type Questions struct {
	File           string `yaml:"file"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	Strict         bool   `yaml:"strict"`
}

// Storage — хранилище загруженных наборов.
type Storage struct {
	Type string `yaml:"type"`
	DSN  string `yaml:"dsn"`
}

// Health — адрес HTTP-сервера с /healthz. Пустой адрес отключает сервер.
type Health struct {
	Addr string `yaml:"addr"`
}

// Log — параметры логирования.
type Log struct {
	Level string `yaml:"level"`
	Color bool   `yaml:"color"`
}

// Default возвращает конфигурацию со значениями по умолчанию.
func Default() *Config {
	return &Config{
		Telegram: Telegram{
			Mode:        ModePolling,
			ListenAddr:  ":8443",
			PollTimeout: 10 * time.Second,
		},
		Questions: Questions{
			File:           "quiz.txt",
			MaxUploadBytes: 1 << 20,
		},
		Storage: Storage{Type: StorageMemory},
		Health:  Health{Addr: ":8080"},
		Log:     Log{Level: "info", Color: true},
	}
}

// Load читает конфигурацию из YAML-файла path (если задан), файла .env и
// переменных окружения. Переменные окружения имеют приоритет над файлом.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}

	defer func() {
		_ = f.Close()
	}()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)

	if err = decoder.Decode(c); err != nil {
		return fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Telegram.Token, "YOUR_BOT_TOKEN")
	setString(&c.Telegram.Token, "TELEGRAM_BOT_TOKEN")
	setString(&c.Telegram.Mode, "BOT_MODE")
	setString(&c.Telegram.WebhookURL, "WEBHOOK_URL")
	setString(&c.Telegram.SecretToken, "WEBHOOK_SECRET")
	setString(&c.Telegram.ListenAddr, "LISTEN_ADDR")
	setString(&c.Health.Addr, "HEALTH_ADDR")
	setString(&c.Questions.File, "QUIZ_FILE")
	setString(&c.Storage.Type, "STORAGE_TYPE")
	setString(&c.Storage.DSN, "DATABASE_URL")
	setString(&c.Log.Level, "LOG_LEVEL")

	if v := os.Getenv("DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: DEBUG must be a boolean, got %q", ErrValidation, v)
		}
		c.Debug = debug
	}

	if v := os.Getenv("ADMIN_IDS"); v != "" {
		ids, err := ParseIDs(v)
		if err != nil {
			return err
		}
		c.AdminIDs = ids
	}

	return nil
}

// ParseIDs разбирает список Telegram ID, разделенных запятыми.
func ParseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid telegram id %q", ErrValidation, part)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// Validate проверяет согласованность параметров.
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("%w: telegram token is not set", ErrValidation)
	}

	switch c.Telegram.Mode {
	case ModePolling:
		if c.Telegram.PollTimeout <= 0 {
			return fmt.Errorf("%w: poll_timeout must be positive", ErrValidation)
		}
	case ModeWebhook:
		if c.Telegram.WebhookURL == "" {
			return fmt.Errorf("%w: webhook_url is required in webhook mode", ErrValidation)
		}
		if c.Telegram.ListenAddr == "" {
			return fmt.Errorf("%w: listen_addr is required in webhook mode", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrValidation, c.Telegram.Mode)
	}

	switch c.Storage.Type {
	case StorageMemory:
	case StoragePostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("%w: dsn is required for postgres storage", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown storage type %q", ErrValidation, c.Storage.Type)
	}

	if c.Questions.MaxUploadBytes <= 0 {
		return fmt.Errorf("%w: max_upload_bytes must be positive", ErrValidation)
	}

	if c.Health.Addr != "" && c.Telegram.Mode == ModeWebhook && c.Health.Addr == c.Telegram.ListenAddr {
		return fmt.Errorf("%w: health addr must differ from webhook listen addr", ErrValidation)
	}

	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
