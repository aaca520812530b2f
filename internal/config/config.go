package config

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`
	DatabaseDSN string `env:"DATABASE_URI"`

	// Таймаут обработки запроса (БД + хранилище картинок)
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Сессии
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL"`

	// Загрузка изображений
	UploadMaxMB int `env:"UPLOAD_MAX_MB"`

	// S3-совместимое хранилище картинок
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3Region    string `env:"S3_REGION"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3Bucket    string `env:"S3_BUCKET"`
	S3PublicURL string `env:"S3_PUBLIC_URL"`

	// Логирование
	LogLevel string `env:"LOG_LEVEL"`
	LogDev   bool   `env:"LOG_DEV"`

	// Версия (только флаг)
	Version bool `env:"-"`
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]*:\d{1,5}$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "адрес сервера host:port")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "secure cookies (сервер за HTTPS прокси)")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres DSN или путь к файлу SQLite)")
	flag.DurationVar(&cfg.RequestTimeout, "request-timeout", cfg.RequestTimeout, "таймаут обработки запроса")
	flag.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "секрет для подписи cookie сессии")
	flag.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "время жизни сессии")
	flag.IntVar(&cfg.UploadMaxMB, "upload-max-mb", cfg.UploadMaxMB, "максимальный размер картинки, МБ")
	flag.StringVar(&cfg.S3Endpoint, "s3-endpoint", cfg.S3Endpoint, "S3 endpoint (например http://localhost:9000)")
	flag.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "S3 bucket для картинок")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug|info|warn|error")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	// BaseURL: только "address:port" (без схемы и пути), иначе дефолт
	if !hostPortRe.MatchString(c.BaseURL) {
		c.BaseURL = "localhost:3000"
	}
	if c.DatabaseDSN == "" {
		c.DatabaseDSN = "machines.db"
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = 24 * time.Hour
	}
	if c.UploadMaxMB <= 0 {
		c.UploadMaxMB = 10
	}
	if c.S3Region == "" {
		c.S3Region = "us-east-1"
	}
	if c.S3Bucket == "" {
		c.S3Bucket = "machines"
	}
	if c.LogLevel == "" {
		if c.LogDev {
			c.LogLevel = "debug"
		} else {
			c.LogLevel = "info"
		}
	}
}

// EnsureSessionSecret генерирует случайный секрет, если он не задан.
// Возвращает true, если секрет сгенерирован (сессии не переживут рестарт).
func (c *Config) EnsureSessionSecret() (bool, error) {
	if c.SessionSecret != "" {
		return false, nil
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return false, err
	}
	c.SessionSecret = hex.EncodeToString(b)
	return true, nil
}

// UploadMaxBytes лимит на размер одного файла картинки.
func (c *Config) UploadMaxBytes() int64 {
	return int64(c.UploadMaxMB) * 1024 * 1024
}
