// Package config предоставляет структуры и функции для парсинга и загрузки конфига
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer      `yaml:"http_server"`
	RedisConnection `yaml:"redis_connection"`
	RabbitMQ        `yaml:"rabbitmq"`
	Upstream        `yaml:"upstream"`
	JWTToken        `yaml:"jwttoken"`
	Upload          `yaml:"upload"`
	Feed            `yaml:"feed"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"15s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
	// UploadTimeout заменяет TimeoutHTTP на маршрутах с файлами.
	UploadTimeout time.Duration `yaml:"upload_timeout" env-default:"10m"`
	// RateLimit — запросов в секунду на одного зрителя.
	RateLimit float64 `yaml:"rate_limit" env-default:"10"`
	RateBurst int     `yaml:"rate_burst" env-default:"20"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
	CacheTTL     time.Duration `yaml:"cache_ttl" env-default:"1m"`
}

// RabbitMQ структура для настройки брокера событий
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange   string        `yaml:"exchange" env-default:"creator-hub"`
	Retries    int           `yaml:"retries" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
	Workers    int           `yaml:"workers" env-default:"4"`
}

// Upstream структура для настройки клиента REST API платформы
type Upstream struct {
	BaseURL       string        `yaml:"base_url" env:"UPSTREAM_URL" env-required:"true"`
	Timeout       time.Duration `yaml:"timeout" env-default:"10s"`
	UploadTimeout time.Duration `yaml:"upload_timeout" env-default:"10m"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	// SubscriptionsTTL — сколько снимок подписок зрителя считается свежим.
	SubscriptionsTTL time.Duration `yaml:"subscriptions_ttl" env-default:"30s"`
}

// Upload структура с лимитами пакетной загрузки
type Upload struct {
	MaxFiles         int           `yaml:"max_files" env-default:"10"`
	MaxFileSize      int64         `yaml:"max_file_size" env-default:"52428800"`
	MaxVideoDuration time.Duration `yaml:"max_video_duration" env-default:"30s"`
	ProbeConcurrency int           `yaml:"probe_concurrency" env-default:"4"`
	FFProbePath      string        `yaml:"ffprobe_path" env:"FFPROBE_PATH" env-default:"ffprobe"`
	TempDir          string        `yaml:"temp_dir" env:"UPLOAD_TEMP_DIR"`
	// BatchIdleTTL через сколько без обращений пакет автора удаляется вместе с файлами.
	BatchIdleTTL  time.Duration `yaml:"batch_idle_ttl" env-default:"1h"`
	SweepInterval time.Duration `yaml:"sweep_interval" env-default:"1m"`
}

// MaxRequestBody возвращает предел тела запроса с файлами: полный пакет
// и запас на заголовки формы.
func (u Upload) MaxRequestBody() int64 {
	const formOverhead = 1 << 20
	return int64(u.MaxFiles)*u.MaxFileSize + formOverhead
}

// Feed структура для настройки сборки ленты
type Feed struct {
	FetchConcurrency int `yaml:"fetch_concurrency" env-default:"8"`
}

// Load читает конфиг по указанному пути. Перед чтением подгружается .env,
// если он есть в рабочем каталоге.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH, при ошибке завершает процесс
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// String печатает конфиг без секретов.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"  UploadTimeout: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"  CacheTTL: %s\n"+
			"RabbitMQ:\n"+
			"  Exchange: %s\n"+
			"Upstream:\n"+
			"  BaseURL: %s\n"+
			"  Timeout: %s\n"+
			"  UploadTimeout: %s\n"+
			"Upload:\n"+
			"  MaxFiles: %d\n"+
			"  MaxFileSize: %d\n"+
			"  MaxVideoDuration: %s\n",
		c.Env,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.HTTPServer.UploadTimeout,
		c.AddressRedis,
		c.DB,
		c.CacheTTL,
		c.Exchange,
		c.BaseURL,
		c.Upstream.Timeout,
		c.Upstream.UploadTimeout,
		c.MaxFiles,
		c.MaxFileSize,
		c.MaxVideoDuration,
	)
}
