package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"` // postgres | mysql
		DSN    string `yaml:"url"`
		// Порог медленного запроса для логгера GORM, мс
		SlowQueryMs int  `yaml:"slow_query_ms"`
		AutoMigrate bool `yaml:"auto_migrate"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // минуты
	} `yaml:"jwt"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
	} `yaml:"redis"`

	RateLimit struct {
		Prefix        string `yaml:"prefix"`
		LoginPerMin   int    `yaml:"login_per_minute"`
		ApplyPerMin   int    `yaml:"apply_per_minute"`
		WindowSeconds int    `yaml:"window_seconds"`
	} `yaml:"rate_limit"`

	NATS struct {
		URL           string `yaml:"url"`
		SubjectPrefix string `yaml:"subject_prefix"`
		TimeoutSec    int    `yaml:"timeout_seconds"`
	} `yaml:"nats"`

	Workflow struct {
		// Строгий режим: только следующий шаг воронки или REJECTED
		StrictTransitions bool `yaml:"strict_transitions"`
	} `yaml:"workflow"`

	Workers struct {
		JobOrderExpiryMinutes int `yaml:"job_order_expiry_minutes"` // 0 - выключено
	} `yaml:"workers"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// IsDevelopment - включает стек в ответах об ошибках и текстовый лог
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// JWTTTL возвращает время жизни access-токена
func (c *Config) JWTTTL() time.Duration {
	if c.JWT.TTL <= 0 {
		return 60 * time.Minute
	}
	return time.Duration(c.JWT.TTL) * time.Minute
}

// RateLimitWindow возвращает окно лимитера
func (c *Config) RateLimitWindow() time.Duration {
	if c.RateLimit.WindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.RateLimit.WindowSeconds) * time.Second
}

// LoadConfig загружает конфигурацию в AppConfig и завершает процесс при ошибке
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// Load читает .env (если есть), затем YAML по CONFIG_PATH, затем переменные окружения.
// Если задан DATABASE_URL, YAML не обязателен.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to read .env: %v", err)
	}

	cfg := Default()

	dbURL := os.Getenv("DATABASE_URL")
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if err := loadYAML(configPath, cfg); err != nil {
		if dbURL == "" || !os.IsNotExist(err) {
			return nil, err
		}
		log.Println("Config file not found, using environment variables only")
	}

	applyEnv(cfg)
	return cfg, nil
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	var cfg Config
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8080
	cfg.Server.Env = "production"
	cfg.Database.Driver = "postgres"
	cfg.Database.SlowQueryMs = 200
	cfg.Database.AutoMigrate = true
	cfg.JWT.TTL = 60
	cfg.RateLimit.Prefix = "recruit:ratelimit"
	cfg.RateLimit.LoginPerMin = 10
	cfg.RateLimit.ApplyPerMin = 30
	cfg.RateLimit.WindowSeconds = 60
	cfg.NATS.SubjectPrefix = "recruit"
	cfg.NATS.TimeoutSec = 5
	cfg.CORS.AllowedOrigins = []string{"*"}
	return &cfg
}

func loadYAML(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("STRICT_TRANSITIONS"); v != "" {
		cfg.Workflow.StrictTransitions, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORS.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("FIRST_ADMIN_EMAIL"); v != "" {
		cfg.FirstAdminEmail = v
	}
	if v := os.Getenv("FIRST_ADMIN_PASSWORD"); v != "" {
		cfg.FirstAdminPassword = v
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
