package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultPath = "config/config.yaml"

// ErrMissingJWTSecret is returned when no usable signing secret is configured.
var ErrMissingJWTSecret = errors.New("jwt secret is not configured")

// secrets that must never be accepted as a real signing key
var placeholderSecrets = map[string]struct{}{
	"your-secret-key":    {},
	"placeholder-secret": {},
	"changeme":           {},
	"secret":             {},
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
	DryRun       bool   `yaml:"dry_run"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

type OTPConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Redis RedisConfig `yaml:"redis"`
	Email EmailConfig `yaml:"email"`
	JWT   JWTConfig   `yaml:"jwt"`
	OTP   OTPConfig   `yaml:"otp"`
	Log   struct {
		Development bool `yaml:"development"`
	} `yaml:"log"`
}

// Load reads the YAML file at path, applies environment overrides and
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig loads .env (if any) and the config file, and panics on failure.
// The process must not start without a signing secret.
func LoadConfig() *Config {
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultPath
	}
	cfg, err := Load(path)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return cfg
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		c.Email.SMTPPassword = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWT.Secret = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.JWT.TTL <= 0 {
		c.JWT.TTL = 7 * 24 * time.Hour
	}
	if c.OTP.TTL <= 0 {
		c.OTP.TTL = 10 * time.Minute
	}
}

// Validate fails closed on a missing or well-known placeholder secret.
func (c *Config) Validate() error {
	secret := strings.TrimSpace(c.JWT.Secret)
	if secret == "" {
		return ErrMissingJWTSecret
	}
	if _, ok := placeholderSecrets[strings.ToLower(secret)]; ok {
		return fmt.Errorf("%w: placeholder value %q", ErrMissingJWTSecret, secret)
	}
	if c.Database.DSN == "" {
		return errors.New("database url is required")
	}
	return nil
}
