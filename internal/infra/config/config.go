package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	AI      AIConfig      `yaml:"ai"`
	Session SessionConfig `yaml:"session"`
	Cache   CacheConfig   `yaml:"cache"`
	Intake  IntakeConfig  `yaml:"intake"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// AIConfig contains vision gateway settings. BaseURL and APIKey have no
// defaults: both must be supplied before the service will start.
type AIConfig struct {
	BaseURL        string        `yaml:"baseUrl"`
	APIKey         string        `yaml:"apiKey"`
	Model          string        `yaml:"model"`
	Temperature    float32       `yaml:"temperature"`
	Prompt         string        `yaml:"prompt"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

// SessionConfig controls the per-session state machine.
type SessionConfig struct {
	TTL              time.Duration `yaml:"ttl"`
	ProgressInterval time.Duration `yaml:"progressInterval"`
}

// CacheConfig wires the analysis result cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Addr    string        `yaml:"addr"`
	TTL     time.Duration `yaml:"ttl"`
}

// IntakeConfig bounds uploaded photos.
type IntakeConfig struct {
	MaxUploadBytes int64 `yaml:"maxUploadBytes"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitAndTrim(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = isTruthy(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("AI_BASE_URL"); v != "" {
		cfg.AI.BaseURL = v
	}
	if v := os.Getenv("AI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("AI_MODEL"); v != "" {
		cfg.AI.Model = v
	}
	if v := os.Getenv("AI_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.AI.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("AI_PROMPT"); v != "" {
		cfg.AI.Prompt = v
	}
	if v := os.Getenv("AI_REQUEST_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.AI.RequestTimeout = parsed
		}
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Session.TTL = parsed
		}
	}
	if v := os.Getenv("SESSION_PROGRESS_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Session.ProgressInterval = parsed
		}
	}
	if v := os.Getenv("CACHE_ENABLED"); v != "" {
		cfg.Cache.Enabled = isTruthy(v)
	}
	if v := os.Getenv("CACHE_ADDR"); v != "" {
		cfg.Cache.Addr = v
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = parsed
		}
	}
	if v := os.Getenv("INTAKE_MAX_UPLOAD_BYTES"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Intake.MaxUploadBytes = parsed
		}
	}
}

func isTruthy(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitAndTrim(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if clean := strings.TrimSpace(part); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		AI: AIConfig{
			Model:          "google/gemini-2.5-pro",
			Temperature:    0.3,
			Prompt:         defaultAnalysisPrompt,
			RequestTimeout: 60 * time.Second,
		},
		Session: SessionConfig{
			TTL:              30 * time.Minute,
			ProgressInterval: 1500 * time.Millisecond,
		},
		Cache: CacheConfig{
			Enabled: false,
			TTL:     24 * time.Hour,
		},
		Intake: IntakeConfig{
			MaxUploadBytes: 10 << 20,
		},
	}
}

// Validate ensures the configuration is safe to use. Missing vision gateway
// credentials fail here, before any request could be attempted.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.AI.BaseURL) == "" {
		return errors.New("ai.baseUrl cannot be empty: set AI_BASE_URL")
	}
	if strings.TrimSpace(c.AI.APIKey) == "" {
		return errors.New("ai.apiKey cannot be empty: set AI_API_KEY")
	}
	if strings.TrimSpace(c.AI.Model) == "" {
		return errors.New("ai.model cannot be empty")
	}
	if strings.TrimSpace(c.AI.Prompt) == "" {
		return errors.New("ai.prompt cannot be empty")
	}
	if c.AI.RequestTimeout <= 0 {
		return errors.New("ai.requestTimeout must be positive")
	}
	if c.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}
	if c.Session.ProgressInterval <= 0 {
		return errors.New("session.progressInterval must be positive")
	}
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Addr) == "" {
		return errors.New("cache.addr cannot be empty when the result cache is enabled")
	}
	if c.Cache.TTL < 0 {
		return errors.New("cache.ttl cannot be negative")
	}
	if c.Intake.MaxUploadBytes <= 0 {
		return errors.New("intake.maxUploadBytes must be positive")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}

const defaultAnalysisPrompt = `Ты — профессиональный дерматолог-AI, анализирующий фотографии кожи.
Проанализируй изображение и предоставь детальный анализ в формате JSON.

Ты должен определить:
1. Тип кожи (dry, oily, combination, normal, sensitive)
2. Проблемные зоны с координатами (x, y в процентах от 0 до 100)
3. Состояние кожи и проблемы
4. Возможные причины проблем
5. Рекомендации по уходу
6. Нужна ли консультация дерматолога

ВАЖНО: Отвечай ТОЛЬКО валидным JSON без дополнительного текста. Формат:
{
  "skinType": "combination",
  "skinTypeDescription": "Описание типа кожи",
  "conditions": [
    {"name": "Название проблемы", "description": "Описание", "severity": "mild|moderate|severe"}
  ],
  "problemZones": [
    {"x": 30, "y": 40, "problem": "Описание проблемы", "severity": "mild|moderate|severe"}
  ],
  "possibleCauses": ["Причина 1", "Причина 2"],
  "recommendations": [
    {"title": "Название рекомендации", "description": "Описание", "category": "skincare|lifestyle|products|professional"}
  ],
  "shouldSeeDermatologist": false,
  "dermatologistReason": "Причина если shouldSeeDermatologist = true",
  "overallHealth": 75,
  "summary": "Краткое резюме состояния кожи"
}`
