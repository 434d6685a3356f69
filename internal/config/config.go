package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr         string        `yaml:"addr"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"server"`
	Inference  Inference `yaml:"inference"`
	Assessment struct {
		TurnCeiling         int     `yaml:"turn_ceiling"`
		MaxRounds           int     `yaml:"max_rounds"`
		ConfidenceThreshold float64 `yaml:"confidence_threshold"`
		DefaultLanguage     string  `yaml:"default_language"`
		CatalogFile         string  `yaml:"catalog_file"`
	} `yaml:"assessment"`
	Session struct {
		TimeoutMinutes int `yaml:"timeout_minutes"`
	} `yaml:"session"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		SweepCron string `yaml:"sweep_cron"`
	} `yaml:"schedule"`
	Log struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
}

// Inference selects and configures the inference provider.
type Inference struct {
	Provider    string        `yaml:"provider"`
	BaseURL     string        `yaml:"base_url"`
	APIKey      string        `yaml:"api_key"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
	Fallback    *Inference    `yaml:"fallback"`
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var keyEnv = map[string]string{
	ProviderOpenAI: "OPENAI_API_KEY",
	ProviderGemini: "GEMINI_API_KEY",
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("INFERENCE_PROVIDER"); v != "" {
		cfg.Inference.Provider = v
	}
	if v := os.Getenv("INFERENCE_MODEL"); v != "" {
		cfg.Inference.Model = v
	}
	// Provider keys only fill in when the file left them empty.
	switch cfg.Inference.Provider {
	case ProviderOpenAI:
		if v := os.Getenv("OPENAI_API_KEY"); v != "" && cfg.Inference.APIKey == "" {
			cfg.Inference.APIKey = v
		}
		if v := os.Getenv("OPENAI_API_URL"); v != "" {
			cfg.Inference.BaseURL = v
		}
	default:
		if v := os.Getenv("GEMINI_API_KEY"); v != "" && cfg.Inference.APIKey == "" {
			cfg.Inference.APIKey = v
		}
		if v := os.Getenv("GEMINI_API_URL"); v != "" {
			cfg.Inference.BaseURL = v
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CATALOG_FILE"); v != "" {
		cfg.Assessment.CatalogFile = v
	}
	if v := os.Getenv("DEFAULT_LANGUAGE"); v != "" {
		cfg.Assessment.DefaultLanguage = v
	}
	if v := os.Getenv("SESSION_TIMEOUT_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Session.TimeoutMinutes = n
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 90 * time.Second
	}
	defaultInference(&cfg.Inference, ProviderGemini)
	if fb := cfg.Inference.Fallback; fb != nil {
		defaultInference(fb, ProviderOpenAI)
		if fb.APIKey == "" {
			fb.APIKey = os.Getenv(keyEnv[fb.Provider])
		}
	}
	if cfg.Assessment.TurnCeiling == 0 {
		cfg.Assessment.TurnCeiling = 10
	}
	if cfg.Assessment.MaxRounds == 0 {
		cfg.Assessment.MaxRounds = 12
	}
	if cfg.Assessment.ConfidenceThreshold == 0 {
		cfg.Assessment.ConfidenceThreshold = 0.7
	}
	if cfg.Assessment.DefaultLanguage == "" {
		cfg.Assessment.DefaultLanguage = "en"
	}
	if cfg.Session.TimeoutMinutes == 0 {
		cfg.Session.TimeoutMinutes = 30
	}
	if cfg.Schedule.SweepCron == "" {
		cfg.Schedule.SweepCron = "0 */10 * * * *"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func defaultInference(in *Inference, provider string) {
	if in.Provider == "" {
		in.Provider = provider
	}
	if in.Model == "" {
		switch in.Provider {
		case ProviderOpenAI:
			in.Model = "gpt-4o-mini"
		default:
			in.Model = "gemini-2.5-flash"
		}
	}
	if in.Temperature == 0 {
		in.Temperature = 0.7
	}
	if in.Timeout == 0 {
		in.Timeout = 60 * time.Second
	}
}

// SessionTimeout returns the idle period after which unfinished sessions expire.
func (c *Config) SessionTimeout() time.Duration {
	return time.Duration(c.Session.TimeoutMinutes) * time.Minute
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if err := c.Inference.validate("inference"); err != nil {
		return err
	}
	if fb := c.Inference.Fallback; fb != nil {
		if err := fb.validate("inference.fallback"); err != nil {
			return err
		}
		if fb.Fallback != nil {
			return fmt.Errorf("inference.fallback cannot be nested")
		}
	}
	if c.Assessment.TurnCeiling <= 0 || c.Assessment.MaxRounds <= 0 {
		return fmt.Errorf("assessment.turn_ceiling and assessment.max_rounds must be positive")
	}
	if c.Assessment.ConfidenceThreshold <= 0 || c.Assessment.ConfidenceThreshold > 1 {
		return fmt.Errorf("assessment.confidence_threshold must be within (0, 1]")
	}
	if c.Session.TimeoutMinutes <= 0 {
		return fmt.Errorf("session.timeout_minutes must be positive")
	}
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(c.Schedule.SweepCron); err != nil {
		return fmt.Errorf("schedule.sweep_cron: %w", err)
	}
	return nil
}

func (in *Inference) validate(section string) error {
	switch in.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("%s.provider must be %q or %q, got %q", section, ProviderOpenAI, ProviderGemini, in.Provider)
	}
	if in.APIKey == "" {
		return fmt.Errorf("%s.api_key is required", section)
	}
	if in.Temperature < 0 || in.Temperature > 2 {
		return fmt.Errorf("%s.temperature must be within 0-2", section)
	}
	return nil
}
