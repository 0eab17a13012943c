package corrector

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"prefixcorrector/internal/ecm"
	"prefixcorrector/internal/hypothesis"
	"prefixcorrector/pkg/options"
)

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Config struct {
	Model          options.ErrorModelOptions `yaml:"model"`
	VocabularyFile string                    `yaml:"vocabulary_file"` // overrides model.vocabulary_size when set
	Lowercase      bool                      `yaml:"lowercase"`
	LogLevel       string                    `yaml:"log_level"`
	Redis          RedisConfig               `yaml:"redis"`
	Profile        string                    `yaml:"profile"` // stored profile replacing model
}

func DefaultConfig() Config {
	return Config{
		Model:    options.DefaultOptions,
		LogLevel: "info",
		Redis:    RedisConfig{Addr: "localhost:6379"},
	}
}

// LoadConfig reads a YAML file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if _, err := ecm.Costs(c.Model); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("redis.db must be non-negative, got %d", c.Redis.DB)
	}
	if c.Profile != "" && c.Redis.Addr == "" {
		return errors.New("profile requires redis.addr")
	}
	return nil
}

// Result is what the user sees after a keystroke.
type Result struct {
	Tokens          []string            `json:"tokens"`
	Text            string              `json:"text"`
	Sources         []hypothesis.Source `json:"sources"`
	TrailingColumns int                 `json:"trailing_columns"`
	Cost            float64             `json:"cost"`
	Matched         int                 `json:"matched"` // hypothesis tokens the prefix has reached
}
