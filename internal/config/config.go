package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/mohammadpnp/person-service/internal/domain/dictionary"
	"github.com/sirupsen/logrus"
)

type DictionaryOptions struct {
	URL            string        `env:"DICTIONARY_SERVICE_URL" envDefault:"http://localhost:8082"`
	Timeout        time.Duration `env:"DICTIONARY_TIMEOUT" envDefault:"5s"`
	TypeID         int64         `env:"DICT_TYPE_ID" envDefault:"1"`
	PositionID     int64         `env:"DICT_POSITION_ID" envDefault:"2"`
	UniversityID   int64         `env:"DICT_UNIVERSITY_ID" envDefault:"3"`
	FieldOfStudyID int64         `env:"DICT_FIELD_OF_STUDY_ID" envDefault:"4"`
}

func (d DictionaryOptions) IDs() dictionary.IDs {
	return dictionary.IDs{
		Type:         d.TypeID,
		Position:     d.PositionID,
		University:   d.UniversityID,
		FieldOfStudy: d.FieldOfStudyID,
	}
}

type Config struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	Dictionary      DictionaryOptions
	ImportMaxUpload string        `env:"IMPORT_MAX_UPLOAD" envDefault:"10M"`
	ImportMaxLine   int           `env:"IMPORT_MAX_LINE_BYTES" envDefault:"1048576"`
	ImportBaseDir   string        `env:"IMPORT_BASE_DIR" envDefault:"."`
	PositionTx      time.Duration `env:"POSITION_TX_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MigrateOnStart  bool          `env:"MIGRATE_ON_START" envDefault:"true"`
}

// Load reads the existing env files, then the process environment.
func Load(envFiles ...string) (*Config, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return nil, fmt.Errorf("load env files: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.DatabaseURL) == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	if u, err := url.Parse(c.Dictionary.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("DICTIONARY_SERVICE_URL is not a valid url: %q", c.Dictionary.URL))
	}
	if c.Dictionary.Timeout <= 0 {
		errs = append(errs, errors.New("DICTIONARY_TIMEOUT must be positive"))
	}
	ids := c.Dictionary.IDs()
	if ids.Type <= 0 || ids.Position <= 0 || ids.University <= 0 || ids.FieldOfStudy <= 0 {
		errs = append(errs, errors.New("dictionary ids must be positive"))
	}
	if c.ImportMaxLine <= 0 {
		errs = append(errs, errors.New("IMPORT_MAX_LINE_BYTES must be positive"))
	}
	if c.PositionTx <= 0 {
		errs = append(errs, errors.New("POSITION_TX_TIMEOUT must be positive"))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	return errors.Join(errs...)
}

func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// NewLogger builds the JSON logger used by the service.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
