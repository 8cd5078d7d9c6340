// Package config reads examiz settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	DurationSeconds            int    `env:"EXAMIZ_DURATION" validate:"min=1"`
	InactivityThresholdSeconds int    `env:"EXAMIZ_INACTIVITY_THRESHOLD" validate:"min=1"`
	InactivityPollSeconds      int    `env:"EXAMIZ_INACTIVITY_POLL" validate:"min=1,ltefield=InactivityThresholdSeconds"`
	NudgeDurationMs            int    `env:"EXAMIZ_NUDGE_DURATION_MS" validate:"min=0"`
	Authenticated              bool   `env:"EXAMIZ_AUTHENTICATED"`
	DBPath                     string `env:"EXAMIZ_DB"`
	LogLevel                   string `env:"LOG_LEVEL" validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogFormat                  string `env:"LOG_FORMAT" validate:"oneof=json pretty"`
	LogFile                    string `env:"EXAMIZ_LOG_FILE"`
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DurationSeconds:            getEnvInt("EXAMIZ_DURATION", 3600),
		InactivityThresholdSeconds: getEnvInt("EXAMIZ_INACTIVITY_THRESHOLD", 300),
		InactivityPollSeconds:      getEnvInt("EXAMIZ_INACTIVITY_POLL", 60),
		NudgeDurationMs:            getEnvInt("EXAMIZ_NUDGE_DURATION_MS", 10000),
		Authenticated:              getEnvBool("EXAMIZ_AUTHENTICATED", true),
		DBPath:                     getEnv("EXAMIZ_DB", ""),
		LogLevel:                   getEnv("LOG_LEVEL", "info"),
		LogFormat:                  getEnv("LOG_FORMAT", "pretty"),
		LogFile:                    getEnv("EXAMIZ_LOG_FILE", ""),
	}
}

// InactivityThreshold returns the idle threshold as a duration.
func (c *Config) InactivityThreshold() time.Duration {
	return time.Duration(c.InactivityThresholdSeconds) * time.Second
}

// InactivityPoll returns the inactivity poll interval as a duration.
func (c *Config) InactivityPoll() time.Duration {
	return time.Duration(c.InactivityPollSeconds) * time.Second
}

// NudgeDuration returns how long the inactivity notification stays visible.
func (c *Config) NudgeDuration() time.Duration {
	return time.Duration(c.NudgeDurationMs) * time.Millisecond
}

// Validate checks every field and reports all failures in one error, keyed
// by environment variable name.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var ve govalidator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fe.Translate(trans))
	}
	sort.Strings(msgs)
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

var (
	validate *govalidator.Validate
	trans    ut.Translator
)

func init() {
	validate = govalidator.New(govalidator.WithRequiredStructEnabled())

	// Use the env tag name in error messages.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("env"); name != "" {
			return name
		}
		return fld.Name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, trans)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
