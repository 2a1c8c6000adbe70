// Package cliconfig resolves the watcher configuration from defaults,
// a TOML config file, WISHWATCH_* environment variables, and CLI flags,
// in ascending precedence.
package cliconfig

import (
	"fmt"
	"strconv"
	"time"
)

// DefaultUserAgent is the browser identity presented to the listing host.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Safari/537.36"

// DefaultAcceptLanguage prefers the listing's native locale.
const DefaultAcceptLanguage = "ja-JP,ja;q=0.9,en-US;q=0.8,en;q=0.7"

// Config holds the resolved watcher configuration.
type Config struct {
	// ListURL is the listing start page. Required.
	ListURL string

	// WebhookURL receives the run notifications. Required.
	WebhookURL string

	StateDir  string
	StateFile string

	MaxPages      int
	FetchAttempts int
	BackoffBase   time.Duration
	HTTPTimeout   time.Duration

	UserAgent      string
	AcceptLanguage string

	// RequestRate caps outbound listing requests per second.
	RequestRate float64

	// BaselineOnly suppresses the first-run notification.
	BaselineOnly bool

	// Interval re-runs the watcher on a timer when positive;
	// zero means a single run.
	Interval time.Duration

	// Strict makes the process exit non-zero on a failed run instead
	// of the default always-zero completion.
	Strict bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		StateDir:       ".",
		StateFile:      "state.json",
		MaxPages:       300,
		FetchAttempts:  4,
		BackoffBase:    2 * time.Second,
		HTTPTimeout:    20 * time.Second,
		UserAgent:      DefaultUserAgent,
		AcceptLanguage: DefaultAcceptLanguage,
		RequestRate:    1,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.ListURL == "" {
		return fmt.Errorf("list-url is required")
	}
	if c.WebhookURL == "" {
		return fmt.Errorf("webhook-url is required")
	}
	if c.StateFile == "" {
		return fmt.Errorf("state-file must not be empty")
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("max pages must be positive")
	}
	if c.FetchAttempts <= 0 {
		return fmt.Errorf("fetch attempts must be positive")
	}
	if c.BackoffBase <= 0 {
		return fmt.Errorf("backoff base must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}
	return nil
}

// configSetter applies configuration values while respecting flag
// precedence: a value is skipped when its flag was explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses environment variable strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if f <= 0 {
		return nil
	}
	*dst = f
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
