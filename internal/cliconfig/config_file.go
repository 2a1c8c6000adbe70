package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to keep the
// TOML surface friendly.
type FileConfig struct {
	ListURL        string  `toml:"list_url"`
	WebhookURL     string  `toml:"webhook_url"`
	StateDir       string  `toml:"state_dir"`
	StateFile      string  `toml:"state_file"`
	MaxPages       int     `toml:"max_pages"`
	FetchAttempts  int     `toml:"fetch_attempts"`
	BackoffBase    string  `toml:"backoff_base"`
	HTTPTimeout    string  `toml:"http_timeout"`
	UserAgent      string  `toml:"user_agent"`
	AcceptLanguage string  `toml:"accept_language"`
	RequestRate    float64 `toml:"request_rate"`
	BaselineOnly   *bool   `toml:"baseline_only"`
	Interval       string  `toml:"interval"`
	Strict         *bool   `toml:"strict"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.wishwatch/config.toml when the user home
// directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".wishwatch", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies file values to the Config, skipping any field
// whose flag was explicitly set.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("list-url", fc.ListURL, &cfg.ListURL)
	s.setString("webhook-url", fc.WebhookURL, &cfg.WebhookURL)
	s.setString("state-dir", fc.StateDir, &cfg.StateDir)
	s.setString("state-file", fc.StateFile, &cfg.StateFile)
	s.setString("user-agent", fc.UserAgent, &cfg.UserAgent)
	s.setString("accept-language", fc.AcceptLanguage, &cfg.AcceptLanguage)

	s.setInt("max-pages", fc.MaxPages, &cfg.MaxPages)
	s.setInt("attempts", fc.FetchAttempts, &cfg.FetchAttempts)
	s.setFloat("request-rate", fc.RequestRate, &cfg.RequestRate)

	if err := s.setDuration("backoff-base", fc.BackoffBase, &cfg.BackoffBase); err != nil {
		return err
	}
	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("interval", fc.Interval, &cfg.Interval); err != nil {
		return err
	}

	s.setBool("baseline-only", fc.BaselineOnly, &cfg.BaselineOnly)
	s.setBool("strict", fc.Strict, &cfg.Strict)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
