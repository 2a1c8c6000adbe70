package cliconfig

import "os"

// ApplyEnvConfig applies configuration from WISHWATCH_* environment
// variables, skipping any field whose flag was explicitly set.
// Environment overrides the config file but loses to flags.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("list-url", os.Getenv("WISHWATCH_LIST_URL"), &cfg.ListURL)
	s.setString("webhook-url", os.Getenv("WISHWATCH_WEBHOOK_URL"), &cfg.WebhookURL)
	s.setString("state-dir", os.Getenv("WISHWATCH_STATE_DIR"), &cfg.StateDir)
	s.setString("state-file", os.Getenv("WISHWATCH_STATE_FILE"), &cfg.StateFile)
	s.setString("user-agent", os.Getenv("WISHWATCH_USER_AGENT"), &cfg.UserAgent)
	s.setString("accept-language", os.Getenv("WISHWATCH_ACCEPT_LANGUAGE"), &cfg.AcceptLanguage)

	if err := s.setIntFromString("max-pages", os.Getenv("WISHWATCH_MAX_PAGES"), &cfg.MaxPages); err != nil {
		return err
	}
	if err := s.setIntFromString("attempts", os.Getenv("WISHWATCH_FETCH_ATTEMPTS"), &cfg.FetchAttempts); err != nil {
		return err
	}
	if err := s.setFloatFromString("request-rate", os.Getenv("WISHWATCH_REQUEST_RATE"), &cfg.RequestRate); err != nil {
		return err
	}

	if err := s.setDuration("backoff-base", os.Getenv("WISHWATCH_BACKOFF_BASE"), &cfg.BackoffBase); err != nil {
		return err
	}
	if err := s.setDuration("timeout", os.Getenv("WISHWATCH_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("interval", os.Getenv("WISHWATCH_INTERVAL"), &cfg.Interval); err != nil {
		return err
	}

	s.setBoolFromString("baseline-only", os.Getenv("WISHWATCH_BASELINE_ONLY"), &cfg.BaselineOnly)
	s.setBoolFromString("strict", os.Getenv("WISHWATCH_STRICT"), &cfg.Strict)

	return nil
}
