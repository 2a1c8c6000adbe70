package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTOML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFileConfig(t *testing.T) {
	path := writeTOML(t, `
list_url = "https://www.amazon.co.jp/hz/wishlist/ls/ABC123XYZ"
webhook_url = "https://hooks.example.com/T000/B000/XXX"
max_pages = 50
backoff_base = "5s"
interval = "30m"
baseline_only = true
request_rate = 0.5
`)
	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}
	if fc.ListURL != "https://www.amazon.co.jp/hz/wishlist/ls/ABC123XYZ" {
		t.Errorf("ListURL = %q", fc.ListURL)
	}
	if fc.MaxPages != 50 {
		t.Errorf("MaxPages = %d", fc.MaxPages)
	}
	if fc.BaselineOnly == nil || !*fc.BaselineOnly {
		t.Errorf("BaselineOnly = %v, want true", fc.BaselineOnly)
	}
	if fc.RequestRate != 0.5 {
		t.Errorf("RequestRate = %v", fc.RequestRate)
	}
}

func TestLoadFileConfigMalformed(t *testing.T) {
	path := writeTOML(t, `list_url = [broken`)
	if _, err := LoadFileConfig(path); err == nil {
		t.Error("LoadFileConfig succeeded on malformed TOML")
	}
}

func TestApplyFileConfig(t *testing.T) {
	cfg := DefaultConfig()
	no := false
	fc := FileConfig{
		ListURL:      "https://www.amazon.co.jp/hz/wishlist/ls/ABC123XYZ",
		WebhookURL:   "https://hooks.example.com/T000/B000/XXX",
		MaxPages:     50,
		BackoffBase:  "5s",
		Interval:     "30m",
		RequestRate:  0.5,
		BaselineOnly: &no,
	}

	if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}
	if cfg.ListURL != fc.ListURL {
		t.Errorf("ListURL = %q", cfg.ListURL)
	}
	if cfg.MaxPages != 50 {
		t.Errorf("MaxPages = %d, want 50", cfg.MaxPages)
	}
	if cfg.BackoffBase != 5*time.Second {
		t.Errorf("BackoffBase = %v, want 5s", cfg.BackoffBase)
	}
	if cfg.Interval != 30*time.Minute {
		t.Errorf("Interval = %v, want 30m", cfg.Interval)
	}
	if cfg.RequestRate != 0.5 {
		t.Errorf("RequestRate = %v, want 0.5", cfg.RequestRate)
	}
	if cfg.BaselineOnly {
		t.Error("BaselineOnly should stay false when the file says false")
	}
	// Fields the file never mentions keep their defaults.
	if cfg.FetchAttempts != 4 {
		t.Errorf("FetchAttempts = %d, want default 4", cfg.FetchAttempts)
	}
	if cfg.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q, want default", cfg.UserAgent)
	}
}

func TestApplyFileConfigRespectsFlagPrecedence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ListURL = "https://flag.example.com/list"
	cfg.MaxPages = 10

	fc := FileConfig{
		ListURL:  "https://file.example.com/list",
		MaxPages: 50,
		Interval: "1h",
	}
	changed := map[string]bool{"list-url": true, "max-pages": true}

	if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}
	if cfg.ListURL != "https://flag.example.com/list" {
		t.Errorf("ListURL = %q, flag value should win", cfg.ListURL)
	}
	if cfg.MaxPages != 10 {
		t.Errorf("MaxPages = %d, flag value should win", cfg.MaxPages)
	}
	if cfg.Interval != time.Hour {
		t.Errorf("Interval = %v, unflagged field should come from the file", cfg.Interval)
	}
}

func TestApplyFileConfigBadDuration(t *testing.T) {
	cfg := DefaultConfig()
	err := ApplyFileConfig(&cfg, FileConfig{BackoffBase: "soon"}, map[string]bool{})
	if err == nil {
		t.Error("ApplyFileConfig accepted an unparseable duration")
	}
}
