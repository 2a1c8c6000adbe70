package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	wishwatch "github.com/ayumu-labs/wishwatch"
	"github.com/ayumu-labs/wishwatch/internal/cliconfig"
)

const helpDescription = `
Watch a paginated web listing and report additions, removals, and price
changes to a webhook.

Highlights:
  - Follows the listing's continuation pages with cycle and stagnation detection.
  - Retries fetches with exponential backoff; rate limiting is retryable.
  - Persists the last-known snapshot atomically between runs.
  - A failed run is reported to the webhook and never breaks the schedule.
`

var exampleUsage = strings.TrimSpace(`
  wishwatch --list-url https://shop.example/hz/wishlist/ls/XXXXXXXXXX --webhook-url https://hooks.example/T000/B000/xxxx
  wishwatch --config $HOME/.wishwatch/config.toml --interval 30m
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string
	var debugLog bool

	root := &cobra.Command{
		Use:     "wishwatch",
		Short:   "Watch a paginated web listing and report changes to a webhook",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cliconfig.NewLogger(debugLog)

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Precedence: flags > env > file > defaults.
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logCfg := cfg
			if logCfg.WebhookURL != "" {
				logCfg.WebhookURL = "*****"
			}
			log.Info().Interface("config", logCfg).Msg("configuration")

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfg.Interval <= 0 {
				report := wishwatch.Run(ctx, cfg, log)
				if report.Failed() && cfg.Strict {
					os.Exit(1)
				}
				return nil
			}

			runOnInterval(ctx, cfg, cfgFile, changed, log)
			return nil
		},
	}

	fl := root.Flags()
	fl.StringVar(&cfgPath, "config", "", "path to TOML config file (default $HOME/.wishwatch/config.toml)")
	fl.StringVar(&cfg.ListURL, "list-url", cfg.ListURL, "listing start URL")
	fl.StringVar(&cfg.WebhookURL, "webhook-url", cfg.WebhookURL, "webhook endpoint for notifications")
	fl.StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "directory holding the state file")
	fl.StringVar(&cfg.StateFile, "state-file", cfg.StateFile, "state filename")
	fl.IntVar(&cfg.MaxPages, "max-pages", cfg.MaxPages, "hard pagination page cap")
	fl.IntVar(&cfg.FetchAttempts, "attempts", cfg.FetchAttempts, "fetch attempts per page")
	fl.DurationVar(&cfg.BackoffBase, "backoff-base", cfg.BackoffBase, "first retry delay; doubles per failure")
	fl.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "per-request HTTP timeout")
	fl.StringVar(&cfg.UserAgent, "user-agent", cfg.UserAgent, "User-Agent header for listing fetches")
	fl.StringVar(&cfg.AcceptLanguage, "accept-language", cfg.AcceptLanguage, "Accept-Language header for listing fetches")
	fl.Float64Var(&cfg.RequestRate, "request-rate", cfg.RequestRate, "max listing requests per second (0 = unlimited)")
	fl.BoolVar(&cfg.BaselineOnly, "baseline-only", cfg.BaselineOnly, "save the first snapshot without notifying")
	fl.DurationVar(&cfg.Interval, "interval", cfg.Interval, "re-run on this interval (0 = single run)")
	fl.BoolVar(&cfg.Strict, "strict", cfg.Strict, "exit non-zero when a run fails")
	fl.BoolVar(&debugLog, "debug", false, "enable debug logging")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runOnInterval runs the watcher on a timer, picking up config file
// edits between runs.
func runOnInterval(ctx context.Context, cfg cliconfig.Config, cfgFile string, changed map[string]bool, log zerolog.Logger) {
	var mu sync.Mutex

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		watcher := cliconfig.NewConfigWatcher(cfgFile, func(fc cliconfig.FileConfig) {
			next := cliconfig.DefaultConfig()
			if err := cliconfig.ApplyFileConfig(&next, fc, changed); err != nil {
				log.Warn().Err(err).Msg("rejecting config reload")
				return
			}
			if err := cliconfig.ApplyEnvConfig(&next, changed); err != nil {
				log.Warn().Err(err).Msg("rejecting config reload")
				return
			}
			if err := next.Validate(); err != nil {
				log.Warn().Err(err).Msg("rejecting invalid config reload")
				return
			}
			mu.Lock()
			next.Interval = cfg.Interval // interval changes take effect on restart
			cfg = next
			mu.Unlock()
		}, log)
		go watcher.Run(ctx)
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		mu.Lock()
		current := cfg
		mu.Unlock()

		report := wishwatch.Run(ctx, current, log)
		log.Info().Str("outcome", string(report.Outcome)).Int("items", report.ItemCount).Msg("run complete")

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
