// Package config holds the runtime configuration for mma-odds.
//
// All tuned constants of the extraction pipeline (match threshold, fallback
// sportsbook list, league keyword, retry budgets) live here with defaults
// matching the fightodds.io site, and can be overridden from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// BaseURL is the site root all relative links resolve against.
	BaseURL string `yaml:"base_url"`
	// ScheduleURL is the upcoming-events page the discoverer starts from.
	ScheduleURL string `yaml:"schedule_url"`
	// LeagueKeyword marks an event name as relevant (e.g. "UFC").
	LeagueKeyword string `yaml:"league_keyword"`
	// Source is the provenance tag stamped on every output record.
	Source string `yaml:"source"`

	Match  MatchConfig  `yaml:"match"`
	Fetch  FetchConfig  `yaml:"fetch"`
	Odds   OddsConfig   `yaml:"odds"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// MatchConfig tunes the fuzzy roster matcher.
type MatchConfig struct {
	Threshold   float64 `yaml:"threshold"`
	SubsetBonus float64 `yaml:"subset_bonus"`
}

// FetchConfig tunes the rendering fetcher.
type FetchConfig struct {
	UserAgent string `yaml:"user_agent"`
	// Retries is the number of additional attempts after the first load.
	Retries int `yaml:"retries"`
	// PageTimeout bounds a single page load, settle wait included.
	PageTimeout time.Duration `yaml:"page_timeout"`
	// Settle is how long to wait after navigation for scripts (and the
	// anti-bot interstitial) to finish.
	Settle time.Duration `yaml:"settle"`
	// EventTimeout bounds all fetching for one event (card + odds pages).
	EventTimeout time.Duration `yaml:"event_timeout"`
	Headless     bool          `yaml:"headless"`
}

// OddsConfig tunes the odds-page extractor.
type OddsConfig struct {
	// FallbackSportsbooks is used when the odds table exposes no usable
	// column headers. Column alignment is best-effort in that case.
	FallbackSportsbooks []string `yaml:"fallback_sportsbooks"`
}

type OutputConfig struct {
	CSVPath  string `yaml:"csv_path"`
	JSONPath string `yaml:"json_path"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// Default returns the configuration tuned for fightodds.io.
func Default() *Config {
	return &Config{
		BaseURL:       "https://fightodds.io",
		ScheduleURL:   "https://fightodds.io/upcoming-mma-events/ufc",
		LeagueKeyword: "UFC",
		Source:        "fightodds.io",
		Match: MatchConfig{
			Threshold:   0.6,
			SubsetBonus: 0.2,
		},
		Fetch: FetchConfig{
			UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			Retries:      2,
			PageTimeout:  60 * time.Second,
			Settle:       10 * time.Second,
			EventTimeout: 4 * time.Minute,
			Headless:     true,
		},
		Odds: OddsConfig{
			FallbackSportsbooks: []string{
				"BetOnline", "Bovada", "Bet105", "Jazz", "4Cx", "MyBookie",
				"Bookmaker", "BetAnySports", "BetUS", "DraftKings", "FanDuel",
				"Pinnacle", "Betway", "ESPN", "Circa", "Stake", "BetRivers",
				"BetMGM", "Caesars",
			},
		},
		Output: OutputConfig{
			CSVPath:  "OddsMarketCombo.csv",
			JSONPath: "OddsMarketCombo.json",
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}
