package config

import (
	"os"
	"strconv"
	"time"
)

// Defaults for TheSportsDB and the pipeline.
const (
	DefaultAPIBaseURL  = "https://www.thesportsdb.com/api/v1/json"
	DefaultAPIKey      = "3" // free-tier key
	DefaultLeagueName  = "Spanish Liga ACB"
	DefaultLeagueID    = "4408"
	DefaultSeason      = "2025-2026"
	DefaultNationality = "United States"
	DefaultWikiBaseURL = "https://en.wikipedia.org"
	DefaultDataDir     = "~/.local/share/acbtrack"
	DefaultListenAddr  = ":8080"

	DefaultHTTPTimeout    = 30 * time.Second
	DefaultRequestDelay   = 300 * time.Millisecond
	DefaultMaxElapsedTime = 2 * time.Minute
)

// Config carries every knob the pipeline stages and dashboard need.
// It is initialized once per run and never mutated afterwards.
type Config struct {
	// Source API (TheSportsDB).
	APIBaseURL string
	APIKey     string
	LeagueName string
	LeagueID   string
	Season     string

	// Nationality string that selects which players the pipeline tracks.
	Nationality string

	// Encyclopedia source for supplemental lookups.
	WikiBaseURL string

	// Stage file location.
	DataDir string

	// Dashboard listen address.
	ListenAddr string

	// Network behavior shared by fetcher and resolver.
	HTTPTimeout    time.Duration
	RequestDelay   time.Duration
	MaxElapsedTime time.Duration
}

// New returns a Config with defaults overridden by ACBTRACK_* environment
// variables. CLI flags are applied on top by the caller.
func New() Config {
	cfg := Config{
		APIBaseURL:     DefaultAPIBaseURL,
		APIKey:         DefaultAPIKey,
		LeagueName:     DefaultLeagueName,
		LeagueID:       DefaultLeagueID,
		Season:         DefaultSeason,
		Nationality:    DefaultNationality,
		WikiBaseURL:    DefaultWikiBaseURL,
		DataDir:        DefaultDataDir,
		ListenAddr:     DefaultListenAddr,
		HTTPTimeout:    DefaultHTTPTimeout,
		RequestDelay:   DefaultRequestDelay,
		MaxElapsedTime: DefaultMaxElapsedTime,
	}

	envString(&cfg.APIBaseURL, "ACBTRACK_API_BASE_URL")
	envString(&cfg.APIKey, "ACBTRACK_API_KEY")
	envString(&cfg.LeagueName, "ACBTRACK_LEAGUE_NAME")
	envString(&cfg.LeagueID, "ACBTRACK_LEAGUE_ID")
	envString(&cfg.Season, "ACBTRACK_SEASON")
	envString(&cfg.Nationality, "ACBTRACK_NATIONALITY")
	envString(&cfg.WikiBaseURL, "ACBTRACK_WIKI_BASE_URL")
	envString(&cfg.DataDir, "ACBTRACK_DATA_DIR")
	envString(&cfg.ListenAddr, "ACBTRACK_LISTEN_ADDR")
	envDuration(&cfg.HTTPTimeout, "ACBTRACK_HTTP_TIMEOUT")
	envDuration(&cfg.RequestDelay, "ACBTRACK_REQUEST_DELAY")
	envDuration(&cfg.MaxElapsedTime, "ACBTRACK_MAX_ELAPSED_TIME")

	return cfg
}

func envString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envDuration(dst *time.Duration, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
		return
	}
	// Bare numbers are taken as seconds.
	if secs, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(secs) * time.Second
	}
}
