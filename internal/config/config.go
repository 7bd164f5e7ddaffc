package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fragmede/hnsearch/internal/api"
	"github.com/fragmede/hnsearch/internal/lifecycle"
	"github.com/fragmede/hnsearch/internal/listview"
)

type Config struct {
	CacheDir     string
	DBPath       string
	LogPath      string
	Endpoint     string
	SearchKey    string
	Mode         string
	Policy       string
	Where        string
	NoCache      bool
	FetchTimeout time.Duration
	ResultTTL    time.Duration
	Retries      int
	RetryBackoff time.Duration
	Pages        int
	HistoryLimit int
}

func Default() Config {
	cacheDir := filepath.Join(userConfigDir(), "hnsearch")
	return Config{
		CacheDir:     cacheDir,
		DBPath:       filepath.Join(cacheDir, "hnsearch.db"),
		LogPath:      filepath.Join(cacheDir, "debug.log"),
		Endpoint:     api.DefaultEndpoint,
		SearchKey:    "search",
		Mode:         "server",
		Policy:       "latest",
		FetchTimeout: 10 * time.Second,
		ResultTTL:    60 * time.Second,
		Retries:      2,
		RetryBackoff: 500 * time.Millisecond,
		Pages:        1,
		HistoryLimit: 20,
	}
}

// FromEnv applies HNSEARCH_* overrides on top of c.
func (c Config) FromEnv() Config {
	if v := os.Getenv("HNSEARCH_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("HNSEARCH_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("HNSEARCH_MODE"); v != "" {
		c.Mode = v
	}
	if v := os.Getenv("HNSEARCH_LOG"); v != "" {
		c.LogPath = v
	}
	return c
}

// Validate checks the fields that have no sensible fallback.
func (c Config) Validate() error {
	if _, err := listview.ParseMode(c.Mode); err != nil {
		return err
	}
	if _, ok := lifecycle.ParsePolicy(c.Policy); !ok {
		return fmt.Errorf("unknown policy %q (want latest or last-write-wins)", c.Policy)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %s", c.FetchTimeout)
	}
	if c.Pages < 1 {
		return fmt.Errorf("pages must be at least 1, got %d", c.Pages)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative, got %d", c.Retries)
	}
	if c.SearchKey == "" {
		return fmt.Errorf("search key must not be empty")
	}
	return nil
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}
