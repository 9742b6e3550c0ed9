// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	APIURL          string
	APIToken        string
	RequestTimeout  time.Duration
	ListenAddr      string
	DBPath          string
	DefaultPageSize int
	DefaultOrderBy  string
}

// Load reads configuration from environment variables and returns a validated
// Config. CREDPANEL_API_URL is required; CREDPANEL_API_TOKEN is optional (the
// controller may allow anonymous reads). Optional variables with defaults:
// CREDPANEL_REQUEST_TIMEOUT (30s), CREDPANEL_LISTEN_ADDR (127.0.0.1:8080),
// CREDPANEL_DB_PATH (credpanel.db), CREDPANEL_PAGE_SIZE (20),
// CREDPANEL_ORDER_BY (name).
func Load() (*Config, error) {
	apiURL := os.Getenv("CREDPANEL_API_URL")
	if apiURL == "" {
		return nil, fmt.Errorf("CREDPANEL_API_URL is required")
	}
	if _, err := url.Parse(apiURL); err != nil {
		return nil, fmt.Errorf("CREDPANEL_API_URL is not a valid URL %q: %w", apiURL, err)
	}

	token := os.Getenv("CREDPANEL_API_TOKEN")

	requestTimeout := 30 * time.Second
	if v, ok := os.LookupEnv("CREDPANEL_REQUEST_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("CREDPANEL_REQUEST_TIMEOUT has invalid duration %q: %w", v, err)
		}
		requestTimeout = parsed
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("CREDPANEL_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "credpanel.db"
	if v, ok := os.LookupEnv("CREDPANEL_DB_PATH"); ok {
		dbPath = v
	}

	pageSize := 20
	if v, ok := os.LookupEnv("CREDPANEL_PAGE_SIZE"); ok {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("CREDPANEL_PAGE_SIZE must be a positive integer, got %q", v)
		}
		pageSize = parsed
	}

	orderBy := "name"
	if v, ok := os.LookupEnv("CREDPANEL_ORDER_BY"); ok && v != "" {
		orderBy = v
	}

	return &Config{
		APIURL:          apiURL,
		APIToken:        token,
		RequestTimeout:  requestTimeout,
		ListenAddr:      listenAddr,
		DBPath:          dbPath,
		DefaultPageSize: pageSize,
		DefaultOrderBy:  orderBy,
	}, nil
}
