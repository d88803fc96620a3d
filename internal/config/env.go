package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadServerSettings.
const (
	EnvPort        = "TAXCALC_PORT"
	EnvRedisAddr   = "TAXCALC_REDIS_ADDR"
	EnvDefaultYear = "TAXCALC_DEFAULT_YEAR"
	EnvRulesFile   = "TAXCALC_RULES_FILE"
	EnvCacheTTL    = "TAXCALC_CACHE_TTL"
)

// ServerSettings configures the HTTP server.
type ServerSettings struct {
	Port        int
	RedisAddr   string // empty selects the in-memory cache
	DefaultYear string
	RulesFile   string
	CacheTTL    time.Duration
}

// DefaultServerSettings returns the settings used when nothing is configured.
func DefaultServerSettings() ServerSettings {
	return ServerSettings{
		Port:        8080,
		DefaultYear: DefaultAssessmentYear,
		CacheTTL:    time.Hour,
	}
}

// LoadServerSettings loads envFile (if present) into the process environment
// and reads the TAXCALC_* variables over the defaults. A missing env file is
// not an error; variables already set in the environment win.
func LoadServerSettings(envFile string) (ServerSettings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return ServerSettings{}, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	s := DefaultServerSettings()
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return ServerSettings{}, fmt.Errorf("%s: invalid port %q", EnvPort, v)
		}
		s.Port = port
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		s.RedisAddr = v
	}
	if v := os.Getenv(EnvDefaultYear); v != "" {
		s.DefaultYear = v
	}
	if v := os.Getenv(EnvRulesFile); v != "" {
		s.RulesFile = v
	}
	if v := os.Getenv(EnvCacheTTL); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl < 0 {
			return ServerSettings{}, fmt.Errorf("%s: invalid duration %q", EnvCacheTTL, v)
		}
		s.CacheTTL = ttl
	}
	return s, nil
}
