package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by ApplyEnvToConfig.
const (
	EnvUserAgent = "BAZOS_USER_AGENT"
	EnvTimeout   = "BAZOS_TIMEOUT"
	EnvWidth     = "BAZOS_WIDTH"
	// EnvConfig names the config file when --config is not given.
	EnvConfig = "BAZOS_CONFIG"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) error {
	if cfg == nil {
		return nil
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = strings.TrimSpace(os.Getenv(EnvUserAgent))
	}
	if cfg.Timeout == 0 {
		if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", EnvTimeout, err)
			}
			cfg.Timeout = d
		}
	}
	if cfg.Width == 0 {
		if v := strings.TrimSpace(os.Getenv(EnvWidth)); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", EnvWidth, err)
			}
			cfg.Width = n
		}
	}
	return nil
}
