package app

import (
	"errors"
	"time"

	"github.com/hyperifyio/bazoscrape/internal/fetch"
	"github.com/hyperifyio/bazoscrape/internal/listing"
)

const (
	userAgentHomepage      = "+https://github.com/hyperifyio/bazoscrape"
	defaultTimeout         = 30 * time.Second
	defaultRedirectMaxHops = 5
)

func defaultUserAgent() string {
	return "bazoscrape/" + BuildVersion + " (" + userAgentHomepage + ")"
}

// Config holds runtime configuration for the application.
// Zero values mean "unset" and are filled by ApplyDefaults.
type Config struct {
	// HTTP
	UserAgent       string
	Timeout         time.Duration
	RedirectMaxHops int
	MaxBodyBytes    int64

	// Output
	Width int

	// Page layout
	Markers listing.Markers

	Verbose bool
}

// DefaultConfig returns a Config with every field at its default.
func DefaultConfig() Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return cfg
}

// ApplyDefaults fills fields that are still unset.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RedirectMaxHops == 0 {
		cfg.RedirectMaxHops = defaultRedirectMaxHops
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = fetch.DefaultMaxBodyBytes
	}
	if cfg.Width == 0 {
		cfg.Width = listing.DescriptionWidth
	}
	d := listing.DefaultMarkers
	if cfg.Markers.Title == "" {
		cfg.Markers.Title = d.Title
	}
	if cfg.Markers.Date == "" {
		cfg.Markers.Date = d.Date
	}
	if cfg.Markers.Price == "" {
		cfg.Markers.Price = d.Price
	}
	if cfg.Markers.Description == "" {
		cfg.Markers.Description = d.Description
	}
}

// ValidateConfig rejects settings no run could succeed with.
func ValidateConfig(cfg Config) error {
	if cfg.Timeout < 0 || cfg.RedirectMaxHops < 0 || cfg.MaxBodyBytes < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	if cfg.Width < 0 {
		return errors.New("config: width must not be negative")
	}
	return nil
}
