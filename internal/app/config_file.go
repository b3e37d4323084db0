package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	UserAgent       string `yaml:"userAgent" json:"userAgent"`
	Timeout         string `yaml:"timeout" json:"timeout"`
	RedirectMaxHops int    `yaml:"redirectMaxHops" json:"redirectMaxHops"`
	MaxBodyBytes    int64  `yaml:"maxBodyBytes" json:"maxBodyBytes"`
	Width           int    `yaml:"width" json:"width"`
	Verbose         bool   `yaml:"verbose" json:"verbose"`

	Markers struct {
		Title       string `yaml:"title" json:"title"`
		Date        string `yaml:"date" json:"date"`
		Price       string `yaml:"price" json:"price"`
		Description string `yaml:"description" json:"description"`
	} `yaml:"markers" json:"markers"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from fc onto fields of cfg that are still
// unset. Flags are applied before this, so they win over the file.
func ApplyFileConfig(cfg *Config, fc FileConfig) error {
	if cfg == nil {
		return nil
	}
	if cfg.UserAgent == "" && fc.UserAgent != "" {
		cfg.UserAgent = fc.UserAgent
	}
	if cfg.Timeout == 0 && fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("config: timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if cfg.RedirectMaxHops == 0 && fc.RedirectMaxHops > 0 {
		cfg.RedirectMaxHops = fc.RedirectMaxHops
	}
	if cfg.MaxBodyBytes == 0 && fc.MaxBodyBytes > 0 {
		cfg.MaxBodyBytes = fc.MaxBodyBytes
	}
	if cfg.Width == 0 && fc.Width > 0 {
		cfg.Width = fc.Width
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
	if cfg.Markers.Title == "" && fc.Markers.Title != "" {
		cfg.Markers.Title = fc.Markers.Title
	}
	if cfg.Markers.Date == "" && fc.Markers.Date != "" {
		cfg.Markers.Date = fc.Markers.Date
	}
	if cfg.Markers.Price == "" && fc.Markers.Price != "" {
		cfg.Markers.Price = fc.Markers.Price
	}
	if cfg.Markers.Description == "" && fc.Markers.Description != "" {
		cfg.Markers.Description = fc.Markers.Description
	}
	return nil
}
