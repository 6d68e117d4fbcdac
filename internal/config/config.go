package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/reel/internal/raw"
)

type Config struct {
	// Cache settings
	CacheBudgetMB  int `koanf:"cache_budget_mb"` // memory budget for decoded frames (default: 512)
	CachingWorkers int `koanf:"caching_workers"` // background decode goroutines (default: NumCPU, capped at 4)

	// Display settings
	DefaultZoom float64 `koanf:"default_zoom"` // initial zoom factor (default: fit handled by UI, 1.0 here)

	// Decoding defaults for files that carry no metadata
	DefaultFrameRate float64 `koanf:"default_frame_rate"` // fps fallback (default: 25)
	DefaultFormat    string  `koanf:"default_format"`     // pixel format fallback (default: yuv420p)

	// Desktop notifications on caching completion
	Notifications *bool `koanf:"notifications"` // default: true
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/reel/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "reel", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

// CacheBudgetBytes returns the cache memory budget with defaults applied.
func (c *Config) CacheBudgetBytes() int64 {
	mb := c.CacheBudgetMB
	if mb <= 0 {
		mb = 512
	}
	return int64(mb) << 20
}

// GetCachingWorkers returns the worker count with defaults applied.
func (c *Config) GetCachingWorkers() int {
	if c.CachingWorkers > 0 {
		return c.CachingWorkers
	}
	n := runtime.NumCPU()
	if n > 4 {
		n = 4
	}
	if n < 1 {
		n = 1
	}
	return n
}

// GetDefaultZoom returns the initial zoom with defaults applied.
func (c *Config) GetDefaultZoom() float64 {
	if c.DefaultZoom > 0 {
		return c.DefaultZoom
	}
	return 1.0
}

// GetDefaultFrameRate returns the fps fallback with defaults applied.
func (c *Config) GetDefaultFrameRate() float64 {
	if c.DefaultFrameRate > 0 {
		return c.DefaultFrameRate
	}
	return 25
}

// GetDefaultFormat returns the pixel format fallback with defaults applied.
func (c *Config) GetDefaultFormat() raw.PixelFormat {
	if c.DefaultFormat != "" {
		if f, err := raw.ParseFormat(c.DefaultFormat); err == nil {
			return f
		}
	}
	return raw.FormatYUV420p
}

// NotificationsEnabled returns whether caching notifications are on.
func (c *Config) NotificationsEnabled() bool {
	if c.Notifications == nil {
		return true
	}
	return *c.Notifications
}
