// Package config loads the YAML configuration of the board application.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/starkmate/starkmate/internal/layout"
	"github.com/starkmate/starkmate/internal/rules"
	"github.com/starkmate/starkmate/internal/storage"
	"gopkg.in/yaml.v3"
)

// Environment overrides.
const (
	EnvLogLevel   = "STARKMATE_LOG_LEVEL"
	EnvBoardWidth = "STARKMATE_BOARD_WIDTH"
	EnvPromotion  = "STARKMATE_PROMOTION"
)

// Config holds all configuration.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Rules   RulesConfig   `yaml:"rules"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
	Window  WindowConfig  `yaml:"window"`
}

// BoardConfig sizes and styles the board.
type BoardConfig struct {
	MaxWidth    float64 `yaml:"max_width"`
	MinWidth    float64 `yaml:"min_width"`
	Breakpoint  float64 `yaml:"breakpoint"`
	MobileRatio float64 `yaml:"mobile_ratio"`
	Width       float64 `yaml:"width"` // optional override of max_width
	Theme       string  `yaml:"theme"`
	AssetsDir   string  `yaml:"assets_dir"` // empty uses the embedded piece set
}

// RulesConfig configures the move validator.
type RulesConfig struct {
	Promotion string `yaml:"promotion"`
}

// StorageConfig configures persistence.
type StorageConfig struct {
	Dir      string `yaml:"dir"`
	InMemory bool   `yaml:"in_memory"`
	Disabled bool   `yaml:"disabled"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// WindowConfig sizes the desktop window.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Board: BoardConfig{
			MaxWidth:    layout.DefaultMaxWidth,
			MinWidth:    layout.DefaultMinWidth,
			Breakpoint:  layout.DefaultBreakpoint,
			MobileRatio: layout.DefaultMobileRatio,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Window: WindowConfig{
			Width:  960,
			Height: 720,
			Title:  "StarkMate",
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvPromotion); v != "" {
		c.Rules.Promotion = strings.ToLower(v)
	}
	if v := os.Getenv(EnvBoardWidth); v != "" {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBoardWidth, err)
		}
		c.Board.Width = w
	}
	return nil
}

// Validate checks the configuration for values the board cannot work with.
func (c *Config) Validate() error {
	b := c.Board
	if b.MaxWidth <= 0 || b.MinWidth <= 0 || b.Breakpoint <= 0 {
		return errors.New("board sizes must be positive")
	}
	if b.MobileRatio <= 0 || b.MobileRatio > 1 {
		return fmt.Errorf("board.mobile_ratio %v outside (0, 1]", b.MobileRatio)
	}
	if b.Width < 0 {
		return fmt.Errorf("board.width %v is negative", b.Width)
	}
	if c.Rules.Promotion != "" {
		if err := rules.ValidatePromotion(c.Rules.Promotion); err != nil {
			return fmt.Errorf("rules.promotion: %w", err)
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging.level %q", c.Logging.Level)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.New("window size must be positive")
	}
	return nil
}

// Sizing returns the layout constants, with the width override applied.
func (c *Config) Sizing() layout.Sizing {
	return layout.Sizing{
		MaxWidth:    c.Board.MaxWidth,
		MinWidth:    c.Board.MinWidth,
		Breakpoint:  c.Board.Breakpoint,
		MobileRatio: c.Board.MobileRatio,
	}.WithWidth(c.Board.Width)
}

// DefaultTheme is the board theme used when neither the config nor the player picked one.
const DefaultTheme = "starkmate"

// Effective returns a copy of c in which settings the config leaves unset are taken from
// the player's stored preferences. Values the config sets always win.
func (c *Config) Effective(prefs *storage.Preferences) *Config {
	eff := *c
	if prefs == nil {
		prefs = &storage.Preferences{}
	}

	if eff.Board.Theme == "" {
		eff.Board.Theme = prefs.Theme
	}
	if eff.Board.Theme == "" {
		eff.Board.Theme = DefaultTheme
	}

	if eff.Board.Width == 0 && prefs.BoardWidth > 0 {
		eff.Board.Width = float64(prefs.BoardWidth)
	}

	if eff.Rules.Promotion == "" {
		eff.Rules.Promotion = strings.ToLower(prefs.Promotion)
	}
	if rules.ValidatePromotion(eff.Rules.Promotion) != nil {
		eff.Rules.Promotion = rules.DefaultPromotion
	}
	return &eff
}
