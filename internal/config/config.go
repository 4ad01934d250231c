// Package config loads the explicit application configuration from viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyDatabasePath    = "database.path"
	KeyBudgetThreshold = "budget.threshold"
	KeyCurrency        = "display.currency"
	KeySeedCategories  = "categories.seed"
	KeyLogLevel        = "logging.level"
	KeyLogFormat       = "logging.format"
)

// DefaultDatabasePath is used when database.path is unset.
const DefaultDatabasePath = "$HOME/.local/share/tally/tally.db"

// DefaultThreshold is the fraction of a budget at which a warning is raised.
const DefaultThreshold = 0.8

// DefaultCurrency prefixes formatted amounts.
const DefaultCurrency = "¥"

// SeedCategory is a category inserted on first start.
type SeedCategory struct {
	Name     string `mapstructure:"name"`
	Keywords string `mapstructure:"keywords"`
}

// Config is the process-wide initialization data, built once at startup and
// passed down explicitly.
type Config struct {
	DatabasePath   string
	Currency       string
	LogLevel       string
	LogFormat      string
	SeedCategories []SeedCategory
	Threshold      float64
}

// DefaultSeedCategories returns the categories created for an empty ledger.
func DefaultSeedCategories() []SeedCategory {
	return []SeedCategory{
		{Name: "Dining", Keywords: "starbucks,mcdonalds,milk tea,restaurant,food"},
		{Name: "Transport", Keywords: "subway,metro,bus,taxi"},
		{Name: "Shopping", Keywords: "taobao,jd,supermarket,grocery"},
		{Name: "Entertainment", Keywords: "movie,game,ktv,concert"},
	}
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyBudgetThreshold, DefaultThreshold)
	v.SetDefault(KeyCurrency, DefaultCurrency)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

// Load builds a Config from v. Values missing from v fall back to defaults.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		DatabasePath: ExpandPath(v.GetString(KeyDatabasePath)),
		Threshold:    v.GetFloat64(KeyBudgetThreshold),
		Currency:     v.GetString(KeyCurrency),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
	}

	if v.IsSet(KeySeedCategories) {
		if err := v.UnmarshalKey(KeySeedCategories, &cfg.SeedCategories); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", common.ErrInvalidConfig, KeySeedCategories, err)
		}
	} else {
		cfg.SeedCategories = DefaultSeedCategories()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the application cannot use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("%w: %s is empty", common.ErrInvalidConfig, KeyDatabasePath)
	}
	if c.Threshold <= 0 || c.Threshold > 1 {
		return fmt.Errorf("%w: %s must be in (0, 1], got %v", common.ErrInvalidConfig, KeyBudgetThreshold, c.Threshold)
	}
	for i, seed := range c.SeedCategories {
		if strings.TrimSpace(seed.Name) == "" {
			return fmt.Errorf("%w: %s[%d] has no name", common.ErrInvalidConfig, KeySeedCategories, i)
		}
	}
	return nil
}

// Categories converts the seed list to model categories.
func (c *Config) Categories() []model.Category {
	cats := make([]model.Category, 0, len(c.SeedCategories))
	for _, seed := range c.SeedCategories {
		cats = append(cats, model.Category{Name: seed.Name, RawKeywords: seed.Keywords})
	}
	return cats
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}
