package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	tabstrip "github.com/jejacks0n/bubbletea-tabstrip"
)

// Config holds the demo application's configuration.
type Config struct {
	Tabs     tabstrip.Config `mapstructure:"tabs"`
	Log      LogConfig       `mapstructure:"log"`
	Cache    CacheConfig     `mapstructure:"cache"`
	Profile  ProfileConfig   `mapstructure:"profile"`
	Business BusinessConfig  `mapstructure:"business"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// ProfileConfig stands in for the signed-in business identity.
type ProfileConfig struct {
	Authenticated bool   `mapstructure:"authenticated"`
	Name          string `mapstructure:"name"`
	Logo          string `mapstructure:"logo"`
}

// BusinessConfig describes the business profile being viewed. An empty Owner
// means the profile belongs to whoever is signed in.
type BusinessConfig struct {
	Owner       string `mapstructure:"owner"`
	Description string `mapstructure:"description"`
}

// DefaultDescription is shown when the business has not written one.
const DefaultDescription = "We build dependable tools for small teams: " +
	"scheduling, invoicing and customer follow-up in one place. " +
	"Founded in 2019, we now serve more than ten thousand customers " +
	"across three continents and still answer every support email ourselves."

// Load reads configuration from path (YAML, TOML or JSON by extension) and
// the environment. Env var overrides use prefix TABSTRIP_. With an empty
// path, $XDG_CONFIG_HOME/tabstrip/config.* is used when present.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("tabs.reserved_width", 0)
	v.SetDefault("tabs.more_label", tabstrip.DefaultMoreLabel)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("profile.authenticated", false)
	v.SetDefault("profile.name", "")
	v.SetDefault("profile.logo", "")
	v.SetDefault("business.owner", "")
	v.SetDefault("business.description", DefaultDescription)

	if path != "" {
		v.SetConfigFile(path)
	} else if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "tabstrip"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TABSTRIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Tabs.ReservedWidth < 0 {
		return Config{}, fmt.Errorf("tabs.reserved_width must not be negative, got %d", c.Tabs.ReservedWidth)
	}
	return c, nil
}
