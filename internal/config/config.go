// Package config manages application configuration from files and
// environment variables. Configuration is loaded into an explicit value
// handed to the commands; no package-level state carries between runs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mkalv/faktura/internal/layouts"
)

// Config holds the aggregation run defaults.
type Config struct {
	Layout  string  `mapstructure:"layout"`
	OutDir  string  `mapstructure:"out_dir"`
	Format  string  `mapstructure:"format"`
	VATRate float64 `mapstructure:"vat_rate"`
	Output  struct {
		Color bool `mapstructure:"color"`
	} `mapstructure:"output"`
}

// Load reads ~/.faktura/config.yaml and FAKTURA_* environment variables.
// A missing config file is fine; defaults apply.
func Load() (*Config, error) {
	v := newViper()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Set writes one key into the config file, preserving the rest.
func Set(key, value string) error {
	v := newViper()
	if !knownKey(key) {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(knownKeys, ", "))
	}
	v.Set(key, value)
	return save(v)
}

// Get returns the effective value for one key, defaults included.
func Get(key string) string {
	return newViper().GetString(key)
}

// Show returns a formatted view of the effective configuration.
func Show() string {
	v := newViper()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config: %s\n\n", Path()))
	sb.WriteString("Aggregation\n")
	sb.WriteString(fmt.Sprintf("  layout:    %s\n", v.GetString("layout")))
	sb.WriteString(fmt.Sprintf("  out_dir:   %s\n", v.GetString("out_dir")))
	sb.WriteString(fmt.Sprintf("  format:    %s\n", v.GetString("format")))
	sb.WriteString(fmt.Sprintf("  vat_rate:  %s\n", v.GetString("vat_rate")))
	sb.WriteString("\nOutput\n")
	sb.WriteString(fmt.Sprintf("  color:     %v\n", v.GetBool("output.color")))
	return sb.String()
}

// Reset deletes the config file; defaults apply again.
func Reset() error {
	if err := os.Remove(Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not delete config: %w", err)
	}
	return nil
}

// Path returns the config file location.
func Path() string {
	return filepath.Join(configDir(), "config.yaml")
}

var knownKeys = []string{"layout", "out_dir", "format", "vat_rate", "output.color"}

func knownKey(key string) bool {
	for _, k := range knownKeys {
		if k == key {
			return true
		}
	}
	return false
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir())

	v.SetDefault("layout", "serija")
	v.SetDefault("out_dir", "out")
	v.SetDefault("format", "csv")
	v.SetDefault("vat_rate", layouts.DefaultVATRate)
	v.SetDefault("output.color", true)

	v.SetEnvPrefix("FAKTURA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.ReadInConfig()
	return v
}

func save(v *viper.Viper) error {
	dir := configDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	if err := v.WriteConfigAs(Path()); err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}
	return nil
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".faktura"
	}
	return filepath.Join(home, ".faktura")
}
