package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Settings are the runtime options shared by the CLI and the TUI
type Settings struct {
	Store     string // memory, file or sqlite
	StorePath string
	RatesFile string
	LogLevel  string
	LogFormat string
	Format    string // default payslip output format
}

// Viper keys
const (
	KeyStore     = "store.backend"
	KeyStorePath = "store.path"
	KeyRatesFile = "rates.file"
	KeyLogLevel  = "logging.level"
	KeyLogFormat = "logging.format"
	KeyFormat    = "output.format"
)

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyStore, "sqlite")
	v.SetDefault(KeyStorePath, "")
	v.SetDefault(KeyRatesFile, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyFormat, "console")
}

// ReadConfig reads cfgFile into v, or searches ~/.config/paygo and the
// working directory for config.yaml when cfgFile is empty. A missing config
// file is not an error. Environment variables prefixed PAYGO_ override the file.
func ReadConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "paygo"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PAYGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// LoadSettings extracts Settings from v, expanding paths
func LoadSettings(v *viper.Viper) (Settings, error) {
	s := Settings{
		Store:     strings.ToLower(v.GetString(KeyStore)),
		StorePath: ExpandPath(v.GetString(KeyStorePath)),
		RatesFile: ExpandPath(v.GetString(KeyRatesFile)),
		LogLevel:  strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat: strings.ToLower(v.GetString(KeyLogFormat)),
		Format:    strings.ToLower(v.GetString(KeyFormat)),
	}

	switch s.Store {
	case "memory", "file", "sqlite":
	default:
		return Settings{}, fmt.Errorf("invalid store backend: %s", s.Store)
	}
	if s.StorePath == "" {
		s.StorePath = DefaultStorePath(s.Store)
	}
	return s, nil
}

// DefaultStorePath returns where the named backend keeps its data by default
func DefaultStorePath(backend string) string {
	dir := ExpandPath("~/.local/share/paygo")
	if backend == "file" {
		return filepath.Join(dir, "paygo.json")
	}
	return filepath.Join(dir, "paygo.db")
}

// ExpandPath expands a leading ~ and environment variables in path
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
