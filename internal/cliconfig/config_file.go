package cliconfig

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors Config but uses strings for durations to keep files readable.
type FileConfig struct {
	Host             string `toml:"host" yaml:"host"`
	Port             int    `toml:"port" yaml:"port"`
	Namespace        string `toml:"namespace" yaml:"namespace"`
	RetryBudget      *int   `toml:"retry_budget" yaml:"retry_budget"`
	RequestTimeout   string `toml:"request_timeout" yaml:"request_timeout"`
	ConnectTimeout   string `toml:"connect_timeout" yaml:"connect_timeout"`
	ReadConsistency  string `toml:"read_consistency" yaml:"read_consistency"`
	WriteConsistency string `toml:"write_consistency" yaml:"write_consistency"`
	LogLevel         string `toml:"log_level" yaml:"log_level"`
	Metrics          *bool  `toml:"metrics" yaml:"metrics"`
}

// LoadFileConfig reads and parses a config file from the given path.
// Files ending in .yaml or .yml are parsed as YAML, anything else as TOML.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &fc)
	default:
		err = toml.Unmarshal(b, &fc)
	}
	if err != nil {
		return FileConfig{}, err
	}

	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.peopledao/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".peopledao", "config.toml")
	}

	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", fc.Host, &cfg.Host)
	s.setString("namespace", fc.Namespace, &cfg.Namespace)
	s.setString("read-consistency", fc.ReadConsistency, &cfg.ReadConsistency)
	s.setString("write-consistency", fc.WriteConsistency, &cfg.WriteConsistency)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setInt("port", fc.Port, &cfg.Port)
	s.setIntPtr("retry-budget", fc.RetryBudget, &cfg.RetryBudget)

	if err := s.setDuration("request-timeout", fc.RequestTimeout, &cfg.RequestTimeout); err != nil {
		return err
	}
	if err := s.setDuration("connect-timeout", fc.ConnectTimeout, &cfg.ConnectTimeout); err != nil {
		return err
	}

	s.setBool("metrics", fc.Metrics, &cfg.Metrics)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
