package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/arloliu/peopledao"
	"github.com/arloliu/peopledao/types"
)

// DefaultLogLevel is the log level used when none is configured.
const DefaultLogLevel = "info"

// Config holds CLI configuration for peopledao.
type Config struct {
	Host      string
	Port      int
	Namespace string

	RetryBudget    int
	RequestTimeout time.Duration
	ConnectTimeout time.Duration

	ReadConsistency  string
	WriteConsistency string

	LogLevel string
	Metrics  bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Host:             peopledao.DefaultHost,
		Port:             peopledao.DefaultPort,
		Namespace:        peopledao.DefaultNamespace,
		RetryBudget:      peopledao.DefaultRetryBudget,
		RequestTimeout:   peopledao.DefaultRequestTimeout,
		ConnectTimeout:   peopledao.DefaultConnectTimeout,
		ReadConsistency:  peopledao.DefaultReadConsistency.String(),
		WriteConsistency: peopledao.DefaultWriteConsistency.String(),
		LogLevel:         DefaultLogLevel,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, err := c.DAOConfig(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level: %w", err)
	}

	return level, nil
}

// DAOConfig converts the CLI configuration into a validated peopledao.Config.
func (c *Config) DAOConfig() (peopledao.Config, error) {
	read, err := types.ParseConsistency(c.ReadConsistency)
	if err != nil {
		return peopledao.Config{}, fmt.Errorf("read consistency: %w", err)
	}
	write, err := types.ParseConsistency(c.WriteConsistency)
	if err != nil {
		return peopledao.Config{}, fmt.Errorf("write consistency: %w", err)
	}

	cfg := peopledao.Config{
		Host:             c.Host,
		Port:             c.Port,
		Namespace:        c.Namespace,
		RetryBudget:      c.RetryBudget,
		RequestTimeout:   c.RequestTimeout,
		ConnectTimeout:   c.ConnectTimeout,
		ReadConsistency:  read,
		WriteConsistency: write,
	}
	if err := cfg.Validate(); err != nil {
		return peopledao.Config{}, err
	}

	return cfg, nil
}

// configSetter applies configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setIntPtr sets an int value from a pointer, zero included.
func (s *configSetter) setIntPtr(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d

	return nil
}

// setIntFromString parses a string to int and sets the destination.
// Negative values are rejected. allowZero keeps zero values, which are
// otherwise ignored.
func (s *configSetter) setIntFromString(flag, value string, dst *int, allowZero bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i < 0 {
		return fmt.Errorf("parse %s: %d is negative", flag, i)
	}
	if i == 0 && !allowZero {
		return nil
	}
	*dst = i

	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
