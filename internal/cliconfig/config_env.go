package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (PEOPLEDAO_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", os.Getenv("PEOPLEDAO_HOST"), &cfg.Host)
	s.setString("namespace", os.Getenv("PEOPLEDAO_NAMESPACE"), &cfg.Namespace)
	s.setString("read-consistency", os.Getenv("PEOPLEDAO_READ_CONSISTENCY"), &cfg.ReadConsistency)
	s.setString("write-consistency", os.Getenv("PEOPLEDAO_WRITE_CONSISTENCY"), &cfg.WriteConsistency)
	s.setString("log-level", os.Getenv("PEOPLEDAO_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setIntFromString("port", os.Getenv("PEOPLEDAO_PORT"), &cfg.Port, false); err != nil {
		return err
	}
	if err := s.setIntFromString("retry-budget", os.Getenv("PEOPLEDAO_RETRY_BUDGET"), &cfg.RetryBudget, true); err != nil {
		return err
	}

	if err := s.setDuration("request-timeout", os.Getenv("PEOPLEDAO_REQUEST_TIMEOUT"), &cfg.RequestTimeout); err != nil {
		return err
	}
	if err := s.setDuration("connect-timeout", os.Getenv("PEOPLEDAO_CONNECT_TIMEOUT"), &cfg.ConnectTimeout); err != nil {
		return err
	}

	s.setBoolFromString("metrics", os.Getenv("PEOPLEDAO_METRICS"), &cfg.Metrics)

	return nil
}
