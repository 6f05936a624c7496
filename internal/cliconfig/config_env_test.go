package cliconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"PEOPLEDAO_HOST":             "env-host",
				"PEOPLEDAO_PORT":             "19042",
				"PEOPLEDAO_NAMESPACE":        "env_ns",
				"PEOPLEDAO_RETRY_BUDGET":     "0",
				"PEOPLEDAO_REQUEST_TIMEOUT":  "2s",
				"PEOPLEDAO_READ_CONSISTENCY": "TWO",
				"PEOPLEDAO_LOG_LEVEL":        "error",
				"PEOPLEDAO_METRICS":          "1",
			},
			changed: map[string]bool{},
			initial: Config{RetryBudget: 1},
			expected: Config{
				Host:            "env-host",
				Port:            19042,
				Namespace:       "env_ns",
				RetryBudget:     0,
				RequestTimeout:  2 * time.Second,
				ReadConsistency: "TWO",
				LogLevel:        "error",
				Metrics:         true,
			},
		},
		{
			name:     "respects changed flags",
			envVars:  map[string]string{"PEOPLEDAO_HOST": "env-host", "PEOPLEDAO_PORT": "19042"},
			changed:  map[string]bool{"host": true},
			initial:  Config{Host: "flag-host"},
			expected: Config{Host: "flag-host", Port: 19042},
		},
		{
			name:     "ignores zero port",
			envVars:  map[string]string{"PEOPLEDAO_PORT": "0"},
			changed:  map[string]bool{},
			initial:  Config{Port: 9042},
			expected: Config{Port: 9042},
		},
		{
			name:    "returns error for invalid duration",
			envVars: map[string]string{"PEOPLEDAO_CONNECT_TIMEOUT": "not-a-duration"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "returns error for negative retry budget",
			envVars: map[string]string{"PEOPLEDAO_RETRY_BUDGET": "-1"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "returns error for negative port",
			envVars: map[string]string{"PEOPLEDAO_PORT": "-9042"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:     "negative value under a changed flag is skipped",
			envVars:  map[string]string{"PEOPLEDAO_RETRY_BUDGET": "-1"},
			changed:  map[string]bool{"retry-budget": true},
			initial:  Config{RetryBudget: 2},
			expected: Config{RetryBudget: 2},
		},
		{
			name:    "returns error for invalid int",
			envVars: map[string]string{"PEOPLEDAO_RETRY_BUDGET": "lots"},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, cfg)
		})
	}
}
