package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadFileConfigTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
host = "cassandra.local"
port = 19042
namespace = "people_test"
retry_budget = 0
request_timeout = "750ms"
read_consistency = "LOCAL_QUORUM"
log_level = "debug"
metrics = true
`)

	fc, err := LoadFileConfig(path)
	require.NoError(t, err)
	require.Equal(t, "cassandra.local", fc.Host)
	require.Equal(t, 19042, fc.Port)
	require.Equal(t, "people_test", fc.Namespace)
	require.NotNil(t, fc.RetryBudget)
	require.Equal(t, 0, *fc.RetryBudget)
	require.Equal(t, "750ms", fc.RequestTimeout)
	require.Equal(t, "LOCAL_QUORUM", fc.ReadConsistency)
	require.Equal(t, "debug", fc.LogLevel)
	require.NotNil(t, fc.Metrics)
	require.True(t, *fc.Metrics)
}

func TestLoadFileConfigYAML(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.YML"} {
		path := writeFile(t, name, `
host: cassandra.local
port: 19042
retry_budget: 3
connect_timeout: 2s
write_consistency: quorum
`)

		fc, err := LoadFileConfig(path)
		require.NoError(t, err)
		require.Equal(t, "cassandra.local", fc.Host)
		require.Equal(t, 19042, fc.Port)
		require.Equal(t, 3, *fc.RetryBudget)
		require.Equal(t, "2s", fc.ConnectTimeout)
		require.Equal(t, "quorum", fc.WriteConsistency)
		require.Nil(t, fc.Metrics)
	}
}

func TestLoadFileConfigErrors(t *testing.T) {
	_, err := LoadFileConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	_, err = LoadFileConfig(writeFile(t, "bad.toml", "host = "))
	require.Error(t, err)

	_, err = LoadFileConfig(writeFile(t, "bad.yaml", "host: [unclosed"))
	require.Error(t, err)
}

func TestApplyFileConfig(t *testing.T) {
	budget := 0
	metrics := true

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				Host:           "cassandra.local",
				Port:           19042,
				RetryBudget:    &budget,
				RequestTimeout: "1s",
				LogLevel:       "warn",
				Metrics:        &metrics,
			},
			changed: map[string]bool{},
			initial: Config{RetryBudget: 1},
			expected: Config{
				Host:           "cassandra.local",
				Port:           19042,
				RetryBudget:    0,
				RequestTimeout: time.Second,
				LogLevel:       "warn",
				Metrics:        true,
			},
		},
		{
			name:       "respects changed flags",
			fileConfig: FileConfig{Host: "from-file", Namespace: "file_ns"},
			changed:    map[string]bool{"host": true},
			initial:    Config{Host: "from-flag"},
			expected:   Config{Host: "from-flag", Namespace: "file_ns"},
		},
		{
			name:       "keeps values missing from the file",
			fileConfig: FileConfig{},
			changed:    map[string]bool{},
			initial:    Config{Port: 9042, RetryBudget: 2},
			expected:   Config{Port: 9042, RetryBudget: 2},
		},
		{
			name:       "returns error for invalid duration",
			fileConfig: FileConfig{ConnectTimeout: "soon"},
			changed:    map[string]bool{},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, cfg)
		})
	}
}

func TestFileExists(t *testing.T) {
	require.True(t, FileExists(writeFile(t, "config.toml", "")))
	require.False(t, FileExists(filepath.Join(t.TempDir(), "nope.toml")))
}
