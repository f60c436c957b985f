package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(vars map[string]string) func(string) string {
	return func(key string) string {
		return vars[key]
	}
}

func validEnv() map[string]string {
	return map[string]string{
		EnvAPIURL: "https://n8n.example.com",
		EnvAPIKey: "secret",
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(LoadOptions{Getenv: envFrom(validEnv())})
	require.NoError(t, err)

	assert.Equal(t, "https://n8n.example.com", cfg.N8N.APIURL)
	assert.Equal(t, "secret", cfg.N8N.APIKey)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ModeStdio, cfg.MCP.Mode)
	assert.Equal(t, "127.0.0.1:3000", cfg.MCP.HTTPAddr)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	env := validEnv()
	env[EnvDatabasePath] = "/var/lib/n8n-mcp/nodes.db"
	env[EnvLogLevel] = "DEBUG"
	env[EnvMode] = "http"
	env[EnvHTTPAddr] = "0.0.0.0:8080"

	cfg, err := Load(LoadOptions{Getenv: envFrom(env)})
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/n8n-mcp/nodes.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, ModeHTTP, cfg.MCP.Mode)
	assert.Equal(t, "0.0.0.0:8080", cfg.MCP.HTTPAddr)
}

func TestLoad_NormalizesURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "https://n8n.example.com", want: "https://n8n.example.com"},
		{raw: "https://n8n.example.com/", want: "https://n8n.example.com"},
		{raw: "https://n8n.example.com/api/v1", want: "https://n8n.example.com"},
		{raw: "https://n8n.example.com/api/v1/", want: "https://n8n.example.com"},
		{raw: "http://localhost:5678/n8n/", want: "http://localhost:5678/n8n"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			env := validEnv()
			env[EnvAPIURL] = tt.raw
			cfg, err := Load(LoadOptions{Getenv: envFrom(env)})
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.N8N.APIURL)
		})
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	env := validEnv()
	delete(env, EnvAPIKey)

	_, err := Load(LoadOptions{Getenv: envFrom(env)})
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))

	var ce *ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, EnvAPIKey, ce.Field)
	assert.Equal(t, ErrorTypeValidation, ce.ErrorType)
	assert.Contains(t, err.Error(), "N8N_API_KEY")
	assert.NotEmpty(t, ce.Suggestions)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantField string
	}{
		{name: "missing url", env: map[string]string{EnvAPIKey: "k"}, wantField: EnvAPIURL},
		{name: "invalid url", env: map[string]string{EnvAPIURL: "not a url", EnvAPIKey: "k"}, wantField: EnvAPIURL},
		{name: "bad log level", env: map[string]string{EnvAPIURL: "http://x", EnvAPIKey: "k", EnvLogLevel: "loud"}, wantField: EnvLogLevel},
		{name: "bad mode", env: map[string]string{EnvAPIURL: "http://x", EnvAPIKey: "k", EnvMode: "sse"}, wantField: EnvMode},
		{name: "bad http addr", env: map[string]string{EnvAPIURL: "http://x", EnvAPIKey: "k", EnvMode: "http", EnvHTTPAddr: "nope"}, wantField: EnvHTTPAddr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(LoadOptions{Getenv: envFrom(tt.env)})
			require.Error(t, err)

			var ce *ConfigurationError
			require.True(t, errors.As(err, &ce), "got %T", err)
			assert.Equal(t, tt.wantField, ce.Field)
		})
	}
}

func TestLoad_MultipleErrors(t *testing.T) {
	_, err := Load(LoadOptions{Getenv: envFrom(map[string]string{})})
	require.Error(t, err)

	var collection *ConfigurationErrorCollection
	require.True(t, errors.As(err, &collection))
	assert.Len(t, collection.Errors, 2)
	assert.Contains(t, err.Error(), "2 configuration errors")
	assert.True(t, IsConfigurationError(err))
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
n8n:
  apiUrl: https://from-file.example.com
  apiKey: file-key
database:
  path: /tmp/file.db
mcp:
  mode: http
  httpAddr: localhost:9000
`), 0o600))

	t.Run("file values", func(t *testing.T) {
		cfg, err := Load(LoadOptions{FilePath: path, Getenv: envFrom(nil)})
		require.NoError(t, err)
		assert.Equal(t, "https://from-file.example.com", cfg.N8N.APIURL)
		assert.Equal(t, "file-key", cfg.N8N.APIKey)
		assert.Equal(t, "/tmp/file.db", cfg.Database.Path)
		assert.Equal(t, ModeHTTP, cfg.MCP.Mode)
		assert.Equal(t, "localhost:9000", cfg.MCP.HTTPAddr)
		assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	})

	t.Run("environment wins", func(t *testing.T) {
		cfg, err := Load(LoadOptions{FilePath: path, Getenv: envFrom(map[string]string{EnvAPIKey: "env-key"})})
		require.NoError(t, err)
		assert.Equal(t, "env-key", cfg.N8N.APIKey)
		assert.Equal(t, "https://from-file.example.com", cfg.N8N.APIURL)
	})
}

func TestLoad_FileErrors(t *testing.T) {
	dir := t.TempDir()
	malformed := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(malformed, []byte("n8n: [unclosed"), 0o600))

	tests := []struct {
		name     string
		path     string
		wantType string
	}{
		{name: "missing file", path: filepath.Join(dir, "absent.yaml"), wantType: ErrorTypeIO},
		{name: "malformed yaml", path: malformed, wantType: ErrorTypeParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(LoadOptions{FilePath: tt.path, Getenv: envFrom(validEnv())})
			require.Error(t, err)

			var ce *ConfigurationError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.wantType, ce.ErrorType)
			assert.Equal(t, tt.path, ce.FilePath)
			assert.Contains(t, ce.DetailedError(), tt.path)
		})
	}
}

func TestIsConfigurationError(t *testing.T) {
	assert.False(t, IsConfigurationError(errors.New("boom")))
	assert.True(t, IsConfigurationError(&ConfigurationError{Message: "x"}))
	assert.True(t, IsConfigurationError(&ConfigurationErrorCollection{}))
}

func TestLoadLocal_IgnoresN8NSettings(t *testing.T) {
	cfg, err := LoadLocal(LoadOptions{Getenv: envFrom(map[string]string{EnvDatabasePath: "/tmp/x.db"})})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.Database.Path)
	assert.Empty(t, cfg.N8N.APIKey)

	_, err = LoadLocal(LoadOptions{Getenv: envFrom(map[string]string{EnvLogLevel: "loud"})})
	assert.True(t, IsConfigurationError(err))
}
