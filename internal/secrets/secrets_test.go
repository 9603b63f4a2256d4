// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) string
		want   map[string]string
		errMsg string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "serpapi-api-key", "  serp_abc123  \n")
				writeFile(t, dir, "azure-openai-api-key", "az_xyz789")
				writeFile(t, dir, "openai-api-key", "sk-proj-1\n")
				return dir
			},
			want: map[string]string{
				"serpapi-api-key":      "serp_abc123",
				"azure-openai-api-key": "az_xyz789",
				"openai-api-key":       "sk-proj-1",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "serpapi-api-key", "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: map[string]string{
				"serpapi-api-key": "valid-key",
			},
		},
		{
			name: "skips dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, "openai-api-key", "sk_real")
				return dir
			},
			want: map[string]string{
				"openai-api-key": "sk_real",
			},
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "azure-openai-api-key", "ak_123")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{
				"azure-openai-api-key": "ak_123",
			},
		},
		{
			name: "returns empty map for empty directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Load(dir)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good-key", "value123")

	// Create a file then remove read permission.
	badPath := filepath.Join(dir, "bad-key")
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	got, err := Load(dir)
	require.NoError(t, err)
	// The good file should still be returned; the bad file is skipped with a warning.
	assert.Equal(t, "value123", got["good-key"])
	_, hasBad := got["bad-key"]
	assert.False(t, hasBad, "unreadable file should not appear in result")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestResolverLookupOrder(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, keyring.Set(KeyringService, SerpAPIKey, "from-keyring"))
	require.NoError(t, keyring.Set(KeyringService, AzureOpenAIKey, "az-from-keyring"))
	t.Setenv("SERPAPI_API_KEY", "from-env")
	t.Setenv("AZURE_OPENAI_API_KEY", "az-from-env")
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	r := Resolver{Files: map[string]string{SerpAPIKey: "from-file"}, Keyring: true}

	v, src := r.Lookup(SerpAPIKey)
	assert.Equal(t, "from-file", v)
	assert.Equal(t, SourceFile, src)

	v, src = r.Lookup(AzureOpenAIKey)
	assert.Equal(t, "az-from-keyring", v)
	assert.Equal(t, SourceKeyring, src)

	v, src = r.Lookup(OpenAIKey)
	assert.Equal(t, "sk-from-env", v)
	assert.Equal(t, SourceEnv, src)

	r.Keyring = false
	v, src = r.Lookup(AzureOpenAIKey)
	assert.Equal(t, "az-from-env", v)
	assert.Equal(t, SourceEnv, src)
}

func TestResolverLookupMissing(t *testing.T) {
	keyring.MockInit()
	t.Setenv("OPENAI_API_KEY", "")
	v, src := Resolver{Keyring: true}.Lookup(OpenAIKey)
	assert.Empty(t, v)
	assert.Equal(t, SourceNone, src)
}

func TestStoreAndRemove(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, Store(SerpAPIKey, " serp-123 \n"))

	got, err := keyring.Get(KeyringService, SerpAPIKey)
	require.NoError(t, err)
	assert.Equal(t, "serp-123", got)

	require.NoError(t, Remove(SerpAPIKey))
	require.NoError(t, Remove(SerpAPIKey), "removing a missing entry is not an error")
	_, err = keyring.Get(KeyringService, SerpAPIKey)
	assert.ErrorIs(t, err, keyring.ErrNotFound)

	assert.Error(t, Store("", "v"))
	assert.Error(t, Store(SerpAPIKey, "  "))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	writeFile(t, dir, ".env", "JOB_HUNTER_TEST_DOTENV=loaded\nJOB_HUNTER_TEST_PRESET=from-file\n")
	t.Setenv("JOB_HUNTER_TEST_PRESET", "from-env")
	t.Setenv("JOB_HUNTER_TEST_DOTENV", "")
	os.Unsetenv("JOB_HUNTER_TEST_DOTENV")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("JOB_HUNTER_TEST_DOTENV"))
	assert.Equal(t, "from-env", os.Getenv("JOB_HUNTER_TEST_PRESET"), "existing variables win")

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "SERPAPI_API_KEY", EnvName(SerpAPIKey))
	assert.Equal(t, "AZURE_OPENAI_API_KEY", EnvName(AzureOpenAIKey))
}
