// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves API keys for the search provider and the
// language model. Keys are looked up, in order, in a directory of
// plain-text files, the OS keyring, and the process environment (which may
// be seeded from a .env file).
//
// In the secrets directory each file is one secret: the filename is the key
// name and the trimmed file contents are the value.
//
// Supported key names: serpapi-api-key, azure-openai-api-key, openai-api-key.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/zalando/go-keyring"
)

// Key names.
const (
	SerpAPIKey     = "serpapi-api-key"
	AzureOpenAIKey = "azure-openai-api-key"
	OpenAIKey      = "openai-api-key"
)

// KeyringService groups this tool's entries in the OS keychain.
const KeyringService = "job-hunter"

// Known lists the key names the CLI reads.
var Known = []string{SerpAPIKey, AzureOpenAIKey, OpenAIKey}

// Source says where a secret was found.
type Source string

const (
	SourceNone    Source = ""
	SourceFile    Source = "file"
	SourceKeyring Source = "keyring"
	SourceEnv     Source = "env"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// LoadDotEnv adds variables from the .env file at path to the process
// environment without overriding variables already set. A missing file is
// not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Resolver looks a key up across the configured sources.
type Resolver struct {
	// Files holds secrets loaded from the secrets directory.
	Files map[string]string

	// Keyring enables the OS keyring lookup.
	Keyring bool
}

// Lookup returns the value for name and where it was found. The
// environment variable for a key is its upper-cased name with dashes
// replaced by underscores, e.g. SERPAPI_API_KEY.
func (r Resolver) Lookup(name string) (string, Source) {
	if v := strings.TrimSpace(r.Files[name]); v != "" {
		return v, SourceFile
	}
	if r.Keyring {
		v, err := keyring.Get(KeyringService, name)
		if err == nil && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), SourceKeyring
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvName(name))); v != "" {
		return v, SourceEnv
	}
	return "", SourceNone
}

// EnvName maps a key name to its environment variable.
func EnvName(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// Store saves value for name in the OS keyring.
func Store(name, value string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("secret name is empty")
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("secret value is empty")
	}
	return keyring.Set(KeyringService, name, strings.TrimSpace(value))
}

// Remove deletes name from the OS keyring. A missing entry is not an error.
func Remove(name string) error {
	if err := keyring.Delete(KeyringService, name); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}
