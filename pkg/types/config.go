package types

import (
	"fmt"
	"strings"
	"time"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "job-hunter/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SerpConfig holds settings for the SerpAPI search client.
type SerpConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is the SerpAPI key. Required.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Country and Language are sent as gl and hl (default "us", "en").
	Country  string `json:"country" yaml:"country"`
	Language string `json:"language" yaml:"language"`

	// RequestsPerSecond paces calls to the provider (default 5).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// MaxRetries bounds retries on HTTP 429 inside the client (default 2).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ReasoningProvider selects the language-model backend used by the
// relevance filter.
type ReasoningProvider string

const (
	ProviderAzure  ReasoningProvider = "azure"
	ProviderOpenAI ReasoningProvider = "openai"
)

// ReasoningConfig holds settings for the relevance filter's language-model
// endpoint. Credentials and deployment identifiers are injected through
// this struct; the filter never reads the environment itself.
type ReasoningConfig struct {
	HTTPConfig `yaml:",inline"`

	// Provider is "azure" (Azure OpenAI) or "openai" (OpenAI compatible).
	Provider ReasoningProvider `json:"provider" yaml:"provider"`

	// APIKey authenticates against the endpoint.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Endpoint is the resource URL, e.g. "https://my-resource.openai.azure.com/".
	// For the openai provider an empty endpoint means the public API.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Deployment is the Azure deployment name, or the model name for openai.
	Deployment string `json:"deployment" yaml:"deployment"`

	// APIVersion is the Azure OpenAI api-version (default "2024-02-15-preview").
	APIVersion string `json:"api_version" yaml:"api_version"`

	// Temperature and MaxTokens are sent with each completion request
	// (defaults 0.3 and 500).
	Temperature float64 `json:"temperature" yaml:"temperature"`
	MaxTokens   int     `json:"max_tokens" yaml:"max_tokens"`
}

// Configured reports whether enough fields are set to call the endpoint.
func (c ReasoningConfig) Configured() bool {
	if c.APIKey == "" || c.Deployment == "" {
		return false
	}
	if c.Provider == ProviderAzure || c.Provider == "" {
		return c.Endpoint != ""
	}
	return true
}

// DedupMode selects the dedup key used by the job pipeline.
type DedupMode string

const (
	// DedupDomain keeps one result per registrable domain (or company).
	DedupDomain DedupMode = "domain"
	// DedupListing keeps one result per domain, title and company.
	DedupListing DedupMode = "listing"
)

// ParseDedupMode accepts "domain" or "listing" in any case. A blank value
// selects DedupDomain.
func ParseDedupMode(s string) (DedupMode, error) {
	switch mode := DedupMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return DedupDomain, nil
	case DedupDomain, DedupListing:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown dedup mode %q (want domain or listing)", s)
	}
}

// PipelineConfig holds per-run options shared by both pipelines.
type PipelineConfig struct {
	// MaxResults caps the number of results returned (default 20, max 100).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Filter enables the language-model relevance filter.
	Filter bool `json:"filter" yaml:"filter"`

	// Dedup selects the job pipeline's dedup key (default "domain").
	Dedup DedupMode `json:"dedup" yaml:"dedup"`

	// CareerResultsPerQuery is the result count requested per career
	// strategy query (default 5).
	CareerResultsPerQuery int `json:"career_results_per_query" yaml:"career_results_per_query"`
}

// ServerConfig holds settings for the HTTP surface.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`

	// AllowOrigins lists CORS origins; empty allows all.
	AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
}

// Config groups all configuration read from the config file.
type Config struct {
	Serp      SerpConfig      `json:"serp" yaml:"serp"`
	Reasoning ReasoningConfig `json:"reasoning" yaml:"reasoning"`
	Pipeline  PipelineConfig  `json:"pipeline" yaml:"pipeline"`
	Server    ServerConfig    `json:"server" yaml:"server"`
}
