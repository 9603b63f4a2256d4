// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"fmt"
	"net/http"

	"github.com/tmc/langchaingo/llms/openai"

	"github.com/pdiddy/job-hunter/internal/httputil"
	"github.com/pdiddy/job-hunter/pkg/types"
)

const (
	defaultAPIVersion  = "2024-02-15-preview"
	defaultTemperature = 0.3
	defaultMaxTokens   = 500

	// modelRetries bounds retries on HTTP 429 for one evaluation.
	modelRetries = 1
)

// NewAzureEvaluator labels results through an Azure OpenAI chat
// completions deployment. Requests go to
// {endpoint}/openai/deployments/{deployment}/chat/completions with the
// api-key header, and the reply limit is sent as max_tokens.
func NewAzureEvaluator(client *http.Client, cfg types.ReasoningConfig) (*LangChainEvaluator, error) {
	cfg = withDefaults(cfg)
	llm, err := openai.New(
		openai.WithAPIType(openai.APITypeAzure),
		openai.WithBaseURL(cfg.Endpoint),
		openai.WithAPIVersion(cfg.APIVersion),
		openai.WithModel(cfg.Deployment),
		openai.WithToken(cfg.APIKey),
		openai.WithHTTPClient(retryClient(client, cfg)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: creating Azure OpenAI client: %v", ErrReasoningUnavailable, err)
	}
	return &LangChainEvaluator{
		Model:           llm,
		Temperature:     cfg.Temperature,
		MaxTokens:       cfg.MaxTokens,
		LegacyMaxTokens: true,
	}, nil
}

func retryClient(client *http.Client, cfg types.ReasoningConfig) *httputil.RetryClient {
	return &httputil.RetryClient{Client: client, MaxRetries: modelRetries, UserAgent: cfg.UserAgent}
}

func withDefaults(cfg types.ReasoningConfig) types.ReasoningConfig {
	if cfg.APIVersion == "" {
		cfg.APIVersion = defaultAPIVersion
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	return cfg
}
