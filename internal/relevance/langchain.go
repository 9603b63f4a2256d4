// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/pdiddy/job-hunter/pkg/types"
)

// openAIBaseURL is used when the openai provider has no endpoint, so the
// client never falls back to OPENAI_BASE_URL from the environment.
const openAIBaseURL = "https://api.openai.com/v1"

// LangChainEvaluator labels results through any langchaingo model. Both
// the Azure and the OpenAI providers are built on it.
type LangChainEvaluator struct {
	Model       llms.Model
	Temperature float64
	MaxTokens   int

	// LegacyMaxTokens sends the reply limit as max_tokens instead of
	// max_completion_tokens.
	LegacyMaxTokens bool
}

// NewOpenAIEvaluator builds a LangChainEvaluator backed by langchaingo's
// OpenAI provider. An empty cfg.Endpoint targets the public API.
func NewOpenAIEvaluator(client *http.Client, cfg types.ReasoningConfig) (*LangChainEvaluator, error) {
	cfg = withDefaults(cfg)
	baseURL := cfg.Endpoint
	if baseURL == "" {
		baseURL = openAIBaseURL
	}

	llm, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Deployment),
		openai.WithBaseURL(baseURL),
		openai.WithHTTPClient(retryClient(client, cfg)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: creating OpenAI client: %v", ErrReasoningUnavailable, err)
	}
	return &LangChainEvaluator{Model: llm, Temperature: cfg.Temperature, MaxTokens: cfg.MaxTokens}, nil
}

// Evaluate sends the system prompt and the verdict prompt as one chat
// exchange.
func (l *LangChainEvaluator) Evaluate(ctx context.Context, candidate types.NormalizedResult, intent string) (types.Verdict, error) {
	prompt, err := renderPrompt(candidate, intent)
	if err != nil {
		return types.Verdict{}, fmt.Errorf("rendering prompt: %w", err)
	}

	msgs := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}
	opts := []llms.CallOption{llms.WithTemperature(l.Temperature)}
	if l.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(l.MaxTokens))
	}
	if l.LegacyMaxTokens {
		opts = append(opts, openai.WithLegacyMaxTokensField())
	}

	resp, err := l.Model.GenerateContent(ctx, msgs, opts...)
	if err != nil {
		return types.Verdict{}, fmt.Errorf("%w: %v", ErrReasoningUnavailable, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return types.Verdict{}, fmt.Errorf("%w: model returned no choices", ErrReasoningUnavailable)
	}
	return parseVerdict(resp.Choices[0].Content)
}

// NewEvaluator returns the evaluator for cfg.Provider. The azure provider
// is the default.
func NewEvaluator(client *http.Client, cfg types.ReasoningConfig) (Evaluator, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("%w: language model is not configured", ErrReasoningUnavailable)
	}
	switch cfg.Provider {
	case types.ProviderAzure, "":
		return NewAzureEvaluator(client, cfg)
	case types.ProviderOpenAI:
		return NewOpenAIEvaluator(client, cfg)
	default:
		return nil, fmt.Errorf("unknown reasoning provider %q", cfg.Provider)
	}
}
