// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/job-hunter/internal/pipeline"
	"github.com/pdiddy/job-hunter/internal/relevance"
	"github.com/pdiddy/job-hunter/internal/search"
	"github.com/pdiddy/job-hunter/internal/secrets"
	"github.com/pdiddy/job-hunter/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "job-hunter/0.1"
)

// bindLegacyEnv lets the Azure OpenAI variables commonly found in .env
// files configure the reasoning endpoint.
func bindLegacyEnv() {
	viper.BindEnv("reasoning.endpoint", "JOB_HUNTER_REASONING_ENDPOINT", "AZURE_OPENAI_ENDPOINT")
	viper.BindEnv("reasoning.deployment", "JOB_HUNTER_REASONING_DEPLOYMENT", "AZURE_OPENAI_DEPLOYMENT_NAME")
	viper.BindEnv("reasoning.api_version", "JOB_HUNTER_REASONING_API_VERSION", "AZURE_OPENAI_API_VERSION")
}

// addSearchFlags registers the flags shared by jobs and careers.
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().String("serpapi-key", "", "SerpAPI key (default: config, .secrets/serpapi-api-key, keyring, SERPAPI_API_KEY)")
	cmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	cmd.Flags().Bool("filter", false, "label results with the language model and drop irrelevant ones")
	cmd.Flags().String("format", "table", "output format: table, json, csv, urls")
	cmd.Flags().String("out", "", "write output to this file instead of stdout")
	cmd.Flags().String("save-run", "", "save the run as a YAML file for later export")
	cmd.Flags().String("save-db", "", "append the run to this SQLite file")
	addReasoningFlags(cmd)
}

// addReasoningFlags registers the language-model endpoint flags.
func addReasoningFlags(cmd *cobra.Command) {
	cmd.Flags().String("llm-provider", "", "language model provider: azure or openai (default azure)")
	cmd.Flags().String("llm-key", "", "language model API key")
	cmd.Flags().String("llm-endpoint", "", "Azure OpenAI resource URL or OpenAI-compatible base URL")
	cmd.Flags().String("llm-deployment", "", "Azure deployment name, or model name for openai")
}

// firstNonEmpty returns the first argument that is not blank.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func timeoutFor(cmd *cobra.Command, key string) time.Duration {
	if t, _ := cmd.Flags().GetDuration("timeout"); t > 0 {
		return t
	}
	if t := viper.GetDuration(key); t > 0 {
		return t
	}
	return defaultTimeout
}

func serpConfig(cmd *cobra.Command) types.SerpConfig {
	key, _ := cmd.Flags().GetString("serpapi-key")
	return types.SerpConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeoutFor(cmd, "serp.timeout"),
			UserAgent: defaultUserAgent,
		},
		APIKey:            secretDefault(secrets.SerpAPIKey, firstNonEmpty(key, viper.GetString("serp.api_key"))),
		Country:           viper.GetString("serp.country"),
		Language:          viper.GetString("serp.language"),
		RequestsPerSecond: viper.GetFloat64("serp.requests_per_second"),
		MaxRetries:        viper.GetInt("serp.max_retries"),
	}
}

func reasoningConfig(cmd *cobra.Command) types.ReasoningConfig {
	flag := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}

	provider := types.ReasoningProvider(strings.ToLower(firstNonEmpty(flag("llm-provider"), viper.GetString("reasoning.provider"), string(types.ProviderAzure))))
	keyName := secrets.AzureOpenAIKey
	if provider == types.ProviderOpenAI {
		keyName = secrets.OpenAIKey
	}

	return types.ReasoningConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeoutFor(cmd, "reasoning.timeout"),
			UserAgent: defaultUserAgent,
		},
		Provider:    provider,
		APIKey:      secretDefault(keyName, firstNonEmpty(flag("llm-key"), viper.GetString("reasoning.api_key"))),
		Endpoint:    firstNonEmpty(flag("llm-endpoint"), viper.GetString("reasoning.endpoint")),
		Deployment:  firstNonEmpty(flag("llm-deployment"), viper.GetString("reasoning.deployment")),
		APIVersion:  viper.GetString("reasoning.api_version"),
		Temperature: viper.GetFloat64("reasoning.temperature"),
		MaxTokens:   viper.GetInt("reasoning.max_tokens"),
	}
}

// pipelineConfig merges flags over the config file. Flags win only when
// set explicitly. An unknown dedup mode from either source is an error.
func pipelineConfig(cmd *cobra.Command) (types.PipelineConfig, error) {
	cfg := types.PipelineConfig{
		MaxResults:            viper.GetInt("pipeline.max_results"),
		Filter:                viper.GetBool("pipeline.filter"),
		CareerResultsPerQuery: viper.GetInt("pipeline.career_results_per_query"),
	}
	dedup := viper.GetString("pipeline.dedup")
	if f := cmd.Flags().Lookup("max-results"); f != nil && f.Changed {
		cfg.MaxResults, _ = cmd.Flags().GetInt("max-results")
	}
	if f := cmd.Flags().Lookup("filter"); f != nil && f.Changed {
		cfg.Filter, _ = cmd.Flags().GetBool("filter")
	}
	if f := cmd.Flags().Lookup("dedup"); f != nil && f.Changed {
		dedup, _ = cmd.Flags().GetString("dedup")
	}
	mode, err := types.ParseDedupMode(dedup)
	if err != nil {
		return cfg, fmt.Errorf("--dedup: %w", err)
	}
	cfg.Dedup = mode
	return cfg, nil
}

// buildDeps wires the SerpAPI client and, when wantEvaluator is set, the
// relevance evaluator. A missing language-model configuration is a warning,
// not an error: the pipeline then reports results unfiltered.
func buildDeps(cmd *cobra.Command, wantEvaluator bool, log io.Writer) pipeline.Deps {
	sc := serpConfig(cmd)
	if sc.APIKey == "" {
		fmt.Fprintln(log, "warning: no SerpAPI key configured; searches will report search unavailable")
	}
	deps := pipeline.Deps{
		Search: search.NewSerpClient(&http.Client{Timeout: sc.Timeout}, sc),
		Log:    log,
	}
	if !wantEvaluator {
		return deps
	}

	rc := reasoningConfig(cmd)
	ev, err := relevance.NewEvaluator(&http.Client{Timeout: rc.Timeout}, rc)
	if err != nil {
		fmt.Fprintf(log, "warning: %v; results will not be filtered\n", err)
		return deps
	}
	deps.Evaluator = ev
	return deps
}

// signalContext is cancelled on interrupt so a long filtering pass stops
// early and labels the rest uncertain.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
