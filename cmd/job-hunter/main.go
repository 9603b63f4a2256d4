// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the job-hunter CLI. Subcommands
// search job postings (jobs), find company career pages (careers),
// re-export saved runs (export) and serve the same searches over HTTP
// (serve).
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/job-hunter/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// resolver looks up API keys loaded at startup.
var resolver secrets.Resolver

// secretDefault returns fallback when set, else the resolved secret for
// key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	v, _ := resolver.Lookup(key)
	return v
}

// rootCmd is the base command for the job-hunter CLI.
var rootCmd = &cobra.Command{
	Use:   "job-hunter",
	Short: "Search job postings and company career pages",
	Long: `job-hunter searches job postings and company career pages through
SerpAPI, removes duplicates, and can ask a language model (Azure OpenAI or
an OpenAI-compatible endpoint) to label each result relevant, irrelevant
or uncertain for what you are looking for.

Credentials are read from flags, the config file, files in .secrets/, the
OS keyring and the environment (a .env file is loaded if present).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if err := secrets.LoadDotEnv(envFile); err != nil {
			return err
		}

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir)
		if err != nil {
			return err
		}
		noKeyring, _ := cmd.Flags().GetBool("no-keyring")
		resolver = secrets.Resolver{Files: s, Keyring: !noKeyring}

		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./job-hunter.yaml or ~/.config/job-hunter/job-hunter.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of plain-text secret files")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded into the environment")
	rootCmd.PersistentFlags().Bool("no-keyring", false, "do not look up secrets in the OS keyring")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("job-hunter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "job-hunter"))
		}
	}

	viper.SetEnvPrefix("JOB_HUNTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	bindLegacyEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
