// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/job-hunter/internal/secrets"
)

var secretsCmd = &cobra.Command{
	Use:   "secrets",
	Short: "Manage API keys in the OS keyring",
}

var secretsSetCmd = &cobra.Command{
	Use:     "set <name>",
	Short:   "Store a key in the OS keyring (value read from stdin)",
	Example: `  echo "$KEY" | job-hunter secrets set serpapi-api-key`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, _ := cmd.Flags().GetString("value")
		if value == "" {
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("reading value from stdin: %w", err)
			}
			value = strings.TrimSpace(line)
		}
		if err := secrets.Store(args[0], value); err != nil {
			return fmt.Errorf("storing %s: %w", args[0], err)
		}
		fmt.Fprintf(os.Stderr, "Stored %s in keyring service %q\n", args[0], secrets.KeyringService)
		return nil
	},
}

var secretsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove a key from the OS keyring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := secrets.Remove(args[0]); err != nil {
			return fmt.Errorf("removing %s: %w", args[0], err)
		}
		fmt.Fprintf(os.Stderr, "Removed %s\n", args[0])
		return nil
	},
}

var secretsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where each known key is found",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range secrets.Known {
			_, src := resolver.Lookup(name)
			if src == secrets.SourceNone {
				src = "missing"
			}
			fmt.Printf("%-22s %s\n", name, src)
		}
	},
}

func init() {
	secretsSetCmd.Flags().String("value", "", "secret value (default: read from stdin)")

	secretsCmd.AddCommand(secretsSetCmd, secretsDeleteCmd, secretsStatusCmd)
	rootCmd.AddCommand(secretsCmd)
}
