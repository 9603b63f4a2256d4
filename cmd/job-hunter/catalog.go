// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/job-hunter/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List built-in companies and facet values",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := types.DefaultCatalog()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(cat)
		}

		fmt.Println("Companies:")
		for i, c := range cat.Companies {
			fmt.Printf("  %2d. %s\n", i+1, c)
		}
		fmt.Printf("Employment types:  %s\n", strings.Join(cat.EmploymentTypes, ", "))
		fmt.Printf("Work modes:        %s\n", strings.Join(cat.WorkModes, ", "))
		fmt.Printf("Experience levels: %s\n", strings.Join(cat.ExperienceLevels, ", "))
		return nil
	},
}

func init() {
	catalogCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(catalogCmd)
}
