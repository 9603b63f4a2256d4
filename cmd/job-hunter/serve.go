// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/job-hunter/internal/server"
	"github.com/pdiddy/job-hunter/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve job and career searches over HTTP",
	Long: `Serve starts a JSON API with the same searches as the jobs and careers
commands:

  GET  /api/v1/health
  GET  /api/v1/catalog
  POST /api/v1/jobs/search       (?format=json|csv|urls)
  POST /api/v1/careers/search    (?format=json|csv|urls)

The relevance filter is available to requests when a language model is
configured.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().StringSlice("allow-origin", nil, "CORS origins to allow (default all)")
	serveCmd.Flags().String("serpapi-key", "", "SerpAPI key")
	serveCmd.Flags().Duration("timeout", 0, "HTTP request timeout for upstream calls (default 30s)")
	serveCmd.Flags().Bool("debug", false, "run gin in debug mode")
	addReasoningFlags(serveCmd)

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	sc := types.ServerConfig{
		Addr:         viper.GetString("server.addr"),
		AllowOrigins: viper.GetStringSlice("server.allow_origins"),
	}
	if f := cmd.Flags().Lookup("addr"); f.Changed || sc.Addr == "" {
		sc.Addr, _ = cmd.Flags().GetString("addr")
	}
	if origins, _ := cmd.Flags().GetStringSlice("allow-origin"); len(origins) > 0 {
		sc.AllowOrigins = origins
	}

	if debug, _ := cmd.Flags().GetBool("debug"); !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	defaults, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}
	h := &server.Handler{
		Deps:     buildDeps(cmd, true, os.Stderr),
		Defaults: defaults,
		Version:  version,
	}
	r := server.NewRouter(h, sc, os.Stderr)

	fmt.Fprintf(os.Stderr, "Listening on %s\n", sc.Addr)
	return r.Run(sc.Addr)
}
