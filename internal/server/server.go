// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the job and career searches as a small JSON API.
// It has the same failure semantics as the CLI: an unavailable search
// provider yields 200 with notices, and only invalid input is a 4xx.
package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pdiddy/job-hunter/internal/export"
	"github.com/pdiddy/job-hunter/internal/pipeline"
	"github.com/pdiddy/job-hunter/internal/query"
	"github.com/pdiddy/job-hunter/pkg/types"
)

// Handler serves the API. Defaults supplies pipeline options that a
// request leaves unset.
type Handler struct {
	Deps     pipeline.Deps
	Defaults types.PipelineConfig
	Version  string
}

// JobSearchRequest is the body of POST /api/v1/jobs/search.
type JobSearchRequest struct {
	query.JobFacets

	MaxResults int    `json:"max_results,omitempty"`
	Filter     *bool  `json:"filter,omitempty"`
	Dedup      string `json:"dedup,omitempty"`
}

// CareerSearchRequest is the body of POST /api/v1/careers/search. When
// Companies is empty, the first Top entries of the built-in list are used.
type CareerSearchRequest struct {
	Companies  []string `json:"companies"`
	Exclusions []string `json:"exclusions,omitempty"`
	Top        int      `json:"top,omitempty"`
	Filter     *bool    `json:"filter,omitempty"`
}

// NewRouter builds the gin engine with CORS and the API routes.
func NewRouter(h *Handler, sc types.ServerConfig, accessLog io.Writer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if accessLog != nil {
		r.Use(gin.LoggerWithWriter(accessLog))
	}

	config := cors.DefaultConfig()
	if len(sc.AllowOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = sc.AllowOrigins
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	{
		api.GET("/health", h.Health)
		api.GET("/catalog", h.Catalog)
		api.POST("/jobs/search", h.SearchJobs)
		api.POST("/careers/search", h.SearchCareers)
	}
	return r
}

// Health reports liveness and whether AI filtering is available.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "ok",
		"version":          h.Version,
		"search":           h.Deps.Search != nil,
		"filter_available": h.Deps.Evaluator != nil,
	})
}

// Catalog returns the selectable facet values.
func (h *Handler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, types.DefaultCatalog())
}

// SearchJobs runs the job pipeline.
func (h *Handler) SearchJobs(c *gin.Context) {
	format, ok := requestFormat(c)
	if !ok {
		return
	}
	var req JobSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	cfg := h.Defaults
	if req.MaxResults > 0 {
		cfg.MaxResults = req.MaxResults
	}
	if req.Filter != nil {
		cfg.Filter = *req.Filter
	}
	if req.Dedup != "" {
		mode, err := types.ParseDedupMode(req.Dedup)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cfg.Dedup = mode
	}

	out, err := pipeline.Jobs(c.Request.Context(), h.Deps, req.JobFacets, cfg)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	respond(c, out, format)
}

// SearchCareers runs the career-page pipeline.
func (h *Handler) SearchCareers(c *gin.Context) {
	format, ok := requestFormat(c)
	if !ok {
		return
	}
	var req CareerSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	cfg := h.Defaults
	if req.Filter != nil {
		cfg.Filter = *req.Filter
	}
	companies := req.Companies
	if len(companies) == 0 && req.Top > 0 {
		companies = types.TopN(req.Top)
	}

	out, err := pipeline.Careers(c.Request.Context(), h.Deps, companies, req.Exclusions, cfg)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	respond(c, out, format)
}

// requestFormat validates the ?format= parameter before any work is done.
func requestFormat(c *gin.Context) (string, bool) {
	format := strings.ToLower(c.DefaultQuery("format", export.FormatJSONName))
	switch format {
	case export.FormatJSONName, export.FormatCSVName, export.FormatURLsName:
		return format, true
	}
	err := fmt.Errorf("%w %q (want json, csv or urls)", export.ErrUnknownFormat, format)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	return "", false
}

// respond writes out as json, csv or urls.
func respond(c *gin.Context, out pipeline.Output, format string) {
	switch format {
	case export.FormatCSVName:
		data, err := export.ToCSV(out.Results)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="results.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
	case export.FormatURLsName:
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(export.ToURLList(out.Results)))
	default:
		c.JSON(http.StatusOK, out)
	}
}

// statusFor maps a pipeline error to an HTTP status. Invalid input is the
// only error the pipelines return today.
func statusFor(err error) int {
	if errors.Is(err, query.ErrEmptyTerm) || errors.Is(err, pipeline.ErrNoCompanies) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
