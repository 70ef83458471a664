package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/candela-systems/scholarmatch/core"
	"github.com/candela-systems/scholarmatch/corpus"
	"github.com/candela-systems/scholarmatch/storage"
	"github.com/gin-gonic/gin"
)

// Service is the engine surface the HTTP front end needs.
type Service interface {
	MatchStored(ctx context.Context, rawText string, threshold float64, maxResults int) (*core.MatchResult, error)
	ProfileRepository() storage.ProfileRepository
}

// Server exposes the matching pipeline over HTTP.
type Server struct {
	service Service
	logger  *slog.Logger
}

// New creates a server on top of a service.
func New(service Service) *Server {
	return &Server{
		service: service,
		logger:  slog.Default().With("component", "server"),
	}
}

// Router builds the gin router with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.POST("/match", s.Match)
	r.POST("/profiles", s.LoadProfiles)
	r.GET("/profiles/count", s.ProfileCount)
	r.POST("/export", s.Export)

	return r
}

// MatchRequest is the /match and /export request body. Threshold and
// max_results fall back to the defaults when absent.
type MatchRequest struct {
	Interests  string   `json:"interests"`
	Threshold  *float64 `json:"threshold"`
	MaxResults *int     `json:"max_results"`
	Format     string   `json:"format"`
}

func (req *MatchRequest) threshold() float64 {
	if req.Threshold == nil {
		return core.DefaultThreshold
	}
	return *req.Threshold
}

func (req *MatchRequest) maxResults() int {
	if req.MaxResults == nil {
		return core.DefaultMaxResults
	}
	return *req.MaxResults
}

// Match runs the pipeline against the stored corpus and returns ranked
// matches in presentation shape.
func (s *Server) Match(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
		return
	}

	if strings.TrimSpace(req.Interests) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Research interests are required"})
		return
	}

	result, err := s.service.MatchStored(c.Request.Context(), req.Interests, req.threshold(), req.maxResults())
	if err != nil {
		s.matchError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"matches":        corpus.Rows(result.Matches),
		"total_matches":  len(result.Matches),
		"total_profiles": result.TotalProfiles,
	})
}

// LoadProfiles reads a collector JSON array from the request body into
// the profile store.
func (s *Server) LoadProfiles(c *gin.Context) {
	result, err := corpus.Load(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid profiles payload"})
		return
	}

	if len(result.Profiles) > 0 {
		if _, err := s.service.ProfileRepository().AddProfiles(c.Request.Context(), result.Profiles...); err != nil {
			s.logger.Error("failed to store profiles", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to store profiles"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Loaded %d profiles", len(result.Profiles)),
		"count":   len(result.Profiles),
		"skipped": result.Skipped,
	})
}

// ProfileCount reports the number of stored profiles.
func (s *Server) ProfileCount(c *gin.Context) {
	count, err := s.service.ProfileRepository().CountProfiles(c.Request.Context())
	if err != nil {
		s.logger.Error("failed to count profiles", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to count profiles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

// Export runs the pipeline and streams the results as a JSON or CSV
// attachment.
func (s *Server) Export(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
		return
	}

	if strings.TrimSpace(req.Interests) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Research interests are required"})
		return
	}

	format := req.Format
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "csv" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": fmt.Sprintf("Unsupported format: %s", format)})
		return
	}

	result, err := s.service.MatchStored(c.Request.Context(), req.Interests, req.threshold(), req.maxResults())
	if err != nil {
		s.matchError(c, err)
		return
	}

	filename := fmt.Sprintf("matches_%s.%s", time.Now().UTC().Format("20060102_150405"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	switch format {
	case "json":
		c.Header("Content-Type", "application/json")
		c.Status(http.StatusOK)
		if err := corpus.WriteJSON(c.Writer, result.Matches); err != nil {
			s.logger.Error("failed to write export", "format", format, "err", err)
		}
	case "csv":
		c.Header("Content-Type", "text/csv")
		c.Status(http.StatusOK)
		if err := corpus.WriteCSV(c.Writer, result.Matches); err != nil {
			s.logger.Error("failed to write export", "format", format, "err", err)
		}
	}
}

// matchError maps pipeline errors to responses. Validation problems are
// the client's fault; anything else is reported as a server failure.
func (s *Server) matchError(c *gin.Context, err error) {
	switch {
	case core.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	default:
		s.logger.Error("match failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Matching failed"})
	}
}
