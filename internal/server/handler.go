package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"lyrics-sections/internal/app"
	"lyrics-sections/pkg/genius"
	"lyrics-sections/pkg/music"
	"lyrics-sections/pkg/sections"

	"github.com/gin-gonic/gin"
)

// Service is the subset of the application the HTTP surface exposes.
type Service interface {
	Split(ctx context.Context, title, artist string, verbose bool) (*sections.Result, error)
	Parse(ctx context.Context, text, singer string, verbose bool) (*sections.Result, error)
	Metadata(ctx context.Context, songID string) (*genius.SongMetadata, error)
}

// SectionsHandler handles lyric section requests
type SectionsHandler struct {
	svc Service
}

// NewSectionsHandler creates a new sections handler
func NewSectionsHandler(svc Service) *SectionsHandler {
	return &SectionsHandler{svc: svc}
}

type parseRequest struct {
	Lyrics  string `json:"lyrics" binding:"required"`
	Artist  string `json:"artist" binding:"required"`
	Verbose bool   `json:"verbose"`
}

// Split fetches a song's lyrics and returns its sections
func (h *SectionsHandler) Split(c *gin.Context) {
	title := strings.TrimSpace(c.Query("title"))
	artist := strings.TrimSpace(c.Query("artist"))
	if title == "" || artist == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and artist are required"})
		return
	}

	result, err := h.svc.Split(c.Request.Context(), title, artist, c.Query("verbose") == "true")
	respond(c, result, err)
}

// Parse splits lyrics supplied in the request body
func (h *SectionsHandler) Parse(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.Parse(c.Request.Context(), req.Lyrics, req.Artist, req.Verbose)
	respond(c, result, err)
}

// Metadata returns Genius metadata for a song
func (h *SectionsHandler) Metadata(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	meta, err := h.svc.Metadata(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meta)
}

func respond(c *gin.Context, result *sections.Result, err error) {
	if errors.Is(err, sections.ErrNoSectionStructure) {
		c.JSON(http.StatusOK, gin.H{"available": false, "sections": []sections.Section{}})
		return
	}
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	diagnostics := result.Diagnostics
	if diagnostics == nil {
		diagnostics = []sections.Diagnostic{}
	}
	c.JSON(http.StatusOK, gin.H{
		"available":   true,
		"sections":    result.Sections,
		"diagnostics": diagnostics,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, music.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, sections.ErrTranslationFailure):
		return http.StatusBadGateway
	case errors.Is(err, app.ErrMissingSinger):
		return http.StatusBadRequest
	case errors.Is(err, app.ErrMetadataUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
