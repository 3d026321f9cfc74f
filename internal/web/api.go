package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vizalsl/portfolio/internal/contact"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func (s *Server) handleAPIProjects(c *gin.Context) {
	view := s.galleryView(c)
	c.JSON(http.StatusOK, gin.H{
		"filter":   view.ActiveFilter,
		"projects": view.Projects,
	})
}

func (s *Server) handleAPIProject(c *gin.Context) {
	p, ok := s.site.Catalog.Get(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "project not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleAPIFilters(c *gin.Context) {
	c.JSON(http.StatusOK, s.galleryView(c).Filters)
}

func (s *Server) handleAPIBlogs(c *gin.Context) {
	c.JSON(http.StatusOK, s.site.Blogs)
}

func (s *Server) handleAPIStats(c *gin.Context) {
	if s.visits == nil {
		respondError(c, http.StatusServiceUnavailable, "visit tracking is disabled")
		return
	}
	stats, err := s.visits.Stats(c.Request.Context(), s.now())
	if err != nil {
		s.logger.Error("load visit stats", "error", err)
		respondError(c, http.StatusInternalServerError, "failed to load statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleAPIContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	msg := req.message()

	receipt, err := s.submitContact(c.Request.Context(), msg)
	switch {
	case errors.Is(err, contact.ErrIncomplete):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "missing required fields",
			"missing": fieldNames(msg.Missing()),
		})
	case err != nil:
		s.logger.Error("contact submission failed", "error", err)
		respondError(c, http.StatusBadGateway, "message could not be delivered")
	default:
		c.JSON(http.StatusCreated, gin.H{
			"id":           receipt.ID,
			"submitted_at": receipt.At,
		})
	}
}
