package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/karaage0703/kindle-analyzer/internal/analysis"
)

func (s *Server) handleSummary(c *gin.Context) {
	c.JSON(http.StatusOK, analysis.Summarize(s.books))
}

func (s *Server) handleYearly(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"counts": analysis.BooksByYear(s.books)})
}

func (s *Server) handlePublishers(c *gin.Context) {
	limit, ok := s.limit(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": analysis.BooksByPublisher(s.books, limit)})
}

func (s *Server) handleAuthors(c *gin.Context) {
	limit, ok := s.limit(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": analysis.BooksByAuthor(s.books, limit)})
}

func (s *Server) handleTags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"counts": analysis.BooksByContentTag(s.books)})
}

func (s *Server) handleMonthly(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"counts": analysis.MonthlyPurchases(s.books)})
}

func (s *Server) handleBooks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"count": len(s.books),
		"books": s.books,
	})
}

// limit reads the optional ?limit= query parameter, falling back to the
// server's configured top-N. Replies 400 and returns ok=false on bad input.
func (s *Server) limit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return s.topN, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return 0, false
	}
	return limit, true
}
