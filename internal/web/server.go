// Package web serves the analysis results as a JSON API.
package web

import (
	"github.com/gin-gonic/gin"

	"github.com/karaage0703/kindle-analyzer/internal/library"
)

// Server exposes a loaded library over HTTP. Books are read once at startup;
// the source database is never touched while serving.
type Server struct {
	books  []library.Book
	topN   int
	router *gin.Engine
}

// NewServer creates a server over the given books. topN bounds the publisher
// and author rankings when a request does not pass its own limit.
func NewServer(books []library.Book, topN int) *Server {
	router := gin.Default()

	s := &Server{
		books:  books,
		topN:   topN,
		router: router,
	}

	api := router.Group("/api")
	{
		api.GET("/summary", s.handleSummary)
		api.GET("/yearly", s.handleYearly)
		api.GET("/publishers", s.handlePublishers)
		api.GET("/authors", s.handleAuthors)
		api.GET("/tags", s.handleTags)
		api.GET("/monthly", s.handleMonthly)
		api.GET("/books", s.handleBooks)
	}

	return s
}

// Run starts the server on addr and blocks.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
