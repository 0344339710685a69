package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/karaage0703/kindle-analyzer/internal/config"
	"github.com/karaage0703/kindle-analyzer/internal/web"
)

var (
	serveDBPath string
	serveAddr   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis results as a JSON API",
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVarP(&serveDBPath, "db-path", "d", "", "path to BookData.sqlite (default: probe standard locations)")
	f.StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	books, dbPath, err := loadBooks(cfg, serveDBPath)
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Serve.Addr
	}

	log.Printf("serving %d books from %s on %s", len(books), dbPath, addr)
	return web.NewServer(books, cfg.Analysis.TopPublishers).Run(addr)
}
