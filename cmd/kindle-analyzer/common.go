package main

import (
	"github.com/karaage0703/kindle-analyzer/internal/config"
	"github.com/karaage0703/kindle-analyzer/internal/library"
)

// databasePath picks the database location: the flag wins, then the config
// file, then the standard locations.
func databasePath(cfg *config.Config, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if cfg.Database.Path != "" {
		return cfg.Database.Path, nil
	}
	return library.DefaultPath()
}

// loadBooks opens the library and reads every book.
func loadBooks(cfg *config.Config, flagValue string) ([]library.Book, string, error) {
	path, err := databasePath(cfg, flagValue)
	if err != nil {
		return nil, "", err
	}

	lib, err := library.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer lib.Close()

	books, err := lib.Books()
	if err != nil {
		return nil, "", err
	}
	return books, path, nil
}
