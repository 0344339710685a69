package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/karaage0703/kindle-analyzer/internal/config"
	"github.com/karaage0703/kindle-analyzer/internal/report"
)

var (
	exportDBPath    string
	exportOutput    string
	exportSortBy    string
	exportAscending bool
	exportLimit     int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the book list as a markdown file",
	RunE:  runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVarP(&exportDBPath, "db-path", "d", "", "path to BookData.sqlite (default: probe standard locations)")
	f.StringVarP(&exportOutput, "output", "o", "kindle_books.md", "output file path")
	f.StringVarP(&exportSortBy, "sort-by", "s", report.DefaultSortKey,
		"sort key ("+strings.Join(report.SortKeys(), ", ")+")")
	f.BoolVarP(&exportAscending, "ascending", "a", false, "sort ascending (default: descending)")
	f.IntVarP(&exportLimit, "limit", "l", 0, "maximum books to export (0: no limit)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	books, _, err := loadBooks(cfg, exportDBPath)
	if err != nil {
		return err
	}

	out, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()

	if err := report.ExportMarkdown(out, books, report.ExportOptions{
		SortBy:    exportSortBy,
		Ascending: exportAscending,
		Limit:     exportLimit,
	}); err != nil {
		return err
	}

	fmt.Printf("Book list written: %s\n", exportOutput)
	return nil
}
