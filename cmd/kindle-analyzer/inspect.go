package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/karaage0703/kindle-analyzer/internal/archive"
	"github.com/karaage0703/kindle-analyzer/internal/config"
	"github.com/karaage0703/kindle-analyzer/internal/library"
)

var inspectDBPath string

var inspectCmd = &cobra.Command{
	Use:   "inspect [rowid]",
	Short: "Resolve one book's archived metadata and print it as YAML",
	Long: `Resolve the sync metadata archive of a single ZBOOK row (identified by its
Z_PK) and print the full resolved tree. Useful for finding attribute paths
beyond the ones the reports extract.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectDBPath, "db-path", "d", "", "path to BookData.sqlite (default: probe standard locations)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	rowID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("rowid must be an integer: %q", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	path, err := databasePath(cfg, inspectDBPath)
	if err != nil {
		return err
	}

	lib, err := library.Open(path)
	if err != nil {
		return err
	}
	defer lib.Close()

	blob, err := lib.RawMetadata(rowID)
	if err != nil {
		return err
	}

	raw, err := archive.Decode(blob)
	if err != nil {
		return fmt.Errorf("book %d: %w", rowID, err)
	}
	if raw == nil {
		fmt.Printf("book %d has no sync metadata\n", rowID)
		return nil
	}

	tree, err := raw.Resolve()
	if err != nil {
		return fmt.Errorf("book %d: %w", rowID, err)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(tree)
}
