package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/karaage0703/kindle-analyzer/internal/analysis"
	"github.com/karaage0703/kindle-analyzer/internal/config"
	"github.com/karaage0703/kindle-analyzer/internal/report"
)

var (
	analyzeDBPath    string
	analyzeOutputDir string
	analyzeYear      bool
	analyzePublisher bool
	analyzeAuthor    bool
	analyzeTag       bool
	analyzeMonthly   bool
	analyzeAll       bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Aggregate the library and render charts",
	Long: `Aggregate the library by year, publisher, author, content tag, and purchase
month. Each selected analysis prints a count table and writes a PNG chart
into the output directory. With no selection flags, everything runs.`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVarP(&analyzeDBPath, "db-path", "d", "", "path to BookData.sqlite (default: probe standard locations)")
	f.StringVarP(&analyzeOutputDir, "output-dir", "o", "", "directory for charts (default ./output)")
	f.BoolVarP(&analyzeYear, "year", "y", false, "books purchased per year")
	f.BoolVarP(&analyzePublisher, "publisher", "p", false, "books per publisher")
	f.BoolVarP(&analyzeAuthor, "author", "a", false, "books per author")
	f.BoolVarP(&analyzeTag, "tag", "t", false, "books per content tag")
	f.BoolVarP(&analyzeMonthly, "monthly", "m", false, "purchases per month")
	f.BoolVar(&analyzeAll, "all", false, "run every analysis")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	books, dbPath, err := loadBooks(cfg, analyzeDBPath)
	if err != nil {
		return err
	}
	fmt.Printf("Database: %s\n", dbPath)
	fmt.Printf("Total books: %d\n", len(books))

	// No selection means everything.
	if !(analyzeYear || analyzePublisher || analyzeAuthor || analyzeTag || analyzeMonthly) {
		analyzeAll = true
	}

	outputDir := analyzeOutputDir
	if outputDir == "" {
		outputDir = cfg.Output.Dir
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	renderer, err := report.NewChartRenderer(report.ChartStyle{FontPath: cfg.Charts.FontPath})
	if err != nil {
		return err
	}

	if analyzeYear || analyzeAll {
		counts := analysis.BooksByYear(books)
		fmt.Println("\nBooks purchased per year:")
		printTable(func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "year\tcount")
			for _, c := range counts {
				fmt.Fprintf(w, "%d\t%d\n", c.Year, c.Count)
			}
		})
		if err := writeChart("yearly_counts.png", outputDir, func(path string) error {
			return renderer.YearlyCounts(counts, path)
		}); err != nil {
			return err
		}
	}

	if analyzePublisher || analyzeAll {
		counts := analysis.BooksByPublisher(books, cfg.Analysis.TopPublishers)
		fmt.Println("\nBooks per publisher:")
		printNameCounts("publisher", counts)
		if err := writeChart("publisher_counts.png", outputDir, func(path string) error {
			return renderer.PublisherCounts(counts, path)
		}); err != nil {
			return err
		}
	}

	if analyzeAuthor || analyzeAll {
		counts := analysis.BooksByAuthor(books, cfg.Analysis.TopAuthors)
		fmt.Println("\nBooks per author:")
		printNameCounts("author", counts)
		if err := writeChart("author_counts.png", outputDir, func(path string) error {
			return renderer.AuthorCounts(counts, path)
		}); err != nil {
			return err
		}
	}

	if analyzeTag || analyzeAll {
		counts := analysis.BooksByContentTag(books)
		fmt.Println("\nBooks per content tag:")
		printNameCounts("tag", counts)
		if err := writeChart("tag_counts.png", outputDir, func(path string) error {
			return renderer.TagCounts(counts, path)
		}); err != nil {
			return err
		}
	}

	if analyzeMonthly || analyzeAll {
		counts := analysis.MonthlyPurchases(books)
		fmt.Println("\nBooks purchased per month:")
		printTable(func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "month\tcount")
			for _, c := range counts {
				fmt.Fprintf(w, "%s\t%d\n", c.Month, c.Count)
			}
		})
		if err := writeChart("monthly_counts.png", outputDir, func(path string) error {
			return renderer.MonthlyCounts(counts, path)
		}); err != nil {
			return err
		}
	}

	fmt.Println("\nDone.")
	return nil
}

func printTable(fill func(w *tabwriter.Writer)) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fill(w)
	w.Flush()
}

func printNameCounts(header string, counts []analysis.NameCount) {
	printTable(func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "%s\tcount\n", header)
		for _, c := range counts {
			fmt.Fprintf(w, "%s\t%d\n", c.Name, c.Count)
		}
	})
}

func writeChart(name, dir string, render func(path string) error) error {
	path := filepath.Join(dir, name)
	if err := render(path); err != nil {
		return err
	}
	fmt.Printf("Chart written: %s\n", path)
	return nil
}
