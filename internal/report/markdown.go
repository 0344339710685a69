package report

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/karaage0703/kindle-analyzer/internal/library"
)

// absentPlaceholder stands in for attributes the archive did not carry.
const absentPlaceholder = "Unknown"

// ExportOptions controls the markdown book list.
type ExportOptions struct {
	SortBy    string // title, author, publisher, purchase_date, publication_date
	Ascending bool   // default is newest/highest first
	Limit     int    // 0 means no limit
}

// DefaultSortKey orders the export when no key is given.
const DefaultSortKey = "purchase_date"

var sortKeys = map[string]func(library.Book) string{
	"title":            func(b library.Book) string { return b.Title.Or(absentPlaceholder) },
	"author":           func(b library.Book) string { return b.Author.Or(absentPlaceholder) },
	"publisher":        func(b library.Book) string { return b.Publisher.Or(absentPlaceholder) },
	"purchase_date":    func(b library.Book) string { return dateCell(b.PurchasedAt) },
	"publication_date": func(b library.Book) string { return dateCell(b.PublishedAt) },
}

// SortKeys lists the accepted --sort-by values.
func SortKeys() []string {
	keys := make([]string, 0, len(sortKeys))
	for k := range sortKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ExportMarkdown writes the book list as markdown: a numbered section per
// book with its attributes as a bullet list, sorted and truncated per opts.
func ExportMarkdown(w io.Writer, books []library.Book, opts ExportOptions) error {
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = DefaultSortKey
	}
	key, ok := sortKeys[sortBy]
	if !ok {
		return fmt.Errorf("unknown sort key %q (accepted: %v)", opts.SortBy, SortKeys())
	}

	sorted := make([]library.Book, len(books))
	copy(sorted, books)
	sort.SliceStable(sorted, func(i, j int) bool {
		if opts.Ascending {
			return key(sorted[i]) < key(sorted[j])
		}
		return key(sorted[i]) > key(sorted[j])
	})

	if opts.Limit > 0 && len(sorted) > opts.Limit {
		sorted = sorted[:opts.Limit]
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# Kindle Library\n\n")
	fmt.Fprintf(bw, "Total: %d books\n\n", len(sorted))

	for i, b := range sorted {
		fmt.Fprintf(bw, "## %d. %s\n\n", i+1, b.Title.Or(absentPlaceholder))
		fmt.Fprintf(bw, "- **Author**: %s\n", b.Author.Or(absentPlaceholder))
		fmt.Fprintf(bw, "- **Publisher**: %s\n", b.Publisher.Or(absentPlaceholder))
		fmt.Fprintf(bw, "- **Purchase date**: %s\n", dateCell(b.PurchasedAt))
		fmt.Fprintf(bw, "- **Publication date**: %s\n", dateCell(b.PublishedAt))
		if b.ContentTag.Present {
			fmt.Fprintf(bw, "- **Tags**: %s\n", b.ContentTag.Value)
		}
		fmt.Fprintf(bw, "\n---\n\n")
	}

	return bw.Flush()
}

// dateCell renders a parsed date as date-only, dropping the time and zone the
// archive carries.
func dateCell(t time.Time) string {
	if t.IsZero() {
		return absentPlaceholder
	}
	return t.Format("2006-01-02")
}
