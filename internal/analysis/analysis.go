// Package analysis aggregates extracted book attributes into the count
// tables behind each report: per year, publisher, author, content tag, and
// purchase month.
package analysis

import (
	"sort"

	"github.com/karaage0703/kindle-analyzer/internal/library"
)

// DefaultTopN is how many publishers or authors a ranking keeps when the
// caller does not say otherwise.
const DefaultTopN = 10

// YearCount is the number of books purchased in one year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// NameCount is the number of books sharing one attribute value (publisher,
// author, or content tag).
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// MonthCount is the number of books purchased in one calendar month,
// keyed "YYYY-MM".
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// Summary holds the headline numbers for the whole library.
type Summary struct {
	TotalBooks   int `json:"total_books"`
	WithMetadata int `json:"with_metadata"`
}

// Summarize counts the library and how many rows produced any metadata.
func Summarize(books []library.Book) Summary {
	s := Summary{TotalBooks: len(books)}
	for _, b := range books {
		if b.Title.Present || b.Author.Present || b.ASIN.Present {
			s.WithMetadata++
		}
	}
	return s
}

// BooksByYear counts purchases per year, ascending by year. Books without a
// parseable purchase date are excluded.
func BooksByYear(books []library.Book) []YearCount {
	byYear := make(map[int]int)
	for _, b := range books {
		if b.PurchasedAt.IsZero() {
			continue
		}
		byYear[b.PurchasedAt.Year()]++
	}

	counts := make([]YearCount, 0, len(byYear))
	for year, n := range byYear {
		counts = append(counts, YearCount{Year: year, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Year < counts[j].Year })
	return counts
}

// BooksByPublisher ranks publishers by book count, descending, keeping the
// top n (DefaultTopN when n <= 0). Books with no publisher are excluded.
func BooksByPublisher(books []library.Book, n int) []NameCount {
	return topCounts(books, n, func(b library.Book) library.Field { return b.Publisher })
}

// BooksByAuthor ranks authors by book count, descending, keeping the top n
// (DefaultTopN when n <= 0). Books with no author are excluded.
func BooksByAuthor(books []library.Book, n int) []NameCount {
	return topCounts(books, n, func(b library.Book) library.Field { return b.Author })
}

// BooksByContentTag counts books per content tag, descending, unbounded.
func BooksByContentTag(books []library.Book) []NameCount {
	return topCounts(books, len(books)+1, func(b library.Book) library.Field { return b.ContentTag })
}

// MonthlyPurchases counts purchases per calendar month, ascending by month.
// Books without a parseable purchase date are excluded.
func MonthlyPurchases(books []library.Book) []MonthCount {
	byMonth := make(map[string]int)
	for _, b := range books {
		if b.PurchasedAt.IsZero() {
			continue
		}
		byMonth[b.PurchasedAt.Format("2006-01")]++
	}

	counts := make([]MonthCount, 0, len(byMonth))
	for month, n := range byMonth {
		counts = append(counts, MonthCount{Month: month, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Month < counts[j].Month })
	return counts
}

// topCounts counts books per attribute value and keeps the n most frequent.
// Ties break by name so output order is stable across runs.
func topCounts(books []library.Book, n int, attr func(library.Book) library.Field) []NameCount {
	if n <= 0 {
		n = DefaultTopN
	}

	byName := make(map[string]int)
	for _, b := range books {
		f := attr(b)
		if !f.Present {
			continue
		}
		byName[f.Value]++
	}

	counts := make([]NameCount, 0, len(byName))
	for name, count := range byName {
		counts = append(counts, NameCount{Name: name, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})

	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
