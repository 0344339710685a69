package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/karaage0703/kindle-analyzer/internal/analysis"
)

func TestChartRenderer_WritesPNGs(t *testing.T) {
	r, err := NewChartRenderer(ChartStyle{})
	if err != nil {
		t.Fatalf("NewChartRenderer: %v", err)
	}
	dir := t.TempDir()

	renders := []struct {
		name   string
		render func(path string) error
	}{
		{"yearly", func(p string) error {
			return r.YearlyCounts([]analysis.YearCount{{Year: 2020, Count: 3}, {Year: 2021, Count: 5}}, p)
		}},
		{"publishers", func(p string) error {
			return r.PublisherCounts([]analysis.NameCount{{Name: "Press A", Count: 4}, {Name: "Press B", Count: 1}}, p)
		}},
		{"authors", func(p string) error {
			return r.AuthorCounts([]analysis.NameCount{{Name: "Jane Doe", Count: 2}}, p)
		}},
		{"tags", func(p string) error {
			return r.TagCounts([]analysis.NameCount{{Name: "novel", Count: 7}}, p)
		}},
		{"monthly", func(p string) error {
			return r.MonthlyCounts([]analysis.MonthCount{{Month: "2020-05", Count: 2}, {Month: "2020-06", Count: 4}}, p)
		}},
	}

	for _, tt := range renders {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".png")
			if err := tt.render(path); err != nil {
				t.Fatalf("render: %v", err)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("chart file not written: %v", err)
			}
			if info.Size() == 0 {
				t.Error("chart file is empty")
			}
		})
	}
}

func TestNewChartRenderer_MissingFont(t *testing.T) {
	if _, err := NewChartRenderer(ChartStyle{FontPath: "/no/such/font.ttf"}); err == nil {
		t.Fatal("NewChartRenderer accepted a missing font file")
	}
}
