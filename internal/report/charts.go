// Package report renders the analysis results: PNG charts and a markdown
// export of the library.
package report

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/karaage0703/kindle-analyzer/internal/analysis"
)

// ChartStyle configures chart rendering. FontPath optionally names a TTF/OTF
// file to render titles and labels with; the default face has no CJK glyphs,
// so libraries with Japanese titles need one.
type ChartStyle struct {
	FontPath string
}

// ChartRenderer renders analysis count tables to PNG files. The font is
// carried on the renderer and applied per plot, not installed globally.
type ChartRenderer struct {
	typeface font.Typeface // empty means the plot default
}

// NewChartRenderer builds a renderer, loading the configured font once.
func NewChartRenderer(style ChartStyle) (*ChartRenderer, error) {
	r := &ChartRenderer{}
	if style.FontPath == "" {
		return r, nil
	}

	raw, err := os.ReadFile(style.FontPath)
	if err != nil {
		return nil, fmt.Errorf("read chart font: %w", err)
	}
	face, err := opentype.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse chart font %s: %w", style.FontPath, err)
	}

	r.typeface = "kindle-analyzer"
	font.DefaultCache.Add([]font.Face{{
		Font: font.Font{Typeface: r.typeface},
		Face: face,
	}})
	return r, nil
}

// YearlyCounts writes a vertical bar chart of purchases per year.
func (r *ChartRenderer) YearlyCounts(counts []analysis.YearCount, path string) error {
	names := make([]string, len(counts))
	values := make([]float64, len(counts))
	for i, c := range counts {
		names[i] = strconv.Itoa(c.Year)
		values[i] = float64(c.Count)
	}
	return r.verticalBars("Books purchased per year", "Year", "Books", names, values, path)
}

// PublisherCounts writes a horizontal bar chart of the top publishers.
func (r *ChartRenderer) PublisherCounts(counts []analysis.NameCount, path string) error {
	return r.horizontalBars("Books per publisher", "Books", "Publisher", counts, path)
}

// AuthorCounts writes a horizontal bar chart of the top authors.
func (r *ChartRenderer) AuthorCounts(counts []analysis.NameCount, path string) error {
	return r.horizontalBars("Books per author", "Books", "Author", counts, path)
}

// TagCounts writes a vertical bar chart of books per content tag.
func (r *ChartRenderer) TagCounts(counts []analysis.NameCount, path string) error {
	names := make([]string, len(counts))
	values := make([]float64, len(counts))
	for i, c := range counts {
		names[i] = c.Name
		values[i] = float64(c.Count)
	}
	return r.verticalBars("Books per content tag", "Content tag", "Books", names, values, path)
}

// MonthlyCounts writes a line chart of purchases per calendar month.
func (r *ChartRenderer) MonthlyCounts(counts []analysis.MonthCount, path string) error {
	p := r.newPlot("Books purchased per month", "Month", "Books")

	xys := make(plotter.XYs, len(counts))
	names := make([]string, len(counts))
	for i, c := range counts {
		xys[i] = plotter.XY{X: float64(i), Y: float64(c.Count)}
		names[i] = c.Month
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return fmt.Errorf("monthly line chart: %w", err)
	}
	line.Color = plotutil.Color(0)
	points.Color = plotutil.Color(0)

	p.Add(line, points)
	p.NominalX(names...)
	rotateTicks(&p.X.Tick.Label, math.Pi/2)

	return save(p, 15, 6, path)
}

func (r *ChartRenderer) verticalBars(title, xLabel, yLabel string, names []string, values []float64, path string) error {
	p := r.newPlot(title, xLabel, yLabel)

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(20))
	if err != nil {
		return fmt.Errorf("bar chart %q: %w", title, err)
	}
	bars.LineStyle.Width = 0
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(names...)
	rotateTicks(&p.X.Tick.Label, math.Pi/4)

	// Value above each bar.
	var labels plotter.XYLabels
	labels.XYs = make(plotter.XYs, len(values))
	labels.Labels = make([]string, len(values))
	for i, v := range values {
		labels.XYs[i] = plotter.XY{X: float64(i), Y: v + 0.5}
		labels.Labels[i] = strconv.Itoa(int(v))
	}
	if err := addLabels(p, labels); err != nil {
		return fmt.Errorf("bar chart %q: %w", title, err)
	}

	return save(p, 12, 6, path)
}

func (r *ChartRenderer) horizontalBars(title, xLabel, yLabel string, counts []analysis.NameCount, path string) error {
	p := r.newPlot(title, xLabel, yLabel)

	// Reversed so the top-ranked entry sits at the top of the chart.
	names := make([]string, len(counts))
	values := make(plotter.Values, len(counts))
	for i, c := range counts {
		j := len(counts) - 1 - i
		names[j] = c.Name
		values[j] = float64(c.Count)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("bar chart %q: %w", title, err)
	}
	bars.Horizontal = true
	bars.LineStyle.Width = 0
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalY(names...)

	// Value to the right of each bar.
	var labels plotter.XYLabels
	labels.XYs = make(plotter.XYs, len(values))
	labels.Labels = make([]string, len(values))
	for i, v := range values {
		labels.XYs[i] = plotter.XY{X: float64(v) + 0.5, Y: float64(i)}
		labels.Labels[i] = strconv.Itoa(int(v))
	}
	if err := addLabels(p, labels); err != nil {
		return fmt.Errorf("bar chart %q: %w", title, err)
	}

	return save(p, 12, 8, path)
}

func (r *ChartRenderer) newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = xLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.Text = yLabel
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)

	if r.typeface != "" {
		for _, style := range []*text.Style{
			&p.Title.TextStyle,
			&p.X.Label.TextStyle, &p.Y.Label.TextStyle,
			&p.X.Tick.Label, &p.Y.Tick.Label,
		} {
			style.Font.Typeface = r.typeface
		}
	}
	return p
}

func addLabels(p *plot.Plot, xyl plotter.XYLabels) error {
	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return fmt.Errorf("value labels: %w", err)
	}
	p.Add(labels)
	return nil
}

func rotateTicks(style *text.Style, radians float64) {
	style.Rotation = radians
	style.XAlign = draw.XRight
	style.YAlign = draw.YCenter
}

func save(p *plot.Plot, widthIn, heightIn float64, path string) error {
	if err := p.Save(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}
