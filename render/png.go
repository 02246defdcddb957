package render

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/wardview/wardview/analytics"
	"github.com/wardview/wardview/views"
)

// ============================================================================
// PNG RENDERER — ChartConfig → PNG bytes
// ============================================================================
// Server-side rendering for the chart-shaped views. Grid, matrix, table, and
// breakdown views are rendered by the dashboard page itself and are not
// renderable here.
// ============================================================================

// ErrNotRenderable marks views whose shape has no PNG form.
var ErrNotRenderable = errors.New("view is not PNG-renderable")

// Options control output size and scatter month selection.
type Options struct {
	Width  int
	Height int
	Month  string // scatter views: render only this YYYY-MM slice
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 900
	}
	if o.Height <= 0 {
		o.Height = 420
	}
	return o
}

// Renderable reports whether PNG can produce an image for the view.
func Renderable(v views.View) bool {
	return v.Kind == views.KindChart || v.Kind == views.KindScatter
}

// PNG renders a view to PNG bytes.
func PNG(v views.View, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	switch v.Kind {
	case views.KindChart:
		if v.Chart == nil || len(v.Chart.Series) == 0 {
			return nil, fmt.Errorf("view %q: empty chart", v.ID)
		}
		switch v.Chart.ChartType {
		case "bar", "histogram":
			return renderBar(v.Chart, opts)
		case "hbar":
			return renderHBar(v.Chart, opts)
		case "stacked_bar":
			return renderStacked(v.Chart, opts)
		case "line":
			return renderLine(v.Chart, opts)
		default:
			return nil, fmt.Errorf("view %q: chart type %q: %w", v.ID, v.Chart.ChartType, ErrNotRenderable)
		}
	case views.KindScatter:
		return renderScatter(v, opts)
	default:
		return nil, fmt.Errorf("view %q (%s): %w", v.ID, v.Kind, ErrNotRenderable)
	}
}

// ============================================================================
// BAR VARIANTS
// ============================================================================

func renderBar(cfg *analytics.ChartConfig, opts Options) ([]byte, error) {
	data := cfg.Series[0].Data
	if len(data) == 0 {
		return nil, fmt.Errorf("chart %q has no data", cfg.Title)
	}

	bars := make([]chart.Value, 0, len(data))
	for i, p := range data {
		bars = append(bars, chart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: chart.Style{FillColor: colorAt(cfg.Colors, i), StrokeWidth: 0},
		})
	}

	ch := chart.BarChart{
		Title:      cfg.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   barWidth(opts.Width, len(bars)),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 30}},
		XAxis:      chart.Style{TextRotationDegrees: rotationFor(data)},
		YAxis:      chart.YAxis{Name: cfg.YAxis},
		Bars:       bars,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

// renderHBar draws horizontal bars as single-value stacks.
func renderHBar(cfg *analytics.ChartConfig, opts Options) ([]byte, error) {
	data := cfg.Series[0].Data
	if len(data) == 0 {
		return nil, fmt.Errorf("chart %q has no data", cfg.Title)
	}

	bars := make([]chart.StackedBar, 0, len(data))
	for i, p := range data {
		bars = append(bars, chart.StackedBar{
			Name:  p.Label,
			Width: 60,
			Values: []chart.Value{{
				Label: p.Label,
				Value: p.Value,
				Style: chart.Style{FillColor: colorAt(cfg.Colors, i), StrokeWidth: 0},
			}},
		})
	}

	ch := chart.StackedBarChart{
		Title:        cfg.Title,
		Width:        opts.Width,
		Height:       opts.Height,
		IsHorizontal: true,
		BarSpacing:   24,
		Background:   chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 30}},
		XAxis:        chart.Shown(),
		YAxis:        chart.Shown(),
		Bars:         bars,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render horizontal bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

func renderStacked(cfg *analytics.ChartConfig, opts Options) ([]byte, error) {
	if len(cfg.Series) == 0 || len(cfg.Series[0].Data) == 0 {
		return nil, fmt.Errorf("chart %q has no data", cfg.Title)
	}

	// Pivot series-per-subgroup into one stacked bar per primary label.
	labels := make([]string, 0, len(cfg.Series[0].Data))
	for _, p := range cfg.Series[0].Data {
		labels = append(labels, p.Label)
	}

	bars := make([]chart.StackedBar, 0, len(labels))
	for li, label := range labels {
		bar := chart.StackedBar{Name: label, Width: barWidth(opts.Width, len(labels))}
		for si, s := range cfg.Series {
			if li >= len(s.Data) {
				continue
			}
			bar.Values = append(bar.Values, chart.Value{
				Label: s.Name,
				Value: s.Data[li].Value,
				Style: chart.Style{FillColor: colorAt(cfg.Colors, si), StrokeWidth: 0},
			})
		}
		bars = append(bars, bar)
	}

	ch := chart.StackedBarChart{
		Title:      cfg.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		BarSpacing: 16,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 30}},
		XAxis:      chart.Shown(),
		YAxis:      chart.Shown(),
		Bars:       bars,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render stacked bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

// ============================================================================
// LINE
// ============================================================================

func renderLine(cfg *analytics.ChartConfig, opts Options) ([]byte, error) {
	data := cfg.Series[0].Data
	if len(data) == 0 {
		return nil, fmt.Errorf("chart %q has no data", cfg.Title)
	}

	times := make([]time.Time, 0, len(data))
	values := make([]float64, 0, len(data))
	for _, p := range data {
		t, err := time.Parse("2006-01", p.Label)
		if err != nil {
			continue
		}
		times = append(times, t)
		values = append(values, p.Value)
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("chart %q has no parseable months", cfg.Title)
	}

	// Pad to two points; the chart package cannot draw a single-point series.
	if len(times) == 1 {
		times = append(times, times[0].AddDate(0, 1, 0))
		values = append(values, values[0])
	}

	st := chart.Style{
		StrokeColor: colorAt(cfg.Colors, 0),
		StrokeWidth: 2.2,
		DotColor:    colorAt(cfg.Colors, 0),
		DotWidth:    3,
	}

	ch := chart.Chart{
		Title:      cfg.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 30}},
		XAxis: chart.XAxis{
			Name:           cfg.XAxis,
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2006"),
		},
		YAxis: chart.YAxis{Name: cfg.YAxis},
		Series: []chart.Series{
			chart.TimeSeries{Name: cfg.Series[0].Name, XValues: times, YValues: values, Style: st},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render line chart: %w", err)
	}
	return buf.Bytes(), nil
}

// ============================================================================
// SCATTER
// ============================================================================

func renderScatter(v views.View, opts Options) ([]byte, error) {
	var points []analytics.ScatterPoint
	title := v.Title
	for _, slice := range v.Slices {
		if opts.Month != "" && slice.Key != opts.Month {
			continue
		}
		points = append(points, slice.Points...)
		if opts.Month != "" {
			title = fmt.Sprintf("%s, %s", v.Title, slice.Label)
		}
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("view %q: no points for month %q", v.ID, opts.Month)
	}

	xs := make([]float64, 0, len(points))
	ys := make([]float64, 0, len(points))
	for _, p := range points {
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	if len(xs) == 1 {
		xs = append(xs, xs[0]+1)
		ys = append(ys, ys[0])
	}

	ch := chart.Chart{
		Title:      title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 30}},
		XAxis:      chart.XAxis{Name: "Age"},
		YAxis:      chart.YAxis{Name: "Billing Amount"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Patients",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    4,
					DotColor:    drawing.ColorFromHex("118AB2"),
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render scatter chart: %w", err)
	}
	return buf.Bytes(), nil
}

// ============================================================================
// HELPERS
// ============================================================================

var fallbackPalette = []string{
	"#118AB2", "#FFD166", "#EF476F", "#06D6A0", "#8B5CF6",
	"#F97316", "#EC4899", "#84CC16", "#4F46E5", "#06B6D4",
}

func colorAt(colors []string, i int) drawing.Color {
	if len(colors) == 0 {
		colors = fallbackPalette
	}
	hex := colors[i%len(colors)]
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	return drawing.ColorFromHex(hex)
}

func barWidth(totalWidth, bars int) int {
	if bars == 0 {
		return 20
	}
	w := (totalWidth - 100) / (bars * 2)
	if w < 6 {
		w = 6
	}
	if w > 60 {
		w = 60
	}
	return w
}

// rotationFor tilts x labels when they would collide.
func rotationFor(data []analytics.ChartPoint) float64 {
	if len(data) > 8 {
		return 45
	}
	return 0
}
