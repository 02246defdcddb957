package analytics

// ============================================================================
// ANALYTICS TYPES — Render-Ready Payloads
// ============================================================================
// Every computation in this package ends in one of these shapes. The server
// and the PNG renderer consume them as-is; nothing downstream re-aggregates.
// ============================================================================

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"` // "bar", "hbar", "stacked_bar", "line", "scatter", "histogram"
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
}

// ChartSeries is one named data series.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint is a single labelled value.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Align string `json:"align"` // "left", "right"
}

// ============================================================================
// GRID TYPES — 2-D density (heatmaps)
// ============================================================================

// Grid is a binned 2-D density of two numeric measures.
// Cells[y][x] is the record count in bucket (x, y).
type Grid struct {
	Title   string  `json:"title"`
	XLabel  string  `json:"xLabel"`
	YLabel  string  `json:"yLabel"`
	XMin    float64 `json:"xMin"`
	XMax    float64 `json:"xMax"`
	YMin    float64 `json:"yMin"`
	YMax    float64 `json:"yMax"`
	Cells   [][]int `json:"cells"`
	MaxCell int     `json:"maxCell"`
}

// Matrix holds pairwise values over a set of labelled measures,
// e.g. a Pearson correlation matrix.
type Matrix struct {
	Title  string      `json:"title"`
	Labels []string    `json:"labels"`
	Cells  [][]float64 `json:"cells"`
}

// ============================================================================
// BREAKDOWN TYPES — hierarchical counts (sunburst)
// ============================================================================

// BreakdownNode is one node of a nested count tree. The root carries the
// total; each level below splits its parent along the next dimension.
type BreakdownNode struct {
	Label    string          `json:"label"`
	Count    int             `json:"count"`
	Children []BreakdownNode `json:"children,omitempty"`
}

// ============================================================================
// SCATTER TYPES
// ============================================================================

// ScatterPoint is one dot of a scatter plot. Size carries a third measure
// (point radius hint); Tag carries a hover label.
type ScatterPoint struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size"`
	Tag  string  `json:"tag,omitempty"`
}

// ScatterSlice is the set of points for one value of a slicing dimension,
// e.g. one admission month.
type ScatterSlice struct {
	Key    string         `json:"key"`
	Label  string         `json:"label"`
	Points []ScatterPoint `json:"points"`
}

// ============================================================================
// SUMMARY TYPES
// ============================================================================

// FiveNum is a five-number summary of a measure within one group.
type FiveNum struct {
	Label  string  `json:"label"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// SeriesPoint is one bucket of a chronological series.
type SeriesPoint struct {
	Key   string  `json:"key"`   // sortable bucket key, "2024-03"
	Label string  `json:"label"` // display form, "Mar 2024"
	Value float64 `json:"value"`
	Count int     `json:"count"`
}
