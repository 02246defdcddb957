package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// ============================================================================
// STATS — Histograms, Density Grids, Correlation, Summaries
// ============================================================================
// Numeric primitives behind the distribution views. All operate on
// RecordView. Records whose measure reads NaN (unknown value, e.g. a stay
// with no discharge date) are excluded from the computation that needs it.
// ============================================================================

// Bucket is one bar of a histogram: [From, To) except the last, which is
// closed on both ends.
type Bucket struct {
	Label string  `json:"label"`
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int     `json:"count"`
}

// Histogram buckets a measure into `bins` equal-width buckets.
// A single distinct value yields one bucket holding everything.
func Histogram(view RecordView, measure string, bins int) []Bucket {
	values := collectValid(view, measure)
	if len(values) == 0 {
		return nil
	}
	if bins < 1 {
		bins = 1
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if min == max {
		return []Bucket{{
			Label: formatBucketLabel(min, max),
			From:  min,
			To:    max,
			Count: len(values),
		}}
	}

	width := (max - min) / float64(bins)
	buckets := make([]Bucket, bins)
	for i := range buckets {
		from := min + float64(i)*width
		to := from + width
		buckets[i] = Bucket{Label: formatBucketLabel(from, to), From: from, To: to}
	}

	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1 // max value lands in the last bucket
		}
		buckets[idx].Count++
	}
	return buckets
}

// DensityGrid bins two measures into an nx × ny count grid.
// Records missing either measure are excluded.
func DensityGrid(view RecordView, xMeasure, yMeasure string, nx, ny int) *Grid {
	if nx < 1 || ny < 1 {
		return nil
	}

	type pair struct{ x, y float64 }
	var pairs []pair
	for i := 0; i < view.Len(); i++ {
		x := view.Measure(i, xMeasure)
		y := view.Measure(i, yMeasure)
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		pairs = append(pairs, pair{x, y})
	}
	if len(pairs) == 0 {
		return nil
	}

	xMin, xMax := pairs[0].x, pairs[0].x
	yMin, yMax := pairs[0].y, pairs[0].y
	for _, p := range pairs[1:] {
		if p.x < xMin {
			xMin = p.x
		}
		if p.x > xMax {
			xMax = p.x
		}
		if p.y < yMin {
			yMin = p.y
		}
		if p.y > yMax {
			yMax = p.y
		}
	}

	cells := make([][]int, ny)
	for i := range cells {
		cells[i] = make([]int, nx)
	}

	xWidth := (xMax - xMin) / float64(nx)
	yWidth := (yMax - yMin) / float64(ny)

	maxCell := 0
	for _, p := range pairs {
		xi, yi := 0, 0
		if xWidth > 0 {
			xi = int((p.x - xMin) / xWidth)
			if xi >= nx {
				xi = nx - 1
			}
		}
		if yWidth > 0 {
			yi = int((p.y - yMin) / yWidth)
			if yi >= ny {
				yi = ny - 1
			}
		}
		cells[yi][xi]++
		if cells[yi][xi] > maxCell {
			maxCell = cells[yi][xi]
		}
	}

	return &Grid{
		XMin: xMin, XMax: xMax,
		YMin: yMin, YMax: yMax,
		Cells:   cells,
		MaxCell: maxCell,
	}
}

// CorrelationMatrix computes pairwise Pearson r over the named measures.
// Each pair uses complete cases only (rows where both values are known).
// A zero-variance column correlates 0 with everything except itself.
func CorrelationMatrix(view RecordView, measures []string) *Matrix {
	n := len(measures)
	m := &Matrix{
		Labels: make([]string, n),
		Cells:  make([][]float64, n),
	}
	for i, key := range measures {
		m.Labels[i] = LabelForDimension(key)
		m.Cells[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		m.Cells[i][i] = 1
		for j := i + 1; j < n; j++ {
			r := pearson(view, measures[i], measures[j])
			m.Cells[i][j] = r
			m.Cells[j][i] = r
		}
	}
	return m
}

func pearson(view RecordView, a, b string) float64 {
	var xs, ys []float64
	for i := 0; i < view.Len(); i++ {
		x := view.Measure(i, a)
		y := view.Measure(i, b)
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	n := float64(len(xs))
	if n < 2 {
		return 0
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

// FiveNumberByGroup computes a five-number summary of a measure per value of
// a grouping dimension. Groups come back sorted by label.
func FiveNumberByGroup(view RecordView, dimension, measure string) []FiveNum {
	groups := GroupAndAggregate(view, []string{dimension}, measure, "count", SortAlphaAsc, 0)

	result := make([]FiveNum, 0, len(groups))
	for _, g := range groups {
		values := collectValid(g.View, measure)
		if len(values) == 0 {
			result = append(result, FiveNum{Label: g.Label})
			continue
		}
		sort.Float64s(values)
		result = append(result, FiveNum{
			Label:  g.Label,
			Count:  len(values),
			Min:    values[0],
			Q1:     quantile(values, 0.25),
			Median: quantile(values, 0.5),
			Q3:     quantile(values, 0.75),
			Max:    values[len(values)-1],
		})
	}
	return result
}

// quantile interpolates linearly over a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// TopByMeasure returns a view of the n records with the largest values of a
// measure, descending. Ties keep source order.
func TopByMeasure(view RecordView, measure string, n int) RecordView {
	indices := make([]int, view.Len())
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return view.Measure(indices[a], measure) > view.Measure(indices[b], measure)
	})
	if n > 0 && len(indices) > n {
		indices = indices[:n]
	}
	return newSubView(view, indices)
}

// MonthlySeries sums a measure per value of a YYYY-MM month dimension,
// chronological. Records with an empty month are excluded.
func MonthlySeries(view RecordView, monthDimension, measure string) []SeriesPoint {
	groups := GroupAndAggregate(view, []string{monthDimension}, measure, "sum", SortKeyAsc, 0)

	series := make([]SeriesPoint, 0, len(groups))
	for _, g := range groups {
		if g.Key == "" {
			continue
		}
		series = append(series, SeriesPoint{
			Key:   g.Key,
			Label: MonthLabel(g.Key),
			Value: RoundTo2(g.Value),
			Count: g.Count,
		})
	}
	return series
}

// ScatterSlices extracts per-slice scatter points: one slice per value of the
// slicing dimension (chronological by key), point = (x, y) with size and tag.
// Records missing x or y are excluded; a missing size falls back to 1.
func ScatterSlices(view RecordView, sliceDim, xMeasure, yMeasure, sizeMeasure, tagDim string) []ScatterSlice {
	groups := GroupAndAggregate(view, []string{sliceDim}, xMeasure, "count", SortKeyAsc, 0)

	slices := make([]ScatterSlice, 0, len(groups))
	for _, g := range groups {
		if g.Key == "" {
			continue
		}
		slice := ScatterSlice{Key: g.Key, Label: MonthLabel(g.Key)}
		for i := 0; i < g.View.Len(); i++ {
			x := g.View.Measure(i, xMeasure)
			y := g.View.Measure(i, yMeasure)
			if math.IsNaN(x) || math.IsNaN(y) {
				continue
			}
			size := g.View.Measure(i, sizeMeasure)
			if math.IsNaN(size) || size <= 0 {
				size = 1
			}
			slice.Points = append(slice.Points, ScatterPoint{
				X:    x,
				Y:    RoundTo2(y),
				Size: size,
				Tag:  g.View.Dimension(i, tagDim),
			})
		}
		if len(slice.Points) > 0 {
			slices = append(slices, slice)
		}
	}
	return slices
}

// HierarchyCounts builds a nested count tree along a dimension path,
// e.g. admission type → condition → gender. Children sort by count
// descending at every level.
func HierarchyCounts(view RecordView, path []string) *BreakdownNode {
	root := &BreakdownNode{Label: "All", Count: view.Len()}
	if len(path) == 0 || view.Len() == 0 {
		return root
	}
	root.Children = breakdownLevel(view, path)
	return root
}

func breakdownLevel(view RecordView, path []string) []BreakdownNode {
	groups := GroupAndAggregate(view, path[:1], "", "count", SortValueDesc, 0)

	nodes := make([]BreakdownNode, 0, len(groups))
	for _, g := range groups {
		node := BreakdownNode{Label: g.Label, Count: g.Count}
		if len(path) > 1 {
			node.Children = breakdownLevel(g.View, path[1:])
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// ============================================================================
// HELPERS
// ============================================================================

// collectValid gathers a measure's values, skipping NaN (unknown) entries.
func collectValid(view RecordView, measure string) []float64 {
	values := make([]float64, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		v := view.Measure(i, measure)
		if math.IsNaN(v) {
			continue
		}
		values = append(values, v)
	}
	return values
}

// AvgValid is AvgMeasure over known values only.
func AvgValid(view RecordView, measure string) float64 {
	values := collectValid(view, measure)
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// MonthLabel converts a "2006-01" key into "Jan 2006". Unparseable keys
// come back unchanged.
func MonthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("Jan 2006")
}

func formatBucketLabel(from, to float64) string {
	if from == to {
		return trimFloat(from)
	}
	return fmt.Sprintf("%s–%s", trimFloat(from), trimFloat(to))
}

func trimFloat(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
