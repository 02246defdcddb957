package analytics

import (
	"math"
	"testing"
)

func TestHistogram(t *testing.T) {
	view := patientFixture()
	buckets := Histogram(view, "age", 5)

	if len(buckets) != 5 {
		t.Fatalf("got %d buckets, want 5", len(buckets))
	}
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	if total != view.Len() {
		t.Errorf("bucket counts sum to %d, want %d", total, view.Len())
	}
	// Max value (70) must land in the last bucket, not fall off the end.
	if buckets[len(buckets)-1].Count == 0 {
		t.Error("last bucket empty; max value lost")
	}
	last := buckets[len(buckets)-1]
	if buckets[0].From != 21 || math.Abs(last.To-70) > 1e-9 {
		t.Errorf("range [%v, %v], want [21, 70]", buckets[0].From, last.To)
	}
}

func TestHistogramSingleValue(t *testing.T) {
	view := NewSliceView([]Record{
		{Measures: map[string]float64{"age": 40}},
		{Measures: map[string]float64{"age": 40}},
	})
	buckets := Histogram(view, "age", 10)
	if len(buckets) != 1 || buckets[0].Count != 2 {
		t.Errorf("single distinct value should yield one bucket of 2, got %+v", buckets)
	}
}

func TestHistogramSkipsUnknown(t *testing.T) {
	view := patientFixture()
	buckets := Histogram(view, "length_of_stay", 3)
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	// Two fixture stays are NaN.
	if total != 6 {
		t.Errorf("bucket counts sum to %d, want 6 (NaN excluded)", total)
	}
}

func TestDensityGrid(t *testing.T) {
	view := patientFixture()
	grid := DensityGrid(view, "age", "length_of_stay", 4, 4)
	if grid == nil {
		t.Fatal("nil grid")
	}
	if len(grid.Cells) != 4 || len(grid.Cells[0]) != 4 {
		t.Fatalf("grid is %dx%d, want 4x4", len(grid.Cells), len(grid.Cells[0]))
	}

	total, max := 0, 0
	for _, row := range grid.Cells {
		for _, c := range row {
			total += c
			if c > max {
				max = c
			}
		}
	}
	if total != 6 {
		t.Errorf("cell counts sum to %d, want 6 (records missing a stay excluded)", total)
	}
	if grid.MaxCell != max {
		t.Errorf("MaxCell = %d, actual max %d", grid.MaxCell, max)
	}
	if grid.YMin != 2 || grid.YMax != 12 {
		t.Errorf("stay range [%v, %v], want [2, 12]", grid.YMin, grid.YMax)
	}
}

func TestCorrelationMatrix(t *testing.T) {
	// x, double = 2x, inverse = -x, flat = constant.
	var records []Record
	for _, x := range []float64{1, 2, 3, 4, 5} {
		records = append(records, Record{Measures: map[string]float64{
			"x": x, "double": 2 * x, "inverse": -x, "flat": 7,
		}})
	}
	view := NewSliceView(records)

	m := CorrelationMatrix(view, []string{"x", "double", "inverse", "flat"})
	if len(m.Labels) != 4 {
		t.Fatalf("got %d labels, want 4", len(m.Labels))
	}

	approx := func(got, want float64) bool { return math.Abs(got-want) < 1e-9 }

	for i := range m.Cells {
		if m.Cells[i][i] != 1 {
			t.Errorf("diagonal [%d][%d] = %v, want 1", i, i, m.Cells[i][i])
		}
		for j := range m.Cells[i] {
			if m.Cells[i][j] != m.Cells[j][i] {
				t.Errorf("matrix not symmetric at [%d][%d]", i, j)
			}
		}
	}
	if !approx(m.Cells[0][1], 1) {
		t.Errorf("corr(x, 2x) = %v, want 1", m.Cells[0][1])
	}
	if !approx(m.Cells[0][2], -1) {
		t.Errorf("corr(x, -x) = %v, want -1", m.Cells[0][2])
	}
	if !approx(m.Cells[0][3], 0) {
		t.Errorf("corr(x, const) = %v, want 0", m.Cells[0][3])
	}
}

func TestCorrelationSkipsUnknownPairs(t *testing.T) {
	view := patientFixture()
	m := CorrelationMatrix(view, []string{"age", "billing_amount", "length_of_stay"})
	for i, row := range m.Cells {
		for j, v := range row {
			if math.IsNaN(v) {
				t.Errorf("cell [%d][%d] is NaN", i, j)
			}
		}
	}
}

func TestFiveNumberByGroup(t *testing.T) {
	view := patientFixture()
	summaries := FiveNumberByGroup(view, "gender", "length_of_stay")

	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}
	// Alphabetical: Female first.
	f := summaries[0]
	if f.Label != "Female" || f.Count != 4 {
		t.Fatalf("summaries[0] = %s/%d, want Female/4", f.Label, f.Count)
	}
	// Female stays sorted: 3, 4, 6, 12.
	if f.Min != 3 || f.Max != 12 {
		t.Errorf("Female min/max = %v/%v, want 3/12", f.Min, f.Max)
	}
	if f.Median != 5 {
		t.Errorf("Female median = %v, want 5", f.Median)
	}
	if f.Q1 != 3.75 || f.Q3 != 7.5 {
		t.Errorf("Female Q1/Q3 = %v/%v, want 3.75/7.5", f.Q1, f.Q3)
	}

	m := summaries[1]
	if m.Label != "Male" || m.Count != 2 {
		t.Fatalf("summaries[1] = %s/%d, want Male/2 (unknown stays excluded)", m.Label, m.Count)
	}
	if m.Median != 4.5 {
		t.Errorf("Male median = %v, want 4.5", m.Median)
	}
}

func TestTopByMeasure(t *testing.T) {
	view := patientFixture()
	top := TopByMeasure(view, "billing_amount", 3)

	if top.Len() != 3 {
		t.Fatalf("got %d records, want 3", top.Len())
	}
	want := []float64{52000, 48000, 33000}
	for i, w := range want {
		if got := top.Measure(i, "billing_amount"); got != w {
			t.Errorf("top[%d] billing = %v, want %v", i, got, w)
		}
	}
}

func TestMonthlySeries(t *testing.T) {
	view := patientFixture()
	series := MonthlySeries(view, "admission_month", "billing_amount")

	want := []struct {
		key   string
		label string
		value float64
		count int
	}{
		{"2024-01", "Jan 2024", 78000, 3},
		{"2024-02", "Feb 2024", 56500, 3},
		{"2024-03", "Mar 2024", 100000, 2},
	}
	if len(series) != len(want) {
		t.Fatalf("got %d points, want %d", len(series), len(want))
	}
	for i, w := range want {
		p := series[i]
		if p.Key != w.key || p.Label != w.label || p.Value != w.value || p.Count != w.count {
			t.Errorf("series[%d] = %+v, want %+v", i, p, w)
		}
	}
}

func TestScatterSlices(t *testing.T) {
	view := patientFixture()
	slices := ScatterSlices(view, "admission_month", "age", "billing_amount", "length_of_stay", "condition")

	if len(slices) != 3 {
		t.Fatalf("got %d slices, want 3", len(slices))
	}
	if slices[0].Key != "2024-01" || len(slices[0].Points) != 3 {
		t.Errorf("slices[0] = %s with %d points, want 2024-01 with 3", slices[0].Key, len(slices[0].Points))
	}

	// The record with an unknown stay keeps its point but falls back to size 1.
	var obesity *ScatterPoint
	for i := range slices[0].Points {
		if slices[0].Points[i].Tag == "Obesity" {
			obesity = &slices[0].Points[i]
		}
	}
	if obesity == nil {
		t.Fatal("Obesity point missing from January slice")
	}
	if obesity.Size != 1 {
		t.Errorf("unknown stay point size = %v, want fallback 1", obesity.Size)
	}
}

func TestHierarchyCounts(t *testing.T) {
	view := patientFixture()
	root := HierarchyCounts(view, []string{"admission_type", "gender"})

	if root.Count != 8 {
		t.Fatalf("root count = %d, want 8", root.Count)
	}
	total := 0
	for _, child := range root.Children {
		total += child.Count
		sub := 0
		for _, g := range child.Children {
			sub += g.Count
		}
		if sub != child.Count {
			t.Errorf("node %s: child counts sum to %d, want %d", child.Label, sub, child.Count)
		}
	}
	if total != root.Count {
		t.Errorf("level-1 counts sum to %d, want %d", total, root.Count)
	}
	// Count-descending at every level.
	for i := 1; i < len(root.Children); i++ {
		if root.Children[i].Count > root.Children[i-1].Count {
			t.Errorf("children not sorted by count desc: %v", root.Children)
		}
	}
}

func TestMonthLabel(t *testing.T) {
	if got := MonthLabel("2024-03"); got != "Mar 2024" {
		t.Errorf("MonthLabel(2024-03) = %q, want Mar 2024", got)
	}
	if got := MonthLabel("garbage"); got != "garbage" {
		t.Errorf("unparseable key should pass through, got %q", got)
	}
}

func TestAvgValid(t *testing.T) {
	view := patientFixture()
	// Valid stays: 2, 6, 4, 7, 3, 12 → mean 5.666...
	got := AvgValid(view, "length_of_stay")
	if math.Abs(got-34.0/6.0) > 1e-9 {
		t.Errorf("AvgValid = %v, want %v", got, 34.0/6.0)
	}
}
