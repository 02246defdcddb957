package views

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/wardview/wardview/analytics"
	"github.com/wardview/wardview/dataset"
)

// ============================================================================
// VIEWS — The Dashboard's Fixed Set of Aggregate Views
// ============================================================================
// Each builder is an independent pure read of the shared table: it computes
// one small aggregation and wraps it in a render-ready View. Builders have
// no data dependencies on each other and no side effects; order is only the
// page layout order.
// ============================================================================

// View kinds.
const (
	KindCards     = "cards"
	KindChart     = "chart"
	KindSummary   = "summary"
	KindGrid      = "grid"
	KindMatrix    = "matrix"
	KindTable     = "table"
	KindScatter   = "scatter"
	KindBreakdown = "breakdown"
)

// View is one rendered chart, table, or panel of the dashboard.
// Exactly one payload field is set, matching Kind.
type View struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Caption string `json:"caption,omitempty"`
	Kind    string `json:"kind"`

	Cards     []Card                    `json:"cards,omitempty"`
	Chart     *analytics.ChartConfig    `json:"chart,omitempty"`
	Summary   []analytics.FiveNum       `json:"summary,omitempty"`
	Grid      *analytics.Grid           `json:"grid,omitempty"`
	Matrix    *analytics.Matrix         `json:"matrix,omitempty"`
	Table     *analytics.TableData      `json:"table,omitempty"`
	Slices    []analytics.ScatterSlice  `json:"slices,omitempty"`
	Breakdown *analytics.BreakdownNode  `json:"breakdown,omitempty"`
}

// Card is one headline figure of the overview panel.
type Card struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Config tunes the view builders. Zero values fall back to defaults.
type Config struct {
	AgeBins       int      `yaml:"ageBins"`
	HeatBinsX     int      `yaml:"heatBinsX"`
	HeatBinsY     int      `yaml:"heatBinsY"`
	TopConditions int      `yaml:"topConditions"`
	TopPatients   int      `yaml:"topPatients"`
	Enabled       []string `yaml:"enabled"` // empty = all views
}

// DefaultConfig mirrors the bin and top-N sizes of the dashboard's
// reference layout.
func DefaultConfig() Config {
	return Config{
		AgeBins:       20,
		HeatBinsX:     20,
		HeatBinsY:     15,
		TopConditions: 10,
		TopPatients:   5,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.AgeBins <= 0 {
		c.AgeBins = d.AgeBins
	}
	if c.HeatBinsX <= 0 {
		c.HeatBinsX = d.HeatBinsX
	}
	if c.HeatBinsY <= 0 {
		c.HeatBinsY = d.HeatBinsY
	}
	if c.TopConditions <= 0 {
		c.TopConditions = d.TopConditions
	}
	if c.TopPatients <= 0 {
		c.TopPatients = d.TopPatients
	}
	return c
}

// Default color palette for chart series.
var palette = []string{
	"#118AB2", "#FFD166", "#EF476F", "#06D6A0", "#8B5CF6",
	"#F97316", "#EC4899", "#84CC16", "#4F46E5", "#06B6D4",
}

type builder struct {
	id    string
	build func(*dataset.Table, analytics.RecordView, Config) View
}

// Registry order is page layout order.
var registry = []builder{
	{"overview", buildOverview},
	{"gender", buildGender},
	{"age", buildAge},
	{"conditions", buildConditions},
	{"billing-by-admission", buildBillingByAdmission},
	{"age-stay-heat", buildAgeStayHeat},
	{"blood-gender", buildBloodGender},
	{"billing-trend", buildBillingTrend},
	{"correlation", buildCorrelation},
	{"top-billed", buildTopBilled},
	{"billing-vs-age", buildBillingVsAge},
	{"admission-sunburst", buildAdmissionSunburst},
}

// IDs returns all view ids in layout order.
func IDs() []string {
	return lo.Map(registry, func(b builder, _ int) string { return b.id })
}

// BuildAll computes every enabled view over the table, in layout order.
func BuildAll(t *dataset.Table, cfg Config) []View {
	cfg = cfg.withDefaults()
	view := t.View()

	enabled := func(string) bool { return true }
	if len(cfg.Enabled) > 0 {
		set := make(map[string]bool, len(cfg.Enabled))
		for _, id := range cfg.Enabled {
			set[id] = true
		}
		enabled = func(id string) bool { return set[id] }
	}

	var result []View
	for _, b := range registry {
		if !enabled(b.id) {
			continue
		}
		result = append(result, b.build(t, view, cfg))
	}
	return result
}

// ============================================================================
// 1. OVERVIEW
// ============================================================================

func buildOverview(_ *dataset.Table, view analytics.RecordView, _ Config) View {
	totalBilling := analytics.SumMeasure(view, dataset.MeasBilling)
	return View{
		ID:      "overview",
		Title:   "Healthcare Data Dashboard",
		Caption: "Headline figures over the cleaned patient dataset.",
		Kind:    KindCards,
		Cards: []Card{
			{Label: "Total Patient Records", Value: analytics.FormatInt(view.Len())},
			{Label: "Total Billing", Value: analytics.FormatMoney(totalBilling)},
			{Label: "Average Billing", Value: analytics.FormatMoney(analytics.AvgMeasure(view, dataset.MeasBilling))},
			{Label: "Average Stay (days)", Value: trim1(analytics.AvgValid(view, dataset.MeasStay))},
		},
	}
}

// ============================================================================
// 2. GENDER DISTRIBUTION
// ============================================================================

func buildGender(_ *dataset.Table, view analytics.RecordView, _ Config) View {
	groups := analytics.GroupAndAggregate(view,
		[]string{dataset.DimGender}, "", "count", analytics.SortValueAsc, 0)

	return View{
		ID:    "gender",
		Title: "Gender Distribution",
		Caption: "Distribution of patients by gender. Reveals imbalance in gender " +
			"representation and conditions more prevalent in one gender.",
		Kind: KindChart,
		Chart: &analytics.ChartConfig{
			ChartType: "hbar",
			Title:     "Gender Split",
			XAxis:     "Count",
			YAxis:     "Gender",
			Series:    []analytics.ChartSeries{{Name: "Patients", Data: groupPoints(groups)}},
			Colors:    []string{"#FFD166", "#118AB2"},
		},
	}
}

// ============================================================================
// 3. AGE DISTRIBUTION
// ============================================================================

func buildAge(_ *dataset.Table, view analytics.RecordView, cfg Config) View {
	buckets := analytics.Histogram(view, dataset.MeasAge, cfg.AgeBins)

	points := lo.Map(buckets, func(b analytics.Bucket, _ int) analytics.ChartPoint {
		return analytics.ChartPoint{Label: b.Label, Value: float64(b.Count)}
	})

	return View{
		ID:    "age",
		Title: "Age Distribution",
		Caption: "How patients are distributed by age. Age group trends let " +
			"hospitals tailor care, from pediatrics to geriatric services.",
		Kind: KindChart,
		Chart: &analytics.ChartConfig{
			ChartType: "histogram",
			Title:     "Age Distribution",
			XAxis:     "Age",
			YAxis:     "Patients",
			Series:    []analytics.ChartSeries{{Name: "Patients", Data: points}},
			Colors:    []string{"#118AB2"},
		},
	}
}

// ============================================================================
// 4. TOP MEDICAL CONDITIONS
// ============================================================================

func buildConditions(_ *dataset.Table, view analytics.RecordView, cfg Config) View {
	groups := analytics.GroupAndAggregate(view,
		[]string{dataset.DimCondition}, "", "count", analytics.SortValueDesc, cfg.TopConditions)

	return View{
		ID:    "conditions",
		Title: "Top Medical Conditions",
		Caption: "The most commonly diagnosed medical conditions. Helps clinicians " +
			"and admins focus staff and resources on high-frequency issues.",
		Kind: KindChart,
		Chart: &analytics.ChartConfig{
			ChartType: "bar",
			Title:     "Top Medical Conditions",
			XAxis:     "Medical Condition",
			YAxis:     "Count",
			Series:    []analytics.ChartSeries{{Name: "Patients", Data: groupPoints(groups)}},
			Colors:    palette[:1],
		},
	}
}

// ============================================================================
// 5. BILLING BY ADMISSION TYPE
// ============================================================================

func buildBillingByAdmission(_ *dataset.Table, view analytics.RecordView, _ Config) View {
	summary := analytics.FiveNumberByGroup(view, dataset.DimAdmissionType, dataset.MeasBilling)

	return View{
		ID:    "billing-by-admission",
		Title: "Billing by Admission Type",
		Caption: "Spread of billing amounts per admission type: how costs differ " +
			"between emergency, elective, and urgent admissions.",
		Kind:    KindSummary,
		Summary: summary,
	}
}

// ============================================================================
// 6. AGE VS LENGTH OF STAY
// ============================================================================

func buildAgeStayHeat(_ *dataset.Table, view analytics.RecordView, cfg Config) View {
	grid := analytics.DensityGrid(view, dataset.MeasAge, dataset.MeasStay, cfg.HeatBinsX, cfg.HeatBinsY)
	if grid != nil {
		grid.Title = "Patient Age vs Length of Stay"
		grid.XLabel = "Age"
		grid.YLabel = "Length of Stay (Days)"
	}

	return View{
		ID:    "age-stay-heat",
		Title: "Age vs Length of Stay",
		Caption: "Density of patients by age and length of hospital stay. Hot " +
			"regions show where patients cluster; reveals whether certain age " +
			"groups tend to stay longer.",
		Kind: KindGrid,
		Grid: grid,
	}
}

// ============================================================================
// 7. BLOOD TYPE BY GENDER
// ============================================================================

func buildBloodGender(_ *dataset.Table, view analytics.RecordView, _ Config) View {
	groups := analytics.GroupAndAggregate(view,
		[]string{dataset.DimBloodType, dataset.DimGender}, "", "count", analytics.SortValueDesc, 0)

	return View{
		ID:    "blood-gender",
		Title: "Blood Type Distribution by Gender",
		Caption: "How blood types are distributed across genders. Useful for blood " +
			"bank inventory planning and understanding genetic distributions.",
		Kind: KindChart,
		Chart: &analytics.ChartConfig{
			ChartType:  "stacked_bar",
			Title:      "Blood Type Distribution by Gender",
			XAxis:      "Blood Type",
			YAxis:      "Count",
			Series:     stackedSeries(groups),
			Colors:     []string{"#8B0000", "#DC143C", "#FF6347"},
			ShowLegend: true,
		},
	}
}

// ============================================================================
// 8. BILLING OVER TIME
// ============================================================================

func buildBillingTrend(_ *dataset.Table, view analytics.RecordView, _ Config) View {
	series := analytics.MonthlySeries(view, dataset.DimAdmissionMonth, dataset.MeasBilling)

	points := lo.Map(series, func(p analytics.SeriesPoint, _ int) analytics.ChartPoint {
		return analytics.ChartPoint{Label: p.Key, Value: p.Value}
	})

	return View{
		ID:    "billing-trend",
		Title: "Billing Over Time",
		Caption: "Total billing per admission month. Reveals seasonal trends, " +
			"spikes, or dips in hospital revenue for operational forecasting.",
		Kind: KindChart,
		Chart: &analytics.ChartConfig{
			ChartType: "line",
			Title:     "Total Billing Amount Over Time",
			XAxis:     "Month",
			YAxis:     "Billing Amount",
			Series:    []analytics.ChartSeries{{Name: "Billing", Data: points}},
			Colors:    []string{"#EF476F"},
		},
	}
}

// ============================================================================
// 9. CORRELATION MATRIX
// ============================================================================

func buildCorrelation(_ *dataset.Table, view analytics.RecordView, _ Config) View {
	matrix := analytics.CorrelationMatrix(view, []string{
		dataset.MeasAge, dataset.MeasBilling, dataset.MeasStay,
	})
	matrix.Title = "Correlation Heatmap"

	return View{
		ID:    "correlation",
		Title: "Correlation Heatmap",
		Caption: "Pairwise correlation among age, billing amount, and length of " +
			"stay. Strong correlations help identify underlying patterns.",
		Kind:   KindMatrix,
		Matrix: matrix,
	}
}

// ============================================================================
// 10. TOP BILLED PATIENTS
// ============================================================================

func buildTopBilled(t *dataset.Table, view analytics.RecordView, cfg Config) View {
	top := analytics.TopByMeasure(view, dataset.MeasBilling, cfg.TopPatients)

	rows := make([][]string, 0, top.Len())
	for i := 0; i < top.Len(); i++ {
		p := t.Patient(top, i)
		rows = append(rows, []string{
			p.Name,
			analytics.FormatMoney(p.BillingAmount),
			p.Condition,
			p.Hospital,
			p.AdmissionType,
		})
	}

	return View{
		ID:    "top-billed",
		Title: "Top Highest Billing Patients",
		Caption: "The patients with the highest billing amounts. Useful for " +
			"reviewing high-cost cases and what drives healthcare expenses.",
		Kind: KindTable,
		Table: &analytics.TableData{
			Title: "Top Highest Billing Patients",
			Columns: []analytics.Column{
				{Key: "name", Label: "Name", Align: "left"},
				{Key: "billing", Label: "Billing Amount", Align: "right"},
				{Key: "condition", Label: "Medical Condition", Align: "left"},
				{Key: "hospital", Label: "Hospital", Align: "left"},
				{Key: "admission_type", Label: "Admission Type", Align: "left"},
			},
			Rows: rows,
		},
	}
}

// ============================================================================
// 11. BILLING VS AGE, MONTH BY MONTH
// ============================================================================

func buildBillingVsAge(_ *dataset.Table, view analytics.RecordView, _ Config) View {
	slices := analytics.ScatterSlices(view,
		dataset.DimAdmissionMonth, dataset.MeasAge, dataset.MeasBilling,
		dataset.MeasStay, dataset.DimCondition)

	return View{
		ID:    "billing-vs-age",
		Title: "Billing vs Age (Month by Month)",
		Caption: "Billing against age, one slice per admission month. Point size " +
			"carries length of stay, giving a dynamic view of patient " +
			"characteristics over time.",
		Kind:   KindScatter,
		Slices: slices,
	}
}

// ============================================================================
// 12. ADMISSION BREAKDOWN
// ============================================================================

func buildAdmissionSunburst(_ *dataset.Table, view analytics.RecordView, _ Config) View {
	tree := analytics.HierarchyCounts(view, []string{
		dataset.DimAdmissionType, dataset.DimCondition, dataset.DimGender,
	})

	return View{
		ID:    "admission-sunburst",
		Title: "Hierarchical Breakdown: Admission, Condition, Gender",
		Caption: "Multi-level view of patient volume: admission type at the " +
			"center, broken down by medical condition, then gender. Shows which " +
			"conditions dominate each admission type.",
		Kind:      KindBreakdown,
		Breakdown: tree,
	}
}

// ============================================================================
// HELPERS
// ============================================================================

func groupPoints(groups []analytics.Group) []analytics.ChartPoint {
	return lo.Map(groups, func(g analytics.Group, _ int) analytics.ChartPoint {
		return analytics.ChartPoint{Label: g.Label, Value: g.Value}
	})
}

// stackedSeries pivots two-level groups into one series per sub-key,
// aligned on the primary group labels.
func stackedSeries(groups []analytics.Group) []analytics.ChartSeries {
	subKeySet := make(map[string]bool)
	var subKeys []string
	for _, g := range groups {
		for _, sg := range g.SubGroups {
			if !subKeySet[sg.Key] {
				subKeySet[sg.Key] = true
				subKeys = append(subKeys, sg.Key)
			}
		}
	}

	series := make([]analytics.ChartSeries, 0, len(subKeys))
	for _, key := range subKeys {
		s := analytics.ChartSeries{Name: key}
		for _, g := range groups {
			var val float64
			for _, sg := range g.SubGroups {
				if sg.Key == key {
					val = sg.Value
					break
				}
			}
			s.Data = append(s.Data, analytics.ChartPoint{Label: g.Label, Value: val})
		}
		series = append(series, s)
	}
	return series
}

func trim1(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
