package dataset

import (
	"sort"
	"time"

	"github.com/wardview/wardview/analytics"
)

// ============================================================================
// SCHEMA — Dataset Shape Description
// ============================================================================
// Describes the loaded table for the CLI --discover mode and /api/schema:
// per-dimension cardinality and sample values, per-measure range and mean.
// Built from the cleaned table, not the raw file, so it reflects exactly
// what the views compute over.
// ============================================================================

// Schema describes the shape of a loaded dataset.
type Schema struct {
	Name         string          `json:"name"`
	Rows         int             `json:"rows"`
	Dimensions   []DimensionMeta `json:"dimensions"`
	Measures     []MeasureMeta   `json:"measures"`
	DescribedAt  string          `json:"describedAt"`
	LoadStats    LoadStats       `json:"loadStats"`
}

// DimensionMeta describes a string field used for grouping/filtering.
type DimensionMeta struct {
	Key          string   `json:"key"`
	DisplayName  string   `json:"displayName"`
	Cardinality  int      `json:"cardinality"`
	SampleValues []string `json:"sampleValues"`
	IsTemporal   bool     `json:"isTemporal,omitempty"`
}

// MeasureMeta describes a numeric field used for aggregation.
type MeasureMeta struct {
	Key         string  `json:"key"`
	DisplayName string  `json:"displayName"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Mean        float64 `json:"mean"`
	Unit        string  `json:"unit,omitempty"`
}

const maxSampleValues = 8

// Describe builds a Schema from a loaded table.
func Describe(t *Table) *Schema {
	view := t.View()

	sch := &Schema{
		Name:        "Healthcare Patient Records",
		Rows:        view.Len(),
		DescribedAt: time.Now().Format(time.RFC3339),
		LoadStats:   t.Stats,
	}

	for _, key := range view.DimensionKeys() {
		values := analytics.UniqueValues(view, key)
		samples := values
		if len(samples) > maxSampleValues {
			samples = append([]string(nil), samples[:maxSampleValues]...)
		}
		sort.Strings(samples)
		sch.Dimensions = append(sch.Dimensions, DimensionMeta{
			Key:          key,
			DisplayName:  analytics.LabelForDimension(key),
			Cardinality:  len(values),
			SampleValues: samples,
			IsTemporal:   key == DimAdmissionMonth,
		})
	}

	units := map[string]string{
		MeasAge:     "years",
		MeasBilling: "currency",
		MeasStay:    "days",
	}
	for _, key := range view.MeasureKeys() {
		sch.Measures = append(sch.Measures, MeasureMeta{
			Key:         key,
			DisplayName: analytics.LabelForDimension(key),
			Min:         analytics.RoundTo2(analytics.MinMeasure(view, key)),
			Max:         analytics.RoundTo2(analytics.MaxMeasure(view, key)),
			Mean:        analytics.RoundTo2(analytics.AvgValid(view, key)),
			Unit:        units[key],
		})
	}

	return sch
}
