package dataset

import (
	"math"
	"time"

	"github.com/wardview/wardview/analytics"
)

// ============================================================================
// PATIENT — Typed Record + Analytics Binding
// ============================================================================

// Patient is one row of the healthcare dataset after cleaning.
type Patient struct {
	Name          string    `json:"name"`
	Age           int       `json:"age"`
	Gender        string    `json:"gender"`
	BloodType     string    `json:"bloodType"`
	Condition     string    `json:"condition"`
	Admitted      time.Time `json:"admitted"`
	Doctor        string    `json:"doctor"`
	Hospital      string    `json:"hospital"`
	Insurance     string    `json:"insurance"`
	BillingAmount float64   `json:"billingAmount"`
	RoomNumber    string    `json:"roomNumber"`
	AdmissionType string    `json:"admissionType"`
	Discharged    time.Time `json:"discharged"` // zero when unknown
	Medication    string    `json:"medication"`
	TestResults   string    `json:"testResults"`

	// LengthOfStay is whole days between admission and discharge,
	// -1 when the discharge date is missing or precedes admission.
	LengthOfStay int `json:"lengthOfStay"`
}

// AdmissionMonth returns the admission month as a sortable "2006-01" key.
func (p Patient) AdmissionMonth() string {
	if p.Admitted.IsZero() {
		return ""
	}
	return p.Admitted.Format("2006-01")
}

// StayDays returns the length of stay as a measure, NaN when unknown.
// The analytics layer skips NaN values in distribution computations.
func (p Patient) StayDays() float64 {
	if p.LengthOfStay < 0 {
		return math.NaN()
	}
	return float64(p.LengthOfStay)
}

// Dimension and measure keys exposed to the analytics layer.
const (
	DimGender         = "gender"
	DimBloodType      = "blood_type"
	DimCondition      = "condition"
	DimAdmissionType  = "admission_type"
	DimHospital       = "hospital"
	DimInsurance      = "insurance"
	DimDoctor         = "doctor"
	DimMedication     = "medication"
	DimTestResults    = "test_results"
	DimAdmissionMonth = "admission_month"

	MeasAge     = "age"
	MeasBilling = "billing_amount"
	MeasStay    = "length_of_stay"
)

// adapter binds Patient structs into a RecordView without copying.
// Declared once; Bind is cheap.
var adapter = analytics.NewDomainAdapter[Patient]().
	Dimension(DimGender, func(p Patient) string { return p.Gender }).
	Dimension(DimBloodType, func(p Patient) string { return p.BloodType }).
	Dimension(DimCondition, func(p Patient) string { return p.Condition }).
	Dimension(DimAdmissionType, func(p Patient) string { return p.AdmissionType }).
	Dimension(DimHospital, func(p Patient) string { return p.Hospital }).
	Dimension(DimInsurance, func(p Patient) string { return p.Insurance }).
	Dimension(DimDoctor, func(p Patient) string { return p.Doctor }).
	Dimension(DimMedication, func(p Patient) string { return p.Medication }).
	Dimension(DimTestResults, func(p Patient) string { return p.TestResults }).
	Dimension(DimAdmissionMonth, Patient.AdmissionMonth).
	Measure(MeasAge, func(p Patient) float64 { return float64(p.Age) }).
	Measure(MeasBilling, func(p Patient) float64 { return p.BillingAmount }).
	Measure(MeasStay, Patient.StayDays)

// Table is the immutable in-memory dataset: cleaned patient records plus
// load statistics. Every dashboard view is a pure read of one Table.
type Table struct {
	Patients []Patient
	Stats    LoadStats
}

// View binds the table into the analytics access layer. Zero-copy.
func (t *Table) View() analytics.RecordView {
	return adapter.Bind(t.Patients)
}

// Patient returns the record behind index i of a (possibly filtered) view
// derived from this table.
func (t *Table) Patient(view analytics.RecordView, i int) Patient {
	src := analytics.SourceIndex(view, i)
	if src < 0 || src >= len(t.Patients) {
		return Patient{}
	}
	return t.Patients[src]
}
