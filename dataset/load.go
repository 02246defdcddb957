package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// ============================================================================
// LOADER — CSV → Table
// ============================================================================
// Pipeline, one pass:
//   1. Read header, normalize names (trim, snake_case), map to fields.
//   2. Parse each row: dates via a small set of accepted layouts,
//      numerics via strconv. Malformed rows are skipped and counted.
//   3. Derive length_of_stay = discharge − admission in whole days.
//   4. Clean: drop rows missing any critical field (age, gender, condition,
//      billing amount, admission date), counting drops per reason.
// Unknown columns are recorded and otherwise ignored.
// ============================================================================

// LoadStats describes what happened during a load.
type LoadStats struct {
	RowsRead       int            `json:"rowsRead"`
	RowsKept       int            `json:"rowsKept"`
	Malformed      int            `json:"malformed"`
	Dropped        map[string]int `json:"dropped"` // reason → count
	UnknownColumns []string       `json:"unknownColumns,omitempty"`
}

// Accepted date layouts, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"2-Jan-2006",
}

// Critical fields: a row missing any of these is dropped (the views that
// need them would otherwise silently undercount).
const (
	reasonNoAge       = "missing_age"
	reasonNoGender    = "missing_gender"
	reasonNoCondition = "missing_condition"
	reasonNoBilling   = "missing_billing"
	reasonNoAdmission = "missing_admission_date"
)

// Load reads and cleans a CSV file into a Table.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads and cleans CSV data into a Table.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	cols := make(map[string]int, len(headers))
	stats := LoadStats{Dropped: make(map[string]int)}
	for i, h := range headers {
		key := toSnakeCase(strings.TrimSpace(h))
		if _, known := knownColumns[key]; !known {
			stats.UnknownColumns = append(stats.UnknownColumns, strings.TrimSpace(h))
		}
		cols[key] = i
	}

	var patients []Patient
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.Malformed++
			continue
		}
		stats.RowsRead++

		p, reason := parseRow(row, cols)
		if reason != "" {
			stats.Dropped[reason]++
			continue
		}
		patients = append(patients, p)
	}

	if len(patients) == 0 {
		return nil, fmt.Errorf("dataset is empty after cleaning (%d rows read)", stats.RowsRead)
	}

	stats.RowsKept = len(patients)
	return &Table{Patients: patients, Stats: stats}, nil
}

// knownColumns maps normalized header names to nothing; membership marks a
// column the loader understands. "medical_condition" and "condition" are
// both accepted, likewise "insurance_provider"/"insurance".
var knownColumns = map[string]struct{}{
	"name": {}, "age": {}, "gender": {}, "blood_type": {},
	"medical_condition": {}, "condition": {},
	"date_of_admission": {}, "admission_date": {},
	"doctor": {}, "hospital": {},
	"insurance_provider": {}, "insurance": {},
	"billing_amount": {}, "room_number": {}, "admission_type": {},
	"discharge_date": {}, "medication": {}, "test_results": {},
	"record_id": {},
}

func parseRow(row []string, cols map[string]int) (Patient, string) {
	get := func(keys ...string) string {
		for _, k := range keys {
			if i, ok := cols[k]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
		}
		return ""
	}

	p := Patient{
		Name:          get("name"),
		Gender:        get("gender"),
		BloodType:     get("blood_type"),
		Condition:     get("medical_condition", "condition"),
		Doctor:        get("doctor"),
		Hospital:      get("hospital"),
		Insurance:     get("insurance_provider", "insurance"),
		RoomNumber:    get("room_number"),
		AdmissionType: get("admission_type"),
		Medication:    get("medication"),
		TestResults:   get("test_results"),
		LengthOfStay:  -1,
	}

	age, ageErr := strconv.Atoi(get("age"))
	billing, billErr := strconv.ParseFloat(get("billing_amount"), 64)
	admitted := parseDate(get("date_of_admission", "admission_date"))
	discharged := parseDate(get("discharge_date"))

	switch {
	case ageErr != nil || age < 0:
		return p, reasonNoAge
	case p.Gender == "":
		return p, reasonNoGender
	case p.Condition == "":
		return p, reasonNoCondition
	case billErr != nil:
		return p, reasonNoBilling
	case admitted.IsZero():
		return p, reasonNoAdmission
	}

	p.Age = age
	p.BillingAmount = billing
	p.Admitted = admitted
	p.Discharged = discharged

	if !discharged.IsZero() && !discharged.Before(admitted) {
		p.LengthOfStay = int(discharged.Sub(admitted).Hours() / 24)
	}

	return p, ""
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// toSnakeCase converts "Blood Type" → "blood_type".
func toSnakeCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
