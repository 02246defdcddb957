package analytics

import "math"

// Shared fixture: eight admissions across three months. Two records have an
// unknown stay (NaN) to exercise the missing-value paths.
func patientFixture() RecordView {
	rec := func(gender, condition, admType, month string, age, billing, stay float64) Record {
		return Record{
			Dimensions: map[string]string{
				"gender":          gender,
				"condition":       condition,
				"admission_type":  admType,
				"admission_month": month,
			},
			Measures: map[string]float64{
				"age":            age,
				"billing_amount": billing,
				"length_of_stay": stay,
			},
		}
	}

	return NewSliceView([]Record{
		rec("Male", "Cancer", "Urgent", "2024-01", 30, 18000, 2),
		rec("Female", "Cancer", "Urgent", "2024-01", 43, 27000, 6),
		rec("Male", "Obesity", "Emergency", "2024-01", 62, 33000, math.NaN()),
		rec("Female", "Diabetes", "Elective", "2024-02", 28, 16000, 4),
		rec("Male", "Diabetes", "Emergency", "2024-02", 21, 19500, 7),
		rec("Female", "Obesity", "Emergency", "2024-02", 55, 21000, 3),
		rec("Male", "Asthma", "Urgent", "2024-03", 36, 48000, math.NaN()),
		rec("Female", "Cancer", "Elective", "2024-03", 70, 52000, 12),
	})
}
