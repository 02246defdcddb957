package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// ============================================================================
// SEED — Synthetic Patient Dataset Generator
// ============================================================================
// Produces a reproducible CSV with the dashboard's expected schema so the
// server runs out of the box. The same seed always yields the same rows;
// record ids are name-based UUIDs derived from the row index.
// ============================================================================

// Config controls the volume and reproducibility of generated data.
type Config struct {
	Patients int
	Seed     uint64
}

// DefaultConfig generates a small demo dataset.
func DefaultConfig() Config {
	return Config{Patients: 1000, Seed: 11}
}

var (
	conditions     = []string{"Cancer", "Obesity", "Diabetes", "Asthma", "Hypertension", "Arthritis"}
	bloodTypes     = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}
	admissionTypes = []string{"Emergency", "Elective", "Urgent"}
	genders        = []string{"Male", "Female"}
	insurers       = []string{"Aetna", "Blue Cross", "Cigna", "Medicare", "UnitedHealthcare"}
	medications    = []string{"Aspirin", "Ibuprofen", "Lipitor", "Paracetamol", "Penicillin"}
	testResults    = []string{"Normal", "Abnormal", "Inconclusive"}

	hospitalSuffixes = []string{"General Hospital", "Medical Center", "Clinic", "Health Group"}
)

var header = []string{
	"Record ID", "Name", "Age", "Gender", "Blood Type", "Medical Condition",
	"Date of Admission", "Doctor", "Hospital", "Insurance Provider",
	"Billing Amount", "Room Number", "Admission Type", "Discharge Date",
	"Medication", "Test Results",
}

// Write generates cfg.Patients rows of CSV to w. Returns the row count.
func Write(w io.Writer, cfg Config) (int, error) {
	if cfg.Patients <= 0 {
		return 0, fmt.Errorf("patient count must be positive, got %d", cfg.Patients)
	}

	f := gofakeit.New(cfg.Seed)
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	windowStart := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	for i := 0; i < cfg.Patients; i++ {
		admitted := f.DateRange(windowStart, windowEnd).Truncate(24 * time.Hour)

		// ~5% of stays are still open: no discharge date.
		discharge := ""
		if f.Number(0, 99) >= 5 {
			stay := f.Number(1, 30)
			discharge = admitted.AddDate(0, 0, stay).Format("2006-01-02")
		}

		recordID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("wardview-%d-%d", cfg.Seed, i)))

		row := []string{
			recordID.String(),
			f.Name(),
			fmt.Sprintf("%d", f.Number(18, 85)),
			f.RandomString(genders),
			f.RandomString(bloodTypes),
			f.RandomString(conditions),
			admitted.Format("2006-01-02"),
			"Dr. " + f.Name(),
			f.LastName() + " " + f.RandomString(hospitalSuffixes),
			f.RandomString(insurers),
			fmt.Sprintf("%.2f", f.Float64Range(1000, 52000)),
			fmt.Sprintf("%d", f.Number(101, 500)),
			f.RandomString(admissionTypes),
			discharge,
			f.RandomString(medications),
			f.RandomString(testResults),
		}
		if err := cw.Write(row); err != nil {
			return i, fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return cfg.Patients, fmt.Errorf("flush CSV: %w", err)
	}
	return cfg.Patients, nil
}

// WriteFile generates a dataset into a new file at path.
func WriteFile(path string, cfg Config) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()
	return Write(f, cfg)
}
