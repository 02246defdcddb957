package views

import (
	"reflect"
	"testing"
	"time"

	"github.com/wardview/wardview/dataset"
)

// fixtureTable builds a small in-memory table covering every dimension the
// view builders touch. One record has no discharge (unknown stay).
func fixtureTable() *dataset.Table {
	day := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	p := func(name string, age int, gender, blood, condition, admType, hospital string,
		billing float64, admitted string, stay int) dataset.Patient {
		return dataset.Patient{
			Name: name, Age: age, Gender: gender, BloodType: blood,
			Condition: condition, AdmissionType: admType, Hospital: hospital,
			BillingAmount: billing, Admitted: day(admitted), LengthOfStay: stay,
		}
	}

	return &dataset.Table{Patients: []dataset.Patient{
		p("Bobby Jackson", 30, "Male", "B-", "Cancer", "Urgent", "Sons and Miller", 18000, "2024-01-31", 2),
		p("Adrienne Bell", 43, "Female", "AB+", "Cancer", "Urgent", "White-White", 27000, "2024-01-10", 6),
		p("Leslie Terry", 62, "Male", "A+", "Obesity", "Emergency", "Kim Inc", 33000, "2024-01-20", -1),
		p("Danny Smith", 28, "Female", "O-", "Diabetes", "Elective", "Cook PLC", 16000, "2024-02-22", 4),
		p("Andrew Watts", 21, "Male", "O+", "Diabetes", "Emergency", "Hernandez Rogers", 19500, "2024-02-18", 7),
		p("Emily Johnson", 55, "Female", "A-", "Obesity", "Emergency", "Nunez-Humphrey", 21000, "2024-02-05", 3),
		p("Edward Edwards", 36, "Male", "AB-", "Asthma", "Urgent", "Group Middleton", 48000, "2024-03-03", -1),
		p("Mia Garcia", 70, "Female", "B+", "Cancer", "Elective", "Garcia Ltd", 52000, "2024-03-15", 12),
	}}
}

func TestBuildAllLayout(t *testing.T) {
	table := fixtureTable()
	allViews := BuildAll(table, DefaultConfig())

	ids := IDs()
	if len(allViews) != len(ids) {
		t.Fatalf("built %d views, want %d", len(allViews), len(ids))
	}
	for i, v := range allViews {
		if v.ID != ids[i] {
			t.Errorf("views[%d].ID = %s, want %s (layout order)", i, v.ID, ids[i])
		}
		if v.Title == "" {
			t.Errorf("view %s has no title", v.ID)
		}
	}
}

func TestBuildAllDeterministic(t *testing.T) {
	table := fixtureTable()
	first := BuildAll(table, DefaultConfig())
	second := BuildAll(table, DefaultConfig())
	if !reflect.DeepEqual(first, second) {
		t.Error("identical input produced different views")
	}
}

func TestBuildAllEnabledSubset(t *testing.T) {
	table := fixtureTable()
	cfg := DefaultConfig()
	cfg.Enabled = []string{"gender", "overview"}

	allViews := BuildAll(table, cfg)
	if len(allViews) != 2 {
		t.Fatalf("built %d views, want 2", len(allViews))
	}
	// Layout order wins, not config order.
	if allViews[0].ID != "overview" || allViews[1].ID != "gender" {
		t.Errorf("got %s, %s; want overview, gender", allViews[0].ID, allViews[1].ID)
	}
}

func byID(t *testing.T, vs []View, id string) View {
	t.Helper()
	for _, v := range vs {
		if v.ID == id {
			return v
		}
	}
	t.Fatalf("view %s not built", id)
	return View{}
}

func TestOverviewCards(t *testing.T) {
	allViews := BuildAll(fixtureTable(), DefaultConfig())
	v := byID(t, allViews, "overview")

	if v.Kind != KindCards || len(v.Cards) != 4 {
		t.Fatalf("overview kind=%s cards=%d, want cards/4", v.Kind, len(v.Cards))
	}
	if v.Cards[0].Value != "8" {
		t.Errorf("record count card = %q, want 8", v.Cards[0].Value)
	}
	if v.Cards[1].Value != "$234,500.00" {
		t.Errorf("total billing card = %q, want $234,500.00", v.Cards[1].Value)
	}
}

func TestGenderView(t *testing.T) {
	allViews := BuildAll(fixtureTable(), DefaultConfig())
	v := byID(t, allViews, "gender")

	if v.Kind != KindChart || v.Chart == nil || v.Chart.ChartType != "hbar" {
		t.Fatalf("gender view malformed: %+v", v)
	}
	points := v.Chart.Series[0].Data
	if len(points) != 2 {
		t.Fatalf("got %d gender bars, want 2", len(points))
	}
	// 4 of each; every distinct value gets a bar.
	for _, p := range points {
		if p.Value != 4 {
			t.Errorf("bar %s = %v, want 4", p.Label, p.Value)
		}
	}
}

func TestConditionsLimited(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TopConditions = 2
	allViews := BuildAll(fixtureTable(), cfg)
	v := byID(t, allViews, "conditions")

	points := v.Chart.Series[0].Data
	if len(points) != 2 {
		t.Fatalf("got %d condition bars, want 2", len(points))
	}
	if points[0].Label != "Cancer" || points[0].Value != 3 {
		t.Errorf("top condition = %s/%v, want Cancer/3", points[0].Label, points[0].Value)
	}
}

func TestBloodGenderStacked(t *testing.T) {
	allViews := BuildAll(fixtureTable(), DefaultConfig())
	v := byID(t, allViews, "blood-gender")

	if v.Chart == nil || v.Chart.ChartType != "stacked_bar" {
		t.Fatal("blood-gender should be a stacked bar chart")
	}
	if len(v.Chart.Series) != 2 {
		t.Fatalf("got %d series, want one per gender", len(v.Chart.Series))
	}
	// Every series is aligned on the same label axis.
	labels := len(v.Chart.Series[0].Data)
	for _, s := range v.Chart.Series[1:] {
		if len(s.Data) != labels {
			t.Errorf("series %s has %d points, want %d", s.Name, len(s.Data), labels)
		}
	}
}

func TestBillingTrendChronological(t *testing.T) {
	allViews := BuildAll(fixtureTable(), DefaultConfig())
	v := byID(t, allViews, "billing-trend")

	points := v.Chart.Series[0].Data
	want := []string{"2024-01", "2024-02", "2024-03"}
	if len(points) != len(want) {
		t.Fatalf("got %d months, want %d", len(points), len(want))
	}
	for i, w := range want {
		if points[i].Label != w {
			t.Errorf("points[%d] = %s, want %s", i, points[i].Label, w)
		}
	}
	if points[0].Value != 78000 {
		t.Errorf("January billing = %v, want 78000", points[0].Value)
	}
}

func TestCorrelationView(t *testing.T) {
	allViews := BuildAll(fixtureTable(), DefaultConfig())
	v := byID(t, allViews, "correlation")

	if v.Kind != KindMatrix || v.Matrix == nil {
		t.Fatal("correlation view missing matrix payload")
	}
	if len(v.Matrix.Labels) != 3 {
		t.Errorf("got %d labels, want 3", len(v.Matrix.Labels))
	}
	for i := range v.Matrix.Cells {
		if v.Matrix.Cells[i][i] != 1 {
			t.Errorf("diagonal not 1 at %d", i)
		}
	}
}

func TestTopBilledTable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TopPatients = 3
	allViews := BuildAll(fixtureTable(), cfg)
	v := byID(t, allViews, "top-billed")

	if v.Kind != KindTable || v.Table == nil {
		t.Fatal("top-billed view missing table payload")
	}
	if len(v.Table.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(v.Table.Rows))
	}
	if v.Table.Rows[0][0] != "Mia Garcia" || v.Table.Rows[0][1] != "$52,000.00" {
		t.Errorf("top row = %v, want Mia Garcia / $52,000.00", v.Table.Rows[0])
	}
	if v.Table.Rows[1][0] != "Edward Edwards" {
		t.Errorf("second row = %v, want Edward Edwards", v.Table.Rows[1])
	}
}

func TestBillingVsAgeSlices(t *testing.T) {
	allViews := BuildAll(fixtureTable(), DefaultConfig())
	v := byID(t, allViews, "billing-vs-age")

	if v.Kind != KindScatter || len(v.Slices) != 3 {
		t.Fatalf("got %d slices, want 3 months", len(v.Slices))
	}
	if v.Slices[0].Key != "2024-01" || v.Slices[0].Label != "Jan 2024" {
		t.Errorf("first slice = %s/%s, want 2024-01/Jan 2024", v.Slices[0].Key, v.Slices[0].Label)
	}
}

func TestAdmissionBreakdown(t *testing.T) {
	allViews := BuildAll(fixtureTable(), DefaultConfig())
	v := byID(t, allViews, "admission-sunburst")

	if v.Kind != KindBreakdown || v.Breakdown == nil {
		t.Fatal("breakdown view missing payload")
	}
	if v.Breakdown.Count != 8 {
		t.Errorf("root count = %d, want 8", v.Breakdown.Count)
	}
	if len(v.Breakdown.Children) != 3 {
		t.Errorf("got %d admission types, want 3", len(v.Breakdown.Children))
	}
}

func TestAgeStayHeatGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HeatBinsX = 5
	cfg.HeatBinsY = 4
	allViews := BuildAll(fixtureTable(), cfg)
	v := byID(t, allViews, "age-stay-heat")

	if v.Kind != KindGrid || v.Grid == nil {
		t.Fatal("age-stay-heat view missing grid payload")
	}
	if len(v.Grid.Cells) != 4 || len(v.Grid.Cells[0]) != 5 {
		t.Errorf("grid is %dx%d, want 4 rows x 5 cols", len(v.Grid.Cells), len(v.Grid.Cells[0]))
	}
	total := 0
	for _, row := range v.Grid.Cells {
		for _, c := range row {
			total += c
		}
	}
	// Two patients have an unknown stay.
	if total != 6 {
		t.Errorf("grid counts sum to %d, want 6", total)
	}
}
