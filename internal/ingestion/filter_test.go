package ingestion

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPreviousBusinessDay(t *testing.T) {
	tests := []struct {
		name  string
		today time.Time
		want  time.Time
	}{
		{"wednesday resolves to tuesday", day(2024, time.January, 3), day(2024, time.January, 2)},
		{"monday resolves to friday", day(2024, time.January, 8), day(2024, time.January, 5)},
		{"sunday resolves to friday", day(2024, time.January, 7), day(2024, time.January, 5)},
		{"saturday resolves to friday", day(2024, time.January, 6), day(2024, time.January, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PreviousBusinessDay(tt.today); !got.Equal(tt.want) {
				t.Errorf("PreviousBusinessDay(%s) = %s, want %s",
					tt.today.Format("2006-01-02"), got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func datedRecord(recordType, date, code string) Record {
	return Record{RecordType: recordType, Date: date, Code: code}
}

func TestSelectBusinessDay_TargetPresent(t *testing.T) {
	records := []Record{
		datedRecord("00", "20240102", ""), // header
		datedRecord("01", "20240102", "PETR4"),
		datedRecord("01", "20240103", "PETR4"),
		datedRecord("01", "20240102", "VALE3"),
		datedRecord("99", "20240102", ""), // trailer
	}

	selected, effective := SelectBusinessDay(records, day(2024, time.January, 2))
	if len(selected) != 2 {
		t.Fatalf("selected = %d rows, want 2", len(selected))
	}
	if !effective.Equal(day(2024, time.January, 2)) {
		t.Errorf("effective = %s, want 2024-01-02", effective.Format("2006-01-02"))
	}
	for _, rec := range selected {
		if rec.Date != "20240102" {
			t.Errorf("row date = %q, want 20240102", rec.Date)
		}
	}
}

func TestSelectBusinessDay_RecencyFallback(t *testing.T) {
	records := []Record{
		datedRecord("01", "20240101", "PETR4"),
		datedRecord("01", "20240103", "PETR4"),
		datedRecord("01", "20240103", "VALE3"),
	}

	// Target is absent; the most recent date in the feed wins.
	selected, effective := SelectBusinessDay(records, day(2024, time.January, 2))
	if len(selected) != 2 {
		t.Fatalf("selected = %d rows, want 2", len(selected))
	}
	if !effective.Equal(day(2024, time.January, 3)) {
		t.Errorf("effective = %s, want 2024-01-03", effective.Format("2006-01-02"))
	}
}

func TestSelectBusinessDay_InvalidDatesDropped(t *testing.T) {
	records := []Record{
		datedRecord("01", "2024010", "PETR4"),  // 7 digits
		datedRecord("01", "2024AB02", "VALE3"), // non-numeric
		datedRecord("01", "20241399", "ITUB4"), // unparseable calendar date
		datedRecord("01", "", "BBAS3"),
	}

	selected, _ := SelectBusinessDay(records, day(2024, time.January, 2))
	if len(selected) != 0 {
		t.Fatalf("selected = %d rows, want 0", len(selected))
	}
}

func TestSelectBusinessDay_Empty(t *testing.T) {
	selected, effective := SelectBusinessDay(nil, day(2024, time.January, 2))
	if len(selected) != 0 {
		t.Fatalf("selected = %d rows, want 0", len(selected))
	}
	if !effective.Equal(day(2024, time.January, 2)) {
		t.Errorf("effective = %s, want the requested target", effective.Format("2006-01-02"))
	}
}
