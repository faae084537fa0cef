package ledger

import (
	"testing"
	"time"

	"tripbook/internal/domain"
)

func TestParseTaxYear(t *testing.T) {
	tests := []struct {
		id        string
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{
			id:        "2024-25",
			wantStart: time.Date(2024, time.April, 6, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, time.April, 5, 23, 59, 59, 999000000, time.UTC),
		},
		{
			id:        "1999-00",
			wantStart: time.Date(1999, time.April, 6, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2000, time.April, 5, 23, 59, 59, 999000000, time.UTC),
		},
		{id: "2024-26", wantErr: true},
		{id: "2024-24", wantErr: true},
		{id: "2024", wantErr: true},
		{id: "2024-5", wantErr: true},
		{id: "abcd-ef", wantErr: true},
		{id: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			start, end, err := ParseTaxYear(tt.id)
			if tt.wantErr {
				if !domain.IsValidation(err) {
					t.Fatalf("err = %v, want validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", end, tt.wantEnd)
			}
		})
	}
}

func TestExportRequestResolve(t *testing.T) {
	t.Run("tax year", func(t *testing.T) {
		start, end, err := ExportRequest{TaxYear: "2023-24"}.Resolve()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if start.Year() != 2023 || end.Year() != 2024 {
			t.Errorf("period = %v..%v", start, end)
		}
	})

	t.Run("explicit range is end-inclusive", func(t *testing.T) {
		start, end, err := ExportRequest{StartDate: "2024-01-01", EndDate: "2024-01-31"}.Resolve()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !start.Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("start = %v", start)
		}
		if !end.Equal(time.Date(2024, time.January, 31, 23, 59, 59, 999000000, time.UTC)) {
			t.Errorf("end = %v", end)
		}
	})

	bad := []ExportRequest{
		{},
		{TaxYear: "2024-25", StartDate: "2024-01-01", EndDate: "2024-02-01"},
		{StartDate: "2024-01-01"},
		{StartDate: "2024-02-01", EndDate: "2024-01-01"},
		{StartDate: "01/01/2024", EndDate: "2024-02-01"},
		{TaxYear: "2024-25", Classification: "commute"},
	}
	for _, req := range bad {
		if _, _, err := req.Resolve(); !domain.IsValidation(err) {
			t.Errorf("%+v: err = %v, want validation error", req, err)
		}
	}
}
