package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"tripbook/internal/domain"
	"tripbook/internal/ledger"
	"tripbook/internal/repositories"
	"tripbook/internal/utils"
)

// LedgerExport bundles the per-trip rows and the rolled-up summary for one
// aggregation run. Renderers consume it as-is; all money figures come from
// the ledger engine and are never recomputed downstream.
type LedgerExport struct {
	Rows    []ledger.ExportRow   `json:"rows"`
	Summary ledger.ExportSummary `json:"summary"`
}

type ExportService struct {
	TripsRepo    repositories.TripsRepository
	EarningsRepo repositories.EarningsRepository
	RequestID    string
}

// BuildLedger resolves the requested period, loads the ordered trips and the
// period's earnings, and runs the deduction engine over them.
func (s ExportService) BuildLedger(req ledger.ExportRequest) (LedgerExport, error) {
	start, end, err := req.Resolve()
	if err != nil {
		return LedgerExport{}, err
	}

	trips, err := s.TripsRepo.ListForExport(start, end, req.Classification)
	if err != nil {
		return LedgerExport{}, domain.InternalError{Msg: "failed to load trips", Err: err}
	}
	earnings, err := s.EarningsRepo.ListForPeriod(start, end)
	if err != nil {
		return LedgerExport{}, domain.InternalError{Msg: "failed to load earnings", Err: err}
	}

	rows, err := ledger.AnnotateTrips(trips)
	if err != nil {
		return LedgerExport{}, err
	}
	summary, err := ledger.Summarize(trips, earnings)
	if err != nil {
		return LedgerExport{}, err
	}

	utils.LogEvent(s.RequestID, "export", "build_ledger",
		fmt.Sprintf("trips=%d earnings=%d deduction_pence=%d", len(trips), len(earnings), summary.TotalDeductionPence))
	return LedgerExport{Rows: rows, Summary: summary}, nil
}

// PeriodLabel returns a filename-safe label for the requested period.
func PeriodLabel(req ledger.ExportRequest) string {
	if y := strings.TrimSpace(req.TaxYear); y != "" {
		return y
	}
	return strings.TrimSpace(req.StartDate) + "_" + strings.TrimSpace(req.EndDate)
}

// RenderLedgerCSV renders the export as CSV: one line per trip followed by a
// summary block. Returns the file body and a suggested filename.
func RenderLedgerCSV(exp LedgerExport, periodLabel string) ([]byte, string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"trip_id", "date", "vehicle", "vehicle_class", "classification",
		"platform", "from", "to", "miles", "rate_pence_per_mile", "deduction",
	}
	if err := w.Write(header); err != nil {
		return nil, "", err
	}
	for _, r := range exp.Rows {
		rec := []string{
			strconv.FormatInt(r.TripID, 10),
			utils.FormatDate(r.StartedAt),
			r.VehicleName,
			r.VehicleClass.String(),
			r.Classification,
			r.Platform,
			r.FromAddress,
			r.ToAddress,
			utils.FormatMiles(r.DistanceMiles),
			strconv.FormatInt(r.RatePence, 10),
			utils.FormatPence(r.DeductionPence),
		}
		if err := w.Write(rec); err != nil {
			return nil, "", err
		}
	}

	sum := exp.Summary
	footer := [][]string{
		{},
		{"total_miles", utils.FormatMiles(sum.TotalMiles)},
		{"business_miles", utils.FormatMiles(sum.BusinessMiles)},
		{"personal_miles", utils.FormatMiles(sum.PersonalMiles)},
		{"total_deduction", utils.FormatPence(sum.TotalDeductionPence)},
		{"total_earnings", utils.FormatPence(sum.TotalEarningsPence)},
	}
	for _, v := range sum.Vehicles {
		footer = append(footer, []string{
			"vehicle", v.VehicleName, v.VehicleClass.String(),
			utils.FormatMiles(v.BusinessMiles), utils.FormatPence(v.DeductionPence),
		})
	}
	for _, p := range sum.Platforms {
		footer = append(footer, []string{"platform", p.Platform, utils.FormatPence(p.AmountPence)})
	}
	for _, rec := range footer {
		if err := w.Write(rec); err != nil {
			return nil, "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("mileage-ledger-%s.csv", periodLabel), nil
}
