package services

import (
	"bytes"
	"fmt"

	"tripbook/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the mileage ledger as a downloadable PDF.
type DocsService struct {
	RequestID string
}

func (s DocsService) GenerateLedgerPDF(exp LedgerExport, periodLabel string) ([]byte, string, error) {
	utils.LogEvent(s.RequestID, "docs", "generate_ledger_pdf",
		fmt.Sprintf("period=%s rows=%d", periodLabel, len(exp.Rows)))
	return buildLedgerPDF(exp, periodLabel)
}

func buildLedgerPDF(exp LedgerExport, periodLabel string) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Mileage Ledger", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "MILEAGE LEDGER")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s", periodLabel))
	pdf.Ln(10)

	type col struct {
		label string
		width float64
	}
	cols := []col{
		{"Date", 24}, {"Vehicle", 30}, {"Class", 22}, {"Type", 22},
		{"Platform", 28}, {"From", 40}, {"To", 40}, {"Miles", 20},
		{"Rate (p/mi)", 24}, {"Deduction", 26},
	}

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		for _, c := range cols {
			pdf.CellFormat(c.width, 7, c.label, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}

	drawHeader()
	for _, r := range exp.Rows {
		if pdf.GetY() > 180 {
			pdf.AddPage()
			drawHeader()
		}
		cells := []string{
			utils.FormatDate(r.StartedAt),
			r.VehicleName,
			r.VehicleClass.String(),
			r.Classification,
			r.Platform,
			r.FromAddress,
			r.ToAddress,
			utils.FormatMiles(r.DistanceMiles),
			fmt.Sprintf("%d", r.RatePence),
			utils.FormatPence(r.DeductionPence),
		}
		for i, c := range cols {
			pdf.CellFormat(c.width, 6, cells[i], "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	sum := exp.Summary
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Summary")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	lines := []string{
		fmt.Sprintf("Total miles    : %s", utils.FormatMiles(sum.TotalMiles)),
		fmt.Sprintf("Business miles : %s", utils.FormatMiles(sum.BusinessMiles)),
		fmt.Sprintf("Personal miles : %s", utils.FormatMiles(sum.PersonalMiles)),
		fmt.Sprintf("Total deduction: %s", utils.FormatPence(sum.TotalDeductionPence)),
		fmt.Sprintf("Total earnings : %s", utils.FormatPence(sum.TotalEarningsPence)),
	}
	for _, v := range sum.Vehicles {
		lines = append(lines, fmt.Sprintf("%s (%s): %s business miles, %s",
			v.VehicleName, v.VehicleClass, utils.FormatMiles(v.BusinessMiles), utils.FormatPence(v.DeductionPence)))
	}
	for _, p := range sum.Platforms {
		lines = append(lines, fmt.Sprintf("%s earnings: %s", p.Platform, utils.FormatPence(p.AmountPence)))
	}
	for _, line := range lines {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("mileage-ledger-%s.pdf", periodLabel), nil
}
