package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tripbook/internal/domain"
)

const dateLayout = "2006-01-02"

// ParseTaxYear converts a UK tax year identifier such as "2024-25" into its
// inclusive period: 6 April of the start year through 23:59:59.999 on
// 5 April of the following year, in UTC.
func ParseTaxYear(id string) (start, end time.Time, err error) {
	parts := strings.SplitN(strings.TrimSpace(id), "-", 2)
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return start, end, domain.ValidationError{
			Field: "tax_year",
			Msg:   fmt.Sprintf("invalid tax year %q (expected YYYY-YY)", id),
		}
	}
	startYear, err1 := strconv.Atoi(parts[0])
	suffix, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return start, end, domain.ValidationError{
			Field: "tax_year",
			Msg:   fmt.Sprintf("invalid tax year %q (expected YYYY-YY)", id),
		}
	}
	if (startYear+1)%100 != suffix {
		return start, end, domain.ValidationError{
			Field: "tax_year",
			Msg:   fmt.Sprintf("invalid tax year %q: end year does not follow start year", id),
		}
	}
	start = time.Date(startYear, time.April, 6, 0, 0, 0, 0, time.UTC)
	end = time.Date(startYear+1, time.April, 5, 23, 59, 59, 999000000, time.UTC)
	return start, end, nil
}

// ExportRequest is the input boundary for one aggregation run. Exactly one of
// TaxYear or the StartDate/EndDate pair must be set.
type ExportRequest struct {
	TaxYear        string
	StartDate      string // YYYY-MM-DD
	EndDate        string // YYYY-MM-DD
	Classification string // optional: business or personal
}

// Resolve validates the request and returns the inclusive period bounds.
func (r ExportRequest) Resolve() (start, end time.Time, err error) {
	hasYear := strings.TrimSpace(r.TaxYear) != ""
	hasRange := strings.TrimSpace(r.StartDate) != "" || strings.TrimSpace(r.EndDate) != ""

	switch {
	case hasYear && hasRange:
		return start, end, domain.ValidationError{Msg: "supply either tax_year or an explicit date range, not both"}
	case !hasYear && !hasRange:
		return start, end, domain.ValidationError{Msg: "supply tax_year or start_date and end_date"}
	}

	if c := strings.TrimSpace(r.Classification); c != "" &&
		c != ClassificationBusiness && c != ClassificationPersonal {
		return start, end, domain.ValidationError{
			Field: "classification",
			Msg:   fmt.Sprintf("unknown classification %q", r.Classification),
		}
	}

	if hasYear {
		return ParseTaxYear(r.TaxYear)
	}

	startDay, err := time.ParseInLocation(dateLayout, strings.TrimSpace(r.StartDate), time.UTC)
	if err != nil {
		return start, end, domain.ValidationError{Field: "start_date", Msg: "expected YYYY-MM-DD", Err: err}
	}
	endDay, err := time.ParseInLocation(dateLayout, strings.TrimSpace(r.EndDate), time.UTC)
	if err != nil {
		return start, end, domain.ValidationError{Field: "end_date", Msg: "expected YYYY-MM-DD", Err: err}
	}
	if endDay.Before(startDay) {
		return start, end, domain.ValidationError{Msg: "end_date is before start_date"}
	}
	end = endDay.Add(24*time.Hour - time.Millisecond)
	return startDay, end, nil
}
