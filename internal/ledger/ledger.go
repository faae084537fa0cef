// Package ledger turns an ordered trip sequence into tax-deduction figures
// under the tiered mileage allowance scheme. It is pure computation: no I/O,
// no shared state between runs, deterministic for identical ordered inputs.
package ledger

import (
	"fmt"
	"math"
	"time"

	"tripbook/internal/domain"
)

// Trip classifications.
const (
	ClassificationBusiness = "business"
	ClassificationPersonal = "personal"
)

// TripRecord is one trip as returned by the trips repository, with the
// vehicle class already resolved. Callers must supply trips in ascending
// start-time order: the effective rate of a threshold-straddling trip depends
// on the tally accumulated by the trips before it.
type TripRecord struct {
	ID             int64
	VehicleID      int64 // 0 when the trip has no vehicle
	VehicleName    string
	VehicleClass   Class
	Classification string
	DistanceMiles  float64
	StartedAt      time.Time
	EndedAt        *time.Time
	Platform       string
	FromAddress    string
	ToAddress      string
}

// ExportRow is the per-trip output consumed by the CSV/PDF renderers.
// Renderers must not recompute rates or deductions from it.
type ExportRow struct {
	TripID         int64      `json:"tripId"`
	VehicleID      int64      `json:"vehicleId,omitempty"`
	VehicleName    string     `json:"vehicleName,omitempty"`
	VehicleClass   Class      `json:"vehicleClass"`
	Classification string     `json:"classification"`
	DistanceMiles  float64    `json:"distanceMiles"`
	StartedAt      time.Time  `json:"startedAt"`
	EndedAt        *time.Time `json:"endedAt,omitempty"`
	Platform       string     `json:"platform,omitempty"`
	FromAddress    string     `json:"fromAddress,omitempty"`
	ToAddress      string     `json:"toAddress,omitempty"`
	RatePence      int64      `json:"ratePerMilePence"`
	DeductionPence int64      `json:"deductionPence"`
}

// Tally tracks business miles attributed per vehicle class within one run.
// Each run constructs its own; nothing is shared across runs.
type Tally map[Class]float64

func (t Tally) Miles(c Class) float64 { return t[c] }

func (t Tally) Add(c Class, miles float64) { t[c] += miles }

func resolveClass(tr TripRecord) Class {
	if tr.VehicleClass.IsValid() {
		return tr.VehicleClass
	}
	return DefaultClass
}

func validateDistance(tr TripRecord) error {
	d := tr.DistanceMiles
	if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return domain.ValidationError{
			Field: "distance_miles",
			Msg:   fmt.Sprintf("trip %d has invalid distance", tr.ID),
		}
	}
	return nil
}

// AnnotateTrips produces one ExportRow per input trip, in input order.
// Business trips are charged via ComputeDeduction against the running
// per-class tally and then added to it; personal trips pass through at zero
// and leave the tally untouched.
//
// A negative or non-finite distance aborts the run: a bad distance would
// corrupt the tally for every later trip of the same class, so it is rejected
// rather than clamped. The input order is not checked or corrected here —
// re-sorting would hide an ordering bug upstream.
func AnnotateTrips(trips []TripRecord) ([]ExportRow, error) {
	tally := Tally{}
	rows := make([]ExportRow, 0, len(trips))
	for _, tr := range trips {
		if err := validateDistance(tr); err != nil {
			return nil, err
		}
		class := resolveClass(tr)
		row := ExportRow{
			TripID:         tr.ID,
			VehicleID:      tr.VehicleID,
			VehicleName:    tr.VehicleName,
			VehicleClass:   class,
			Classification: tr.Classification,
			DistanceMiles:  Round2(tr.DistanceMiles),
			StartedAt:      tr.StartedAt,
			EndedAt:        tr.EndedAt,
			Platform:       tr.Platform,
			FromAddress:    tr.FromAddress,
			ToAddress:      tr.ToAddress,
		}
		if tr.Classification == ClassificationBusiness {
			pence, rate := ComputeDeduction(class, tally.Miles(class), tr.DistanceMiles)
			row.DeductionPence = pence
			row.RatePence = rate
			tally.Add(class, tr.DistanceMiles)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Round2 rounds a mileage figure to 2 decimal places for display. Internal
// tallies keep full precision; only output fields are rounded.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
