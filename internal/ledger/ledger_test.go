package ledger

import (
	"math"
	"testing"
	"time"

	"tripbook/internal/domain"
)

func businessTrip(id int64, miles float64, day int) TripRecord {
	return TripRecord{
		ID:             id,
		VehicleID:      1,
		VehicleName:    "LK01",
		VehicleClass:   ClassCar,
		Classification: ClassificationBusiness,
		DistanceMiles:  miles,
		StartedAt:      time.Date(2024, time.June, day, 8, 0, 0, 0, time.UTC),
	}
}

func personalTrip(id int64, miles float64, day int) TripRecord {
	tr := businessTrip(id, miles, day)
	tr.Classification = ClassificationPersonal
	return tr
}

func TestAnnotateTripsCarriesTallyAcrossTrips(t *testing.T) {
	rows, err := AnnotateTrips([]TripRecord{
		businessTrip(1, 9999, 1),
		businessTrip(2, 2, 2),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].DeductionPence != 449955 || rows[0].RatePence != 45 {
		t.Errorf("first trip: pence=%d rate=%d, want 449955 at 45", rows[0].DeductionPence, rows[0].RatePence)
	}
	// second trip straddles: 1 mile at 45 + 1 mile at 25
	if rows[1].DeductionPence != 70 {
		t.Errorf("straddling trip: pence=%d, want 70", rows[1].DeductionPence)
	}
}

func TestAnnotateTripsPersonalTripsAreNeutral(t *testing.T) {
	base := []TripRecord{
		businessTrip(1, 9999, 1),
		businessTrip(2, 2, 3),
	}
	withPersonal := []TripRecord{
		personalTrip(10, 5000, 1),
		base[0],
		personalTrip(11, 300, 2),
		base[1],
		personalTrip(12, 42, 4),
	}

	want, err := AnnotateTrips(base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := AnnotateTrips(withPersonal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("got %d rows, want one per input trip", len(got))
	}
	if got[1].DeductionPence != want[0].DeductionPence || got[3].DeductionPence != want[1].DeductionPence {
		t.Errorf("business deductions changed by interleaved personal trips: %d/%d, want %d/%d",
			got[1].DeductionPence, got[3].DeductionPence, want[0].DeductionPence, want[1].DeductionPence)
	}
	for _, i := range []int{0, 2, 4} {
		if got[i].DeductionPence != 0 || got[i].RatePence != 0 {
			t.Errorf("personal row %d has nonzero money: pence=%d rate=%d", i, got[i].DeductionPence, got[i].RatePence)
		}
	}
}

func TestAnnotateTripsDefaultsToCarWithoutVehicle(t *testing.T) {
	tr := businessTrip(1, 100, 1)
	tr.VehicleID = 0
	tr.VehicleName = ""
	tr.VehicleClass = ""

	rows, err := AnnotateTrips([]TripRecord{tr})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0].VehicleClass != ClassCar {
		t.Errorf("class = %q, want car", rows[0].VehicleClass)
	}
	if rows[0].DeductionPence != 4500 {
		t.Errorf("pence = %d, want 4500", rows[0].DeductionPence)
	}
}

func TestAnnotateTripsRejectsBadDistance(t *testing.T) {
	for _, d := range []float64{-1, math.NaN(), math.Inf(1)} {
		tr := businessTrip(1, d, 1)
		if _, err := AnnotateTrips([]TripRecord{tr}); !domain.IsValidation(err) {
			t.Errorf("distance %v: err = %v, want validation error", d, err)
		}
	}
}

func TestAnnotateTripsZeroDistanceBusinessTrip(t *testing.T) {
	rows, err := AnnotateTrips([]TripRecord{
		businessTrip(1, 0, 1),
		businessTrip(2, 100, 2),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0].DeductionPence != 0 {
		t.Errorf("zero-distance trip pence = %d, want 0", rows[0].DeductionPence)
	}
	if rows[1].DeductionPence != 4500 {
		t.Errorf("tally disturbed by zero-distance trip: pence = %d, want 4500", rows[1].DeductionPence)
	}
}

// Reordering two trips around the threshold moves the straddling split
// between them but must not change their combined deduction.
func TestAnnotateTripsReorderKeepsAggregate(t *testing.T) {
	a := businessTrip(1, 9800, 1)
	b := businessTrip(2, 400, 2)

	fwd, err := AnnotateTrips([]TripRecord{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rev, err := AnnotateTrips([]TripRecord{b, a})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fwd[1].DeductionPence == rev[1].DeductionPence {
		t.Fatalf("expected the straddling split to move to the other trip")
	}
	fwdTotal := fwd[0].DeductionPence + fwd[1].DeductionPence
	revTotal := rev[0].DeductionPence + rev[1].DeductionPence
	if fwdTotal != revTotal {
		t.Errorf("aggregate changed under reorder: %d vs %d", fwdTotal, revTotal)
	}
}

func TestAnnotateTripsRoundsDistanceForDisplayOnly(t *testing.T) {
	trips := []TripRecord{
		businessTrip(1, 9999.996, 1),
		businessTrip(2, 2, 2),
	}
	rows, err := AnnotateTrips(trips)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0].DistanceMiles != 10000.0 {
		t.Errorf("display distance = %v, want 10000.00", rows[0].DistanceMiles)
	}
	// tally keeps full precision: trip 2 still gets a sliver at the first tier
	want, _ := ComputeDeduction(ClassCar, 9999.996, 2)
	if rows[1].DeductionPence != want {
		t.Errorf("second trip pence = %d, want %d (full-precision tally)", rows[1].DeductionPence, want)
	}
}
