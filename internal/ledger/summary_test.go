package ledger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"
)

func vehicleTrip(id, vehicleID int64, name string, class Class, classification string, miles float64, day int) TripRecord {
	return TripRecord{
		ID:             id,
		VehicleID:      vehicleID,
		VehicleName:    name,
		VehicleClass:   class,
		Classification: classification,
		DistanceMiles:  miles,
		StartedAt:      time.Date(2024, time.May, day, 9, 0, 0, 0, time.UTC),
	}
}

func TestSummarizeMixedRun(t *testing.T) {
	trips := []TripRecord{
		vehicleTrip(1, 1, "LK01", ClassCar, ClassificationBusiness, 50, 1),
		vehicleTrip(2, 1, "LK01", ClassCar, ClassificationPersonal, 1000, 2),
	}
	sum, err := Summarize(trips, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.TotalMiles != 1050.00 || sum.BusinessMiles != 50.00 || sum.PersonalMiles != 1000.00 {
		t.Errorf("miles = %v/%v/%v, want 1050/50/1000", sum.TotalMiles, sum.BusinessMiles, sum.PersonalMiles)
	}
	if sum.TotalDeductionPence != 2250 {
		t.Errorf("total deduction = %d, want 2250", sum.TotalDeductionPence)
	}
	if len(sum.Vehicles) != 1 || sum.Vehicles[0].DeductionPence != 2250 {
		t.Errorf("vehicle breakdown = %+v, want one vehicle at 2250", sum.Vehicles)
	}
}

// The 10,000-mile threshold applies per vehicle: two cars at 6,000 business
// miles each stay entirely in the first tier even though they total 12,000.
func TestSummarizeTalliesArePerVehicle(t *testing.T) {
	trips := []TripRecord{
		vehicleTrip(1, 1, "LK01", ClassCar, ClassificationBusiness, 6000, 1),
		vehicleTrip(2, 2, "LK02", ClassCar, ClassificationBusiness, 6000, 2),
	}
	sum, err := Summarize(trips, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := int64(6000*45) * 2
	if sum.TotalDeductionPence != want {
		t.Errorf("total deduction = %d, want %d (no second tier)", sum.TotalDeductionPence, want)
	}
	for _, v := range sum.Vehicles {
		if v.DeductionPence != 6000*45 {
			t.Errorf("vehicle %s deduction = %d, want %d", v.VehicleName, v.DeductionPence, 6000*45)
		}
	}
}

func TestSummarizeUnknownVehicleBucket(t *testing.T) {
	trips := []TripRecord{
		vehicleTrip(1, 0, "", "", ClassificationBusiness, 120, 1),
		vehicleTrip(2, 0, "", "", ClassificationPersonal, 30, 2),
	}
	sum, err := Summarize(trips, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sum.Vehicles) != 1 {
		t.Fatalf("got %d vehicle buckets, want 1", len(sum.Vehicles))
	}
	v := sum.Vehicles[0]
	if v.VehicleName != UnknownVehicleName || v.VehicleClass != ClassCar {
		t.Errorf("bucket = %q class %q, want %q class car", v.VehicleName, v.VehicleClass, UnknownVehicleName)
	}
	if v.DeductionPence != 120*45 {
		t.Errorf("deduction = %d, want %d", v.DeductionPence, 120*45)
	}
}

// The summary's single-call deduction per vehicle must agree with the summed
// per-row deductions from the detailed pass. Distances are multiples of 0.2
// miles so every per-trip amount is a whole number of pence and the two
// paths agree exactly.
func TestSummarizeAgreesWithAnnotatedRows(t *testing.T) {
	trips := []TripRecord{
		vehicleTrip(1, 1, "LK01", ClassCar, ClassificationBusiness, 4000.2, 1),
		vehicleTrip(2, 2, "MB01", ClassMotorbike, ClassificationBusiness, 150.4, 2),
		vehicleTrip(3, 1, "LK01", ClassCar, ClassificationBusiness, 5500.6, 3),
		vehicleTrip(4, 1, "LK01", ClassCar, ClassificationPersonal, 80, 4),
		vehicleTrip(5, 1, "LK01", ClassCar, ClassificationBusiness, 1200.8, 5),
	}

	rows, err := AnnotateTrips(trips)
	if err != nil {
		t.Fatalf("annotate error: %v", err)
	}
	sum, err := Summarize(trips, nil)
	if err != nil {
		t.Fatalf("summarize error: %v", err)
	}

	// The detailed pass tallies per class, the summary per vehicle. Only
	// vehicle 1 contributes car miles here, so the two line up exactly.
	perVehicle := map[int64]int64{}
	var rowTotal int64
	for _, r := range rows {
		perVehicle[r.VehicleID] += r.DeductionPence
		rowTotal += r.DeductionPence
	}
	for _, v := range sum.Vehicles {
		if perVehicle[v.VehicleID] != v.DeductionPence {
			t.Errorf("vehicle %d: summary %d != summed rows %d", v.VehicleID, v.DeductionPence, perVehicle[v.VehicleID])
		}
	}
	if sum.TotalDeductionPence != rowTotal {
		t.Errorf("total: summary %d != summed rows %d", sum.TotalDeductionPence, rowTotal)
	}
}

func TestSummarizeEarningsRollup(t *testing.T) {
	day := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	earnings := []Earning{
		{ID: 1, Platform: "uber", AmountPence: 12050, EarnedAt: day},
		{ID: 2, Platform: "deliveroo", AmountPence: 8000, EarnedAt: day.AddDate(0, 0, 1)},
		{ID: 3, Platform: "uber", AmountPence: 4950, EarnedAt: day.AddDate(0, 0, 2)},
	}
	sum, err := Summarize(nil, earnings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.TotalEarningsPence != 25000 {
		t.Errorf("total earnings = %d, want 25000", sum.TotalEarningsPence)
	}
	want := []PlatformEarnings{
		{Platform: "uber", AmountPence: 17000},
		{Platform: "deliveroo", AmountPence: 8000},
	}
	if len(sum.Platforms) != len(want) {
		t.Fatalf("got %d platforms, want %d", len(sum.Platforms), len(want))
	}
	for i := range want {
		if sum.Platforms[i] != want[i] {
			t.Errorf("platform[%d] = %+v, want %+v", i, sum.Platforms[i], want[i])
		}
	}
}

func TestSummarizeDeterministic(t *testing.T) {
	trips := []TripRecord{
		vehicleTrip(1, 2, "LK02", ClassVan, ClassificationBusiness, 9999, 1),
		vehicleTrip(2, 1, "LK01", ClassCar, ClassificationBusiness, 300.4, 2),
		vehicleTrip(3, 2, "LK02", ClassVan, ClassificationBusiness, 2, 3),
	}
	earnings := []Earning{
		{ID: 1, Platform: "bolt", AmountPence: 900, EarnedAt: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)},
	}

	first, err := Summarize(trips, earnings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Summarize(trips, earnings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("summaries differ across runs:\n%s\n%s", a, b)
	}
}
