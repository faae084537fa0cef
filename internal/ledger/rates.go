package ledger

import "math"

// Class identifies which mileage rate table applies to a vehicle.
type Class string

const (
	ClassCar       Class = "car"
	ClassVan       Class = "van"
	ClassMotorbike Class = "motorbike"
)

// DefaultClass applies when a trip has no vehicle attached.
const DefaultClass = ClassCar

func (c Class) IsValid() bool {
	switch c {
	case ClassCar, ClassVan, ClassMotorbike:
		return true
	}
	return false
}

func (c Class) String() string { return string(c) }

// Rate holds the per-mile rates for one vehicle class, in pence per mile.
// Car and van use a two-tier scheme with a cumulative-mileage threshold;
// a zero ThresholdMiles marks a flat table (motorbike).
type Rate struct {
	FirstTierPence  int64
	SecondTierPence int64
	ThresholdMiles  float64
}

// HMRC simplified mileage allowance rates. Process-wide, read-only.
var rateTable = map[Class]Rate{
	ClassCar:       {FirstTierPence: 45, SecondTierPence: 25, ThresholdMiles: 10000},
	ClassVan:       {FirstTierPence: 45, SecondTierPence: 25, ThresholdMiles: 10000},
	ClassMotorbike: {FirstTierPence: 24, SecondTierPence: 24},
}

// RateFor returns the rate row for class c, falling back to DefaultClass
// when c is not a known class.
func RateFor(c Class) Rate {
	if r, ok := rateTable[c]; ok {
		return r
	}
	return rateTable[DefaultClass]
}

func roundPence(x float64) int64 {
	return int64(math.Round(x))
}

// ComputeDeduction returns the deduction in whole pence for a single trip of
// tripMiles, given priorTallyMiles business miles already attributed to the
// class within the current run, plus the effective pence-per-mile rate.
//
// The trip's deduction is rounded half-up once, after summing both tier
// portions; tier sub-amounts are never rounded individually. For a trip that
// straddles the threshold the returned rate is round(pence/tripMiles) and is
// informational only. Callers must pass non-negative, finite inputs.
func ComputeDeduction(c Class, priorTallyMiles, tripMiles float64) (pence int64, ratePerMile int64) {
	r := RateFor(c)
	if r.ThresholdMiles <= 0 {
		// flat-rate class, tally has no effect
		return roundPence(tripMiles * float64(r.FirstTierPence)), r.FirstTierPence
	}
	switch {
	case priorTallyMiles+tripMiles <= r.ThresholdMiles:
		return roundPence(tripMiles * float64(r.FirstTierPence)), r.FirstTierPence
	case priorTallyMiles >= r.ThresholdMiles:
		return roundPence(tripMiles * float64(r.SecondTierPence)), r.SecondTierPence
	default:
		// straddling: tripMiles > 0 here, so the rate division is safe
		firstMiles := r.ThresholdMiles - priorTallyMiles
		secondMiles := tripMiles - firstMiles
		pence = roundPence(firstMiles*float64(r.FirstTierPence) + secondMiles*float64(r.SecondTierPence))
		return pence, roundPence(float64(pence) / tripMiles)
	}
}
