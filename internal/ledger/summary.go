package ledger

import "time"

// Earning is one platform payout as returned by the earnings repository.
// Earnings are independent of trips and carry no tiering logic.
type Earning struct {
	ID          int64
	Platform    string
	AmountPence int64
	EarnedAt    time.Time
}

// VehicleBreakdown is the per-vehicle portion of an ExportSummary. The
// deduction is computed from the vehicle's own from-zero tally: the mileage
// threshold applies per vehicle, not per user.
type VehicleBreakdown struct {
	VehicleID      int64   `json:"vehicleId,omitempty"`
	VehicleName    string  `json:"vehicleName"`
	VehicleClass   Class   `json:"vehicleClass"`
	TotalMiles     float64 `json:"totalMiles"`
	BusinessMiles  float64 `json:"businessMiles"`
	DeductionPence int64   `json:"deductionPence"`
}

// PlatformEarnings is one platform's earnings total within the period.
type PlatformEarnings struct {
	Platform    string `json:"platform"`
	AmountPence int64  `json:"amountPence"`
}

// ExportSummary is the rolled-up output for one aggregation run.
type ExportSummary struct {
	TotalMiles          float64            `json:"totalMiles"`
	BusinessMiles       float64            `json:"businessMiles"`
	PersonalMiles       float64            `json:"personalMiles"`
	Vehicles            []VehicleBreakdown `json:"vehicles"`
	TotalDeductionPence int64              `json:"totalDeductionPence"`
	TotalEarningsPence  int64              `json:"totalEarningsPence"`
	Platforms           []PlatformEarnings `json:"platforms"`
}

// UnknownVehicleName labels the synthetic bucket for trips with no vehicle.
const UnknownVehicleName = "Unknown vehicle"

type vehicleGroup struct {
	name          string
	class         Class
	totalMiles    float64
	businessMiles float64
}

// Summarize rolls an ordered trip sequence and its period's earnings into an
// ExportSummary. Trips with no vehicle fall into a single unknown-vehicle
// bucket of the default class. Each vehicle's deduction is a single
// ComputeDeduction call over its final business mileage — by the tiered sum's
// splitting property this equals the sum of that vehicle's per-row deductions
// from AnnotateTrips, so the detailed and summary paths cannot diverge.
//
// Vehicle and platform breakdowns keep first-appearance order, which makes
// the output byte-identical across runs over the same ordered inputs.
func Summarize(trips []TripRecord, earnings []Earning) (ExportSummary, error) {
	var sum ExportSummary

	groups := map[int64]*vehicleGroup{}
	var groupOrder []int64
	for _, tr := range trips {
		if err := validateDistance(tr); err != nil {
			return ExportSummary{}, err
		}
		sum.TotalMiles += tr.DistanceMiles
		if tr.Classification == ClassificationBusiness {
			sum.BusinessMiles += tr.DistanceMiles
		} else {
			sum.PersonalMiles += tr.DistanceMiles
		}

		g, ok := groups[tr.VehicleID]
		if !ok {
			g = &vehicleGroup{name: tr.VehicleName, class: resolveClass(tr)}
			if tr.VehicleID == 0 {
				g.name = UnknownVehicleName
				g.class = DefaultClass
			}
			groups[tr.VehicleID] = g
			groupOrder = append(groupOrder, tr.VehicleID)
		}
		g.totalMiles += tr.DistanceMiles
		if tr.Classification == ClassificationBusiness {
			g.businessMiles += tr.DistanceMiles
		}
	}

	sum.Vehicles = make([]VehicleBreakdown, 0, len(groupOrder))
	for _, id := range groupOrder {
		g := groups[id]
		pence, _ := ComputeDeduction(g.class, 0, g.businessMiles)
		sum.TotalDeductionPence += pence
		sum.Vehicles = append(sum.Vehicles, VehicleBreakdown{
			VehicleID:      id,
			VehicleName:    g.name,
			VehicleClass:   g.class,
			TotalMiles:     Round2(g.totalMiles),
			BusinessMiles:  Round2(g.businessMiles),
			DeductionPence: pence,
		})
	}

	platforms := map[string]int{}
	sum.Platforms = make([]PlatformEarnings, 0)
	for _, e := range earnings {
		sum.TotalEarningsPence += e.AmountPence
		idx, ok := platforms[e.Platform]
		if !ok {
			idx = len(sum.Platforms)
			platforms[e.Platform] = idx
			sum.Platforms = append(sum.Platforms, PlatformEarnings{Platform: e.Platform})
		}
		sum.Platforms[idx].AmountPence += e.AmountPence
	}

	sum.TotalMiles = Round2(sum.TotalMiles)
	sum.BusinessMiles = Round2(sum.BusinessMiles)
	sum.PersonalMiles = Round2(sum.PersonalMiles)
	return sum, nil
}
