package classify

import "gearshare-backend/internal/domain"

var (
	marineAngles = []domain.EvidenceAngle{
		{ID: "bow", Label: "Bow", Description: "Front of the hull, including any registration numbers"},
		{ID: "hull_underside", Label: "Hull underside", Description: "Bottom of the hull showing scrapes or gelcoat damage"},
		{ID: "propeller_intake", Label: "Propeller / intake", Description: "Propeller blades or jet intake grate"},
		{ID: "right_side", Label: "Right side", Description: "Full starboard profile"},
		{ID: "left_side", Label: "Left side", Description: "Full port profile"},
	}
	vehicleAngles = []domain.EvidenceAngle{
		{ID: "front", Label: "Front", Description: "Front bumper, lights and windshield"},
		{ID: "driver_side", Label: "Driver side", Description: "Full driver-side profile including wheels"},
		{ID: "passenger_side", Label: "Passenger side", Description: "Full passenger-side profile including wheels"},
		{ID: "rear", Label: "Rear", Description: "Rear bumper, lights and hitch"},
	}
	generalAngles = []domain.EvidenceAngle{
		{ID: "overall", Label: "Overall", Description: "The whole item in one frame"},
		{ID: "detail_1", Label: "Detail / accessories", Description: "Close-up of wear points and every included accessory"},
	}
	fuelAngle = domain.EvidenceAngle{
		ID: "fuel_dash", Label: "Fuel gauge / dashboard", Description: "Fuel or charge level and hour meter or odometer",
	}
)

var poweredWaterSports = All(CategoryIn(domain.CategoryWaterSports), SubcategoryContains("jet ski", "motor"))

var angleRules = []Rule[[]domain.EvidenceAngle]{
	{Name: "marine", Match: Any(CategoryIn(domain.CategoryBoats), poweredWaterSports), Result: marineAngles},
	{Name: "vehicle", Match: CategoryIn(domain.CategoryRVs, domain.CategoryATVsUTVs, domain.CategoryMotorcycles), Result: vehicleAngles},
}

// fuelPowered is kept apart from the risk rules on purpose: it decides the
// dashboard photo, not the fee tier. Both lists must change together when
// categories are added.
var fuelPowered = Any(
	CategoryIn(domain.CategoryBoats, domain.CategoryATVsUTVs, domain.CategoryRVs, domain.CategoryMotorcycles),
	All(CategoryIn(domain.CategoryWaterSports), SubcategoryContains("jet ski")),
)

// RequiredAngles returns the ordered, non-empty list of photos required at
// handover and return. Angle ids are the key used to pair the two checkpoints.
func RequiredAngles(item domain.ItemClass) []domain.EvidenceAngle {
	base := First(angleRules, item, generalAngles)
	out := make([]domain.EvidenceAngle, 0, len(base)+1)
	out = append(out, base...)
	if fuelPowered(item) {
		out = append(out, fuelAngle)
	}
	return out
}
