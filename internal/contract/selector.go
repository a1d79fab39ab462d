// Package contract selects the rental agreement for a listing and renders it.
package contract

import (
	"gearshare-backend/internal/classify"
	"gearshare-backend/internal/domain"
)

// selectionRules is evaluated top to bottom. Reordering changes outcomes:
// a "Motorhome" RV is caught by the powersports rule before the RV rule.
var selectionRules = []classify.Rule[domain.ContractType]{
	{
		Name:   "surfboard",
		Match:  classify.All(classify.CategoryIn(domain.CategoryWaterSports), classify.SubcategoryContains("surfboard")),
		Result: domain.ContractSurfboardRental,
	},
	{
		Name:   "paddleboard",
		Match:  classify.All(classify.CategoryIn(domain.CategoryWaterSports), classify.SubcategoryContains("paddleboard", "sup")),
		Result: domain.ContractPaddleboardRental,
	},
	{
		Name:   "bicycle",
		Match:  classify.All(classify.CategoryIn(domain.CategoryBikes), classify.Not(classify.SubcategoryContains("scooter"))),
		Result: domain.ContractBicycleRental,
	},
	{
		Name:   "bareboat",
		Match:  classify.CategoryIn(domain.CategoryBoats),
		Result: domain.ContractBareboatCharter,
	},
	{
		Name: "powersports",
		Match: classify.Any(
			classify.CategoryIn(domain.CategoryMotorcycles, domain.CategoryATVsUTVs),
			classify.SubcategoryContains("jet ski", "motor", "snowmobile"),
		),
		Result: domain.ContractPowersportsWaiver,
	},
	{
		Name:   "motor vehicle",
		Match:  classify.CategoryIn(domain.CategoryRVs),
		Result: domain.ContractMotorVehicleBailment,
	},
}

// Select returns the agreement type for an item.
func Select(item domain.ItemClass) domain.ContractType {
	return classify.First(selectionRules, item, domain.ContractEquipmentRental)
}
