package classify

import "gearshare-backend/internal/domain"

var riskRules = []Rule[domain.RiskTier]{
	{
		Name:   "motorised category",
		Match:  CategoryIn(domain.CategoryMotorcycles, domain.CategoryRVs, domain.CategoryATVsUTVs, domain.CategoryBoats),
		Result: domain.RiskTierPowersports,
	},
	{
		Name:   "powered water sports",
		Match:  All(CategoryIn(domain.CategoryWaterSports), SubcategoryContains("jet ski", "wakeboard", "motor")),
		Result: domain.RiskTierPowersports,
	},
}

// Risk classifies an item. It is total and must be called on every read of
// the listing rather than cached.
func Risk(item domain.ItemClass) domain.RiskTier {
	return First(riskRules, item, domain.RiskTierSoftGoods)
}

// RequiresLicense reports whether renting the item needs an operator license.
func RequiresLicense(item domain.ItemClass) bool {
	return Risk(item) == domain.RiskTierPowersports
}
