package classify

import (
	"testing"

	"gearshare-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRisk(t *testing.T) {
	t.Run("Motorised categories are always powersports", func(t *testing.T) {
		for _, c := range []domain.Category{domain.CategoryMotorcycles, domain.CategoryRVs, domain.CategoryATVsUTVs, domain.CategoryBoats} {
			for _, sub := range []string{"", "Kayak", "anything at all"} {
				assert.Equal(t, domain.RiskTierPowersports, Risk(domain.ItemClass{Category: c, Subcategory: sub}), "%s/%s", c, sub)
			}
		}
	})

	tests := []struct {
		name     string
		item     domain.ItemClass
		expected domain.RiskTier
	}{
		{"Jet ski", domain.ItemClass{Category: domain.CategoryWaterSports, Subcategory: "Jet Ski"}, domain.RiskTierPowersports},
		{"Wakeboard boat gear", domain.ItemClass{Category: domain.CategoryWaterSports, Subcategory: "WAKEBOARD"}, domain.RiskTierPowersports},
		{"Motorised raft", domain.ItemClass{Category: domain.CategoryWaterSports, Subcategory: "motor raft"}, domain.RiskTierPowersports},
		{"Kayak", domain.ItemClass{Category: domain.CategoryWaterSports, Subcategory: "Kayak"}, domain.RiskTierSoftGoods},
		{"Empty water sports subcategory", domain.ItemClass{Category: domain.CategoryWaterSports}, domain.RiskTierSoftGoods},
		{"Snowmobile in winter sports", domain.ItemClass{Category: domain.CategoryWinterSports, Subcategory: "Snowmobile"}, domain.RiskTierSoftGoods},
		{"Motor keyword outside water sports", domain.ItemClass{Category: domain.CategoryBikes, Subcategory: "motor assist"}, domain.RiskTierSoftGoods},
		{"Camping", domain.ItemClass{Category: domain.CategoryCamping, Subcategory: "Tent"}, domain.RiskTierSoftGoods},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Risk(tt.item))
			assert.Equal(t, tt.expected == domain.RiskTierPowersports, RequiresLicense(tt.item))
		})
	}
}

func TestRiskFollowsListingEdits(t *testing.T) {
	listing := &domain.Listing{Category: domain.CategoryWaterSports, Subcategory: "Kayak"}
	assert.Equal(t, domain.RiskTierSoftGoods, Risk(listing.Class()))

	listing.Subcategory = "Jet Ski"
	assert.Equal(t, domain.RiskTierPowersports, Risk(listing.Class()))

	listing.Category = domain.CategoryCamping
	assert.Equal(t, domain.RiskTierSoftGoods, Risk(listing.Class()))
}

func TestFirstKeepsRuleOrder(t *testing.T) {
	rules := []Rule[string]{
		{Name: "broad", Match: CategoryIn(domain.CategoryBikes), Result: "broad"},
		{Name: "narrow", Match: All(CategoryIn(domain.CategoryBikes), SubcategoryContains("bmx")), Result: "narrow"},
	}
	item := domain.ItemClass{Category: domain.CategoryBikes, Subcategory: "BMX"}

	assert.Equal(t, "broad", First(rules, item, "none"))

	rules[0], rules[1] = rules[1], rules[0]
	assert.Equal(t, "narrow", First(rules, item, "none"))

	assert.Equal(t, "none", First(rules, domain.ItemClass{Category: domain.CategoryCamping}, "none"))
}

func TestMatchers(t *testing.T) {
	item := domain.ItemClass{Category: domain.CategoryBikes, Subcategory: "Electric Scooter"}

	assert.True(t, SubcategoryContains("SCOOTER")(item))
	assert.False(t, SubcategoryContains("tandem")(item))
	assert.True(t, Not(CategoryIn(domain.CategoryBoats))(item))
	assert.True(t, Any(CategoryIn(domain.CategoryBoats), SubcategoryContains("scoot"))(item))
	assert.False(t, All(CategoryIn(domain.CategoryBikes), SubcategoryContains("tandem"))(item))
}
