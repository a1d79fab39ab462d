package classify

import (
	"testing"

	"gearshare-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func angleIDs(angles []domain.EvidenceAngle) []string {
	ids := make([]string, 0, len(angles))
	for _, a := range angles {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestRequiredAngles(t *testing.T) {
	tests := []struct {
		name     string
		item     domain.ItemClass
		expected []string
	}{
		{
			name:     "Surfboard",
			item:     domain.ItemClass{Category: domain.CategoryWaterSports, Subcategory: "Surfboard"},
			expected: []string{"overall", "detail_1"},
		},
		{
			name:     "RV",
			item:     domain.ItemClass{Category: domain.CategoryRVs, Subcategory: "Class C"},
			expected: []string{"front", "driver_side", "passenger_side", "rear", "fuel_dash"},
		},
		{
			name:     "Boat",
			item:     domain.ItemClass{Category: domain.CategoryBoats, Subcategory: "Yacht"},
			expected: []string{"bow", "hull_underside", "propeller_intake", "right_side", "left_side", "fuel_dash"},
		},
		{
			name:     "Jet ski",
			item:     domain.ItemClass{Category: domain.CategoryWaterSports, Subcategory: "Jet Ski"},
			expected: []string{"bow", "hull_underside", "propeller_intake", "right_side", "left_side", "fuel_dash"},
		},
		{
			name:     "Motor raft gets marine angles but no dashboard",
			item:     domain.ItemClass{Category: domain.CategoryWaterSports, Subcategory: "Motor raft"},
			expected: []string{"bow", "hull_underside", "propeller_intake", "right_side", "left_side"},
		},
		{
			name:     "ATV",
			item:     domain.ItemClass{Category: domain.CategoryATVsUTVs},
			expected: []string{"front", "driver_side", "passenger_side", "rear", "fuel_dash"},
		},
		{
			name:     "Motorcycle",
			item:     domain.ItemClass{Category: domain.CategoryMotorcycles, Subcategory: "Cruiser"},
			expected: []string{"front", "driver_side", "passenger_side", "rear", "fuel_dash"},
		},
		{
			name:     "Bike",
			item:     domain.ItemClass{Category: domain.CategoryBikes, Subcategory: "Road"},
			expected: []string{"overall", "detail_1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, angleIDs(RequiredAngles(tt.item)))
		})
	}
}

func TestRequiredAnglesNeverEmpty(t *testing.T) {
	for _, c := range domain.Categories {
		for _, sub := range []string{"", "Jet Ski", "Surfboard", "motor"} {
			angles := RequiredAngles(domain.ItemClass{Category: c, Subcategory: sub})
			require.NotEmpty(t, angles, "%s/%s", c, sub)

			seen := map[string]bool{}
			for _, a := range angles {
				assert.False(t, seen[a.ID], "duplicate angle %s for %s/%s", a.ID, c, sub)
				seen[a.ID] = true
				assert.NotEmpty(t, a.Label)
			}
		}
	}
}

func TestRequiredAnglesDoesNotAliasTables(t *testing.T) {
	item := domain.ItemClass{Category: domain.CategoryRVs}
	first := RequiredAngles(item)
	first[0].ID = "mutated"

	assert.Equal(t, "front", RequiredAngles(item)[0].ID)
}
