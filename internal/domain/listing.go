package domain

import (
	"fmt"
	"strings"
	"time"
)

type Category string

const (
	CategoryBoats        Category = "BOATS"
	CategoryWaterSports  Category = "WATER_SPORTS"
	CategoryRVs          Category = "RVS"
	CategoryATVsUTVs     Category = "ATVS_UTVS"
	CategoryMotorcycles  Category = "MOTORCYCLES"
	CategoryBikes        Category = "BIKES"
	CategoryWinterSports Category = "WINTER_SPORTS"
	CategoryCamping      Category = "CAMPING"
)

// Categories lists every listing category the platform accepts.
var Categories = []Category{
	CategoryBoats,
	CategoryWaterSports,
	CategoryRVs,
	CategoryATVsUTVs,
	CategoryMotorcycles,
	CategoryBikes,
	CategoryWinterSports,
	CategoryCamping,
}

// ParseCategory validates a category coming from storage or the wire.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown listing category %q", ErrValidation, s)
}

type PricingMode string

const (
	PricingModeDaily  PricingMode = "daily"
	PricingModeHourly PricingMode = "hourly"
)

// ItemClass is the pair every classification rule reads.
type ItemClass struct {
	Category    Category `json:"category"`
	Subcategory string   `json:"subcategory"`
}

type Listing struct {
	ID                   int32       `json:"id"`
	OwnerID              int32       `json:"owner_id"`
	OwnerName            string      `json:"owner_name"` // Populated from users on read
	OwnerEmail           string      `json:"owner_email"`
	Title                string      `json:"title"`
	LegalItemName        string      `json:"legal_item_name"`
	Description          string      `json:"description"`
	Category             Category    `json:"category"`
	Subcategory          string      `json:"subcategory"`
	PricingMode          PricingMode `json:"pricing_mode"`
	RateCents            int64       `json:"rate_cents"`
	SecurityDepositCents int64       `json:"security_deposit_cents"`
	CreatedOn            time.Time   `json:"created_on"`
	UpdatedOn            time.Time   `json:"updated_on"`
}

// Class returns the current category/subcategory pair. Classification results
// are always derived from this on read and never stored alongside the listing.
func (l *Listing) Class() ItemClass {
	return ItemClass{Category: l.Category, Subcategory: l.Subcategory}
}

// ItemName is the name used on legal documents.
func (l *Listing) ItemName() string {
	if strings.TrimSpace(l.LegalItemName) != "" {
		return l.LegalItemName
	}
	return l.Title
}
