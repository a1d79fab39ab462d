package domain

import "time"

type RiskTier string

const (
	RiskTierSoftGoods   RiskTier = "SOFT_GOODS"
	RiskTierPowersports RiskTier = "POWERSPORTS"
)

type ProtectionStrategy string

const (
	ProtectionStrategyPercentage ProtectionStrategy = "percentage"
	ProtectionStrategyTiered     ProtectionStrategy = "tiered"
)

// FeeConfig is one published version of the operator fee settings.
// All amounts are in cents.
type FeeConfig struct {
	Version  int32              `json:"version"`
	Strategy ProtectionStrategy `json:"strategy"`

	// Percentage strategy (soft goods)
	PercentageRate float64 `json:"percentage_rate"` // 0.15 == 15%
	MinFeeCents    int64   `json:"min_fee_cents"`

	// Tiered strategy (soft goods)
	Tier1LimitCents int64 `json:"tier1_limit_cents"`
	Tier1FeeCents   int64 `json:"tier1_fee_cents"`
	Tier2LimitCents int64 `json:"tier2_limit_cents"`
	Tier2FeeCents   int64 `json:"tier2_fee_cents"`
	Tier3FeeCents   int64 `json:"tier3_fee_cents"`

	ServiceFeeThresholdCents int64 `json:"service_fee_threshold_cents"`
	ServiceFeeLowCents       int64 `json:"service_fee_low_cents"`
	ServiceFeeHighCents      int64 `json:"service_fee_high_cents"`

	PowersportsDailyPremiumCents int64 `json:"powersports_daily_premium_cents"`
	DeductibleCents              int64 `json:"deductible_cents"`

	CreatedBy int32     `json:"created_by"`
	CreatedOn time.Time `json:"created_on"`
}

// PriceBreakdown is fixed at booking creation.
// TotalCents always equals BaseRentalCents + ProtectionFeeCents + ServiceFeeCents.
type PriceBreakdown struct {
	Days               int      `json:"days"`
	BaseRentalCents    int64    `json:"base_rental_cents"`
	ProtectionFeeCents int64    `json:"protection_fee_cents"`
	ServiceFeeCents    int64    `json:"service_fee_cents"`
	TotalCents         int64    `json:"total_cents"`
	RiskTier           RiskTier `json:"risk_tier"`
	ProtectionLabel    string   `json:"protection_label"`
	RequiresLicense    bool     `json:"requires_license"`
	FeeConfigVersion   int32    `json:"fee_config_version"`
}
