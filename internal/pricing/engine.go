// Package pricing computes the price breakdown of a rental from the listing
// rate, the rental length, the listing's risk tier and the published fee
// configuration.
package pricing

import (
	"fmt"
	"math"
	"strconv"

	"gearshare-backend/internal/classify"
	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/utils"
)

const hoursPerDay = 24

// DailyRate normalises the listing rate to a per-day figure. Hourly listings
// are charged as 24 hours per day.
// TODO: confirm with operations whether hourly rentals shorter than a day
// should be billed by the hour instead of this approximation.
func DailyRate(l *domain.Listing) int64 {
	if l.PricingMode == domain.PricingModeHourly {
		return l.RateCents * hoursPerDay
	}
	return l.RateCents
}

// Compute returns the full price breakdown. days below 1 are billed as 1.
// cfg is assumed valid; see ValidateConfig.
func Compute(l *domain.Listing, days int, cfg domain.FeeConfig) domain.PriceBreakdown {
	if days < 1 {
		days = 1
	}
	tier := classify.Risk(l.Class())

	base := DailyRate(l) * int64(days)
	protection, label := ProtectionFee(tier, base, days, cfg)
	service := ServiceFee(base, cfg)

	return domain.PriceBreakdown{
		Days:               days,
		BaseRentalCents:    base,
		ProtectionFeeCents: protection,
		ServiceFeeCents:    service,
		TotalCents:         base + protection + service,
		RiskTier:           tier,
		ProtectionLabel:    label,
		RequiresLicense:    tier == domain.RiskTierPowersports,
		FeeConfigVersion:   cfg.Version,
	}
}

// ProtectionFee applies the tier-specific protection strategy.
func ProtectionFee(tier domain.RiskTier, base int64, days int, cfg domain.FeeConfig) (int64, string) {
	if tier == domain.RiskTierPowersports {
		fee := cfg.PowersportsDailyPremiumCents * int64(days)
		return fee, fmt.Sprintf("Powersports Protection (%s/day)", utils.FormatCents(cfg.PowersportsDailyPremiumCents))
	}

	switch cfg.Strategy {
	case domain.ProtectionStrategyTiered:
		switch {
		case base <= cfg.Tier1LimitCents:
			return cfg.Tier1FeeCents, "Damage Waiver (tier 1)"
		case base <= cfg.Tier2LimitCents:
			return cfg.Tier2FeeCents, "Damage Waiver (tier 2)"
		default:
			return cfg.Tier3FeeCents, "Damage Waiver (tier 3)"
		}
	default:
		fee := int64(math.Round(float64(base) * cfg.PercentageRate))
		if fee < cfg.MinFeeCents {
			fee = cfg.MinFeeCents
		}
		pct := strconv.FormatFloat(math.Round(cfg.PercentageRate*10000)/100, 'f', -1, 64)
		return fee, fmt.Sprintf("Damage Waiver (%s%%)", pct)
	}
}

// ServiceFee charges the low fee below the threshold and the high fee at or
// above it.
func ServiceFee(base int64, cfg domain.FeeConfig) int64 {
	if base < cfg.ServiceFeeThresholdCents {
		return cfg.ServiceFeeLowCents
	}
	return cfg.ServiceFeeHighCents
}

// CheckEligibility is false only for a powersports listing and a renter
// without a license on file.
func CheckEligibility(l *domain.Listing, userHasLicense bool) bool {
	if classify.Risk(l.Class()) == domain.RiskTierPowersports {
		return userHasLicense
	}
	return true
}
