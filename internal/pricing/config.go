package pricing

import (
	"fmt"

	"gearshare-backend/internal/domain"
)

// ValidateConfig rejects fee settings that would misprice a rental. It runs
// when a configuration is loaded or published, never mid-transaction.
func ValidateConfig(cfg domain.FeeConfig) error {
	amounts := []struct {
		name  string
		cents int64
	}{
		{"min_fee_cents", cfg.MinFeeCents},
		{"tier1_limit_cents", cfg.Tier1LimitCents},
		{"tier1_fee_cents", cfg.Tier1FeeCents},
		{"tier2_limit_cents", cfg.Tier2LimitCents},
		{"tier2_fee_cents", cfg.Tier2FeeCents},
		{"tier3_fee_cents", cfg.Tier3FeeCents},
		{"service_fee_threshold_cents", cfg.ServiceFeeThresholdCents},
		{"service_fee_low_cents", cfg.ServiceFeeLowCents},
		{"service_fee_high_cents", cfg.ServiceFeeHighCents},
		{"powersports_daily_premium_cents", cfg.PowersportsDailyPremiumCents},
		{"deductible_cents", cfg.DeductibleCents},
	}
	for _, a := range amounts {
		if a.cents < 0 {
			return fmt.Errorf("%w: %s must not be negative", domain.ErrConfiguration, a.name)
		}
	}

	switch cfg.Strategy {
	case domain.ProtectionStrategyPercentage:
		if cfg.PercentageRate < 0 || cfg.PercentageRate > 1 {
			return fmt.Errorf("%w: percentage_rate must be between 0 and 1", domain.ErrConfiguration)
		}
	case domain.ProtectionStrategyTiered:
		if cfg.Tier1LimitCents >= cfg.Tier2LimitCents {
			return fmt.Errorf("%w: tier1_limit_cents must be below tier2_limit_cents", domain.ErrConfiguration)
		}
		if cfg.Tier1FeeCents > cfg.Tier2FeeCents || cfg.Tier2FeeCents > cfg.Tier3FeeCents {
			return fmt.Errorf("%w: tier fees must not decrease from tier 1 to tier 3", domain.ErrConfiguration)
		}
	default:
		return fmt.Errorf("%w: unknown protection strategy %q", domain.ErrConfiguration, cfg.Strategy)
	}

	if cfg.ServiceFeeLowCents > cfg.ServiceFeeHighCents {
		return fmt.Errorf("%w: service_fee_low_cents must not exceed service_fee_high_cents", domain.ErrConfiguration)
	}
	return nil
}
