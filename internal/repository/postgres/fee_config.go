package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/logger"
	"gearshare-backend/internal/repository"
)

type feeConfigRepository struct {
	db *sql.DB
}

func NewFeeConfigRepository(db *sql.DB) repository.FeeConfigRepository {
	return &feeConfigRepository{db: db}
}

const feeConfigColumns = `version, strategy, percentage_rate, min_fee_cents,
	tier1_limit_cents, tier1_fee_cents, tier2_limit_cents, tier2_fee_cents, tier3_fee_cents,
	service_fee_threshold_cents, service_fee_low_cents, service_fee_high_cents,
	powersports_daily_premium_cents, deductible_cents, created_by, created_on`

func scanFeeConfig(row rowScanner) (*domain.FeeConfig, error) {
	c := &domain.FeeConfig{}
	err := row.Scan(&c.Version, &c.Strategy, &c.PercentageRate, &c.MinFeeCents,
		&c.Tier1LimitCents, &c.Tier1FeeCents, &c.Tier2LimitCents, &c.Tier2FeeCents, &c.Tier3FeeCents,
		&c.ServiceFeeThresholdCents, &c.ServiceFeeLowCents, &c.ServiceFeeHighCents,
		&c.PowersportsDailyPremiumCents, &c.DeductibleCents, &c.CreatedBy, &c.CreatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *feeConfigRepository) Latest(ctx context.Context) (*domain.FeeConfig, error) {
	query := `SELECT ` + feeConfigColumns + ` FROM fee_configs ORDER BY version DESC LIMIT 1`
	c, err := scanFeeConfig(r.db.QueryRowContext(ctx, query))
	if err != nil {
		return nil, translate(err, "fee configuration")
	}
	return c, nil
}

func (r *feeConfigRepository) GetByVersion(ctx context.Context, version int32) (*domain.FeeConfig, error) {
	query := `SELECT ` + feeConfigColumns + ` FROM fee_configs WHERE version = $1`
	c, err := scanFeeConfig(r.db.QueryRowContext(ctx, query, version))
	if err != nil {
		return nil, translate(err, fmt.Sprintf("fee configuration version %d", version))
	}
	return c, nil
}

// Publish assigns the next version number in the same statement. Two admins
// publishing at once collide on the primary key and one gets ErrConflict.
func (r *feeConfigRepository) Publish(ctx context.Context, c *domain.FeeConfig) error {
	query := `INSERT INTO fee_configs (version, strategy, percentage_rate, min_fee_cents,
	              tier1_limit_cents, tier1_fee_cents, tier2_limit_cents, tier2_fee_cents, tier3_fee_cents,
	              service_fee_threshold_cents, service_fee_low_cents, service_fee_high_cents,
	              powersports_daily_premium_cents, deductible_cents, created_by, created_on)
	          SELECT COALESCE(MAX(version), 0) + 1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
	          FROM fee_configs
	          RETURNING version`
	c.CreatedOn = time.Now()
	logger.DatabaseCall("INSERT", "fee_configs", "strategy", c.Strategy, "createdBy", c.CreatedBy)
	err := r.db.QueryRowContext(ctx, query, c.Strategy, c.PercentageRate, c.MinFeeCents,
		c.Tier1LimitCents, c.Tier1FeeCents, c.Tier2LimitCents, c.Tier2FeeCents, c.Tier3FeeCents,
		c.ServiceFeeThresholdCents, c.ServiceFeeLowCents, c.ServiceFeeHighCents,
		c.PowersportsDailyPremiumCents, c.DeductibleCents, c.CreatedBy, c.CreatedOn).Scan(&c.Version)
	logger.DatabaseResult("INSERT", 1, err, "version", c.Version)
	return translate(err, "fee configuration version")
}
