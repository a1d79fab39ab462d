package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"gearshare-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeeConfigRepository_Latest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewFeeConfigRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"version", "strategy", "percentage_rate", "min_fee_cents",
			"tier1_limit_cents", "tier1_fee_cents", "tier2_limit_cents", "tier2_fee_cents", "tier3_fee_cents",
			"service_fee_threshold_cents", "service_fee_low_cents", "service_fee_high_cents",
			"powersports_daily_premium_cents", "deductible_cents", "created_by", "created_on"}).
			AddRow(4, "percentage", 0.15, 500, 0, 0, 0, 0, 0, 100000, 1000, 75000, 3500, 50000, 1, time.Now())
		mock.ExpectQuery("SELECT (.+) FROM fee_configs ORDER BY version DESC LIMIT 1").WillReturnRows(rows)

		cfg, err := repo.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, int32(4), cfg.Version)
		assert.Equal(t, domain.ProtectionStrategyPercentage, cfg.Strategy)
		assert.Equal(t, 0.15, cfg.PercentageRate)
		assert.Equal(t, int64(50000), cfg.DeductibleCents)
	})

	t.Run("Empty store", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM fee_configs").WillReturnError(sql.ErrNoRows)
		_, err := repo.Latest(ctx)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestFeeConfigRepository_Publish(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewFeeConfigRepository(db)
	ctx := context.Background()
	cfg := &domain.FeeConfig{Strategy: domain.ProtectionStrategyPercentage, PercentageRate: 0.15, MinFeeCents: 500, CreatedBy: 9}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO fee_configs").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(5))

		require.NoError(t, repo.Publish(ctx, cfg))
		assert.Equal(t, int32(5), cfg.Version)
	})

	t.Run("Concurrent publish", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO fee_configs").
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

		err := repo.Publish(ctx, cfg)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
