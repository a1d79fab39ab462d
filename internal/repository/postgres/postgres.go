package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/logger"
	"gearshare-backend/internal/repository"
	"gearshare-backend/migrations"

	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ListingRepository
	repository.BookingRepository
	repository.SessionRepository
	repository.FeeConfigRepository
	repository.ClaimRepository
	repository.ReviewRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		ListingRepository:      NewListingRepository(db),
		BookingRepository:      NewBookingRepository(db),
		SessionRepository:      NewSessionRepository(db),
		FeeConfigRepository:    NewFeeConfigRepository(db),
		ClaimRepository:        NewClaimRepository(db),
		ReviewRepository:       NewReviewRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}

// Migrate applies the embedded goose migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	for _, r := range results {
		logger.Info("Applied migration", "source", r.Source.Path, "duration", r.Duration)
	}
	return nil
}

const uniqueViolation = "23505"

// translate maps driver errors onto the domain sentinels.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s already exists", domain.ErrConflict, what)
	}
	return err
}
