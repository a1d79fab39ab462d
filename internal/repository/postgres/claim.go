package postgres

import (
	"context"
	"database/sql"
	"time"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/logger"
	"gearshare-backend/internal/repository"
)

type claimRepository struct {
	db *sql.DB
}

func NewClaimRepository(db *sql.DB) repository.ClaimRepository {
	return &claimRepository{db: db}
}

// Create rejects a second claim with the same reason by the same reporter on
// a booking with ErrConflict.
func (r *claimRepository) Create(ctx context.Context, c *domain.Claim) error {
	query := `INSERT INTO claims (booking_id, reporter_id, reason, description, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if c.Status == "" {
		c.Status = domain.ClaimStatusOpen
	}
	c.CreatedOn = time.Now()
	logger.DatabaseCall("INSERT", "claims", "bookingID", c.BookingID, "reason", c.Reason)
	err := r.db.QueryRowContext(ctx, query, c.BookingID, c.ReporterID, c.Reason, c.Description, c.Status, c.CreatedOn).Scan(&c.ID)
	logger.DatabaseResult("INSERT", 1, err, "claimID", c.ID)
	return translate(err, "claim")
}

func (r *claimRepository) ListByBooking(ctx context.Context, bookingID int32) ([]domain.Claim, error) {
	query := `SELECT id, booking_id, reporter_id, reason, description, status, created_on
	          FROM claims WHERE booking_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []domain.Claim
	for rows.Next() {
		var c domain.Claim
		if err := rows.Scan(&c.ID, &c.BookingID, &c.ReporterID, &c.Reason, &c.Description, &c.Status, &c.CreatedOn); err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}
