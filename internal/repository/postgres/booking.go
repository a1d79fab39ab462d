package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/logger"
	"gearshare-backend/internal/repository"

	"github.com/lib/pq"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, listing_id, renter_id, owner_id, start_date, end_date, days,
	base_rental_cents, protection_fee_cents, service_fee_cents, total_cents, risk_tier, protection_label,
	requires_license, fee_config_version, contract_type, protection_acknowledged, status, version, cancel_reason,
	created_on, updated_on`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	p := &b.Price
	err := row.Scan(&b.ID, &b.ListingID, &b.RenterID, &b.OwnerID, &b.StartDate, &b.EndDate, &p.Days,
		&p.BaseRentalCents, &p.ProtectionFeeCents, &p.ServiceFeeCents, &p.TotalCents, &p.RiskTier, &p.ProtectionLabel,
		&p.RequiresLicense, &p.FeeConfigVersion, &b.ContractType, &b.ProtectionAcknowledged, &b.Status, &b.Version, &b.CancelReason,
		&b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	logger.EnterMethod("bookingRepository.Create", "listingID", b.ListingID, "renterID", b.RenterID)

	query := `INSERT INTO bookings (listing_id, renter_id, owner_id, start_date, end_date, days,
	              base_rental_cents, protection_fee_cents, service_fee_cents, total_cents, risk_tier, protection_label,
	              requires_license, fee_config_version, contract_type, protection_acknowledged, status, version, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, 1, $18, $19) RETURNING id, version`
	now := time.Now()
	b.CreatedOn, b.UpdatedOn = now, now
	p := b.Price

	logger.DatabaseCall("INSERT", "bookings", "listingID", b.ListingID)
	err := r.db.QueryRowContext(ctx, query, b.ListingID, b.RenterID, b.OwnerID, b.StartDate, b.EndDate, p.Days,
		p.BaseRentalCents, p.ProtectionFeeCents, p.ServiceFeeCents, p.TotalCents, p.RiskTier, p.ProtectionLabel,
		p.RequiresLicense, p.FeeConfigVersion, b.ContractType, b.ProtectionAcknowledged, b.Status, b.CreatedOn, b.UpdatedOn).Scan(&b.ID, &b.Version)
	logger.DatabaseResult("INSERT", 1, err, "bookingID", b.ID)

	if err != nil {
		logger.ExitMethodWithError("bookingRepository.Create", err)
		return err
	}
	logger.ExitMethod("bookingRepository.Create", "bookingID", b.ID)
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translate(err, fmt.Sprintf("booking %d", id))
	}
	return b, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int32, from, to domain.BookingStatus, version int64) (int64, error) {
	query := `UPDATE bookings SET status = $1, version = version + 1, updated_on = $2
	          WHERE id = $3 AND status = $4 AND version = $5
	          RETURNING version`
	logger.DatabaseCall("UPDATE", "bookings.status", "bookingID", id, "from", from, "to", to, "version", version)

	var next int64
	err := r.db.QueryRowContext(ctx, query, to, time.Now(), id, from, version).Scan(&next)
	if errors.Is(err, sql.ErrNoRows) {
		logger.DatabaseResult("UPDATE", 0, nil, "bookingID", id)
		return 0, fmt.Errorf("%w: booking %d is no longer %s at version %d", domain.ErrConflict, id, from, version)
	}
	logger.DatabaseResult("UPDATE", 1, err, "bookingID", id, "version", next)
	if err != nil {
		return 0, err
	}
	return next, nil
}

// Cancel moves a booking that has not started yet to cancelled.
func (r *bookingRepository) Cancel(ctx context.Context, id int32, reason string, version int64) (int64, error) {
	query := `UPDATE bookings SET status = $1, cancel_reason = $2, version = version + 1, updated_on = $3
	          WHERE id = $4 AND version = $5 AND status = ANY($6)
	          RETURNING version`
	cancellable := []string{string(domain.BookingStatusPending), string(domain.BookingStatusConfirmed)}
	logger.DatabaseCall("UPDATE", "bookings.cancel", "bookingID", id, "version", version)

	var next int64
	err := r.db.QueryRowContext(ctx, query, domain.BookingStatusCancelled, reason, time.Now(), id, version, pq.Array(cancellable)).Scan(&next)
	if errors.Is(err, sql.ErrNoRows) {
		logger.DatabaseResult("UPDATE", 0, nil, "bookingID", id)
		return 0, fmt.Errorf("%w: booking %d can no longer be cancelled at version %d", domain.ErrConflict, id, version)
	}
	logger.DatabaseResult("UPDATE", 1, err, "bookingID", id, "version", next)
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *bookingRepository) ListEndingBetween(ctx context.Context, statuses []domain.BookingStatus, from, to time.Time) ([]domain.Booking, error) {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE status = ANY($1) AND end_date >= $2 AND end_date < $3
	          ORDER BY end_date, id`
	logger.DatabaseCall("SELECT", "bookings.ending", "statuses", names, "from", from, "to", to)

	rows, err := r.db.QueryContext(ctx, query, pq.Array(names), from, to)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("SELECT", int64(len(bookings)), nil)
	return bookings, nil
}
