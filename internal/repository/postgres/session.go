package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/logger"
	"gearshare-backend/internal/repository"

	"github.com/goccy/go-json"
)

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository stores each rental session as a JSONB snapshot keyed
// by booking. Phase and step are copied into columns for the purge job.
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Get(ctx context.Context, bookingID int32) (*domain.RentalSession, error) {
	var snapshot []byte
	query := `SELECT snapshot FROM rental_sessions WHERE booking_id = $1`
	if err := r.db.QueryRowContext(ctx, query, bookingID).Scan(&snapshot); err != nil {
		return nil, translate(err, fmt.Sprintf("rental session %d", bookingID))
	}

	s := &domain.RentalSession{}
	if err := json.Unmarshal(snapshot, s); err != nil {
		return nil, fmt.Errorf("decode rental session %d: %w", bookingID, err)
	}
	return s, nil
}

func (r *sessionRepository) Save(ctx context.Context, s *domain.RentalSession) error {
	if s.UpdatedOn.IsZero() {
		s.UpdatedOn = time.Now()
	}
	snapshot, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode rental session %d: %w", s.BookingID, err)
	}

	query := `INSERT INTO rental_sessions (booking_id, phase, step, snapshot, updated_on)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (booking_id) DO UPDATE
	          SET phase = EXCLUDED.phase, step = EXCLUDED.step, snapshot = EXCLUDED.snapshot, updated_on = EXCLUDED.updated_on`
	logger.DatabaseCall("UPSERT", "rental_sessions", "bookingID", s.BookingID, "state", s.State.String())
	_, err = r.db.ExecContext(ctx, query, s.BookingID, s.State.Phase, s.State.Step, snapshot, s.UpdatedOn)
	logger.DatabaseResult("UPSERT", 1, err, "bookingID", s.BookingID)
	return err
}

func (r *sessionRepository) Delete(ctx context.Context, bookingID int32) error {
	query := `DELETE FROM rental_sessions WHERE booking_id = $1`
	logger.DatabaseCall("DELETE", "rental_sessions", "bookingID", bookingID)
	_, err := r.db.ExecContext(ctx, query, bookingID)
	logger.DatabaseResult("DELETE", 1, err, "bookingID", bookingID)
	return err
}

func (r *sessionRepository) PurgeCompleted(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM rental_sessions WHERE phase = $1 AND updated_on < $2`
	logger.DatabaseCall("DELETE", "rental_sessions", "before", before)
	res, err := r.db.ExecContext(ctx, query, domain.PhaseCompleted, before)
	if err != nil {
		logger.DatabaseResult("DELETE", 0, err)
		return 0, err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("DELETE", n, err)
	return n, err
}
