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

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// Create rejects a second review by the same author on a booking with
// ErrConflict, so a retried submission after a lost response is harmless.
func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	ratings, err := json.Marshal(rv.Ratings)
	if err != nil {
		return err
	}
	query := `INSERT INTO reviews (booking_id, author_id, target_id, role, ratings, comment, private_note, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	rv.CreatedOn = time.Now()
	logger.DatabaseCall("INSERT", "reviews", "bookingID", rv.BookingID, "authorID", rv.AuthorID)
	err = r.db.QueryRowContext(ctx, query, rv.BookingID, rv.AuthorID, rv.TargetID, rv.Role, ratings, rv.Comment, rv.PrivateNote, rv.CreatedOn).Scan(&rv.ID)
	logger.DatabaseResult("INSERT", 1, err, "reviewID", rv.ID)
	return translate(err, fmt.Sprintf("review by %d on booking %d", rv.AuthorID, rv.BookingID))
}

func (r *reviewRepository) ListByBooking(ctx context.Context, bookingID int32) ([]domain.Review, error) {
	query := `SELECT id, booking_id, author_id, target_id, role, ratings, comment, private_note, created_on
	          FROM reviews WHERE booking_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		var ratings []byte
		if err := rows.Scan(&rv.ID, &rv.BookingID, &rv.AuthorID, &rv.TargetID, &rv.Role, &ratings, &rv.Comment, &rv.PrivateNote, &rv.CreatedOn); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(ratings, &rv.Ratings); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
