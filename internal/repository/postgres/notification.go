package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/logger"
	"gearshare-backend/internal/repository"

	"github.com/goccy/go-json"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

const notificationColumns = `id, user_id, booking_id, kind, title, message, is_read, attributes, created_on`

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	var attrs []byte
	if len(n.Attributes) > 0 {
		var err error
		if attrs, err = json.Marshal(n.Attributes); err != nil {
			return fmt.Errorf("encode notification attributes: %w", err)
		}
	}

	logger.DatabaseCall("INSERT", "notifications", "userID", n.UserID, "bookingID", n.BookingID, "kind", n.Kind)
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO notifications (user_id, booking_id, kind, title, message, is_read, attributes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_on`,
		n.UserID, n.BookingID, n.Kind, n.Title, n.Message, n.IsRead, attrs,
	).Scan(&n.ID, &n.CreatedOn)
	logger.DatabaseResult("INSERT", 1, err, "notificationID", n.ID)
	return err
}

// List returns one page of a user's notifications, newest first, and the
// user's total count.
func (r *notificationRepository) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	var total int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM notifications WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Notification{}, 0, nil
	}

	logger.DatabaseCall("SELECT", "notifications", "userID", userID, "limit", limit, "offset", offset)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+notificationColumns+` FROM notifications
		 WHERE user_id = $1 ORDER BY created_on DESC, id DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	notes := make([]domain.Notification, 0, limit)
	for rows.Next() {
		var n domain.Notification
		var attrs []byte
		if err := rows.Scan(&n.ID, &n.UserID, &n.BookingID, &n.Kind, &n.Title, &n.Message, &n.IsRead, &attrs, &n.CreatedOn); err != nil {
			return nil, 0, err
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &n.Attributes); err != nil {
				return nil, 0, fmt.Errorf("decode notification %d attributes: %w", n.ID, err)
			}
		}
		notes = append(notes, n)
	}
	logger.DatabaseResult("SELECT", int64(len(notes)), rows.Err())
	return notes, total, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: notification %d for user %d", domain.ErrNotFound, id, userID)
	}
	return nil
}
