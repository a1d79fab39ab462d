package repository

import (
	"context"
	"time"

	"gearshare-backend/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id int32) (*domain.Listing, error)
	Update(ctx context.Context, listing *domain.Listing) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	// UpdateStatus applies from -> to only when the row still has the given
	// status and version. It returns the new version, or ErrConflict.
	UpdateStatus(ctx context.Context, id int32, from, to domain.BookingStatus, version int64) (int64, error)
	Cancel(ctx context.Context, id int32, reason string, version int64) (int64, error)
	ListEndingBetween(ctx context.Context, statuses []domain.BookingStatus, from, to time.Time) ([]domain.Booking, error)
}

type SessionRepository interface {
	Get(ctx context.Context, bookingID int32) (*domain.RentalSession, error)
	Save(ctx context.Context, session *domain.RentalSession) error
	// Delete drops the snapshot of a session that never left handover.
	Delete(ctx context.Context, bookingID int32) error
	// PurgeCompleted removes snapshots of completed sessions last touched
	// before the cutoff and returns how many were removed.
	PurgeCompleted(ctx context.Context, before time.Time) (int64, error)
}

type FeeConfigRepository interface {
	// Latest returns the highest published version, or ErrNotFound.
	Latest(ctx context.Context) (*domain.FeeConfig, error)
	GetByVersion(ctx context.Context, version int32) (*domain.FeeConfig, error)
	// Publish stores cfg as the next version and sets cfg.Version.
	Publish(ctx context.Context, cfg *domain.FeeConfig) error
}

type ClaimRepository interface {
	Create(ctx context.Context, claim *domain.Claim) error
	ListByBooking(ctx context.Context, bookingID int32) ([]domain.Claim, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByBooking(ctx context.Context, bookingID int32) ([]domain.Review, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
