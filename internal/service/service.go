package service

import (
	"context"
	"time"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/lifecycle"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, string, *domain.User, error) // access, refresh, user
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
}

// Quote is what a renter sees before booking. Nothing is stored.
type Quote struct {
	Listing        *domain.Listing
	Price          domain.PriceBreakdown
	ContractType   domain.ContractType
	RequiredAngles []domain.EvidenceAngle
	Eligible       bool
}

type BookingService interface {
	Quote(ctx context.Context, renterID, listingID int32, start, end time.Time) (*Quote, error)
	CreateBooking(ctx context.Context, renterID, listingID int32, start, end time.Time, protectionAcknowledged bool) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, ownerID, bookingID int32) (*domain.Booking, error)
	CancelBooking(ctx context.Context, renterID, bookingID int32, reason string) (*domain.Booking, error)
	GetContract(ctx context.Context, userID, bookingID int32) (*domain.ContractDocument, error)
}

type FeeConfigService interface {
	Active(ctx context.Context) (*domain.FeeConfig, error)
	Publish(ctx context.Context, adminID int32, cfg *domain.FeeConfig) error
	Bootstrap(ctx context.Context, seed *domain.FeeConfig) error
}

// SessionView is a read model of a rental session with its derived values
// recomputed at read time.
type SessionView struct {
	Session         *domain.RentalSession
	RequiredAngles  []domain.EvidenceAngle
	CurrentAngle    *domain.EvidenceAngle
	Allowed         []lifecycle.EventKind
	Remaining       time.Duration
	ComparisonPairs []domain.PhotoPair
	Transition      *lifecycle.Transition // set by Advance
}

// PhotoUpload is a presigned upload for one inspection angle.
type PhotoUpload struct {
	UploadURL   string
	DownloadURL string
	Key         string
	ExpiresAt   time.Time
}

type SessionService interface {
	GetSession(ctx context.Context, userID, bookingID int32) (*SessionView, error)
	Advance(ctx context.Context, userID, bookingID int32, ev lifecycle.Event) (*SessionView, error)
	RequestPhotoUpload(ctx context.Context, userID, bookingID int32, angleID, contentType string) (*PhotoUpload, error)
	OverrideIdentity(ctx context.Context, adminID, bookingID int32) (*SessionView, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendRentalAgreement(ctx context.Context, email, name string, doc domain.ContractDocument) error
	SendBookingRequestNotification(ctx context.Context, ownerEmail, renterName, itemName string) error
	SendBookingCancelledNotification(ctx context.Context, ownerEmail, renterName, itemName, reason string) error
	SendReturnReminder(ctx context.Context, email, name, itemName string, endDate time.Time) error
	SendRentalCompletedNotification(ctx context.Context, email, name, itemName string) error
}

// EventPublisher emits domain events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}
