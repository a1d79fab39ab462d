package domain

import "time"

// NotificationKind tells the client which screen a notification opens.
type NotificationKind string

const (
	NotificationBookingRequest   NotificationKind = "BOOKING_REQUEST"
	NotificationBookingConfirmed NotificationKind = "BOOKING_CONFIRMED"
	NotificationBookingCancelled NotificationKind = "BOOKING_CANCELLED"
	NotificationIdentityOverride NotificationKind = "IDENTITY_OVERRIDE"
	NotificationRentalStarted    NotificationKind = "RENTAL_STARTED"
	NotificationRentalCompleted  NotificationKind = "RENTAL_COMPLETED"
	NotificationReturnReminder   NotificationKind = "RETURN_REMINDER"
)

// Notification is an in-app message about one booking.
type Notification struct {
	ID         int32             `json:"id"`
	UserID     int32             `json:"user_id"`
	BookingID  int32             `json:"booking_id"`
	Kind       NotificationKind  `json:"kind"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	IsRead     bool              `json:"is_read"`
	Attributes map[string]string `json:"attributes,omitempty"`
	CreatedOn  time.Time         `json:"created_on"`
}
