package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID        int32     `json:"id"`
	ListingID int32     `json:"listing_id"`
	RenterID  int32     `json:"renter_id"`
	OwnerID   int32     `json:"owner_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	// Price and contract are fixed when the booking is created.
	Price                  PriceBreakdown `json:"price"`
	ContractType           ContractType   `json:"contract_type"`
	ProtectionAcknowledged bool           `json:"protection_acknowledged"`
	Status                 BookingStatus  `json:"status"`
	Version                int64          `json:"version"` // Optimistic concurrency token
	CancelReason           string         `json:"cancel_reason,omitempty"`
	CreatedOn              time.Time      `json:"created_on"`
	UpdatedOn              time.Time      `json:"updated_on"`
}

// ProtectionSelection records what the renter accepted at checkout.
type ProtectionSelection struct {
	Label        string `json:"label"`
	Acknowledged bool   `json:"acknowledged"`
}
