package domain

import "time"

type ClaimStatus string

const (
	ClaimStatusOpen     ClaimStatus = "OPEN"
	ClaimStatusResolved ClaimStatus = "RESOLVED"
)

const ClaimReasonReturnDamage = "RETURN_DAMAGE"

type Claim struct {
	ID          int32       `json:"id"`
	BookingID   int32       `json:"booking_id"`
	ReporterID  int32       `json:"reporter_id"`
	Reason      string      `json:"reason"`
	Description string      `json:"description"`
	Status      ClaimStatus `json:"status"`
	CreatedOn   time.Time   `json:"created_on"`
}
