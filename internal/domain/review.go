package domain

import "time"

type ReviewRole string

const (
	ReviewRoleHost   ReviewRole = "host"
	ReviewRoleRenter ReviewRole = "renter"
)

type Review struct {
	ID          int32            `json:"id"`
	BookingID   int32            `json:"booking_id"`
	AuthorID    int32            `json:"author_id"`
	TargetID    int32            `json:"target_id"`
	Role        ReviewRole       `json:"role"`
	Ratings     map[string]int32 `json:"ratings"`
	Comment     string           `json:"comment"`
	PrivateNote string           `json:"private_note"`
	CreatedOn   time.Time        `json:"created_on"`
}
