package domain

import "time"

type User struct {
	ID           int32     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	HasLicense   bool      `json:"has_license"` // A valid operator license is on file
	IsAdmin      bool      `json:"is_admin"`
	CreatedOn    time.Time `json:"created_on"`
}

const RoleAdmin = "admin"

// Roles returns the token roles for the user.
func (u *User) Roles() []string {
	if u.IsAdmin {
		return []string{RoleAdmin}
	}
	return nil
}
