package models

import "time"

const (
	RoleAdmin   = "admin"
	RoleOfficer = "officer"
	RoleUser    = "user"
)

// User is an account that can sign in to the records system.
type User struct {
	ID              string    `gorm:"primaryKey;size:64" json:"id"`
	Email           string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	FirstName       string    `gorm:"size:100" json:"first_name"`
	LastName        string    `gorm:"size:100" json:"last_name"`
	ProfileImageURL string    `gorm:"type:text" json:"profile_image_url,omitempty"`
	Password        string    `gorm:"not null" json:"-"`
	Role            string    `gorm:"size:20;not null;default:'user'" json:"role"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (u User) RecordID() string { return u.ID }

// DisplayName is the label written to activity rows for actions this user performs.
func (u User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleOfficer, RoleUser:
		return true
	}
	return false
}
