package models

import "time"

// Profile holds contact details for a user; at most one per user.
type Profile struct {
	UserID      string    `gorm:"primaryKey;size:64" json:"user_id"`
	Address     string    `gorm:"type:text" json:"address"`
	PhoneNumber string    `gorm:"size:50" json:"phone_number"`
	Email       string    `gorm:"size:255" json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	User        *User     `gorm:"foreignKey:UserID" json:"-"`
}

func (p Profile) RecordID() string { return p.UserID }
