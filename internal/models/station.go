package models

import "time"

// PoliceStation is a station that officers are assigned to and FIRs are filed at.
// OfficerCount is derived: it always equals the number of officers whose
// StationID references this station.
type PoliceStation struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	Name         string    `gorm:"not null;size:255" json:"name"`
	Address      string    `gorm:"not null;type:text" json:"address"`
	Contact      string    `gorm:"not null;size:100" json:"contact"`
	OfficerCount int       `gorm:"not null;default:0" json:"officer_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (s PoliceStation) RecordID() string { return s.ID }
