package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	CriminalActive       = "active"
	CriminalIncarcerated = "incarcerated"
	CriminalReleased     = "released"
	CriminalWanted       = "wanted"
)

var CriminalStatuses = []string{CriminalActive, CriminalIncarcerated, CriminalReleased, CriminalWanted}

var Genders = []string{"male", "female", "other"}

type Criminal struct {
	ID            string                      `gorm:"primaryKey;size:64" json:"id"`
	FirstName     string                      `gorm:"not null;size:100" json:"first_name"`
	LastName      string                      `gorm:"not null;size:100" json:"last_name"`
	Age           int                         `gorm:"not null" json:"age"`
	Gender        string                      `gorm:"not null;size:20" json:"gender"`
	Status        string                      `gorm:"not null;size:20;index" json:"status"`
	LastCrimeDate string                      `gorm:"not null;size:10" json:"last_crime_date"`
	CrimeTypes    datatypes.JSONSlice[string] `json:"crime_types"`
	PhotoURL      string                      `gorm:"type:text" json:"photo_url,omitempty"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

func (c Criminal) RecordID() string { return c.ID }

func (c Criminal) FullName() string { return c.FirstName + " " + c.LastName }
