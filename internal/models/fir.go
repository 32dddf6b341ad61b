package models

import "time"

const (
	FirNew           = "new"
	FirInvestigating = "investigating"
	FirResolved      = "resolved"
	FirClosed        = "closed"
)

var FirStatuses = []string{FirNew, FirInvestigating, FirResolved, FirClosed}

// OpenFirStatuses are the statuses counted as active cases on the dashboard.
var OpenFirStatuses = []string{FirNew, FirInvestigating}

// FirDetail is a First Information Report. StationName is a copy of the
// referenced station's name and is refreshed whenever StationID changes.
type FirDetail struct {
	ID              string         `gorm:"primaryKey;size:64" json:"id"`
	ComplainantName string         `gorm:"not null;size:255" json:"complainant_name"`
	ComplainantID   string         `gorm:"not null;size:100" json:"complainant_id"`
	UserID          *string        `gorm:"size:64" json:"user_id,omitempty"`
	DateFiled       string         `gorm:"not null;size:10;index" json:"date_filed"`
	IncidentType    string         `gorm:"not null;size:100;index" json:"incident_type"`
	StationID       string         `gorm:"not null;size:64;index" json:"station_id"`
	StationName     string         `gorm:"size:255" json:"station_name"`
	Status          string         `gorm:"not null;size:20;index" json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	Station         *PoliceStation `gorm:"foreignKey:StationID" json:"-"`
}

func (f FirDetail) RecordID() string { return f.ID }

func IsOpenFirStatus(status string) bool {
	for _, s := range OpenFirStatuses {
		if s == status {
			return true
		}
	}
	return false
}
