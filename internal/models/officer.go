package models

import "time"

type Officer struct {
	ID          string         `gorm:"primaryKey;size:64" json:"id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	BadgeNumber string         `gorm:"not null;size:50;uniqueIndex" json:"badge_number"`
	Rank        string         `gorm:"not null;size:100" json:"rank"`
	StationID   string         `gorm:"not null;size:64;index" json:"station_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Station     *PoliceStation `gorm:"foreignKey:StationID" json:"-"`
}

func (o Officer) RecordID() string { return o.ID }
