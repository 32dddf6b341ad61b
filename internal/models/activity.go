package models

import "time"

const (
	ActivityNew      = "new"
	ActivityUpdated  = "updated"
	ActivityProgress = "progress"
)

// Activity is an append-only audit entry shown on the dashboard feed.
// Location and Officer are free-text labels, not foreign keys.
type Activity struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"not null;type:text" json:"description"`
	Type        string    `gorm:"not null;size:20" json:"type"`
	Location    string    `gorm:"not null;size:255" json:"location"`
	Officer     string    `gorm:"not null;size:255" json:"officer"`
	Timestamp   time.Time `gorm:"not null;index" json:"timestamp"`
}
