package domain

import "time"

// SystemState is the per-user singleton holding the incremental-sync
// watermark and running counters. Only the ingestion pipeline moves the
// watermark, and only after a completed fetch cycle.
type SystemState struct {
	UserID                string     `json:"-" gorm:"primaryKey"`
	LastFetchTime         *time.Time `json:"lastFetchTime"`
	TotalEmailsProcessed  int64      `json:"totalEmailsProcessed"`
	TotalInternshipsFound int64      `json:"totalInternshipsFound"`
	LastUpdated           time.Time  `json:"lastUpdated"`
}

func (SystemState) TableName() string {
	return "system_states"
}
