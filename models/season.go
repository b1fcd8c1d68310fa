package models

import "time"

// Season is keyed by its human identifier ("2025") so that checkout
// metadata and coverage lookups use the same value everywhere.
type Season struct {
	ID        string    `gorm:"type:varchar(32);primaryKey" json:"id"`
	Label     string    `gorm:"type:varchar(64);not null" json:"label"` // "Saison 2025/2026"
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Current   bool      `gorm:"default:false;index" json:"current"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
