package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Athlete struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FirstName     string         `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName      string         `gorm:"type:varchar(100);not null" json:"last_name"`
	BirthDate     *time.Time     `json:"birth_date,omitempty"`
	LicenseNumber string         `gorm:"type:varchar(32);uniqueIndex" json:"license_number"`
	Category      string         `gorm:"type:varchar(32)" json:"category"` // minime, cadet, junior, senior
	ClubID        uuid.UUID      `gorm:"type:uuid;index;not null" json:"club_id"`
	Email         string         `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone         string         `gorm:"type:varchar(32)" json:"phone,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Athlete) FullName() string {
	return a.FirstName + " " + a.LastName
}
