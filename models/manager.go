package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClubManager is a club's self-service account. Admins create managers with
// a temporary password; the first login forces a change.
type ClubManager struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email              string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash       string         `gorm:"type:varchar(255);not null" json:"-"`
	FullName           string         `gorm:"type:varchar(200)" json:"full_name"`
	ClubID             uuid.UUID      `gorm:"type:uuid;index;not null" json:"club_id"`
	MustChangePassword bool           `gorm:"default:true" json:"must_change_password"`
	LastLoginAt        *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}
