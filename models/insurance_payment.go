package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InsurancePayment is the local audit row for an annual insurance payment.
// It is written only by the webhook reconciler: session creation leaves no
// local trace, and Stripe remains the source of truth for coverage checks.
type InsurancePayment struct {
	ID                    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AthleteID             string    `gorm:"type:varchar(64);index:idx_athlete_season;not null"`
	ClubID                string    `gorm:"type:varchar(64);index;not null"`
	SeasonID              string    `gorm:"type:varchar(32);index:idx_athlete_season;not null"`
	Amount                int64     `gorm:"not null"` // minor units
	Currency              string    `gorm:"type:varchar(10);not null"`
	Status                string    `gorm:"type:varchar(20);not null"`
	StripeSessionID       *string   `gorm:"uniqueIndex"`
	StripePaymentIntentID *string   `gorm:"index"`
	StripeEventPayload    *string   `gorm:"type:jsonb"` // raw event, for audit and debugging
	SucceededAt           *time.Time
	CreatedAt             time.Time      `gorm:"autoCreateTime"`
	UpdatedAt             time.Time      `gorm:"autoUpdateTime"`
	DeletedAt             gorm.DeletedAt `gorm:"index"`
}
