package models

import "time"

// PaymentStatus is the local four-state view of a checkout session.
// It is derived from processor state on every query, never stored.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusExpired   PaymentStatus = "expired"
)

// PaymentSessionRequest carries everything needed to open an annual
// insurance checkout for one athlete. Contact fields are optional.
type PaymentSessionRequest struct {
	AthleteID   string `json:"athlete_id"`
	AthleteName string `json:"athlete_name"`
	ClubID      string `json:"club_id"`
	ClubName    string `json:"club_name"`
	SeasonID    string `json:"season_id"`
	SeasonLabel string `json:"season_label"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// PaymentSession is the processor-issued checkout handle. Stripe is the
// source of truth; nothing is written locally when one is created.
type PaymentSession struct {
	SessionID  string    `json:"session_id"`
	PaymentURL string    `json:"payment_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// InsuranceStatus is the answer to "is this athlete insured for this season".
// A lookup failure is reported as not insured, never as an error.
type InsuranceStatus struct {
	HasPaid     bool       `json:"hasPaid"`
	PaymentDate *time.Time `json:"paymentDate,omitempty"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`
	PaymentID   string     `json:"paymentId,omitempty"`
}

// PaymentEvent is the message published to SNS when an insurance payment
// reaches a terminal state.
type PaymentEvent struct {
	Type      string    `json:"type"` // e.g. "insurance_payment_succeeded"
	AthleteID string    `json:"athlete_id"`
	ClubID    string    `json:"club_id"`
	SeasonID  string    `json:"season_id"`
	PaymentID string    `json:"payment_id"`
	SessionID string    `json:"session_id"`
	Amount    int64     `json:"amount"`   // smallest currency unit
	Currency  string    `json:"currency"` // "mad"
	Timestamp time.Time `json:"timestamp"`
}
