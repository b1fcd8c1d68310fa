package repository

import (
	"context"

	"federation-backend/models"

	"gorm.io/gorm"
)

type InsurancePaymentRepository interface {
	Create(ctx context.Context, payment *models.InsurancePayment) error
	FindByStripeSessionID(ctx context.Context, sessionID string) (*models.InsurancePayment, error)
	Update(ctx context.Context, payment *models.InsurancePayment) error
	AttachEventPayload(ctx context.Context, paymentIntentID string, payload string) error
}

type gormInsurancePaymentRepo struct {
	db *gorm.DB
}

func NewGormInsurancePaymentRepo(db *gorm.DB) InsurancePaymentRepository {
	return &gormInsurancePaymentRepo{db: db}
}

func (r *gormInsurancePaymentRepo) Create(ctx context.Context, payment *models.InsurancePayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *gormInsurancePaymentRepo) FindByStripeSessionID(ctx context.Context, sessionID string) (*models.InsurancePayment, error) {
	var payment models.InsurancePayment
	if err := r.db.WithContext(ctx).Where("stripe_session_id = ?", sessionID).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *gormInsurancePaymentRepo) Update(ctx context.Context, payment *models.InsurancePayment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

// AttachEventPayload stores a payment_intent event body against an existing
// row without touching its status.
func (r *gormInsurancePaymentRepo) AttachEventPayload(ctx context.Context, paymentIntentID string, payload string) error {
	return r.db.WithContext(ctx).Model(&models.InsurancePayment{}).
		Where("stripe_payment_intent_id = ?", paymentIntentID).
		Update("stripe_event_payload", payload).Error
}
