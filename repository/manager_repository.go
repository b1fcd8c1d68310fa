package repository

import (
	"context"
	"time"

	"federation-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ManagerRepository interface {
	Create(ctx context.Context, manager *models.ClubManager) error
	FindByEmail(ctx context.Context, email string) (*models.ClubManager, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.ClubManager, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}

type gormManagerRepo struct {
	db *gorm.DB
}

func NewGormManagerRepo(db *gorm.DB) ManagerRepository {
	return &gormManagerRepo{db: db}
}

func (r *gormManagerRepo) Create(ctx context.Context, manager *models.ClubManager) error {
	return r.db.WithContext(ctx).Create(manager).Error
}

func (r *gormManagerRepo) FindByEmail(ctx context.Context, email string) (*models.ClubManager, error) {
	var manager models.ClubManager
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&manager).Error; err != nil {
		return nil, err
	}
	return &manager, nil
}

func (r *gormManagerRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ClubManager, error) {
	var manager models.ClubManager
	if err := r.db.WithContext(ctx).First(&manager, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &manager, nil
}

// UpdatePassword replaces the hash and clears the forced-change flag in one write.
func (r *gormManagerRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&models.ClubManager{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash":        passwordHash,
			"must_change_password": false,
		}).Error
}

func (r *gormManagerRepo) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&models.ClubManager{}).
		Where("id = ?", id).
		Update("last_login_at", &now).Error
}
