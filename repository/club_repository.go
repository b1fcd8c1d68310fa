package repository

import (
	"context"

	"federation-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClubRepository interface {
	Create(ctx context.Context, club *models.Club) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Club, error)
	FindAll(ctx context.Context) ([]models.Club, error)
	Update(ctx context.Context, club *models.Club) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormClubRepo struct {
	db *gorm.DB
}

func NewGormClubRepo(db *gorm.DB) ClubRepository {
	return &gormClubRepo{db: db}
}

func (r *gormClubRepo) Create(ctx context.Context, club *models.Club) error {
	return r.db.WithContext(ctx).Create(club).Error
}

func (r *gormClubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Club, error) {
	var club models.Club
	if err := r.db.WithContext(ctx).First(&club, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &club, nil
}

func (r *gormClubRepo) FindAll(ctx context.Context) ([]models.Club, error) {
	var clubs []models.Club
	if err := r.db.WithContext(ctx).Order("name").Find(&clubs).Error; err != nil {
		return nil, err
	}
	return clubs, nil
}

func (r *gormClubRepo) Update(ctx context.Context, club *models.Club) error {
	return r.db.WithContext(ctx).Save(club).Error
}

func (r *gormClubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Club{}, "id = ?", id).Error
}
