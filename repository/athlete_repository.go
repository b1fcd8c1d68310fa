package repository

import (
	"context"

	"federation-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AthleteRepository interface {
	Create(ctx context.Context, athlete *models.Athlete) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Athlete, error)
	FindByClub(ctx context.Context, clubID uuid.UUID) ([]models.Athlete, error)
	FindAll(ctx context.Context, page, limit int) ([]models.Athlete, int64, error)
	Update(ctx context.Context, athlete *models.Athlete) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormAthleteRepo struct {
	db *gorm.DB
}

func NewGormAthleteRepo(db *gorm.DB) AthleteRepository {
	return &gormAthleteRepo{db: db}
}

func (r *gormAthleteRepo) Create(ctx context.Context, athlete *models.Athlete) error {
	return r.db.WithContext(ctx).Create(athlete).Error
}

func (r *gormAthleteRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Athlete, error) {
	var athlete models.Athlete
	if err := r.db.WithContext(ctx).First(&athlete, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &athlete, nil
}

func (r *gormAthleteRepo) FindByClub(ctx context.Context, clubID uuid.UUID) ([]models.Athlete, error) {
	var athletes []models.Athlete
	if err := r.db.WithContext(ctx).Where("club_id = ?", clubID).Order("last_name").Find(&athletes).Error; err != nil {
		return nil, err
	}
	return athletes, nil
}

func (r *gormAthleteRepo) FindAll(ctx context.Context, page, limit int) ([]models.Athlete, int64, error) {
	var athletes []models.Athlete
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Athlete{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).Order("last_name").Offset(offset).Limit(limit).Find(&athletes).Error; err != nil {
		return nil, 0, err
	}
	return athletes, total, nil
}

func (r *gormAthleteRepo) Update(ctx context.Context, athlete *models.Athlete) error {
	return r.db.WithContext(ctx).Save(athlete).Error
}

func (r *gormAthleteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Athlete{}, "id = ?", id).Error
}
