package repository

import (
	"context"

	"federation-backend/models"

	"gorm.io/gorm"
)

type SeasonRepository interface {
	Create(ctx context.Context, season *models.Season) error
	FindByID(ctx context.Context, id string) (*models.Season, error)
	FindCurrent(ctx context.Context) (*models.Season, error)
	FindAll(ctx context.Context) ([]models.Season, error)
	Update(ctx context.Context, season *models.Season) error
}

type gormSeasonRepo struct {
	db *gorm.DB
}

func NewGormSeasonRepo(db *gorm.DB) SeasonRepository {
	return &gormSeasonRepo{db: db}
}

func (r *gormSeasonRepo) Create(ctx context.Context, season *models.Season) error {
	return r.db.WithContext(ctx).Create(season).Error
}

func (r *gormSeasonRepo) FindByID(ctx context.Context, id string) (*models.Season, error) {
	var season models.Season
	if err := r.db.WithContext(ctx).First(&season, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &season, nil
}

func (r *gormSeasonRepo) FindCurrent(ctx context.Context) (*models.Season, error) {
	var season models.Season
	if err := r.db.WithContext(ctx).Where("current = ?", true).First(&season).Error; err != nil {
		return nil, err
	}
	return &season, nil
}

func (r *gormSeasonRepo) FindAll(ctx context.Context) ([]models.Season, error) {
	var seasons []models.Season
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&seasons).Error; err != nil {
		return nil, err
	}
	return seasons, nil
}

func (r *gormSeasonRepo) Update(ctx context.Context, season *models.Season) error {
	return r.db.WithContext(ctx).Save(season).Error
}
