package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
	domainRepo "github.com/dinetrack/dinetrack-api/internal/domain/repository"
	"github.com/dinetrack/dinetrack-api/pkg/pagination"
)

type businessDayRepository struct {
	db *gorm.DB
}

// NewBusinessDayRepository creates a new business day repository
func NewBusinessDayRepository(db *gorm.DB) domainRepo.BusinessDayRepository {
	return &businessDayRepository{db: db}
}

func (r *businessDayRepository) Create(ctx context.Context, day *entity.BusinessDay) error {
	return r.db.WithContext(ctx).Create(day).Error
}

func (r *businessDayRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.BusinessDay, error) {
	var day entity.BusinessDay
	err := r.db.WithContext(ctx).First(&day, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &day, err
}

func (r *businessDayRepository) GetOpen(ctx context.Context) (*entity.BusinessDay, error) {
	var day entity.BusinessDay
	err := r.db.WithContext(ctx).First(&day, "status = ?", enum.BusinessDayOpen).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &day, err
}

func (r *businessDayRepository) Update(ctx context.Context, day *entity.BusinessDay) error {
	return r.db.WithContext(ctx).Save(day).Error
}

func (r *businessDayRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.BusinessDay, int64, error) {
	var days []entity.BusinessDay
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.BusinessDay{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("opened_at DESC").
		Find(&days).Error

	return days, total, err
}
