package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
	domainRepo "github.com/dinetrack/dinetrack-api/internal/domain/repository"
)

type tableRepository struct {
	db *gorm.DB
}

// NewTableRepository creates a new table repository
func NewTableRepository(db *gorm.DB) domainRepo.TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) Create(ctx context.Context, table *entity.Table) error {
	return r.db.WithContext(ctx).Create(table).Error
}

func (r *tableRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Table, error) {
	var table entity.Table
	err := r.db.WithContext(ctx).First(&table, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &table, err
}

func (r *tableRepository) GetByNumber(ctx context.Context, tableNumber string) (*entity.Table, error) {
	var table entity.Table
	err := r.db.WithContext(ctx).First(&table, "table_number = ?", tableNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &table, err
}

func (r *tableRepository) Update(ctx context.Context, table *entity.Table) error {
	return r.db.WithContext(ctx).Save(table).Error
}

func (r *tableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Table{}, "id = ?", id).Error
}

func (r *tableRepository) List(ctx context.Context, activeOnly bool) ([]entity.Table, error) {
	var tables []entity.Table
	query := r.db.WithContext(ctx).Order("table_number ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&tables).Error
	return tables, err
}

// ListWithOccupancy derives occupancy from the active-session join at query
// time rather than a stored flag, so it can never drift from session state.
func (r *tableRepository) ListWithOccupancy(ctx context.Context) ([]entity.TableWithOccupancy, error) {
	var tables []entity.Table
	if err := r.db.WithContext(ctx).Order("table_number ASC").Find(&tables).Error; err != nil {
		return nil, err
	}

	var active []entity.Session
	if err := r.db.WithContext(ctx).
		Where("status = ? AND table_id IS NOT NULL", enum.SessionActive).
		Find(&active).Error; err != nil {
		return nil, err
	}

	byTable := make(map[uuid.UUID]*entity.Session, len(active))
	for i := range active {
		byTable[*active[i].TableID] = &active[i]
	}

	result := make([]entity.TableWithOccupancy, 0, len(tables))
	for _, t := range tables {
		view := entity.TableWithOccupancy{Table: t}
		if session, ok := byTable[t.ID]; ok {
			view.Occupied = true
			view.ActiveSession = session
		}
		result = append(result, view)
	}
	return result, nil
}
