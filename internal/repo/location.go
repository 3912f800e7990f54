package repo

import (
	"InvKeeper/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LocationRepository - доступ к коллекции locations.
type LocationRepository interface {
	List(ctx context.Context) ([]model.Location, error)
	GetByID(ctx context.Context, id string) (*model.Location, error)
	GetByIdentifier(ctx context.Context, identifier string) (*model.Location, error)
	Count(ctx context.Context) (int64, error)
	// CreateIfAbsent вставляет место; при конфликте по идентификатору возвращает created=false.
	CreateIfAbsent(ctx context.Context, loc *model.Location) (created bool, err error)
	Update(ctx context.Context, id string, fields map[string]any) (matched int64, err error)
	Delete(ctx context.Context, id string) (deleted int64, err error)
}

type locationRepo struct {
	db *gorm.DB
}

// NewLocationRepository создаёт реализацию репозитория мест хранения.
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepo{db: db}
}

func (r *locationRepo) List(ctx context.Context) ([]model.Location, error) {
	var out []model.Location
	if err := r.db.WithContext(ctx).Order("location_identifier ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *locationRepo) GetByID(ctx context.Context, id string) (*model.Location, error) {
	var loc model.Location
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *locationRepo) GetByIdentifier(ctx context.Context, identifier string) (*model.Location, error) {
	var loc model.Location
	if err := r.db.WithContext(ctx).Where("location_identifier = ?", identifier).First(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *locationRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Location{}).Count(&n).Error
	return n, err
}

func (r *locationRepo) CreateIfAbsent(ctx context.Context, loc *model.Location) (bool, error) {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "location_identifier"}},
		DoNothing: true,
	}).Create(loc)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *locationRepo) Update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Location{}).Where("id = ?", id).Updates(fields)
	return tx.RowsAffected, tx.Error
}

func (r *locationRepo) Delete(ctx context.Context, id string) (int64, error) {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Location{})
	return tx.RowsAffected, tx.Error
}
