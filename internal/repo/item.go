package repo

import (
	"InvKeeper/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ItemRepository определяет контракт доступа к Item для слоя сервиса.
type ItemRepository interface {
	// List возвращает все предметы в порядке создания.
	List(ctx context.Context) ([]model.Item, error)
	GetByID(ctx context.Context, id string) (*model.Item, error)
	GetByName(ctx context.Context, name string) (*model.Item, error)
	Count(ctx context.Context) (int64, error)
	CountByLocation(ctx context.Context, locationID string) (int64, error)

	// CreateIfAbsent вставляет предмет; при конфликте по имени ничего не делает и возвращает created=false.
	CreateIfAbsent(ctx context.Context, it *model.Item) (created bool, err error)

	// Update выставляет поля и увеличивает версию. Возвращает число совпавших строк.
	Update(ctx context.Context, id string, fields map[string]any) (matched int64, err error)

	// UpdateWithVersion обновляет запись только если её версия равна expectedVersion.
	// Возвращает новую версию или gorm.ErrRecordNotFound, если запись не найдена либо версия не совпала.
	UpdateWithVersion(ctx context.Context, id string, expectedVersion int64, fields map[string]any) (int64, error)
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepository создаёт реализацию репозитория для Item.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) List(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepo) GetByID(ctx context.Context, id string) (*model.Item, error) {
	var it model.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&it).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) GetByName(ctx context.Context, name string) (*model.Item, error) {
	var it model.Item
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&it).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Item{}).Count(&n).Error
	return n, err
}

func (r *itemRepo) CountByLocation(ctx context.Context, locationID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Item{}).Where("location_id = ?", locationID).Count(&n).Error
	return n, err
}

func (r *itemRepo) CreateIfAbsent(ctx context.Context, it *model.Item) (bool, error) {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(it)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *itemRepo) Update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("id = ?", id).
		Updates(withVersionBump(fields))
	return tx.RowsAffected, tx.Error
}

func (r *itemRepo) UpdateWithVersion(ctx context.Context, id string, expectedVersion int64, fields map[string]any) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(withVersionBump(fields))
	if tx.Error != nil {
		return 0, tx.Error
	}
	if tx.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return expectedVersion + 1, nil
}

// withVersionBump копирует fields и добавляет инкремент версии.
func withVersionBump(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["version"] = gorm.Expr("version + 1")
	return out
}
