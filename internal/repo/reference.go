package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/azamatkg/subi-sub002/internal/model"
)

// ReferenceRepository — контракт доступа к записям справочников.
type ReferenceRepository interface {
	// ListByKind возвращает записи указанного справочника, отсортированные по коду.
	ListByKind(ctx context.Context, kind string) ([]model.ReferenceItem, error)

	// GetByID возвращает запись по id внутри указанного справочника.
	GetByID(ctx context.Context, kind, id string) (*model.ReferenceItem, error)

	// Create вставляет новую запись. Пара (kind, code) уникальна.
	Create(ctx context.Context, item *model.ReferenceItem) error

	// Update применяет частичное обновление полей записи.
	// Возвращает gorm.ErrRecordNotFound если записи нет.
	Update(ctx context.Context, kind, id string, updates map[string]any) error

	// Delete удаляет запись. Возвращает gorm.ErrRecordNotFound если записи нет.
	Delete(ctx context.Context, kind, id string) error

	// CountByKind возвращает количество записей по каждому справочнику.
	CountByKind(ctx context.Context) (map[string]int64, error)
}

type referenceRepo struct {
	db *gorm.DB
}

// NewReferenceRepository создаёт реализацию репозитория справочников.
func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &referenceRepo{db: db}
}

func (r *referenceRepo) ListByKind(ctx context.Context, kind string) ([]model.ReferenceItem, error) {
	var items []model.ReferenceItem
	err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("code asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *referenceRepo) GetByID(ctx context.Context, kind, id string) (*model.ReferenceItem, error) {
	var it model.ReferenceItem
	err := r.db.WithContext(ctx).Where("kind = ? AND id = ?", kind, id).First(&it).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *referenceRepo) Create(ctx context.Context, item *model.ReferenceItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *referenceRepo) Update(ctx context.Context, kind, id string, updates map[string]any) error {
	tx := r.db.WithContext(ctx).
		Model(&model.ReferenceItem{}).
		Where("kind = ? AND id = ?", kind, id).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *referenceRepo) Delete(ctx context.Context, kind, id string) error {
	tx := r.db.WithContext(ctx).
		Where("kind = ? AND id = ?", kind, id).
		Delete(&model.ReferenceItem{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *referenceRepo) CountByKind(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Kind  string
		Total int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.ReferenceItem{}).
		Select("kind, count(*) as total").
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	res := make(map[string]int64, len(rows))
	for _, rr := range rows {
		res[rr.Kind] = rr.Total
	}
	return res, nil
}
