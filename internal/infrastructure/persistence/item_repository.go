package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const catalogOrder = "position ASC, id ASC"

// GormItemRepository implements catalog.ItemRepository and catalog.ItemWriter using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindAll returns every item in catalog order
func (r *GormItemRepository) FindAll(ctx context.Context) ([]catalog.Item, error) {
	var rows []models.CatalogItemModel
	if err := r.db.WithContext(ctx).Order(catalogOrder).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainItems(rows), nil
}

// FindByID finds an item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id string) (*catalog.Item, error) {
	var row models.CatalogItemModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	item := row.ToDomain()
	return &item, nil
}

// FindByCategory returns the items of one category in catalog order
func (r *GormItemRepository) FindByCategory(ctx context.Context, categoryID string) ([]catalog.Item, error) {
	var rows []models.CatalogItemModel
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order(catalogOrder).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainItems(rows), nil
}

// SaveAll replaces the catalog with items. Rows missing from items are
// deleted and slice order becomes the stored position.
func (r *GormItemRepository) SaveAll(ctx context.Context, items []catalog.Item) error {
	rows := make([]models.CatalogItemModel, len(items))
	ids := make([]string, len(items))
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %q: %w", item.ID, err)
		}
		rows[i].FromDomain(item, i)
		ids[i] = item.ID
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		del := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if len(ids) > 0 {
			del = del.Where("id NOT IN ?", ids)
		}
		if err := del.Delete(&models.CatalogItemModel{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "price", "image_ref", "category_id", "featured",
				"available", "variants", "position", "updated_at",
			}),
		}).Create(&rows).Error
	})
}

// Count returns the number of stored items
func (r *GormItemRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.CatalogItemModel{}).Count(&n).Error
	return n, err
}

func toDomainItems(rows []models.CatalogItemModel) []catalog.Item {
	items := make([]catalog.Item, len(rows))
	for i := range rows {
		items[i] = rows[i].ToDomain()
	}
	return items
}

var (
	_ catalog.ItemRepository = (*GormItemRepository)(nil)
	_ catalog.ItemWriter     = (*GormItemRepository)(nil)
)
