package models

import (
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
)

// CatalogItemModel is the persistence model for a catalog Item.
// Position keeps the storefront order, which the sheet groups by.
type CatalogItemModel struct {
	BaseModel
	ID         string          `gorm:"type:varchar(64);primaryKey"`
	Name       string          `gorm:"type:varchar(200);not null"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ImageRef   string          `gorm:"type:varchar(500);not null;default:''"`
	CategoryID string          `gorm:"type:varchar(64);not null;index"`
	Featured   bool            `gorm:"not null;default:false"`
	Available  bool            `gorm:"not null"`
	Variants   []string        `gorm:"type:jsonb;serializer:json"`
	Position   int             `gorm:"not null;default:0;index"`
}

// TableName returns the table name for GORM
func (CatalogItemModel) TableName() string {
	return "catalog_items"
}

// ToDomain converts the persistence model to a domain Item
func (m *CatalogItemModel) ToDomain() catalog.Item {
	variants := make([]string, len(m.Variants))
	copy(variants, m.Variants)
	return catalog.Item{
		ID:         m.ID,
		Name:       m.Name,
		Price:      m.Price,
		ImageRef:   m.ImageRef,
		CategoryID: m.CategoryID,
		Featured:   m.Featured,
		Available:  m.Available,
		Variants:   variants,
	}
}

// FromDomain populates the persistence model from a domain Item
func (m *CatalogItemModel) FromDomain(item catalog.Item, position int) {
	m.ID = item.ID
	m.Name = item.Name
	m.Price = item.Price
	m.ImageRef = item.ImageRef
	m.CategoryID = item.CategoryID
	m.Featured = item.Featured
	m.Available = item.Available
	m.Variants = append([]string(nil), item.Variants...)
	m.Position = position
}
