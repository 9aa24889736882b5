package models

import "gorm.io/gorm"

// SalesOrderLine is a wishlist entry: one user's interest in one catalog record.
// The (CatalogNo, UserID) pair is unique, so re-adding the same record to the
// same wishlist cannot produce a second row.
type SalesOrderLine struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	CatalogNo  int    `json:"catalog_no" gorm:"uniqueIndex:idx_sales_orders_catalog_user" validate:"required,gt=0"`
	UserID     string `json:"user_id" gorm:"type:varchar(36);uniqueIndex:idx_sales_orders_catalog_user" validate:"required,uuid"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// TableName keeps the historical table name from the original schema.
func (SalesOrderLine) TableName() string {
	return "sales_orders"
}
