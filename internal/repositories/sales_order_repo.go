package repositories

import "wantlist/internal/models"

// SalesOrderRepository defines the interface for wishlist line data access.
// Lines are create-once and never updated or deleted.
type SalesOrderRepository interface {
	GetByUserID(userID string) ([]models.SalesOrderLine, error)
	GetByCatalogAndUser(catalogNo int, userID string) (*models.SalesOrderLine, error)
	Create(line *models.SalesOrderLine) error
}
