package repositories

import (
	"fmt"
	"wantlist/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMSalesOrderRepository is a GORM implementation of SalesOrderRepository.
type GORMSalesOrderRepository struct {
	db *gorm.DB
}

// NewGORMSalesOrderRepository creates a new instance of GORMSalesOrderRepository.
func NewGORMSalesOrderRepository(db *gorm.DB) *GORMSalesOrderRepository {
	return &GORMSalesOrderRepository{
		db: db,
	}
}

// GetByUserID retrieves all wishlist lines owned by a user. An empty result
// is not an error; it is the empty-wishlist state.
func (r *GORMSalesOrderRepository) GetByUserID(userID string) ([]models.SalesOrderLine, error) {
	var lines []models.SalesOrderLine
	if err := r.db.Find(&lines, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get wishlist lines for user %s: %w", userID, err)
	}
	return lines, nil
}

// GetByCatalogAndUser retrieves a line by its composite natural key.
func (r *GORMSalesOrderRepository) GetByCatalogAndUser(catalogNo int, userID string) (*models.SalesOrderLine, error) {
	var line models.SalesOrderLine
	if err := r.db.First(&line, "catalog_no = ? AND user_id = ?", catalogNo, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("wishlist line for catalog number %d and user %s not found", catalogNo, userID)
		}
		return nil, fmt.Errorf("failed to get wishlist line for catalog number %d and user %s: %w", catalogNo, userID, err)
	}
	return &line, nil
}

// Create creates a new wishlist line in the database.
func (r *GORMSalesOrderRepository) Create(line *models.SalesOrderLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	if err := r.db.Create(line).Error; err != nil {
		return fmt.Errorf("failed to create wishlist line: %w", err)
	}
	return nil
}
