package repositories

import (
	"wantlist/internal/models"
)

// RecordRepository defines the interface for record data access.
// Records are create-once: no update or delete operations exist.
type RecordRepository interface {
	GetAll() ([]models.Record, error)
	GetByCatalogNo(catalogNo int) (*models.Record, error)
	Create(record *models.Record) error
	// CreateBatch inserts every record in one transaction: either all rows
	// are committed or none are.
	CreateBatch(records []models.Record) error
	Count() (int64, error)
}
