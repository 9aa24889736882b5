package repositories

import (
	"fmt"
	"wantlist/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMRecordRepository is a GORM implementation of RecordRepository.
type GORMRecordRepository struct {
	db *gorm.DB
}

// NewGORMRecordRepository creates a new instance of GORMRecordRepository.
func NewGORMRecordRepository(db *gorm.DB) *GORMRecordRepository {
	return &GORMRecordRepository{
		db: db,
	}
}

// GetAll retrieves all records from the database.
func (r *GORMRecordRepository) GetAll() ([]models.Record, error) {
	var records []models.Record
	if err := r.db.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get all records: %w", err)
	}
	return records, nil
}

// GetByCatalogNo retrieves a single record by its catalog number.
func (r *GORMRecordRepository) GetByCatalogNo(catalogNo int) (*models.Record, error) {
	var record models.Record
	if err := r.db.First(&record, "catalog_no = ?", catalogNo).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("record with catalog number %d not found", catalogNo)
		}
		return nil, fmt.Errorf("failed to get record by catalog number %d: %w", catalogNo, err)
	}
	return &record, nil
}

// Create creates a new record in the database.
func (r *GORMRecordRepository) Create(record *models.Record) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}
	return nil
}

// CreateBatch inserts all records inside a single transaction. Any insert
// failure (including a catalog number collision) rolls back the whole batch.
func (r *GORMRecordRepository) CreateBatch(records []models.Record) error {
	if len(records) == 0 {
		return nil
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i := range records {
			if records[i].ID == "" {
				records[i].ID = uuid.New().String()
			}
			if err := tx.Create(&records[i]).Error; err != nil {
				return fmt.Errorf("failed to create record with catalog number %d: %w", records[i].CatalogNo, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("batch insert rolled back: %w", err)
	}
	return nil
}

// Count returns the number of records in the catalog.
func (r *GORMRecordRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Record{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}
