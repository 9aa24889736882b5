package repositories

import (
	"fmt"
	"sync"
	"wantlist/internal/models"

	"github.com/google/uuid"
)

// MockRecordRepository is an in-memory implementation of RecordRepository.
type MockRecordRepository struct {
	records map[int]models.Record
	mu      sync.RWMutex
}

// NewMockRecordRepository creates a new instance of MockRecordRepository.
func NewMockRecordRepository() *MockRecordRepository {
	return &MockRecordRepository{
		records: make(map[int]models.Record),
	}
}

// GetAll returns all records.
func (r *MockRecordRepository) GetAll() ([]models.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recordList := make([]models.Record, 0, len(r.records))
	for _, record := range r.records {
		recordList = append(recordList, record)
	}
	return recordList, nil
}

// GetByCatalogNo returns a record by its catalog number.
func (r *MockRecordRepository) GetByCatalogNo(catalogNo int) (*models.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[catalogNo]
	if !ok {
		return nil, fmt.Errorf("record with catalog number %d not found", catalogNo)
	}
	return &record, nil
}

// Create adds a new record.
func (r *MockRecordRepository) Create(record *models.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[record.CatalogNo]; ok {
		return fmt.Errorf("record with catalog number %d already exists", record.CatalogNo)
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	r.records[record.CatalogNo] = *record
	return nil
}

// CreateBatch inserts all records or none. Duplicates are detected up front
// so the map is never left partially populated.
func (r *MockRecordRepository) CreateBatch(records []models.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[int]bool, len(records))
	for _, record := range records {
		if _, ok := r.records[record.CatalogNo]; ok {
			return fmt.Errorf("batch insert rolled back: record with catalog number %d already exists", record.CatalogNo)
		}
		if seen[record.CatalogNo] {
			return fmt.Errorf("batch insert rolled back: duplicate catalog number %d in batch", record.CatalogNo)
		}
		seen[record.CatalogNo] = true
	}
	for _, record := range records {
		if record.ID == "" {
			record.ID = uuid.New().String()
		}
		r.records[record.CatalogNo] = record
	}
	return nil
}

// Count returns the number of stored records.
func (r *MockRecordRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.records)), nil
}
