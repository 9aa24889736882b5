package repositories

import (
	"fmt"
	"sync"
	"wantlist/internal/models"

	"github.com/google/uuid"
)

// MockSalesOrderRepository is an in-memory implementation of SalesOrderRepository.
type MockSalesOrderRepository struct {
	lines map[string]models.SalesOrderLine
	mu    sync.RWMutex
}

// NewMockSalesOrderRepository creates a new instance of MockSalesOrderRepository.
func NewMockSalesOrderRepository() *MockSalesOrderRepository {
	return &MockSalesOrderRepository{
		lines: make(map[string]models.SalesOrderLine),
	}
}

func lineKey(catalogNo int, userID string) string {
	return fmt.Sprintf("%d:%s", catalogNo, userID)
}

// GetByUserID returns all wishlist lines owned by a user.
func (r *MockSalesOrderRepository) GetByUserID(userID string) ([]models.SalesOrderLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lineList := make([]models.SalesOrderLine, 0)
	for _, line := range r.lines {
		if line.UserID == userID {
			lineList = append(lineList, line)
		}
	}
	return lineList, nil
}

// GetByCatalogAndUser returns a line by its composite natural key.
func (r *MockSalesOrderRepository) GetByCatalogAndUser(catalogNo int, userID string) (*models.SalesOrderLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	line, ok := r.lines[lineKey(catalogNo, userID)]
	if !ok {
		return nil, fmt.Errorf("wishlist line for catalog number %d and user %s not found", catalogNo, userID)
	}
	return &line, nil
}

// Create adds a new wishlist line.
func (r *MockSalesOrderRepository) Create(line *models.SalesOrderLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := lineKey(line.CatalogNo, line.UserID)
	if _, ok := r.lines[key]; ok {
		return fmt.Errorf("wishlist line for catalog number %d and user %s already exists", line.CatalogNo, line.UserID)
	}
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	r.lines[key] = *line
	return nil
}
