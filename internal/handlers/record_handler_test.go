package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"wantlist/internal/handlers"
	"wantlist/internal/models"
	"wantlist/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// countFailingRecordRepo serves listings fine but cannot count them, so the
// handler has no honest value to report for num_records.
type countFailingRecordRepo struct{}

func (r *countFailingRecordRepo) GetAll() ([]models.Record, error) {
	return []models.Record{{CatalogNo: 1, Artist: "A", Title: "T"}}, nil
}

func (r *countFailingRecordRepo) GetByCatalogNo(catalogNo int) (*models.Record, error) {
	return nil, errors.New("record not found")
}

func (r *countFailingRecordRepo) Create(record *models.Record) error { return nil }

func (r *countFailingRecordRepo) CreateBatch(records []models.Record) error { return nil }

func (r *countFailingRecordRepo) Count() (int64, error) {
	return 0, errors.New("count query failed")
}

func TestGetRecordsFailsWhenCountFails(t *testing.T) {
	catalogService := services.NewCatalogService(&countFailingRecordRepo{}, nil)
	recordHandler := handlers.NewRecordHandler(catalogService, services.NewImportService(&countFailingRecordRepo{}))

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	recordHandler.RegisterRoutes(apiV1, apiV1)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/v1/records", nil, ""), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	// The count is never silently replaced by the page length.
	body := decodeBody(t, resp)
	assert.NotContains(t, body, "num_records")
}
