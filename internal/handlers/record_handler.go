package handlers

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"wantlist/internal/models"
	"wantlist/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RecordHandler handles HTTP requests for the record catalog.
type RecordHandler struct {
	catalogService *services.CatalogService
	importService  *services.ImportService
	validate       *validator.Validate
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(catalogService *services.CatalogService, importService *services.ImportService) *RecordHandler {
	return &RecordHandler{
		catalogService: catalogService,
		importService:  importService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers catalog routes. Browsing is public; adding and
// importing records require authentication.
func (h *RecordHandler) RegisterRoutes(public fiber.Router, protected fiber.Router) {
	public.Get("/records", h.HandleGetRecords)
	public.Get("/records/:catalog_no", h.HandleGetRecordDetail)
	protected.Post("/records", h.HandleCreateRecord)
	protected.Post("/records/import", h.HandleImportRecords)
}

// HandleGetRecords lists the whole catalog along with the record count.
func (h *RecordHandler) HandleGetRecords(c *fiber.Ctx) error {
	records, err := h.catalogService.GetAllRecords()
	if err != nil {
		log.Printf("Error getting all records: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve records",
			"error":   err.Error(),
		})
	}
	numRecords, err := h.catalogService.CountRecords()
	if err != nil {
		log.Printf("Error counting records: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve records",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"num_records": numRecords,
		"records":     records,
	})
}

// HandleGetRecordDetail renders one record plus artist enrichment when the
// external catalog has it. Missing enrichment never fails the page.
func (h *RecordHandler) HandleGetRecordDetail(c *fiber.Ctx) error {
	catalogNo, err := strconv.Atoi(c.Params("catalog_no"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Catalog number must be an integer",
		})
	}

	record, profile, err := h.catalogService.GetRecordDetail(c.Context(), catalogNo)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Record with catalog number %d not found", catalogNo),
			})
		}
		log.Printf("Error getting record %d: %v", catalogNo, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve record",
			"error":   err.Error(),
		})
	}

	resp := fiber.Map{"record": record}
	if profile != nil {
		resp["artist_url"] = profile.URL
		resp["genre"] = profile.Genre
	}
	return c.JSON(resp)
}

// HandleCreateRecord performs the get-or-create on catalog number. The
// notice field tells the caller whether the record was saved or already there.
func (h *RecordHandler) HandleCreateRecord(c *fiber.Ctx) error {
	var req models.RecordRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing record request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	record, created, err := h.catalogService.GetOrCreateRecord(req)
	if err != nil {
		log.Printf("Error creating record: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create record",
			"error":   err.Error(),
		})
	}

	if !created {
		return c.JSON(fiber.Map{
			"notice": "You've already saved a record with that catalog number!",
			"record": record,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"notice": "Record saved to the catalog",
		"record": record,
	})
}

// HandleImportRecords accepts a multipart CSV upload and imports it as one
// all-or-nothing batch.
func (h *RecordHandler) HandleImportRecords(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A CSV file upload named 'file' is required",
		})
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("import-%s.csv", uuid.New().String()))
	if err := c.SaveFile(fileHeader, tmpPath); err != nil {
		log.Printf("Error saving uploaded file: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not store uploaded file",
			"error":   err.Error(),
		})
	}
	defer os.Remove(tmpPath)

	count, err := h.importService.ImportFile(tmpPath)
	if err != nil {
		log.Printf("Import of %s failed: %v", fileHeader.Filename, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Import failed; no records were added",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      fmt.Sprintf("Imported %d records", count),
		"num_imported": count,
	})
}
