package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"wantlist/internal/models"
	"wantlist/internal/repositories"
)

// importFieldCount is the exact number of columns in an import file:
// catalog_no, artist, title, label, record_format, rating, released,
// release_id, collection_folder, date_added, collection_media_condition,
// collection_sleeve_condition, collection_notes, price.
const importFieldCount = 14

// ImportService loads record batches from comma-delimited files. A file is
// committed as a whole or not at all.
type ImportService struct {
	recordRepo repositories.RecordRepository
}

// NewImportService creates a new ImportService.
func NewImportService(recordRepo repositories.RecordRepository) *ImportService {
	return &ImportService{
		recordRepo: recordRepo,
	}
}

// ImportFile parses the file at path and inserts every row in one
// transaction. The first line is a header and is discarded. Any parse or
// insert error aborts the whole import with nothing persisted. A header-only
// file imports zero records successfully. Returns the number of records
// imported.
func (s *ImportService) ImportFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: cannot open %s: %v", ErrImportFailed, path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // field counts are checked per line below

	// Discard the header line.
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: cannot read header: %v", ErrImportFailed, err)
	}

	var records []models.Record
	lineNo := 1
	for {
		lineNo++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("%w: line %d: %v", ErrImportFailed, lineNo, err)
		}
		record, err := parseImportRow(row)
		if err != nil {
			return 0, fmt.Errorf("%w: line %d: %v", ErrImportFailed, lineNo, err)
		}
		records = append(records, *record)
	}

	if len(records) == 0 {
		return 0, nil
	}

	if err := s.recordRepo.CreateBatch(records); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrImportFailed, err)
	}
	return len(records), nil
}

func parseImportRow(row []string) (*models.Record, error) {
	if len(row) != importFieldCount {
		return nil, fmt.Errorf("expected %d fields, got %d", importFieldCount, len(row))
	}
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}

	catalogNo, err := strconv.Atoi(row[0])
	if err != nil {
		return nil, fmt.Errorf("invalid catalog number %q: %v", row[0], err)
	}
	released, err := parseImportDate(row[6])
	if err != nil {
		return nil, fmt.Errorf("invalid released date %q: %v", row[6], err)
	}
	dateAdded, err := parseImportDate(row[9])
	if err != nil {
		return nil, fmt.Errorf("invalid date added %q: %v", row[9], err)
	}
	price, err := parseImportPrice(row[13])
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %v", row[13], err)
	}

	return &models.Record{
		CatalogNo:                 catalogNo,
		Artist:                    row[1],
		Title:                     row[2],
		Label:                     row[3],
		RecordFormat:              row[4],
		Rating:                    row[5],
		Released:                  released,
		ReleaseID:                 row[7],
		CollectionFolder:          row[8],
		DateAdded:                 dateAdded,
		CollectionMediaCondition:  row[10],
		CollectionSleeveCondition: row[11],
		CollectionNotes:           row[12],
		Price:                     price,
	}, nil
}

func parseImportDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}

func parseImportPrice(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.ParseFloat(value, 64)
}
