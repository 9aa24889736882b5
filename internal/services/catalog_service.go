package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"wantlist/internal/models"
	"wantlist/internal/repositories"
	"wantlist/pkg/musicapi"
)

// ArtistLookup is the slice of the music catalog client the record detail
// view needs. The detail page must render even when lookups fail.
type ArtistLookup interface {
	SearchArtist(ctx context.Context, term string) (int, error)
	GetArtistProfile(ctx context.Context, artistID int) (*musicapi.ArtistProfile, error)
}

// CatalogService handles business logic for the record catalog.
type CatalogService struct {
	recordRepo repositories.RecordRepository
	artists    ArtistLookup
}

// NewCatalogService creates a new CatalogService. The artist lookup may be
// nil, in which case detail views render without enrichment.
func NewCatalogService(recordRepo repositories.RecordRepository, artists ArtistLookup) *CatalogService {
	return &CatalogService{
		recordRepo: recordRepo,
		artists:    artists,
	}
}

// GetAllRecords retrieves all catalog records.
func (s *CatalogService) GetAllRecords() ([]models.Record, error) {
	return s.recordRepo.GetAll()
}

// CountRecords returns how many records are in the catalog.
func (s *CatalogService) CountRecords() (int64, error) {
	return s.recordRepo.Count()
}

// GetOrCreateRecord looks the catalog number up and returns the existing
// record unchanged if there is one; otherwise it persists a new record built
// from the request. The boolean reports whether a row was created, so the
// caller can surface the matching advisory notice.
func (s *CatalogService) GetOrCreateRecord(req models.RecordRequest) (*models.Record, bool, error) {
	if existing, err := s.recordRepo.GetByCatalogNo(req.CatalogNo); err == nil && existing != nil {
		return existing, false, nil
	}

	released, err := parseDate(req.Released)
	if err != nil {
		return nil, false, fmt.Errorf("invalid released date: %w", err)
	}
	dateAdded, err := parseDate(req.DateAdded)
	if err != nil {
		return nil, false, fmt.Errorf("invalid date added: %w", err)
	}

	record := &models.Record{
		CatalogNo:                 req.CatalogNo,
		Artist:                    req.Artist,
		Title:                     req.Title,
		Label:                     req.Label,
		RecordFormat:              req.RecordFormat,
		Rating:                    req.Rating,
		Released:                  released,
		ReleaseID:                 req.ReleaseID,
		CollectionFolder:          req.CollectionFolder,
		DateAdded:                 dateAdded,
		CollectionMediaCondition:  req.CollectionMediaCondition,
		CollectionSleeveCondition: req.CollectionSleeveCondition,
		CollectionNotes:           req.CollectionNotes,
		Price:                     req.Price,
	}
	if err := s.recordRepo.Create(record); err != nil {
		return nil, false, fmt.Errorf("failed to create record: %w", err)
	}
	return record, true, nil
}

// GetRecordDetail returns one record plus, when available, the artist profile
// from the external catalog. Enrichment failures are logged and swallowed;
// the record itself is always returned if it exists.
func (s *CatalogService) GetRecordDetail(ctx context.Context, catalogNo int) (*models.Record, *musicapi.ArtistProfile, error) {
	record, err := s.recordRepo.GetByCatalogNo(catalogNo)
	if err != nil {
		return nil, nil, ErrRecordNotFound
	}

	if s.artists == nil {
		return record, nil, nil
	}

	artistID, err := s.artists.SearchArtist(ctx, record.Artist)
	if err != nil {
		log.Printf("Enrichment unavailable for artist %q: %v", record.Artist, err)
		return record, nil, nil
	}
	profile, err := s.artists.GetArtistProfile(ctx, artistID)
	if err != nil {
		log.Printf("Enrichment unavailable for artist id %d: %v", artistID, err)
		return record, nil, nil
	}
	return record, profile, nil
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}
