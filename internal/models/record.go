package models

import (
	"time"

	"gorm.io/gorm"
)

// Record represents a single physical record in the catalog.
// CatalogNo is the natural key; ID is only a surrogate.
type Record struct {
	ID                        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	CatalogNo                 int       `json:"catalog_no" gorm:"uniqueIndex" validate:"required,gt=0"`
	Artist                    string    `json:"artist" gorm:"type:varchar(255)"`
	Title                     string    `json:"title" gorm:"type:varchar(255)"`
	Label                     string    `json:"label" gorm:"type:varchar(255)"`
	RecordFormat              string    `json:"record_format" gorm:"type:varchar(255)"`
	Rating                    string    `json:"rating" gorm:"type:varchar(255)"`
	Released                  time.Time `json:"released"`
	ReleaseID                 string    `json:"release_id" gorm:"type:varchar(255)"`
	CollectionFolder          string    `json:"collection_folder" gorm:"type:varchar(255)"`
	DateAdded                 time.Time `json:"date_added"`
	CollectionMediaCondition  string    `json:"collection_media_condition" gorm:"type:varchar(255)"`
	CollectionSleeveCondition string    `json:"collection_sleeve_condition" gorm:"type:varchar(255)"`
	CollectionNotes           string    `json:"collection_notes" gorm:"type:varchar(255)"`
	Price                     float64   `json:"price"`
	gorm.Model                          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
