package models

// RecordRequest is the typed payload for manual record entry. Dates travel as
// ISO strings and are parsed by the catalog service.
type RecordRequest struct {
	CatalogNo                 int     `json:"catalog_no" validate:"required,gt=0"`
	Artist                    string  `json:"artist" validate:"required,max=255"`
	Title                     string  `json:"title" validate:"required,max=255"`
	Label                     string  `json:"label" validate:"omitempty,max=255"`
	RecordFormat              string  `json:"record_format" validate:"omitempty,max=255"`
	Rating                    string  `json:"rating" validate:"omitempty,max=255"`
	Released                  string  `json:"released" validate:"omitempty,datetime=2006-01-02"`
	ReleaseID                 string  `json:"release_id" validate:"omitempty,max=255"`
	CollectionFolder          string  `json:"collection_folder" validate:"omitempty,max=255"`
	DateAdded                 string  `json:"date_added" validate:"omitempty,datetime=2006-01-02"`
	CollectionMediaCondition  string  `json:"collection_media_condition" validate:"omitempty,max=255"`
	CollectionSleeveCondition string  `json:"collection_sleeve_condition" validate:"omitempty,max=255"`
	CollectionNotes           string  `json:"collection_notes" validate:"omitempty,max=255"`
	Price                     float64 `json:"price" validate:"gte=0"`
}

// RegisterRequest is the typed payload for user registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the typed payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// WishlistAddRequest asks to put one catalog record on the caller's wishlist.
type WishlistAddRequest struct {
	CatalogNo int `json:"catalog_no" validate:"required,gt=0"`
}
