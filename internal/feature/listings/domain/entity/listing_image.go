package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListingImage is a stored photo attached to a listing.
type ListingImage struct {
	// ID is the unique identifier for the image row.
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// ListingID is the listing the image belongs to.
	ListingID uuid.UUID `gorm:"type:uuid"`

	// FileID is the randomly generated file name of the uploaded
	// object, extension included. The storage key is derived from
	// the listing id plus this name, so the value stays free of
	// path separators and can travel in a URL.
	FileID string `gorm:"size:100"`

	// ImagePath is the public URL of the full-size image.
	ImagePath string `gorm:"size:200;not null"`

	// Height and Width are the image dimensions in pixels.
	Height int
	Width  int

	// ThumbnailURL is the public URL of the preview rendition.
	ThumbnailURL string `gorm:"size:200"`
}

// BeforeCreate assigns a fresh UUID before insert.
func (i *ListingImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
