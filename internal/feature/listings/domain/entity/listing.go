// Package entity defines the domain entities for the listings feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Listing represents an advertisement for an apartment unit offered
// for rent or sale.
type Listing struct {
	// ID is the unique identifier for the listing.
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// Title is the headline shown on listing cards.
	Title string `gorm:"size:200;not null"`

	// ListingType is either "rent" or "sale".
	ListingType string `gorm:"size:10;not null"`

	// TotalArea is the unit area in square feet.
	TotalArea float64

	// Description is the free-form advertisement text.
	Description string `gorm:"size:500"`

	// MobileNumber is the advertiser's contact number.
	MobileNumber string `gorm:"size:15;not null"`

	// Bedrooms, Bathrooms and Floors describe the unit layout.
	Bedrooms  int `gorm:"not null"`
	Bathrooms int
	Floors    int

	// WhatsappNumber reports whether the contact number is reachable
	// on WhatsApp.
	WhatsappNumber bool

	ParkingAvailable bool
	BrokersExcuse    bool
	PetsAllowed      bool

	// AvailableFrom is the move-in date as entered by the advertiser.
	AvailableFrom string `gorm:"size:10"`

	// UserID is the advertiser who owns this listing.
	UserID uuid.UUID `gorm:"type:uuid"`

	// ApartmentID is the complex the unit belongs to.
	ApartmentID uuid.UUID `gorm:"type:uuid"`

	// DateCreated is when the listing was posted.
	DateCreated time.Time

	RentAmount        float64
	MaintenanceAmount float64
	DepositAmount     float64
	SaleAmount        float64

	// SaleAmountValue is the unit SaleAmount is quoted in,
	// "Lakhs" or "Crores".
	SaleAmountValue string `gorm:"size:50;default:'Lakhs'"`

	MaintenanceIncludedInRent bool
	RentAmountNegotiable      bool
	SaleAmountNegotiable      bool

	// FacingDirection is the direction the main door or balcony faces.
	FacingDirection string `gorm:"size:50"`

	// NonVegetarians reports whether non-vegetarian tenants are accepted.
	NonVegetarians bool

	// TenantPreference is free-form text such as "Family only".
	TenantPreference string `gorm:"size:250"`

	TotalFloors int

	// PrefersCall and PrefersText record the advertiser's preferred
	// contact channels.
	PrefersCall bool
	PrefersText bool
}

// BeforeCreate assigns a fresh UUID and creation timestamp before insert.
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.DateCreated.IsZero() {
		l.DateCreated = time.Now().UTC()
	}
	return nil
}
