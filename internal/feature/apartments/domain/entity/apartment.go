// Package entity defines the domain entities for the apartments feature.
package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Apartment represents a residential complex that listings belong to.
type Apartment struct {
	// ID is the unique identifier for the apartment.
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// Name is the complex name as shown to users.
	Name string `gorm:"size:100;not null"`

	// Address1 and Address2 hold the street address lines.
	Address1 string `gorm:"size:150"`
	Address2 string `gorm:"size:150"`

	// City and State locate the apartment.
	City  string `gorm:"size:50"`
	State string `gorm:"size:50"`

	// Pincode is the postal code of the apartment's locality.
	Pincode string `gorm:"size:50;not null"`

	// NameToken is the search token column derived from Name.
	// On PostgreSQL it is a tsvector maintained by the repository
	// on insert; other dialects store a lowercased copy of Name.
	NameToken string `gorm:"type:tsvector"`
}

// BeforeCreate assigns a fresh UUID before insert.
func (a *Apartment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
