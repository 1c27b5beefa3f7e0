// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account in the marketplace.
// It carries the login credentials together with the one-time password
// state used during password resets.
type User struct {
	// ID is the unique identifier for the user.
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// Name is the user's display name.
	Name string `gorm:"size:50;not null"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users and is stored lowercased.
	Email string `gorm:"uniqueIndex;size:50;not null"`

	// Password is the bcrypt hash of the user's password.
	// This should never store plaintext passwords.
	Password string `gorm:"size:200;not null"`

	// Otp is the most recently generated password reset code, if any.
	Otp string `gorm:"size:6"`

	// OtpGeneratedAt records when Otp was generated.
	// It stays nil until the first reset request.
	OtpGeneratedAt *time.Time

	// IsActive reports whether the account is allowed to sign in.
	IsActive bool `gorm:"default:true"`

	// DateCreated is the timestamp when the user registered.
	DateCreated time.Time

	// VerifyUser reports whether the email address has been confirmed.
	VerifyUser bool `gorm:"default:false"`

	// VerificationEmailResendCount counts how many confirmation mails
	// have been sent for this account.
	VerificationEmailResendCount int `gorm:"default:0"`
}

// BeforeCreate assigns a fresh UUID and creation timestamp before insert.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.DateCreated.IsZero() {
		u.DateCreated = time.Now().UTC()
	}
	return nil
}
