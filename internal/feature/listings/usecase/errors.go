// Package usecase contains the listings business logic errors.
package usecase

import "errors"

var (
	// ErrListingNotFound is returned when no listing exists for the
	// requested id.
	ErrListingNotFound = errors.New("listing not found")

	// ErrImageNotFound is returned when no stored image matches the
	// requested file id.
	ErrImageNotFound = errors.New("image not found")

	// ErrInvalidBedrooms is returned when a bedrooms filter value is
	// neither a number nor the open-ended "3+" form.
	ErrInvalidBedrooms = errors.New("invalid bedrooms filter")

	// ErrUnsupportedImage is returned when an uploaded file is not a
	// decodable image.
	ErrUnsupportedImage = errors.New("unsupported image format")
)
