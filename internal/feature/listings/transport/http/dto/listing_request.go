// Package dto はlistingsフィーチャーのHTTPリクエスト/レスポンスの型を定義します。
package dto

// CreateListingReq is the multipart form for posting a new listing.
// Image files ride alongside these fields in the "images" parts.
type CreateListingReq struct {
	Title                     string  `form:"title" binding:"required"`
	ListingType               string  `form:"listing_type" binding:"required"`
	AvailableFrom             string  `form:"available_from" binding:"required"`
	Bedrooms                  int     `form:"bedrooms" binding:"required"`
	Bathrooms                 int     `form:"bathrooms"`
	TotalArea                 float64 `form:"total_area"`
	Floors                    int     `form:"floors"`
	TotalFloors               int     `form:"total_floors"`
	RentAmount                float64 `form:"rent_amount"`
	MaintenanceIncludedInRent bool    `form:"maintenance_included_in_rent"`
	RentAmountNegotiable      bool    `form:"rent_amount_negotiable"`
	DepositAmount             float64 `form:"deposit_amount"`
	MaintenanceAmount         float64 `form:"maintenance_amount"`
	SaleAmount                float64 `form:"sale_amount"`
	SaleAmountValue           string  `form:"sale_amount_value"`
	SaleAmountNegotiable      bool    `form:"sale_amount_negotiable"`
	FacingDirection           string  `form:"facing_direction"`
	Description               string  `form:"description"`
	ParkingAvailable          bool    `form:"parking_available"`
	TenantPreference          string  `form:"tenant_preference"`
	PetsAllowed               bool    `form:"pets_allowed"`
	NonVegetarians            bool    `form:"non_vegetarians"`
	MobileNumber              string  `form:"mobile_number" binding:"required"`
	WhatsappNumber            bool    `form:"whatsapp_number"`
	PrefersCall               bool    `form:"prefers_call"`
	PrefersText               bool    `form:"prefers_text"`
	UserID                    string  `form:"user_id" binding:"required"`
	ApartmentID               string  `form:"apartment_id" binding:"required"`
}

// UpdateListingReq is the multipart form for editing a listing.
// The owner, the apartment and the creation date are not editable.
type UpdateListingReq struct {
	ListingID                 string  `form:"listing_id" binding:"required"`
	Title                     string  `form:"title" binding:"required"`
	ListingType               string  `form:"listing_type" binding:"required"`
	AvailableFrom             string  `form:"available_from" binding:"required"`
	Bedrooms                  int     `form:"bedrooms" binding:"required"`
	Bathrooms                 int     `form:"bathrooms"`
	TotalArea                 float64 `form:"total_area"`
	Floors                    int     `form:"floors"`
	TotalFloors               int     `form:"total_floors"`
	RentAmount                float64 `form:"rent_amount"`
	MaintenanceIncludedInRent bool    `form:"maintenance_included_in_rent"`
	RentAmountNegotiable      bool    `form:"rent_amount_negotiable"`
	DepositAmount             float64 `form:"deposit_amount"`
	MaintenanceAmount         float64 `form:"maintenance_amount"`
	SaleAmount                float64 `form:"sale_amount"`
	SaleAmountValue           string  `form:"sale_amount_value"`
	SaleAmountNegotiable      bool    `form:"sale_amount_negotiable"`
	FacingDirection           string  `form:"facing_direction"`
	Description               string  `form:"description"`
	ParkingAvailable          bool    `form:"parking_available"`
	TenantPreference          string  `form:"tenant_preference"`
	PetsAllowed               bool    `form:"pets_allowed"`
	NonVegetarians            bool    `form:"non_vegetarians"`
	MobileNumber              string  `form:"mobile_number" binding:"required"`
	WhatsappNumber            bool    `form:"whatsapp_number"`
	PrefersCall               bool    `form:"prefers_call"`
	PrefersText               bool    `form:"prefers_text"`
}

// FilterReq is the JSON document carried in the filter path segment of
// the filtered browse endpoint. Bedrooms is a number in string form or
// the open-ended "3+".
type FilterReq struct {
	TypeOfListing string `json:"typeOfListing"`
	Bedrooms      string `json:"bedrooms"`
}
