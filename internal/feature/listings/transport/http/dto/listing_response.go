package dto

import "time"

// ImageRes is one stored image of a listing.
type ImageRes struct {
	ImageURL  string `json:"image_url"`
	Thumbnail string `json:"image_thumbnail"`
	Height    int    `json:"height"`
	Width     int    `json:"width"`
	FileID    string `json:"file_id"`
}

// ListingRes is one row of the site-wide listing directory. Images are
// not loaded for this view, so the field stays null.
type ListingRes struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	ListingType      string     `json:"listing_type"`
	TotalArea        float64    `json:"total_area"`
	Description      string     `json:"description"`
	MobileNumber     string     `json:"mobile_number"`
	Bedrooms         int        `json:"bedrooms"`
	Bathrooms        int        `json:"bathrooms"`
	Floors           int        `json:"floors"`
	WhatsappNumber   bool       `json:"whatsapp_number"`
	ParkingAvailable bool       `json:"parking_available"`
	PetsAllowed      bool       `json:"pets_allowed"`
	BrokersExcuse    bool       `json:"brokers_excuse"`
	AvailableFrom    string     `json:"available_from"`
	UserID           string     `json:"user_id"`
	ApartmentID      string     `json:"apartment_id"`
	Apartment        string     `json:"apartment"`
	Images           []ImageRes `json:"images"`
}

// DetailRes is the listing detail page payload. The amount fields are
// truncated to whole currency units for display.
type DetailRes struct {
	Title             string     `json:"title"`
	ListingType       string     `json:"listing_type"`
	TotalArea         float64    `json:"total_area"`
	Description       string     `json:"description"`
	MobileNumber      string     `json:"mobile_number"`
	Bedrooms          int        `json:"bedrooms"`
	Bathrooms         int        `json:"bathrooms"`
	Floors            int        `json:"floors"`
	WhatsappNumber    bool       `json:"whatsapp_number"`
	ParkingAvailable  bool       `json:"parking_available"`
	PetsAllowed       bool       `json:"pets_allowed"`
	BrokersExcuse     bool       `json:"brokers_excuse"`
	AvailableFrom     string     `json:"available_from"`
	UserID            string     `json:"user_id"`
	ApartmentID       string     `json:"apartment_id"`
	Apartment         string     `json:"apartment"`
	UserName          string     `json:"user_name"`
	DateCreated       time.Time  `json:"date_created"`
	Images            []ImageRes `json:"images"`
	Rent              int        `json:"rent"`
	Maintenance       int        `json:"maintenance"`
	Deposit           int        `json:"deposit"`
	Sale              int        `json:"sale"`
	SaleAmountUnit    string     `json:"sale_amount_unit"`
	MaintenanceInRent bool       `json:"maintenance_in_rent"`
	RentNegotiable    bool       `json:"rent_negotiable"`
	SaleNegotiable    bool       `json:"sale_negotiable"`
	FacingDirection   string     `json:"facing_direction"`
	NvAllowed         bool       `json:"nv_allowed"`
	TenantPreference  string     `json:"tenant_preference"`
	TotalFloors       int        `json:"total_floors"`
	PreferCall        bool       `json:"prefer_call"`
	PreferText        bool       `json:"prefer_text"`
}

// CardRes is a listing card on the apartment browse page. DateCreated
// is a relative label such as "today" or "3d ago", and the amounts are
// passed through uncast.
type CardRes struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	ListingType     string     `json:"listing_type"`
	Description     string     `json:"description"`
	Bedrooms        int        `json:"bedrooms"`
	DateCreated     string     `json:"date_created"`
	Images          []ImageRes `json:"images"`
	Rent            float64    `json:"rent"`
	Sale            float64    `json:"sale"`
	SaleAmountValue string     `json:"sale_amount_value"`
}

// FilteredCardRes is a card returned by a filtered browse. It carries
// the same fields as CardRes except the sale amount unit.
type FilteredCardRes struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	ListingType string     `json:"listing_type"`
	Description string     `json:"description"`
	Bedrooms    int        `json:"bedrooms"`
	DateCreated string     `json:"date_created"`
	Images      []ImageRes `json:"images"`
	Rent        float64    `json:"rent"`
	Sale        float64    `json:"sale"`
}

// FullListingRes mirrors every listing column by name. The apartment
// browse endpoint returns these rows when no filter is applied.
type FullListingRes struct {
	ID                        string    `json:"id"`
	Title                     string    `json:"title"`
	ListingType               string    `json:"listing_type"`
	TotalArea                 float64   `json:"total_area"`
	Description               string    `json:"description"`
	MobileNumber              string    `json:"mobile_number"`
	Bedrooms                  int       `json:"bedrooms"`
	Bathrooms                 int       `json:"bathrooms"`
	Floors                    int       `json:"floors"`
	WhatsappNumber            bool      `json:"whatsapp_number"`
	ParkingAvailable          bool      `json:"parking_available"`
	BrokersExcuse             bool      `json:"brokers_excuse"`
	PetsAllowed               bool      `json:"pets_allowed"`
	AvailableFrom             string    `json:"available_from"`
	UserID                    string    `json:"user_id"`
	ApartmentID               string    `json:"apartment_id"`
	DateCreated               time.Time `json:"date_created"`
	RentAmount                float64   `json:"rent_amount"`
	MaintenanceAmount         float64   `json:"maintenance_amount"`
	DepositAmount             float64   `json:"deposit_amount"`
	SaleAmount                float64   `json:"sale_amount"`
	SaleAmountValue           string    `json:"sale_amount_value"`
	MaintenanceIncludedInRent bool      `json:"maintenance_included_in_rent"`
	RentAmountNegotiable      bool      `json:"rent_amount_negotiable"`
	SaleAmountNegotiable      bool      `json:"sale_amount_negotiable"`
	FacingDirection           string    `json:"facing_direction"`
	NonVegetarians            bool      `json:"non_vegetarians"`
	TenantPreference          string    `json:"tenant_preference"`
	TotalFloors               int       `json:"total_floors"`
	PrefersCall               bool      `json:"prefers_call"`
	PrefersText               bool      `json:"prefers_text"`
}
