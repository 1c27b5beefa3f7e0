package dto

// UserListingRes is one row of the per-user listings overview.
type UserListingRes struct {
	Title       string `json:"title"`
	ListingType string `json:"listing_type"`
	Apartment   string `json:"apartment"`
}

// DashboardRes is one aggregated row of the per-user dashboard.
type DashboardRes struct {
	Count     int64  `json:"count"`
	Apartment string `json:"apartment"`
}
