// Package dto はapartmentsフィーチャーのHTTPリクエスト/レスポンスの型を定義します。
package dto

// ApartmentRes is one row of the apartment directory listing.
type ApartmentRes struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

// SearchRes is one row of an apartment search result.
type SearchRes struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

// CreateApartmentReq is the request body for registering an apartment.
type CreateApartmentReq struct {
	Name     string `json:"name" binding:"required"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode" binding:"required"`
}
