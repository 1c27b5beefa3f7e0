package dto

// CurrentUserRes represents the authenticated user returned by
// the /auth/current_user endpoint.
type CurrentUserRes struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	IsActive   bool   `json:"is_active"`
	VerifyUser bool   `json:"verify_user"`
}
