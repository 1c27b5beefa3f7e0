// Package dto はusersフィーチャーのHTTPリクエスト/レスポンスの型を定義します。
package dto

// RegisterReq is the request body for user registration.
type RegisterReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
