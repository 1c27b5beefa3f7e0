// Package router はサービスの全ルートを1つのginエンジンに組み立てます。
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	apartmenthandler "rentorsale_backend/internal/feature/apartments/transport/handler"
	authhandler "rentorsale_backend/internal/feature/auth/transport/handler"
	listinghandler "rentorsale_backend/internal/feature/listings/transport/handler"
	userhandler "rentorsale_backend/internal/feature/users/transport/handler"
	"rentorsale_backend/internal/platform/http/handler"
	"rentorsale_backend/internal/platform/token"
)

// Handlers は各フィーチャーのHTTPハンドラーをまとめたものです。
type Handlers struct {
	Auth       *authhandler.AuthHandler
	Reset      *authhandler.ResetHandler
	Users      *userhandler.UserHandler
	Apartments *apartmenthandler.ApartmentHandler
	Listings   *listinghandler.ListingHandler
}

// NewRouter はルートテーブルを構築します。変更系のエンドポイントは
// トークン検証ミドルウェアの配下に置きます。
func NewRouter(h Handlers, tokens *token.Service, corsOrigins []string) *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware(corsOrigins))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)

	v1 := r.Group("/api/v1")
	{
		// ログイン（トークン発行）
		v1.POST("/auth", h.Auth.Login)
		// トークンの有効性確認
		v1.GET("/token/verify", h.Auth.VerifyToken)
		// 新規ユーザー登録
		v1.POST("/user", h.Users.Register)

		// パスワードリセット
		v1.GET("/email/:email", h.Reset.VerifyEmail)
		v1.PUT("/otp/:id", h.Reset.GenerateOtp)
		v1.POST("/email/send_otp", h.Reset.SendOtp)
		v1.PUT("/user/password/:id", h.Reset.ChangePassword)

		// アパート一覧と検索
		v1.GET("/apartments", h.Apartments.ListApartments)
		v1.GET("/apartments/search", h.Apartments.Search)

		// ユーザー別の掲載サマリー
		v1.GET("/user/listings/:user_id", h.Users.ListingsForUser)
		v1.GET("/user/dashboard/:user_id", h.Users.DashboardForUser)

		// 掲載の閲覧
		v1.GET("/listings", h.Listings.ListListings)
		v1.GET("/listings/:listing_id", h.Listings.GetListing)
		v1.GET("/listings/apartment/:apartment", h.Listings.CardsForApartment)
		v1.GET("/listings/filter/:filter/:apartment", h.Listings.FilteredListings)
	}

	// 認証必須のルート
	// リクエストヘッダーに有効なトークンが必要になる
	auth := v1.Group("/")
	auth.Use(token.AuthRequired(tokens))
	{
		auth.POST("/apartments", h.Apartments.Create)
		auth.POST("/listings", h.Listings.CreateListing)
		auth.PUT("/listings", h.Listings.UpdateListing)
		auth.DELETE("/listing/:listing_id", h.Listings.DeleteListing)
		auth.DELETE("/image/:file_id", h.Listings.DeleteImage)
		auth.GET("/auth/current_user", h.Auth.CurrentUser)
		auth.DELETE("/user/:user_id", h.Users.DeleteAccount)
	}

	return r
}

// corsMiddleware は設定された許可オリジンでCORSを構成します。
// オリジンが未設定の場合は全オリジンを許可します。
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	if len(origins) > 0 {
		cfg.AllowOrigins = origins
	} else {
		cfg.AllowAllOrigins = true
	}
	return cors.New(cfg)
}
