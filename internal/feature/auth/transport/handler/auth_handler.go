// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentorsale_backend/internal/api"
	"rentorsale_backend/internal/feature/auth/domain/entity"
	"rentorsale_backend/internal/feature/auth/transport/http/dto"
	"rentorsale_backend/internal/feature/auth/usecase"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Login はユーザーを認証し、成功時にアクセストークンを返します。
	Login(ctx context.Context, email, password string) (string, error)
	// CurrentUser はAuthorizationヘッダーからユーザーを解決します。
	CurrentUser(ctx context.Context, authorization string) (*entity.User, error)
	// VerifyToken はトークンの有効性とサブジェクトの実在を確認します。
	VerifyToken(ctx context.Context, authorization string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - リクエストJSONをLoginReqにバインド
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却
// - 認証成功時はアクセストークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
		return
	}
	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.TokenRes{AccessToken: token, TokenType: "bearer"})
}

// CurrentUser はトークンに紐づくユーザーのプロフィールを返します。
// - 無効化されたアカウントは400を返却
// - サブジェクト不一致または期限切れは401を返却
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	user, err := h.auth.CurrentUser(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInactiveUser):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Inactive user"})
		case errors.Is(err, usecase.ErrSessionExpired):
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Session Expired"})
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Sorry! We could not validate those credentials"})
		default:
			slog.Warn("current user lookup failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Could not fetch user"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.CurrentUserRes{
		ID:         user.ID.String(),
		Name:       user.Name,
		Email:      user.Email,
		IsActive:   user.IsActive,
		VerifyUser: user.VerifyUser,
	})
}

// VerifyToken はトークンの有効性を確認するエンドポイントを処理します。
// 有効な場合はボディなしの200を返します。
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	if err := h.auth.VerifyToken(c.Request.Context(), c.GetHeader("Authorization")); err != nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Session Expired"})
		return
	}
	c.Status(http.StatusOK)
}
