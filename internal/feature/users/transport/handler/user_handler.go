// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentorsale_backend/internal/api"
	"rentorsale_backend/internal/feature/users/transport/http/dto"
	"rentorsale_backend/internal/feature/users/usecase"
	"rentorsale_backend/internal/platform/token"
)

// UserUsecase はユーザー管理操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type UserUsecase interface {
	// Register は新しいユーザーを登録し、採番されたIDを返します。
	Register(ctx context.Context, name, email, password string) (uuid.UUID, error)
	// ListingsForUser はユーザーの掲載一覧（グループ化済み）を返します。
	ListingsForUser(ctx context.Context, userID uuid.UUID) ([]usecase.ListingSummary, error)
	// DashboardForUser はユーザーのダッシュボード集計を返します。
	DashboardForUser(ctx context.Context, userID uuid.UUID) ([]usecase.DashboardEntry, error)
	// DeleteAccount はユーザーと、その全掲載および画像を削除します。
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

// UserHandler はユーザー管理操作のHTTPリクエストを処理します。
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// Register はユーザー登録APIエンドポイントを処理します。
// 登録済みのメールアドレスも201で応答し、本文のメッセージで案内します。
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	id, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			// メッセージにはリクエストで受け取った表記のままのアドレスを使う
			c.JSON(http.StatusCreated, api.MessageResponse{
				Message: fmt.Sprintf("%s already exists. Please pick a different email address.", req.Email),
			})
			return
		}
		slog.Error("user registration failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Could not register user"})
		return
	}

	slog.Info("user registered", "user_id", id)
	c.JSON(http.StatusCreated, api.IDResponse{ID: id.String()})
}

// ListingsForUser はユーザーの掲載一覧を返すエンドポイントを処理します。
func (h *UserHandler) ListingsForUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid user id"})
		return
	}

	rows, err := h.users.ListingsForUser(c.Request.Context(), userID)
	if err != nil {
		slog.Error("user listings fetch failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Could not fetch all the listings for this user"})
		return
	}

	res := make([]dto.UserListingRes, 0, len(rows))
	for _, row := range rows {
		res = append(res, dto.UserListingRes{
			Title:       row.Title,
			ListingType: row.ListingType,
			Apartment:   row.Apartment,
		})
	}
	c.JSON(http.StatusOK, res)
}

// DashboardForUser はユーザーのダッシュボード集計を返すエンドポイントを処理します。
func (h *UserHandler) DashboardForUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid user id"})
		return
	}

	rows, err := h.users.DashboardForUser(c.Request.Context(), userID)
	if err != nil {
		slog.Error("user dashboard fetch failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Could not fetch all the listings for this user"})
		return
	}

	res := make([]dto.DashboardRes, 0, len(rows))
	for _, row := range rows {
		res = append(res, dto.DashboardRes{
			Count:     row.Count,
			Apartment: row.Apartment,
		})
	}
	c.JSON(http.StatusOK, res)
}

// DeleteAccount はアカウント削除エンドポイントを処理します。
// トークンのサブジェクトと削除対象のIDが一致する場合のみ削除を実行します。
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid user id"})
		return
	}

	if c.GetString(token.ContextUserID) != userID.String() {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Session Expired"})
		return
	}

	if err := h.users.DeleteAccount(c.Request.Context(), userID); err != nil {
		slog.Error("account deletion failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Could not delete user"})
		return
	}

	slog.Info("account deleted", "user_id", userID)
	c.Status(http.StatusOK)
}
