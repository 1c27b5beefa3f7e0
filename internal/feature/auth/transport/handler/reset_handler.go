package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentorsale_backend/internal/api"
	"rentorsale_backend/internal/feature/auth/domain/entity"
	"rentorsale_backend/internal/feature/auth/transport/http/dto"
	"rentorsale_backend/internal/feature/auth/usecase"
)

// ResetUsecase はパスワードリセット操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type ResetUsecase interface {
	// CheckResetEligibility はメールアドレスがリセット可能な状態かを確認します。
	CheckResetEligibility(ctx context.Context, email string) (*entity.User, error)
	// GenerateOtp は新しいリセットコードを生成して保存します。
	GenerateOtp(ctx context.Context, userID uuid.UUID) (string, error)
	// SendOtp は保存済みのリセットコードをメールで送信します。
	SendOtp(ctx context.Context, email string) error
	// ChangePassword はリセットコードを検証しパスワードを置き換えます。
	ChangePassword(ctx context.Context, userID uuid.UUID, otp, password string) error
}

// ResetHandler はパスワードリセット操作のHTTPリクエストを処理します。
type ResetHandler struct {
	reset ResetUsecase
}

// NewResetHandler はResetHandlerの新しいインスタンスを生成します。
func NewResetHandler(reset ResetUsecase) *ResetHandler {
	return &ResetHandler{reset: reset}
}

// VerifyEmail はメールアドレスがリセットコードを要求できるかを確認します。
// - 未登録のメールアドレスは404を返却
// - 前回の生成から5分以内の再要求は425を返却
func (h *ResetHandler) VerifyEmail(c *gin.Context) {
	user, err := h.reset.CheckResetEligibility(c.Request.Context(), c.Param("email"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "That email does not exist"})
		case errors.Is(err, usecase.ErrOtpTooEarly):
			c.JSON(http.StatusTooEarly, api.ErrorResponse{Error: "Please wait for 5 minutes before generating your next otp"})
		default:
			slog.Warn("reset eligibility check failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Could not verify email"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.EligibilityRes{
		ID:             user.ID.String(),
		Email:          user.Email,
		OtpGeneratedAt: user.OtpGeneratedAt,
	})
}

// GenerateOtp は指定ユーザーの新しいリセットコードを生成します。
// 生成されたコードはレスポンスで呼び出し元に返されます。
func (h *ResetHandler) GenerateOtp(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		slog.Warn("otp generation rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid user id"})
		return
	}

	otp, err := h.reset.GenerateOtp(c.Request.Context(), id)
	if err != nil {
		slog.Error("otp generation failed", "error", err, "user_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Could not generate the otp"})
		return
	}

	c.JSON(http.StatusCreated, api.OtpResponse{Message: "Otp generated", Token: otp})
}

// SendOtp は保存済みのリセットコードをユーザーのメールアドレスに送信します。
// - 未登録のメールアドレスは404を返却
// - コードが一度も生成されていない場合は400を返却
func (h *ResetHandler) SendOtp(c *gin.Context) {
	var req dto.SendOtpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("send otp validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	if err := h.reset.SendOtp(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "That email does not exist"})
		case errors.Is(err, usecase.ErrOtpExpired):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Otp has expired"})
		default:
			slog.Error("otp mail dispatch failed", "error", err, "email", req.Email)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Could not send the email"})
		}
		return
	}

	c.JSON(http.StatusCreated, api.MessageResponse{Message: "Email sent"})
}

// ChangePassword はリセットコードを検証し、新しいパスワードを設定します。
// - コードの期限切れまたは不一致は400を返却
// - 成功時は201を返却
func (h *ResetHandler) ChangePassword(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		slog.Warn("password change rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid user id"})
		return
	}

	var req dto.ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("password change validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	if err := h.reset.ChangePassword(c.Request.Context(), id, req.Otp, req.Password); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found"})
		case errors.Is(err, usecase.ErrOtpExpired):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Otp has expired"})
		case errors.Is(err, usecase.ErrInvalidOtp):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Incorrect otp"})
		default:
			slog.Error("password change failed", "error", err, "user_id", id)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Could not change the password"})
		}
		return
	}

	slog.Info("password changed", "user_id", id)
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "Password changed successfully"})
}
