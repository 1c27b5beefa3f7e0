// Package handler はapartmentsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentorsale_backend/internal/api"
	"rentorsale_backend/internal/feature/apartments/domain/entity"
	"rentorsale_backend/internal/feature/apartments/transport/http/dto"
)

// ApartmentUsecase はアパート操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type ApartmentUsecase interface {
	// ListAll は全アパートを名前の降順で返します。
	ListAll(ctx context.Context) ([]entity.Apartment, error)
	// Create は新しいアパートを登録します。
	Create(ctx context.Context, apartment *entity.Apartment) error
	// Search は名前クエリと郵便番号でアパートを検索します。
	Search(ctx context.Context, name, pincode string) ([]entity.Apartment, error)
}

// ApartmentHandler はアパート操作のHTTPリクエストを処理します。
type ApartmentHandler struct {
	apartments ApartmentUsecase
}

// NewApartmentHandler はApartmentHandlerの新しいインスタンスを生成します。
func NewApartmentHandler(apartments ApartmentUsecase) *ApartmentHandler {
	return &ApartmentHandler{apartments: apartments}
}

// ListApartments は全アパートの一覧を返すエンドポイントを処理します。
func (h *ApartmentHandler) ListApartments(c *gin.Context) {
	apartments, err := h.apartments.ListAll(c.Request.Context())
	if err != nil {
		slog.Error("apartment list fetch failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Error fetching apartments"})
		return
	}

	res := make([]dto.ApartmentRes, 0, len(apartments))
	for _, a := range apartments {
		res = append(res, dto.ApartmentRes{
			Name:     a.Name,
			Address1: a.Address1,
			Address2: a.Address2,
			City:     a.City,
			State:    a.State,
			Pincode:  a.Pincode,
		})
	}
	c.JSON(http.StatusOK, res)
}

// Search は名前と郵便番号によるアパート検索エンドポイントを処理します。
// 名前クエリが空の場合は空の配列を返します。
func (h *ApartmentHandler) Search(c *gin.Context) {
	name := c.Query("name")
	pincode := c.Query("pincode")

	apartments, err := h.apartments.Search(c.Request.Context(), name, pincode)
	if err != nil {
		slog.Error("apartment search failed", "error", err, "pincode", pincode)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Could not search for apartments"})
		return
	}

	res := make([]dto.SearchRes, 0, len(apartments))
	for _, a := range apartments {
		res = append(res, dto.SearchRes{
			ID:      a.ID.String(),
			Name:    a.Name,
			City:    a.City,
			Pincode: a.Pincode,
		})
	}
	c.JSON(http.StatusOK, res)
}

// Create はアパート登録エンドポイントを処理します。
func (h *ApartmentHandler) Create(c *gin.Context) {
	var req dto.CreateApartmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("apartment create validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	apartment := &entity.Apartment{
		Name:     req.Name,
		Address1: req.Address1,
		Address2: req.Address2,
		City:     req.City,
		State:    req.State,
		Pincode:  req.Pincode,
	}
	if err := h.apartments.Create(c.Request.Context(), apartment); err != nil {
		slog.Error("apartment create failed", "error", err, "name", req.Name)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Could not create apartment"})
		return
	}

	slog.Info("apartment created", "apartment_id", apartment.ID, "name", apartment.Name)
	c.JSON(http.StatusCreated, api.IDResponse{ID: apartment.ID.String()})
}
