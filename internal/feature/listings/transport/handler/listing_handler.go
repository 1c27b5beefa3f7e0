// Package handler はlistingsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentorsale_backend/internal/api"
	"rentorsale_backend/internal/feature/listings/domain/entity"
	"rentorsale_backend/internal/feature/listings/transport/http/dto"
	"rentorsale_backend/internal/feature/listings/usecase"
)

// unsupportedImageMessage は画像以外のファイルが添付されたときの応答文です。
const unsupportedImageMessage = "The format of the uploaded image is currently unsupported.\nPlease upload a different image."

// ListingUsecase は掲載操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type ListingUsecase interface {
	// List は全掲載をアパート名付きで作成日の降順に返します。
	List(ctx context.Context) ([]usecase.ListingRow, error)
	// Get は掲載1件の詳細を画像付きで返します。
	Get(ctx context.Context, listingID uuid.UUID) (*usecase.ListingDetail, error)
	// CardsForApartment は指定アパートの掲載をカード形式で返します。
	CardsForApartment(ctx context.Context, apartment string) ([]usecase.ListingCard, error)
	// FilteredCards は絞り込み条件に一致する掲載をカード形式で返します。
	FilteredCards(ctx context.Context, filter usecase.CardFilter, apartment string) ([]usecase.ListingCard, error)
	// ForApartment は指定アパートの掲載を加工せずそのまま返します。
	ForApartment(ctx context.Context, apartment string) ([]entity.Listing, error)
	// Create は掲載を保存し、添付画像をアップロードします。
	Create(ctx context.Context, listing *entity.Listing, images []usecase.ImageUpload) (uuid.UUID, error)
	// Update は掲載の編集可能な列を上書きし、追加画像をアップロードします。
	Update(ctx context.Context, listingID uuid.UUID, listing *entity.Listing, images []usecase.ImageUpload) error
	// Delete は掲載と紐づく画像を削除します。
	Delete(ctx context.Context, listingID uuid.UUID) error
	// RemoveImage は画像1件を削除します。
	RemoveImage(ctx context.Context, fileID string) error
}

// ListingHandler は掲載操作のHTTPリクエストを処理します。
type ListingHandler struct {
	listings ListingUsecase
}

// NewListingHandler はListingHandlerの新しいインスタンスを生成します。
func NewListingHandler(listings ListingUsecase) *ListingHandler {
	return &ListingHandler{listings: listings}
}

// ListListings は全掲載の一覧を返すエンドポイントを処理します。
func (h *ListingHandler) ListListings(c *gin.Context) {
	rows, err := h.listings.List(c.Request.Context())
	if err != nil {
		slog.Error("listing list fetch failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Could not fetch listings"})
		return
	}

	res := make([]dto.ListingRes, 0, len(rows))
	for _, row := range rows {
		res = append(res, dto.ListingRes{
			ID:               row.ID.String(),
			Title:            row.Title,
			ListingType:      row.ListingType,
			TotalArea:        row.TotalArea,
			Description:      row.Description,
			MobileNumber:     row.MobileNumber,
			Bedrooms:         row.Bedrooms,
			Bathrooms:        row.Bathrooms,
			Floors:           row.Floors,
			WhatsappNumber:   row.WhatsappNumber,
			ParkingAvailable: row.ParkingAvailable,
			PetsAllowed:      row.PetsAllowed,
			BrokersExcuse:    row.BrokersExcuse,
			AvailableFrom:    row.AvailableFrom,
			UserID:           row.UserID.String(),
			ApartmentID:      row.ApartmentID.String(),
			Apartment:        row.Apartment,
		})
	}
	c.JSON(http.StatusOK, res)
}

// GetListing は掲載詳細エンドポイントを処理します。不正なIDや未知の
// IDには本文として空の配列を返します。
func (h *ListingHandler) GetListing(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("listing_id"))
	if err != nil {
		c.JSON(http.StatusOK, []any{})
		return
	}

	detail, err := h.listings.Get(c.Request.Context(), listingID)
	if err != nil {
		if errors.Is(err, usecase.ErrListingNotFound) {
			c.JSON(http.StatusOK, []any{})
			return
		}
		slog.Error("listing detail fetch failed", "error", err, "listing_id", listingID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Could not fetch the listing"})
		return
	}

	c.JSON(http.StatusOK, dto.DetailRes{
		Title:             detail.Title,
		ListingType:       detail.ListingType,
		TotalArea:         detail.TotalArea,
		Description:       detail.Description,
		MobileNumber:      detail.MobileNumber,
		Bedrooms:          detail.Bedrooms,
		Bathrooms:         detail.Bathrooms,
		Floors:            detail.Floors,
		WhatsappNumber:    detail.WhatsappNumber,
		ParkingAvailable:  detail.ParkingAvailable,
		PetsAllowed:       detail.PetsAllowed,
		BrokersExcuse:     detail.BrokersExcuse,
		AvailableFrom:     detail.AvailableFrom,
		UserID:            detail.UserID.String(),
		ApartmentID:       detail.ApartmentID.String(),
		Apartment:         detail.Apartment,
		UserName:          detail.UserName,
		DateCreated:       detail.DateCreated,
		Images:            mapImages(detail.Images),
		Rent:              int(detail.RentAmount),
		Maintenance:       int(detail.MaintenanceAmount),
		Deposit:           int(detail.DepositAmount),
		Sale:              int(detail.SaleAmount),
		SaleAmountUnit:    detail.SaleAmountValue,
		MaintenanceInRent: detail.MaintenanceIncludedInRent,
		RentNegotiable:    detail.RentAmountNegotiable,
		SaleNegotiable:    detail.SaleAmountNegotiable,
		FacingDirection:   detail.FacingDirection,
		NvAllowed:         detail.NonVegetarians,
		TenantPreference:  detail.TenantPreference,
		TotalFloors:       detail.TotalFloors,
		PreferCall:        detail.PrefersCall,
		PreferText:        detail.PrefersText,
	})
}

// CardsForApartment はアパート別の掲載カード一覧エンドポイントを処理します。
func (h *ListingHandler) CardsForApartment(c *gin.Context) {
	apartment := c.Param("apartment")

	cards, err := h.listings.CardsForApartment(c.Request.Context(), apartment)
	if err != nil {
		slog.Error("listing cards fetch failed", "error", err, "apartment", apartment)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Could not fetch the listing"})
		return
	}

	res := make([]dto.CardRes, 0, len(cards))
	for _, card := range cards {
		res = append(res, dto.CardRes{
			ID:              card.ID.String(),
			Title:           card.Title,
			ListingType:     card.ListingType,
			Description:     card.Description,
			Bedrooms:        card.Bedrooms,
			DateCreated:     card.DateCreated,
			Images:          mapImages(card.Images),
			Rent:            card.Rent,
			Sale:            card.Sale,
			SaleAmountValue: card.SaleUnit,
		})
	}
	c.JSON(http.StatusOK, res)
}

// FilteredListings は絞り込み付きのアパート別掲載エンドポイントを処理
// します。パスのfilterセグメントはJSONで、両方の条件が空の場合は加工
// していない全行を返します。
func (h *ListingHandler) FilteredListings(c *gin.Context) {
	apartment := c.Param("apartment")

	var filter dto.FilterReq
	if err := json.Unmarshal([]byte(c.Param("filter")), &filter); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid filter"})
		return
	}

	if filter.TypeOfListing == "" && filter.Bedrooms == "" {
		rows, err := h.listings.ForApartment(c.Request.Context(), apartment)
		if err != nil {
			slog.Error("listing fetch failed", "error", err, "apartment", apartment)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Could not fetch the listing"})
			return
		}

		res := make([]dto.FullListingRes, 0, len(rows))
		for _, row := range rows {
			res = append(res, toFullListingRes(row))
		}
		c.JSON(http.StatusOK, res)
		return
	}

	cards, err := h.listings.FilteredCards(c.Request.Context(), usecase.CardFilter{
		TypeOfListing: filter.TypeOfListing,
		Bedrooms:      filter.Bedrooms,
	}, apartment)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidBedrooms) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid bedrooms filter"})
			return
		}
		slog.Error("listing filter failed", "error", err, "apartment", apartment)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Could not fetch the listing"})
		return
	}

	res := make([]dto.FilteredCardRes, 0, len(cards))
	for _, card := range cards {
		res = append(res, dto.FilteredCardRes{
			ID:          card.ID.String(),
			Title:       card.Title,
			ListingType: card.ListingType,
			Description: card.Description,
			Bedrooms:    card.Bedrooms,
			DateCreated: card.DateCreated,
			Images:      mapImages(card.Images),
			Rent:        card.Rent,
			Sale:        card.Sale,
		})
	}
	c.JSON(http.StatusOK, res)
}

// CreateListing は掲載の新規投稿エンドポイントを処理します。
func (h *ListingHandler) CreateListing(c *gin.Context) {
	var req dto.CreateListingReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid user id"})
		return
	}
	apartmentID, err := uuid.Parse(req.ApartmentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid apartment id"})
		return
	}

	images, err := readImages(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	listing := &entity.Listing{
		Title:                     req.Title,
		ListingType:               req.ListingType,
		TotalArea:                 req.TotalArea,
		Description:               req.Description,
		MobileNumber:              req.MobileNumber,
		Bedrooms:                  req.Bedrooms,
		Bathrooms:                 req.Bathrooms,
		Floors:                    req.Floors,
		WhatsappNumber:            req.WhatsappNumber,
		ParkingAvailable:          req.ParkingAvailable,
		PetsAllowed:               req.PetsAllowed,
		AvailableFrom:             req.AvailableFrom,
		UserID:                    userID,
		ApartmentID:               apartmentID,
		RentAmount:                req.RentAmount,
		MaintenanceAmount:         req.MaintenanceAmount,
		DepositAmount:             req.DepositAmount,
		SaleAmount:                req.SaleAmount,
		SaleAmountValue:           req.SaleAmountValue,
		MaintenanceIncludedInRent: req.MaintenanceIncludedInRent,
		RentAmountNegotiable:      req.RentAmountNegotiable,
		SaleAmountNegotiable:      req.SaleAmountNegotiable,
		FacingDirection:           req.FacingDirection,
		NonVegetarians:            req.NonVegetarians,
		TenantPreference:          req.TenantPreference,
		TotalFloors:               req.TotalFloors,
		PrefersCall:               req.PrefersCall,
		PrefersText:               req.PrefersText,
	}

	id, err := h.listings.Create(c.Request.Context(), listing, images)
	if err != nil {
		if errors.Is(err, usecase.ErrUnsupportedImage) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: unsupportedImageMessage})
			return
		}
		slog.Error("listing create failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Could not create listing"})
		return
	}

	slog.Info("listing created", "listing_id", id, "user_id", userID)
	c.JSON(http.StatusCreated, api.IDResponse{ID: id.String()})
}

// UpdateListing は掲載の編集エンドポイントを処理します。
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	var req dto.UpdateListingReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid listing id"})
		return
	}

	images, err := readImages(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	listing := &entity.Listing{
		Title:                     req.Title,
		ListingType:               req.ListingType,
		TotalArea:                 req.TotalArea,
		Description:               req.Description,
		MobileNumber:              req.MobileNumber,
		Bedrooms:                  req.Bedrooms,
		Bathrooms:                 req.Bathrooms,
		Floors:                    req.Floors,
		WhatsappNumber:            req.WhatsappNumber,
		ParkingAvailable:          req.ParkingAvailable,
		PetsAllowed:               req.PetsAllowed,
		AvailableFrom:             req.AvailableFrom,
		RentAmount:                req.RentAmount,
		MaintenanceAmount:         req.MaintenanceAmount,
		DepositAmount:             req.DepositAmount,
		SaleAmount:                req.SaleAmount,
		SaleAmountValue:           req.SaleAmountValue,
		MaintenanceIncludedInRent: req.MaintenanceIncludedInRent,
		RentAmountNegotiable:      req.RentAmountNegotiable,
		SaleAmountNegotiable:      req.SaleAmountNegotiable,
		FacingDirection:           req.FacingDirection,
		NonVegetarians:            req.NonVegetarians,
		TenantPreference:          req.TenantPreference,
		TotalFloors:               req.TotalFloors,
		PrefersCall:               req.PrefersCall,
		PrefersText:               req.PrefersText,
	}

	if err := h.listings.Update(c.Request.Context(), listingID, listing, images); err != nil {
		if errors.Is(err, usecase.ErrUnsupportedImage) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: unsupportedImageMessage})
			return
		}
		slog.Error("listing update failed", "error", err, "listing_id", listingID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Could not update listing"})
		return
	}

	c.JSON(http.StatusCreated, api.IDResponse{ID: req.ListingID})
}

// DeleteListing は掲載の削除エンドポイントを処理します。
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("listing_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid listing id"})
		return
	}

	if err := h.listings.Delete(c.Request.Context(), listingID); err != nil {
		slog.Error("listing delete failed", "error", err, "listing_id", listingID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Could not delete listing"})
		return
	}

	slog.Info("listing deleted", "listing_id", listingID)
	c.Status(http.StatusCreated)
}

// DeleteImage は掲載画像1件の削除エンドポイントを処理します。
func (h *ListingHandler) DeleteImage(c *gin.Context) {
	fileID := c.Param("file_id")

	if err := h.listings.RemoveImage(c.Request.Context(), fileID); err != nil {
		if errors.Is(err, usecase.ErrImageNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Image not found"})
			return
		}
		slog.Error("image delete failed", "error", err, "file_id", fileID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Could not delete image"})
		return
	}

	c.Status(http.StatusCreated)
}

// readImages はmultipartフォームのimagesパートを読み込みます。
func readImages(c *gin.Context) ([]usecase.ImageUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	uploads := make([]usecase.ImageUpload, 0, len(form.File["images"]))
	for _, header := range form.File["images"] {
		file, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, usecase.ImageUpload{Filename: header.Filename, Data: data})
	}
	return uploads, nil
}

// mapImages は画像情報をレスポンス形式に変換します。
func mapImages(images []usecase.ImageInfo) []dto.ImageRes {
	res := make([]dto.ImageRes, 0, len(images))
	for _, img := range images {
		res = append(res, dto.ImageRes{
			ImageURL:  img.ImageURL,
			Thumbnail: img.Thumbnail,
			Height:    img.Height,
			Width:     img.Width,
			FileID:    img.FileID,
		})
	}
	return res
}

// toFullListingRes は掲載行の全列をレスポンス形式に変換します。
func toFullListingRes(l entity.Listing) dto.FullListingRes {
	return dto.FullListingRes{
		ID:                        l.ID.String(),
		Title:                     l.Title,
		ListingType:               l.ListingType,
		TotalArea:                 l.TotalArea,
		Description:               l.Description,
		MobileNumber:              l.MobileNumber,
		Bedrooms:                  l.Bedrooms,
		Bathrooms:                 l.Bathrooms,
		Floors:                    l.Floors,
		WhatsappNumber:            l.WhatsappNumber,
		ParkingAvailable:          l.ParkingAvailable,
		BrokersExcuse:             l.BrokersExcuse,
		PetsAllowed:               l.PetsAllowed,
		AvailableFrom:             l.AvailableFrom,
		UserID:                    l.UserID.String(),
		ApartmentID:               l.ApartmentID.String(),
		DateCreated:               l.DateCreated,
		RentAmount:                l.RentAmount,
		MaintenanceAmount:         l.MaintenanceAmount,
		DepositAmount:             l.DepositAmount,
		SaleAmount:                l.SaleAmount,
		SaleAmountValue:           l.SaleAmountValue,
		MaintenanceIncludedInRent: l.MaintenanceIncludedInRent,
		RentAmountNegotiable:      l.RentAmountNegotiable,
		SaleAmountNegotiable:      l.SaleAmountNegotiable,
		FacingDirection:           l.FacingDirection,
		NonVegetarians:            l.NonVegetarians,
		TenantPreference:          l.TenantPreference,
		TotalFloors:               l.TotalFloors,
		PrefersCall:               l.PrefersCall,
		PrefersText:               l.PrefersText,
	}
}
