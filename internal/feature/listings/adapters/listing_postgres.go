// Package adapters は掲載リポジトリのGORM実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rentorsale_backend/internal/feature/listings/domain/entity"
	"rentorsale_backend/internal/feature/listings/usecase"
	usersusecase "rentorsale_backend/internal/feature/users/usecase"
)

// listingPostgres は掲載の永続化をGORMで実装します。
type listingPostgres struct {
	db *gorm.DB
}

// コンパイル時の実装チェック。掲載リポジトリに加えて、usersフィーチャーが
// 参照する掲載ディレクトリも同じアダプターで提供します。
var (
	_ usecase.ListingRepository     = (*listingPostgres)(nil)
	_ usersusecase.ListingDirectory = (*listingPostgres)(nil)
)

// NewListingPostgres は掲載リポジトリを生成します。
func NewListingPostgres(db *gorm.DB) *listingPostgres {
	return &listingPostgres{db: db}
}

// FindAll は全掲載をアパート名付きで作成日の降順に返します。
func (r *listingPostgres) FindAll(ctx context.Context) ([]usecase.ListingRow, error) {
	var rows []usecase.ListingRow
	err := r.db.WithContext(ctx).
		Model(&entity.Listing{}).
		Select("listings.*, apartments.name AS apartment").
		Joins("LEFT JOIN apartments ON listings.apartment_id = apartments.id").
		Order("listings.date_created DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindDetailByID は掲載1件をアパート名・掲載者名付きで返します。
func (r *listingPostgres) FindDetailByID(ctx context.Context, id uuid.UUID) (*usecase.ListingDetailRow, error) {
	var row usecase.ListingDetailRow
	err := r.db.WithContext(ctx).
		Model(&entity.Listing{}).
		Select("listings.*, apartments.name AS apartment, users.name AS user_name").
		Joins("JOIN apartments ON listings.apartment_id = apartments.id").
		Joins("JOIN users ON listings.user_id = users.id").
		Where("listings.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrListingNotFound
		}
		return nil, err
	}
	return &row, nil
}

// FindAllForApartment は指定アパートの掲載を返します。
func (r *listingPostgres) FindAllForApartment(ctx context.Context, apartment string) ([]entity.Listing, error) {
	var listings []entity.Listing
	err := r.db.WithContext(ctx).
		Joins("JOIN apartments ON listings.apartment_id = apartments.id").
		Where("apartments.name = ?", apartment).
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

// FilterForApartment は条件に一致する掲載を返します。
func (r *listingPostgres) FilterForApartment(ctx context.Context, q usecase.ListingQuery) ([]entity.Listing, error) {
	tx := r.db.WithContext(ctx).
		Joins("JOIN apartments ON listings.apartment_id = apartments.id").
		Where("apartments.name = ?", q.Apartment)
	if q.ListingType != "" {
		tx = tx.Where("listings.listing_type = ?", q.ListingType)
	}
	if q.ExactBedrooms != nil {
		tx = tx.Where("listings.bedrooms = ?", *q.ExactBedrooms)
	}
	if q.MinBedrooms != nil {
		tx = tx.Where("listings.bedrooms > ?", *q.MinBedrooms)
	}

	var listings []entity.Listing
	if err := tx.Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// Create は新しい掲載を保存します。
func (r *listingPostgres) Create(ctx context.Context, listing *entity.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

// UpdateByID は掲載の編集可能な列を上書きします。所有者・対象アパート・
// 掲載日はここでは変更できません。ゼロ値も反映するためマップで更新します。
func (r *listingPostgres) UpdateByID(ctx context.Context, id uuid.UUID, listing *entity.Listing) error {
	return r.db.WithContext(ctx).
		Model(&entity.Listing{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":                        listing.Title,
			"listing_type":                 listing.ListingType,
			"available_from":               listing.AvailableFrom,
			"bedrooms":                     listing.Bedrooms,
			"bathrooms":                    listing.Bathrooms,
			"total_area":                   listing.TotalArea,
			"floors":                       listing.Floors,
			"total_floors":                 listing.TotalFloors,
			"rent_amount":                  listing.RentAmount,
			"maintenance_included_in_rent": listing.MaintenanceIncludedInRent,
			"rent_amount_negotiable":       listing.RentAmountNegotiable,
			"deposit_amount":               listing.DepositAmount,
			"maintenance_amount":           listing.MaintenanceAmount,
			"sale_amount":                  listing.SaleAmount,
			"sale_amount_value":            listing.SaleAmountValue,
			"sale_amount_negotiable":       listing.SaleAmountNegotiable,
			"facing_direction":             listing.FacingDirection,
			"description":                  listing.Description,
			"parking_available":            listing.ParkingAvailable,
			"tenant_preference":            listing.TenantPreference,
			"pets_allowed":                 listing.PetsAllowed,
			"non_vegetarians":              listing.NonVegetarians,
			"mobile_number":                listing.MobileNumber,
			"whatsapp_number":              listing.WhatsappNumber,
			"prefers_call":                 listing.PrefersCall,
			"prefers_text":                 listing.PrefersText,
		}).Error
}

// DeleteByID は掲載行を削除します。
func (r *listingPostgres) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Listing{}).Error
}

// FindIDsForUser はユーザーが所有する掲載のIDを返します。
func (r *listingPostgres) FindIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&entity.Listing{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// SummariesForUser はタイトル・種別・アパート名でグループ化した掲載一覧を返します。
func (r *listingPostgres) SummariesForUser(ctx context.Context, userID uuid.UUID) ([]usersusecase.ListingSummary, error) {
	var summaries []usersusecase.ListingSummary
	err := r.db.WithContext(ctx).
		Model(&entity.Listing{}).
		Select("listings.title, listings.listing_type, apartments.name AS apartment").
		Joins("JOIN apartments ON listings.apartment_id = apartments.id").
		Where("listings.user_id = ?", userID).
		Group("listings.title, listings.listing_type, apartments.name").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// DashboardForUser はアパート名ごとの掲載件数を返します。
func (r *listingPostgres) DashboardForUser(ctx context.Context, userID uuid.UUID) ([]usersusecase.DashboardEntry, error) {
	var entries []usersusecase.DashboardEntry
	err := r.db.WithContext(ctx).
		Model(&entity.Listing{}).
		Select("count(listings.user_id) AS count, apartments.name AS apartment").
		Joins("JOIN apartments ON listings.apartment_id = apartments.id").
		Where("listings.user_id = ?", userID).
		Group("apartments.name").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
