package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rentorsale_backend/internal/feature/listings/domain/entity"
	"rentorsale_backend/internal/feature/listings/usecase"
)

// imagePostgres は掲載画像レコードの永続化をGORMで実装します。
type imagePostgres struct {
	db *gorm.DB
}

// コンパイル時の実装チェック
var _ usecase.ImageRepository = (*imagePostgres)(nil)

// NewImagePostgres は掲載画像リポジトリを生成します。
func NewImagePostgres(db *gorm.DB) *imagePostgres {
	return &imagePostgres{db: db}
}

// CreateRecord はアップロード済み画像のレコードを保存します。
func (r *imagePostgres) CreateRecord(ctx context.Context, image *entity.ListingImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

// FindForListing は掲載に紐づく画像レコードを返します。
func (r *imagePostgres) FindForListing(ctx context.Context, listingID uuid.UUID) ([]entity.ListingImage, error) {
	var images []entity.ListingImage
	err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

// FindByFileID はファイルIDで画像レコードを1件返します。
func (r *imagePostgres) FindByFileID(ctx context.Context, fileID string) (*entity.ListingImage, error) {
	var image entity.ListingImage
	err := r.db.WithContext(ctx).
		Where("file_id = ?", fileID).
		First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrImageNotFound
		}
		return nil, err
	}
	return &image, nil
}

// FileIDsForListing は掲載に紐づく全画像のファイルIDを返します。
func (r *imagePostgres) FileIDsForListing(ctx context.Context, listingID uuid.UUID) ([]string, error) {
	var fileIDs []string
	err := r.db.WithContext(ctx).
		Model(&entity.ListingImage{}).
		Where("listing_id = ?", listingID).
		Pluck("file_id", &fileIDs).Error
	if err != nil {
		return nil, err
	}
	return fileIDs, nil
}

// DeleteForListing は掲載に紐づく画像レコードをまとめて削除します。
func (r *imagePostgres) DeleteForListing(ctx context.Context, listingID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Delete(&entity.ListingImage{}).Error
}

// DeleteByFileID はファイルIDで画像レコードを1件削除します。
func (r *imagePostgres) DeleteByFileID(ctx context.Context, fileID string) error {
	return r.db.WithContext(ctx).
		Where("file_id = ?", fileID).
		Delete(&entity.ListingImage{}).Error
}
