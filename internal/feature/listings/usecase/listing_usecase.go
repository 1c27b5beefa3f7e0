// Package usecase は掲載管理のビジネスロジックを実装します。
package usecase

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"image"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	// 画像の寸法判定に使うフォーマットを登録します。
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"

	"rentorsale_backend/internal/feature/listings/domain/entity"
)

// ListingRow は一覧表示用の掲載行です。アパート名を結合済みで保持します。
type ListingRow struct {
	entity.Listing
	Apartment string
}

// ListingDetailRow は詳細ページ用の掲載行です。アパート名と掲載者名を
// 結合済みで保持します。
type ListingDetailRow struct {
	entity.Listing
	Apartment string
	UserName  string
}

// ListingDetail は詳細ページに返す掲載情報と画像の組です。
type ListingDetail struct {
	ListingDetailRow
	Images []ImageInfo
}

// ImageInfo は掲載に紐づく保存済み画像1件の情報です。
type ImageInfo struct {
	ImageURL  string
	Thumbnail string
	Height    int
	Width     int
	FileID    string
}

// ImageUpload はアップロードされた画像ファイル1件です。
type ImageUpload struct {
	Filename string
	Data     []byte
}

// ListingCard はアパートの掲載ブラウズ画面に返すカード1枚です。
// DateCreated は「today」「3d ago」のような相対表記です。
type ListingCard struct {
	ID          uuid.UUID
	Title       string
	ListingType string
	Description string
	Bedrooms    int
	DateCreated string
	Images      []ImageInfo
	Rent        float64
	Sale        float64
	SaleUnit    string
}

// CardFilter はカード絞り込みの生の条件です。Bedrooms は数値文字列または
// 「3+」を受け付けます。
type CardFilter struct {
	TypeOfListing string
	Bedrooms      string
}

// ListingQuery はリポジトリに渡す検証済みの絞り込み条件です。
// nil のフィールドは条件に含めません。
type ListingQuery struct {
	Apartment     string
	ListingType   string
	ExactBedrooms *int
	// MinBedrooms は排他的な下限です（値より大きい行だけが一致します）。
	MinBedrooms *int
}

// ListingRepository は掲載の永続化操作を定義します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ListingRepository interface {
	// FindAll は全掲載をアパート名付きで作成日の降順に返します。
	FindAll(ctx context.Context) ([]ListingRow, error)
	// FindDetailByID は掲載1件をアパート名・掲載者名付きで返します。
	// 見つからない場合はErrListingNotFoundを返します。
	FindDetailByID(ctx context.Context, id uuid.UUID) (*ListingDetailRow, error)
	// FindAllForApartment は指定アパートの全掲載を返します。
	FindAllForApartment(ctx context.Context, apartment string) ([]entity.Listing, error)
	// FilterForApartment は条件に一致する掲載を返します。
	FilterForApartment(ctx context.Context, q ListingQuery) ([]entity.Listing, error)
	// Create は新しい掲載を保存します。
	Create(ctx context.Context, listing *entity.Listing) error
	// UpdateByID は掲載の編集可能な列を上書きします。
	UpdateByID(ctx context.Context, id uuid.UUID, listing *entity.Listing) error
	// DeleteByID は掲載行を削除します。
	DeleteByID(ctx context.Context, id uuid.UUID) error
	// FindIDsForUser はユーザーが所有する掲載のIDを返します。
	FindIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// ImageRepository は掲載画像レコードの永続化操作を定義します。
type ImageRepository interface {
	// CreateRecord はアップロード済み画像のレコードを保存します。
	CreateRecord(ctx context.Context, image *entity.ListingImage) error
	// FindForListing は掲載に紐づく画像レコードを返します。
	FindForListing(ctx context.Context, listingID uuid.UUID) ([]entity.ListingImage, error)
	// FindByFileID はファイルIDで画像レコードを1件返します。
	// 見つからない場合はErrImageNotFoundを返します。
	FindByFileID(ctx context.Context, fileID string) (*entity.ListingImage, error)
	// FileIDsForListing は掲載に紐づく全画像のファイルIDを返します。
	FileIDsForListing(ctx context.Context, listingID uuid.UUID) ([]string, error)
	// DeleteForListing は掲載に紐づく画像レコードをまとめて削除します。
	DeleteForListing(ctx context.Context, listingID uuid.UUID) error
	// DeleteByFileID はファイルIDで画像レコードを1件削除します。
	DeleteByFileID(ctx context.Context, fileID string) error
}

// ImageStore は画像オブジェクトの保管先を定義します。
type ImageStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// Notifier は掲載イベントの通知先を定義します。
// 通知は非同期に配送されるため、呼び出し元のコンテキストは受け取りません。
type Notifier interface {
	ListingCreated(title string)
}

// listingUsecase は掲載管理のビジネスロジックを実装します。
type listingUsecase struct {
	listings ListingRepository
	images   ImageRepository
	store    ImageStore
	notify   Notifier
	now      func() time.Time
}

// NewListingUsecase は掲載ユースケースを生成します。
func NewListingUsecase(listings ListingRepository, images ImageRepository, store ImageStore, notify Notifier) *listingUsecase {
	return &listingUsecase{
		listings: listings,
		images:   images,
		store:    store,
		notify:   notify,
		now:      time.Now,
	}
}

// List は全掲載をアパート名付きで作成日の降順に返します。
func (u *listingUsecase) List(ctx context.Context) ([]ListingRow, error) {
	return u.listings.FindAll(ctx)
}

// Get は掲載1件の詳細を画像付きで返します。
func (u *listingUsecase) Get(ctx context.Context, listingID uuid.UUID) (*ListingDetail, error) {
	row, err := u.listings.FindDetailByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	images, err := u.imageInfos(ctx, listingID)
	if err != nil {
		return nil, err
	}

	return &ListingDetail{ListingDetailRow: *row, Images: images}, nil
}

// CardsForApartment は指定アパートの掲載をカード形式で返します。
func (u *listingUsecase) CardsForApartment(ctx context.Context, apartment string) ([]ListingCard, error) {
	rows, err := u.listings.FindAllForApartment(ctx, apartment)
	if err != nil {
		return nil, err
	}
	return u.buildCards(ctx, rows)
}

// FilteredCards は絞り込み条件に一致する掲載をカード形式で返します。
// Bedrooms の「3+」は3より多い部屋数、数値文字列は完全一致として扱い、
// どちらでもない値にはErrInvalidBedroomsを返します。
func (u *listingUsecase) FilteredCards(ctx context.Context, filter CardFilter, apartment string) ([]ListingCard, error) {
	q := ListingQuery{Apartment: apartment}
	if filter.TypeOfListing != "" {
		q.ListingType = strings.ToLower(filter.TypeOfListing)
	}
	if filter.Bedrooms != "" {
		if filter.Bedrooms == "3+" {
			min := 3
			q.MinBedrooms = &min
		} else {
			n, err := strconv.Atoi(filter.Bedrooms)
			if err != nil {
				return nil, ErrInvalidBedrooms
			}
			q.ExactBedrooms = &n
		}
	}

	rows, err := u.listings.FilterForApartment(ctx, q)
	if err != nil {
		return nil, err
	}
	return u.buildCards(ctx, rows)
}

// ForApartment は指定アパートの掲載を加工せずそのまま返します。
// 絞り込み条件が空のときの一覧表示に使います。
func (u *listingUsecase) ForApartment(ctx context.Context, apartment string) ([]entity.Listing, error) {
	return u.listings.FindAllForApartment(ctx, apartment)
}

// Create は掲載を保存し、添付画像をアップロードして通知を送ります。
// 画像のアップロードに失敗しても掲載自体は残ります。
func (u *listingUsecase) Create(ctx context.Context, listing *entity.Listing, images []ImageUpload) (uuid.UUID, error) {
	if err := u.listings.Create(ctx, listing); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create listing: %w", err)
	}

	if err := u.uploadImages(ctx, listing.ID, images); err != nil {
		return uuid.Nil, err
	}

	u.notify.ListingCreated(listing.Title)
	return listing.ID, nil
}

// Update は掲載の編集可能な列を上書きし、追加画像をアップロードします。
func (u *listingUsecase) Update(ctx context.Context, listingID uuid.UUID, listing *entity.Listing, images []ImageUpload) error {
	if err := u.listings.UpdateByID(ctx, listingID, listing); err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}
	return u.uploadImages(ctx, listingID, images)
}

// Delete は掲載と紐づく画像を削除します。オブジェクトストレージ側の
// 削除失敗は記録して続行し、レコードの削除は行います。
func (u *listingUsecase) Delete(ctx context.Context, listingID uuid.UUID) error {
	fileIDs, err := u.images.FileIDsForListing(ctx, listingID)
	if err != nil {
		return fmt.Errorf("failed to load image records: %w", err)
	}

	if len(fileIDs) > 0 {
		for _, fileID := range fileIDs {
			if err := u.store.Delete(ctx, objectKey(listingID, fileID)); err != nil {
				slog.Warn("stored image delete failed", "file_id", fileID, "error", err)
			}
		}
		if err := u.images.DeleteForListing(ctx, listingID); err != nil {
			return fmt.Errorf("failed to delete image records: %w", err)
		}
	}

	if err := u.listings.DeleteByID(ctx, listingID); err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	return nil
}

// RemoveImage は画像1件をオブジェクトストレージとレコードの両方から
// 削除します。オブジェクトの削除に失敗した場合はレコードを残したまま
// エラーを返します。
func (u *listingUsecase) RemoveImage(ctx context.Context, fileID string) error {
	record, err := u.images.FindByFileID(ctx, fileID)
	if err != nil {
		return err
	}

	if err := u.store.Delete(ctx, objectKey(record.ListingID, fileID)); err != nil {
		return fmt.Errorf("failed to delete stored image: %w", err)
	}

	if err := u.images.DeleteByFileID(ctx, fileID); err != nil {
		return fmt.Errorf("failed to delete image record: %w", err)
	}
	return nil
}

// DeleteAllForUser はユーザーが所有する全掲載を画像ごと削除します。
// users フィーチャーの退会処理から呼ばれます。
func (u *listingUsecase) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	ids, err := u.listings.FindIDsForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list listings for user: %w", err)
	}

	for _, id := range ids {
		if err := u.Delete(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// buildCards は掲載行を画像と相対日付を添えたカードに変換します。
func (u *listingUsecase) buildCards(ctx context.Context, rows []entity.Listing) ([]ListingCard, error) {
	cards := make([]ListingCard, 0, len(rows))
	for _, l := range rows {
		images, err := u.imageInfos(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		cards = append(cards, ListingCard{
			ID:          l.ID,
			Title:       l.Title,
			ListingType: l.ListingType,
			Description: l.Description,
			Bedrooms:    l.Bedrooms,
			DateCreated: relativeDate(l.DateCreated, u.now()),
			Images:      images,
			Rent:        l.RentAmount,
			Sale:        l.SaleAmount,
			SaleUnit:    l.SaleAmountValue,
		})
	}
	return cards, nil
}

// imageInfos は掲載の画像レコードを表示用の形式に変換します。
func (u *listingUsecase) imageInfos(ctx context.Context, listingID uuid.UUID) ([]ImageInfo, error) {
	records, err := u.images.FindForListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}

	infos := make([]ImageInfo, 0, len(records))
	for _, rec := range records {
		infos = append(infos, ImageInfo{
			ImageURL:  rec.ImagePath,
			Thumbnail: rec.ThumbnailURL,
			Height:    rec.Height,
			Width:     rec.Width,
			FileID:    rec.FileID,
		})
	}
	return infos, nil
}

// uploadImages は画像をオブジェクトストレージに保存し、レコードを
// 作成します。デコードできないファイルにはErrUnsupportedImageを返します。
func (u *listingUsecase) uploadImages(ctx context.Context, listingID uuid.UUID, images []ImageUpload) error {
	for _, img := range images {
		cfg, format, err := image.DecodeConfig(bytes.NewReader(img.Data))
		if err != nil {
			return ErrUnsupportedImage
		}

		fileID, err := newFileID(format)
		if err != nil {
			return fmt.Errorf("failed to name image: %w", err)
		}

		key := objectKey(listingID, fileID)
		if err := u.store.Put(ctx, key, bytes.NewReader(img.Data), int64(len(img.Data)), "image/"+format); err != nil {
			return fmt.Errorf("failed to store image: %w", err)
		}

		url := u.store.PublicURL(key)
		record := &entity.ListingImage{
			ListingID:    listingID,
			FileID:       fileID,
			ImagePath:    url,
			Height:       cfg.Height,
			Width:        cfg.Width,
			ThumbnailURL: url,
		}
		if err := u.images.CreateRecord(ctx, record); err != nil {
			return fmt.Errorf("failed to record image: %w", err)
		}
	}
	return nil
}

// newFileID はランダムな16桁の16進数にデコード済みフォーマットの
// 拡張子を付けたファイル名を生成します。
func newFileID(format string) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf) + "." + format, nil
}

// objectKey は掲載IDとファイルIDからオブジェクトストレージのキーを
// 組み立てます。
func objectKey(listingID uuid.UUID, fileID string) string {
	return fmt.Sprintf("Listings/ads/%s/%s", listingID, fileID)
}
