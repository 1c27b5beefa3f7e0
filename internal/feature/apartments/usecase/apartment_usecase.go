// Package usecase はアパート一覧と名前検索のビジネスロジックを実装します。
package usecase

import (
	"context"

	"rentorsale_backend/internal/feature/apartments/domain/entity"
)

// ApartmentRepository はアパートの永続化操作を定義します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ApartmentRepository interface {
	// FindAll は全アパートを名前の降順で返します。
	FindAll(ctx context.Context) ([]entity.Apartment, error)
	// Create は新しいアパートを保存し、名前の検索インデックス列を再生成します。
	Create(ctx context.Context, apartment *entity.Apartment) error
	// SearchByNamePrefix はプレフィックスと郵便番号の完全一致でアパートを検索します。
	SearchByNamePrefix(ctx context.Context, pattern, pincode string) ([]entity.Apartment, error)
}

// apartmentUsecase はアパート関連のビジネスロジックを実装します。
type apartmentUsecase struct {
	apartments ApartmentRepository
}

// NewApartmentUsecase はapartmentUsecaseの新しいインスタンスを生成します。
func NewApartmentUsecase(apartments ApartmentRepository) *apartmentUsecase {
	return &apartmentUsecase{apartments: apartments}
}

// ListAll は全アパートを返します。
func (u *apartmentUsecase) ListAll(ctx context.Context) ([]entity.Apartment, error) {
	return u.apartments.FindAll(ctx)
}

// Create は新しいアパートを登録します。
func (u *apartmentUsecase) Create(ctx context.Context, apartment *entity.Apartment) error {
	return u.apartments.Create(ctx, apartment)
}

// Search は名前クエリと郵便番号でアパートを検索します。
// クエリからプレフィックスを導出できない場合は空の結果を返します。
func (u *apartmentUsecase) Search(ctx context.Context, name, pincode string) ([]entity.Apartment, error) {
	pattern := searchPattern(name)
	if pattern == "" {
		return []entity.Apartment{}, nil
	}
	return u.apartments.SearchByNamePrefix(ctx, pattern, pincode)
}
