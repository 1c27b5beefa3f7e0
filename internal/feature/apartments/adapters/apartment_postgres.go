// Package adapters はapartmentsフィーチャーの永続化アダプターを実装します。
package adapters

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"rentorsale_backend/internal/feature/apartments/domain/entity"
	"rentorsale_backend/internal/feature/apartments/usecase"
)

// apartmentPostgres はApartmentRepositoryのGORM実装です。
type apartmentPostgres struct {
	db *gorm.DB
}

// コンパイル時の実装チェック
var _ usecase.ApartmentRepository = (*apartmentPostgres)(nil)

// NewApartmentPostgres はapartmentPostgresの新しいインスタンスを生成します。
func NewApartmentPostgres(db *gorm.DB) *apartmentPostgres {
	return &apartmentPostgres{db: db}
}

// FindAll は全アパートを名前の降順で返します。
func (r *apartmentPostgres) FindAll(ctx context.Context) ([]entity.Apartment, error) {
	var apartments []entity.Apartment
	if err := r.db.WithContext(ctx).Order("name DESC").Find(&apartments).Error; err != nil {
		return nil, err
	}
	return apartments, nil
}

// Create は新しいアパートを保存し、名前の検索インデックス列を同じトランザクションで再生成します。
func (r *apartmentPostgres) Create(ctx context.Context, apartment *entity.Apartment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("NameToken").Create(apartment).Error; err != nil {
			return err
		}
		return refreshNameToken(tx, apartment)
	})
}

// refreshNameToken はname_token列を現在の名前から作り直します。
// PostgreSQLではtsvector、それ以外の方言では小文字化した名前を保存します。
func refreshNameToken(tx *gorm.DB, apartment *entity.Apartment) error {
	if tx.Dialector.Name() == "postgres" {
		return tx.Model(apartment).
			Update("name_token", gorm.Expr("to_tsvector('simple', ?)", apartment.Name)).Error
	}
	return tx.Model(apartment).
		Update("name_token", strings.ToLower(apartment.Name)).Error
}

// SearchByNamePrefix はプレフィックスと郵便番号の完全一致でアパートを検索します。
// PostgreSQLでは前方一致のts_query、それ以外の方言では語頭のLIKE一致で検索します。
func (r *apartmentPostgres) SearchByNamePrefix(ctx context.Context, pattern, pincode string) ([]entity.Apartment, error) {
	var apartments []entity.Apartment
	q := r.db.WithContext(ctx).Where("pincode = ?", pincode)
	if r.db.Dialector.Name() == "postgres" {
		q = q.Where("name_token @@ to_tsquery('simple', ?)", pattern+":*")
	} else {
		q = q.Where("name_token LIKE ? OR name_token LIKE ?", pattern+"%", "% "+pattern+"%")
	}
	if err := q.Find(&apartments).Error; err != nil {
		return nil, err
	}
	return apartments, nil
}
